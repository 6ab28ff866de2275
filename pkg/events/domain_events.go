package events

import "time"

const (
	TypeLeaveRequested  = "leave.requested"
	TypePasswordChanged = "password.changed"
	TypeQueryUnanswered = "query.unanswered"
)

func LeaveRequested(userID, start, end, reason string) Event {
	return BaseEvent{
		Type: TypeLeaveRequested,
		Data: map[string]interface{}{
			"user_id":    userID,
			"start_date": start,
			"end_date":   end,
			"reason":     reason,
		},
		OccurredAt: time.Now(),
	}
}

// PasswordChanged never carries the secret itself.
func PasswordChanged(userID string) Event {
	return BaseEvent{
		Type:       TypePasswordChanged,
		Data:       map[string]interface{}{"user_id": userID},
		OccurredAt: time.Now(),
	}
}

func QueryUnanswered(userID, role, question, sessionID string) Event {
	return BaseEvent{
		Type: TypeQueryUnanswered,
		Data: map[string]interface{}{
			"user_id":    userID,
			"user_role":  role,
			"question":   question,
			"session_id": sessionID,
		},
		OccurredAt: time.Now(),
	}
}
