package agent

import "strings"

const msgLeaveFormat = "Error: Use 'Start, End, Reason'"

// ParseLeave splits "start, end, reason". Commas after the second one belong to the reason.
// Dates are accepted as written.
func ParseLeave(raw string) (ApplyLeave, error) {
	parts := strings.Split(raw, ",")
	if len(parts) < 3 {
		return ApplyLeave{}, &ToolInputError{Tool: ToolApplyLeave, Message: msgLeaveFormat}
	}
	return ApplyLeave{
		Start:  strings.TrimSpace(parts[0]),
		End:    strings.TrimSpace(parts[1]),
		Reason: strings.TrimSpace(strings.Join(parts[2:], ",")),
	}, nil
}
