package entity

import (
	"time"

	"github.com/google/uuid"
)

type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "Pending"
	LeaveStatusApproved LeaveStatus = "Approved"
	LeaveStatusRejected LeaveStatus = "Rejected"
)

// LeaveRequest dates are stored exactly as the requester wrote them.
type LeaveRequest struct {
	Id        uuid.UUID
	UserId    string
	StartDate string
	EndDate   string
	Reason    string
	Status    LeaveStatus
	Timestamp time.Time
}
