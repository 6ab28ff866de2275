package entity

import (
	"time"

	"github.com/google/uuid"
)

type UnansweredQuery struct {
	Id        uuid.UUID
	UserId    string
	UserRole  Role
	Question  string
	SessionId string
	Timestamp time.Time
}
