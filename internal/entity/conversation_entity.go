package entity

import (
	"time"

	"github.com/google/uuid"
)

type Sender string

const (
	SenderUser  Sender = "user"
	SenderAgent Sender = "agent"
)

type ConversationTurn struct {
	Id        uuid.UUID
	UserId    string
	SessionId string
	Sender    Sender
	Content   string
	Timestamp time.Time
}

// SessionSummary is one row of the session sidebar: the latest turn of a session.
type SessionSummary struct {
	SessionId string
	Preview   string
	Timestamp time.Time
}
