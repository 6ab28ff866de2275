package model

import (
	"time"

	"github.com/google/uuid"
)

type ConversationTurn struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId         string    `gorm:"type:varchar(255);not null;index"`
	SessionId      string    `gorm:"type:varchar(255);not null;index"`
	Sender         string    `gorm:"type:varchar(16);not null"`
	MessageContent string    `gorm:"type:text;not null"`
	Timestamp      time.Time `gorm:"column:created_at;not null;index"`
}

func (ConversationTurn) TableName() string {
	return "conversation_history"
}
