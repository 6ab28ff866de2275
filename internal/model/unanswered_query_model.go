package model

import (
	"time"

	"github.com/google/uuid"
)

type UnansweredQuery struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId    string    `gorm:"type:varchar(255);not null;index"`
	UserRole  string    `gorm:"type:varchar(32);not null"`
	Question  string    `gorm:"type:text;not null"`
	SessionId string    `gorm:"type:varchar(255);index"`
	Timestamp time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (UnansweredQuery) TableName() string {
	return "unanswered_queries"
}
