package model

import (
	"time"

	"github.com/google/uuid"
)

type LeaveRequest struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId    string    `gorm:"type:varchar(255);not null;index"`
	StartDate string    `gorm:"type:varchar(64)"`
	EndDate   string    `gorm:"type:varchar(64)"`
	Reason    string    `gorm:"type:text"`
	Status    string    `gorm:"type:varchar(32);default:'Pending'"`
	Timestamp time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}
