package model

import (
	"time"

	"github.com/google/uuid"
)

type Account struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email          string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	FullName       string    `gorm:"type:varchar(255)"`
	HashedPassword string    `gorm:"type:varchar(255);not null"`
	Role           string    `gorm:"type:varchar(32);not null"`
	Disabled       bool      `gorm:"default:false"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (Account) TableName() string {
	return "users"
}
