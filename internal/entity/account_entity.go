package entity

import (
	"time"

	"github.com/google/uuid"
)

type Account struct {
	Id           uuid.UUID
	Email        string
	FullName     string
	PasswordHash string
	Role         Role
	Disabled     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
