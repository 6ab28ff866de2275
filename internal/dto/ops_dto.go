package dto

import "time"

type SeedReport struct {
	Created []string `json:"created"`
	Skipped []string `json:"skipped"`
}

type LeaveRecord struct {
	UserId    string    `json:"user_id"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	Reason    string    `json:"reason"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type GapRecord struct {
	UserId    string    `json:"user_id"`
	UserRole  string    `json:"user_role"`
	Question  string    `json:"question"`
	SessionId string    `json:"session_id"`
	Timestamp time.Time `json:"timestamp"`
}
