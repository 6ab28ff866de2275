package dto

import "time"

type QueryRequest struct {
	Question  string  `json:"question" form:"question" validate:"required"`
	SessionId *string `json:"session_id,omitempty" form:"session_id"`
}

type QueryResponse struct {
	Answer    string `json:"answer"`
	SessionId string `json:"session_id"`
}

type SessionInfo struct {
	SessionId string    `json:"session_id"`
	Preview   string    `json:"preview"`
	Timestamp time.Time `json:"timestamp"`
}

// HistoryMessage role is "human" for the caller and "ai" for the agent.
type HistoryMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
