package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChunkMetadata struct {
	Role       Role   `json:"role"`
	Department string `json:"department"`
	Source     string `json:"source"`
}

type KnowledgeChunk struct {
	Id         uuid.UUID
	Collection string
	Text       string
	Vector     []float32
	Metadata   ChunkMetadata
	ChunkIndex int
	CreatedAt  time.Time
}

type ScoredChunk struct {
	Chunk      *KnowledgeChunk
	Similarity float64
}
