package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type KnowledgeChunk struct {
	Id         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Collection string          `gorm:"type:varchar(128);not null;index"`
	Document   string          `gorm:"type:text;not null"`
	Embedding  pgvector.Vector `gorm:"type:vector(384)"` // all-MiniLM-L6-v2
	Role       string          `gorm:"type:varchar(32);not null;index"`
	Department string          `gorm:"type:varchar(64)"`
	Source     string          `gorm:"type:varchar(255);index"`
	Metadata   datatypes.JSON  `gorm:"type:jsonb"`
	ChunkIndex int             `gorm:"default:0"`
	CreatedAt  time.Time       `gorm:"autoCreateTime"`
}

func (KnowledgeChunk) TableName() string {
	return "knowledge_chunks"
}
