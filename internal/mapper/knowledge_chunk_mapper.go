package mapper

import (
	"encoding/json"

	"knagent-be/internal/entity"
	"knagent-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type KnowledgeChunkMapper struct{}

func NewKnowledgeChunkMapper() *KnowledgeChunkMapper {
	return &KnowledgeChunkMapper{}
}

// ToEntity reads role, department and source from their columns; the JSON copy is informational.
func (m *KnowledgeChunkMapper) ToEntity(c *model.KnowledgeChunk) *entity.KnowledgeChunk {
	if c == nil {
		return nil
	}
	return &entity.KnowledgeChunk{
		Id:         c.Id,
		Collection: c.Collection,
		Text:       c.Document,
		Vector:     c.Embedding.Slice(),
		Metadata: entity.ChunkMetadata{
			Role:       entity.Role(c.Role),
			Department: c.Department,
			Source:     c.Source,
		},
		ChunkIndex: c.ChunkIndex,
		CreatedAt:  c.CreatedAt,
	}
}

func (m *KnowledgeChunkMapper) ToModel(c *entity.KnowledgeChunk) *model.KnowledgeChunk {
	if c == nil {
		return nil
	}
	meta, _ := json.Marshal(c.Metadata)
	return &model.KnowledgeChunk{
		Id:         c.Id,
		Collection: c.Collection,
		Document:   c.Text,
		Embedding:  pgvector.NewVector(c.Vector),
		Role:       string(c.Metadata.Role),
		Department: c.Metadata.Department,
		Source:     c.Metadata.Source,
		Metadata:   datatypes.JSON(meta),
		ChunkIndex: c.ChunkIndex,
		CreatedAt:  c.CreatedAt,
	}
}
