package contract

import (
	"context"

	"knagent-be/internal/entity"
	"knagent-be/internal/repository/specification"
)

type KnowledgeChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.KnowledgeChunk) error
	DeleteBySource(ctx context.Context, collection, source string) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// SearchSimilarWithScore ranks chunks of one collection by cosine similarity,
	// restricted to chunks tagged with exactly the given role.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, collection string, role entity.Role, limit int) ([]*entity.ScoredChunk, error)
}
