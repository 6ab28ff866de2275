package retriever

import (
	"context"
	"fmt"
	"sort"

	"knagent-be/internal/entity"
	"knagent-be/internal/pkg/logger"
	"knagent-be/pkg/embedding"
)

const DefaultTopK = 5

// Index is a filtered nearest-neighbour search over stored chunks.
type Index interface {
	Search(ctx context.Context, vector []float32, role entity.Role, k int) ([]*entity.ScoredChunk, error)
}

// Retriever wraps an Index with a mandatory exact-match role filter.
type Retriever struct {
	embedder embedding.EmbeddingProvider
	index    Index
	topK     int
	logger   logger.ILogger
}

func New(embedder embedding.EmbeddingProvider, index Index, topK int, log logger.ILogger) *Retriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Retriever{
		embedder: embedder,
		index:    index,
		topK:     topK,
		logger:   log,
	}
}

// Retrieve returns at most topK chunks tagged with exactly role, best match first.
// No match, or a role outside the closed set, is an empty result rather than an error.
func (r *Retriever) Retrieve(ctx context.Context, query string, role entity.Role) ([]*entity.KnowledgeChunk, error) {
	if !role.Valid() {
		r.logger.Warn("Retriever", "Rejected retrieval for unknown role", map[string]interface{}{"role": string(role)})
		return []*entity.KnowledgeChunk{}, nil
	}

	embeddingRes, err := r.embedder.Generate(query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("embedding generation failed: %w", err)
	}

	scored, err := r.index.Search(ctx, embeddingRes.Embedding.Values, role, r.topK)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	kept := make([]*entity.ScoredChunk, 0, len(scored))
	for _, sc := range scored {
		if sc == nil || sc.Chunk == nil {
			continue
		}
		if sc.Chunk.Metadata.Role != role {
			r.logger.Warn("Retriever", "Index returned chunk outside caller role", map[string]interface{}{
				"chunk_id":   sc.Chunk.Id.String(),
				"chunk_role": string(sc.Chunk.Metadata.Role),
				"role":       string(role),
			})
			continue
		}
		kept = append(kept, sc)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Similarity > kept[j].Similarity
	})
	if len(kept) > r.topK {
		kept = kept[:r.topK]
	}

	chunks := make([]*entity.KnowledgeChunk, len(kept))
	for i, sc := range kept {
		chunks[i] = sc.Chunk
	}

	r.logger.Debug("Retriever", "Retrieved chunks", map[string]interface{}{
		"role":  string(role),
		"count": len(chunks),
	})
	return chunks, nil
}
