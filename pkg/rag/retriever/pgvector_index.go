package retriever

import (
	"context"

	"knagent-be/internal/entity"
	"knagent-be/internal/repository/unitofwork"
)

// PgVectorIndex searches one named collection of the knowledge_chunks table.
type PgVectorIndex struct {
	uowFactory unitofwork.RepositoryFactory
	collection string
}

func NewPgVectorIndex(uowFactory unitofwork.RepositoryFactory, collection string) *PgVectorIndex {
	return &PgVectorIndex{uowFactory: uowFactory, collection: collection}
}

func (p *PgVectorIndex) Search(ctx context.Context, vector []float32, role entity.Role, k int) ([]*entity.ScoredChunk, error) {
	uow := p.uowFactory.NewUnitOfWork(ctx)
	return uow.KnowledgeChunkRepository().SearchSimilarWithScore(ctx, vector, p.collection, role, k)
}
