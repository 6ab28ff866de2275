package implementation

import (
	"context"

	"knagent-be/internal/entity"
	"knagent-be/internal/mapper"
	"knagent-be/internal/model"
	"knagent-be/internal/repository/contract"
	"knagent-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type KnowledgeChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KnowledgeChunkMapper
}

func NewKnowledgeChunkRepository(db *gorm.DB) contract.KnowledgeChunkRepository {
	return &KnowledgeChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewKnowledgeChunkMapper(),
	}
}

func (r *KnowledgeChunkRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *KnowledgeChunkRepositoryImpl) CreateBulk(ctx context.Context, chunks []*entity.KnowledgeChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	models := make([]*model.KnowledgeChunk, len(chunks))
	for i, c := range chunks {
		if c.Id == uuid.Nil {
			c.Id = uuid.New()
		}
		models[i] = r.mapper.ToModel(c)
	}

	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}

	for i, m := range models {
		*chunks[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *KnowledgeChunkRepositoryImpl) DeleteBySource(ctx context.Context, collection, source string) error {
	return r.db.WithContext(ctx).
		Where("collection = ? AND source = ?", collection, source).
		Delete(&model.KnowledgeChunk{}).Error
}

func (r *KnowledgeChunkRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.KnowledgeChunk{}), specs...)
	err := query.Count(&count).Error
	return count, err
}

func (r *KnowledgeChunkRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, collection string, role entity.Role, limit int) ([]*entity.ScoredChunk, error) {
	if limit <= 0 {
		limit = 5
	}

	// Cosine distance in pgvector is 1 - cosine_similarity.
	type result struct {
		model.KnowledgeChunk
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("knowledge_chunks").
		Select("knowledge_chunks.*, 1 - (embedding <=> ?) as similarity", queryVector).
		Where("collection = ?", collection).
		Where("role = ?", string(role)).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*entity.ScoredChunk, len(results))
	for i, res := range results {
		scored[i] = &entity.ScoredChunk{
			Chunk:      r.mapper.ToEntity(&res.KnowledgeChunk),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
