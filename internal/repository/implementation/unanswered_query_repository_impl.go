package implementation

import (
	"context"

	"knagent-be/internal/entity"
	"knagent-be/internal/mapper"
	"knagent-be/internal/model"
	"knagent-be/internal/repository/contract"
	"knagent-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UnansweredQueryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UnansweredQueryMapper
}

func NewUnansweredQueryRepository(db *gorm.DB) contract.UnansweredQueryRepository {
	return &UnansweredQueryRepositoryImpl{
		db:     db,
		mapper: mapper.NewUnansweredQueryMapper(),
	}
}

func (r *UnansweredQueryRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *UnansweredQueryRepositoryImpl) Create(ctx context.Context, query *entity.UnansweredQuery) error {
	if query.Id == uuid.Nil {
		query.Id = uuid.New()
	}
	m := r.mapper.ToModel(query)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*query = *r.mapper.ToEntity(m)
	return nil
}

func (r *UnansweredQueryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UnansweredQuery, error) {
	var models []*model.UnansweredQuery
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.UnansweredQuery, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *UnansweredQueryRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.UnansweredQuery{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
