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

type LeaveRequestRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LeaveRequestMapper
}

func NewLeaveRequestRepository(db *gorm.DB) contract.LeaveRequestRepository {
	return &LeaveRequestRepositoryImpl{
		db:     db,
		mapper: mapper.NewLeaveRequestMapper(),
	}
}

func (r *LeaveRequestRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *LeaveRequestRepositoryImpl) Create(ctx context.Context, leave *entity.LeaveRequest) error {
	if leave.Id == uuid.Nil {
		leave.Id = uuid.New()
	}
	if leave.Status == "" {
		leave.Status = entity.LeaveStatusPending
	}
	m := r.mapper.ToModel(leave)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*leave = *r.mapper.ToEntity(m)
	return nil
}

func (r *LeaveRequestRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LeaveRequest, error) {
	var models []*model.LeaveRequest
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.LeaveRequest, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *LeaveRequestRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.LeaveRequest{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
