package implementation

import (
	"context"
	"errors"

	"knagent-be/internal/entity"
	"knagent-be/internal/mapper"
	"knagent-be/internal/model"
	"knagent-be/internal/repository/contract"
	"knagent-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccountRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AccountMapper
}

func NewAccountRepository(db *gorm.DB) contract.AccountRepository {
	return &AccountRepositoryImpl{
		db:     db,
		mapper: mapper.NewAccountMapper(),
	}
}

func (r *AccountRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AccountRepositoryImpl) Create(ctx context.Context, account *entity.Account) error {
	if account.Id == uuid.Nil {
		account.Id = uuid.New()
	}
	m := r.mapper.ToModel(account)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*account = *r.mapper.ToEntity(m)
	return nil
}

func (r *AccountRepositoryImpl) Update(ctx context.Context, account *entity.Account) error {
	m := r.mapper.ToModel(account)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*account = *r.mapper.ToEntity(m)
	return nil
}

// UpdatePasswordHash returns the number of rows touched so callers can tell a
// missing account apart from a successful write.
func (r *AccountRepositoryImpl) UpdatePasswordHash(ctx context.Context, email, hash string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Account{}).
		Where("email = ?", email).
		Update("hashed_password", hash)
	return res.RowsAffected, res.Error
}

func (r *AccountRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Account, error) {
	var m model.Account
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *AccountRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Account, error) {
	var models []*model.Account
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Account, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *AccountRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Account{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
