package contract

import (
	"context"

	"knagent-be/internal/entity"
	"knagent-be/internal/repository/specification"
)

type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account) error
	Update(ctx context.Context, account *entity.Account) error
	UpdatePasswordHash(ctx context.Context, email, hash string) (int64, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Account, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Account, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
