package contract

import (
	"context"

	"knagent-be/internal/entity"
	"knagent-be/internal/repository/specification"
)

type UnansweredQueryRepository interface {
	Create(ctx context.Context, query *entity.UnansweredQuery) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UnansweredQuery, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
