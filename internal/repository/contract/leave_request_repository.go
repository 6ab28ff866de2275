package contract

import (
	"context"

	"knagent-be/internal/entity"
	"knagent-be/internal/repository/specification"
)

type LeaveRequestRepository interface {
	Create(ctx context.Context, leave *entity.LeaveRequest) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LeaveRequest, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
