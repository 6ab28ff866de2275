package contract

import (
	"context"

	"knagent-be/internal/entity"
	"knagent-be/internal/repository/specification"
)

// ConversationRepository is append-only: turns are never updated or deleted.
type ConversationRepository interface {
	Append(ctx context.Context, turn *entity.ConversationTurn) error
	ListBySession(ctx context.Context, sessionId string, specs ...specification.Specification) ([]*entity.ConversationTurn, error)
	ListSessions(ctx context.Context, userId string) ([]*entity.SessionSummary, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationTurn, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
