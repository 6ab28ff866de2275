package unitofwork

import (
	"context"

	"knagent-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ConversationRepository() contract.ConversationRepository
	AccountRepository() contract.AccountRepository
	LeaveRequestRepository() contract.LeaveRequestRepository
	UnansweredQueryRepository() contract.UnansweredQueryRepository
	KnowledgeChunkRepository() contract.KnowledgeChunkRepository
}
