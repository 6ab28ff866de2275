package unitofwork

import (
	"context"
	"fmt"

	"knagent-be/internal/repository/contract"
	"knagent-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB // set between Begin and Commit/Rollback
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

// Rollback after a successful Commit is a no-op error, so `defer uow.Rollback()` is safe.
func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) ConversationRepository() contract.ConversationRepository {
	return implementation.NewConversationRepository(u.getDB())
}

func (u *UnitOfWorkImpl) AccountRepository() contract.AccountRepository {
	return implementation.NewAccountRepository(u.getDB())
}

func (u *UnitOfWorkImpl) LeaveRequestRepository() contract.LeaveRequestRepository {
	return implementation.NewLeaveRequestRepository(u.getDB())
}

func (u *UnitOfWorkImpl) UnansweredQueryRepository() contract.UnansweredQueryRepository {
	return implementation.NewUnansweredQueryRepository(u.getDB())
}

func (u *UnitOfWorkImpl) KnowledgeChunkRepository() contract.KnowledgeChunkRepository {
	return implementation.NewKnowledgeChunkRepository(u.getDB())
}
