package service

import (
	"context"
	"fmt"
	"time"

	"knagent-be/internal/entity"
	"knagent-be/internal/pkg/logger"
	"knagent-be/internal/pkg/mailer"
	"knagent-be/internal/repository/specification"
	"knagent-be/internal/repository/unitofwork"
	"knagent-be/pkg/agent"
	"knagent-be/pkg/events"
	pktNats "knagent-be/pkg/nats"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword is the agent.PasswordHasher used everywhere credentials are written.
func HashPassword(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

type accountStore struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  pktNats.EventPublisher
	logger     logger.ILogger
}

func NewAccountStore(uowFactory unitofwork.RepositoryFactory, publisher pktNats.EventPublisher, log logger.ILogger) agent.AccountStore {
	return &accountStore{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     log,
	}
}

func (s *accountStore) FindAccount(ctx context.Context, userID string) (*entity.Account, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.AccountRepository().FindOne(ctx, specification.ByEmail{Email: userID})
}

func (s *accountStore) UpdateCredential(ctx context.Context, userID, passwordHash string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	rows, err := uow.AccountRepository().UpdatePasswordHash(ctx, userID, passwordHash)
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("account %s vanished during password update", userID)
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.logger.Info("AgentTools", "Password changed", map[string]interface{}{"user_id": userID})
	publishAsync(s.publisher, s.logger, events.PasswordChanged(userID))
	return nil
}

type leaveStore struct {
	uowFactory   unitofwork.RepositoryFactory
	emailService mailer.IEmailService
	publisher    pktNats.EventPublisher
	logger       logger.ILogger
}

func NewLeaveStore(uowFactory unitofwork.RepositoryFactory, emailService mailer.IEmailService, publisher pktNats.EventPublisher, log logger.ILogger) agent.LeaveStore {
	return &leaveStore{
		uowFactory:   uowFactory,
		emailService: emailService,
		publisher:    publisher,
		logger:       log,
	}
}

func (s *leaveStore) CreateLeaveRecord(ctx context.Context, req *entity.LeaveRequest) error {
	if req.Timestamp.IsZero() {
		req.Timestamp = time.Now()
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.LeaveRequestRepository().Create(ctx, req); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.logger.Info("AgentTools", "Leave requested", map[string]interface{}{
		"user_id": req.UserId,
		"start":   req.StartDate,
		"end":     req.EndDate,
	})
	publishAsync(s.publisher, s.logger, events.LeaveRequested(req.UserId, req.StartDate, req.EndDate, req.Reason))

	record := *req
	go func() {
		if err := s.emailService.SendLeaveConfirmation(record.UserId, &record); err != nil {
			s.logger.Warn("AgentTools", "Leave confirmation mail failed", map[string]interface{}{
				"user_id": record.UserId,
				"error":   err.Error(),
			})
		}
	}()
	return nil
}

// publishAsync never blocks the caller; a lost event is logged and forgotten.
func publishAsync(publisher pktNats.EventPublisher, log logger.ILogger, event events.Event) {
	if publisher == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := publisher.Publish(ctx, event); err != nil {
			log.Warn("Events", "Failed to publish event", map[string]interface{}{
				"type":  event.EventType(),
				"error": err.Error(),
			})
		}
	}()
}
