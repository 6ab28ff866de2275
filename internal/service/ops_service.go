package service

import (
	"context"
	"time"

	"knagent-be/internal/dto"
	"knagent-be/internal/entity"
	"knagent-be/internal/pkg/logger"
	"knagent-be/internal/repository/specification"
	"knagent-be/internal/repository/unitofwork"
)

type SeedAccount struct {
	Email    string
	FullName string
	Role     entity.Role
}

// DefaultSeedAccounts are the demo staff provisioned by `knagentctl seed-users`.
var DefaultSeedAccounts = []SeedAccount{
	{Email: "lolo@kmagent.com", FullName: "Lolo Manager", Role: entity.RoleHREmployee},
	{Email: "bob@kmagent.com", FullName: "Bob Tech", Role: entity.RoleITTech},
	{Email: "alice@kmagent.com", FullName: "Alice Sales", Role: entity.RoleSalesTeam},
	{Email: "paula@kmagent.com", FullName: "paula Tech", Role: entity.RoleITTech},
}

type IOpsService interface {
	SeedUsers(ctx context.Context, accounts []SeedAccount) (*dto.SeedReport, error)
	ResetPasswords(ctx context.Context) ([]string, error)
	ListLeaves(ctx context.Context) ([]*dto.LeaveRecord, error)
	ListGaps(ctx context.Context) ([]*dto.GapRecord, error)
}

type opsService struct {
	uowFactory    unitofwork.RepositoryFactory
	defaultSecret string
	logger        logger.ILogger
}

func NewOpsService(uowFactory unitofwork.RepositoryFactory, defaultSecret string, log logger.ILogger) IOpsService {
	return &opsService{
		uowFactory:    uowFactory,
		defaultSecret: defaultSecret,
		logger:        log,
	}
}

// SeedUsers creates missing accounts with the default password and leaves existing ones untouched.
func (s *opsService) SeedUsers(ctx context.Context, accounts []SeedAccount) (*dto.SeedReport, error) {
	report := &dto.SeedReport{Created: []string{}, Skipped: []string{}}

	for _, a := range accounts {
		uow := s.uowFactory.NewUnitOfWork(ctx)
		existing, err := uow.AccountRepository().FindOne(ctx, specification.ByEmail{Email: a.Email})
		if err != nil {
			return nil, err
		}
		if existing != nil {
			report.Skipped = append(report.Skipped, a.Email)
			continue
		}

		hash, err := HashPassword(s.defaultSecret)
		if err != nil {
			return nil, err
		}

		if err := uow.Begin(ctx); err != nil {
			return nil, err
		}
		err = uow.AccountRepository().Create(ctx, &entity.Account{
			Email:        a.Email,
			FullName:     a.FullName,
			PasswordHash: hash,
			Role:         a.Role,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		})
		if err != nil {
			uow.Rollback()
			return nil, err
		}
		if err := uow.Commit(); err != nil {
			return nil, err
		}
		report.Created = append(report.Created, a.Email)
	}

	s.logger.Info("Ops", "Seeded accounts", map[string]interface{}{
		"created": len(report.Created),
		"skipped": len(report.Skipped),
	})
	return report, nil
}

// ResetPasswords sets every account back to the default password in one transaction.
func (s *opsService) ResetPasswords(ctx context.Context) ([]string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	accounts, err := uow.AccountRepository().FindAll(ctx, specification.OrderBy{Field: "email"})
	if err != nil {
		return nil, err
	}

	reset := make([]string, 0, len(accounts))
	for _, a := range accounts {
		hash, err := HashPassword(s.defaultSecret)
		if err != nil {
			return nil, err
		}
		if _, err := uow.AccountRepository().UpdatePasswordHash(ctx, a.Email, hash); err != nil {
			return nil, err
		}
		reset = append(reset, a.Email)
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Warn("Ops", "Reset all passwords to default", map[string]interface{}{"count": len(reset)})
	return reset, nil
}

func (s *opsService) ListLeaves(ctx context.Context) ([]*dto.LeaveRecord, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	leaves, err := uow.LeaveRequestRepository().FindAll(ctx, specification.OrderBy{Field: "created_at"})
	if err != nil {
		return nil, err
	}

	res := make([]*dto.LeaveRecord, 0, len(leaves))
	for _, l := range leaves {
		res = append(res, &dto.LeaveRecord{
			UserId:    l.UserId,
			StartDate: l.StartDate,
			EndDate:   l.EndDate,
			Reason:    l.Reason,
			Status:    string(l.Status),
			Timestamp: l.Timestamp,
		})
	}
	return res, nil
}

func (s *opsService) ListGaps(ctx context.Context) ([]*dto.GapRecord, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	gaps, err := uow.UnansweredQueryRepository().FindAll(ctx, specification.OrderBy{Field: "created_at", Desc: true})
	if err != nil {
		return nil, err
	}

	res := make([]*dto.GapRecord, 0, len(gaps))
	for _, g := range gaps {
		res = append(res, &dto.GapRecord{
			UserId:    g.UserId,
			UserRole:  g.UserRole.String(),
			Question:  g.Question,
			SessionId: g.SessionId,
			Timestamp: g.Timestamp,
		})
	}
	return res, nil
}
