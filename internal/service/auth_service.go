package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"knagent-be/internal/constant"
	"knagent-be/internal/dto"
	"knagent-be/internal/entity"
	"knagent-be/internal/pkg/logger"
	"knagent-be/internal/pkg/serverutils"
	"knagent-be/internal/repository/specification"
	"knagent-be/internal/repository/unitofwork"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrDomainNotAllowed   = errors.New("registration failed: email domain is not allowed")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("incorrect username or password")
)

type IAuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.TokenResponse, error)
	Token(ctx context.Context, req *dto.TokenRequest) (*dto.TokenResponse, error)
}

type AuthSettings struct {
	JWTSecret     string
	TokenTTL      time.Duration
	AllowedDomain string
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	settings   AuthSettings
	logger     logger.ILogger
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, settings AuthSettings, log logger.ILogger) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		settings:   settings,
		logger:     log,
	}
}

func (s *authService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.TokenResponse, error) {
	// 1. Company domain only
	if !strings.HasSuffix(req.Email, s.settings.AllowedDomain) {
		return nil, ErrDomainNotAllowed
	}

	role, err := entity.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	// 2. Check for existing account
	existing, err := uow.AccountRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailRegistered
	}

	// 3. Hash password
	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	account := &entity.Account{
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	// 4. Save
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.AccountRepository().Create(ctx, account); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("AuthService", "Account registered", map[string]interface{}{
		"email": account.Email,
		"role":  account.Role.String(),
	})

	// 5. Signing up logs the caller in
	return s.issue(account)
}

func (s *authService) Token(ctx context.Context, req *dto.TokenRequest) (*dto.TokenResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	account, err := uow.AccountRepository().FindOne(ctx, specification.ByEmail{Email: req.Username})
	if err != nil {
		return nil, err
	}
	if account == nil || account.Disabled {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("AuthService", "Rejected login", map[string]interface{}{"email": req.Username})
		return nil, ErrInvalidCredentials
	}
	return s.issue(account)
}

func (s *authService) issue(account *entity.Account) (*dto.TokenResponse, error) {
	token, err := serverutils.GenerateAccessToken(s.settings.JWTSecret, account.Email, account.Role, s.settings.TokenTTL)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   constant.TokenTypeBearer,
	}, nil
}
