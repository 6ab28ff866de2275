package service

import (
	"context"
	"testing"
	"time"

	"knagent-be/internal/dto"
	"knagent-be/internal/entity"
	"knagent-be/internal/pkg/serverutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-jwt-secret"

func newTestAuthService(t *testing.T) (IAuthService, func() int64) {
	f := newTestFactory(t)
	svc := NewAuthService(f, AuthSettings{
		JWTSecret:     testSecret,
		TokenTTL:      30 * time.Minute,
		AllowedDomain: "@knagent.com",
	}, testLog)
	count := func() int64 {
		n, err := f.NewUnitOfWork(context.Background()).AccountRepository().Count(context.Background())
		require.NoError(t, err)
		return n
	}
	return svc, count
}

func TestAuthService_SignupIssuesToken(t *testing.T) {
	svc, count := newTestAuthService(t)

	res, err := svc.Signup(context.Background(), &dto.SignupRequest{
		Email:    "dana@knagent.com",
		Password: "pw",
		FullName: "Dana",
		Role:     "Sales_Team",
	})
	require.NoError(t, err)
	assert.Equal(t, "bearer", res.TokenType)

	sub, role, err := serverutils.ParseAccessToken(testSecret, res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "dana@knagent.com", sub)
	assert.Equal(t, entity.RoleSalesTeam, role)
	assert.EqualValues(t, 1, count())
}

func TestAuthService_SignupRejections(t *testing.T) {
	svc, count := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, &dto.SignupRequest{Email: "eve@gmail.com", Password: "pw", Role: "IT_Tech"})
	assert.ErrorIs(t, err, ErrDomainNotAllowed)

	_, err = svc.Signup(ctx, &dto.SignupRequest{Email: "eve@knagent.com", Password: "pw", Role: "Admin"})
	assert.ErrorIs(t, err, entity.ErrInvalidRole)

	_, err = svc.Signup(ctx, &dto.SignupRequest{Email: "eve@knagent.com", Password: "pw", Role: "IT_Tech"})
	require.NoError(t, err)
	_, err = svc.Signup(ctx, &dto.SignupRequest{Email: "eve@knagent.com", Password: "other", Role: "IT_Tech"})
	assert.ErrorIs(t, err, ErrEmailRegistered)

	assert.EqualValues(t, 1, count())
}

func TestAuthService_Token(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, &dto.SignupRequest{Email: "finn@knagent.com", Password: "right", Role: "HR_Employee"})
	require.NoError(t, err)

	res, err := svc.Token(ctx, &dto.TokenRequest{Username: "finn@knagent.com", Password: "right"})
	require.NoError(t, err)
	_, role, err := serverutils.ParseAccessToken(testSecret, res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleHREmployee, role)

	_, err = svc.Token(ctx, &dto.TokenRequest{Username: "finn@knagent.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Token(ctx, &dto.TokenRequest{Username: "nobody@knagent.com", Password: "right"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
