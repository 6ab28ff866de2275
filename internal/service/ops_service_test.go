package service

import (
	"context"
	"testing"

	"knagent-be/internal/entity"
	"knagent-be/internal/repository/specification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestOpsService_SeedUsersSkipsExisting(t *testing.T) {
	f := newTestFactory(t)
	ops := NewOpsService(f, "secret", testLog)
	ctx := context.Background()
	seedAccount(t, f, "bob@kmagent.com", "already-set", entity.RoleITTech)

	report, err := ops.SeedUsers(ctx, DefaultSeedAccounts)
	require.NoError(t, err)
	assert.Equal(t, []string{"lolo@kmagent.com", "alice@kmagent.com", "paula@kmagent.com"}, report.Created)
	assert.Equal(t, []string{"bob@kmagent.com"}, report.Skipped)

	bob, err := f.NewUnitOfWork(ctx).AccountRepository().FindOne(ctx, specification.ByEmail{Email: "bob@kmagent.com"})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(bob.PasswordHash), []byte("already-set")))

	again, err := ops.SeedUsers(ctx, DefaultSeedAccounts)
	require.NoError(t, err)
	assert.Empty(t, again.Created)
	assert.Len(t, again.Skipped, 4)
}

func TestOpsService_ResetPasswords(t *testing.T) {
	f := newTestFactory(t)
	ops := NewOpsService(f, "secret", testLog)
	ctx := context.Background()
	seedAccount(t, f, "bob@kmagent.com", "changed-by-agent", entity.RoleITTech)
	seedAccount(t, f, "alice@kmagent.com", "also-changed", entity.RoleSalesTeam)

	reset, err := ops.ResetPasswords(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice@kmagent.com", "bob@kmagent.com"}, reset)

	accounts, err := f.NewUnitOfWork(ctx).AccountRepository().FindAll(ctx)
	require.NoError(t, err)
	for _, a := range accounts {
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte("secret")), a.Email)
	}
}

func TestOpsService_ListLeavesAndGaps(t *testing.T) {
	f := newTestFactory(t)
	ops := NewOpsService(f, "secret", testLog)
	ctx := context.Background()

	leaves, err := ops.ListLeaves(ctx)
	require.NoError(t, err)
	assert.Empty(t, leaves)

	uow := f.NewUnitOfWork(ctx)
	require.NoError(t, uow.LeaveRequestRepository().Create(ctx, &entity.LeaveRequest{
		UserId: "bob@kmagent.com", StartDate: "2025-12-01", EndDate: "2025-12-01", Reason: "Dentist",
	}))
	require.NoError(t, uow.UnansweredQueryRepository().Create(ctx, &entity.UnansweredQuery{
		UserId: "bob@kmagent.com", UserRole: entity.RoleITTech, Question: "sales quota?", SessionId: "s-1",
	}))

	leaves, err = ops.ListLeaves(ctx)
	require.NoError(t, err)
	require.Len(t, leaves, 1)
	assert.Equal(t, "Dentist", leaves[0].Reason)
	assert.Equal(t, "Pending", leaves[0].Status)

	gaps, err := ops.ListGaps(ctx)
	require.NoError(t, err)
	require.Len(t, gaps, 1)
	assert.Equal(t, "IT_Tech", gaps[0].UserRole)
	assert.Equal(t, "sales quota?", gaps[0].Question)
}
