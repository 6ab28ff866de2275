package implementation_test

import (
	"context"
	"testing"

	"knagent-be/internal/entity"
	"knagent-be/internal/repository/implementation"
	"knagent-be/internal/repository/specification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaveRequestRepository(t *testing.T) {
	ctx := context.Background()
	repo := implementation.NewLeaveRequestRepository(newTestDB(t))

	leave := &entity.LeaveRequest{
		UserId:    "lolo@knagent.com",
		StartDate: "2025-12-01",
		EndDate:   "2025-12-05",
		Reason:    "Sick leave",
	}
	require.NoError(t, repo.Create(ctx, leave))
	assert.Equal(t, entity.LeaveStatusPending, leave.Status)
	assert.False(t, leave.Timestamp.IsZero())

	leaves, err := repo.FindAll(ctx, specification.OwnedBy{UserID: "lolo@knagent.com"})
	require.NoError(t, err)
	require.Len(t, leaves, 1)
	assert.Equal(t, "2025-12-01", leaves[0].StartDate)
	assert.Equal(t, "2025-12-05", leaves[0].EndDate)
	assert.Equal(t, "Sick leave", leaves[0].Reason)

	pending, err := repo.Count(ctx, specification.ByStatus{Status: string(entity.LeaveStatusPending)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), pending)
}

func TestUnansweredQueryRepository(t *testing.T) {
	ctx := context.Background()
	repo := implementation.NewUnansweredQueryRepository(newTestDB(t))

	require.NoError(t, repo.Create(ctx, &entity.UnansweredQuery{
		UserId:    "alice@knagent.com",
		UserRole:  entity.RoleSalesTeam,
		Question:  "What is the VPN password?",
		SessionId: "s-9",
	}))

	gaps, err := repo.FindAll(ctx, specification.OrderBy{Field: "created_at", Desc: true})
	require.NoError(t, err)
	require.Len(t, gaps, 1)
	assert.Equal(t, entity.RoleSalesTeam, gaps[0].UserRole)
	assert.Equal(t, "s-9", gaps[0].SessionId)
	assert.False(t, gaps[0].Timestamp.IsZero())
}
