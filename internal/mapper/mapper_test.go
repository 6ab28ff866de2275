package mapper

import (
	"testing"
	"time"

	"knagent-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaveRequestMapper(t *testing.T) {
	m := NewLeaveRequestMapper()
	assert.Nil(t, m.ToEntity(nil))
	assert.Nil(t, m.ToModel(nil))

	leave := &entity.LeaveRequest{
		Id:        uuid.New(),
		UserId:    "lolo@kmagent.com",
		StartDate: "next monday",
		EndDate:   "2025-12-05",
		Reason:    "Family, travel",
		Status:    entity.LeaveStatusPending,
		Timestamp: time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC),
	}
	row := m.ToModel(leave)
	require.NotNil(t, row)
	assert.Equal(t, "Pending", row.Status)
	assert.Equal(t, "next monday", row.StartDate)
	assert.Equal(t, leave, m.ToEntity(row))
}

func TestUnansweredQueryMapper(t *testing.T) {
	m := NewUnansweredQueryMapper()
	assert.Nil(t, m.ToEntity(nil))
	assert.Nil(t, m.ToModel(nil))

	gap := &entity.UnansweredQuery{
		Id:        uuid.New(),
		UserId:    "bob@kmagent.com",
		UserRole:  entity.RoleITTech,
		Question:  "What is the sales quota?",
		SessionId: "s-1",
		Timestamp: time.Date(2025, 11, 3, 9, 30, 0, 0, time.UTC),
	}
	row := m.ToModel(gap)
	require.NotNil(t, row)
	assert.Equal(t, "IT_Tech", row.UserRole)
	assert.Equal(t, gap, m.ToEntity(row))
}
