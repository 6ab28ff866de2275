package mapper

import (
	"knagent-be/internal/entity"
	"knagent-be/internal/model"
)

type UnansweredQueryMapper struct{}

func NewUnansweredQueryMapper() *UnansweredQueryMapper {
	return &UnansweredQueryMapper{}
}

func (m *UnansweredQueryMapper) ToEntity(q *model.UnansweredQuery) *entity.UnansweredQuery {
	if q == nil {
		return nil
	}
	return &entity.UnansweredQuery{
		Id:        q.Id,
		UserId:    q.UserId,
		UserRole:  entity.Role(q.UserRole),
		Question:  q.Question,
		SessionId: q.SessionId,
		Timestamp: q.Timestamp,
	}
}

func (m *UnansweredQueryMapper) ToModel(q *entity.UnansweredQuery) *model.UnansweredQuery {
	if q == nil {
		return nil
	}
	return &model.UnansweredQuery{
		Id:        q.Id,
		UserId:    q.UserId,
		UserRole:  string(q.UserRole),
		Question:  q.Question,
		SessionId: q.SessionId,
		Timestamp: q.Timestamp,
	}
}
