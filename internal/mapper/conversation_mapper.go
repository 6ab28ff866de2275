package mapper

import (
	"knagent-be/internal/entity"
	"knagent-be/internal/model"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

func (m *ConversationMapper) ToEntity(t *model.ConversationTurn) *entity.ConversationTurn {
	if t == nil {
		return nil
	}
	return &entity.ConversationTurn{
		Id:        t.Id,
		UserId:    t.UserId,
		SessionId: t.SessionId,
		Sender:    entity.Sender(t.Sender),
		Content:   t.MessageContent,
		Timestamp: t.Timestamp,
	}
}

func (m *ConversationMapper) ToModel(t *entity.ConversationTurn) *model.ConversationTurn {
	if t == nil {
		return nil
	}
	return &model.ConversationTurn{
		Id:             t.Id,
		UserId:         t.UserId,
		SessionId:      t.SessionId,
		Sender:         string(t.Sender),
		MessageContent: t.Content,
		Timestamp:      t.Timestamp,
	}
}
