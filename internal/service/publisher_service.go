package service

import (
	"context"
	"encoding/json"

	"knagent-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

type IPublisherService interface {
	PublishDocument(ctx context.Context, payload *dto.IngestDocumentMessage) error
}

type publisherService struct {
	topicName string
	publisher message.Publisher
}

func NewPublisherService(topicName string, publisher message.Publisher) IPublisherService {
	return &publisherService{
		topicName: topicName,
		publisher: publisher,
	}
}

func (ps *publisherService) PublishDocument(ctx context.Context, payload *dto.IngestDocumentMessage) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	msg := message.NewMessage(watermill.NewUUID(), body)
	msg.SetContext(ctx)
	msg.Metadata.Set("source", payload.Source)
	return ps.publisher.Publish(ps.topicName, msg)
}
