package service

import (
	"context"

	"knagent-be/internal/dto"
	"knagent-be/internal/pkg/logger"
	"knagent-be/pkg/rag/ingest"
)

type IIngestionService interface {
	IngestDirectory(ctx context.Context, dir string) (*dto.IngestReport, error)
}

type ingestionService struct {
	publisher  IPublisherService
	consumer   IConsumerService
	collection string
	logger     logger.ILogger
}

// NewIngestionService expects a publisher that blocks until the consumer acks,
// so the report reflects every published document.
func NewIngestionService(publisher IPublisherService, consumer IConsumerService, collection string, log logger.ILogger) IIngestionService {
	return &ingestionService{
		publisher:  publisher,
		consumer:   consumer,
		collection: collection,
		logger:     log,
	}
}

func (s *ingestionService) IngestDirectory(ctx context.Context, dir string) (*dto.IngestReport, error) {
	docs, err := ingest.LoadDocuments(dir)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Ingestion", "Loaded documents", map[string]interface{}{
		"dir":       dir,
		"documents": len(docs),
	})

	before := s.consumer.Stats()
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		err := s.publisher.PublishDocument(ctx, &dto.IngestDocumentMessage{
			Collection: s.collection,
			Source:     doc.Metadata.Source,
			Role:       doc.Metadata.Role.String(),
			Department: doc.Metadata.Department,
			Text:       doc.Text,
		})
		if err != nil {
			return nil, err
		}
	}
	after := s.consumer.Stats()

	return &dto.IngestReport{
		Documents: after.Documents - before.Documents,
		Chunks:    after.Chunks - before.Chunks,
		Failed:    after.Failed[len(before.Failed):],
	}, nil
}
