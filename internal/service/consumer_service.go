package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"knagent-be/internal/dto"
	"knagent-be/internal/entity"
	"knagent-be/internal/pkg/logger"
	"knagent-be/internal/repository/unitofwork"
	"knagent-be/pkg/embedding"
	"knagent-be/pkg/rag/ingest"
	"knagent-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

const maxIngestAttempts = 3

// IngestStats are cumulative since the consumer was created.
type IngestStats struct {
	Documents int
	Chunks    int
	Failed    []string
}

type IConsumerService interface {
	Consume(ctx context.Context) error
	Stats() IngestStats
}

type consumerService struct {
	subscriber        message.Subscriber
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	splitter          *utils.RecursiveSplitter
	logger            logger.ILogger
	retryDelay        time.Duration

	mu    sync.Mutex
	stats IngestStats
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	splitter *utils.RecursiveSplitter,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:        subscriber,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		splitter:          splitter,
		logger:            log,
		retryDelay:        500 * time.Millisecond,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) Stats() IngestStats {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	out := cs.stats
	out.Failed = append([]string(nil), cs.stats.Failed...)
	return out
}

// processMessage always acks: transient failures are retried here, and a redelivered
// message would block the publisher forever.
func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var payload dto.IngestDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("Ingestion", "Failed to unmarshal message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		cs.recordFailure(msg.Metadata.Get("source"))
		return
	}

	var (
		count int
		err   error
	)
	for attempt := 1; attempt <= maxIngestAttempts; attempt++ {
		count, err = cs.ingestDocument(ctx, &payload)
		if err == nil {
			break
		}
		cs.logger.Warn("Ingestion", "Document ingestion attempt failed", map[string]interface{}{
			"source":  payload.Source,
			"attempt": attempt,
			"error":   err.Error(),
		})
		if ctx.Err() != nil {
			break
		}
		time.Sleep(cs.retryDelay)
	}
	if err != nil {
		cs.logger.Error("Ingestion", "Document skipped", map[string]interface{}{
			"source": payload.Source,
			"error":  err.Error(),
		})
		cs.recordFailure(payload.Source)
		return
	}

	cs.mu.Lock()
	cs.stats.Documents++
	cs.stats.Chunks += count
	cs.mu.Unlock()

	cs.logger.Info("Ingestion", "Document indexed", map[string]interface{}{
		"source": payload.Source,
		"role":   payload.Role,
		"chunks": count,
	})
}

// ingestDocument replaces every chunk previously stored for the same source.
func (cs *consumerService) ingestDocument(ctx context.Context, payload *dto.IngestDocumentMessage) (int, error) {
	role, err := entity.ParseRole(payload.Role)
	if err != nil {
		return 0, err
	}

	doc := ingest.Document{
		Path: payload.Source,
		Text: payload.Text,
		Metadata: entity.ChunkMetadata{
			Role:       role,
			Department: payload.Department,
			Source:     payload.Source,
		},
	}

	// 1. Split
	chunks := ingest.Chunk(doc, payload.Collection, cs.splitter)

	// 2. Embed each chunk
	now := time.Now()
	for i, c := range chunks {
		res, err := cs.embeddingProvider.Generate(c.Text, embedding.TaskRetrievalDocument)
		if err != nil {
			return 0, fmt.Errorf("embed chunk %d: %w", i, err)
		}
		c.Id = uuid.New()
		c.Vector = res.Embedding.Values
		c.CreatedAt = now
	}

	// 3. Swap old chunks for new ones atomically
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer uow.Rollback()

	if err := uow.KnowledgeChunkRepository().DeleteBySource(ctx, payload.Collection, payload.Source); err != nil {
		return 0, fmt.Errorf("delete old chunks: %w", err)
	}
	if len(chunks) > 0 {
		if err := uow.KnowledgeChunkRepository().CreateBulk(ctx, chunks); err != nil {
			return 0, fmt.Errorf("store chunks: %w", err)
		}
	}
	if err := uow.Commit(); err != nil {
		return 0, err
	}
	return len(chunks), nil
}

func (cs *consumerService) recordFailure(source string) {
	if source == "" {
		source = "(unknown)"
	}
	cs.mu.Lock()
	cs.stats.Failed = append(cs.stats.Failed, source)
	cs.mu.Unlock()
}
