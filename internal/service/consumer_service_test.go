package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"knagent-be/internal/dto"
	"knagent-be/internal/entity"
	"knagent-be/pkg/embedding"
	"knagent-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTopic = "knowledge.chunks"

type countingEmbedder struct {
	mu       sync.Mutex
	tasks    []string
	failures int
}

func (e *countingEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tasks = append(e.tasks, taskType)
	if e.failures > 0 {
		e.failures--
		return nil, errors.New("embedding backend unavailable")
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{float32(len(text)), 1}},
	}, nil
}

type ingestionFixture struct {
	repo     *fakeChunkRepo
	embedder *countingEmbedder
	consumer IConsumerService
	svc      IIngestionService
}

func newIngestionFixture(t *testing.T) *ingestionFixture {
	pubSub := gochannel.NewGoChannel(gochannel.Config{BlockPublishUntilSubscriberAck: true}, watermill.NopLogger{})
	t.Cleanup(func() { pubSub.Close() })

	fx := &ingestionFixture{repo: newFakeChunkRepo(), embedder: &countingEmbedder{}}
	consumer := NewConsumerService(pubSub, testTopic, &chunkFactory{repo: fx.repo}, fx.embedder, utils.NewRecursiveSplitter(40, 10), testLog)
	consumer.(*consumerService).retryDelay = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, consumer.Consume(ctx))

	fx.consumer = consumer
	fx.svc = NewIngestionService(NewPublisherService(testTopic, pubSub), consumer, "enterprise_knowledge_base", testLog)
	return fx
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestIngestion_IndexesDirectoryWithRBACMetadata(t *testing.T) {
	fx := newIngestionFixture(t)
	dir := t.TempDir()
	writeFile(t, dir, "hr_policy.txt", strings.Repeat("Annual leave is twenty days. ", 6))
	writeFile(t, dir, "it_security.md", "Rotate VPN keys every quarter.")
	writeFile(t, dir, "office_map.txt", "Kitchen on floor two.")
	writeFile(t, dir, "logo.png", "binary")

	report, err := fx.svc.IngestDirectory(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Documents)
	assert.Empty(t, report.Failed)

	hr := fx.repo.bySource("hr_policy.txt")
	require.Greater(t, len(hr), 1)
	for i, c := range hr {
		assert.Equal(t, entity.RoleHREmployee, c.Metadata.Role)
		assert.Equal(t, "HR", c.Metadata.Department)
		assert.Equal(t, "enterprise_knowledge_base", c.Collection)
		assert.Equal(t, i, c.ChunkIndex)
		assert.NotEmpty(t, c.Vector)
		assert.LessOrEqual(t, len([]rune(c.Text)), 40)
	}

	it := fx.repo.bySource("it_security.md")
	require.Len(t, it, 1)
	assert.Equal(t, entity.RoleITTech, it[0].Metadata.Role)

	general := fx.repo.bySource("office_map.txt")
	require.Len(t, general, 1)
	assert.Equal(t, entity.RoleGeneralEmployee, general[0].Metadata.Role)

	total, err := fx.repo.Count(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, report.Chunks, total)

	for _, task := range fx.embedder.tasks {
		assert.Equal(t, embedding.TaskRetrievalDocument, task)
	}
}

func TestIngestion_ReingestReplacesSource(t *testing.T) {
	fx := newIngestionFixture(t)
	dir := t.TempDir()
	writeFile(t, dir, "sales_playbook.txt", strings.Repeat("Always qualify the lead first. ", 5))

	_, err := fx.svc.IngestDirectory(context.Background(), dir)
	require.NoError(t, err)
	require.Greater(t, len(fx.repo.bySource("sales_playbook.txt")), 1)

	writeFile(t, dir, "sales_playbook.txt", "Short now.")
	report, err := fx.svc.IngestDirectory(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Chunks)

	chunks := fx.repo.bySource("sales_playbook.txt")
	require.Len(t, chunks, 1)
	assert.Equal(t, "Short now.", chunks[0].Text)
}

func TestIngestion_SameFileNameInSubfoldersKeepsBoth(t *testing.T) {
	fx := newIngestionFixture(t)
	dir := t.TempDir()
	for _, sub := range []string{"a", "b"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, sub), 0o755))
	}
	writeFile(t, dir, filepath.Join("a", "hr_policy.txt"), "Annual leave is twenty days.")
	writeFile(t, dir, filepath.Join("b", "hr_policy.txt"), "Probation is three months.")

	report, err := fx.svc.IngestDirectory(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Documents)

	a := fx.repo.bySource("a/hr_policy.txt")
	require.Len(t, a, 1)
	assert.Equal(t, "Annual leave is twenty days.", a[0].Text)
	b := fx.repo.bySource("b/hr_policy.txt")
	require.Len(t, b, 1)
	assert.Equal(t, "Probation is three months.", b[0].Text)

	total, err := fx.repo.Count(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

func TestIngestion_TransientEmbeddingFailureIsRetried(t *testing.T) {
	fx := newIngestionFixture(t)
	fx.embedder.failures = 1
	dir := t.TempDir()
	writeFile(t, dir, "notes.txt", "One small chunk.")

	report, err := fx.svc.IngestDirectory(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Documents)
	assert.Empty(t, report.Failed)
}

func TestIngestion_PersistentFailureIsReported(t *testing.T) {
	fx := newIngestionFixture(t)
	fx.embedder.failures = maxIngestAttempts
	dir := t.TempDir()
	writeFile(t, dir, "notes.txt", "One small chunk.")

	report, err := fx.svc.IngestDirectory(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Documents)
	assert.Equal(t, []string{"notes.txt"}, report.Failed)
	assert.Empty(t, fx.repo.bySource("notes.txt"))
}

func TestConsumer_RejectsUnknownRole(t *testing.T) {
	fx := newIngestionFixture(t)
	pub := fx.svc.(*ingestionService).publisher

	require.NoError(t, pub.PublishDocument(context.Background(), &dto.IngestDocumentMessage{
		Collection: "enterprise_knowledge_base",
		Source:     "rogue.txt",
		Role:       "Admin",
		Text:       "should never be indexed",
	}))

	assert.Equal(t, []string{"rogue.txt"}, fx.consumer.Stats().Failed)
	assert.Empty(t, fx.repo.bySource("rogue.txt"))
}

func TestIngestion_MissingDirectory(t *testing.T) {
	fx := newIngestionFixture(t)
	_, err := fx.svc.IngestDirectory(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
