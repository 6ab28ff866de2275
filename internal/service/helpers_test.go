package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"knagent-be/internal/entity"
	"knagent-be/internal/pkg/logger"
	"knagent-be/internal/repository/contract"
	"knagent-be/internal/repository/specification"
	"knagent-be/internal/repository/unitofwork"
	"knagent-be/pkg/agent"
	"knagent-be/pkg/database"
	"knagent-be/pkg/events"
	"knagent-be/pkg/rag/chain"

	"github.com/stretchr/testify/require"
)

var testLog = logger.NewNopLogger()

func newTestFactory(t *testing.T) unitofwork.RepositoryFactory {
	t.Helper()

	db, err := database.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return unitofwork.NewRepositoryFactory(db)
}

func seedAccount(t *testing.T, f unitofwork.RepositoryFactory, email, secret string, role entity.Role) {
	t.Helper()
	hash, err := HashPassword(secret)
	require.NoError(t, err)
	uow := f.NewUnitOfWork(context.Background())
	require.NoError(t, uow.AccountRepository().Create(context.Background(), &entity.Account{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}))
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType()
	}
	return out
}

type fakeRunner struct {
	answer string
	err    error
	calls  []agent.Request
}

func (f *fakeRunner) Run(_ context.Context, req agent.Request) (*agent.Result, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	return &agent.Result{Answer: f.answer, Iterations: 1}, nil
}

type fakeChain struct {
	answer  string
	roles   []entity.Role
	history [][]chain.HistoryTurn
}

func (f *fakeChain) Answer(_ context.Context, _ string, role entity.Role, history []chain.HistoryTurn) (string, error) {
	f.roles = append(f.roles, role)
	f.history = append(f.history, history)
	return f.answer, nil
}

type fakeMailer struct {
	sent chan *entity.LeaveRequest
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{sent: make(chan *entity.LeaveRequest, 4)}
}

func (m *fakeMailer) SendLeaveConfirmation(_ string, req *entity.LeaveRequest) error {
	m.sent <- req
	return nil
}

// chunkFactory stands in for the persistence layer where the vector column is unavailable.
type chunkFactory struct {
	repo *fakeChunkRepo
}

func (f *chunkFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork {
	return &chunkUoW{repo: f.repo}
}

type chunkUoW struct {
	repo *fakeChunkRepo
}

func (u *chunkUoW) Begin(context.Context) error { return nil }
func (u *chunkUoW) Commit() error {
	u.repo.mu.Lock()
	defer u.repo.mu.Unlock()
	u.repo.commits++
	return nil
}
func (u *chunkUoW) Rollback() error { return nil }

func (u *chunkUoW) ConversationRepository() contract.ConversationRepository       { return nil }
func (u *chunkUoW) AccountRepository() contract.AccountRepository                 { return nil }
func (u *chunkUoW) LeaveRequestRepository() contract.LeaveRequestRepository       { return nil }
func (u *chunkUoW) UnansweredQueryRepository() contract.UnansweredQueryRepository { return nil }
func (u *chunkUoW) KnowledgeChunkRepository() contract.KnowledgeChunkRepository   { return u.repo }

type fakeChunkRepo struct {
	mu      sync.Mutex
	chunks  map[string][]*entity.KnowledgeChunk
	commits int
}

func newFakeChunkRepo() *fakeChunkRepo {
	return &fakeChunkRepo{chunks: map[string][]*entity.KnowledgeChunk{}}
}

func (r *fakeChunkRepo) CreateBulk(_ context.Context, chunks []*entity.KnowledgeChunk) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range chunks {
		r.chunks[c.Metadata.Source] = append(r.chunks[c.Metadata.Source], c)
	}
	return nil
}

func (r *fakeChunkRepo) DeleteBySource(_ context.Context, _, source string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.chunks, source)
	return nil
}

func (r *fakeChunkRepo) Count(context.Context, ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, cs := range r.chunks {
		n += int64(len(cs))
	}
	return n, nil
}

func (r *fakeChunkRepo) SearchSimilarWithScore(context.Context, []float32, string, entity.Role, int) ([]*entity.ScoredChunk, error) {
	return nil, errors.New("not used")
}

func (r *fakeChunkRepo) bySource(source string) []*entity.KnowledgeChunk {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*entity.KnowledgeChunk(nil), r.chunks[source]...)
}
