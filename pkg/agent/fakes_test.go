package agent

import (
	"context"
	"errors"
	"sync"

	"knagent-be/internal/entity"
	"knagent-be/pkg/llm"
)

type fakeSearcher struct {
	chunks map[entity.Role][]*entity.KnowledgeChunk
	err    error
	calls  int
}

func (f *fakeSearcher) Retrieve(_ context.Context, _ string, role entity.Role) ([]*entity.KnowledgeChunk, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.chunks[role], nil
}

type fakeAccounts struct {
	mu       sync.Mutex
	accounts map[string]*entity.Account
	err      error
}

func newFakeAccounts(emails ...string) *fakeAccounts {
	f := &fakeAccounts{accounts: map[string]*entity.Account{}}
	for _, e := range emails {
		f.accounts[e] = &entity.Account{Email: e, PasswordHash: "old"}
	}
	return f
}

func (f *fakeAccounts) FindAccount(_ context.Context, userID string) (*entity.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.accounts[userID], nil
}

func (f *fakeAccounts) UpdateCredential(_ context.Context, userID, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[userID]
	if !ok {
		return errors.New("missing")
	}
	a.PasswordHash = hash
	return nil
}

type fakeLeaves struct {
	records []*entity.LeaveRequest
	err     error
}

func (f *fakeLeaves) CreateLeaveRecord(_ context.Context, req *entity.LeaveRequest) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, req)
	return nil
}

func fakeHash(s string) (string, error) {
	return "hashed:" + s, nil
}

// scriptedLLM replays outputs in order and records every prompt it was given.
type scriptedLLM struct {
	outputs []string
	err     error
	prompts []string
	opts    []llm.Options
}

func (s *scriptedLLM) Chat(context.Context, []llm.Message, ...llm.Option) (string, error) {
	return "", errors.New("not used")
}

func (s *scriptedLLM) Generate(_ context.Context, prompt string, opts ...llm.Option) (string, error) {
	s.prompts = append(s.prompts, prompt)
	var o llm.Options
	for _, opt := range opts {
		opt(&o)
	}
	s.opts = append(s.opts, o)
	if s.err != nil {
		return "", s.err
	}
	if len(s.outputs) == 0 {
		return " I keep thinking.", nil
	}
	out := s.outputs[0]
	s.outputs = s.outputs[1:]
	return out, nil
}
