package chain

import (
	"context"
	"errors"
	"testing"

	"knagent-be/internal/entity"
	"knagent-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSearcher struct {
	gotRole entity.Role
	chunks  []*entity.KnowledgeChunk
	err     error
}

func (s *stubSearcher) Retrieve(_ context.Context, _ string, role entity.Role) ([]*entity.KnowledgeChunk, error) {
	s.gotRole = role
	return s.chunks, s.err
}

type stubLLM struct {
	prompt string
	reply  string
	err    error
}

func (s *stubLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return "", errors.New("not used")
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	s.prompt = prompt
	return s.reply, s.err
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(
		[]*entity.KnowledgeChunk{{Text: "Probation lasts 90 days."}, {Text: "Leave accrues monthly."}},
		[]HistoryTurn{{Role: "human", Content: "hi"}, {Role: "ai", Content: "Hello!"}},
		"How long is probation?",
	)

	assert.Contains(t, prompt, "Probation lasts 90 days.\n\nLeave accrues monthly.")
	assert.Contains(t, prompt, "human: hi\nai: Hello!")
	assert.Contains(t, prompt, "USER QUESTION: How long is probation?")
	assert.Contains(t, prompt, "I do not have access to this information")
	assert.Contains(t, prompt, "This information appears to be restricted")
	assert.Contains(t, prompt, "I cannot find this information")
	assert.NotContains(t, prompt, "{context}")
}

func TestAnswer(t *testing.T) {
	s := &stubSearcher{chunks: []*entity.KnowledgeChunk{{Text: "VPN is mandatory off-site."}}}
	m := &stubLLM{reply: "  Use the VPN when working remotely.\n"}
	c := New(s, m)

	answer, err := c.Answer(context.Background(), "Do I need VPN?", entity.RoleITTech, nil)
	require.NoError(t, err)
	assert.Equal(t, "Use the VPN when working remotely.", answer)
	assert.Equal(t, entity.RoleITTech, s.gotRole)
	assert.Contains(t, m.prompt, "VPN is mandatory off-site.")
}

func TestAnswer_Errors(t *testing.T) {
	boom := errors.New("down")

	_, err := New(&stubSearcher{err: boom}, &stubLLM{}).Answer(context.Background(), "q", entity.RoleITTech, nil)
	assert.ErrorIs(t, err, boom)

	_, err = New(&stubSearcher{}, &stubLLM{err: boom}).Answer(context.Background(), "q", entity.RoleITTech, nil)
	assert.ErrorIs(t, err, boom)
}
