package chain

import (
	"context"
	"fmt"
	"strings"

	"knagent-be/internal/entity"
	"knagent-be/pkg/llm"
)

const promptTemplate = `
You are the Enterprise Knowledge Agent for KNAgent. 
Your goal is to provide accurate, natural, and professional answers based ONLY on the provided context.

CONTEXT (Securely filtered):
{context}

CHAT HISTORY:
{chat_history}

USER QUESTION: {question}

INSTRUCTIONS:
1. **Response Style:** Answer naturally and smoothly. Do NOT mention "Document id", "metadata", or "chunks". 
   - BAD: "In Document(id='123')..."
   - GOOD: "According to the IT policy..."
2. **Synthesis:** Combine information from multiple sections into a single coherent paragraph or bulleted list.
3. **No Outside Knowledge:** Answer ONLY using the provided context.
4. **Handling Missing Info:**
   - If the question is about **HR, Leave, Probation, or Benefits** and you don't see the answer: 
     State: "I do not have access to this information based on your current role permissions. Please contact the HR Department directly."
   - If the question is about **IT, Security, or Passwords** and you don't see the answer: 
     State: "This information appears to be restricted. Please contact IT Support."
   - For other queries, state: "I cannot find this information in the documents available to your role."

Answer:
`

// Searcher is the role-filtered retriever.
type Searcher interface {
	Retrieve(ctx context.Context, query string, role entity.Role) ([]*entity.KnowledgeChunk, error)
}

// HistoryTurn is one rendered line of chat history; Role is "human" or "ai".
type HistoryTurn struct {
	Role    string
	Content string
}

// RetrievalChain answers in a single model call from role-filtered context. It never calls tools.
type RetrievalChain struct {
	searcher Searcher
	llm      llm.LLMProvider
}

func New(searcher Searcher, provider llm.LLMProvider) *RetrievalChain {
	return &RetrievalChain{searcher: searcher, llm: provider}
}

func (c *RetrievalChain) Answer(ctx context.Context, question string, role entity.Role, history []HistoryTurn) (string, error) {
	chunks, err := c.searcher.Retrieve(ctx, question, role)
	if err != nil {
		return "", err
	}

	prompt := BuildPrompt(chunks, history, question)
	answer, err := c.llm.Generate(ctx, prompt, llm.WithTemperature(0.1))
	if err != nil {
		return "", fmt.Errorf("llm generation failed: %w", err)
	}
	return strings.TrimSpace(answer), nil
}

func BuildPrompt(chunks []*entity.KnowledgeChunk, history []HistoryTurn, question string) string {
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	lines := make([]string, len(history))
	for i, h := range history {
		lines[i] = h.Role + ": " + h.Content
	}

	return strings.NewReplacer(
		"{context}", strings.Join(texts, "\n\n"),
		"{chat_history}", strings.Join(lines, "\n"),
		"{question}", question,
	).Replace(promptTemplate)
}
