package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"knagent-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaProvider_Generate(t *testing.T) {
	var got ollamaGenerateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(ollamaGenerateResponse{
			Model:    got.Model,
			Response: " I should search.\nAction: search_knowledge_base\nAction Input: leave policy\nObservation: made up",
			Done:     true,
		})
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3")
	out, err := p.Generate(context.Background(), "Question: hi\nThought:", llm.WithStop("\nObservation"), llm.WithTemperature(0.1))
	require.NoError(t, err)

	assert.Equal(t, "llama3", got.Model)
	assert.False(t, got.Stream)
	assert.Equal(t, []string{"\nObservation"}, got.Options.Stop)
	assert.Equal(t, 0.1, got.Options.Temperature)
	assert.Equal(t, " I should search.\nAction: search_knowledge_base\nAction Input: leave policy", out)
}

func TestOllamaProvider_Chat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		var req ollamaChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "assistant", req.Messages[1].Role)
		json.NewEncoder(w).Encode(ollamaChatResponse{Message: ollamaMessage{Role: "assistant", Content: "Hello!"}, Done: true})
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3")
	out, err := p.Chat(context.Background(), []llm.Message{
		{Role: "user", Content: "hi"},
		{Role: "model", Content: "hey"},
	}, llm.WithModel("llama3:8b"))
	require.NoError(t, err)
	assert.Equal(t, "Hello!", out)
}

func TestOllamaProvider_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "missing")
	_, err := p.Generate(context.Background(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}
