package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"knagent-be/pkg/llm"
)

const DefaultRouterURL = "https://router.huggingface.co/v1"

// HuggingFaceProvider talks to the OpenAI compatible inference router.
// Stop sequences are forwarded and also applied locally since some hosted
// models ignore them.
type HuggingFaceProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

var _ llm.LLMProvider = (*HuggingFaceProvider)(nil)

type completionRequest struct {
	Model       string        `json:"model"`
	Messages    []llm.Message `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature *float64      `json:"temperature,omitempty"`
	Stop        []string      `json:"stop,omitempty"`
}

type completionResponse struct {
	Choices []struct {
		Message llm.Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func NewHuggingFaceProvider(apiKey, baseURL, model string) *HuggingFaceProvider {
	if baseURL == "" {
		baseURL = DefaultRouterURL
	}
	return &HuggingFaceProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

func (p *HuggingFaceProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	opts := &llm.Options{Model: p.model, MaxTokens: 512, Temperature: -1}
	for _, o := range options {
		o(opts)
	}

	messages := make([]llm.Message, len(history))
	for i, m := range history {
		if m.Role == "model" {
			m.Role = "assistant"
		}
		messages[i] = m
	}

	body := completionRequest{
		Model:     opts.Model,
		Messages:  messages,
		MaxTokens: opts.MaxTokens,
		Stop:      opts.Stop,
	}
	if opts.Temperature >= 0 {
		t := opts.Temperature
		body.Temperature = &t
	}

	var out completionResponse
	if err := p.post(ctx, "/chat/completions", body, &out); err != nil {
		return "", err
	}
	if out.Error != nil {
		return "", fmt.Errorf("huggingface: %s", out.Error.Message)
	}
	if len(out.Choices) == 0 {
		return "", errors.New("huggingface: response has no choices")
	}
	return llm.TrimAtStop(out.Choices[0].Message.Content, opts.Stop), nil
}

// Generate sends the prompt as a single user turn.
func (p *HuggingFaceProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

func (p *HuggingFaceProvider) post(ctx context.Context, path string, payload, out interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("huggingface request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("huggingface error: status %d, body: %s", resp.StatusCode, string(data))
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
