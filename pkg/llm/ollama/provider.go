package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"knagent-be/pkg/llm"
)

type OllamaProvider struct {
	BaseURL   string
	ModelName string
	Client    *http.Client
}

// Ensure OllamaProvider implements LLMProvider
var _ llm.LLMProvider = &OllamaProvider{}

func NewOllamaProvider(baseURL, modelName string) *OllamaProvider {
	return &OllamaProvider{
		BaseURL:   baseURL,
		ModelName: modelName,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  *ollamaOptions  `json:"options,omitempty"`
}

type ollamaGenerateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options *ollamaOptions `json:"options,omitempty"`
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaOptions struct {
	Temperature float64  `json:"temperature,omitempty"`
	NumPredict  int      `json:"num_predict,omitempty"`
	Stop        []string `json:"stop,omitempty"`
}

type ollamaChatResponse struct {
	Model   string        `json:"model"`
	Message ollamaMessage `json:"message"`
	Done    bool          `json:"done"`
}

type ollamaGenerateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// --- Interface Implementation ---

func (o *OllamaProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := o.resolveOptions(opts)

	ollamaMessages := make([]ollamaMessage, len(history))
	for i, msg := range history {
		role := msg.Role
		if role == "model" {
			role = "assistant"
		}
		ollamaMessages[i] = ollamaMessage{
			Role:    role,
			Content: msg.Content,
		}
	}

	reqPayload := ollamaChatRequest{
		Model:    o.modelFor(options),
		Messages: ollamaMessages,
		Stream:   false,
		Options:  toOllamaOptions(options),
	}

	var ollamaResp ollamaChatResponse
	if err := o.post(ctx, "/api/chat", reqPayload, &ollamaResp); err != nil {
		return "", err
	}
	return llm.TrimAtStop(ollamaResp.Message.Content, options.Stop), nil
}

// Generate uses the completion endpoint so the prompt reaches the model verbatim.
func (o *OllamaProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	options := o.resolveOptions(opts)

	reqPayload := ollamaGenerateRequest{
		Model:   o.modelFor(options),
		Prompt:  prompt,
		Stream:  false,
		Options: toOllamaOptions(options),
	}

	var ollamaResp ollamaGenerateResponse
	if err := o.post(ctx, "/api/generate", reqPayload, &ollamaResp); err != nil {
		return "", err
	}
	return llm.TrimAtStop(ollamaResp.Response, options.Stop), nil
}

func (o *OllamaProvider) resolveOptions(opts []llm.Option) *llm.Options {
	options := &llm.Options{
		Temperature: 0.7, // Default
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

func (o *OllamaProvider) modelFor(options *llm.Options) string {
	if options.Model != "" {
		return options.Model
	}
	return o.ModelName
}

func toOllamaOptions(options *llm.Options) *ollamaOptions {
	out := &ollamaOptions{
		Temperature: options.Temperature,
		Stop:        options.Stop,
	}
	if options.MaxTokens > 0 {
		out.NumPredict = options.MaxTokens
	}
	return out
}

func (o *OllamaProvider) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.BaseURL+path, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.Client.Do(req)
	if err != nil {
		return fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
