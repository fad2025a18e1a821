package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/mentor-boot/metrics"
	"github.com/ollama/ollama/api"
	"go.uber.org/zap"
)

// OllamaClient runs completions against a local Ollama server.
type OllamaClient struct {
	client *api.Client
	model  string
}

func NewOllamaClient(client *api.Client, model string) *OllamaClient {
	return &OllamaClient{client: client, model: model}
}

func (c *OllamaClient) Provider() string {
	return "ollama"
}

func (c *OllamaClient) GetModel() string {
	return c.model
}

func (c *OllamaClient) Complete(ctx context.Context, systemPrompt string, history []Message, userMessage string, opts ...LLMOption) (*Completion, error) {
	settings := defaultSettings(c.model)
	for _, opt := range opts {
		opt(&settings)
	}

	messages := BuildMessages(systemPrompt, history, userMessage, settings.historyTurns)
	apiMessages := make([]api.Message, len(messages))
	for i, m := range messages {
		apiMessages[i] = api.Message{Role: m.Role, Content: m.Content}
	}

	stream := false
	req := &api.ChatRequest{
		Model:    settings.model,
		Messages: apiMessages,
		Stream:   &stream,
		Options: map[string]any{
			"temperature": settings.temperature,
			"num_predict": settings.maxTokens,
		},
	}
	if settings.jsonResponse {
		req.Format = json.RawMessage(`"json"`)
	}

	var content strings.Builder
	var tokens *int

	start := time.Now()
	err := c.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		content.WriteString(resp.Message.Content)
		if resp.Done {
			total := resp.PromptEvalCount + resp.EvalCount
			tokens = &total
		}
		return nil
	})
	elapsed := time.Since(start)

	if err == nil && strings.TrimSpace(content.String()) == "" {
		err = &UpstreamError{Provider: c.Provider(), Message: "empty message content"}
	}

	if err != nil {
		metrics.CompletionLatency.WithLabelValues(c.Provider(), "error").Observe(elapsed.Seconds())
		logger.Error("Ollama chat failed", zap.String("model", settings.model), zap.Error(err))
		return nil, toUpstreamError(c.Provider(), err)
	}

	metrics.CompletionLatency.WithLabelValues(c.Provider(), "success").Observe(elapsed.Seconds())
	if tokens != nil {
		metrics.CompletionTokens.WithLabelValues(c.Provider()).Add(float64(*tokens))
	}

	return &Completion{
		Content:    content.String(),
		TokensUsed: tokens,
		LatencyMs:  elapsed.Milliseconds(),
	}, nil
}

func toUpstreamError(provider string, err error) error {
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return upstream
	}

	var statusErr api.StatusError
	if errors.As(err, &statusErr) {
		return &UpstreamError{Provider: provider, StatusCode: statusErr.StatusCode, Message: statusErr.ErrorMessage, Err: err}
	}

	return &UpstreamError{Provider: provider, Message: "error making request", Err: err}
}
