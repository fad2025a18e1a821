package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/mentor-boot/metrics"
	"go.uber.org/zap"
)

const DefaultOpenAIURL = "https://api.openai.com/v1/chat/completions"

// OpenAIClient talks to any OpenAI-compatible chat-completion endpoint.
// Endpoint and credential are fixed at construction.
type OpenAIClient struct {
	apiKey     string
	httpClient *http.Client
	url        string
	model      string
}

func NewOpenAIClient(url, apiKey, model string, httpClient *http.Client) *OpenAIClient {
	if url == "" {
		url = DefaultOpenAIURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}

	return &OpenAIClient{
		apiKey:     apiKey,
		httpClient: httpClient,
		url:        url,
		model:      model,
	}
}

func (c *OpenAIClient) Provider() string {
	return "openai"
}

func (c *OpenAIClient) GetModel() string {
	return c.model
}

func (c *OpenAIClient) Complete(ctx context.Context, systemPrompt string, history []Message, userMessage string, opts ...LLMOption) (*Completion, error) {
	settings := defaultSettings(c.model)
	for _, opt := range opts {
		opt(&settings)
	}

	request := chatRequest{
		Model:       settings.model,
		Messages:    BuildMessages(systemPrompt, history, userMessage, settings.historyTurns),
		Temperature: settings.temperature,
		MaxTokens:   settings.maxTokens,
	}
	if settings.jsonResponse {
		request.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	start := time.Now()
	completion, err := c.makeRequest(ctx, request)
	elapsed := time.Since(start)

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	metrics.CompletionLatency.WithLabelValues(c.Provider(), outcome).Observe(elapsed.Seconds())

	if err != nil {
		logger.Error("Completion request failed", zap.String("model", settings.model), zap.Error(err))
		return nil, err
	}

	completion.LatencyMs = elapsed.Milliseconds()
	if completion.TokensUsed != nil {
		metrics.CompletionTokens.WithLabelValues(c.Provider()).Add(float64(*completion.TokensUsed))
	}
	return completion, nil
}

func (c *OpenAIClient) makeRequest(ctx context.Context, request chatRequest) (*Completion, error) {
	jsonData, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("error marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Provider: c.Provider(), Message: "error making request", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Provider: c.Provider(), StatusCode: resp.StatusCode, Message: "error reading response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{Provider: c.Provider(), StatusCode: resp.StatusCode, Message: string(body)}
	}

	var response chatResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, &UpstreamError{Provider: c.Provider(), StatusCode: resp.StatusCode, Message: "malformed response envelope", Err: err}
	}

	if len(response.Choices) == 0 {
		return nil, &UpstreamError{Provider: c.Provider(), StatusCode: resp.StatusCode, Message: "no choices in response"}
	}

	content := response.Choices[0].Message.Content
	if content == nil || strings.TrimSpace(*content) == "" {
		return nil, &UpstreamError{Provider: c.Provider(), StatusCode: resp.StatusCode, Message: "no content in first choice"}
	}

	completion := &Completion{Content: *content}
	if response.Usage != nil && response.Usage.TotalTokens != nil {
		tokens := *response.Usage.TotalTokens
		completion.TokensUsed = &tokens
	}
	return completion, nil
}

// OpenAI-compatible API types
type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
	Usage   *chatUsage   `json:"usage"`
}

type chatChoice struct {
	Index        int         `json:"index"`
	Message      chatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

type chatMessage struct {
	Role    string  `json:"role"`
	Content *string `json:"content"`
}

type chatUsage struct {
	PromptTokens     int  `json:"prompt_tokens"`
	CompletionTokens int  `json:"completion_tokens"`
	TotalTokens      *int `json:"total_tokens"`
}
