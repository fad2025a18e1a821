package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestNewOpenAIClient(t *testing.T) {
	client := NewOpenAIClient("", "test-key", "gpt-4o-mini", nil)
	assert.Equal(t, DefaultOpenAIURL, client.url)
	assert.Equal(t, "gpt-4o-mini", client.GetModel())
	assert.Equal(t, "openai", client.Provider())
	assert.NotNil(t, client.httpClient)
}

func TestOpenAIClientComplete(t *testing.T) {
	var captured chatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Try a calm breathing exercise."}}],"usage":{"total_tokens":42}}`))
	}))
	defer server.Close()

	client := NewOpenAIClient(server.URL+"/v1/chat/completions", "test-key", "gpt-4o-mini", server.Client())

	history := make([]Message, 0, 12)
	for i := 0; i < 6; i++ {
		history = append(history, Message{Role: "user", Content: "q"}, Message{Role: "assistant", Content: "a"})
	}

	completion, err := client.Complete(context.Background(), "You are a mentor", history, "She seems anxious")
	require.NoError(t, err)

	assert.Equal(t, "Try a calm breathing exercise.", completion.Content)
	require.NotNil(t, completion.TokensUsed)
	assert.Equal(t, 42, *completion.TokensUsed)
	assert.GreaterOrEqual(t, completion.LatencyMs, int64(0))

	// system + last 8 history entries + user
	require.Len(t, captured.Messages, 10)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "You are a mentor", captured.Messages[0].Content)
	assert.Equal(t, "user", captured.Messages[9].Role)
	assert.Equal(t, "She seems anxious", captured.Messages[9].Content)
	assert.Equal(t, 0.7, captured.Temperature)
	assert.Equal(t, 1000, captured.MaxTokens)
	assert.Nil(t, captured.ResponseFormat)
}

func TestOpenAIClientCompleteWithOptions(t *testing.T) {
	var captured chatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(`{"choices":[{"message":{"content":"{}"}}]}`))
	}))
	defer server.Close()

	client := NewOpenAIClient(server.URL, "", "gpt-4o-mini", server.Client())
	completion, err := client.Complete(context.Background(), "sys", nil, "plan",
		WithJSONResponse(true), WithMaxTokens(1500), WithTemperature(0.2), WithLLMModel("other-model"))
	require.NoError(t, err)

	assert.Equal(t, "{}", completion.Content)
	assert.Nil(t, completion.TokensUsed)
	require.NotNil(t, captured.ResponseFormat)
	assert.Equal(t, "json_object", captured.ResponseFormat.Type)
	assert.Equal(t, 1500, captured.MaxTokens)
	assert.Equal(t, 0.2, captured.Temperature)
	assert.Equal(t, "other-model", captured.Model)
}

func TestOpenAIClientUpstreamErrors(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		wantStatus int
	}{
		{"non-2xx", http.StatusInternalServerError, `{"error":"boom"}`, http.StatusInternalServerError},
		{"rate limited", http.StatusTooManyRequests, `slow down`, http.StatusTooManyRequests},
		{"malformed envelope", http.StatusOK, `not json`, http.StatusOK},
		{"no choices", http.StatusOK, `{"choices":[]}`, http.StatusOK},
		{"missing content", http.StatusOK, `{"choices":[{"message":{"role":"assistant"}}]}`, http.StatusOK},
		{"blank content", http.StatusOK, `{"choices":[{"message":{"content":"   "}}]}`, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewOpenAIClient(server.URL, "k", "m", server.Client())
			completion, err := client.Complete(context.Background(), "sys", nil, "hi")

			require.Error(t, err)
			assert.Nil(t, completion)

			var upstream *UpstreamError
			require.True(t, errors.As(err, &upstream))
			assert.Equal(t, tt.wantStatus, upstream.StatusCode)
			assert.Equal(t, codes.Unavailable, status.Code(err))
		})
	}
}

func TestOpenAIClientUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewOpenAIClient(url, "k", "m", nil)
	_, err := client.Complete(context.Background(), "sys", nil, "hi")

	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, 0, upstream.StatusCode)
	assert.Equal(t, codes.Unavailable, status.Code(err))
}

func TestBuildMessages(t *testing.T) {
	history := []Message{
		{Role: "user", Content: "1"},
		{Role: "assistant", Content: "2"},
		{Role: "user", Content: "3"},
	}

	t.Run("trims to last turns", func(t *testing.T) {
		msgs := BuildMessages("sys", history, "4", 2)
		assert.Equal(t, []Message{
			{Role: "system", Content: "sys"},
			{Role: "assistant", Content: "2"},
			{Role: "user", Content: "3"},
			{Role: "user", Content: "4"},
		}, msgs)
	})

	t.Run("fewer entries than window", func(t *testing.T) {
		msgs := BuildMessages("sys", history, "4", 8)
		assert.Len(t, msgs, 5)
	})

	t.Run("zero window", func(t *testing.T) {
		msgs := BuildMessages("sys", history, "4", 0)
		assert.Equal(t, []Message{{Role: "system", Content: "sys"}, {Role: "user", Content: "4"}}, msgs)
	})
}
