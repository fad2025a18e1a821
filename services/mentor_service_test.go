package services

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SaiNageswarS/mentor-boot/db"
	"github.com/SaiNageswarS/mentor-boot/llm"
	"github.com/SaiNageswarS/mentor-boot/memory"
	"github.com/SaiNageswarS/mentor-boot/mentor"
	"github.com/SaiNageswarS/mentor-boot/store"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCompleter struct {
	reply string
	err   error
}

func (s stubCompleter) Complete(ctx context.Context, systemPrompt string, history []llm.Message, userMessage string, opts ...llm.LLMOption) (*llm.Completion, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &llm.Completion{Content: s.reply, LatencyMs: 5}, nil
}

func (s stubCompleter) Provider() string { return "stub" }

func (s stubCompleter) GetModel() string { return "stub-model" }

func newTestRouter(t *testing.T, completer llm.Completer) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := store.NewInMemoryStore()
	s.PutChild(db.ChildModel{ID: "aanya", Name: "Aanya", Age: 12, State: "Maharashtra"})
	s.PutConcern(db.ConcernModel{ID: "c1", ChildID: "aanya", Category: "ACADEMIC", Severity: db.SeverityHigh, Status: db.ConcernOpen})
	s.PutChild(db.ChildModel{ID: "ravi", Name: "Ravi", Age: 9, State: "Kerala"})

	m, err := mentor.NewMentorBuilder().WithCompleter(completer).WithStore(s).Build()
	require.NoError(t, err)
	t.Cleanup(m.Close)

	return NewRouter(m)
}

func doJSON(r http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

var volunteer = map[string]string{VolunteerHeader: "vol-1"}

func TestChatRoute(t *testing.T) {
	r := newTestRouter(t, stubCompleter{reply: "Reassure her and plan short study breaks."})

	w := doJSON(r, http.MethodPost, "/api/mentor/chat", map[string]string{
		"message":   "She seems anxious about exams",
		"childId":   "aanya",
		"sessionId": "session-1",
	}, volunteer)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp mentor.ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Reassure her and plan short study breaks.", resp.Response)
	assert.NotEmpty(t, resp.ConversationID)
	assert.Contains(t, resp.Metadata.ContextSources, "child_profile")
	assert.Contains(t, resp.Metadata.ContextSources, "session_history")
	assert.Nil(t, resp.Metadata.TokensUsed)

	w = doJSON(r, http.MethodGet, "/api/mentor/conversations/"+resp.ConversationID+"/messages", nil, volunteer)
	require.Equal(t, http.StatusOK, w.Code)

	var log struct {
		Messages []db.MessageModel `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &log))
	require.Len(t, log.Messages, 2)
	assert.Equal(t, db.RoleUser, log.Messages[0].Role)
	assert.Equal(t, db.RoleAssistant, log.Messages[1].Role)
}

func TestChatRouteErrors(t *testing.T) {
	r := newTestRouter(t, stubCompleter{reply: "ok"})

	tests := []struct {
		name    string
		body    any
		headers map[string]string
		want    int
	}{
		{"missing volunteer", map[string]string{"message": "hi", "childId": "aanya"}, nil, http.StatusUnauthorized},
		{"missing child", map[string]string{"message": "hi"}, volunteer, http.StatusBadRequest},
		{"missing message", map[string]string{"childId": "aanya"}, volunteer, http.StatusBadRequest},
		{"malformed body", "not an object", volunteer, http.StatusBadRequest},
		{"unknown child", map[string]string{"message": "hi", "childId": "nobody"}, volunteer, http.StatusNotFound},
		{"unknown conversation", map[string]string{"message": "hi", "childId": "aanya", "conversationId": "missing"}, volunteer, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, "/api/mentor/chat", tt.body, tt.headers)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestChatRouteConversationOfAnotherChild(t *testing.T) {
	r := newTestRouter(t, stubCompleter{reply: "ok"})

	w := doJSON(r, http.MethodPost, "/api/mentor/chat", map[string]string{"message": "hi", "childId": "aanya"}, volunteer)
	require.Equal(t, http.StatusOK, w.Code)
	var first mentor.ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))

	w = doJSON(r, http.MethodPost, "/api/mentor/chat", map[string]string{
		"message":        "He is not sleeping",
		"childId":        "ravi",
		"conversationId": first.ConversationID,
	}, volunteer)
	assert.Equal(t, http.StatusNotFound, w.Code, w.Body.String())

	w = doJSON(r, http.MethodGet, "/api/mentor/conversations/"+first.ConversationID+"/messages", nil, volunteer)
	require.Equal(t, http.StatusOK, w.Code)
	var log struct {
		Messages []db.MessageModel `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &log))
	assert.Len(t, log.Messages, 2)
	assert.NotContains(t, w.Body.String(), "He is not sleeping")
}

func TestRoutesRequireVolunteer(t *testing.T) {
	r := newTestRouter(t, stubCompleter{reply: "ok"})

	tests := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"chat", http.MethodPost, "/api/mentor/chat", map[string]string{"message": "hi", "childId": "aanya"}},
		{"roadmap", http.MethodPost, "/api/mentor/roadmap", map[string]any{"childProfile": map[string]any{"id": "aanya"}}},
		{"messages", http.MethodGet, "/api/mentor/conversations/any/messages", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, tt.method, tt.path, tt.body, map[string]string{VolunteerHeader: "  "})
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "unauthenticated")
		})
	}
}

func TestChatRouteUpstreamFailure(t *testing.T) {
	r := newTestRouter(t, stubCompleter{err: &llm.UpstreamError{Provider: "stub", StatusCode: 500, Message: "boom"}})

	w := doJSON(r, http.MethodPost, "/api/mentor/chat", map[string]string{"message": "hi", "childId": "aanya"}, volunteer)
	require.Equal(t, http.StatusBadGateway, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, memory.ErrorNotice, body["error"])
	require.NotEmpty(t, body["conversationId"])

	w = doJSON(r, http.MethodGet, "/api/mentor/conversations/"+body["conversationId"]+"/messages", nil, volunteer)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "SYSTEM")
}

func TestRoadmapRoute(t *testing.T) {
	r := newTestRouter(t, stubCompleter{reply: "garbage"})

	w := doJSON(r, http.MethodPost, "/api/mentor/roadmap", map[string]any{
		"childProfile":   map[string]any{"id": "aanya", "name": "Aanya", "age": 12},
		"activeConcerns": []any{},
	}, volunteer)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success            bool              `json:"success"`
		Roadmap            map[string]any    `json:"roadmap"`
		RecommendedStories []json.RawMessage `json:"recommendedStories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	for _, key := range []string{"preSessionPrep", "sessionObjectives", "warningSigns", "conversationStarters",
		"recommendedApproach", "culturalContext", "expectedChallenges", "successIndicators", "followUpActions"} {
		assert.NotEmpty(t, body.Roadmap[key], key)
	}
	assert.NotNil(t, body.RecommendedStories)
}

func TestMessagesRouteUnknown(t *testing.T) {
	r := newTestRouter(t, stubCompleter{reply: "ok"})

	w := doJSON(r, http.MethodGet, "/api/mentor/conversations/missing/messages", nil, volunteer)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSystemRoutes(t *testing.T) {
	r := newTestRouter(t, stubCompleter{reply: "ok"})

	w := doJSON(r, http.MethodGet, "/healthz", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = doJSON(r, http.MethodGet, "/metrics", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
