package llm

import (
	"context"
)

const (
	DefaultTemperature  = 0.7
	DefaultMaxTokens    = 1000
	DefaultHistoryTurns = 8
)

// Completer sends a system prompt, replayed history and one user turn to a
// chat-completion model and returns its reply.
type Completer interface {
	Complete(
		ctx context.Context,
		systemPrompt string,
		history []Message,
		userMessage string,
		opts ...LLMOption,
	) (*Completion, error)

	Provider() string

	GetModel() string
}

type Completion struct {
	Content    string
	TokensUsed *int // nil when the endpoint does not report usage
	LatencyMs  int64
}

type LLMSettings struct {
	model        string  // model name
	temperature  float64 // randomness (0.0 to 1.0)
	maxTokens    int     // maximum tokens to generate
	historyTurns int     // history entries replayed before the user turn
	jsonResponse bool    // ask the endpoint for a JSON object
}

type LLMOption func(*LLMSettings)

func defaultSettings(model string) LLMSettings {
	return LLMSettings{
		model:        model,
		temperature:  DefaultTemperature,
		maxTokens:    DefaultMaxTokens,
		historyTurns: DefaultHistoryTurns,
	}
}

// Common options for all LLM providers
func WithTemperature(temp float64) LLMOption {
	return func(s *LLMSettings) { s.temperature = temp }
}

func WithMaxTokens(tokens int) LLMOption {
	return func(s *LLMSettings) { s.maxTokens = tokens }
}

func WithLLMModel(model string) LLMOption {
	return func(s *LLMSettings) { s.model = model }
}

func WithHistoryTurns(turns int) LLMOption {
	return func(s *LLMSettings) { s.historyTurns = turns }
}

func WithJSONResponse(enabled bool) LLMOption {
	return func(s *LLMSettings) { s.jsonResponse = enabled }
}

type Message struct {
	Role    string `json:"role"`    // "user", "assistant", "system"
	Content string `json:"content"` // the message content
}

// BuildMessages lays out [system, last historyTurns history entries, user].
func BuildMessages(systemPrompt string, history []Message, userMessage string, historyTurns int) []Message {
	if historyTurns < 0 {
		historyTurns = 0
	}
	if len(history) > historyTurns {
		history = history[len(history)-historyTurns:]
	}

	messages := make([]Message, 0, len(history)+2)
	messages = append(messages, Message{Role: "system", Content: systemPrompt})
	messages = append(messages, history...)
	messages = append(messages, Message{Role: "user", Content: userMessage})
	return messages
}
