package mentor

import (
	"github.com/SaiNageswarS/mentor-boot/llm"
	"github.com/SaiNageswarS/mentor-boot/memory"
	"github.com/SaiNageswarS/mentor-boot/ragcontext"
	"github.com/SaiNageswarS/mentor-boot/store"
)

// MentorConfig holds configuration for the mentor pipeline
type MentorConfig struct {
	Completer    llm.Completer
	Store        store.RecordStore
	Limits       ragcontext.Limits
	Temperature  float64
	MaxTokens    int
	HistoryTurns int

	// Roadmap generation
	RoadmapMaxTokens   int
	RecommendedStories int

	// Memory capture
	ExtractorConfig memory.ExtractorConfig
	QueueSize       int
	Queue           *memory.Queue
}

// Mentor answers volunteer questions about a child, grounded in that child's records.
type Mentor struct {
	config        MentorConfig
	aggregator    *ragcontext.Aggregator
	conversations *memory.ConversationManager
	locks         *memory.ConversationLocks
	queue         *memory.Queue
	ownsQueue     bool
}

func (m *Mentor) chatOptions() []llm.LLMOption {
	return []llm.LLMOption{
		llm.WithTemperature(m.config.Temperature),
		llm.WithMaxTokens(m.config.MaxTokens),
		llm.WithHistoryTurns(m.config.HistoryTurns),
	}
}

// Close drains pending memory captures when the mentor started its own queue.
func (m *Mentor) Close() {
	if m.ownsQueue {
		m.queue.Close()
	}
}
