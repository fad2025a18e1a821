package mentor

import (
	"errors"

	"github.com/SaiNageswarS/mentor-boot/llm"
	"github.com/SaiNageswarS/mentor-boot/memory"
	"github.com/SaiNageswarS/mentor-boot/ragcontext"
	"github.com/SaiNageswarS/mentor-boot/store"
)

type MentorBuilder struct {
	config MentorConfig
}

func NewMentorBuilder() *MentorBuilder {
	return &MentorBuilder{
		config: MentorConfig{
			Limits:             ragcontext.DefaultLimits,
			Temperature:        llm.DefaultTemperature,
			MaxTokens:          llm.DefaultMaxTokens,
			HistoryTurns:       llm.DefaultHistoryTurns,
			RoadmapMaxTokens:   1500,
			RecommendedStories: 5,
			ExtractorConfig:    memory.DefaultExtractorConfig(),
			QueueSize:          memory.DefaultQueueSize,
		},
	}
}

func (b *MentorBuilder) WithCompleter(completer llm.Completer) *MentorBuilder {
	b.config.Completer = completer
	return b
}

func (b *MentorBuilder) WithStore(s store.RecordStore) *MentorBuilder {
	b.config.Store = s
	return b
}

func (b *MentorBuilder) WithLimits(limits ragcontext.Limits) *MentorBuilder {
	b.config.Limits = limits
	return b
}

func (b *MentorBuilder) WithTemperature(temperature float64) *MentorBuilder {
	b.config.Temperature = temperature
	return b
}

func (b *MentorBuilder) WithMaxTokens(max int) *MentorBuilder {
	b.config.MaxTokens = max
	return b
}

func (b *MentorBuilder) WithHistoryTurns(turns int) *MentorBuilder {
	b.config.HistoryTurns = turns
	return b
}

func (b *MentorBuilder) WithExtractorConfig(config memory.ExtractorConfig) *MentorBuilder {
	b.config.ExtractorConfig = config
	return b
}

func (b *MentorBuilder) WithQueueSize(size int) *MentorBuilder {
	b.config.QueueSize = size
	return b
}

// WithMemoryQueue uses a queue owned by the caller instead of starting one.
func (b *MentorBuilder) WithMemoryQueue(queue *memory.Queue) *MentorBuilder {
	b.config.Queue = queue
	return b
}

func (b *MentorBuilder) Build() (*Mentor, error) {
	if b.config.Completer == nil {
		return nil, errors.New("mentor: completer is required")
	}
	if b.config.Store == nil {
		return nil, errors.New("mentor: record store is required")
	}

	m := &Mentor{
		config:        b.config,
		aggregator:    ragcontext.NewAggregator(b.config.Store, ragcontext.WithLimits(b.config.Limits)),
		conversations: memory.NewConversationManager(b.config.Store),
		locks:         memory.NewConversationLocks(),
		queue:         b.config.Queue,
	}

	if m.queue == nil {
		m.queue = memory.NewQueue(memory.NewExtractor(b.config.Store, b.config.ExtractorConfig), b.config.QueueSize)
		m.queue.Start()
		m.ownsQueue = true
	}

	return m, nil
}
