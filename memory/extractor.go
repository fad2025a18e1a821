package memory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-collection-boot/linq"
	"github.com/SaiNageswarS/mentor-boot/db"
	"github.com/SaiNageswarS/mentor-boot/metrics"
	"github.com/SaiNageswarS/mentor-boot/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClassificationRule assigns a memory type when any keyword occurs in an exchange.
type ClassificationRule struct {
	Keywords   []string
	MemoryType db.MemoryType
	Importance int
}

// ExtractorConfig decides which exchanges are worth remembering.
// Rules are evaluated in order and the first match wins.
type ExtractorConfig struct {
	Triggers          []string
	Rules             []ClassificationRule
	TagVocabulary     []string
	DefaultType       db.MemoryType
	DefaultImportance int
}

func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		Triggers: []string{
			"breakthrough", "progress", "technique worked", "effective approach", "warning sign",
			"pattern", "family context", "cultural reference", "prefers", "responds well", "struggles with",
		},
		Rules: []ClassificationRule{
			{Keywords: []string{"breakthrough", "progress"}, MemoryType: db.BreakthroughMoment, Importance: 5},
			{Keywords: []string{"technique", "approach"}, MemoryType: db.EffectiveTechnique, Importance: 4},
			{Keywords: []string{"prefers", "responds well"}, MemoryType: db.ChildPreference, Importance: 4},
			{Keywords: []string{"warning", "struggles"}, MemoryType: db.WarningSign, Importance: 4},
			{Keywords: []string{"family", "cultural"}, MemoryType: db.CulturalReference, Importance: 3},
		},
		TagVocabulary: []string{
			"academic", "family", "emotional", "behavioral", "social",
			"anxiety", "stress", "motivation", "confidence", "communication",
		},
		DefaultType:       db.ImportantInsight,
		DefaultImportance: 3,
	}
}

// Exchange is one volunteer message and the guidance given for it.
type Exchange struct {
	UserMessage    string
	AssistantReply string
	ChildID        string
	VolunteerID    string
	SessionID      string
}

func (e Exchange) text() string {
	return strings.ToLower(e.UserMessage + " " + e.AssistantReply)
}

// Extractor turns notable exchanges into conversation memories.
type Extractor struct {
	writer store.MemoryWriter
	config ExtractorConfig
	now    func() time.Time
}

func NewExtractor(writer store.MemoryWriter, config ExtractorConfig) *Extractor {
	return &Extractor{writer: writer, config: config, now: time.Now}
}

// Classify returns the memory an exchange would produce, or false when no
// trigger keyword occurs in it.
func (e *Extractor) Classify(ctx context.Context, ex Exchange) (db.MemoryModel, bool) {
	text := ex.text()
	if !containsAny(text, e.config.Triggers) {
		return db.MemoryModel{}, false
	}

	memoryType, importance := e.config.DefaultType, e.config.DefaultImportance
	for _, rule := range e.config.Rules {
		if containsAny(text, rule.Keywords) {
			memoryType, importance = rule.MemoryType, rule.Importance
			break
		}
	}

	tags, err := linq.Pipe2(
		linq.FromSlice(ctx, e.config.TagVocabulary),
		linq.Where(func(tag string) bool {
			return strings.Contains(text, tag)
		}),
		linq.ToSlice[string](),
	)
	if err != nil || tags == nil {
		tags = []string{}
	}

	return db.MemoryModel{
		ID:             uuid.NewString(),
		ChildID:        ex.ChildID,
		VolunteerID:    ex.VolunteerID,
		SessionID:      ex.SessionID,
		MemoryType:     memoryType,
		Content:        fmt.Sprintf("Volunteer: %s\nAI Guidance: %s", ex.UserMessage, ex.AssistantReply),
		Importance:     importance,
		AssociatedTags: tags,
		CreatedOn:      e.now().UnixMilli(),
	}, true
}

// MaybeExtract persists a memory for a notable exchange. Failures are logged only.
func (e *Extractor) MaybeExtract(ctx context.Context, ex Exchange) {
	memory, ok := e.Classify(ctx, ex)
	if !ok {
		return
	}

	if err := e.writer.SaveMemory(ctx, memory); err != nil {
		metrics.MemoryFailures.Inc()
		logger.Error("Failed to save conversation memory",
			zap.String("childId", ex.ChildID),
			zap.String("memoryType", string(memory.MemoryType)),
			zap.Error(err))
		return
	}

	metrics.MemoriesCaptured.WithLabelValues(string(memory.MemoryType)).Inc()
	logger.Info("Captured conversation memory",
		zap.String("childId", ex.ChildID),
		zap.String("memoryType", string(memory.MemoryType)),
		zap.Int("importance", memory.Importance))
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if k != "" && strings.Contains(text, strings.ToLower(k)) {
			return true
		}
	}
	return false
}
