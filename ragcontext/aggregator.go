package ragcontext

import (
	"context"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/SaiNageswarS/mentor-boot/db"
	"github.com/SaiNageswarS/mentor-boot/metrics"
	"github.com/SaiNageswarS/mentor-boot/store"
	"go.uber.org/zap"
)

// Limits bounds how many records of each slice are fetched.
type Limits struct {
	Sessions  int
	Memories  int
	Stories   int
	Knowledge int
	History   int
}

var DefaultLimits = Limits{
	Sessions:  6,
	Memories:  20,
	Stories:   10,
	Knowledge: 15,
	History:   20,
}

type Aggregator struct {
	reader store.ContextReader
	limits Limits
}

type AggregatorOption func(*Aggregator)

func WithLimits(limits Limits) AggregatorOption {
	return func(a *Aggregator) { a.limits = limits }
}

func NewAggregator(reader store.ContextReader, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{reader: reader, limits: DefaultLimits}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// BuildContext gathers the context for one mentor turn. sessionID and
// conversationID are optional. Only a missing child fails the call; every
// other slice degrades to empty when its query fails.
func (a *Aggregator) BuildContext(ctx context.Context, childID, sessionID, conversationID string) (*RagContext, error) {
	profile, err := a.reader.GetChildProfile(ctx, childID)
	if err != nil {
		return nil, err
	}
	child := profile.Child

	sessionsTask := async.Go(func() ([]db.SessionModel, error) {
		return a.reader.RecentSessions(ctx, childID, a.limits.Sessions)
	})

	currentTask := async.Go(func() (*db.SessionModel, error) {
		if sessionID == "" {
			return nil, nil
		}
		return a.reader.GetSession(ctx, sessionID)
	})

	memoriesTask := async.Go(func() ([]db.MemoryModel, error) {
		return a.reader.TopMemories(ctx, childID, a.limits.Memories)
	})

	storiesTask := async.Go(func() ([]db.CulturalStoryModel, error) {
		return a.reader.FindStories(ctx, StoryQueryFor(child), a.limits.Stories)
	})

	knowledgeTask := async.Go(func() ([]db.KnowledgeModel, error) {
		return a.reader.FindKnowledge(ctx, KnowledgeQueryFor(child), a.limits.Knowledge)
	})

	historyTask := async.Go(func() ([]db.MessageModel, error) {
		if conversationID == "" {
			return nil, nil
		}
		return a.reader.ConversationMessages(ctx, conversationID, a.limits.History)
	})

	rc := &RagContext{
		Child:               child,
		ActiveConcerns:      orEmpty(profile.ActiveConcerns),
		ActiveAssignments:   orEmpty(profile.ActiveAssignments),
		SessionHistory:      awaitSlice(sessionsTask, "sessions", childID),
		Memories:            awaitSlice(memoriesTask, "memories", childID),
		CulturalStories:     awaitSlice(storiesTask, "cultural_stories", childID),
		Knowledge:           awaitSlice(knowledgeTask, "knowledge", childID),
		ConversationHistory: awaitSlice(historyTask, "conversation_history", childID),
	}

	current, err := async.Await(currentTask)
	if err != nil {
		logSliceFailure("current_session", childID, err)
	} else {
		rc.CurrentSession = current
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rc.Metadata = Metadata{
		SessionCount:   len(rc.SessionHistory),
		MemoryCount:    len(rc.Memories),
		StoryCount:     len(rc.CulturalStories),
		KnowledgeCount: len(rc.Knowledge),
		HistoryCount:   len(rc.ConversationHistory),
		BuiltOn:        time.Now().UnixMilli(),
		CulturalContext: CulturalContext{
			State:    child.State,
			Language: child.Language,
		},
	}

	logger.Info("Built mentor context",
		zap.String("childId", childID),
		zap.Int("sessions", rc.Metadata.SessionCount),
		zap.Int("memories", rc.Metadata.MemoryCount),
		zap.Int("stories", rc.Metadata.StoryCount),
		zap.Int("knowledge", rc.Metadata.KnowledgeCount),
		zap.Int("history", rc.Metadata.HistoryCount))

	return rc, nil
}

func awaitSlice[T any](task <-chan async.Result[[]T], slice, childID string) []T {
	items, err := async.Await(task)
	if err != nil {
		logSliceFailure(slice, childID, err)
		return []T{}
	}
	return orEmpty(items)
}

func logSliceFailure(slice, childID string, err error) {
	metrics.ContextSliceFailures.WithLabelValues(slice).Inc()
	logger.Error("Context slice unavailable", zap.String("slice", slice), zap.String("childId", childID), zap.Error(err))
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
