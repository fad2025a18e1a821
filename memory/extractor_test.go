package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SaiNageswarS/mentor-boot/db"
	"github.com/SaiNageswarS/mentor-boot/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) SaveMemory(ctx context.Context, memory db.MemoryModel) error {
	return errors.New("write failed")
}

func exchange(user, reply string) Exchange {
	return Exchange{UserMessage: user, AssistantReply: reply, ChildID: "child-1", VolunteerID: "vol-1", SessionID: "s-1"}
}

func TestExtractor_Classify(t *testing.T) {
	extractor := NewExtractor(store.NewInMemoryStore(), DefaultExtractorConfig())
	ctx := context.Background()

	tests := []struct {
		name           string
		user, reply    string
		wantOK         bool
		wantType       db.MemoryType
		wantImportance int
	}{
		{"no trigger", "How was school today?", "Ask about her friends.", false, "", 0},
		{"breakthrough", "She had a breakthrough today", "Wonderful, reinforce it.", true, db.BreakthroughMoment, 5},
		{"progress outranks technique", "Good progress with the technique worked", "Keep it up.", true, db.BreakthroughMoment, 5},
		{"effective technique", "That technique worked well", "Use it again.", true, db.EffectiveTechnique, 4},
		{"preference", "He prefers drawing to talking", "Use drawing prompts.", true, db.ChildPreference, 4},
		{"warning sign", "She struggles with sleep", "Watch for fatigue.", true, db.WarningSign, 4},
		{"cultural", "There is a family context here", "Involve elders respectfully.", true, db.CulturalReference, 3},
		{"default insight", "I noticed a pattern", "Note it down.", true, db.ImportantInsight, 3},
		{"case insensitive", "BREAKTHROUGH!", "Great.", true, db.BreakthroughMoment, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			memory, ok := extractor.Classify(ctx, exchange(tt.user, tt.reply))
			assert.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.wantType, memory.MemoryType)
			assert.Equal(t, tt.wantImportance, memory.Importance)
		})
	}
}

func TestExtractor_ContentAndTags(t *testing.T) {
	extractor := NewExtractor(store.NewInMemoryStore(), DefaultExtractorConfig())

	memory, ok := extractor.Classify(context.Background(),
		exchange("Breakthrough on exam anxiety and stress", "Build her confidence with small wins."))
	require.True(t, ok)

	assert.Equal(t, "Volunteer: Breakthrough on exam anxiety and stress\nAI Guidance: Build her confidence with small wins.", memory.Content)
	assert.ElementsMatch(t, []string{"anxiety", "stress", "confidence"}, memory.AssociatedTags)
	assert.Equal(t, "child-1", memory.ChildID)
	assert.Equal(t, "vol-1", memory.VolunteerID)
	assert.Equal(t, "s-1", memory.SessionID)
	assert.NotEmpty(t, memory.ID)
}

func TestExtractor_InjectedConfig(t *testing.T) {
	config := ExtractorConfig{
		Triggers:          []string{"homework"},
		Rules:             []ClassificationRule{{Keywords: []string{"homework"}, MemoryType: db.EffectiveTechnique, Importance: 2}},
		DefaultType:       db.ImportantInsight,
		DefaultImportance: 1,
	}
	extractor := NewExtractor(store.NewInMemoryStore(), config)

	_, ok := extractor.Classify(context.Background(), exchange("A breakthrough", "nice"))
	assert.False(t, ok)

	memory, ok := extractor.Classify(context.Background(), exchange("Homework routine helped", "nice"))
	require.True(t, ok)
	assert.Equal(t, db.EffectiveTechnique, memory.MemoryType)
	assert.Equal(t, 2, memory.Importance)
	assert.Empty(t, memory.AssociatedTags)
}

func TestExtractor_MaybeExtract(t *testing.T) {
	ctx := context.Background()

	t.Run("mundane exchange writes nothing", func(t *testing.T) {
		s := store.NewInMemoryStore()
		NewExtractor(s, DefaultExtractorConfig()).MaybeExtract(ctx, exchange("Hello", "Hi, how can I help?"))
		assert.Empty(t, s.Memories())
	})

	t.Run("breakthrough writes exactly one memory", func(t *testing.T) {
		s := store.NewInMemoryStore()
		NewExtractor(s, DefaultExtractorConfig()).MaybeExtract(ctx, exchange("We had a breakthrough", "Celebrate it with her."))

		memories := s.Memories()
		require.Len(t, memories, 1)
		assert.Equal(t, db.BreakthroughMoment, memories[0].MemoryType)
		assert.Equal(t, 5, memories[0].Importance)
	})

	t.Run("write failure is swallowed", func(t *testing.T) {
		assert.NotPanics(t, func() {
			NewExtractor(failingWriter{}, DefaultExtractorConfig()).MaybeExtract(ctx, exchange("breakthrough", "ok"))
		})
	})
}

func TestQueue(t *testing.T) {
	ctx := context.Background()

	t.Run("close drains queued exchanges", func(t *testing.T) {
		s := store.NewInMemoryStore()
		q := NewQueue(NewExtractor(s, DefaultExtractorConfig()), 8)
		q.Start()

		assert.True(t, q.Enqueue(ctx, exchange("breakthrough one", "ok")))
		assert.True(t, q.Enqueue(ctx, exchange("nothing notable", "ok")))
		assert.True(t, q.Enqueue(ctx, exchange("she prefers music", "ok")))
		q.Close()

		assert.Len(t, s.Memories(), 2)
		assert.False(t, q.Enqueue(ctx, exchange("breakthrough late", "ok")))
	})

	t.Run("full queue drops without blocking", func(t *testing.T) {
		q := NewQueue(NewExtractor(store.NewInMemoryStore(), DefaultExtractorConfig()), 1)

		// worker not started, so the single slot stays occupied
		assert.True(t, q.Enqueue(ctx, exchange("breakthrough", "ok")))

		done := make(chan bool, 1)
		go func() { done <- q.Enqueue(ctx, exchange("breakthrough", "ok")) }()

		select {
		case accepted := <-done:
			assert.False(t, accepted)
		case <-time.After(time.Second):
			t.Fatal("Enqueue blocked on a full queue")
		}

		q.Start()
		q.Close()
	})

	t.Run("cancelled context is skipped", func(t *testing.T) {
		s := store.NewInMemoryStore()
		q := NewQueue(NewExtractor(s, DefaultExtractorConfig()), 4)
		q.Start()

		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		assert.False(t, q.Enqueue(cancelled, exchange("breakthrough", "ok")))

		q.Close()
		assert.Empty(t, s.Memories())
	})

	t.Run("close is idempotent", func(t *testing.T) {
		q := NewQueue(NewExtractor(store.NewInMemoryStore(), DefaultExtractorConfig()), 0)
		q.Start()
		q.Close()
		assert.NotPanics(t, q.Close)
	})
}

func TestConversationLocks(t *testing.T) {
	ctx := context.Background()
	locks := NewConversationLocks()

	release, err := locks.Acquire(ctx, "conv-1")
	require.NoError(t, err)
	assert.Equal(t, 1, locks.Len())

	t.Run("other conversations are not blocked", func(t *testing.T) {
		other, err := locks.Acquire(ctx, "conv-2")
		require.NoError(t, err)
		other()
	})

	t.Run("same conversation waits", func(t *testing.T) {
		timeout, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
		defer cancel()

		_, err := locks.Acquire(timeout, "conv-1")
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	acquired := make(chan struct{})
	go func() {
		next, err := locks.Acquire(ctx, "conv-1")
		if err == nil {
			next()
		}
		close(acquired)
	}()

	release()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("waiter was not released")
	}
	assert.Equal(t, 0, locks.Len())
}
