package store

import (
	"context"
	"time"

	"github.com/SaiNageswarS/mentor-boot/db"
	"github.com/SaiNageswarS/mentor-boot/metrics"
)

// Instrument returns a RecordStore that records metrics.StoreLatency for every operation.
func Instrument(inner RecordStore) RecordStore {
	return &instrumentedStore{inner: inner}
}

type instrumentedStore struct {
	inner RecordStore
}

func (s *instrumentedStore) GetChildProfile(ctx context.Context, childID string) (*db.ChildProfile, error) {
	defer metrics.ObserveStore("get_child_profile", time.Now())
	return s.inner.GetChildProfile(ctx, childID)
}

func (s *instrumentedStore) RecentSessions(ctx context.Context, childID string, limit int) ([]db.SessionModel, error) {
	defer metrics.ObserveStore("recent_sessions", time.Now())
	return s.inner.RecentSessions(ctx, childID, limit)
}

func (s *instrumentedStore) GetSession(ctx context.Context, sessionID string) (*db.SessionModel, error) {
	defer metrics.ObserveStore("get_session", time.Now())
	return s.inner.GetSession(ctx, sessionID)
}

func (s *instrumentedStore) TopMemories(ctx context.Context, childID string, limit int) ([]db.MemoryModel, error) {
	defer metrics.ObserveStore("top_memories", time.Now())
	return s.inner.TopMemories(ctx, childID, limit)
}

func (s *instrumentedStore) FindStories(ctx context.Context, q StoryQuery, limit int) ([]db.CulturalStoryModel, error) {
	defer metrics.ObserveStore("find_stories", time.Now())
	return s.inner.FindStories(ctx, q, limit)
}

func (s *instrumentedStore) FindKnowledge(ctx context.Context, q KnowledgeQuery, limit int) ([]db.KnowledgeModel, error) {
	defer metrics.ObserveStore("find_knowledge", time.Now())
	return s.inner.FindKnowledge(ctx, q, limit)
}

func (s *instrumentedStore) ConversationMessages(ctx context.Context, conversationID string, limit int) ([]db.MessageModel, error) {
	defer metrics.ObserveStore("conversation_messages", time.Now())
	return s.inner.ConversationMessages(ctx, conversationID, limit)
}

func (s *instrumentedStore) GetConversation(ctx context.Context, conversationID string) (*db.ConversationModel, error) {
	defer metrics.ObserveStore("get_conversation", time.Now())
	return s.inner.GetConversation(ctx, conversationID)
}

func (s *instrumentedStore) CreateConversation(ctx context.Context, conversation db.ConversationModel) error {
	defer metrics.ObserveStore("create_conversation", time.Now())
	return s.inner.CreateConversation(ctx, conversation)
}

func (s *instrumentedStore) AppendMessage(ctx context.Context, message db.MessageModel) error {
	defer metrics.ObserveStore("append_message", time.Now())
	return s.inner.AppendMessage(ctx, message)
}

func (s *instrumentedStore) SaveMemory(ctx context.Context, memory db.MemoryModel) error {
	defer metrics.ObserveStore("save_memory", time.Now())
	return s.inner.SaveMemory(ctx, memory)
}
