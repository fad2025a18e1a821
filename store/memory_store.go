package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/SaiNageswarS/mentor-boot/db"
)

// InMemoryStore is a process-local RecordStore used for local runs and tests.
type InMemoryStore struct {
	mu            sync.RWMutex
	children      map[string]db.ChildModel
	concerns      []db.ConcernModel
	assignments   []db.AssignmentModel
	sessions      []db.SessionModel
	memories      []db.MemoryModel
	stories       []db.CulturalStoryModel
	knowledge     []db.KnowledgeModel
	conversations map[string]db.ConversationModel
	messages      []db.MessageModel
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		children:      map[string]db.ChildModel{},
		conversations: map[string]db.ConversationModel{},
	}
}

func (s *InMemoryStore) PutChild(child db.ChildModel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.children[child.ID] = child
}

func (s *InMemoryStore) PutConcern(concern db.ConcernModel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.concerns = append(s.concerns, concern)
}

func (s *InMemoryStore) PutAssignment(assignment db.AssignmentModel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignments = append(s.assignments, assignment)
}

func (s *InMemoryStore) PutSession(session db.SessionModel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = append(s.sessions, session)
}

func (s *InMemoryStore) PutStory(story db.CulturalStoryModel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stories = append(s.stories, story)
}

func (s *InMemoryStore) PutKnowledge(resource db.KnowledgeModel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.knowledge = append(s.knowledge, resource)
}

// Memories returns a copy of every stored memory in write order.
func (s *InMemoryStore) Memories() []db.MemoryModel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.memories)
}

func (s *InMemoryStore) GetChildProfile(ctx context.Context, childID string) (*db.ChildProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	child, ok := s.children[childID]
	if !ok {
		return nil, NotFound("child", childID)
	}

	profile := &db.ChildProfile{
		Child:             child,
		ActiveConcerns:    []db.ConcernModel{},
		ActiveAssignments: []db.AssignmentModel{},
	}
	for _, c := range s.concerns {
		if c.ChildID == childID && c.IsActive() {
			profile.ActiveConcerns = append(profile.ActiveConcerns, c)
		}
	}
	slices.SortStableFunc(profile.ActiveConcerns, func(a, b db.ConcernModel) int {
		return cmp.Compare(b.IdentifiedOn, a.IdentifiedOn)
	})
	for _, a := range s.assignments {
		if a.ChildID == childID && a.IsActive {
			profile.ActiveAssignments = append(profile.ActiveAssignments, a)
		}
	}
	return profile, nil
}

func (s *InMemoryStore) RecentSessions(ctx context.Context, childID string, limit int) ([]db.SessionModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []db.SessionModel
	for _, session := range s.sessions {
		if session.ChildID == childID {
			out = append(out, session)
		}
	}
	slices.SortStableFunc(out, func(a, b db.SessionModel) int {
		return cmp.Compare(b.CreatedOn, a.CreatedOn)
	})
	return head(out, limit), nil
}

func (s *InMemoryStore) GetSession(ctx context.Context, sessionID string) (*db.SessionModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, session := range s.sessions {
		if session.ID == sessionID {
			return &session, nil
		}
	}
	return nil, nil
}

func (s *InMemoryStore) TopMemories(ctx context.Context, childID string, limit int) ([]db.MemoryModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []db.MemoryModel
	for _, m := range s.memories {
		if m.ChildID == childID {
			out = append(out, m)
		}
	}
	slices.SortStableFunc(out, func(a, b db.MemoryModel) int {
		if c := cmp.Compare(b.Importance, a.Importance); c != 0 {
			return c
		}
		return cmp.Compare(b.CreatedOn, a.CreatedOn)
	})
	return head(out, limit), nil
}

func (s *InMemoryStore) FindStories(ctx context.Context, q StoryQuery, limit int) ([]db.CulturalStoryModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []db.CulturalStoryModel
	for _, story := range s.stories {
		if q.Matches(story) {
			out = append(out, story)
		}
	}
	slices.SortStableFunc(out, func(a, b db.CulturalStoryModel) int {
		return cmp.Compare(a.Title, b.Title)
	})
	return head(out, limit), nil
}

func (s *InMemoryStore) FindKnowledge(ctx context.Context, q KnowledgeQuery, limit int) ([]db.KnowledgeModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []db.KnowledgeModel
	for _, resource := range s.knowledge {
		if q.Matches(resource) {
			out = append(out, resource)
		}
	}
	slices.SortStableFunc(out, func(a, b db.KnowledgeModel) int {
		return cmp.Compare(a.Title, b.Title)
	})
	return head(out, limit), nil
}

func (s *InMemoryStore) ConversationMessages(ctx context.Context, conversationID string, limit int) ([]db.MessageModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []db.MessageModel
	for _, m := range s.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	slices.SortStableFunc(out, func(a, b db.MessageModel) int {
		if c := cmp.Compare(a.Timestamp, b.Timestamp); c != 0 {
			return c
		}
		return cmp.Compare(a.Sequence, b.Sequence)
	})
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (s *InMemoryStore) GetConversation(ctx context.Context, conversationID string) (*db.ConversationModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conversation, ok := s.conversations[conversationID]
	if !ok {
		return nil, NotFound("conversation", conversationID)
	}
	return &conversation, nil
}

func (s *InMemoryStore) CreateConversation(ctx context.Context, conversation db.ConversationModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations[conversation.ID] = conversation
	return nil
}

func (s *InMemoryStore) AppendMessage(ctx context.Context, message db.MessageModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, message)
	return nil
}

func (s *InMemoryStore) SaveMemory(ctx context.Context, memory db.MemoryModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memories = append(s.memories, memory)
	return nil
}

func head[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
