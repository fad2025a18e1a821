package store

import (
	"context"
	"fmt"

	"github.com/SaiNageswarS/mentor-boot/db"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ContextReader is the read side used to assemble mentor context.
type ContextReader interface {
	// GetChildProfile returns the child with its active concerns and assignments.
	// A missing child is reported as codes.NotFound.
	GetChildProfile(ctx context.Context, childID string) (*db.ChildProfile, error)

	// RecentSessions returns up to limit sessions of the child, newest first.
	RecentSessions(ctx context.Context, childID string, limit int) ([]db.SessionModel, error)

	// GetSession returns nil without error when the session does not exist.
	GetSession(ctx context.Context, sessionID string) (*db.SessionModel, error)

	// TopMemories returns up to limit memories ranked by importance, then recency.
	TopMemories(ctx context.Context, childID string, limit int) ([]db.MemoryModel, error)

	FindStories(ctx context.Context, q StoryQuery, limit int) ([]db.CulturalStoryModel, error)
	FindKnowledge(ctx context.Context, q KnowledgeQuery, limit int) ([]db.KnowledgeModel, error)

	// ConversationMessages returns the most recent limit messages of a conversation
	// in insertion order (oldest first). limit <= 0 returns the whole log.
	ConversationMessages(ctx context.Context, conversationID string, limit int) ([]db.MessageModel, error)
}

type ConversationStore interface {
	// GetConversation reports codes.NotFound for unknown ids.
	GetConversation(ctx context.Context, conversationID string) (*db.ConversationModel, error)
	CreateConversation(ctx context.Context, conversation db.ConversationModel) error
	AppendMessage(ctx context.Context, message db.MessageModel) error
	ConversationMessages(ctx context.Context, conversationID string, limit int) ([]db.MessageModel, error)
}

type MemoryWriter interface {
	SaveMemory(ctx context.Context, memory db.MemoryModel) error
}

type StoryFinder interface {
	FindStories(ctx context.Context, q StoryQuery, limit int) ([]db.CulturalStoryModel, error)
}

// RecordStore is everything the mentor pipeline needs from persistence.
type RecordStore interface {
	ContextReader
	ConversationStore
	MemoryWriter
}

func NotFound(resource, id string) error {
	return status.Error(codes.NotFound, fmt.Sprintf("%s %s not found", resource, id))
}

// IsNotFound reports whether err carries codes.NotFound.
func IsNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}
