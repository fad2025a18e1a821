package ragcontext

import "github.com/SaiNageswarS/mentor-boot/db"

// Context source names reported with every mentor reply.
const (
	SourceChildProfile        = "child_profile"
	SourceActiveConcerns      = "active_concerns"
	SourceSessionHistory      = "session_history"
	SourceCurrentSession      = "current_session"
	SourceMemories            = "memories"
	SourceCulturalStories     = "cultural_stories"
	SourceKnowledge           = "knowledge"
	SourceConversationHistory = "conversation_history"
)

// RagContext is the bounded snapshot of everything known about one
// child, session and conversation at the time of a mentor turn.
// Slices are never nil; an unavailable slice is empty.
type RagContext struct {
	Child               db.ChildModel
	ActiveConcerns      []db.ConcernModel
	ActiveAssignments   []db.AssignmentModel
	SessionHistory      []db.SessionModel // newest first
	CurrentSession      *db.SessionModel
	Memories            []db.MemoryModel // importance desc, then newest first
	CulturalStories     []db.CulturalStoryModel
	Knowledge           []db.KnowledgeModel
	ConversationHistory []db.MessageModel // oldest first
	Metadata            Metadata
}

type Metadata struct {
	SessionCount    int
	MemoryCount     int
	StoryCount      int
	KnowledgeCount  int
	HistoryCount    int
	BuiltOn         int64
	CulturalContext CulturalContext
}

type CulturalContext struct {
	State    string
	Language string
}

// Sources lists the slices that contributed to the context.
// Child profile and session history are always consulted and always listed.
func (rc *RagContext) Sources() []string {
	sources := []string{SourceChildProfile, SourceSessionHistory}

	if len(rc.ActiveConcerns) > 0 {
		sources = append(sources, SourceActiveConcerns)
	}
	if rc.CurrentSession != nil {
		sources = append(sources, SourceCurrentSession)
	}
	if len(rc.Memories) > 0 {
		sources = append(sources, SourceMemories)
	}
	if len(rc.CulturalStories) > 0 {
		sources = append(sources, SourceCulturalStories)
	}
	if len(rc.Knowledge) > 0 {
		sources = append(sources, SourceKnowledge)
	}
	if len(rc.ConversationHistory) > 0 {
		sources = append(sources, SourceConversationHistory)
	}

	return sources
}

// Snapshot is the compact form persisted alongside an assistant message.
func (rc *RagContext) Snapshot() *db.ContextSnapshot {
	return &db.ContextSnapshot{
		Sources:        rc.Sources(),
		SessionCount:   rc.Metadata.SessionCount,
		MemoryCount:    rc.Metadata.MemoryCount,
		StoryCount:     rc.Metadata.StoryCount,
		KnowledgeCount: rc.Metadata.KnowledgeCount,
		HistoryCount:   rc.Metadata.HistoryCount,
		BuiltOn:        rc.Metadata.BuiltOn,
	}
}
