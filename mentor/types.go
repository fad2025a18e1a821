package mentor

import (
	"strings"

	"github.com/SaiNageswarS/mentor-boot/db"
	"github.com/SaiNageswarS/mentor-boot/interpreter"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type ChatRequest struct {
	Message        string `json:"message"`
	ChildID        string `json:"childId"`
	SessionID      string `json:"sessionId"`
	ConversationID string `json:"conversationId,omitempty"`

	// VolunteerID identifies the caller. It comes from the transport, never the body.
	VolunteerID string `json:"-"`
}

func (r ChatRequest) validate() error {
	if strings.TrimSpace(r.VolunteerID) == "" {
		return status.Error(codes.Unauthenticated, "volunteer identity is required")
	}
	if strings.TrimSpace(r.Message) == "" {
		return status.Error(codes.InvalidArgument, "message is required")
	}
	if strings.TrimSpace(r.ChildID) == "" {
		return status.Error(codes.InvalidArgument, "childId is required")
	}
	return nil
}

type ChatResponse struct {
	Response       string       `json:"response"`
	ConversationID string       `json:"conversationId"`
	Metadata       ChatMetadata `json:"metadata"`
}

type ChatMetadata struct {
	ResponseTimeMs int64    `json:"responseTimeMs"`
	TokensUsed     *int     `json:"tokensUsed,omitempty"`
	ContextSources []string `json:"contextSources"`
}

type RoadmapRequest struct {
	ChildProfile   db.ChildModel     `json:"childProfile"`
	ActiveConcerns []db.ConcernModel `json:"activeConcerns"`
	RecentSessions []db.SessionModel `json:"recentSessions,omitempty"`
}

// RoadmapResponse always reports success; Roadmap is the fallback plan
// when generation failed.
type RoadmapResponse struct {
	Success            bool                    `json:"success"`
	Roadmap            interpreter.Roadmap     `json:"roadmap"`
	RecommendedStories []db.CulturalStoryModel `json:"recommendedStories"`
}
