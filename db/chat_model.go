package db

type MessageRole string

const (
	RoleUser      MessageRole = "USER"
	RoleAssistant MessageRole = "ASSISTANT"
	RoleSystem    MessageRole = "SYSTEM"
)

// ConversationModel groups the mentor messages of one child, session and volunteer.
type ConversationModel struct {
	ID          string `json:"id" bson:"_id"`
	ChildID     string `json:"childId" bson:"childId"`
	SessionID   string `json:"sessionId" bson:"sessionId"`
	VolunteerID string `json:"volunteerId" bson:"volunteerId"`
	CreatedOn   int64  `json:"createdOn" bson:"createdOn"`
}

func (m ConversationModel) Id() string { return m.ID }

func (m ConversationModel) CollectionName() string { return "ai_chat_conversations" }

// ContextSnapshot records which context slices a message was answered with.
type ContextSnapshot struct {
	Sources        []string `json:"sources" bson:"sources"`
	SessionCount   int      `json:"sessionCount" bson:"sessionCount"`
	MemoryCount    int      `json:"memoryCount" bson:"memoryCount"`
	StoryCount     int      `json:"storyCount" bson:"storyCount"`
	KnowledgeCount int      `json:"knowledgeCount" bson:"knowledgeCount"`
	HistoryCount   int      `json:"historyCount" bson:"historyCount"`
	BuiltOn        int64    `json:"builtOn" bson:"builtOn"`
}

type MessageMetadata struct {
	ResponseTimeMs int64    `json:"responseTimeMs" bson:"responseTimeMs"`
	TokensUsed     *int     `json:"tokensUsed,omitempty" bson:"tokensUsed,omitempty"`
	ContextSources []string `json:"contextSources" bson:"contextSources"`
	Model          string   `json:"model,omitempty" bson:"model,omitempty"`
}

// MessageModel is one entry of the append-only conversation log.
// Sequence orders messages that share a timestamp.
type MessageModel struct {
	ID             string           `json:"id" bson:"_id"`
	ConversationID string           `json:"conversationId" bson:"conversationId"`
	Role           MessageRole      `json:"role" bson:"role"`
	Content        string           `json:"content" bson:"content"`
	RagContext     *ContextSnapshot `json:"ragContext,omitempty" bson:"ragContext,omitempty"`
	Metadata       *MessageMetadata `json:"metadata,omitempty" bson:"metadata,omitempty"`
	Timestamp      int64            `json:"timestamp" bson:"timestamp"`
	Sequence       int64            `json:"sequence" bson:"sequence"`
}

func (m MessageModel) Id() string { return m.ID }

func (m MessageModel) CollectionName() string { return "ai_chat_messages" }
