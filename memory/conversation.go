package memory

import (
	"strings"

	"github.com/SaiNageswarS/mentor-boot/db"
	"github.com/SaiNageswarS/mentor-boot/llm"
)

// ErrorNotice is appended to a conversation when a turn fails, so the
// visible log shows what happened to the volunteer's message.
const ErrorNotice = "Sorry, I encountered an error while generating guidance. Please try again."

// Turn is one mentor exchange in progress on a conversation.
type Turn struct {
	Conversation db.ConversationModel
	IsNew        bool
}

// ToHistory converts the stored log into replay history for the completion
// model. System notices are not replayed, and history never opens with an
// orphaned assistant reply.
func ToHistory(messages []db.MessageModel) []llm.Message {
	history := make([]llm.Message, 0, len(messages))
	for _, m := range messages {
		if m.Role == db.RoleSystem {
			continue
		}
		if len(history) == 0 && m.Role != db.RoleUser {
			continue
		}
		history = append(history, llm.Message{
			Role:    strings.ToLower(string(m.Role)),
			Content: m.Content,
		})
	}
	return history
}
