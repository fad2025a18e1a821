package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/mentor-boot/db"
	"github.com/SaiNageswarS/mentor-boot/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc/status"
)

// ConversationManager owns the append-only message log of mentor conversations.
type ConversationManager struct {
	store store.ConversationStore
	now   func() time.Time
}

func NewConversationManager(store store.ConversationStore) *ConversationManager {
	return &ConversationManager{store: store, now: time.Now}
}

// Resolve returns the turn for conversationID. An empty id starts a new
// conversation that is only persisted once the turn is recorded. An unknown
// id, or one that belongs to another child, is reported as codes.NotFound.
func (cm *ConversationManager) Resolve(ctx context.Context, conversationID, childID, sessionID, volunteerID string) (*Turn, error) {
	if conversationID == "" {
		return &Turn{
			Conversation: db.ConversationModel{
				ID:          uuid.NewString(),
				ChildID:     childID,
				SessionID:   sessionID,
				VolunteerID: volunteerID,
				CreatedOn:   cm.now().UnixMilli(),
			},
			IsNew: true,
		}, nil
	}

	conversation, err := cm.store.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conversation.ChildID != childID {
		logger.Error("Conversation requested for another child",
			zap.String("conversationId", conversationID),
			zap.String("childId", childID))
		return nil, store.NotFound("conversation", conversationID)
	}
	return &Turn{Conversation: *conversation}, nil
}

// RecordExchange appends the user message and then the assistant reply.
// Both are written before it returns so a later history fetch never sees half a turn.
// Nothing is written once ctx is done; after the first write the pair is
// completed even if ctx is cancelled.
func (cm *ConversationManager) RecordExchange(ctx context.Context, turn *Turn, userMessage string, reply db.MessageModel) error {
	if err := ctx.Err(); err != nil {
		return status.FromContextError(err).Err()
	}
	ctx = context.WithoutCancel(ctx)

	if err := cm.ensureConversation(ctx, turn); err != nil {
		return err
	}

	userMsg := cm.newMessage(turn, db.RoleUser, userMessage)
	if err := cm.store.AppendMessage(ctx, userMsg); err != nil {
		return fmt.Errorf("append user message: %w", err)
	}

	reply.ID = uuid.NewString()
	reply.ConversationID = turn.Conversation.ID
	reply.Role = db.RoleAssistant
	reply.Timestamp, reply.Sequence = cm.stamp(userMsg)
	if err := cm.store.AppendMessage(ctx, reply); err != nil {
		return fmt.Errorf("append assistant message: %w", err)
	}

	return nil
}

// RecordFailure appends the user message followed by a system notice.
// Errors are logged; the turn has already failed. An abandoned request
// records nothing.
func (cm *ConversationManager) RecordFailure(ctx context.Context, turn *Turn, userMessage string) {
	if err := ctx.Err(); err != nil {
		logger.Info("Request abandoned, failed turn not recorded", zap.String("conversationId", turn.Conversation.ID))
		return
	}
	ctx = context.WithoutCancel(ctx)

	if err := cm.ensureConversation(ctx, turn); err != nil {
		logger.Error("Failed to create conversation for failed turn", zap.String("conversationId", turn.Conversation.ID), zap.Error(err))
		return
	}

	userMsg := cm.newMessage(turn, db.RoleUser, userMessage)
	if err := cm.store.AppendMessage(ctx, userMsg); err != nil {
		logger.Error("Failed to append user message", zap.String("conversationId", turn.Conversation.ID), zap.Error(err))
		return
	}

	notice := db.MessageModel{
		ID:             uuid.NewString(),
		ConversationID: turn.Conversation.ID,
		Role:           db.RoleSystem,
		Content:        ErrorNotice,
	}
	notice.Timestamp, notice.Sequence = cm.stamp(userMsg)
	if err := cm.store.AppendMessage(ctx, notice); err != nil {
		logger.Error("Failed to append error notice", zap.String("conversationId", turn.Conversation.ID), zap.Error(err))
	}
}

// Messages returns the whole log of a conversation in insertion order.
func (cm *ConversationManager) Messages(ctx context.Context, conversationID string) ([]db.MessageModel, error) {
	if _, err := cm.store.GetConversation(ctx, conversationID); err != nil {
		return nil, err
	}

	messages, err := cm.store.ConversationMessages(ctx, conversationID, 0)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []db.MessageModel{}
	}
	return messages, nil
}

func (cm *ConversationManager) ensureConversation(ctx context.Context, turn *Turn) error {
	if !turn.IsNew {
		return nil
	}
	if err := cm.store.CreateConversation(ctx, turn.Conversation); err != nil {
		return fmt.Errorf("create conversation: %w", err)
	}
	turn.IsNew = false
	return nil
}

func (cm *ConversationManager) newMessage(turn *Turn, role db.MessageRole, content string) db.MessageModel {
	now := cm.now()
	return db.MessageModel{
		ID:             uuid.NewString(),
		ConversationID: turn.Conversation.ID,
		Role:           role,
		Content:        content,
		Timestamp:      now.UnixMilli(),
		Sequence:       now.UnixNano(),
	}
}

// stamp orders a message strictly after prev.
func (cm *ConversationManager) stamp(prev db.MessageModel) (timestamp, sequence int64) {
	now := cm.now()
	timestamp = max(now.UnixMilli(), prev.Timestamp)
	sequence = max(now.UnixNano(), prev.Sequence+1)
	return timestamp, sequence
}
