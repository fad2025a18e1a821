package mentor

import (
	"context"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/mentor-boot/db"
	"github.com/SaiNageswarS/mentor-boot/interpreter"
	"github.com/SaiNageswarS/mentor-boot/memory"
	"github.com/SaiNageswarS/mentor-boot/metrics"
	"github.com/SaiNageswarS/mentor-boot/prompts"
	"github.com/SaiNageswarS/mentor-boot/store"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Chat runs one mentor turn:
// 1. Resolve the conversation and build the child's context (a missing child
// or a conversation owned by another child aborts before any write)
// 2. Compose the system prompt and call the completion model
// 3. Record the user message and the reply, in that order
// 4. Hand the exchange to memory capture without waiting for it
//
// Turns on the same conversation are serialized within this process.
func (m *Mentor) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	start := time.Now()

	if err := req.validate(); err != nil {
		metrics.ChatTurns.WithLabelValues("invalid").Inc()
		return nil, err
	}

	if req.ConversationID != "" {
		release, err := m.locks.Acquire(ctx, req.ConversationID)
		if err != nil {
			return nil, err
		}
		defer release()
	}

	// history is only read from a conversation owned by this child
	turn, err := m.conversations.Resolve(ctx, req.ConversationID, req.ChildID, req.SessionID, req.VolunteerID)
	if err != nil {
		m.countFailure(err)
		return nil, err
	}

	historyID := ""
	if !turn.IsNew {
		historyID = turn.Conversation.ID
	}
	rc, err := m.aggregator.BuildContext(ctx, req.ChildID, req.SessionID, historyID)
	if err != nil {
		m.countFailure(err)
		return nil, err
	}

	systemPrompt, err := prompts.ComposeSystemPrompt(rc)
	if err != nil {
		metrics.ChatTurns.WithLabelValues("error").Inc()
		return nil, status.Errorf(codes.Internal, "compose system prompt: %v", err)
	}

	completion, err := m.config.Completer.Complete(ctx, systemPrompt, memory.ToHistory(rc.ConversationHistory), req.Message, m.chatOptions()...)
	if err != nil {
		metrics.ChatTurns.WithLabelValues("upstream_error").Inc()
		m.conversations.RecordFailure(ctx, turn, req.Message)
		return nil, &TurnError{ConversationID: turn.Conversation.ID, Err: err}
	}

	reply := interpreter.FreeText(completion.Content)
	sources := rc.Sources()

	err = m.conversations.RecordExchange(ctx, turn, req.Message, db.MessageModel{
		Content:    reply,
		RagContext: rc.Snapshot(),
		Metadata: &db.MessageMetadata{
			ResponseTimeMs: completion.LatencyMs,
			TokensUsed:     completion.TokensUsed,
			ContextSources: sources,
			Model:          m.config.Completer.GetModel(),
		},
	})
	if err != nil {
		if c := status.Code(err); c == codes.Canceled || c == codes.DeadlineExceeded {
			metrics.ChatTurns.WithLabelValues("abandoned").Inc()
			return nil, err
		}
		metrics.ChatTurns.WithLabelValues("error").Inc()
		logger.Error("Failed to record chat exchange", zap.String("conversationId", turn.Conversation.ID), zap.Error(err))
		return nil, status.Errorf(codes.Internal, "record exchange: %v", err)
	}

	m.queue.Enqueue(ctx, memory.Exchange{
		UserMessage:    req.Message,
		AssistantReply: reply,
		ChildID:        req.ChildID,
		VolunteerID:    req.VolunteerID,
		SessionID:      req.SessionID,
	})

	metrics.ChatTurns.WithLabelValues("success").Inc()
	logger.Info("Mentor turn completed",
		zap.String("conversationId", turn.Conversation.ID),
		zap.String("childId", req.ChildID),
		zap.Int64("latencyMs", completion.LatencyMs),
		zap.Duration("elapsed", time.Since(start)))

	return &ChatResponse{
		Response:       reply,
		ConversationID: turn.Conversation.ID,
		Metadata: ChatMetadata{
			ResponseTimeMs: completion.LatencyMs,
			TokensUsed:     completion.TokensUsed,
			ContextSources: sources,
		},
	}, nil
}

// Messages returns a conversation's log in insertion order.
func (m *Mentor) Messages(ctx context.Context, conversationID string) ([]db.MessageModel, error) {
	if conversationID == "" {
		return nil, status.Error(codes.InvalidArgument, "conversationId is required")
	}
	return m.conversations.Messages(ctx, conversationID)
}

func (m *Mentor) countFailure(err error) {
	if store.IsNotFound(err) {
		metrics.ChatTurns.WithLabelValues("not_found").Inc()
		return
	}
	metrics.ChatTurns.WithLabelValues("error").Inc()
}
