package repository

import (
	"context"

	"multi-agent-chat/internal/model"
)

// Repository is the Session Store: the only component that persists turns.
// Implementations assign Seq and are safe for concurrent use.
type Repository interface {
	ConversationRepository
	TurnRepository
	Close() error
}

type ConversationRepository interface {
	CreateConversation(ctx context.Context, opt CreateConversationOptions) (model.Conversation, error)
	GetConversation(ctx context.Context, id string) (model.Conversation, error)
}

type TurnRepository interface {
	// AppendTurn stores turn under turn.ConversationID, creating the
	// conversation if needed, and returns it with Seq assigned.
	AppendTurn(ctx context.Context, turn model.Turn) (model.Turn, error)
	// ReadHistory returns turns in ascending Seq. An unknown conversation has
	// no history and is not an error.
	ReadHistory(ctx context.Context, opt ReadHistoryOptions) ([]model.Turn, error)
}
