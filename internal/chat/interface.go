package chat

import (
	"context"

	"multi-agent-chat/internal/streaming"
	"multi-agent-chat/pkg/stream"
)

// UseCase opens chat streams.
type UseCase interface {
	// Open validates input and reserves its conversation. Every returned
	// Stream must be Run or Closed.
	Open(ctx context.Context, input StreamInput) (Stream, error)
	Agents() []string
}

// Stream is a reserved, not yet started stream session.
type Stream interface {
	ConversationID() string
	SessionID() string
	// Run streams the answer to w and releases the reservation.
	Run(ctx context.Context, w stream.Writer) streaming.Outcome
	// Close releases the reservation without running. It is idempotent.
	Close()
}
