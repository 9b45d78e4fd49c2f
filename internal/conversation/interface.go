package conversation

import "context"

// UseCase exposes conversation history to delivery layers. Turns are only
// appended by the agent memory capability, never through this interface.
//
//go:generate mockery --name UseCase
type UseCase interface {
	Create(ctx context.Context) (CreateOutput, error)
	History(ctx context.Context, input HistoryInput) (HistoryOutput, error)
}
