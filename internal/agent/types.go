package agent

import (
	"context"

	"multi-agent-chat/internal/model"
	"multi-agent-chat/pkg/llmprovider"
)

// Completer is the completion service an Agent Unit calls.
// *llmprovider.Manager satisfies it.
type Completer interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
	StreamContent(ctx context.Context, req *llmprovider.Request, onDelta llmprovider.DeltaFunc) (*llmprovider.Response, error)
}

// DeltaFunc receives streamed answer text.
type DeltaFunc func(delta string) error

// UnitConfig describes one Agent Unit.
type UnitConfig struct {
	Name         string
	SystemPrompt string
	Temperature  float64
	MaxTokens    int
	// WithTimeContext appends today's date context in Timezone to the prompt.
	WithTimeContext bool
	Timezone        string
}

// Invocation is one call of a Unit.
type Invocation struct {
	ConversationID string
	Input          string
	Scope          model.MemoryScope
}

// Result is the outcome of a successful invocation. Turn is set only when a
// full-scope invocation recorded its turn.
type Result struct {
	Text  string
	Usage *llmprovider.Usage
	Turn  *model.Turn
}
