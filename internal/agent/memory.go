package agent

import (
	"context"
	"fmt"
	"sync"

	"multi-agent-chat/internal/conversation/repository"
	"multi-agent-chat/internal/model"
)

// Memory is the capability an invocation receives for conversation history.
// The orchestrator decides which invocation gets which Memory; units never
// reach the store any other way.
type Memory interface {
	Scope() model.MemoryScope
	// History returns prior turns, oldest first.
	History(ctx context.Context) ([]model.Turn, error)
	// Record appends the request's single turn.
	Record(ctx context.Context, agentName, input string, content model.Content) (model.Turn, error)
}

// NoMemory is the Memory of scope none: no history, no writes.
var NoMemory Memory = noMemory{}

type noMemory struct{}

func (noMemory) Scope() model.MemoryScope { return model.MemoryNone }

func (noMemory) History(context.Context) ([]model.Turn, error) { return nil, nil }

func (noMemory) Record(context.Context, string, string, model.Content) (model.Turn, error) {
	return model.Turn{}, ErrMemoryNotGranted
}

// fullMemory grants read access to one conversation and at most one append.
type fullMemory struct {
	store          repository.TurnRepository
	conversationID string
	historyTurns   int

	mu        sync.Mutex
	committed bool
}

// NewMemory grants full scope over conversationID. History is limited to the
// last historyTurns turns when historyTurns > 0.
func NewMemory(store repository.TurnRepository, conversationID string, historyTurns int) Memory {
	return &fullMemory{
		store:          store,
		conversationID: conversationID,
		historyTurns:   historyTurns,
	}
}

func (m *fullMemory) Scope() model.MemoryScope { return model.MemoryFull }

func (m *fullMemory) History(ctx context.Context) ([]model.Turn, error) {
	turns, err := m.store.ReadHistory(ctx, repository.ReadHistoryOptions{
		ConversationID: m.conversationID,
		Limit:          m.historyTurns,
	})
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	return turns, nil
}

func (m *fullMemory) Record(ctx context.Context, agentName, input string, content model.Content) (model.Turn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.committed {
		return model.Turn{}, ErrMemoryCommitted
	}

	turn, err := m.store.AppendTurn(ctx, model.NewTurn(m.conversationID, agentName, input, content))
	if err != nil {
		return model.Turn{}, fmt.Errorf("append turn: %w", err)
	}
	m.committed = true
	return turn, nil
}
