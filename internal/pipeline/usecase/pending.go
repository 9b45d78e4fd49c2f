package usecase

import (
	"context"
	"sync"

	"multi-agent-chat/internal/agent"
	"multi-agent-chat/internal/model"
)

// pendingMemory holds the specialist's turn until the request knows its
// visualization, so the stored turn carries the answer text and its payload.
// History is read straight through.
type pendingMemory struct {
	agent.Memory

	mu        sync.Mutex
	held      bool
	agentName string
	input     string
	content   model.Content
}

func newPendingMemory(mem agent.Memory) *pendingMemory {
	return &pendingMemory{Memory: mem}
}

// Record keeps the turn in memory. A second call fails like a committed Memory.
func (p *pendingMemory) Record(_ context.Context, agentName, input string, content model.Content) (model.Turn, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.held {
		return model.Turn{}, agent.ErrMemoryCommitted
	}
	p.held = true
	p.agentName, p.input, p.content = agentName, input, content
	return model.Turn{AgentName: agentName}, nil
}

// commit writes the held turn with payload merged in. Nothing is written if
// the specialist never recorded.
func (p *pendingMemory) commit(ctx context.Context, payload model.Content) error {
	p.mu.Lock()
	if !p.held {
		p.mu.Unlock()
		return nil
	}
	content := p.content
	agentName, input := p.agentName, p.input
	p.mu.Unlock()

	content.Table = payload.Table
	content.Chart = payload.Chart
	_, err := p.Memory.Record(ctx, agentName, input, content)
	return err
}
