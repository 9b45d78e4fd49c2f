package usecase

import (
	"multi-agent-chat/internal/agent"
	"multi-agent-chat/internal/conversation/repository"
	"multi-agent-chat/internal/pipeline"
)

// memoryGrant hands out the single full-scope Memory of one request.
type memoryGrant struct {
	store          repository.TurnRepository
	conversationID string
	historyTurns   int
	granted        bool
}

func (uc *implUseCase) newGrant(conversationID string) *memoryGrant {
	return &memoryGrant{
		store:          uc.store,
		conversationID: conversationID,
		historyTurns:   uc.historyTurns,
	}
}

func (g *memoryGrant) full() (agent.Memory, error) {
	if g.granted {
		return nil, pipeline.ErrMultipleFullScope
	}
	g.granted = true
	return agent.NewMemory(g.store, g.conversationID, g.historyTurns), nil
}
