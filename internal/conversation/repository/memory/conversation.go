package memory

import (
	"context"
	"fmt"
	"time"

	"multi-agent-chat/internal/conversation"
	"multi-agent-chat/internal/conversation/repository"
	"multi-agent-chat/internal/model"
)

func (r *implRepository) CreateConversation(ctx context.Context, opt repository.CreateConversationOptions) (model.Conversation, error) {
	id := opt.ID
	if id == "" {
		id = conversation.NewID()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cache.Contains(id) {
		return model.Conversation{}, fmt.Errorf("%w: conversation %s", repository.ErrAlreadyExists, id)
	}

	now := time.Now().UTC()
	cl := &conversationLog{conv: model.Conversation{ID: id, CreatedAt: now, UpdatedAt: now}}
	r.cache.Add(id, cl)
	return cl.conv, nil
}

func (r *implRepository) GetConversation(ctx context.Context, id string) (model.Conversation, error) {
	cl, ok := r.cache.Get(id)
	if !ok {
		return model.Conversation{}, conversation.ErrConversationNotFound
	}
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return cl.conv, nil
}

func (r *implRepository) AppendTurn(ctx context.Context, turn model.Turn) (model.Turn, error) {
	if turn.ConversationID == "" {
		return model.Turn{}, conversation.ErrInvalidConversationID
	}

	cl := r.getOrCreate(turn.ConversationID)

	cl.mu.Lock()
	defer cl.mu.Unlock()

	turn.Seq = int64(len(cl.turns)) + 1
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now().UTC()
	}
	cl.turns = append(cl.turns, turn)
	cl.conv.TurnCount = int64(len(cl.turns))
	cl.conv.UpdatedAt = turn.CreatedAt
	return turn, nil
}

func (r *implRepository) ReadHistory(ctx context.Context, opt repository.ReadHistoryOptions) ([]model.Turn, error) {
	cl, ok := r.cache.Get(opt.ConversationID)
	if !ok {
		return nil, nil
	}

	cl.mu.Lock()
	defer cl.mu.Unlock()

	turns := cl.turns
	if opt.Limit > 0 && len(turns) > opt.Limit {
		turns = turns[len(turns)-opt.Limit:]
	}
	out := make([]model.Turn, len(turns))
	copy(out, turns)
	return out, nil
}

func (r *implRepository) getOrCreate(id string) *conversationLog {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cl, ok := r.cache.Get(id); ok {
		return cl
	}
	now := time.Now().UTC()
	cl := &conversationLog{conv: model.Conversation{ID: id, CreatedAt: now, UpdatedAt: now}}
	r.cache.Add(id, cl)
	return cl
}
