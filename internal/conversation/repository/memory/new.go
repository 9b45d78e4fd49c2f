package memory

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"multi-agent-chat/internal/conversation/repository"
	"multi-agent-chat/internal/model"
	"multi-agent-chat/pkg/log"
)

// conversationLog is one conversation's header and turns, guarded by its own
// mutex so conversations never contend with each other.
type conversationLog struct {
	mu    sync.Mutex
	conv  model.Conversation
	turns []model.Turn
}

type implRepository struct {
	// mu serialises get-or-create on the cache; per-log work uses log.mu.
	mu    sync.Mutex
	cache *lru.Cache[string, *conversationLog]
	l     log.Logger
}

// New creates an in-memory Repository holding at most maxConversations
// conversations; the least recently used one is evicted beyond that.
func New(maxConversations int, l log.Logger) (repository.Repository, error) {
	r := &implRepository{l: l}
	cache, err := lru.NewWithEvict(maxConversations, r.onEvict)
	if err != nil {
		return nil, err
	}
	r.cache = cache
	return r, nil
}

func (r *implRepository) onEvict(id string, _ *conversationLog) {
	r.l.Debugf(context.Background(), "internal.conversation.repository.memory: evicted conversation %s", id)
}

// Close implements repository.Repository.
func (r *implRepository) Close() error {
	r.cache.Purge()
	return nil
}
