package usecase

import "sync"

// registry tracks conversations with an open stream in this process.
type registry struct {
	mu     sync.Mutex
	active map[string]string // conversation id -> session id
}

func newRegistry() *registry {
	return &registry{active: make(map[string]string)}
}

func (r *registry) acquire(conversationID, sessionID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, busy := r.active[conversationID]; busy {
		return false
	}
	r.active[conversationID] = sessionID
	return true
}

// release frees conversationID if sessionID still holds it.
func (r *registry) release(conversationID, sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active[conversationID] == sessionID {
		delete(r.active, conversationID)
	}
}
