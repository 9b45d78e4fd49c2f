package streaming

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"multi-agent-chat/pkg/stream"
)

// Session is the server-side state of one open stream.
type Session struct {
	ID             string
	ConversationID string
	StartedAt      time.Time

	mu           sync.Mutex
	lastActivity time.Time
	stage        string
	chunks       int
	cancelled    bool
}

// NewSession starts a session for conversationID.
func NewSession(conversationID string) *Session {
	now := time.Now()
	return &Session{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		StartedAt:      now,
		lastActivity:   now,
	}
}

// LastActivity is the time of the last event written.
func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

// Stage is the pipeline stage announced by the last status event written.
func (s *Session) Stage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stage
}

// Chunks counts chunk events written.
func (s *Session) Chunks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chunks
}

// Cancelled reports whether the client went away before the end.
func (s *Session) Cancelled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelled
}

func (s *Session) touch(e stream.Event, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActivity = at
	switch ev := e.(type) {
	case stream.Chunk:
		s.chunks++
	case stream.Status:
		if ev.Stage != "" {
			s.stage = ev.Stage
		}
	}
}

func (s *Session) cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelled = true
}
