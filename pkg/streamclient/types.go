package streamclient

import (
	"strings"

	"multi-agent-chat/pkg/stream"
)

// State is the consumer lifecycle.
type State int

const (
	StateIdle State = iota
	StateStreaming
	StateCompleted
	StateErrored
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStreaming:
		return "streaming"
	case StateCompleted:
		return "completed"
	case StateErrored:
		return "errored"
	case StateCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateErrored || s == StateCancelled
}

// Handler receives decoded events in arrival order. Heartbeats are consumed
// by the Consumer and never reach it.
type Handler interface {
	OnStatus(e stream.Status)
	OnChunk(e stream.Chunk)
	OnTable(e stream.Table)
	OnChart(e stream.Chart)
}

// HandlerFuncs is a Handler built from optional functions.
type HandlerFuncs struct {
	Status func(stream.Status)
	Chunk  func(stream.Chunk)
	Table  func(stream.Table)
	Chart  func(stream.Chart)
}

func (h HandlerFuncs) OnStatus(e stream.Status) {
	if h.Status != nil {
		h.Status(e)
	}
}

func (h HandlerFuncs) OnChunk(e stream.Chunk) {
	if h.Chunk != nil {
		h.Chunk(e)
	}
}

func (h HandlerFuncs) OnTable(e stream.Table) {
	if h.Table != nil {
		h.Table(e)
	}
}

func (h HandlerFuncs) OnChart(e stream.Chart) {
	if h.Chart != nil {
		h.Chart(e)
	}
}

// Transcript is everything rendered so far. It survives failures.
type Transcript struct {
	// ConversationID is set by Client from the response header.
	ConversationID string

	Text     string
	Statuses []string
	Tables   []stream.Table
	Charts   []stream.Chart
	// Skipped counts frames that could not be decoded.
	Skipped int
}

type transcriptBuilder struct {
	text strings.Builder
	t    Transcript
}

func (b *transcriptBuilder) snapshot() Transcript {
	t := b.t
	t.Text = b.text.String()
	return t
}
