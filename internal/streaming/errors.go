package streaming

import "errors"

var (
	// ErrSessionClosed is returned by Emit once the session stopped accepting events.
	ErrSessionClosed = errors.New("streaming: session closed")
	ErrWorkPanicked  = errors.New("streaming: work panicked")
	// ErrTerminalEvent is returned by Emit for error and done events, which
	// only the Runner writes.
	ErrTerminalEvent = errors.New("streaming: work may not emit terminal events")
)
