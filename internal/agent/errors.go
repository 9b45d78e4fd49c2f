package agent

import "errors"

var (
	// ErrScopeMismatch means the declared scope and the supplied Memory disagree.
	ErrScopeMismatch = errors.New("agent: memory scope does not match memory capability")

	// ErrMemoryCommitted is returned by a second Record on the same full-scope Memory.
	ErrMemoryCommitted = errors.New("agent: memory already committed a turn for this request")

	// ErrMemoryNotGranted is returned when a scope-none Memory is asked to record.
	ErrMemoryNotGranted = errors.New("agent: memory scope none cannot record")

	ErrEmptyInput = errors.New("agent: empty input")
)
