package pipeline

import "context"

// UseCase runs one request through its family's agent topology.
type UseCase interface {
	// Handle emits status, chunk and payload events through emit. It never
	// emits terminal events; a returned *StageError names the failed stage.
	Handle(ctx context.Context, req Request, emit Emitter) error
	// Families lists the family names Handle accepts.
	Families() []string
}
