package pipeline

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownFamily = errors.New("pipeline: unknown agent family")
	ErrEmptyMessage  = errors.New("pipeline: empty message")
	// ErrMultipleFullScope means a second full-scope grant was attempted
	// within one request. It is a programming error.
	ErrMultipleFullScope = errors.New("pipeline: more than one full-scope agent in a request")
)

// StageError is an agent failure tagged with the stage it happened in.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
