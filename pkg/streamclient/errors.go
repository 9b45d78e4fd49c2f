package streamclient

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyStarted = errors.New("streamclient: consumer already started")
)

// FailureKind classifies why a stream did not complete.
type FailureKind string

const (
	FailureServer         FailureKind = "server"
	FailureOverallTimeout FailureKind = "overall_timeout"
	FailureIdle           FailureKind = "idle"
	FailureNetwork        FailureKind = "network"
)

// Failure is the error a Consumer ends with in StateErrored.
type Failure struct {
	Kind    FailureKind
	Message string
	// Stage is set for server failures that named one.
	Stage string
	Err   error
}

func (f *Failure) Error() string {
	if f.Stage != "" {
		return fmt.Sprintf("%s failure at %s: %s", f.Kind, f.Stage, f.Message)
	}
	return fmt.Sprintf("%s failure: %s", f.Kind, f.Message)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// HTTPError is a non-streaming response to a stream request (validation,
// busy conversation, rate limit).
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("streamclient: http %d: %s", e.StatusCode, e.Message)
}
