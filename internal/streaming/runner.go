package streaming

import (
	"context"
	"errors"
	"fmt"
	"time"

	"multi-agent-chat/internal/pipeline"
	"multi-agent-chat/pkg/log"
	"multi-agent-chat/pkg/stream"
)

// Config holds the server-side stream timers.
type Config struct {
	HeartbeatInterval time.Duration
	// IdleTimeout resets on substantive events only; heartbeats do not count.
	IdleTimeout time.Duration
	// OverallTimeout never resets.
	OverallTimeout time.Duration
}

// WorkFunc produces the events of one session. It must return once ctx is done.
type WorkFunc func(ctx context.Context, emit pipeline.Emitter) error

// Outcome summarises a finished session.
type Outcome struct {
	Result Result
	Err    error
}

// Runner owns the write side of stream sessions: it is the only component that
// writes heartbeats and terminal events.
type Runner struct {
	cfg Config
	l   log.Logger
	now func() time.Time
}

// NewRunner creates a Runner. Zero durations take the defaults.
func NewRunner(cfg Config, l log.Logger) *Runner {
	if cfg.HeartbeatInterval <= 0 {
		cfg.HeartbeatInterval = DefaultHeartbeatInterval
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.OverallTimeout <= 0 {
		cfg.OverallTimeout = DefaultOverallTimeout
	}
	return &Runner{cfg: cfg, l: l, now: time.Now}
}

// Run executes work in its own goroutine and serialises everything it emits,
// plus heartbeats, to w. Exactly one of done, or error followed by done, ends
// the stream, unless the client went away (ctx done or a failed write), in
// which case nothing more is written. Run returns only after work has returned.
func (r *Runner) Run(ctx context.Context, s *Session, w stream.Writer, work WorkFunc) Outcome {
	workCtx, cancelWork := context.WithCancel(ctx)
	defer cancelWork()

	events := make(chan stream.Event)
	closed := make(chan struct{})
	workDone := make(chan error, 1)

	emit := pipeline.EmitterFunc(func(e stream.Event) error {
		if stream.IsTerminal(e) {
			return ErrTerminalEvent
		}
		select {
		case events <- e:
			return nil
		case <-closed:
			return ErrSessionClosed
		case <-workCtx.Done():
			return workCtx.Err()
		}
	})

	go func() {
		defer func() {
			if p := recover(); p != nil {
				workDone <- fmt.Errorf("%w: %v", ErrWorkPanicked, p)
			}
		}()
		workDone <- work(workCtx, emit)
	}()

	overall := time.NewTimer(r.cfg.OverallTimeout)
	idle := time.NewTimer(r.cfg.IdleTimeout)
	heartbeat := time.NewTimer(r.cfg.HeartbeatInterval)
	defer overall.Stop()
	defer idle.Stop()
	defer heartbeat.Stop()

	workReturned := false
	finish := func(o Outcome) Outcome {
		close(closed)
		cancelWork()
		if !workReturned {
			<-workDone
		}
		r.logOutcome(ctx, s, o)
		return o
	}

	for {
		select {
		case e := <-events:
			if err := r.write(s, w, e); err != nil {
				s.cancel()
				return finish(Outcome{Result: ResultCancelled, Err: err})
			}
			if stream.IsSubstantive(e) {
				idle.Reset(r.cfg.IdleTimeout)
				heartbeat.Reset(r.cfg.HeartbeatInterval)
			}

		case err := <-workDone:
			workReturned = true
			return finish(r.complete(ctx, s, w, err))

		case <-heartbeat.C:
			if err := r.write(s, w, stream.Heartbeat{Timestamp: r.now().UTC()}); err != nil {
				s.cancel()
				return finish(Outcome{Result: ResultCancelled, Err: err})
			}
			heartbeat.Reset(r.cfg.HeartbeatInterval)

		case <-idle.C:
			cancelWork()
			r.fail(s, w, stream.Error{Message: MsgIdleTimeout, Stage: s.Stage(), Reason: stream.ReasonIdleTimeout})
			return finish(Outcome{Result: ResultIdleTimeout})

		case <-overall.C:
			cancelWork()
			r.fail(s, w, stream.Error{Message: MsgOverallTimeout, Stage: s.Stage(), Reason: stream.ReasonOverallTimeout})
			return finish(Outcome{Result: ResultOverallTimeout})

		case <-ctx.Done():
			s.cancel()
			return finish(Outcome{Result: ResultCancelled, Err: ctx.Err()})
		}
	}
}

// complete writes the terminal events for a returned work function.
func (r *Runner) complete(ctx context.Context, s *Session, w stream.Writer, err error) Outcome {
	if ctx.Err() != nil {
		s.cancel()
		return Outcome{Result: ResultCancelled, Err: ctx.Err()}
	}

	if err == nil {
		if werr := r.write(s, w, stream.Done{}); werr != nil {
			s.cancel()
			return Outcome{Result: ResultCancelled, Err: werr}
		}
		return Outcome{Result: ResultCompleted}
	}

	r.fail(s, w, describe(err))
	return Outcome{Result: ResultFailed, Err: err}
}

// fail writes error then done. Write failures only mark the session cancelled.
func (r *Runner) fail(s *Session, w stream.Writer, e stream.Error) {
	if err := r.write(s, w, e); err != nil {
		s.cancel()
		return
	}
	if err := r.write(s, w, stream.Done{}); err != nil {
		s.cancel()
	}
}

func (r *Runner) write(s *Session, w stream.Writer, e stream.Event) error {
	if err := w.WriteEvent(e); err != nil {
		return err
	}
	s.touch(e, r.now())
	return nil
}

func (r *Runner) logOutcome(ctx context.Context, s *Session, o Outcome) {
	switch o.Result {
	case ResultCompleted:
		r.l.Infof(ctx, "%s: session %s (conversation %s) completed in %s, %d chunks",
			logPrefix, s.ID, s.ConversationID, r.now().Sub(s.StartedAt), s.Chunks())
	case ResultCancelled:
		r.l.Infof(ctx, "%s: session %s cancelled by client: %v", logPrefix, s.ID, o.Err)
	case ResultIdleTimeout, ResultOverallTimeout:
		r.l.Warnf(ctx, "%s: session %s ended with %s in stage %q, last event %s ago",
			logPrefix, s.ID, o.Result, s.Stage(), r.now().Sub(s.LastActivity()).Round(time.Millisecond))
	default:
		r.l.Warnf(ctx, "%s: session %s ended with %s: %v", logPrefix, s.ID, o.Result, o.Err)
	}
}

// describe turns a work error into the error event the client sees.
func describe(err error) stream.Error {
	var se *pipeline.StageError
	if errors.As(err, &se) {
		return stream.Error{
			Message: fmt.Sprintf(MsgAgentFailure, se.Stage),
			Stage:   se.Stage,
			Reason:  stream.ReasonAgentFailure,
		}
	}
	return stream.Error{Message: MsgInternal, Reason: stream.ReasonInternal}
}
