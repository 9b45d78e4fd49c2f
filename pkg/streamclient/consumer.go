package streamclient

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"multi-agent-chat/pkg/log"
	"multi-agent-chat/pkg/stream"
)

const logPrefix = "pkg.streamclient.Consume"

// Config holds the client-side timers.
type Config struct {
	OverallTimeout time.Duration
	// IdleTimeout resets on every frame, heartbeats included.
	IdleTimeout time.Duration
}

// Consumer reads one event stream. It is single-use.
type Consumer struct {
	cfg Config
	h   Handler
	l   log.Logger

	mu      sync.Mutex
	state   State
	failure *Failure
	cancel  context.CancelFunc
}

// NewConsumer creates a Consumer in StateIdle. Zero durations take the defaults.
func NewConsumer(cfg Config, h Handler, l log.Logger) *Consumer {
	if cfg.OverallTimeout <= 0 {
		cfg.OverallTimeout = DefaultOverallTimeout
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}
	if h == nil {
		h = HandlerFuncs{}
	}
	return &Consumer{cfg: cfg, h: h, l: l}
}

// State returns the current state.
func (c *Consumer) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Failure returns the failure of an errored consumer.
func (c *Consumer) Failure() *Failure {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failure
}

// Cancel stops a streaming consumer; it ends in StateCancelled. Cancelling an
// idle consumer moves it straight to StateCancelled.
func (c *Consumer) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.state {
	case StateIdle:
		c.state = StateCancelled
	case StateStreaming:
		c.cancel()
	}
}

type frame struct {
	event stream.Event
	err   error
}

// Consume reads body until done, error, a timer, cancellation or ctx. The
// returned Transcript holds everything rendered, also on failure. body is
// closed if it is an io.Closer.
func (c *Consumer) Consume(ctx context.Context, body io.Reader) (Transcript, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		if closer, ok := body.(io.Closer); ok {
			_ = closer.Close()
		}
		return Transcript{}, ErrAlreadyStarted
	}
	c.state = StateStreaming
	c.cancel = cancel
	c.mu.Unlock()

	frames := make(chan frame)
	readerDone := make(chan struct{})
	go c.read(ctx, body, frames, readerDone)
	defer func() {
		// the reader may be parked on a send after EOF; cancel releases it.
		// Closing unblocks a pending Read; a plain io.Reader is left to finish
		// on its own.
		cancel()
		if closer, ok := body.(io.Closer); ok {
			_ = closer.Close()
			<-readerDone
		}
	}()

	overall := time.NewTimer(c.cfg.OverallTimeout)
	idle := time.NewTimer(c.cfg.IdleTimeout)
	// timers stop on every exit from streaming
	defer overall.Stop()
	defer idle.Stop()

	var tb transcriptBuilder
	for {
		select {
		case f := <-frames:
			idle.Reset(c.cfg.IdleTimeout)

			if f.err != nil {
				if errors.Is(f.err, stream.ErrMalformedEvent) || errors.Is(f.err, stream.ErrUnknownEventType) {
					tb.t.Skipped++
					c.l.Warnf(ctx, "%s: skipping frame: %v", logPrefix, f.err)
					continue
				}
				return tb.snapshot(), c.fail(&Failure{Kind: FailureNetwork, Message: MsgNetwork, Err: f.err})
			}

			if done, err := c.dispatch(&tb, f.event); done {
				if err != nil {
					return tb.snapshot(), err
				}
				c.transition(StateCompleted)
				return tb.snapshot(), nil
			}

		case <-overall.C:
			return tb.snapshot(), c.fail(&Failure{Kind: FailureOverallTimeout, Message: MsgOverallTimeout})

		case <-idle.C:
			return tb.snapshot(), c.fail(&Failure{Kind: FailureIdle, Message: MsgIdle})

		case <-ctx.Done():
			c.transition(StateCancelled)
			return tb.snapshot(), context.Canceled
		}
	}
}

// dispatch renders e. done is true for terminal events; err is the failure of
// a server error event.
func (c *Consumer) dispatch(tb *transcriptBuilder, e stream.Event) (done bool, err error) {
	switch ev := e.(type) {
	case stream.Status:
		tb.t.Statuses = append(tb.t.Statuses, ev.Message)
		c.h.OnStatus(ev)
	case stream.Chunk:
		tb.text.WriteString(ev.Value)
		c.h.OnChunk(ev)
	case stream.Table:
		tb.t.Tables = append(tb.t.Tables, ev)
		c.h.OnTable(ev)
	case stream.Chart:
		tb.t.Charts = append(tb.t.Charts, ev)
		c.h.OnChart(ev)
	case stream.Heartbeat:
		// keep-alive only
	case stream.Error:
		return true, c.fail(&Failure{Kind: FailureServer, Message: ev.Message, Stage: ev.Stage})
	case stream.Done:
		return true, nil
	}
	return false, nil
}

func (c *Consumer) read(ctx context.Context, body io.Reader, frames chan<- frame, done chan<- struct{}) {
	defer close(done)
	r := stream.NewReader(body)
	for {
		e, err := r.Next()
		if errors.Is(err, io.EOF) {
			// the server always ends with done; EOF before it is a lost connection
			err = io.ErrUnexpectedEOF
		}
		select {
		case frames <- frame{event: e, err: err}:
		case <-ctx.Done():
			return
		}
		if err != nil && !errors.Is(err, stream.ErrMalformedEvent) && !errors.Is(err, stream.ErrUnknownEventType) {
			return
		}
	}
}

func (c *Consumer) fail(f *Failure) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateErrored
	c.failure = f
	return f
}

func (c *Consumer) transition(s State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = s
}
