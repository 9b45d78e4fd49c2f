package llmprovider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"multi-agent-chat/pkg/log"
)

// Manager orchestrates provider selection, fallback, and retry logic
type Manager struct {
	providers []Provider
	config    *Config
	logger    log.Logger
}

// Config defines configuration for the Provider Manager
type Config struct {
	FallbackEnabled bool
	RetryAttempts   int
	RetryDelay      time.Duration
	MaxTotalTimeout time.Duration // Global timeout for the unary fallback chain
}

// NewManager creates a new Provider Manager with the given providers, config, and logger
func NewManager(providers []Provider, config *Config, logger log.Logger) *Manager {
	return &Manager{
		providers: providers,
		config:    config,
		logger:    logger,
	}
}

// GenerateContent iterates through providers in priority order with fallback logic
func (m *Manager) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	if len(m.providers) == 0 {
		return nil, ErrNoProvidersConfigured
	}

	var cancel context.CancelFunc
	if m.config.MaxTotalTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, m.config.MaxTotalTimeout)
		defer cancel()
	}

	var lastErr error

	for _, provider := range m.providers {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("global timeout exceeded after trying %d provider(s): %w",
				len(m.providers), ctx.Err())
		default:
		}

		resp, err := m.generateWithRetry(ctx, provider, req)
		if err == nil {
			m.logSuccess(ctx, provider, resp)
			return resp, nil
		}

		m.logFailure(ctx, provider, err)
		lastErr = err

		if !m.config.FallbackEnabled {
			break
		}
	}

	return nil, fmt.Errorf("%w: %v", ErrAllProvidersFailed, lastErr)
}

// StreamContent streams from the first provider that produces output. Retry and
// fallback apply only while nothing has been emitted; once a delta has reached
// onDelta a failure is final. The stream is bounded by ctx alone.
func (m *Manager) StreamContent(ctx context.Context, req *Request, onDelta DeltaFunc) (*Response, error) {
	if len(m.providers) == 0 {
		return nil, ErrNoProvidersConfigured
	}

	var lastErr error

	for _, provider := range m.providers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, emitted, err := m.streamWithRetry(ctx, provider, req, onDelta)
		if err == nil {
			m.logSuccess(ctx, provider, resp)
			return resp, nil
		}

		m.logFailure(ctx, provider, err)
		if emitted {
			return nil, &ProviderError{Provider: provider.Name(), Err: fmt.Errorf("%w: %w", ErrStreamInterrupted, err)}
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		lastErr = err

		if !m.config.FallbackEnabled {
			break
		}
	}

	return nil, fmt.Errorf("%w: %v", ErrAllProvidersFailed, lastErr)
}

// generateWithRetry implements retry mechanism with linear backoff
func (m *Manager) generateWithRetry(ctx context.Context, provider Provider, req *Request) (*Response, error) {
	var lastErr error

	for attempt := 0; attempt < m.attempts(); attempt++ {
		if attempt > 0 {
			if err := m.backoff(ctx, attempt); err != nil {
				return nil, err
			}
		}

		resp, err := provider.GenerateContent(ctx, req)
		if err == nil {
			return resp, nil
		}

		lastErr = err
	}

	return nil, lastErr
}

// streamWithRetry reports whether any delta was emitted so the caller knows if
// falling back is still allowed.
func (m *Manager) streamWithRetry(ctx context.Context, provider Provider, req *Request, onDelta DeltaFunc) (*Response, bool, error) {
	var (
		lastErr error
		emitted bool
	)

	tracked := func(delta string) error {
		emitted = true
		return onDelta(delta)
	}

	for attempt := 0; attempt < m.attempts(); attempt++ {
		if attempt > 0 {
			if err := m.backoff(ctx, attempt); err != nil {
				return nil, false, err
			}
		}

		resp, err := provider.StreamContent(ctx, req, tracked)
		if err == nil {
			return resp, emitted, nil
		}
		if emitted || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, emitted, err
		}

		lastErr = err
	}

	return nil, false, lastErr
}

func (m *Manager) attempts() int {
	if m.config.RetryAttempts <= 0 {
		return 1
	}
	return m.config.RetryAttempts
}

func (m *Manager) backoff(ctx context.Context, attempt int) error {
	delay := time.Duration(attempt) * m.config.RetryDelay
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// logSuccess logs successful LLM generation with metrics
func (m *Manager) logSuccess(ctx context.Context, provider Provider, resp *Response) {
	var in, out int
	if resp.Usage != nil {
		in, out = resp.Usage.InputTokens, resp.Usage.OutputTokens
	}
	m.logger.Infof(ctx, "pkg.llmprovider: generation successful provider=%s model=%s input_tokens=%d output_tokens=%d",
		provider.Name(), provider.Model(), in, out)
}

// logFailure logs failed LLM generation attempts
func (m *Manager) logFailure(ctx context.Context, provider Provider, err error) {
	m.logger.Warnf(ctx, "pkg.llmprovider: generation failed provider=%s model=%s error=%v",
		provider.Name(), provider.Model(), err)
}
