package middleware

import (
	"multi-agent-chat/config"
	"multi-agent-chat/pkg/log"
)

type Middleware struct {
	l       log.Logger
	limiter *rateLimiter
}

// New creates the shared middleware set. A disabled rate limit config makes
// RateLimit a no-op.
func New(l log.Logger, cfg config.RateLimitConfig) Middleware {
	m := Middleware{l: l}
	if cfg.Enabled && cfg.RequestsPerMin > 0 {
		m.limiter = newRateLimiter(cfg.RequestsPerMin, cfg.Burst)
	}
	return m
}
