// Package ratelimit throttles the public chat endpoint per client with a
// sliding window, backed by Redis when configured and process memory
// otherwise.
package ratelimit

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"nurture/internal/ratelimit/metrics"
	"nurture/internal/ratelimit/models"
	"nurture/pkg/platform/circuit"
)

// Store is a sliding-window counter.
type Store interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.Result, error)
}

// Limiter checks one key against a fixed limit and window. When a fallback is
// configured, primary failures are counted by a circuit breaker and checks move
// to the fallback while the circuit is open.
type Limiter struct {
	primary  Store
	fallback Store
	breaker  *circuit.Breaker
	limit    int
	window   time.Duration
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithFallback sets the store used while the primary is failing.
func WithFallback(s Store) Option {
	return func(l *Limiter) {
		l.fallback = s
	}
}

// WithBreaker replaces the default breaker.
func WithBreaker(b *circuit.Breaker) Option {
	return func(l *Limiter) {
		l.breaker = b
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Limiter) {
		l.logger = logger
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Limiter) {
		l.metrics = m
	}
}

// New creates a limiter over primary.
func New(primary Store, limit int, window time.Duration, opts ...Option) (*Limiter, error) {
	if primary == nil {
		return nil, errors.New("rate limit store is required")
	}
	if limit <= 0 || window <= 0 {
		return nil, errors.New("rate limit and window must be positive")
	}
	l := &Limiter{
		primary: primary,
		limit:   limit,
		window:  window,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.breaker == nil {
		l.breaker = circuit.New("ratelimit")
	}
	return l, nil
}

// Check records one request for key. With no fallback, a primary error is
// returned to the caller.
func (l *Limiter) Check(ctx context.Context, key string) (*models.Result, error) {
	if l.fallback == nil {
		res, err := l.primary.Allow(ctx, key, l.limit, l.window)
		if err != nil {
			l.metrics.IncrementStoreError()
			return nil, err
		}
		l.metrics.IncrementCheck(res.Allowed, "primary")
		return res, nil
	}

	if l.breaker.IsOpen() {
		return l.checkDegraded(ctx, key)
	}

	res, err := l.primary.Allow(ctx, key, l.limit, l.window)
	if err != nil {
		l.metrics.IncrementStoreError()
		_, change := l.breaker.RecordFailure()
		if change.Opened {
			l.metrics.SetCircuitOpen(true)
			l.logger.WarnContext(ctx, "rate limit store failing, using in-memory fallback",
				"breaker", l.breaker.Name(),
				"error", err,
			)
		}
		return l.allowFallback(ctx, key)
	}
	l.breaker.RecordSuccess()
	l.metrics.IncrementCheck(res.Allowed, "primary")
	return res, nil
}

// checkDegraded retries the primary while the circuit is open so it can close
// again, but answers from the fallback until it does.
func (l *Limiter) checkDegraded(ctx context.Context, key string) (*models.Result, error) {
	if res, err := l.primary.Allow(ctx, key, l.limit, l.window); err == nil {
		if _, change := l.breaker.RecordSuccess(); change.Closed {
			l.metrics.SetCircuitOpen(false)
			l.logger.InfoContext(ctx, "rate limit store recovered", "breaker", l.breaker.Name())
			l.metrics.IncrementCheck(res.Allowed, "primary")
			return res, nil
		}
	} else {
		l.metrics.IncrementStoreError()
		l.breaker.RecordFailure()
	}
	return l.allowFallback(ctx, key)
}

func (l *Limiter) allowFallback(ctx context.Context, key string) (*models.Result, error) {
	res, err := l.fallback.Allow(ctx, key, l.limit, l.window)
	if err != nil {
		return nil, err
	}
	l.metrics.IncrementCheck(res.Allowed, "fallback")
	return res, nil
}

// Degraded reports whether checks are currently served by the fallback.
func (l *Limiter) Degraded() bool {
	return l.fallback != nil && l.breaker.IsOpen()
}
