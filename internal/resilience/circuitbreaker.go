// Package resilience wraps the failure-handling primitives used when calling
// external collaborators: a circuit breaker and a jittered exponential retry.
package resilience

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/vidalocal/discovery/internal/config"
	"github.com/vidalocal/discovery/internal/observability"
)

func NewCircuitBreaker(name string, cfg config.CircuitBreakerConfig, logger *zap.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			var stateVal float64
			switch to {
			case gobreaker.StateClosed:
				stateVal = 0
			case gobreaker.StateHalfOpen:
				stateVal = 1
			case gobreaker.StateOpen:
				stateVal = 2
			}
			observability.CircuitBreakerState.WithLabelValues(name).Set(stateVal)
		},
	})
}

type permanentError struct {
	err error
}

func (p *permanentError) Error() string { return p.err.Error() }
func (p *permanentError) Unwrap() error { return p.err }

// Permanent marks an error as non-retryable. Retry returns it immediately
// without consuming further attempts.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Retry runs fn up to cfg.MaxAttempts times with exponential backoff. Each
// wait is jittered by up to half its length so that callers hitting the same
// rate limit do not retry in lockstep. A Permanent error or a cancelled
// context stops the loop early.
func Retry(ctx context.Context, cfg config.RetryConfig, fn func() error) error {
	var lastErr error
	wait := cfg.InitialWait

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		var perm *permanentError
		if errors.As(lastErr, &perm) {
			return perm.err
		}

		if attempt < cfg.MaxAttempts-1 {
			jittered := wait + time.Duration(rand.Int63n(int64(wait)/2+1))
			select {
			case <-ctx.Done():
				return fmt.Errorf("retry aborted after %d attempts: %w", attempt+1, ctx.Err())
			case <-time.After(jittered):
			}
			wait = time.Duration(float64(wait) * cfg.Multiplier)
			if wait > cfg.MaxWait {
				wait = cfg.MaxWait
			}
		}
	}

	return fmt.Errorf("all %d retry attempts failed: %w", cfg.MaxAttempts, lastErr)
}
