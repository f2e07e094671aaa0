// Package retry executes datastore mutations with a bounded fixed-delay
// retry envelope. Only failures matching the policy predicate are retried;
// everything else propagates immediately.
package retry

import (
	"context"
	"time"

	"github.com/Ihor-Prokopenko/teams-app/internal/errs"
)

// Policy configures a single mutating operation's retry behavior.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
	Retryable   func(error) bool
}

// DefaultPolicy mirrors the service defaults: three attempts, one second
// between them, retrying only transient datastore failures.
var DefaultPolicy = Policy{
	MaxAttempts: 3,
	Delay:       time.Second,
	Retryable:   errs.IsTransient,
}

// Do invokes op, re-invoking on a retryable failure until the attempt
// budget is spent. The last failure is returned unwrapped. Non-retryable
// failures propagate immediately without waiting.
func Do(ctx context.Context, p Policy, op func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if p.Retryable == nil || !p.Retryable(lastErr) {
			return lastErr
		}
		if attempt == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.Delay):
		}
	}

	return lastErr
}
