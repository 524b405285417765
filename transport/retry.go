package transport

import (
	"context"
	"sync"
	"time"
)

// RetryPolicy holds the constants spec.md §4.5 names for the local
// transports' retry/backoff/reconnect discipline.
type RetryPolicy struct {
	// Retries is R, the application-layer retry count (default 2).
	Retries int
	// RetryDelay is the base exponential-backoff delay (default 500ms):
	// delay = RetryDelay * 2^attempt.
	RetryDelay time.Duration
	// MaxConsecutiveErrors is N, the threshold that forces a reconnect
	// before the next read (default 3).
	MaxConsecutiveErrors int
	// PacingCap bounds the adaptive inter-group pacing delay (default 1s).
	PacingCap time.Duration
	// InterGroupDelay is the starting inter-group pacing delay (default
	// 50ms).
	InterGroupDelay time.Duration
}

// DefaultRetryPolicy matches original_source/_modbus_base.py's constructor
// defaults (retries=2, retry_delay=0.5, inter_register_delay=0.05).
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Retries:              2,
		RetryDelay:           500 * time.Millisecond,
		MaxConsecutiveErrors: 3,
		PacingCap:            1 * time.Second,
		InterGroupDelay:      50 * time.Millisecond,
	}
}

// Retry runs fn up to policy.Retries+1 times. It stops early on success or
// on a non-retryable error (a Modbus exception response is never retried).
// It returns the attempt count actually consumed (0 means it succeeded on
// the first try) so callers can feed the adaptive pacer.
func Retry(ctx context.Context, policy RetryPolicy, fn func(attempt int) error) (attempts int, err error) {
	var lastErr error
	for attempt := 0; attempt <= policy.Retries; attempt++ {
		lastErr = fn(attempt)
		if lastErr == nil {
			return attempt, nil
		}
		if !IsRetryable(lastErr) {
			return attempt, lastErr
		}
		if attempt < policy.Retries {
			delay := policy.RetryDelay * time.Duration(1<<uint(attempt))
			if sleepErr := sleepCtx(ctx, delay); sleepErr != nil {
				return attempt, sleepErr
			}
		}
	}
	return policy.Retries, lastErr
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Pacer implements the adaptive inter-group pacing rule (spec.md §4.5): wait
// the current delay between successive group reads; if the previous group
// required a retry, double the delay (capped) for subsequent groups in the
// same batch; otherwise leave it unchanged. A fresh Pacer should be created
// per read_runtime/read_energy batch.
type Pacer struct {
	cap     time.Duration
	current time.Duration
}

// NewPacer creates a Pacer starting at policy.InterGroupDelay.
func NewPacer(policy RetryPolicy) *Pacer {
	return &Pacer{cap: policy.PacingCap, current: policy.InterGroupDelay}
}

// Wait sleeps for the current pacing delay, honoring ctx cancellation.
func (p *Pacer) Wait(ctx context.Context) error {
	return sleepCtx(ctx, p.current)
}

// Note records whether the group just completed required a retry, doubling
// (capped) the pacing delay for the next group when it did.
func (p *Pacer) Note(retried bool) {
	if !retried {
		return
	}
	doubled := p.current * 2
	if doubled > p.cap {
		doubled = p.cap
	}
	p.current = doubled
}

// ReconnectGuard tracks consecutive errors across reads on one transport
// and decides when a forced reconnect is due, guarded by a mutex so only
// one reconnect runs at a time (spec.md §4.5 "consecutive-error reconnect").
type ReconnectGuard struct {
	mu                   sync.Mutex
	consecutiveErrors    int
	maxConsecutiveErrors int
}

// NewReconnectGuard builds a guard using policy.MaxConsecutiveErrors.
func NewReconnectGuard(policy RetryPolicy) *ReconnectGuard {
	return &ReconnectGuard{maxConsecutiveErrors: policy.MaxConsecutiveErrors}
}

// RecordSuccess resets the consecutive-error counter.
func (g *ReconnectGuard) RecordSuccess() {
	g.mu.Lock()
	g.consecutiveErrors = 0
	g.mu.Unlock()
}

// RecordError increments the counter and returns the new count.
func (g *ReconnectGuard) RecordError() int {
	g.mu.Lock()
	g.consecutiveErrors++
	n := g.consecutiveErrors
	g.mu.Unlock()
	return n
}

// ShouldReconnect reports whether the consecutive-error count has reached
// the configured threshold.
func (g *ReconnectGuard) ShouldReconnect() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.consecutiveErrors >= g.maxConsecutiveErrors
}

// Reset clears the counter, called after a successful reconnect.
func (g *ReconnectGuard) Reset() {
	g.RecordSuccess()
}
