package transport

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetrySucceedsFirstTry(t *testing.T) {
	policy := DefaultRetryPolicy()
	policy.RetryDelay = time.Millisecond
	calls := 0
	attempts, err := Retry(context.Background(), policy, func(attempt int) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempts != 0 || calls != 1 {
		t.Errorf("attempts=%d calls=%d, want 0/1", attempts, calls)
	}
}

func TestRetryRetriesTransientError(t *testing.T) {
	policy := DefaultRetryPolicy()
	policy.RetryDelay = time.Millisecond
	calls := 0
	attempts, err := Retry(context.Background(), policy, func(attempt int) error {
		calls++
		if calls < 2 {
			return NewError(TimeoutError, "read", nil)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 || attempts != 1 {
		t.Errorf("attempts=%d calls=%d, want 1/2", attempts, calls)
	}
}

func TestRetryExhaustsRetries(t *testing.T) {
	policy := DefaultRetryPolicy()
	policy.RetryDelay = time.Millisecond
	policy.Retries = 2
	calls := 0
	_, err := Retry(context.Background(), policy, func(attempt int) error {
		calls++
		return NewError(ConnectionError, "read", nil)
	})
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if calls != 3 {
		t.Errorf("calls=%d, want 3 (1 initial + 2 retries)", calls)
	}
}

func TestRetryDoesNotRetryNonRetryableError(t *testing.T) {
	policy := DefaultRetryPolicy()
	policy.RetryDelay = time.Millisecond
	calls := 0
	_, err := Retry(context.Background(), policy, func(attempt int) error {
		calls++
		return NewError(WriteError, "write", nil)
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("calls=%d, want 1 (write errors are not retryable)", calls)
	}
}

func TestRetryRespectsContextCancellation(t *testing.T) {
	policy := DefaultRetryPolicy()
	policy.RetryDelay = 100 * time.Millisecond
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Retry(ctx, policy, func(attempt int) error {
		return NewError(TimeoutError, "read", nil)
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestPacerDoublesOnRetryAndCaps(t *testing.T) {
	policy := RetryPolicy{InterGroupDelay: 50 * time.Millisecond, PacingCap: 150 * time.Millisecond}
	p := NewPacer(policy)
	if p.current != 50*time.Millisecond {
		t.Fatalf("got %v, want 50ms", p.current)
	}
	p.Note(true)
	if p.current != 100*time.Millisecond {
		t.Fatalf("got %v, want 100ms", p.current)
	}
	p.Note(true)
	if p.current != 150*time.Millisecond {
		t.Fatalf("got %v, want 150ms (capped)", p.current)
	}
}

func TestPacerUnchangedWithoutRetry(t *testing.T) {
	policy := RetryPolicy{InterGroupDelay: 50 * time.Millisecond, PacingCap: 1 * time.Second}
	p := NewPacer(policy)
	p.Note(false)
	if p.current != 50*time.Millisecond {
		t.Errorf("got %v, want unchanged 50ms", p.current)
	}
}

func TestReconnectGuardThreshold(t *testing.T) {
	policy := RetryPolicy{MaxConsecutiveErrors: 3}
	g := NewReconnectGuard(policy)
	if g.ShouldReconnect() {
		t.Fatal("should not reconnect with zero errors")
	}
	g.RecordError()
	g.RecordError()
	if g.ShouldReconnect() {
		t.Fatal("should not reconnect at 2 errors with threshold 3")
	}
	g.RecordError()
	if !g.ShouldReconnect() {
		t.Fatal("should reconnect at 3 errors with threshold 3")
	}
	g.RecordSuccess()
	if g.ShouldReconnect() {
		t.Fatal("should not reconnect after RecordSuccess resets the counter")
	}
}
