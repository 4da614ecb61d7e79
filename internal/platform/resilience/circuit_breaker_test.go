package resilience

import (
	"testing"
	"time"
)

func TestCircuitBreakerTripsAfterFailureStreak(t *testing.T) {
	b := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 3, OpenTimeout: time.Minute, HalfOpenMaxReq: 1})

	for i := 0; i < 3; i++ {
		if err := b.Allow(); err != nil {
			t.Fatalf("call %d should be allowed: %v", i, err)
		}
		b.RecordFailure()
	}

	if err := b.Allow(); err != ErrCircuitOpen {
		t.Fatalf("expected ErrCircuitOpen after the streak, got %v", err)
	}
	if got := b.State(); got != BreakerOpen {
		t.Fatalf("state = %s, want open", got)
	}
}

func TestCircuitBreakerRecoversThroughHalfOpen(t *testing.T) {
	b := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, OpenTimeout: time.Minute, HalfOpenMaxReq: 1})
	base := time.Now()
	b.clock = func() time.Time { return base }

	b.RecordFailure()
	if err := b.Allow(); err != ErrCircuitOpen {
		t.Fatalf("expected open circuit, got %v", err)
	}

	// Advance past the open timeout; the next probe is admitted.
	b.clock = func() time.Time { return base.Add(2 * time.Minute) }
	if err := b.Allow(); err != nil {
		t.Fatalf("half-open probe should be allowed: %v", err)
	}
	b.RecordSuccess()

	if got := b.State(); got != BreakerClosed {
		t.Fatalf("state = %s, want closed after successful probe", got)
	}
}

func TestCircuitBreakerFailedProbeReopens(t *testing.T) {
	b := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, OpenTimeout: time.Minute, HalfOpenMaxReq: 1})
	base := time.Now()
	b.clock = func() time.Time { return base }

	b.RecordFailure()
	b.clock = func() time.Time { return base.Add(2 * time.Minute) }
	if err := b.Allow(); err != nil {
		t.Fatalf("half-open probe should be allowed: %v", err)
	}
	b.RecordFailure()

	if err := b.Allow(); err != ErrCircuitOpen {
		t.Fatalf("expected re-opened circuit, got %v", err)
	}
}

func TestCircuitBreakerSuccessResetsFailureStreak(t *testing.T) {
	b := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 2, OpenTimeout: time.Minute, HalfOpenMaxReq: 1})

	b.RecordFailure()
	b.RecordSuccess()
	b.RecordFailure()

	if err := b.Allow(); err != nil {
		t.Fatalf("breaker should still be closed: %v", err)
	}
}

func TestCircuitBreakerZeroConfigGetsDefaults(t *testing.T) {
	b := NewCircuitBreaker(CircuitBreakerConfig{})

	if b.cfg.FailureThreshold != defaultFailureThreshold {
		t.Fatalf("failure threshold = %d, want %d", b.cfg.FailureThreshold, defaultFailureThreshold)
	}
	if b.cfg.OpenTimeout != defaultOpenTimeout {
		t.Fatalf("open timeout = %s, want %s", b.cfg.OpenTimeout, defaultOpenTimeout)
	}
	if b.cfg.HalfOpenMaxReq != defaultHalfOpenMaxReq {
		t.Fatalf("half-open max = %d, want %d", b.cfg.HalfOpenMaxReq, defaultHalfOpenMaxReq)
	}
}
