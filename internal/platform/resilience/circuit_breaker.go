package resilience

import (
	"errors"
	"sync"
	"time"
)

// ErrCircuitOpen is returned by Allow while the breaker refuses traffic.
var ErrCircuitOpen = errors.New("circuit open")

type BreakerState int

const (
	BreakerClosed BreakerState = iota
	BreakerOpen
	BreakerHalfOpen
)

func (s BreakerState) String() string {
	switch s {
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half_open"
	default:
		return "closed"
	}
}

// CircuitBreaker shields an outbound dependency: a streak of failures trips
// it open, and after OpenTimeout a bounded number of probe requests decide
// whether it closes again. Callers pair Allow with RecordSuccess or
// RecordFailure around each attempt.
type CircuitBreaker struct {
	cfg CircuitBreakerConfig

	mu             sync.Mutex
	state          BreakerState
	failureStreak  int
	trippedAt      time.Time
	probesInFlight int
	probeSuccesses int
	clock          func() time.Time
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{
		cfg:   cfg.withDefaults(),
		clock: time.Now,
	}
}

// Allow reports whether a request may proceed, reserving a probe slot when
// the breaker is half-open.
func (b *CircuitBreaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == BreakerOpen && b.clock().Sub(b.trippedAt) >= b.cfg.OpenTimeout {
		b.beginProbing()
	}

	switch b.state {
	case BreakerOpen:
		return ErrCircuitOpen
	case BreakerHalfOpen:
		if b.probesInFlight >= b.cfg.HalfOpenMaxReq {
			return ErrCircuitOpen
		}
		b.probesInFlight++
	}
	return nil
}

func (b *CircuitBreaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case BreakerClosed:
		b.failureStreak = 0
	case BreakerHalfOpen:
		b.releaseProbe()
		b.probeSuccesses++
		if b.probeSuccesses >= b.cfg.HalfOpenMaxReq && b.probesInFlight == 0 {
			b.reset()
		}
	}
}

func (b *CircuitBreaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case BreakerClosed:
		b.failureStreak++
		if b.failureStreak >= b.cfg.FailureThreshold {
			b.trip()
		}
	case BreakerHalfOpen:
		// One failed probe re-opens immediately.
		b.releaseProbe()
		b.trip()
	case BreakerOpen:
		b.trippedAt = b.clock()
	}
}

// State projects the open->half_open transition without mutating, so a
// reader never sees "open" past the timeout.
func (b *CircuitBreaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == BreakerOpen && b.clock().Sub(b.trippedAt) >= b.cfg.OpenTimeout {
		return BreakerHalfOpen
	}
	return b.state
}

func (b *CircuitBreaker) releaseProbe() {
	if b.probesInFlight > 0 {
		b.probesInFlight--
	}
}

func (b *CircuitBreaker) trip() {
	b.state = BreakerOpen
	b.trippedAt = b.clock()
	b.probesInFlight = 0
	b.probeSuccesses = 0
}

func (b *CircuitBreaker) beginProbing() {
	b.state = BreakerHalfOpen
	b.probesInFlight = 0
	b.probeSuccesses = 0
}

func (b *CircuitBreaker) reset() {
	b.state = BreakerClosed
	b.failureStreak = 0
	b.probesInFlight = 0
	b.probeSuccesses = 0
	b.trippedAt = time.Time{}
}
