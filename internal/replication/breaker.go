package replication

import (
	"context"
	"net/http"
	"sync"
	"time"

	"libraryhub/internal/liberr"
)

// ErrCircuitOpen is returned without attempting the network call while the
// circuit is open. Callers treat it like any other sync failure: log it,
// never fail the triggering request.
var ErrCircuitOpen = liberr.New("Sync circuit open: frontend service unavailable", http.StatusServiceUnavailable)

type breakerState int

const (
	stateClosed breakerState = iota
	stateOpen
	stateHalfOpen
)

// Breaker wraps a Notifier with a consecutive-failure circuit. After failMax
// consecutive failures the circuit opens and calls are rejected immediately.
// Once resetTimeout elapses, a single trial call is let through: success
// closes the circuit and resets the count, failure re-opens it for another
// full cool-down.
type Breaker struct {
	inner        Notifier
	failMax      int
	resetTimeout time.Duration
	now          func() time.Time

	mu       sync.Mutex
	state    breakerState
	failures int
	openedAt time.Time
}

func NewBreaker(inner Notifier, failMax int, resetTimeout time.Duration) *Breaker {
	return &Breaker{
		inner:        inner,
		failMax:      failMax,
		resetTimeout: resetTimeout,
		now:          time.Now,
	}
}

func (b *Breaker) Notify(ctx context.Context, ev Event) error {
	if !b.allow() {
		return ErrCircuitOpen
	}
	err := b.inner.Notify(ctx, ev)
	b.record(err == nil)
	return err
}

// State reports the current state name, for logging and tests.
func (b *Breaker) State() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch b.state {
	case stateOpen:
		return "open"
	case stateHalfOpen:
		return "half-open"
	default:
		return "closed"
	}
}

func (b *Breaker) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case stateClosed:
		return true
	case stateOpen:
		if b.now().Sub(b.openedAt) >= b.resetTimeout {
			// cool-down elapsed, admit one trial call
			b.state = stateHalfOpen
			return true
		}
		return false
	default:
		// half-open with a trial already in flight
		return false
	}
}

func (b *Breaker) record(success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if success {
		b.state = stateClosed
		b.failures = 0
		return
	}

	switch b.state {
	case stateHalfOpen:
		b.state = stateOpen
		b.openedAt = b.now()
	default:
		b.failures++
		if b.failures >= b.failMax {
			b.state = stateOpen
			b.openedAt = b.now()
		}
	}
}
