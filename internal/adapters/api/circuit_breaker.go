package api

import (
	"errors"
	"sync"
	"time"

	"github.com/andrescamacho/aeroroute-go/internal/domain/shared"
)

// CircuitState is closed (calls flow), open (calls fail fast) or half-open (probing)
type CircuitState int

const (
	CircuitClosed CircuitState = iota
	CircuitOpen
	CircuitHalfOpen
)

// ErrCircuitOpen is returned without contacting the feed while the breaker is open
var ErrCircuitOpen = errors.New("circuit breaker open")

func (s CircuitState) String() string {
	switch s {
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half-open"
	default:
		return "closed"
	}
}

// StateListener observes breaker transitions. It runs outside the breaker lock.
type StateListener func(from, to CircuitState)

// CircuitBreaker stops calling an upstream feed after repeated failures so a dead
// provider costs one fast error per plan instead of a full timeout
type CircuitBreaker struct {
	mu sync.RWMutex

	threshold int
	cooldown  time.Duration
	clock     shared.Clock

	state    CircuitState
	failures int
	openedAt time.Time

	listener StateListener
}

// NewCircuitBreaker opens after threshold consecutive failures and probes again
// once cooldown has passed. A nil clock uses the wall clock.
func NewCircuitBreaker(threshold int, cooldown time.Duration, clock shared.Clock) *CircuitBreaker {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &CircuitBreaker{threshold: threshold, cooldown: cooldown, clock: clock}
}

// OnStateChange installs the transition listener
func (cb *CircuitBreaker) OnStateChange(l StateListener) {
	cb.mu.Lock()
	cb.listener = l
	cb.mu.Unlock()
}

// Call runs fn unless the breaker is open. fn runs unlocked so retries and
// backoff sleeps of one caller never block another.
func (cb *CircuitBreaker) Call(fn func() error) error {
	if err := cb.admit(); err != nil {
		return err
	}
	err := fn()
	cb.record(err)
	return err
}

func (cb *CircuitBreaker) admit() error {
	cb.mu.Lock()
	if cb.state != CircuitOpen {
		cb.mu.Unlock()
		return nil
	}
	if cb.clock.Now().Sub(cb.openedAt) < cb.cooldown {
		cb.mu.Unlock()
		return ErrCircuitOpen
	}
	notify := cb.moveTo(CircuitHalfOpen)
	cb.mu.Unlock()
	notify()
	return nil
}

func (cb *CircuitBreaker) record(err error) {
	cb.mu.Lock()
	notify := func() {}
	if err == nil {
		cb.failures = 0
		if cb.state == CircuitHalfOpen {
			notify = cb.moveTo(CircuitClosed)
		}
	} else {
		cb.failures++
		// a failed probe reopens immediately
		if cb.state == CircuitHalfOpen || cb.failures >= cb.threshold {
			cb.openedAt = cb.clock.Now()
			notify = cb.moveTo(CircuitOpen)
		}
	}
	cb.mu.Unlock()
	notify()
}

// moveTo must be called with mu held; the returned func fires the listener
func (cb *CircuitBreaker) moveTo(to CircuitState) func() {
	from := cb.state
	cb.state = to
	l := cb.listener
	if l == nil || from == to {
		return func() {}
	}
	return func() { l(from, to) }
}

// GetState returns the current state
func (cb *CircuitBreaker) GetState() CircuitState {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}

// GetFailureCount returns the consecutive failure count
func (cb *CircuitBreaker) GetFailureCount() int {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.failures
}

// Reset closes the breaker and forgets past failures
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	cb.failures = 0
	notify := cb.moveTo(CircuitClosed)
	cb.mu.Unlock()
	notify()
}
