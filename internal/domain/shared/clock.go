package shared

import (
	"context"
	"sync"
	"time"
)

// Clock is the source of "now" for plan timestamps and the sleeper used by
// upstream backoff. All times are UTC.
type Clock interface {
	Now() time.Time
	// Sleep waits for d or until ctx is done, whichever comes first
	Sleep(ctx context.Context, d time.Duration) error
}

type RealClock struct{}

func NewRealClock() Clock { return RealClock{} }

func (RealClock) Now() time.Time { return time.Now().UTC() }

func (RealClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// MockClock only moves when told to. Sleep returns immediately, records the
// requested duration in Slept and advances the clock by it. A done context
// fails the sleep without recording it.
type MockClock struct {
	mu          sync.Mutex
	CurrentTime time.Time
	Slept       []time.Duration
}

func NewMockClock(start time.Time) *MockClock {
	return &MockClock{CurrentTime: start.UTC()}
}

func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CurrentTime
}

func (m *MockClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Slept = append(m.Slept, d)
	m.CurrentTime = m.CurrentTime.Add(d)
	return nil
}

func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CurrentTime = m.CurrentTime.Add(d)
}
