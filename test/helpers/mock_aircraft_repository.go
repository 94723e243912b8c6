package helpers

import (
	"context"
	"sync"

	"github.com/andrescamacho/aeroroute-go/internal/domain/aircraft"
)

// MockAircraftRepository is an in-memory AircraftRepository
type MockAircraftRepository struct {
	mu       sync.RWMutex
	aircraft map[string]*aircraft.Performance

	// FindErr is returned by FindByID when set
	FindErr error
}

// NewMockAircraftRepository creates a repository holding the given aircraft
func NewMockAircraftRepository(records ...*aircraft.Performance) *MockAircraftRepository {
	m := &MockAircraftRepository{aircraft: make(map[string]*aircraft.Performance)}
	for _, p := range records {
		m.aircraft[p.AircraftID] = p
	}
	return m
}

// FindByID returns nil, nil for unknown ids
func (m *MockAircraftRepository) FindByID(ctx context.Context, aircraftID string) (*aircraft.Performance, error) {
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.aircraft[aircraftID], nil
}

// Save stores the aircraft
func (m *MockAircraftRepository) Save(ctx context.Context, p *aircraft.Performance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.aircraft[p.AircraftID] = p
	return nil
}
