package helpers

import (
	"context"
	"sort"
	"sync"

	"github.com/andrescamacho/aeroroute-go/internal/domain/airport"
)

// MockAirportRepository is an in-memory AirportRepository
type MockAirportRepository struct {
	mu       sync.RWMutex
	airports map[string]*airport.Airport

	// CandidateErr is returned by FindFuelCandidates when set
	CandidateErr error
	// CandidateQueries counts FindFuelCandidates calls
	CandidateQueries int
}

// NewMockAirportRepository creates a repository holding the given airports
func NewMockAirportRepository(airports ...*airport.Airport) *MockAirportRepository {
	m := &MockAirportRepository{airports: make(map[string]*airport.Airport)}
	for _, a := range airports {
		m.airports[a.ICAO] = a
	}
	return m
}

// NewFixtureAirportRepository creates a repository holding FixtureAirports
func NewFixtureAirportRepository() *MockAirportRepository {
	return NewMockAirportRepository(FixtureAirports()...)
}

// FindByICAO returns nil, nil for unknown codes
func (m *MockAirportRepository) FindByICAO(ctx context.Context, icao string) (*airport.Airport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.airports[icao], nil
}

// FindFuelCandidates filters the stored airports the way the SQL query does
func (m *MockAirportRepository) FindFuelCandidates(ctx context.Context, minRunwayFt int, bbox airport.BoundingBox) ([]*airport.Airport, error) {
	m.mu.Lock()
	m.CandidateQueries++
	m.mu.Unlock()

	if m.CandidateErr != nil {
		return nil, m.CandidateErr
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*airport.Airport
	for _, a := range m.airports {
		if a.HasFuel && a.LongestRunwayFt >= minRunwayFt && bbox.Contains(a.Coordinates()) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ICAO < out[j].ICAO })
	return out, nil
}

// Save stores the airport
func (m *MockAirportRepository) Save(ctx context.Context, a *airport.Airport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.airports[a.ICAO] = a
	return nil
}

// Count is the number of stored airports
func (m *MockAirportRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.airports)
}
