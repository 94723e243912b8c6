package helpers

import (
	"context"
	"sync"
	"time"

	"github.com/andrescamacho/aeroroute-go/internal/domain/environment"
)

// MockWeatherProvider returns canned station reports
type MockWeatherProvider struct {
	mu      sync.Mutex
	reports map[string]environment.StationReport

	// Err is returned alongside whatever reports match
	Err error
	// Delay blocks the call until it elapses or the context ends
	Delay time.Duration
	// Calls records the ICAO list of every call
	Calls [][]string
}

// NewMockWeatherProvider creates an empty provider
func NewMockWeatherProvider() *MockWeatherProvider {
	return &MockWeatherProvider{reports: make(map[string]environment.StationReport)}
}

// SetReport registers the report returned for r.ICAO
func (m *MockWeatherProvider) SetReport(r environment.StationReport) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports[r.ICAO] = r
}

// FetchReports implements environment.WeatherProvider
func (m *MockWeatherProvider) FetchReports(ctx context.Context, icaos []string) ([]environment.StationReport, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, append([]string(nil), icaos...))
	m.mu.Unlock()

	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	var out []environment.StationReport
	for _, icao := range icaos {
		if r, ok := m.reports[icao]; ok {
			out = append(out, r)
		}
	}
	return out, m.Err
}

// MockNotamSource returns canned NOTAMs
type MockNotamSource struct {
	mu     sync.Mutex
	name   string
	notams []environment.RawNotam

	Err   error
	Delay time.Duration
}

// NewMockNotamSource creates a source named name
func NewMockNotamSource(name string, notams ...environment.RawNotam) *MockNotamSource {
	return &MockNotamSource{name: name, notams: notams}
}

// Add appends a NOTAM to the source
func (m *MockNotamSource) Add(n environment.RawNotam) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notams = append(m.notams, n)
}

func (m *MockNotamSource) Name() string {
	return m.name
}

// FetchNotams implements environment.NotamSource
func (m *MockNotamSource) FetchNotams(ctx context.Context, icaos []string, window environment.TimeWindow) ([]environment.RawNotam, error) {
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]environment.RawNotam(nil), m.notams...), nil
}
