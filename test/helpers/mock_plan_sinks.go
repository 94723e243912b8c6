package helpers

import (
	"context"
	"sync"
	"time"

	"github.com/andrescamacho/aeroroute-go/internal/application/routeplan"
)

// MockPlanPublisher captures published plan summaries
type MockPlanPublisher struct {
	mu        sync.Mutex
	Published []routeplan.PlanSummary
	Err       error
}

func (m *MockPlanPublisher) PublishPlan(ctx context.Context, summary routeplan.PlanSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Published = append(m.Published, summary)
	return nil
}

// MockPlanRecorder captures recorded plan outcomes
type MockPlanRecorder struct {
	mu       sync.Mutex
	Plans    []*routeplan.RoutePlanResult
	Failures []string
}

func (m *MockPlanRecorder) RecordPlan(result *routeplan.RoutePlanResult, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Plans = append(m.Plans, result)
}

func (m *MockPlanRecorder) RecordFailure(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Failures = append(m.Failures, code)
}
