package routing

import (
	"context"

	"github.com/andrescamacho/aeroroute-go/internal/domain/aircraft"
	"github.com/andrescamacho/aeroroute-go/internal/domain/shared"
)

// Planner defines the route planning operations consumed by the application layer
type Planner interface {
	Optimize(ctx context.Context, perf *aircraft.Performance, requests []LegRequest, mode shared.OptimizationMode) (*Plan, error)
	Alternative(ctx context.Context, perf *aircraft.Performance, requests []LegRequest, primary *Plan) *AlternativeRoute
}

var _ Planner = (*Optimizer)(nil)
