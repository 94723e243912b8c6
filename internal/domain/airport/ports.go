package airport

import "context"

// AirportRepository is the airport data provider consumed by the directory
type AirportRepository interface {
	// FindByICAO returns nil, nil when the code does not resolve
	FindByICAO(ctx context.Context, icao string) (*Airport, error)

	// FindFuelCandidates returns fuel-capable airports with a runway of at least
	// minRunwayFt that lie inside bbox
	FindFuelCandidates(ctx context.Context, minRunwayFt int, bbox BoundingBox) ([]*Airport, error)

	Save(ctx context.Context, a *Airport) error
}
