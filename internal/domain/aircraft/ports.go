package aircraft

import "context"

// AircraftRepository is the aircraft data provider
type AircraftRepository interface {
	// FindByID returns nil, nil when the id does not resolve
	FindByID(ctx context.Context, aircraftID string) (*Performance, error)
	Save(ctx context.Context, p *Performance) error
}
