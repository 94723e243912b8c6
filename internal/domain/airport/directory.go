package airport

import (
	"context"
	"fmt"
	"sort"

	"github.com/andrescamacho/aeroroute-go/internal/domain/shared"
)

// Directory resolves airport records and fuel stop candidates.
// It holds no state of its own beyond the repository; every call goes to the provider.
type Directory struct {
	repo AirportRepository
}

// NewDirectory creates a directory over an airport repository
func NewDirectory(repo AirportRepository) *Directory {
	return &Directory{repo: repo}
}

// Lookup returns the airport for icao, or found=false when it does not resolve
func (d *Directory) Lookup(ctx context.Context, icao string) (*Airport, bool, error) {
	code := NormalizeICAO(icao)
	if code == "" {
		return nil, false, nil
	}

	a, err := d.repo.FindByICAO(ctx, code)
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up airport %s: %w", code, err)
	}
	if a == nil {
		return nil, false, nil
	}
	return a, true, nil
}

// RequireLookup is Lookup that fails with UNKNOWN_AIRPORT when the code does not resolve
func (d *Directory) RequireLookup(ctx context.Context, icao string) (*Airport, error) {
	a, found, err := d.Lookup(ctx, icao)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, shared.NewUnknownAirportError(NormalizeICAO(icao))
	}
	return a, nil
}

// CandidatesInBoundingBox returns fuel-capable airports with runway >= minRunwayFt
// inside bbox, ordered by ICAO
func (d *Directory) CandidatesInBoundingBox(ctx context.Context, minRunwayFt int, bbox BoundingBox) ([]*Airport, error) {
	found, err := d.repo.FindFuelCandidates(ctx, minRunwayFt, bbox)
	if err != nil {
		return nil, fmt.Errorf("failed to load fuel stop candidates: %w", err)
	}

	// Providers may answer with a coarser query; enforce the contract here
	candidates := make([]*Airport, 0, len(found))
	for _, a := range found {
		if !a.HasFuel || a.LongestRunwayFt < minRunwayFt {
			continue
		}
		if !bbox.Contains(a.Coordinates()) {
			continue
		}
		candidates = append(candidates, a)
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].ICAO < candidates[j].ICAO
	})

	return candidates, nil
}
