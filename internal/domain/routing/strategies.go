package routing

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/aeroroute-go/internal/domain/airport"
)

// stopStrategy is one rung of the fuel stop fallback ladder.
// ok=false means the strategy found nothing and the next one should be tried;
// a non-nil error aborts the whole plan.
type stopStrategy interface {
	name() string
	attempt(ctx context.Context, o *Optimizer, s *search, from, to *airport.Airport, departure time.Time, depth int) (legResult, bool, error)
}

// boxStrategy picks the best single stop inside a box around the leg midpoint
type boxStrategy struct {
	radiusFactor float64
}

func (b *boxStrategy) name() string {
	return fmt.Sprintf("box(%.1f)", b.radiusFactor)
}

func (b *boxStrategy) attempt(ctx context.Context, o *Optimizer, s *search, from, to *airport.Airport, departure time.Time, depth int) (legResult, bool, error) {
	candidates := o.loadCandidates(ctx, s, from, to, b.radiusFactor)

	var best *airport.Airport
	bestScore := 0.0
	for _, c := range candidates {
		if c.ICAO == from.ICAO || c.ICAO == to.ICAO {
			continue
		}
		if !c.HasFuelType(o.tuning.RequiredFuelType) {
			continue
		}
		if !s.perf.CanFlyDirect(airport.DistanceNM(from, c)) || !s.perf.CanFlyDirect(airport.DistanceNM(c, to)) {
			continue
		}
		inbound := BuildEdge(from, c, s.perf, departure, s.mode, o.tuning, EdgeOptions{})
		if !inbound.Viable {
			continue
		}
		score := o.scoreCandidate(s, from, c, to)
		// candidates arrive ICAO-ordered, so strict < keeps the lowest ICAO on ties
		if best == nil || score < bestScore {
			best, bestScore = c, score
		}
	}
	if best == nil {
		return legResult{}, false, nil
	}

	return o.splitAt(ctx, s, []*airport.Airport{from, best, to}, departure, depth)
}

// graphStrategy runs Dijkstra over every candidate the wide box produced
type graphStrategy struct{}

func (graphStrategy) name() string {
	return "graph"
}

func (graphStrategy) attempt(ctx context.Context, o *Optimizer, s *search, from, to *airport.Airport, departure time.Time, depth int) (legResult, bool, error) {
	candidates, loaded := s.candidates[pairKey(from, to)]
	if !loaded {
		candidates = o.loadCandidates(ctx, s, from, to, o.tuning.WideRadiusFactor)
	}
	if len(candidates) == 0 {
		return legResult{}, false, nil
	}

	g := NewRouteGraph(from, to, candidates, s.perf, departure, s.mode, o.tuning)
	path := g.ShortestPath(from.ICAO, to.ICAO)
	if len(path) <= 2 {
		return legResult{}, false, nil
	}

	nodes := make([]*airport.Airport, len(path))
	for i, icao := range path {
		nodes[i] = g.Node(icao)
	}
	return o.splitAt(ctx, s, nodes, departure, depth)
}

// loadCandidates queries the directory for a box around the leg midpoint.
// Query failures are logged and treated as no candidates.
func (o *Optimizer) loadCandidates(ctx context.Context, s *search, from, to *airport.Airport, radiusFactor float64) []*airport.Airport {
	dist := airport.DistanceNM(from, to)
	mid := airport.Midpoint(from.Coordinates(), to.Coordinates())
	box := airport.BoundingBoxAround(mid, radiusFactor*dist)

	candidates, err := o.directory.CandidatesInBoundingBox(ctx, s.perf.MinRunwayFt(), box)
	if err != nil {
		o.logger.Warn("candidate search failed, continuing without candidates",
			"from", from.ICAO, "to", to.ICAO, "radius_factor", radiusFactor, "error", err)
		candidates = nil
	}

	key := pairKey(from, to)
	if len(candidates) >= len(s.candidates[key]) {
		s.candidates[key] = candidates
	}
	return candidates
}

// splitAt solves each hop of nodes recursively. Every interior node becomes a refuel stop
// and every produced leg is marked as part of a fuel stop routing.
func (o *Optimizer) splitAt(ctx context.Context, s *search, nodes []*airport.Airport, departure time.Time, depth int) (legResult, bool, error) {
	origin, target := nodes[0], nodes[len(nodes)-1]
	direct := airport.DistanceNM(origin, target)

	out := legResult{kind: resultViaStop}
	hopDeparture := departure
	for i := 0; i < len(nodes)-1; i++ {
		hop, err := o.solve(ctx, s, nodes[i], nodes[i+1], hopDeparture, depth+1)
		if err != nil {
			return legResult{}, false, err
		}
		if hop.kind == resultFailed {
			return legResult{}, false, nil
		}
		// hops are re-solved at their real departure, so the arrival may differ from the estimate
		arrival, at := hop.arrival(), nodes[i+1]
		interior := i < len(nodes)-2
		if at.CurfewAt(arrival) || (interior && !at.OpenAt(arrival)) {
			o.logger.Debug("hop arrival not allowed",
				"from", nodes[i].ICAO, "to", at.ICAO, "arrival", arrival.Format("15:04"))
			return legResult{}, false, nil
		}

		for _, leg := range hop.legs {
			leg.IsFuelStopLeg = true
			out.legs = append(out.legs, leg)
		}
		out.stops = append(out.stops, hop.stops...)

		if interior {
			stop := at
			reason := fmt.Sprintf("direct %.0fnm exceeds max range %.0fnm; refuel at %s",
				direct, s.perf.MaxDirectNM(0), stop.ICAO)
			out.stops = append(out.stops, o.newStop(s.perf, nodes[i], stop, nodes[i+2], reason))
			hopDeparture = arrival.Add(o.tuning.GroundTime)
		}
	}
	return out, true, nil
}
