package routing

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/aeroroute-go/internal/domain/aircraft"
	"github.com/andrescamacho/aeroroute-go/internal/domain/airport"
	"github.com/andrescamacho/aeroroute-go/internal/domain/shared"
)

var departure = time.Date(2026, 3, 14, 14, 0, 0, 0, time.UTC)

func fuelAirport(icao string, lat, lon float64, price, fbo float64) *airport.Airport {
	return &airport.Airport{
		ICAO: icao, Name: icao, CountryPrefix: "K",
		Latitude: lat, Longitude: lon,
		LongestRunwayFt: 8000, HasFuel: true,
		FuelPriceUSDGal: price, FBOFeeUSD: fbo,
	}
}

func transcon() (origin, target *airport.Airport, candidates []*airport.Airport) {
	origin = fuelAirport("KTEB", 40.8501, -74.0608, 8.20, 450)
	target = fuelAirport("KLAX", 33.9425, -118.4081, 7.90, 600)
	candidates = []*airport.Airport{
		fuelAirport("KMKC", 39.1232, -94.5928, 6.10, 150),
		fuelAirport("KDEN", 39.8617, -104.6731, 6.80, 350),
		fuelAirport("KICT", 37.6499, -97.4331, 5.95, 200),
		fuelAirport("KOMA", 41.3032, -95.8941, 6.40, 250),
		fuelAirport("KCMH", 39.9980, -82.8919, 7.20, 300),
		fuelAirport("KABQ", 35.0402, -106.6092, 6.90, 275),
	}
	return origin, target, candidates
}

func TestBuildEdge(t *testing.T) {
	midsize := &aircraft.Performance{AircraftID: "N1", Category: aircraft.CategoryMidsize}
	tuning := DefaultTuning()
	teb := fuelAirport("KTEB", 40.8501, -74.0608, 8.20, 450)
	den := fuelAirport("KDEN", 39.8617, -104.6731, 6.80, 350)

	t.Run("viable edge carries the computed values", func(t *testing.T) {
		e := BuildEdge(teb, den, midsize, departure, shared.ModeCost, tuning, EdgeOptions{})

		require.True(t, e.Viable, e.Reason)
		assert.InDelta(t, 1394.7, e.DistanceNM, 0.5)
		assert.InDelta(t, e.DistanceNM/450*60, e.FlightTimeMin, 1e-9)
		assert.InDelta(t, e.DistanceNM/450*230, e.FuelBurnGal, 1e-9)
		assert.InDelta(t, e.FuelBurnGal*8.20, e.FuelCostUSD, 1e-9, "fuel is priced at the departure airport")
		assert.Equal(t, 350.0, e.FBOFeeUSD)
		assert.InDelta(t, e.FuelCostUSD+e.FBOFeeUSD, e.Weight, 1e-9)
		assert.WithinDuration(t, departure.Add(time.Duration(e.FlightTimeMin*float64(time.Minute))), e.ArrivalUTC, time.Second)
	})

	t.Run("short runway", func(t *testing.T) {
		short := *den
		short.LongestRunwayFt = 4000

		e := BuildEdge(teb, &short, midsize, departure, shared.ModeCost, tuning, EdgeOptions{})

		assert.False(t, e.Viable)
		assert.Contains(t, e.Reason, "runway 4000ft")
	})

	t.Run("no jet fuel at an intermediate node", func(t *testing.T) {
		dry := *den
		dry.HasFuel = false

		intermediate := BuildEdge(teb, &dry, midsize, departure, shared.ModeCost, tuning, EdgeOptions{})
		final := BuildEdge(teb, &dry, midsize, departure, shared.ModeCost, tuning, EdgeOptions{FinalDestination: true})

		assert.False(t, intermediate.Viable)
		assert.Contains(t, intermediate.Reason, "no JET-A")
		assert.True(t, final.Viable, "no uplift is planned at the final destination")
	})

	t.Run("beyond range", func(t *testing.T) {
		lax := fuelAirport("KLAX", 33.9425, -118.4081, 7.90, 600)

		e := BuildEdge(teb, lax, midsize, departure, shared.ModeCost, tuning, EdgeOptions{FinalDestination: true})

		assert.False(t, e.Viable)
		assert.Contains(t, e.Reason, "exceeds max direct range")
	})

	t.Run("arrival inside curfew", func(t *testing.T) {
		restricted := *den
		// arrival is about 17:06Z
		restricted.Curfew = &airport.TimeWindow{From: "16:00", To: "18:00"}

		e := BuildEdge(teb, &restricted, midsize, departure, shared.ModeCost, tuning, EdgeOptions{FinalDestination: true})

		assert.False(t, e.Viable)
		assert.Contains(t, e.Reason, "curfew")
	})

	t.Run("arrival outside operating hours", func(t *testing.T) {
		restricted := *den
		restricted.OperatingHours = &airport.TimeWindow{From: "06:00", To: "16:00"}

		intermediate := BuildEdge(teb, &restricted, midsize, departure, shared.ModeCost, tuning, EdgeOptions{})
		final := BuildEdge(teb, &restricted, midsize, departure, shared.ModeCost, tuning, EdgeOptions{FinalDestination: true})

		assert.False(t, intermediate.Viable)
		assert.Contains(t, intermediate.Reason, "operating hours")
		assert.True(t, final.Viable)
	})

	t.Run("multiple reasons are joined", func(t *testing.T) {
		bad := *den
		bad.LongestRunwayFt = 1000
		bad.HasFuel = false

		e := BuildEdge(teb, &bad, midsize, departure, shared.ModeCost, tuning, EdgeOptions{})

		assert.Contains(t, e.Reason, "; ")
	})
}

func TestEdgeWeight(t *testing.T) {
	tuning := DefaultTuning()

	assert.Equal(t, 1150.0, EdgeWeight(shared.ModeCost, tuning, 1000, 150, 120))
	assert.Equal(t, 120.0, EdgeWeight(shared.ModeTime, tuning, 1000, 150, 120))
	// 0.5*(1000+150) + 30*2
	assert.Equal(t, 635.0, EdgeWeight(shared.ModeBalanced, tuning, 1000, 150, 120))
}

func TestRouteGraphConstruction(t *testing.T) {
	origin, target, candidates := transcon()
	midsize := &aircraft.Performance{AircraftID: "N1", Category: aircraft.CategoryMidsize}

	// duplicates of the endpoints must not create extra nodes
	withDupes := append([]*airport.Airport{origin, target}, candidates...)
	g := NewRouteGraph(origin, target, withDupes, midsize, departure, shared.ModeCost, DefaultTuning())

	assert.Equal(t, len(candidates)+2, g.NodeCount())
	assert.Empty(t, g.Edges(target.ICAO), "nothing leaves the target")
	for _, e := range g.Edges("KDEN") {
		assert.NotEqual(t, origin.ICAO, e.To, "nothing returns to the origin")
		assert.NotEqual(t, "KDEN", e.To)
	}

	direct, ok := g.Edge(origin.ICAO, target.ICAO)
	require.True(t, ok)
	assert.False(t, direct.Viable)

	t.Run("intermediate nodes depart after an estimated arrival plus ground time", func(t *testing.T) {
		e, ok := g.Edge("KDEN", "KLAX")
		require.True(t, ok)
		toDenver := midsize.LegTimeHours(airport.DistanceNM(origin, g.Node("KDEN")), 0)
		want := departure.Add(time.Duration(toDenver*float64(time.Hour)) + 45*time.Minute)
		assert.WithinDuration(t, want, e.DepartureUTC, time.Second)
	})
}

func TestShortestPathMatchesBruteForce(t *testing.T) {
	origin, target, candidates := transcon()
	// a turboprop cannot cross the continent in fewer than two hops
	turboprop := &aircraft.Performance{AircraftID: "N2", Category: aircraft.CategoryTurboprop}

	for _, mode := range []shared.OptimizationMode{shared.ModeCost, shared.ModeTime, shared.ModeBalanced} {
		t.Run(string(mode), func(t *testing.T) {
			g := NewRouteGraph(origin, target, candidates, turboprop, departure, mode, DefaultTuning())

			path := g.ShortestPath(origin.ICAO, target.ICAO)
			require.NotNil(t, path)
			assert.Equal(t, origin.ICAO, path[0])
			assert.Equal(t, target.ICAO, path[len(path)-1])

			got, ok := g.PathWeight(path)
			require.True(t, ok)

			best := bruteForceBest(g, origin.ICAO, target.ICAO, candidates)
			assert.InDelta(t, best, got, 1e-6)
		})
	}
}

func TestShortestPathUnreachable(t *testing.T) {
	origin, target, _ := transcon()
	midsize := &aircraft.Performance{AircraftID: "N1", Category: aircraft.CategoryMidsize}

	g := NewRouteGraph(origin, target, nil, midsize, departure, shared.ModeCost, DefaultTuning())

	assert.Nil(t, g.ShortestPath(origin.ICAO, target.ICAO))
	assert.Nil(t, g.ShortestPath(origin.ICAO, "ZZZZ"))
}

func TestPathWeightRejectsNonViableHops(t *testing.T) {
	origin, target, candidates := transcon()
	midsize := &aircraft.Performance{AircraftID: "N1", Category: aircraft.CategoryMidsize}
	g := NewRouteGraph(origin, target, candidates, midsize, departure, shared.ModeCost, DefaultTuning())

	_, ok := g.PathWeight([]string{"KTEB", "KLAX"})
	assert.False(t, ok)

	w, ok := g.PathWeight([]string{"KTEB", "KDEN", "KLAX"})
	assert.True(t, ok)
	assert.Greater(t, w, 0.0)
}

// equatorLine is four airports about 300nm apart; with a 350nm range only neighbours connect
func equatorLine() (origin, target *airport.Airport, candidates []*airport.Airport) {
	origin = fuelAirport("AAAA", 0, 0, 6.00, 100)
	target = fuelAirport("DDDD", 0, 15, 6.00, 100)
	candidates = []*airport.Airport{
		fuelAirport("BBBB", 0, 5, 6.00, 100),
		fuelAirport("CCCC", 0, 10, 6.00, 100),
	}
	return origin, target, candidates
}

func shortHop() *aircraft.Performance {
	rangeNM, speed := 350.0, 300.0
	return &aircraft.Performance{AircraftID: "N3", Category: aircraft.CategoryMidsize, RangeNM: &rangeNM, CruiseSpeedKts: &speed}
}

func TestScheduleAccumulatesGroundTime(t *testing.T) {
	origin, target, candidates := equatorLine()
	g := NewRouteGraph(origin, target, candidates, shortHop(), departure, shared.ModeCost, DefaultTuning())

	path := g.ShortestPath(origin.ICAO, target.ICAO)
	require.Equal(t, []string{"AAAA", "BBBB", "CCCC", "DDDD"}, path)

	hops, ok := g.Schedule(path)
	require.True(t, ok)
	require.Len(t, hops, 3)
	for i := 1; i < len(hops); i++ {
		assert.Equal(t, hops[i-1].ArrivalUTC.Add(45*time.Minute), hops[i].DepartureUTC)
	}
	// three one-hour hops and two ground times
	assert.WithinDuration(t, departure.Add(4*time.Hour+30*time.Minute), hops[2].ArrivalUTC, time.Minute)

	// the stored edge estimates CCCC from the direct flight and lands an hour earlier
	estimated, ok := g.Edge("CCCC", "DDDD")
	require.True(t, ok)
	assert.WithinDuration(t, departure.Add(3*time.Hour+45*time.Minute), estimated.ArrivalUTC, time.Minute)
}

func TestShortestPathChecksCurfewAtTheRealArrival(t *testing.T) {
	origin, target, candidates := equatorLine()
	restricted := *target
	// the real arrival is about 18:30Z, the estimate about 17:45Z
	restricted.Curfew = &airport.TimeWindow{From: "18:20", To: "18:40"}

	g := NewRouteGraph(origin, &restricted, candidates, shortHop(), departure, shared.ModeCost, DefaultTuning())

	estimated, ok := g.Edge("CCCC", "DDDD")
	require.True(t, ok)
	assert.True(t, estimated.Viable, "the estimated arrival misses the curfew")

	assert.Nil(t, g.ShortestPath(origin.ICAO, restricted.ICAO))
	_, ok = g.Schedule([]string{"AAAA", "BBBB", "CCCC", "DDDD"})
	assert.False(t, ok)
}

func TestShortestPathChecksOperatingHoursAtTheRealArrival(t *testing.T) {
	origin, _, candidates := equatorLine()
	stop := fuelAirport("DDDD", 0, 15, 6.00, 100)
	// DDDD is reached about 18:30Z, estimated from CCCC's guess about 17:45Z
	stop.OperatingHours = &airport.TimeWindow{From: "06:00", To: "18:00"}
	target := fuelAirport("EEEE", 0, 20, 6.00, 100)

	g := NewRouteGraph(origin, target, append(candidates, stop), shortHop(), departure, shared.ModeCost, DefaultTuning())

	estimated, ok := g.Edge("CCCC", "DDDD")
	require.True(t, ok)
	assert.True(t, estimated.Viable)

	assert.Nil(t, g.ShortestPath(origin.ICAO, target.ICAO))
}

// bruteForceBest enumerates every simple path through the candidates
func bruteForceBest(g *RouteGraph, origin, target string, candidates []*airport.Airport) float64 {
	best := math.Inf(1)
	used := make(map[string]bool)

	var walk func(path []string)
	walk = func(path []string) {
		withTarget := append(append([]string(nil), path...), target)
		if w, ok := g.PathWeight(withTarget); ok && w < best {
			best = w
		}
		for _, c := range candidates {
			if used[c.ICAO] {
				continue
			}
			used[c.ICAO] = true
			walk(append(append([]string(nil), path...), c.ICAO))
			used[c.ICAO] = false
		}
	}
	walk([]string{origin})
	return best
}
