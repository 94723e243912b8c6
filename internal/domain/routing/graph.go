package routing

import (
	"container/heap"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/andrescamacho/aeroroute-go/internal/domain/aircraft"
	"github.com/andrescamacho/aeroroute-go/internal/domain/airport"
	"github.com/andrescamacho/aeroroute-go/internal/domain/shared"
)

// GraphEdge is one directed transition between two airports for a given aircraft and departure
type GraphEdge struct {
	From          string    `json:"from"`
	To            string    `json:"to"`
	DistanceNM    float64   `json:"distance_nm"`
	FlightTimeMin float64   `json:"flight_time_min"`
	FuelBurnGal   float64   `json:"fuel_burn_gal"`
	FuelCostUSD   float64   `json:"fuel_cost_usd"`
	FBOFeeUSD     float64   `json:"fbo_fee_usd"`
	DepartureUTC  time.Time `json:"departure_utc"`
	ArrivalUTC    time.Time `json:"arrival_utc"`
	Viable        bool      `json:"viable"`
	Reason        string    `json:"reason,omitempty"`
	Weight        float64   `json:"weight"`
}

// EdgeOptions adjusts edge construction
type EdgeOptions struct {
	// FinalDestination skips the fuel type and operating hours checks:
	// no uplift is planned at the end of a requested leg
	FinalDestination bool
}

// BuildEdge computes distance, time, fuel and cost for from→to and decides viability
func BuildEdge(from, to *airport.Airport, perf *aircraft.Performance, departure time.Time,
	mode shared.OptimizationMode, tuning Tuning, opts EdgeOptions) GraphEdge {

	dist := airport.DistanceNM(from, to)
	hours := perf.LegTimeHours(dist, 0)
	fuel := perf.LegFuelGal(dist, 0)
	arrival := departure.Add(time.Duration(hours * float64(time.Hour)))

	edge := GraphEdge{
		From:          from.ICAO,
		To:            to.ICAO,
		DistanceNM:    dist,
		FlightTimeMin: hours * 60,
		FuelBurnGal:   fuel,
		FuelCostUSD:   fuel * tuning.fuelPriceAt(from),
		FBOFeeUSD:     to.FBOFeeUSD,
		DepartureUTC:  departure,
		ArrivalUTC:    arrival,
	}
	edge.Weight = EdgeWeight(mode, tuning, edge.FuelCostUSD, edge.FBOFeeUSD, edge.FlightTimeMin)

	var reasons []string
	if to.LongestRunwayFt < perf.MinRunwayFt() {
		reasons = append(reasons, fmt.Sprintf("runway %dft at %s below minimum %dft", to.LongestRunwayFt, to.ICAO, perf.MinRunwayFt()))
	}
	if !opts.FinalDestination && !to.HasFuelType(tuning.RequiredFuelType) {
		reasons = append(reasons, fmt.Sprintf("no %s at %s", tuning.RequiredFuelType, to.ICAO))
	}
	if check := perf.CheckLegRange(dist, 0); !check.CanFlyDirect {
		reasons = append(reasons, fmt.Sprintf("%.0fnm exceeds max direct range %.0fnm", dist, check.MaxDirectNM))
	}
	if to.CurfewAt(arrival) {
		reasons = append(reasons, fmt.Sprintf("arrival %s inside %s curfew %s", arrival.Format("15:04"), to.ICAO, to.Curfew))
	}
	if !opts.FinalDestination && !to.OpenAt(arrival) {
		reasons = append(reasons, fmt.Sprintf("arrival %s outside %s operating hours %s", arrival.Format("15:04"), to.ICAO, to.OperatingHours))
	}

	edge.Viable = len(reasons) == 0
	edge.Reason = strings.Join(reasons, "; ")
	return edge
}

// EdgeWeight is the mode-dependent edge weight
func EdgeWeight(mode shared.OptimizationMode, tuning Tuning, fuelCostUSD, fboFeeUSD, flightMinutes float64) float64 {
	switch mode {
	case shared.ModeTime:
		return flightMinutes
	case shared.ModeBalanced:
		return tuning.BalancedCostWeight*(fuelCostUSD+fboFeeUSD) + tuning.BalancedHourWeight*(flightMinutes/60)
	default:
		return fuelCostUSD + fboFeeUSD
	}
}

// RouteGraph is a complete directed graph over a node set, built for one routing call and discarded
type RouteGraph struct {
	nodes map[string]*airport.Airport
	order []string
	edges map[string][]GraphEdge

	origin    string
	target    string
	departure time.Time
	perf      *aircraft.Performance
	mode      shared.OptimizationMode
	tuning    Tuning
}

// NewRouteGraph builds every ordered pair between origin, candidates and target.
// The stored edges use an estimated node departure (departure + direct flight time from
// origin + ground time). ShortestPath and Schedule rebuild each hop at the time the
// path actually reaches it, so curfews and operating hours see real arrivals.
func NewRouteGraph(origin, target *airport.Airport, candidates []*airport.Airport, perf *aircraft.Performance,
	departure time.Time, mode shared.OptimizationMode, tuning Tuning) *RouteGraph {

	g := &RouteGraph{
		nodes:     make(map[string]*airport.Airport),
		edges:     make(map[string][]GraphEdge),
		origin:    origin.ICAO,
		target:    target.ICAO,
		departure: departure,
		perf:      perf,
		mode:      mode,
		tuning:    tuning,
	}
	g.addNode(origin)
	for _, c := range candidates {
		g.addNode(c)
	}
	g.addNode(target)
	sort.Strings(g.order)

	for _, u := range g.order {
		if u == target.ICAO {
			continue
		}
		from := g.nodes[u]
		nodeDeparture := departure
		if u != origin.ICAO {
			hours := perf.LegTimeHours(airport.DistanceNM(origin, from), 0)
			nodeDeparture = departure.Add(time.Duration(hours*float64(time.Hour)) + tuning.GroundTime)
		}
		for _, v := range g.order {
			if v == u || v == origin.ICAO {
				continue
			}
			opts := EdgeOptions{FinalDestination: v == target.ICAO}
			g.edges[u] = append(g.edges[u], BuildEdge(from, g.nodes[v], perf, nodeDeparture, mode, tuning, opts))
		}
	}
	return g
}

func (g *RouteGraph) addNode(a *airport.Airport) {
	if a == nil {
		return
	}
	if _, exists := g.nodes[a.ICAO]; exists {
		return
	}
	g.nodes[a.ICAO] = a
	g.order = append(g.order, a.ICAO)
}

// Node returns the airport for icao, nil if it is not in the graph
func (g *RouteGraph) Node(icao string) *airport.Airport {
	return g.nodes[icao]
}

// NodeCount is the number of distinct airports in the graph
func (g *RouteGraph) NodeCount() int {
	return len(g.order)
}

// edgeAt rebuilds from→to for a departure at t
func (g *RouteGraph) edgeAt(from, to string, t time.Time) GraphEdge {
	opts := EdgeOptions{FinalDestination: to == g.target}
	return BuildEdge(g.nodes[from], g.nodes[to], g.perf, t, g.mode, g.tuning, opts)
}

// Edges returns all outgoing edges of icao at the estimated departure, viable or not
func (g *RouteGraph) Edges(icao string) []GraphEdge {
	return g.edges[icao]
}

// Edge returns the edge from→to
func (g *RouteGraph) Edge(from, to string) (GraphEdge, bool) {
	for _, e := range g.edges[from] {
		if e.To == to {
			return e, true
		}
	}
	return GraphEdge{}, false
}

// Schedule flies path from the graph departure, each hop leaving one ground time after the
// previous arrival. ok is false if a hop is not a graph edge or is not viable at its real time.
func (g *RouteGraph) Schedule(path []string) ([]GraphEdge, bool) {
	if len(path) == 0 || path[0] != g.origin {
		return nil, false
	}
	hops := make([]GraphEdge, 0, len(path)-1)
	t := g.departure
	for i := 0; i < len(path)-1; i++ {
		if _, found := g.Edge(path[i], path[i+1]); !found {
			return nil, false
		}
		e := g.edgeAt(path[i], path[i+1], t)
		if !e.Viable {
			return nil, false
		}
		hops = append(hops, e)
		t = e.ArrivalUTC.Add(g.tuning.GroundTime)
	}
	return hops, true
}

// PathWeight sums edge weights along the scheduled path; ok is false if any hop is missing or not viable
func (g *RouteGraph) PathWeight(path []string) (float64, bool) {
	hops, ok := g.Schedule(path)
	if !ok {
		return 0, false
	}
	total := 0.0
	for _, e := range hops {
		total += e.Weight
	}
	return total, true
}

type queueItem struct {
	icao string
	cost float64
}

// priorityQueue is a binary min-heap on accumulated cost, ICAO breaking ties
type priorityQueue []queueItem

func (pq priorityQueue) Len() int { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].cost == pq[j].cost {
		return pq[i].icao < pq[j].icao
	}
	return pq[i].cost < pq[j].cost
}
func (pq priorityQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x any)   { *pq = append(*pq, x.(queueItem)) }
func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// ShortestPath runs Dijkstra over viable edges and returns the ICAO sequence origin..target,
// or nil when target is unreachable. Stale heap entries are skipped on pop.
// Each node carries the time the best path reaches it; its outgoing hops are rebuilt
// to depart one ground time later.
func (g *RouteGraph) ShortestPath(origin, target string) []string {
	if g.nodes[origin] == nil || g.nodes[target] == nil {
		return nil
	}

	dist := make(map[string]float64, len(g.order))
	for _, icao := range g.order {
		dist[icao] = math.Inf(1)
	}
	prev := make(map[string]string, len(g.order))
	ready := map[string]time.Time{origin: g.departure}
	dist[origin] = 0

	pq := &priorityQueue{{icao: origin, cost: 0}}
	for pq.Len() > 0 {
		item := heap.Pop(pq).(queueItem)
		if item.cost > dist[item.icao] {
			continue
		}
		if item.icao == target {
			break
		}
		for _, estimated := range g.edges[item.icao] {
			e := g.edgeAt(item.icao, estimated.To, ready[item.icao])
			if !e.Viable {
				continue
			}
			next := item.cost + e.Weight
			if next < dist[e.To] {
				dist[e.To] = next
				prev[e.To] = item.icao
				ready[e.To] = e.ArrivalUTC.Add(g.tuning.GroundTime)
				heap.Push(pq, queueItem{icao: e.To, cost: next})
			}
		}
	}

	if math.IsInf(dist[target], 1) {
		return nil
	}

	path := []string{target}
	for at := target; at != origin; {
		at = prev[at]
		path = append(path, at)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	if path[0] != origin {
		return nil
	}
	return path
}
