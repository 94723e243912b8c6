package routing

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// BuildCostBreakdown aggregates routing cost. The average fuel price is weighted by uplift
// across stops, or by burn across leg origins when there are no stops; it is the value a
// pricing collaborator uses as its fuel price override.
func BuildCostBreakdown(legs []RouteLeg, stops []RefuelStop, tuning Tuning) CostBreakdown {
	var b CostBreakdown

	for _, leg := range legs {
		b.FuelCostUSD += leg.FuelCostUSD
	}
	for _, stop := range stops {
		b.FBOFeesUSD += stop.FBOFeeUSD
		b.DetourCostUSD += tuning.DetourCostPerNM * stop.DetourNM
	}

	var prices, weights []float64
	if len(stops) > 0 {
		for _, stop := range stops {
			prices = append(prices, stop.FuelPriceUSDGal)
			weights = append(weights, stop.FuelUpliftGal)
		}
	} else {
		for _, leg := range legs {
			if leg.FuelBurnGal <= 0 {
				continue
			}
			prices = append(prices, leg.FuelCostUSD/leg.FuelBurnGal)
			weights = append(weights, leg.FuelBurnGal)
		}
	}
	if len(prices) > 0 && floats.Sum(weights) > 0 {
		b.AvgFuelPriceUSDGal = round2(stat.Mean(prices, weights))
	}

	b.FuelCostUSD = round2(b.FuelCostUSD)
	b.FBOFeesUSD = round2(b.FBOFeesUSD)
	b.DetourCostUSD = round2(b.DetourCostUSD)
	b.TotalRoutingCostUSD = round2(b.FuelCostUSD + b.FBOFeesUSD + b.DetourCostUSD)
	return b
}
