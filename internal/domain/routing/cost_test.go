package routing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildCostBreakdownWithStops(t *testing.T) {
	legs := []RouteLeg{
		{From: "KTEB", To: "KDEN", FuelBurnGal: 700, FuelCostUSD: 5740},
		{From: "KDEN", To: "KLAX", FuelBurnGal: 400, FuelCostUSD: 2720},
	}
	stops := []RefuelStop{
		{ICAO: "KDEN", DetourNM: 10, FuelPriceUSDGal: 6.80, FuelUpliftGal: 300, FBOFeeUSD: 350},
		{ICAO: "KMKC", DetourNM: 2.5, FuelPriceUSDGal: 6.00, FuelUpliftGal: 100, FBOFeeUSD: 150},
	}

	b := BuildCostBreakdown(legs, stops, DefaultTuning())

	assert.Equal(t, 8460.0, b.FuelCostUSD)
	assert.Equal(t, 500.0, b.FBOFeesUSD)
	assert.Equal(t, 100.0, b.DetourCostUSD)
	// (6.80*300 + 6.00*100) / 400
	assert.Equal(t, 6.6, b.AvgFuelPriceUSDGal)
	assert.Equal(t, 9060.0, b.TotalRoutingCostUSD)
}

func TestBuildCostBreakdownDirect(t *testing.T) {
	legs := []RouteLeg{
		{From: "KTEB", To: "KDEN", FuelBurnGal: 300, FuelCostUSD: 2400},
		{From: "KDEN", To: "KTEB", FuelBurnGal: 100, FuelCostUSD: 700},
	}

	b := BuildCostBreakdown(legs, nil, DefaultTuning())

	assert.Equal(t, 3100.0, b.FuelCostUSD)
	assert.Zero(t, b.FBOFeesUSD)
	assert.Zero(t, b.DetourCostUSD)
	// burn-weighted: (8*300 + 7*100) / 400
	assert.Equal(t, 7.75, b.AvgFuelPriceUSDGal)
	assert.Equal(t, 3100.0, b.TotalRoutingCostUSD)
}

func TestBuildCostBreakdownRounds(t *testing.T) {
	legs := []RouteLeg{{From: "KTEB", To: "KBOS", FuelBurnGal: 3, FuelCostUSD: 24.6049}}

	b := BuildCostBreakdown(legs, nil, DefaultTuning())

	assert.Equal(t, 24.6, b.FuelCostUSD)
	assert.Equal(t, 8.2, b.AvgFuelPriceUSDGal)
}

func TestBuildCostBreakdownEmpty(t *testing.T) {
	b := BuildCostBreakdown(nil, nil, DefaultTuning())
	assert.Equal(t, CostBreakdown{}, b)
}

func TestTuningWithDefaults(t *testing.T) {
	t.Run("zero value takes every default", func(t *testing.T) {
		assert.Equal(t, DefaultTuning(), Tuning{}.withDefaults())
		assert.Equal(t, 4, Tuning{MaxDepth: -1}.withDefaults().MaxDepth)
	})

	t.Run("direct only pins the depth to zero", func(t *testing.T) {
		got := Tuning{DirectOnly: true, MaxDepth: 3}.withDefaults()
		assert.Equal(t, 0, got.MaxDepth)
		assert.True(t, got.DirectOnly)
	})

	t.Run("explicit values survive", func(t *testing.T) {
		got := Tuning{DetourCostPerNM: 12, GroundTime: time.Hour, MaxDepth: 2}.withDefaults()
		assert.Equal(t, 12.0, got.DetourCostPerNM)
		assert.Equal(t, time.Hour, got.GroundTime)
		assert.Equal(t, 2, got.MaxDepth)
		assert.Equal(t, 0.6, got.NarrowRadiusFactor)
	})
}

func TestTradeOffNote(t *testing.T) {
	note := TradeOffNote("time", "cost", 412.4, -38.2)
	assert.Equal(t, "time-optimized alternative: +$412, -38 min vs cost plan", note)

	note = TradeOffNote("cost", "time", -120, 15)
	assert.Equal(t, "cost-optimized alternative: -$120, +15 min vs time plan", note)
}

func TestTouchedICAOsAndContinuity(t *testing.T) {
	p := &Plan{Legs: []RouteLeg{
		{From: "KTEB", To: "KDEN"},
		{From: "KDEN", To: "KLAX"},
		{From: "KLAX", To: "KTEB"},
	}}

	assert.Equal(t, []string{"KTEB", "KDEN", "KLAX"}, p.TouchedICAOs())
	assert.NoError(t, validateContinuity(p.Legs))
	assert.Error(t, validateContinuity([]RouteLeg{{From: "KTEB", To: "KDEN"}, {From: "KMKC", To: "KLAX"}}))
}

func TestIsInternational(t *testing.T) {
	country := map[string]string{"KTEB": "K", "KDEN": "K", "CYYZ": "CY"}
	countryOf := func(icao string) string { return country[icao] }

	assert.False(t, IsInternational([]RouteLeg{{From: "KTEB", To: "KDEN"}}, countryOf))
	assert.True(t, IsInternational([]RouteLeg{{From: "KTEB", To: "KDEN"}, {From: "KDEN", To: "CYYZ"}}, countryOf))
}

func TestLegRequestDepartureTime(t *testing.T) {
	got, err := LegRequest{FromICAO: "KTEB", ToICAO: "KLAX", Date: "2026-03-14", Time: "14:05"}.DepartureTime()
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 14, 14, 5, 0, 0, time.UTC), got)

	_, err = LegRequest{Date: "14/03/2026", Time: "14:05"}.DepartureTime()
	assert.Error(t, err)
}
