package routing

import (
	"time"

	"github.com/andrescamacho/aeroroute-go/internal/domain/airport"
)

// Tuning holds the empirical routing parameters. The defaults are load-bearing:
// plans computed with different values are not comparable.
type Tuning struct {
	// Detour penalty in cost mode, USD per nautical mile
	DetourCostPerNM float64

	// balanced weight = BalancedCostWeight*(fuel+FBO) + BalancedHourWeight*hours
	BalancedCostWeight float64
	BalancedHourWeight float64

	// Bound on the recursive fuel stop search; zero or negative takes the default
	MaxDepth int

	// DirectOnly forbids fuel stops: any leg beyond direct range fails with MAX_DEPTH_EXCEEDED
	DirectOnly bool

	// Candidate box radius as a fraction of the leg's great-circle distance
	NarrowRadiusFactor float64
	WideRadiusFactor   float64

	// Turnaround at a fuel stop
	GroundTime time.Duration

	// Price used when an airport publishes none
	DefaultFuelPriceUSDGal float64

	// Fuel grade a stop must sell
	RequiredFuelType string
}

// DefaultTuning returns the reference parameters
func DefaultTuning() Tuning {
	return Tuning{
		DetourCostPerNM:        8,
		BalancedCostWeight:     0.5,
		BalancedHourWeight:     30,
		MaxDepth:               4,
		NarrowRadiusFactor:     0.6,
		WideRadiusFactor:       0.8,
		GroundTime:             45 * time.Minute,
		DefaultFuelPriceUSDGal: 7.50,
		RequiredFuelType:       airport.FuelTypeJetA,
	}
}

// withDefaults fills zero fields from DefaultTuning
func (t Tuning) withDefaults() Tuning {
	d := DefaultTuning()
	if t.DetourCostPerNM == 0 {
		t.DetourCostPerNM = d.DetourCostPerNM
	}
	if t.BalancedCostWeight == 0 {
		t.BalancedCostWeight = d.BalancedCostWeight
	}
	if t.BalancedHourWeight == 0 {
		t.BalancedHourWeight = d.BalancedHourWeight
	}
	if t.NarrowRadiusFactor == 0 {
		t.NarrowRadiusFactor = d.NarrowRadiusFactor
	}
	if t.WideRadiusFactor == 0 {
		t.WideRadiusFactor = d.WideRadiusFactor
	}
	if t.GroundTime == 0 {
		t.GroundTime = d.GroundTime
	}
	if t.DefaultFuelPriceUSDGal == 0 {
		t.DefaultFuelPriceUSDGal = d.DefaultFuelPriceUSDGal
	}
	if t.RequiredFuelType == "" {
		t.RequiredFuelType = d.RequiredFuelType
	}
	switch {
	case t.DirectOnly:
		t.MaxDepth = 0
	case t.MaxDepth <= 0:
		t.MaxDepth = d.MaxDepth
	}
	return t
}

// fuelPriceAt returns the published price at a, or the default
func (t Tuning) fuelPriceAt(a *airport.Airport) float64 {
	if a.FuelPriceUSDGal > 0 {
		return a.FuelPriceUSDGal
	}
	return t.DefaultFuelPriceUSDGal
}
