package config

import (
	"time"

	"github.com/andrescamacho/aeroroute-go/internal/domain/routing"
)

// RoutingConfig holds the fuel stop search tunables.
// Plans are only comparable when computed with the same values.
type RoutingConfig struct {
	// Detour penalty in cost mode, USD per nautical mile
	DetourCostPerNM float64 `mapstructure:"detour_cost_per_nm" validate:"gte=0"`

	// balanced = cost_weight*(fuel+FBO) + hour_weight*hours
	BalancedCostWeight float64 `mapstructure:"balanced_cost_weight" validate:"gte=0"`
	BalancedHourWeight float64 `mapstructure:"balanced_hour_weight" validate:"gte=0"`

	// Recursion bound of the fuel stop search; 0 takes the default
	MaxDepth int `mapstructure:"max_depth" validate:"min=0,max=10"`

	// Plan direct legs only, never inserting a fuel stop
	DirectOnly bool `mapstructure:"direct_only"`

	// Candidate box radius as a fraction of the leg distance
	NarrowRadiusFactor float64 `mapstructure:"narrow_radius_factor" validate:"gt=0"`
	WideRadiusFactor   float64 `mapstructure:"wide_radius_factor" validate:"gtfield=NarrowRadiusFactor"`

	// Turnaround at a fuel stop
	GroundTime time.Duration `mapstructure:"ground_time"`

	// Price used when an airport publishes none
	DefaultFuelPriceUSDGal float64 `mapstructure:"default_fuel_price_usd_gal" validate:"gt=0"`

	// Fuel grade a stop must sell
	RequiredFuelType string `mapstructure:"required_fuel_type" validate:"required,fuelgrade"`
}

// Tuning converts the config into optimizer parameters
func (c RoutingConfig) Tuning() routing.Tuning {
	return routing.Tuning{
		DetourCostPerNM:        c.DetourCostPerNM,
		BalancedCostWeight:     c.BalancedCostWeight,
		BalancedHourWeight:     c.BalancedHourWeight,
		MaxDepth:               c.MaxDepth,
		DirectOnly:             c.DirectOnly,
		NarrowRadiusFactor:     c.NarrowRadiusFactor,
		WideRadiusFactor:       c.WideRadiusFactor,
		GroundTime:             c.GroundTime,
		DefaultFuelPriceUSDGal: c.DefaultFuelPriceUSDGal,
		RequiredFuelType:       c.RequiredFuelType,
	}
}
