package aircraft

import (
	"fmt"
	"math"
	"strings"

	"github.com/andrescamacho/aeroroute-go/internal/domain/shared"
)

// Category groups aircraft that share default performance figures
type Category string

const (
	CategoryTurboprop Category = "turboprop"
	CategoryLight     Category = "light"
	CategoryMidsize   Category = "midsize"
	CategorySuperMid  Category = "super-mid"
	CategoryHeavy     Category = "heavy"
	CategoryUltraLong Category = "ultra-long"
)

// reserveHours is the FAR 91 VFR fuel reserve applied when no explicit reserve is given
const reserveHours = 0.75

// minGroundSpeedKts keeps time and fuel finite under extreme headwinds
const minGroundSpeedKts = 50.0

// CategoryDefaults is the complete default performance row of a category
type CategoryDefaults struct {
	FuelBurnGPH        float64
	CruiseSpeedKts     float64
	MaxFuelCapacityGal float64
	MinRunwayFt        int
}

var categoryDefaults = map[Category]CategoryDefaults{
	CategoryTurboprop: {FuelBurnGPH: 75, CruiseSpeedKts: 290, MaxFuelCapacityGal: 400, MinRunwayFt: 3500},
	CategoryLight:     {FuelBurnGPH: 180, CruiseSpeedKts: 420, MaxFuelCapacityGal: 800, MinRunwayFt: 4000},
	CategoryMidsize:   {FuelBurnGPH: 230, CruiseSpeedKts: 450, MaxFuelCapacityGal: 1100, MinRunwayFt: 5000},
	CategorySuperMid:  {FuelBurnGPH: 260, CruiseSpeedKts: 470, MaxFuelCapacityGal: 2000, MinRunwayFt: 5500},
	CategoryHeavy:     {FuelBurnGPH: 330, CruiseSpeedKts: 480, MaxFuelCapacityGal: 3000, MinRunwayFt: 6000},
	CategoryUltraLong: {FuelBurnGPH: 450, CruiseSpeedKts: 490, MaxFuelCapacityGal: 6000, MinRunwayFt: 6000},
}

// ParseCategory parses a category name
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := categoryDefaults[c]; !ok {
		return "", shared.NewValidationError("category", fmt.Sprintf("unknown aircraft category %q", s))
	}
	return c, nil
}

// Defaults returns the default row for a category.
// Unknown categories fall back to midsize so lookups never fail.
func Defaults(c Category) CategoryDefaults {
	if d, ok := categoryDefaults[c]; ok {
		return d
	}
	return categoryDefaults[CategoryMidsize]
}

// Categories lists every known category
func Categories() []Category {
	return []Category{CategoryTurboprop, CategoryLight, CategoryMidsize, CategorySuperMid, CategoryHeavy, CategoryUltraLong}
}

// Performance is the aircraft performance record: a category plus optional per-tail overrides
type Performance struct {
	AircraftID string   `json:"aircraft_id"`
	TailNumber string   `json:"tail_number,omitempty"`
	Category   Category `json:"category"`

	FuelBurnGPH         *float64 `json:"fuel_burn_gph,omitempty"`
	RangeNM             *float64 `json:"range_nm,omitempty"`
	CruiseSpeedKts      *float64 `json:"cruise_speed_kts,omitempty"`
	MaxFuelCapacityGal  *float64 `json:"max_fuel_capacity_gal,omitempty"`
	MinRunwayOverride   *int     `json:"min_runway_ft,omitempty"`
	ReserveFuelOverride *float64 `json:"reserve_fuel_gal,omitempty"`
}

// RangeCheck is the outcome of CheckLegRange
type RangeCheck struct {
	CanFlyDirect     bool    `json:"can_fly_direct"`
	FuelRequiredGal  float64 `json:"fuel_required_gal"`
	FuelAvailableGal float64 `json:"fuel_available_gal"`
	DeficitGal       float64 `json:"deficit_gal"`
	MaxDirectNM      float64 `json:"max_direct_nm"`
}

func positive(v *float64) bool {
	return v != nil && *v > 0
}

// SpeedKts is the effective cruise speed
func (p *Performance) SpeedKts() float64 {
	if positive(p.CruiseSpeedKts) {
		return *p.CruiseSpeedKts
	}
	return Defaults(p.Category).CruiseSpeedKts
}

// FuelBurnRate is the effective fuel burn in gallons per hour
func (p *Performance) FuelBurnRate() float64 {
	if positive(p.FuelBurnGPH) {
		return *p.FuelBurnGPH
	}
	return Defaults(p.Category).FuelBurnGPH
}

// UsableFuelGal is the effective fuel capacity
func (p *Performance) UsableFuelGal() float64 {
	if positive(p.MaxFuelCapacityGal) {
		return *p.MaxFuelCapacityGal
	}
	return Defaults(p.Category).MaxFuelCapacityGal
}

// ReserveFuelGal is the explicit reserve, or 45 minutes of burn
func (p *Performance) ReserveFuelGal() float64 {
	if p.ReserveFuelOverride != nil && *p.ReserveFuelOverride >= 0 {
		return *p.ReserveFuelOverride
	}
	return p.FuelBurnRate() * reserveHours
}

// MinRunwayFt is the effective minimum runway length
func (p *Performance) MinRunwayFt() int {
	if p.MinRunwayOverride != nil && *p.MinRunwayOverride > 0 {
		return *p.MinRunwayOverride
	}
	return Defaults(p.Category).MinRunwayFt
}

// GroundSpeed applies a wind correction to cruise speed: headwind positive, tailwind negative
func (p *Performance) GroundSpeed(windKts float64) float64 {
	return math.Max(p.SpeedKts()-windKts, minGroundSpeedKts)
}

// LegTimeHours is the flight time for distanceNM at ground speed
func (p *Performance) LegTimeHours(distanceNM, windKts float64) float64 {
	return distanceNM / p.GroundSpeed(windKts)
}

// LegFuelGal is the fuel burned over distanceNM, reserve excluded
func (p *Performance) LegFuelGal(distanceNM, windKts float64) float64 {
	return p.LegTimeHours(distanceNM, windKts) * p.FuelBurnRate()
}

// MaxDirectNM is the theoretical unrefueled range at the given wind, keeping the reserve
func (p *Performance) MaxDirectNM(windKts float64) float64 {
	burnable := p.UsableFuelGal() - p.ReserveFuelGal()
	if burnable <= 0 {
		return 0
	}
	maxNM := burnable / p.FuelBurnRate() * p.GroundSpeed(windKts)
	if positive(p.RangeNM) && *p.RangeNM < maxNM {
		maxNM = *p.RangeNM
	}
	return maxNM
}

// CheckLegRange decides whether distanceNM can be flown without a fuel stop
func (p *Performance) CheckLegRange(distanceNM, windKts float64) RangeCheck {
	required := p.LegFuelGal(distanceNM, windKts) + p.ReserveFuelGal()
	available := p.UsableFuelGal()
	maxDirect := p.MaxDirectNM(windKts)

	canFly := required <= available
	// A published range limit is binding even when the tank would allow more
	if positive(p.RangeNM) && distanceNM > *p.RangeNM {
		canFly = false
	}

	return RangeCheck{
		CanFlyDirect:     canFly,
		FuelRequiredGal:  required,
		FuelAvailableGal: available,
		DeficitGal:       math.Max(0, required-available),
		MaxDirectNM:      maxDirect,
	}
}

// CanFlyDirect is shorthand for CheckLegRange(...).CanFlyDirect in still air
func (p *Performance) CanFlyDirect(distanceNM float64) bool {
	return p.CheckLegRange(distanceNM, 0).CanFlyDirect
}

// Validate checks that overrides are physically meaningful
func (p *Performance) Validate() error {
	if p.AircraftID == "" {
		return shared.NewValidationError("aircraft_id", "cannot be empty")
	}
	if _, err := ParseCategory(string(p.Category)); err != nil {
		return err
	}
	checks := []struct {
		field string
		value *float64
	}{
		{"fuel_burn_gph", p.FuelBurnGPH},
		{"range_nm", p.RangeNM},
		{"cruise_speed_kts", p.CruiseSpeedKts},
		{"max_fuel_capacity_gal", p.MaxFuelCapacityGal},
		{"reserve_fuel_gal", p.ReserveFuelOverride},
	}
	for _, c := range checks {
		if c.value != nil && *c.value < 0 {
			return shared.NewValidationError(c.field, "cannot be negative")
		}
	}
	return nil
}

func (p *Performance) String() string {
	return fmt.Sprintf("Aircraft(%s, %s, %.0fkts, %.0fgph, %.0fgal)",
		p.AircraftID, p.Category, p.SpeedKts(), p.FuelBurnRate(), p.UsableFuelGal())
}
