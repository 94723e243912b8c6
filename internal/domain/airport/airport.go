package airport

import (
	"fmt"
	"strings"
	"time"

	"github.com/andrescamacho/aeroroute-go/internal/domain/shared"
)

// FuelTypeJetA is the fuel grade every supported aircraft category burns
const FuelTypeJetA = "JET-A"

var knownFuelTypes = []string{FuelTypeJetA, "JET-A1", "JET-B", "100LL", "SAF"}

// IsKnownFuelType reports whether the grade is one the reference data uses
func IsKnownFuelType(fuelType string) bool {
	for _, ft := range knownFuelTypes {
		if strings.EqualFold(ft, strings.TrimSpace(fuelType)) {
			return true
		}
	}
	return false
}

// Airport is immutable reference data for one aerodrome, keyed by ICAO code
type Airport struct {
	ICAO             string      `json:"icao"`
	Name             string      `json:"name"`
	City             string      `json:"city"`
	CountryPrefix    string      `json:"country_prefix"`
	Latitude         float64     `json:"latitude"`
	Longitude        float64     `json:"longitude"`
	ElevationFt      int         `json:"elevation_ft"`
	LongestRunwayFt  int         `json:"longest_runway_ft"`
	HasFuel          bool        `json:"has_fuel"`
	FuelTypes        []string    `json:"fuel_types,omitempty"`
	FuelPriceUSDGal  float64     `json:"fuel_price_usd_gal"`
	FBOFeeUSD        float64     `json:"fbo_fee_usd"`
	OperatingHours   *TimeWindow `json:"operating_hours,omitempty"`
	Curfew           *TimeWindow `json:"curfew,omitempty"`
	CustomsAvailable bool        `json:"customs_available"`
	DeicingAvailable bool        `json:"deicing_available"`
	SlotRequired     bool        `json:"slot_required"`
}

// NormalizeICAO trims and upper-cases an airport code
func NormalizeICAO(icao string) string {
	return strings.ToUpper(strings.TrimSpace(icao))
}

// Validate checks the invariants reference data must satisfy before it is stored
func (a *Airport) Validate() error {
	if len(a.ICAO) < 3 || len(a.ICAO) > 4 {
		return shared.NewValidationError("icao", fmt.Sprintf("invalid code %q", a.ICAO))
	}
	if a.Latitude < -90 || a.Latitude > 90 {
		return shared.NewValidationError("latitude", fmt.Sprintf("%.4f out of range", a.Latitude))
	}
	if a.Longitude < -180 || a.Longitude > 180 {
		return shared.NewValidationError("longitude", fmt.Sprintf("%.4f out of range", a.Longitude))
	}
	if a.LongestRunwayFt < 0 {
		return shared.NewValidationError("longest_runway_ft", "cannot be negative")
	}
	for _, w := range []*TimeWindow{a.OperatingHours, a.Curfew} {
		if w == nil {
			continue
		}
		if err := w.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// HasFuelType reports whether fuel of the given grade can be uplifted here
func (a *Airport) HasFuelType(fuelType string) bool {
	if !a.HasFuel {
		return false
	}
	// An airport that only flags fuel availability is assumed to carry jet fuel
	if len(a.FuelTypes) == 0 {
		return fuelType == FuelTypeJetA
	}
	for _, ft := range a.FuelTypes {
		if strings.EqualFold(ft, fuelType) {
			return true
		}
	}
	return false
}

// Coordinates returns the airport position
func (a *Airport) Coordinates() LatLon {
	return LatLon{Lat: a.Latitude, Lon: a.Longitude}
}

// CurfewAt reports whether an arrival at t falls inside the curfew window
func (a *Airport) CurfewAt(t time.Time) bool {
	return InCurfew(t, a.Curfew)
}

// OpenAt reports whether t falls inside the operating hours; no hours means always open
func (a *Airport) OpenAt(t time.Time) bool {
	if a.OperatingHours.IsEmpty() {
		return true
	}
	return a.OperatingHours.Contains(t)
}

func (a *Airport) String() string {
	return fmt.Sprintf("Airport(%s)", a.ICAO)
}
