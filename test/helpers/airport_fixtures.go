package helpers

import (
	"github.com/andrescamacho/aeroroute-go/internal/domain/aircraft"
	"github.com/andrescamacho/aeroroute-go/internal/domain/airport"
)

// fixtureRows is a small real-world airport set.
// Midsize jets need one stop KTEB→KLAX (KDEN on cost, KMKC on time)
// and two stops KTEB→EGLL (CYQX and BIKF, graph fallback only).
var fixtureRows = []airport.Airport{
	{ICAO: "KTEB", Name: "Teterboro", City: "Teterboro", CountryPrefix: "K", Latitude: 40.8501, Longitude: -74.0608, ElevationFt: 9, LongestRunwayFt: 7000, HasFuel: true, FuelPriceUSDGal: 8.20, FBOFeeUSD: 450, CustomsAvailable: true, DeicingAvailable: true},
	{ICAO: "KLAX", Name: "Los Angeles Intl", City: "Los Angeles", CountryPrefix: "K", Latitude: 33.9425, Longitude: -118.4081, ElevationFt: 128, LongestRunwayFt: 12091, HasFuel: true, FuelPriceUSDGal: 7.90, FBOFeeUSD: 600, CustomsAvailable: true},
	{ICAO: "KMKC", Name: "Charles B. Wheeler Downtown", City: "Kansas City", CountryPrefix: "K", Latitude: 39.1232, Longitude: -94.5928, ElevationFt: 759, LongestRunwayFt: 6827, HasFuel: true, FuelTypes: []string{"JET-A", "100LL"}, FuelPriceUSDGal: 6.10, FBOFeeUSD: 150},
	{ICAO: "KDEN", Name: "Denver Intl", City: "Denver", CountryPrefix: "K", Latitude: 39.8617, Longitude: -104.6731, ElevationFt: 5434, LongestRunwayFt: 16000, HasFuel: true, FuelPriceUSDGal: 6.80, FBOFeeUSD: 350, DeicingAvailable: true},
	{ICAO: "KICT", Name: "Wichita Eisenhower", City: "Wichita", CountryPrefix: "K", Latitude: 37.6499, Longitude: -97.4331, ElevationFt: 1333, LongestRunwayFt: 10301, HasFuel: true, FuelPriceUSDGal: 5.95, FBOFeeUSD: 200},
	{ICAO: "KOMA", Name: "Eppley Airfield", City: "Omaha", CountryPrefix: "K", Latitude: 41.3032, Longitude: -95.8941, ElevationFt: 984, LongestRunwayFt: 9502, HasFuel: true, FuelPriceUSDGal: 6.40, FBOFeeUSD: 250},
	{ICAO: "KGLD", Name: "Goodland Municipal", City: "Goodland", CountryPrefix: "K", Latitude: 39.3707, Longitude: -101.6990, ElevationFt: 3656, LongestRunwayFt: 5499, HasFuel: false},
	{ICAO: "KHYS", Name: "Hays Regional", City: "Hays", CountryPrefix: "K", Latitude: 38.8422, Longitude: -99.2732, ElevationFt: 1999, LongestRunwayFt: 3500, HasFuel: true, FuelPriceUSDGal: 5.10, FBOFeeUSD: 50},
	{ICAO: "CYYZ", Name: "Toronto Pearson", City: "Toronto", CountryPrefix: "CY", Latitude: 43.6777, Longitude: -79.6248, ElevationFt: 569, LongestRunwayFt: 11120, HasFuel: true, FuelPriceUSDGal: 7.10, FBOFeeUSD: 500, CustomsAvailable: true, DeicingAvailable: true},
	{ICAO: "CYQX", Name: "Gander Intl", City: "Gander", CountryPrefix: "CY", Latitude: 48.9369, Longitude: -54.5681, ElevationFt: 496, LongestRunwayFt: 10200, HasFuel: true, FuelPriceUSDGal: 7.60, FBOFeeUSD: 400, CustomsAvailable: true, DeicingAvailable: true},
	{ICAO: "BIKF", Name: "Keflavik", City: "Reykjavik", CountryPrefix: "BI", Latitude: 63.9850, Longitude: -22.6056, ElevationFt: 171, LongestRunwayFt: 10020, HasFuel: true, FuelPriceUSDGal: 8.90, FBOFeeUSD: 650, CustomsAvailable: true, DeicingAvailable: true},
	{ICAO: "EGLL", Name: "London Heathrow", City: "London", CountryPrefix: "EG", Latitude: 51.4700, Longitude: -0.4543, ElevationFt: 83, LongestRunwayFt: 12799, HasFuel: true, FuelPriceUSDGal: 9.40, FBOFeeUSD: 900, CustomsAvailable: true, SlotRequired: true, Curfew: &airport.TimeWindow{From: "23:30", To: "04:30"}},
}

// FixtureAirports returns fresh copies of the fixture set
func FixtureAirports() []*airport.Airport {
	out := make([]*airport.Airport, 0, len(fixtureRows))
	for i := range fixtureRows {
		a := fixtureRows[i]
		if a.FuelTypes != nil {
			a.FuelTypes = append([]string(nil), a.FuelTypes...)
		}
		if a.Curfew != nil {
			w := *a.Curfew
			a.Curfew = &w
		}
		out = append(out, &a)
	}
	return out
}

// FixtureAirport returns a copy of one fixture airport, nil if unknown
func FixtureAirport(icao string) *airport.Airport {
	for _, a := range FixtureAirports() {
		if a.ICAO == icao {
			return a
		}
	}
	return nil
}

// FixtureAirportsExcept returns the fixture set without the named airports
func FixtureAirportsExcept(icaos ...string) []*airport.Airport {
	skip := make(map[string]bool, len(icaos))
	for _, icao := range icaos {
		skip[icao] = true
	}
	var out []*airport.Airport
	for _, a := range FixtureAirports() {
		if !skip[a.ICAO] {
			out = append(out, a)
		}
	}
	return out
}

// MidsizeAircraft returns a midsize jet with no overrides
func MidsizeAircraft(id string) *aircraft.Performance {
	return &aircraft.Performance{AircraftID: id, TailNumber: "N" + id, Category: aircraft.CategoryMidsize}
}

// AircraftOfCategory returns an aircraft of the given category with no overrides
func AircraftOfCategory(id string, category aircraft.Category) *aircraft.Performance {
	return &aircraft.Performance{AircraftID: id, Category: category}
}

// Float64Ptr returns a pointer to v
func Float64Ptr(v float64) *float64 {
	return &v
}

// IntPtr returns a pointer to v
func IntPtr(v int) *int {
	return &v
}
