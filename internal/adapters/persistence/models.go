package persistence

import "time"

// AirportModel represents the airports table
type AirportModel struct {
	ICAO             string    `gorm:"column:icao;primaryKey;size:4"`
	Name             string    `gorm:"column:name;not null"`
	City             string    `gorm:"column:city"`
	CountryPrefix    string    `gorm:"column:country_prefix;size:2"`
	Latitude         float64   `gorm:"column:latitude;not null;index:idx_airports_lat_lon"`
	Longitude        float64   `gorm:"column:longitude;not null;index:idx_airports_lat_lon"`
	ElevationFt      int       `gorm:"column:elevation_ft"`
	LongestRunwayFt  int       `gorm:"column:longest_runway_ft;not null;default:0"`
	HasFuel          bool      `gorm:"column:has_fuel;not null;default:false"`
	FuelTypes        string    `gorm:"column:fuel_types;type:text"` // JSON array as text
	FuelPriceUSDGal  float64   `gorm:"column:fuel_price_usd_gal"`
	FBOFeeUSD        float64   `gorm:"column:fbo_fee_usd"`
	OperatingFrom    string    `gorm:"column:operating_from;size:5"`
	OperatingTo      string    `gorm:"column:operating_to;size:5"`
	CurfewFrom       string    `gorm:"column:curfew_from;size:5"`
	CurfewTo         string    `gorm:"column:curfew_to;size:5"`
	CustomsAvailable bool      `gorm:"column:customs_available;not null;default:false"`
	DeicingAvailable bool      `gorm:"column:deicing_available;not null;default:false"`
	SlotRequired     bool      `gorm:"column:slot_required;not null;default:false"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (AirportModel) TableName() string {
	return "airports"
}

// AircraftModel represents the aircraft table; nil columns fall back to category defaults
type AircraftModel struct {
	AircraftID         string    `gorm:"column:aircraft_id;primaryKey"`
	TailNumber         string    `gorm:"column:tail_number"`
	Category           string    `gorm:"column:category;not null"`
	FuelBurnGPH        *float64  `gorm:"column:fuel_burn_gph"`
	RangeNM            *float64  `gorm:"column:range_nm"`
	CruiseSpeedKts     *float64  `gorm:"column:cruise_speed_kts"`
	MaxFuelCapacityGal *float64  `gorm:"column:max_fuel_capacity_gal"`
	MinRunwayFt        *int      `gorm:"column:min_runway_ft"`
	ReserveFuelGal     *float64  `gorm:"column:reserve_fuel_gal"`
	UpdatedAt          time.Time `gorm:"column:updated_at"`
}

func (AircraftModel) TableName() string {
	return "aircraft"
}
