package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/aeroroute-go/internal/domain/airport"
)

// GormAirportRepository implements AirportRepository using GORM
type GormAirportRepository struct {
	db *gorm.DB
}

// NewGormAirportRepository creates a new GORM airport repository
func NewGormAirportRepository(db *gorm.DB) *GormAirportRepository {
	return &GormAirportRepository{db: db}
}

// FindByICAO retrieves an airport by ICAO code, nil when it does not exist
func (r *GormAirportRepository) FindByICAO(ctx context.Context, icao string) (*airport.Airport, error) {
	var model AirportModel
	result := r.db.WithContext(ctx).Where("icao = ?", icao).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find airport: %w", result.Error)
	}

	return r.modelToAirport(&model)
}

// FindFuelCandidates retrieves fuel-capable airports with runway >= minRunwayFt inside bbox.
// Boxes wrapping the antimeridian match either longitude band.
func (r *GormAirportRepository) FindFuelCandidates(ctx context.Context, minRunwayFt int, bbox airport.BoundingBox) ([]*airport.Airport, error) {
	query := r.db.WithContext(ctx).
		Where("has_fuel = ? AND longest_runway_ft >= ?", true, minRunwayFt).
		Where("latitude BETWEEN ? AND ?", bbox.MinLat, bbox.MaxLat)

	if bbox.WrapsAntimeridian() {
		query = query.Where("(longitude >= ? OR longitude <= ?)", bbox.MinLon, bbox.MaxLon)
	} else {
		query = query.Where("longitude BETWEEN ? AND ?", bbox.MinLon, bbox.MaxLon)
	}

	var models []AirportModel
	if result := query.Order("icao").Find(&models); result.Error != nil {
		return nil, fmt.Errorf("failed to query fuel candidates: %w", result.Error)
	}

	airports := make([]*airport.Airport, 0, len(models))
	for i := range models {
		a, err := r.modelToAirport(&models[i])
		if err != nil {
			return nil, fmt.Errorf("failed to convert airport %s: %w", models[i].ICAO, err)
		}
		airports = append(airports, a)
	}

	return airports, nil
}

// Count returns the number of stored airports
func (r *GormAirportRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&AirportModel{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count airports: %w", err)
	}
	return n, nil
}

// Save upserts an airport
func (r *GormAirportRepository) Save(ctx context.Context, a *airport.Airport) error {
	model, err := r.airportToModel(a)
	if err != nil {
		return fmt.Errorf("failed to convert airport to model: %w", err)
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "icao"}},
		UpdateAll: true,
	}).Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save airport: %w", result.Error)
	}

	return nil
}

func (r *GormAirportRepository) modelToAirport(model *AirportModel) (*airport.Airport, error) {
	var fuelTypes []string
	if model.FuelTypes != "" {
		if err := json.Unmarshal([]byte(model.FuelTypes), &fuelTypes); err != nil {
			return nil, fmt.Errorf("failed to parse fuel types: %w", err)
		}
	}

	return &airport.Airport{
		ICAO:             model.ICAO,
		Name:             model.Name,
		City:             model.City,
		CountryPrefix:    model.CountryPrefix,
		Latitude:         model.Latitude,
		Longitude:        model.Longitude,
		ElevationFt:      model.ElevationFt,
		LongestRunwayFt:  model.LongestRunwayFt,
		HasFuel:          model.HasFuel,
		FuelTypes:        fuelTypes,
		FuelPriceUSDGal:  model.FuelPriceUSDGal,
		FBOFeeUSD:        model.FBOFeeUSD,
		OperatingHours:   windowFromColumns(model.OperatingFrom, model.OperatingTo),
		Curfew:           windowFromColumns(model.CurfewFrom, model.CurfewTo),
		CustomsAvailable: model.CustomsAvailable,
		DeicingAvailable: model.DeicingAvailable,
		SlotRequired:     model.SlotRequired,
	}, nil
}

func (r *GormAirportRepository) airportToModel(a *airport.Airport) (*AirportModel, error) {
	fuelTypes := ""
	if len(a.FuelTypes) > 0 {
		raw, err := json.Marshal(a.FuelTypes)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal fuel types: %w", err)
		}
		fuelTypes = string(raw)
	}

	model := &AirportModel{
		ICAO:             airport.NormalizeICAO(a.ICAO),
		Name:             a.Name,
		City:             a.City,
		CountryPrefix:    a.CountryPrefix,
		Latitude:         a.Latitude,
		Longitude:        a.Longitude,
		ElevationFt:      a.ElevationFt,
		LongestRunwayFt:  a.LongestRunwayFt,
		HasFuel:          a.HasFuel,
		FuelTypes:        fuelTypes,
		FuelPriceUSDGal:  a.FuelPriceUSDGal,
		FBOFeeUSD:        a.FBOFeeUSD,
		CustomsAvailable: a.CustomsAvailable,
		DeicingAvailable: a.DeicingAvailable,
		SlotRequired:     a.SlotRequired,
	}
	if !a.OperatingHours.IsEmpty() {
		model.OperatingFrom, model.OperatingTo = a.OperatingHours.From, a.OperatingHours.To
	}
	if !a.Curfew.IsEmpty() {
		model.CurfewFrom, model.CurfewTo = a.Curfew.From, a.Curfew.To
	}
	return model, nil
}

func windowFromColumns(from, to string) *airport.TimeWindow {
	if from == "" || to == "" {
		return nil
	}
	return &airport.TimeWindow{From: from, To: to}
}
