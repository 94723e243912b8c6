package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/aeroroute-go/internal/domain/aircraft"
)

// GormAircraftRepository implements AircraftRepository using GORM
type GormAircraftRepository struct {
	db *gorm.DB
}

// NewGormAircraftRepository creates a new GORM aircraft repository
func NewGormAircraftRepository(db *gorm.DB) *GormAircraftRepository {
	return &GormAircraftRepository{db: db}
}

// FindByID retrieves an aircraft, nil when it does not exist
func (r *GormAircraftRepository) FindByID(ctx context.Context, aircraftID string) (*aircraft.Performance, error) {
	var model AircraftModel
	result := r.db.WithContext(ctx).Where("aircraft_id = ?", aircraftID).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find aircraft: %w", result.Error)
	}

	return &aircraft.Performance{
		AircraftID:          model.AircraftID,
		TailNumber:          model.TailNumber,
		Category:            aircraft.Category(model.Category),
		FuelBurnGPH:         model.FuelBurnGPH,
		RangeNM:             model.RangeNM,
		CruiseSpeedKts:      model.CruiseSpeedKts,
		MaxFuelCapacityGal:  model.MaxFuelCapacityGal,
		MinRunwayOverride:   model.MinRunwayFt,
		ReserveFuelOverride: model.ReserveFuelGal,
	}, nil
}

// Save upserts an aircraft
func (r *GormAircraftRepository) Save(ctx context.Context, p *aircraft.Performance) error {
	model := &AircraftModel{
		AircraftID:         p.AircraftID,
		TailNumber:         p.TailNumber,
		Category:           string(p.Category),
		FuelBurnGPH:        p.FuelBurnGPH,
		RangeNM:            p.RangeNM,
		CruiseSpeedKts:     p.CruiseSpeedKts,
		MaxFuelCapacityGal: p.MaxFuelCapacityGal,
		MinRunwayFt:        p.MinRunwayOverride,
		ReserveFuelGal:     p.ReserveFuelOverride,
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "aircraft_id"}},
		UpdateAll: true,
	}).Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save aircraft: %w", result.Error)
	}

	return nil
}
