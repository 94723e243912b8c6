package helpers

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/andrescamacho/aeroroute-go/internal/adapters/persistence"
	"github.com/andrescamacho/aeroroute-go/internal/infrastructure/database"
)

// NewTestDB returns a private migrated in-memory store closed at test end
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewTestConnection()
	require.NoError(t, err, "open test database")
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

// SharedTestDB backs the BDD suite; scenarios reset it with TruncateAllTables
var SharedTestDB *gorm.DB

func InitializeSharedTestDB() error {
	db, err := database.NewTestConnection()
	if err != nil {
		return fmt.Errorf("failed to open shared test database: %w", err)
	}
	SharedTestDB = db
	return nil
}

// TruncateAllTables empties the reference tables between scenarios
func TruncateAllTables() error {
	if SharedTestDB == nil {
		return fmt.Errorf("shared test database not initialized")
	}
	for _, model := range []any{&persistence.AirportModel{}, &persistence.AircraftModel{}} {
		if err := SharedTestDB.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("failed to truncate %T: %w", model, err)
		}
	}
	return nil
}

// SeedFixtureAirports stores the fixture network in db
func SeedFixtureAirports(ctx context.Context, db *gorm.DB) error {
	repo := persistence.NewGormAirportRepository(db)
	for _, a := range FixtureAirports() {
		if err := repo.Save(ctx, a); err != nil {
			return fmt.Errorf("seed %s: %w", a.ICAO, err)
		}
	}
	return nil
}

func CloseSharedTestDB() error {
	if SharedTestDB == nil {
		return nil
	}
	return database.Close(SharedTestDB)
}
