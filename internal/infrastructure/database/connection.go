package database

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/andrescamacho/aeroroute-go/internal/adapters/persistence"
	"github.com/andrescamacho/aeroroute-go/internal/infrastructure/config"
)

const memoryPath = ":memory:"

// NewConnection opens the airport and aircraft store, sizes its pool and
// migrates the schema when cfg.AutoMigrate is set.
func NewConnection(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Type, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying db: %w", err)
	}
	switch {
	case isMemory(cfg):
		// each new connection to :memory: would see an empty schema
		sqlDB.SetMaxOpenConns(1)
	case cfg.Type == "postgres":
		sqlDB.SetMaxOpenConns(cfg.Pool.MaxOpen)
		sqlDB.SetMaxIdleConns(cfg.Pool.MaxIdle)
		sqlDB.SetConnMaxLifetime(cfg.Pool.MaxLifetime)
	}

	if cfg.AutoMigrate {
		if err := AutoMigrate(db); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}
	return db, nil
}

func dialectorFor(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Type {
	case "postgres":
		return postgres.Open(postgresDSN(cfg)), nil
	case "sqlite":
		if isMemory(cfg) {
			return sqlite.Open(memoryPath), nil
		}
		return sqlite.Open(cfg.Path), nil
	}
	return nil, fmt.Errorf("unsupported database type: %q", cfg.Type)
}

// postgresDSN prefers DATABASE_URL-style URLs over the discrete fields
func postgresDSN(cfg *config.DatabaseConfig) string {
	if cfg.URL != "" {
		return cfg.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
}

func isMemory(cfg *config.DatabaseConfig) bool {
	return cfg.Type == "sqlite" && (cfg.Path == "" || cfg.Path == memoryPath)
}

// NewTestConnection returns a migrated in-memory SQLite store
func NewTestConnection() (*gorm.DB, error) {
	return NewConnection(&config.DatabaseConfig{Type: "sqlite", Path: memoryPath, AutoMigrate: true})
}

// AutoMigrate creates or updates the airports and aircraft tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&persistence.AirportModel{}, &persistence.AircraftModel{})
}

// Ping checks that the store answers within ctx
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
