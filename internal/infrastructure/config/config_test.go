package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "aeroroute.db", cfg.Database.Path)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, 4, cfg.Routing.MaxDepth)
	assert.Equal(t, 45*time.Minute, cfg.Routing.GroundTime)
	assert.Equal(t, "JET-A", cfg.Routing.RequiredFuelType)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.Weather.Enabled)
	assert.True(t, cfg.Notam.AIM.Enabled)
	assert.True(t, cfg.Notam.TFR.Enabled)
	assert.False(t, cfg.Notam.FAA.Enabled, "the FAA API needs credentials")
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.NoError(t, ValidateConfig(cfg))
}

func TestLoadConfig_FileAndEnvironment(t *testing.T) {
	// Arrange
	t.Setenv("DATABASE_URL", "")
	t.Setenv("AERO_SERVER_PORT", "9090")
	path := writeConfig(t, `
routing:
  max_depth: 2
  ground_time: 30m
notam:
  tfr:
    enabled: false
logging:
  level: debug
  format: json
`)

	// Act
	cfg, err := LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Routing.MaxDepth)
	assert.Equal(t, 30*time.Minute, cfg.Routing.GroundTime)
	assert.Equal(t, 0.6, cfg.Routing.NarrowRadiusFactor, "unset values get defaults")
	assert.False(t, cfg.Notam.TFR.Enabled)
	assert.True(t, cfg.Notam.AIM.Enabled)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 9090, cfg.Server.Port, "environment wins over the file")
}

func TestLoadConfig_DatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgresql://aero:secret@db:5432/aeroroute")

	cfg, err := LoadConfig(writeConfig(t, "server:\n  port: 8081\n"))

	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, "postgresql://aero:secret@db:5432/aeroroute", cfg.Database.URL)
	assert.Empty(t, cfg.Database.Path, "sqlite path only defaults for sqlite")
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	tests := []struct {
		name string
		body string
	}{
		{"unknown log level", "logging:\n  level: loud\n"},
		{"wide radius not wider", "routing:\n  narrow_radius_factor: 0.8\n  wide_radius_factor: 0.5\n"},
		{"depth out of range", "routing:\n  max_depth: 11\n"},
		{"unknown database", "database:\n  type: mysql\n"},
		{"unknown fuel grade", "routing:\n  required_fuel_type: DIESEL\n"},
		{"file output without path", "logging:\n  output: file\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))

			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
		})
	}
}

func TestLoadConfig_UnreadableFile(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "routing: [unclosed"))

	assert.ErrorContains(t, err, "failed to read config file")
}

func TestLoadConfigOrDefault_FallsBack(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	cfg := LoadConfigOrDefault(writeConfig(t, "logging:\n  level: loud\n"))

	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestRoutingConfig_Tuning(t *testing.T) {
	rc := DefaultConfig().Routing
	rc.MaxDepth = 3

	tuning := rc.Tuning()

	assert.Equal(t, 3, tuning.MaxDepth)
	assert.Equal(t, rc.DetourCostPerNM, tuning.DetourCostPerNM)
	assert.Equal(t, rc.WideRadiusFactor, tuning.WideRadiusFactor)
	assert.Equal(t, rc.GroundTime, tuning.GroundTime)
	assert.Equal(t, "JET-A", tuning.RequiredFuelType)
	assert.False(t, tuning.DirectOnly)
}

func TestRoutingConfig_DirectOnly(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	cfg, err := LoadConfig(writeConfig(t, "routing:\n  direct_only: true\n"))

	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Routing.MaxDepth)
	assert.True(t, cfg.Routing.Tuning().DirectOnly)
}

func TestUserConfigHandler_RoundTrip(t *testing.T) {
	// Arrange
	h, err := NewUserConfigHandlerAt(filepath.Join(t.TempDir(), ".aeroroute"))
	require.NoError(t, err)

	empty, err := h.Load()
	require.NoError(t, err)
	assert.Equal(t, &UserConfig{}, empty)

	// Act
	require.NoError(t, h.SetDefaults("N100", "cost"))
	require.NoError(t, h.SetDefaults("", "time"))

	// Assert
	loaded, err := h.Load()
	require.NoError(t, err)
	assert.Equal(t, "N100", loaded.DefaultAircraft, "empty values keep the stored preference")
	assert.Equal(t, "time", loaded.DefaultMode)
	assert.Equal(t, "config.json", filepath.Base(h.GetConfigPath()))

	require.NoError(t, h.ClearDefaults())
	cleared, err := h.Load()
	require.NoError(t, err)
	assert.Empty(t, cleared.DefaultAircraft)
}

func TestUserConfigHandler_CorruptFile(t *testing.T) {
	h, err := NewUserConfigHandlerAt(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(h.GetConfigPath(), []byte("{not json"), 0644))

	_, err = h.Load()

	assert.ErrorContains(t, err, "failed to parse user config")
}
