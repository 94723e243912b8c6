package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the main configuration struct combining all sub-configs
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Weather  WeatherConfig  `mapstructure:"weather"`
	Notam    NotamConfig    `mapstructure:"notam"`
	Routing  RoutingConfig  `mapstructure:"routing"`
	Server   ServerConfig   `mapstructure:"server"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// LoadConfig loads configuration from multiple sources with priority:
// 1. Environment variables (highest priority)
// 2. Config file (config.yaml)
// 3. Defaults (lowest priority)
func LoadConfig(configPath string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/aeroroute")
	}

	for key, value := range switchDefaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix("AERO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// DATABASE_URL is honoured without the AERO_ prefix
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		v.Set("database.url", dbURL)
		v.Set("database.type", "postgres")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	SetDefaults(&cfg)

	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// switchDefaults are the on/off settings that default to on; SetDefaults cannot
// tell an unset bool from false
var switchDefaults = map[string]bool{
	"weather.enabled":   true,
	"notam.enabled":     true,
	"notam.aim.enabled": true,
	"notam.tfr.enabled": true,
	"metrics.enabled":   true,
}

// bindEnvKeys registers keys so AutomaticEnv sees them during Unmarshal
// even when no config file mentions them
func bindEnvKeys(v *viper.Viper) {
	for _, key := range []string{
		"database.type", "database.url", "database.path", "database.auto_migrate",
		"weather.enabled", "weather.base_url",
		"notam.enabled", "notam.faa.client_id", "notam.faa.client_secret",
		"routing.max_depth", "routing.default_fuel_price_usd_gal",
		"server.host", "server.port",
		"redis.enabled", "redis.addr", "redis.password", "redis.db", "redis.channel",
		"metrics.enabled",
		"logging.level", "logging.format", "logging.output", "logging.file_path",
	} {
		_ = v.BindEnv(key)
	}
}

// LoadConfigOrDefault loads configuration or returns a default config on error
func LoadConfigOrDefault(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// DefaultConfig returns a config with every default applied
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Weather.Enabled = switchDefaults["weather.enabled"]
	cfg.Notam.Enabled = switchDefaults["notam.enabled"]
	cfg.Notam.AIM.Enabled = switchDefaults["notam.aim.enabled"]
	cfg.Notam.TFR.Enabled = switchDefaults["notam.tfr.enabled"]
	cfg.Metrics.Enabled = switchDefaults["metrics.enabled"]
	SetDefaults(cfg)
	return cfg
}
