package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Type == "sqlite" && cfg.Database.Path == "" {
		cfg.Database.Path = "aeroroute.db"
		cfg.Database.AutoMigrate = true
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "aeroroute"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "aeroroute"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 25
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Weather defaults
	if cfg.Weather.BaseURL == "" {
		cfg.Weather.BaseURL = "https://aviationweather.gov"
	}
	upstreamDefaults(&cfg.Weather.UpstreamConfig, 2, 5)
	if cfg.Weather.FetchTimeout == 0 {
		cfg.Weather.FetchTimeout = 8 * time.Second
	}

	// NOTAM defaults
	if cfg.Notam.FetchTimeout == 0 {
		cfg.Notam.FetchTimeout = 6 * time.Second
	}
	if cfg.Notam.FAA.BaseURL == "" {
		cfg.Notam.FAA.BaseURL = "https://external-api.faa.gov/notamapi/v1"
	}
	if cfg.Notam.AIM.BaseURL == "" {
		cfg.Notam.AIM.BaseURL = "https://notams.aim.faa.gov"
	}
	if cfg.Notam.TFR.BaseURL == "" {
		cfg.Notam.TFR.BaseURL = "https://tfr.faa.gov"
	}
	upstreamDefaults(&cfg.Notam.FAA.UpstreamConfig, 1, 3)
	upstreamDefaults(&cfg.Notam.AIM.UpstreamConfig, 1, 3)
	upstreamDefaults(&cfg.Notam.TFR.UpstreamConfig, 1, 3)

	// Routing defaults
	if cfg.Routing.DetourCostPerNM == 0 {
		cfg.Routing.DetourCostPerNM = 8
	}
	if cfg.Routing.BalancedCostWeight == 0 {
		cfg.Routing.BalancedCostWeight = 0.5
	}
	if cfg.Routing.BalancedHourWeight == 0 {
		cfg.Routing.BalancedHourWeight = 30
	}
	if cfg.Routing.MaxDepth == 0 {
		cfg.Routing.MaxDepth = 4
	}
	if cfg.Routing.NarrowRadiusFactor == 0 {
		cfg.Routing.NarrowRadiusFactor = 0.6
	}
	if cfg.Routing.WideRadiusFactor == 0 {
		cfg.Routing.WideRadiusFactor = 0.8
	}
	if cfg.Routing.GroundTime == 0 {
		cfg.Routing.GroundTime = 45 * time.Minute
	}
	if cfg.Routing.DefaultFuelPriceUSDGal == 0 {
		cfg.Routing.DefaultFuelPriceUSDGal = 7.50
	}
	if cfg.Routing.RequiredFuelType == "" {
		cfg.Routing.RequiredFuelType = "JET-A"
	}

	// Server defaults
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 60 * time.Second
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = "release"
	}

	// Redis defaults
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Redis.Channel == "" {
		cfg.Redis.Channel = "aeroroute:plans"
	}

	// Metrics defaults
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}
	if cfg.Logging.Rotation.MaxSizeMB == 0 {
		cfg.Logging.Rotation.MaxSizeMB = 100
	}
	if cfg.Logging.Rotation.MaxBackups == 0 {
		cfg.Logging.Rotation.MaxBackups = 3
	}
	if cfg.Logging.Rotation.MaxAgeDays == 0 {
		cfg.Logging.Rotation.MaxAgeDays = 28
	}
}

func upstreamDefaults(u *UpstreamConfig, requests, burst int) {
	if u.Timeout == 0 {
		u.Timeout = 10 * time.Second
	}
	if u.RateLimit.Requests == 0 {
		u.RateLimit.Requests = requests
	}
	if u.RateLimit.Burst == 0 {
		u.RateLimit.Burst = burst
	}
	if u.Retry.MaxAttempts == 0 {
		u.Retry.MaxAttempts = 2
	}
	if u.Retry.BackoffBase == 0 {
		u.Retry.BackoffBase = 500 * time.Millisecond
	}
}
