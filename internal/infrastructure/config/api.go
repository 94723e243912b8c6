package config

import "time"

// UpstreamConfig holds the HTTP client settings shared by the weather and NOTAM feeds
type UpstreamConfig struct {
	// Base URL of the upstream API
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`

	// Rate limiting settings
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// Per-request timeout; the engine applies its own per-fetch deadline on top
	Timeout time.Duration `mapstructure:"timeout"`

	// Retry configuration
	Retry RetryConfig `mapstructure:"retry"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	// Maximum requests per second
	Requests int `mapstructure:"requests" validate:"min=1"`

	// Burst size for token bucket
	Burst int `mapstructure:"burst" validate:"min=1"`
}

// RetryConfig holds retry configuration for failed requests
type RetryConfig struct {
	// Maximum number of retry attempts
	MaxAttempts int `mapstructure:"max_attempts" validate:"min=0"`

	// Base duration for exponential backoff
	BackoffBase time.Duration `mapstructure:"backoff_base"`
}

// WeatherConfig configures the aviationweather.gov METAR feed
type WeatherConfig struct {
	Enabled bool `mapstructure:"enabled"`

	UpstreamConfig `mapstructure:",squash"`

	// Deadline for the whole weather fetch of one plan
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
}

// NotamConfig configures the three NOTAM/TFR sources
type NotamConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Deadline for each source's fetch
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`

	FAA NotamSourceConfig `mapstructure:"faa"`
	AIM NotamSourceConfig `mapstructure:"aim"`
	TFR NotamSourceConfig `mapstructure:"tfr"`
}

// NotamSourceConfig is one NOTAM feed
type NotamSourceConfig struct {
	Enabled bool `mapstructure:"enabled"`

	UpstreamConfig `mapstructure:",squash"`

	// FAA NOTAM API credentials (faa source only)
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
}
