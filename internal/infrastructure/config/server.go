package config

import "time"

// ServerConfig holds the HTTP API settings
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port" validate:"min=1,max=65535"`

	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`

	// Origins allowed by CORS; empty allows none
	CORSOrigins []string `mapstructure:"cors_origins"`

	// Single-instance lock; empty disables it
	PIDFile string `mapstructure:"pid_file"`

	// gin mode: debug, release, test
	Mode string `mapstructure:"mode" validate:"omitempty,oneof=debug release test"`
}

// RedisConfig holds the plan event publisher settings
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr" validate:"required_if=Enabled true"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"min=0"`

	// Pub/sub channel for plan summaries
	Channel string `mapstructure:"channel"`
}
