package config

import "time"

// DaemonConfig holds simulation daemon configuration
type DaemonConfig struct {
	// PID file location
	PIDFile string `mapstructure:"pid_file"`

	// Wall-clock interval between simulation ticks
	TickInterval time.Duration `mapstructure:"tick_interval" validate:"required"`

	// Ticks per second allowed when catching up; 0 means unlimited
	TickRateLimit float64 `mapstructure:"tick_rate_limit" validate:"min=0"`

	// Graceful shutdown timeout
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required"`
}
