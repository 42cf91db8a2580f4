package config

import "time"

// DaemonConfig holds daemon service configuration
type DaemonConfig struct {
	// PID file location
	PIDFile string `mapstructure:"pid_file"`

	// Automatically advance campaign days while the daemon runs
	AutoTick bool `mapstructure:"auto_tick"`

	// Maximum simulated days advanced per wall-clock second
	TickRate float64 `mapstructure:"tick_rate" validate:"omitempty,gt=0"`

	// Graceful shutdown timeout
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required"`
}
