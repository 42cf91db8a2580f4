package config

import "time"

// DatabaseConfig selects where the campaign state lives. SQLite covers the
// single-player file-on-disk case (and :memory: for tests); postgres is for
// a shared campaign served by the daemon.
type DatabaseConfig struct {
	Type string `mapstructure:"type" validate:"required,oneof=postgres sqlite"`

	// URL is a full postgres connection string and wins over the
	// individual fields below when set.
	URL string `mapstructure:"url"`

	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode" validate:"omitempty,oneof=disable require verify-ca verify-full"`

	// Path is the SQLite database file, or ":memory:".
	Path string `mapstructure:"path"`

	Pool PoolConfig `mapstructure:"pool"`
}

// PoolConfig tunes the postgres connection pool. Ignored for SQLite, which
// the daemon opens as a single connection.
type PoolConfig struct {
	MaxOpen     int           `mapstructure:"max_open" validate:"min=1"`
	MaxIdle     int           `mapstructure:"max_idle" validate:"min=1"`
	MaxLifetime time.Duration `mapstructure:"max_lifetime"`
}
