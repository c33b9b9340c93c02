// Package config loads server settings from the environment.
package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	AI      AIConfig      `mapstructure:"ai"`
	Session SessionConfig `mapstructure:"session"`
	Visits  VisitsConfig  `mapstructure:"visits"`
}

type ServerConfig struct {
	Port        int    `mapstructure:"port" validate:"gt=0,lt=65536"`
	GinMode     string `mapstructure:"gin_mode" validate:"omitempty,oneof=debug release test"`
	LogLevel    string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	AppID       string `mapstructure:"app_id" validate:"required"`
	ProfilePath string `mapstructure:"profile_path"`

	// TrustedProxies may report the client address in X-Forwarded-For.
	// Empty means the peer address is always used.
	TrustedProxies []string `mapstructure:"trusted_proxies" validate:"dive,ip|cidr"`
}

// AIConfig controls the text generation backend. With Enabled false every
// AI action reports the feature as unavailable.
type AIConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	Transport      string        `mapstructure:"transport" validate:"oneof=http sdk"`
	Endpoint       string        `mapstructure:"endpoint" validate:"required_if=Transport http"`
	Model          string        `mapstructure:"model" validate:"required_if=Transport sdk"`
	APIKey         string        `mapstructure:"api_key" validate:"required_if=Enabled true"`
	MaxAttempts    int           `mapstructure:"max_attempts" validate:"gte=1"`
	BackoffSeconds float64       `mapstructure:"backoff_base_seconds" validate:"gte=0"`
	AttemptTimeout time.Duration `mapstructure:"attempt_timeout" validate:"gte=0"`
	RatePerMinute  float64       `mapstructure:"rate_per_minute" validate:"gte=0"`
}

// BackoffBase returns BackoffSeconds as a duration.
func (c AIConfig) BackoffBase() time.Duration {
	return time.Duration(c.BackoffSeconds * float64(time.Second))
}

type SessionConfig struct {
	TTL time.Duration `mapstructure:"ttl" validate:"gt=0"`
}

// VisitsConfig selects the visitor counter store. Writes stay off unless
// WriteEnabled is set, so a demo deployment only reads.
type VisitsConfig struct {
	Driver       string `mapstructure:"driver" validate:"oneof=sqlite postgres redis none"`
	DSN          string `mapstructure:"dsn" validate:"required_unless=Driver none"`
	WriteEnabled bool   `mapstructure:"write_enabled"`
}
