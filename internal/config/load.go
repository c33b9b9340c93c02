package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// ErrInvalid wraps every validation failure returned by Load.
var ErrInvalid = errors.New("invalid configuration")

const DefaultEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash-preview-05-20:generateContent"

// env maps configuration keys to the variables that set them.
var env = map[string]string{
	"server.port":             "PORT",
	"server.gin_mode":         "GIN_MODE",
	"server.log_level":        "LOG_LEVEL",
	"server.app_id":           "APP_ID",
	"server.profile_path":     "PROFILE_PATH",
	"server.trusted_proxies":  "TRUSTED_PROXIES",
	"ai.enabled":              "AI_ENABLED",
	"ai.transport":            "AI_TRANSPORT",
	"ai.endpoint":             "GEMINI_ENDPOINT",
	"ai.model":                "GEMINI_MODEL",
	"ai.api_key":              "GEMINI_API_KEY",
	"ai.max_attempts":         "AI_MAX_ATTEMPTS",
	"ai.backoff_base_seconds": "AI_BACKOFF_BASE_SECONDS",
	"ai.attempt_timeout":      "AI_ATTEMPT_TIMEOUT",
	"ai.rate_per_minute":      "AI_RATE_PER_MINUTE",
	"session.ttl":             "SESSION_TTL",
	"visits.driver":           "VISITS_DRIVER",
	"visits.dsn":              "VISITS_DSN",
	"visits.write_enabled":    "VISITS_WRITE_ENABLED",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.app_id", "default-portfolio-app")
	v.SetDefault("server.trusted_proxies", []string{})
	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.transport", "http")
	v.SetDefault("ai.endpoint", DefaultEndpoint)
	v.SetDefault("ai.model", "gemini-2.5-flash-preview-05-20")
	v.SetDefault("ai.max_attempts", 3)
	v.SetDefault("ai.backoff_base_seconds", 1)
	v.SetDefault("ai.attempt_timeout", "30s")
	v.SetDefault("ai.rate_per_minute", 6)
	v.SetDefault("session.ttl", "30m")
	v.SetDefault("visits.driver", "sqlite")
	v.SetDefault("visits.dsn", "portfolio.db")
	v.SetDefault("visits.write_enabled", false)
}

// Load reads the configuration from environment variables, applying
// defaults for anything unset, and validates the result.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	for key, name := range env {
		if err := v.BindEnv(key, name); err != nil {
			return nil, fmt.Errorf("binding %s: %w", name, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	cfg.Server.LogLevel = strings.ToLower(cfg.Server.LogLevel)
	cfg.Visits.Driver = strings.ToLower(cfg.Visits.Driver)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return &cfg, nil
}
