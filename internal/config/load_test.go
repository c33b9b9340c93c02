package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every recognised variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range env {
		t.Setenv(name, "")
	}
}

// loadWith runs Load with only vars set. Viper treats empty variables as
// unset.
func loadWith(t *testing.T, vars map[string]string) (*Config, error) {
	t.Helper()
	clearEnv(t)
	for name, value := range vars {
		t.Setenv(name, value)
	}
	return Load()
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := loadWith(t, nil)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "default-portfolio-app", cfg.Server.AppID)
	assert.Empty(t, cfg.Server.ProfilePath)
	assert.Empty(t, cfg.Server.TrustedProxies)

	assert.False(t, cfg.AI.Enabled)
	assert.Equal(t, "http", cfg.AI.Transport)
	assert.Equal(t, DefaultEndpoint, cfg.AI.Endpoint)
	assert.Equal(t, "gemini-2.5-flash-preview-05-20", cfg.AI.Model)
	assert.Equal(t, 3, cfg.AI.MaxAttempts)
	assert.Equal(t, time.Second, cfg.AI.BackoffBase())
	assert.Equal(t, 30*time.Second, cfg.AI.AttemptTimeout)
	assert.Equal(t, 6.0, cfg.AI.RatePerMinute)

	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)

	assert.Equal(t, "sqlite", cfg.Visits.Driver)
	assert.Equal(t, "portfolio.db", cfg.Visits.DSN)
	assert.False(t, cfg.Visits.WriteEnabled)
}

func TestLoadFromEnv(t *testing.T) {
	cfg, err := loadWith(t, map[string]string{
		"PORT":                    "9090",
		"LOG_LEVEL":               "DEBUG",
		"APP_ID":                  "my-site",
		"TRUSTED_PROXIES":         "10.0.0.0/8,192.0.2.10",
		"AI_ENABLED":              "true",
		"AI_TRANSPORT":            "sdk",
		"GEMINI_API_KEY":          "test-key",
		"AI_MAX_ATTEMPTS":         "5",
		"AI_BACKOFF_BASE_SECONDS": "0.5",
		"AI_ATTEMPT_TIMEOUT":      "10s",
		"SESSION_TTL":             "1h",
		"VISITS_DRIVER":           "redis",
		"VISITS_DSN":              "redis://localhost:6379/0",
		"VISITS_WRITE_ENABLED":    "true",
	})
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "my-site", cfg.Server.AppID)
	assert.Equal(t, []string{"10.0.0.0/8", "192.0.2.10"}, cfg.Server.TrustedProxies)
	assert.True(t, cfg.AI.Enabled)
	assert.Equal(t, "sdk", cfg.AI.Transport)
	assert.Equal(t, "test-key", cfg.AI.APIKey)
	assert.Equal(t, 5, cfg.AI.MaxAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.AI.BackoffBase())
	assert.Equal(t, 10*time.Second, cfg.AI.AttemptTimeout)
	assert.Equal(t, time.Hour, cfg.Session.TTL)
	assert.Equal(t, "redis", cfg.Visits.Driver)
	assert.True(t, cfg.Visits.WriteEnabled)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "enabled without key", env: map[string]string{"AI_ENABLED": "true"}},
		{name: "unknown transport", env: map[string]string{"AI_TRANSPORT": "grpc"}},
		{name: "zero attempts", env: map[string]string{"AI_MAX_ATTEMPTS": "0"}},
		{name: "negative backoff", env: map[string]string{"AI_BACKOFF_BASE_SECONDS": "-1"}},
		{name: "port out of range", env: map[string]string{"PORT": "70000"}},
		{name: "bad log level", env: map[string]string{"LOG_LEVEL": "verbose"}},
		{name: "bad trusted proxy", env: map[string]string{"TRUSTED_PROXIES": "not-an-ip"}},
		{name: "unknown driver", env: map[string]string{"VISITS_DRIVER": "mysql"}},
		{name: "bad duration", env: map[string]string{"SESSION_TTL": "soon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadWith(t, tt.env)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoad_DriverNoneNeedsNoDSN(t *testing.T) {
	cfg, err := loadWith(t, map[string]string{"VISITS_DRIVER": "none"})
	require.NoError(t, err)
	assert.Equal(t, "none", cfg.Visits.Driver)
}
