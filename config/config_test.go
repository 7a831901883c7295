package config

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"DATABASE_URL", "DATABASE_NAME", "HTTP_ADDR", "NATS_URL", "RESULTS_LIMIT",
		"RANDOM_SEED", "LOG_LEVEL", "LOG_FORMAT", "ENVIRONMENT",
	} {
		t.Setenv(key, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost:5432")

	cfg, err := fromEnv()

	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.HTTPAddr)
	assert.Equal(t, 10, cfg.ResultsLimit)
	assert.Equal(t, int64(0), cfg.RandomSeed)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "development", cfg.Environment)
	assert.Empty(t, cfg.NATSURL)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://db:5432")
	t.Setenv("DATABASE_NAME", "tourney")
	t.Setenv("HTTP_ADDR", ":8080")
	t.Setenv("NATS_URL", "nats://nats:4222")
	t.Setenv("RESULTS_LIMIT", "25")
	t.Setenv("RANDOM_SEED", "42")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := fromEnv()

	require.NoError(t, err)
	assert.Equal(t, "tourney", cfg.DatabaseName)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "nats://nats:4222", cfg.NATSURL)
	assert.Equal(t, 25, cfg.ResultsLimit)
	assert.Equal(t, int64(42), cfg.RandomSeed)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "production", cfg.Environment)
}

func TestFromEnv_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing database url", map[string]string{}},
		{"zero results limit", map[string]string{"DATABASE_URL": "x", "RESULTS_LIMIT": "0"}},
		{"non numeric results limit", map[string]string{"DATABASE_URL": "x", "RESULTS_LIMIT": "ten"}},
		{"non numeric seed", map[string]string{"DATABASE_URL": "x", "RANDOM_SEED": "abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := fromEnv()
			assert.Error(t, err)
		})
	}
}

func TestFromEnv_TestEnvironmentSkipsDatabaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENVIRONMENT", "test")

	cfg, err := fromEnv()

	require.NoError(t, err)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestConfigureLogging(t *testing.T) {
	original := log.GetLevel()
	defer log.SetLevel(original)
	defer log.SetFormatter(&log.TextFormatter{})

	cfg := &Config{LogLevel: "debug", LogFormat: "json"}
	require.NoError(t, cfg.ConfigureLogging())
	assert.Equal(t, log.DebugLevel, log.GetLevel())
	assert.IsType(t, &log.JSONFormatter{}, log.StandardLogger().Formatter)

	assert.Error(t, (&Config{LogLevel: "loud", LogFormat: "text"}).ConfigureLogging())
	assert.Error(t, (&Config{LogLevel: "info", LogFormat: "xml"}).ConfigureLogging())
}
