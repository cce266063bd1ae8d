package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, Defaults(), cfg)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, "auto", cfg.Catalog.Source)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_READ_TIMEOUT", "3s")
	t.Setenv("SERVER_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("CATALOG_SOURCE", "http")
	t.Setenv("CREDIT_CARDS_API_URL", "https://cards.test/v1")
	t.Setenv("LLM_PROVIDER", "none")
	t.Setenv("SESSION_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("OTEL_SAMPLER_RATIO", "0.5")
	t.Setenv("LOG_COLOR", "maybe")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 3*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.HTTP.AllowedOrigins())
	assert.Equal(t, "http", cfg.Catalog.Source)
	assert.Equal(t, "https://cards.test/v1", cfg.Catalog.APIURL)
	assert.Equal(t, "none", cfg.Provider.Kind)
	assert.Equal(t, "localhost:6379", cfg.Session.RedisAddr)
	assert.Zero(t, cfg.Session.RedisDB)
	assert.Equal(t, 0.5, cfg.Tracing.SamplerRatio)
	assert.False(t, cfg.Logging.Colored)
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cardxpert.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  port: 7070
  metrics_enabled: true
catalog:
  source: file
  file: /srv/cards.yaml
  timeout: 5s
provider:
  model: gemini-2.5-flash
session:
  ttl: 10m
`), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.HTTP.Port)
	assert.True(t, cfg.HTTP.MetricsEnabled)
	assert.Equal(t, "/srv/cards.yaml", cfg.Catalog.File)
	assert.Equal(t, 5*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, 10*time.Minute, cfg.Session.TTL)
	assert.Equal(t, "gemini-2.5-pro", cfg.Provider.Model)
	// Untouched sections keep their defaults.
	assert.Equal(t, defaultReadTimeout, cfg.HTTP.ReadTimeout)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad port", map[string]string{"SERVER_PORT": "http"}},
		{"port out of range", map[string]string{"SERVER_PORT": "70000"}},
		{"bad duration", map[string]string{"SESSION_TTL": "forever"}},
		{"unknown catalog source", map[string]string{"CATALOG_SOURCE": "ftp"}},
		{"redis without addr", map[string]string{"SESSION_BACKEND": "redis"}},
		{"graph without uri", map[string]string{"CATALOG_SOURCE": "graph"}},
		{"missing config file", map[string]string{"CONFIG_FILE": "/does/not/exist.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
