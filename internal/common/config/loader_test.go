package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_Defaults(t *testing.T) {
	path := writeConfig(t, "app:\n  name: catalog-test\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, BackendMemory, cfg.Store.Backend)
	assert.Equal(t, 3, cfg.Store.MaxAttempts)
	assert.Equal(t, NegativeStockAllow, cfg.Store.NegativeStock)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Server.Address())
	assert.Equal(t, "catalog-test", cfg.Observability.ServiceName)
	assert.Equal(t, "franchises", cfg.Database.Elasticsearch.Index)
}

func TestLoadFromFile_ExpandsEnv(t *testing.T) {
	t.Setenv("CATALOG_TEST_REDIS", "redis.internal:6379")
	path := writeConfig(t, `
store:
  backend: redis
  negative_stock: reject
database:
  redis:
    address: ${CATALOG_TEST_REDIS}
workers:
  catalog-update-stock:
    enabled: true
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "redis.internal:6379", cfg.Database.Redis.Address)
	assert.Equal(t, NegativeStockReject, cfg.Store.NegativeStock)

	wc := GetWorkerConfig(cfg, "catalog-update-stock")
	assert.Equal(t, 5, wc.MaxJobsActive)
	assert.Equal(t, 3, wc.MaxRetries)
	assert.True(t, IsWorkerEnabled(cfg, "catalog-unknown"))
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"memory ok", func(c *Config) {}, ""},
		{"unknown backend", func(c *Config) { c.Store.Backend = "mongo" }, "unknown store.backend"},
		{"redis needs address", func(c *Config) { c.Store.Backend = BackendRedis }, "database.redis.address"},
		{"postgres needs host", func(c *Config) { c.Store.Backend = BackendPostgres }, "database.postgres.host"},
		{"es needs address", func(c *Config) { c.Store.Backend = BackendElasticsearch }, "database.elasticsearch"},
		{"bad stock policy", func(c *Config) { c.Store.NegativeStock = "clamp" }, "store.negative_stock"},
		{"zero attempts", func(c *Config) { c.Store.MaxAttempts = -1 }, "store.max_attempts"},
		{"camunda needs broker", func(c *Config) { c.Camunda.Enabled = true }, "camunda.broker_address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			applyDefaults(cfg)
			tt.mutate(cfg)

			err := validateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, "1.5s", GetDuration(1500).String())
}
