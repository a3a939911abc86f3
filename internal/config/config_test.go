package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func missingFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(missingFile(t))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, BackendMemory, cfg.StorageBackend)
	assert.Equal(t, "vet-patient-records", cfg.AppName)
	assert.Zero(t, cfg.MemoryQuotaBytes)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_BACKEND", "Redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("KV_NAMESPACE", "clinic1")
	t.Setenv("MEMORY_QUOTA_BYTES", "1024")

	cfg, err := Load(missingFile(t))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, BackendRedis, cfg.StorageBackend)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, "clinic1", cfg.KVNamespace)
	assert.Equal(t, 1024, cfg.MemoryQuotaBytes)
}

func TestLoad_DotEnvFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "vet.env")
	require.NoError(t, os.WriteFile(file, []byte("LOG_LEVEL=debug\nAPP_NAME=clinica\n"), 0o600))

	cfg, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "clinica", cfg.AppName)
}

func TestLoad_Validation(t *testing.T) {
	t.Run("postgres without dsn", func(t *testing.T) {
		t.Setenv("STORAGE_BACKEND", "postgres")
		_, err := Load(missingFile(t))
		assert.ErrorContains(t, err, "DB_DSN")
	})
	t.Run("redis without url", func(t *testing.T) {
		t.Setenv("STORAGE_BACKEND", "redis")
		_, err := Load(missingFile(t))
		assert.ErrorContains(t, err, "REDIS_URL")
	})
	t.Run("unknown backend", func(t *testing.T) {
		t.Setenv("STORAGE_BACKEND", "indexeddb")
		_, err := Load(missingFile(t))
		assert.ErrorContains(t, err, "STORAGE_BACKEND")
	})
}

func TestLoad_MalformedFile_ReturnsError(t *testing.T) {
	file := filepath.Join(t.TempDir(), "vet.yaml")
	require.NoError(t, os.WriteFile(file, []byte("PORT: [9090\nLOG_LEVEL: debug\n"), 0o600))

	_, err := Load(file)
	assert.ErrorContains(t, err, "read config")
}
