package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	// 清除环境变量
	os.Clearenv()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendMemory, cfg.Store.Backend)
	assert.Equal(t, "", cfg.Store.SnapshotPath)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "carelog_kv", cfg.Database.Table)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, "users", cfg.Keys.Subjects)
	assert.Equal(t, "events_", cfg.Keys.EventsPrefix)
	assert.Equal(t, "care_events", cfg.Keys.LegacyEventsKey)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "stderr", cfg.Log.Output)
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("STORE_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "redis:6380")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("REDIS_KEY_PREFIX", "facility-a:")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("SUBJECTS_KEY", "residents")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendRedis, cfg.Store.Backend)
	assert.Equal(t, "redis:6380", cfg.Redis.Addr)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, "facility-a:", cfg.Redis.KeyPrefix)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "residents", cfg.Keys.Subjects)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_InvalidNumberFallsBack(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-port")
	t.Setenv("REDIS_DB", "-1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 0, cfg.Redis.DB)
}

func TestLoad_UnsupportedBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "indexeddb")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported store backend")
}

func TestGetDSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Database: "care", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=care sslmode=disable", c.GetDSN())
}
