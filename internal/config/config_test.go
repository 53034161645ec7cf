package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("DB_DATABASE", "/tmp/wastedash.db")
	t.Setenv("ADMIN_KEY", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 5, cfg.DBAppConnectionLimit)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 200, cfg.RecalcBatchSize)
	assert.True(t, cfg.IsSQLite())
}

func TestLoadRequiresCredentialsForServerDatabases(t *testing.T) {
	t.Setenv("DB_TYPE", "postgres")
	t.Setenv("DB_DATABASE", "wastedash")
	t.Setenv("ADMIN_KEY", "secret")
	t.Setenv("DB_APP_USER", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_APP_USER")
}

func TestLoadWithoutAdminKey(t *testing.T) {
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("DB_DATABASE", "/tmp/wastedash.db")
	t.Setenv("ADMIN_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.AdminKey)
}

func TestLoadRejectsBatchSize(t *testing.T) {
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("DB_DATABASE", "/tmp/wastedash.db")
	t.Setenv("RECALC_BATCH_SIZE", "0")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RECALC_BATCH_SIZE")
}

func TestGetEnvAsDurationFallsBack(t *testing.T) {
	t.Setenv("SOME_TTL", "not-a-duration")
	assert.Equal(t, time.Second, getEnvAsDuration("SOME_TTL", time.Second))

	t.Setenv("SOME_TTL", "90s")
	assert.Equal(t, 90*time.Second, getEnvAsDuration("SOME_TTL", time.Second))
}
