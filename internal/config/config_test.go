package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "./vetlife.db", cfg.DatabasePath)
	assert.Equal(t, "./backups", cfg.BackupPath)
	assert.Equal(t, "0 3 * * *", cfg.BackupCron)
	assert.Equal(t, time.Duration(0), cfg.SimulatedLatency)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SIMULATED_LATENCY_MS", "250")
	t.Setenv("DATABASE_PATH", "/tmp/clinic.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, 250*time.Millisecond, cfg.SimulatedLatency)
	assert.Equal(t, "/tmp/clinic.db", cfg.DatabasePath)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	_, err := Load()
	assert.Error(t, err)
}
