package config

import (
	"os"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T) *Manager {
	t.Helper()

	viper.Reset()
	m, err := NewManager()
	require.NoError(t, err)
	t.Cleanup(viper.Reset)
	return m
}

func TestNewManager_Defaults(t *testing.T) {
	m := newManager(t)
	cfg := m.GetConfig()

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "data/users.db", cfg.Database.SQLitePath)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 15*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 1024, cfg.Cache.MaxEntries)
	assert.Equal(t, "models/test_results_model.json", cfg.Model.TestResultsPath)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestNewManager_EnvironmentOverrides(t *testing.T) {
	os.Setenv("NEUROLAB_SERVER_PORT", "9090")
	os.Setenv("NEUROLAB_AUTH_SECRET", "env-secret")
	os.Setenv("NEUROLAB_DATABASE_DRIVER", "postgres")
	os.Setenv("NEUROLAB_LOGGING_LEVEL", "debug")
	defer func() {
		os.Unsetenv("NEUROLAB_SERVER_PORT")
		os.Unsetenv("NEUROLAB_AUTH_SECRET")
		os.Unsetenv("NEUROLAB_DATABASE_DRIVER")
		os.Unsetenv("NEUROLAB_LOGGING_LEVEL")
	}()

	m := newManager(t)
	cfg := m.GetConfig()

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "env-secret", cfg.Auth.Secret)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestValidate_RequiresSecret(t *testing.T) {
	m := newManager(t)

	err := m.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth secret")
}

func TestValidate_WithSecret(t *testing.T) {
	os.Setenv("NEUROLAB_AUTH_SECRET", "test-secret")
	defer os.Unsetenv("NEUROLAB_AUTH_SECRET")

	m := newManager(t)
	assert.NoError(t, m.Validate())
}

func TestValidate_BadPort(t *testing.T) {
	os.Setenv("NEUROLAB_AUTH_SECRET", "test-secret")
	defer os.Unsetenv("NEUROLAB_AUTH_SECRET")

	m := newManager(t)
	m.config.Server.Port = 0

	err := m.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server port")
}

func TestValidate_BadDriver(t *testing.T) {
	os.Setenv("NEUROLAB_AUTH_SECRET", "test-secret")
	defer os.Unsetenv("NEUROLAB_AUTH_SECRET")

	m := newManager(t)
	m.config.Database.Driver = "oracle"

	err := m.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestValidate_PostgresRequiresHost(t *testing.T) {
	os.Setenv("NEUROLAB_AUTH_SECRET", "test-secret")
	defer os.Unsetenv("NEUROLAB_AUTH_SECRET")

	m := newManager(t)
	m.config.Database.Driver = "postgres"
	m.config.Database.Host = ""

	err := m.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database host")
}

func TestValidate_BadLogLevel(t *testing.T) {
	os.Setenv("NEUROLAB_AUTH_SECRET", "test-secret")
	defer os.Unsetenv("NEUROLAB_AUTH_SECRET")

	m := newManager(t)
	m.config.Logging.Level = "verbose"

	err := m.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging level")
}

func TestValidate_RateLimitBounds(t *testing.T) {
	os.Setenv("NEUROLAB_AUTH_SECRET", "test-secret")
	defer os.Unsetenv("NEUROLAB_AUTH_SECRET")

	m := newManager(t)
	m.config.RateLimit.Rate = 0

	err := m.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit")
}
