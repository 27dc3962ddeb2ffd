package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "meals-service", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, "meals-db", cfg.Mongo.Database)
	assert.True(t, cfg.Mongo.EnsureIndexes)
	assert.Equal(t, "127.0.0.1:6379", cfg.Redis.Addr)
	assert.Equal(t, 30*time.Minute, cfg.Auth.SessionTTL())
	assert.Equal(t, 10, cfg.Auth.LoginAttemptLimit)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9999")
	t.Setenv("AUTH_SESSION_TTL_MINUTES", "5")
	t.Setenv("MONGO_DATABASE", "meals-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9999", cfg.App.Addr())
	assert.Equal(t, 5*time.Minute, cfg.Auth.SessionTTL())
	assert.Equal(t, "meals-test", cfg.Mongo.Database)
}

func TestSessionTTLFallsBackWhenUnset(t *testing.T) {
	a := AuthConfig{SessionTTLMinutes: 0}
	assert.Equal(t, 30*time.Minute, a.SessionTTL())
}
