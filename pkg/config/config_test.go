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

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "myteam-web", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:3000", cfg.HTTP.Addr())
	assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout())
	assert.False(t, cfg.Session.CookieSecure)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("HTTP_PORT", "8081")
	t.Setenv("API_BASE_URL", "https://api.myteam.example")
	t.Setenv("API_TIMEOUT_SECONDS", "5")
	t.Setenv("COOKIE_SECURE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, 8081, cfg.HTTP.Port)
	assert.Equal(t, "https://api.myteam.example", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout())
	assert.True(t, cfg.Session.CookieSecure)
}
