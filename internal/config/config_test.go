package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.GoEnv)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 2*time.Hour, cfg.MountTTL)
	assert.Equal(t, 4, cfg.WriterWorkers)
	assert.True(t, cfg.IsDevelopment())
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("GO_ENV", "production")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("MOUNT_TTL", "30m")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, 30*time.Minute, cfg.MountTTL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
	assert.True(t, cfg.IsProduction())
}

func TestValidate_Rejections(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	cfg.JWTSecret = "short"
	assert.Error(t, cfg.Validate())

	cfg.JWTSecret = testSecret
	cfg.HTTPPort = 0
	assert.Error(t, cfg.Validate())

	cfg.HTTPPort = 8080
	cfg.LogLevel = "verbose"
	assert.Error(t, cfg.Validate())
}
