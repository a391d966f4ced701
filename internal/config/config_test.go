package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"vidshare/internal/config"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)

	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 15*24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "videos", cfg.MinioBucket)
	assert.Empty(t, cfg.RabbitMQURL)
	assert.Empty(t, cfg.RedisAddr)
}

func TestFromViper_EnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", ":9090")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("REDIS_DB", "3")

	v := viper.New()
	config.SetDefaults(v)
	v.AutomaticEnv()

	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.AppPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 3, cfg.RedisDB)
}

func TestFromViper_Validation(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)
	v.Set("DB_DRIVER", "oracle")
	_, err := config.FromViper(v)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported DB_DRIVER")

	v = viper.New()
	config.SetDefaults(v)
	v.Set("JWT_SECRET", "")
	_, err = config.FromViper(v)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_InvalidConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("APP_PORT: [unclosed"), 0o600))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	_, err = config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
	assert.NotEqual(t, err, errors.Cause(err))
}
