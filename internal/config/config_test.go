package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseViper() *viper.Viper {
	v := viper.New()
	v.Set("DB_DSN", "postgres://localhost/test")
	v.Set("JWT_SECRET", "secret")
	return v
}

func TestFromViper(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := FromViper(baseViper())
		require.NoError(t, err)

		assert.False(t, cfg.IsProduction)
		assert.Equal(t, ":8080", cfg.HTTPAddr)
		assert.Equal(t, 15*time.Minute, cfg.JWTAccessTokenTTL)
		assert.Equal(t, 12, cfg.BcryptCost)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.True(t, cfg.MigrateOnStart)
		assert.Equal(t, 20, cfg.DashboardRecentLimit)
		assert.Empty(t, cfg.ProdOrigins)
	})

	t.Run("Overrides", func(t *testing.T) {
		v := baseViper()
		v.Set("APP_ENV", "prod")
		v.Set("PROD_ORIGINS", "https://a.example, https://b.example ,")
		v.Set("JWT_ACCESS_TOKEN_TTL", "1h")
		v.Set("BCRYPT_COST", "4")
		v.Set("MIGRATE_ON_START", "false")
		v.Set("DASHBOARD_RECENT_LIMIT", "5")

		cfg, err := FromViper(v)
		require.NoError(t, err)

		assert.True(t, cfg.IsProduction)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.ProdOrigins)
		assert.Equal(t, time.Hour, cfg.JWTAccessTokenTTL)
		assert.Equal(t, 4, cfg.BcryptCost)
		assert.False(t, cfg.MigrateOnStart)
		assert.Equal(t, 5, cfg.DashboardRecentLimit)
	})

	t.Run("Missing DSN", func(t *testing.T) {
		v := viper.New()
		v.Set("JWT_SECRET", "secret")
		_, err := FromViper(v)
		assert.ErrorContains(t, err, "DB_DSN")
	})

	t.Run("Missing JWT Secret", func(t *testing.T) {
		v := viper.New()
		v.Set("DB_DSN", "postgres://localhost/test")
		_, err := FromViper(v)
		assert.ErrorContains(t, err, "JWT_SECRET")
	})

	t.Run("Invalid Values", func(t *testing.T) {
		v := baseViper()
		v.Set("JWT_ACCESS_TOKEN_TTL", "soon")
		_, err := FromViper(v)
		assert.ErrorContains(t, err, "JWT_ACCESS_TOKEN_TTL")

		v = baseViper()
		v.Set("BCRYPT_COST", "twelve")
		_, err = FromViper(v)
		assert.ErrorContains(t, err, "BCRYPT_COST")

		v = baseViper()
		v.Set("DASHBOARD_RECENT_LIMIT", "0")
		_, err = FromViper(v)
		assert.ErrorContains(t, err, "DASHBOARD_RECENT_LIMIT")
	})
}
