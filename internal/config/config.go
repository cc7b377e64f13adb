package config

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const PROD_STRING = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction         bool
	ProdOrigins          []string
	HTTPAddr             string
	DBDSN                string
	JWTSecret            string
	JWTAccessTokenTTL    time.Duration
	BcryptCost           int
	LogLevel             string
	MigrateOnStart       bool
	DashboardRecentLimit int
}

// Load loads configuration from .env (optional) and environment variables.
// Environment variables always win over .env values.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	return FromViper(newViper())
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("PROD_ORIGINS", "")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("JWT_ACCESS_TOKEN_TTL", "15m")
	v.SetDefault("BCRYPT_COST", 12)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MIGRATE_ON_START", true)
	v.SetDefault("DASHBOARD_RECENT_LIMIT", 20)

	cfg := &Config{
		IsProduction:   v.GetString("APP_ENV") == PROD_STRING,
		ProdOrigins:    splitTrimmed(v.GetString("PROD_ORIGINS")),
		HTTPAddr:       v.GetString("HTTP_ADDR"),
		DBDSN:          v.GetString("DB_DSN"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		MigrateOnStart: v.GetBool("MIGRATE_ON_START"),
	}

	// Database DSN is required
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	// JWT secret is required for signing tokens
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	// JWT access token TTL, parse as time.Duration (e.g. "15m", "1h").
	ttl, err := time.ParseDuration(v.GetString("JWT_ACCESS_TOKEN_TTL"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_TTL: %w", err)
	}
	cfg.JWTAccessTokenTTL = ttl

	cfg.BcryptCost, err = getInt(v, "BCRYPT_COST")
	if err != nil {
		return nil, err
	}

	cfg.DashboardRecentLimit, err = getInt(v, "DASHBOARD_RECENT_LIMIT")
	if err != nil {
		return nil, err
	}
	if cfg.DashboardRecentLimit < 1 {
		return nil, fmt.Errorf("DASHBOARD_RECENT_LIMIT must be positive")
	}

	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	return v
}

// getInt reads an integer key, rejecting values that are set but not integers.
func getInt(v *viper.Viper, key string) (int, error) {
	raw := strings.TrimSpace(v.GetString(key))
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, raw, err)
	}
	return n, nil
}

func splitTrimmed(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
