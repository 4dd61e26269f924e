// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"pokecard_backend/internal/platform/db"
	"pokecard_backend/internal/platform/redis"
)

// EnvProduction is the ENVIRONMENT value that turns the demo features off by default.
const EnvProduction = "production"

// ErrMissingJWTSecret is returned by Load when JWT_SECRET is empty.
var ErrMissingJWTSecret = errors.New("JWT_SECRET is required")

// Features toggles the demo affordances.
type Features struct {
	// SelfPromote mounts POST /auth/self-promote.
	SelfPromote bool
	// AdminSignup lets an admin token grant isAdmin at registration.
	AdminSignup bool
	// CollectorCatalogWrite lets non-admins create catalog entries while adding cards.
	CollectorCatalogWrite bool
}

// Config is the process configuration.
type Config struct {
	Port            string
	Environment     string
	JWTSecret       string
	JWTExpiry       time.Duration
	CatalogCacheTTL time.Duration
	AssetsDir       string
	AllowedOrigins  []string
	// PasswordMinLength is the minimum password length in characters. 1 only requires a password.
	PasswordMinLength int
	Features          Features
	DB                db.Config
	Redis             redis.Config
}

// LoadDotEnv loads path into the environment when the file exists.
// Variables already set win over the file.
func LoadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil {
		slog.Info(".env not found; using system environment variables", "path", path)
	}
}

// Load reads the configuration. A missing JWT_SECRET is an error.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getenv("PORT", "8080"),
		Environment: getenv("ENVIRONMENT", "development"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		AssetsDir:   os.Getenv("ASSETS_DIR"),
		DB:          db.LoadConfigFromEnv(),
		Redis:       redis.LoadConfigFromEnv(),
	}
	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}

	var err error
	if cfg.JWTExpiry, err = duration("JWT_EXPIRY", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.CatalogCacheTTL, err = duration("CATALOG_CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.PasswordMinLength, err = positiveInt("PASSWORD_MIN_LENGTH", 8); err != nil {
		return nil, err
	}
	cfg.AllowedOrigins = list("CORS_ALLOWED_ORIGINS")

	demo := cfg.Environment != EnvProduction
	if cfg.Features.SelfPromote, err = flag("FEATURE_SELF_PROMOTE", demo); err != nil {
		return nil, err
	}
	if cfg.Features.AdminSignup, err = flag("FEATURE_ADMIN_SIGNUP", demo); err != nil {
		return nil, err
	}
	if cfg.Features.CollectorCatalogWrite, err = flag("FEATURE_COLLECTOR_CATALOG_WRITE", demo); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func duration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive duration", key, v)
	}
	return d, nil
}

func positiveInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive integer", key, v)
	}
	return n, nil
}

func flag(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}

// list splits a comma separated variable, dropping blanks.
func list(key string) []string {
	var out []string
	for _, s := range strings.Split(os.Getenv(key), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
