// Package db opens the gorm connection shared by all repositories.
package db

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	gmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	// DriverMySQL selects gorm.io/driver/mysql.
	DriverMySQL = "mysql"
	// DriverPostgres selects gorm.io/driver/postgres.
	DriverPostgres = "postgres"
	// DriverSQLite selects gorm.io/driver/sqlite.
	DriverSQLite = "sqlite"

	connectTimeout = 60 * time.Second
	retryInterval  = 3 * time.Second
)

// Config holds database connection settings.
type Config struct {
	Driver       string
	User         string
	Password     string
	Name         string
	Host         string
	Port         string
	SSLMode      string
	InstanceName string // Cloud SQL instance; takes precedence over Host/Port
	Path         string // sqlite file path
	Migrate      bool
}

// LoadConfigFromEnv reads the DB_* variables.
func LoadConfigFromEnv() Config {
	driver := os.Getenv("DB_DRIVER")
	if driver == "" {
		driver = DriverMySQL
	}
	path := os.Getenv("DB_PATH")
	if path == "" {
		path = "./pokecard.db"
	}
	sslMode := os.Getenv("DB_SSLMODE")
	if sslMode == "" {
		sslMode = "disable"
	}
	return Config{
		Driver:       driver,
		User:         os.Getenv("DB_USER"),
		Password:     os.Getenv("DB_PASSWORD"),
		Name:         os.Getenv("DB_NAME"),
		Host:         os.Getenv("DB_HOST"),
		Port:         os.Getenv("DB_PORT"),
		SSLMode:      sslMode,
		InstanceName: os.Getenv("INSTANCE_CONNECTION_NAME"),
		Path:         path,
		Migrate:      os.Getenv("RUN_MIGRATIONS") == "true",
	}
}

// BuildDSN returns the MySQL DSN for cfg.
func BuildDSN(cfg Config) string {
	if cfg.InstanceName != "" {
		return fmt.Sprintf("%s:%s@unix(/cloudsql/%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
			cfg.User, cfg.Password, cfg.InstanceName, cfg.Name)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)
}

// BuildPostgresDSN returns the key/value DSN understood by pgx.
func BuildPostgresDSN(cfg Config) string {
	host := cfg.Host
	if cfg.InstanceName != "" {
		host = "/cloudsql/" + cfg.InstanceName
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
}

// Opener opens a gorm connection for a DSN.
type Opener func(dsn string) (*gorm.DB, error)

// OpenerFor returns the DSN and Opener for the configured driver.
func OpenerFor(cfg Config) (string, Opener, error) {
	gcfg := &gorm.Config{TranslateError: true}
	switch cfg.Driver {
	case DriverMySQL:
		return BuildDSN(cfg), func(dsn string) (*gorm.DB, error) {
			return gorm.Open(gmysql.Open(dsn), gcfg)
		}, nil
	case DriverPostgres:
		return BuildPostgresDSN(cfg), func(dsn string) (*gorm.DB, error) {
			return gorm.Open(postgres.Open(dsn), gcfg)
		}, nil
	case DriverSQLite:
		return cfg.Path, func(dsn string) (*gorm.DB, error) {
			return gorm.Open(sqlite.Open(dsn), gcfg)
		}, nil
	default:
		return "", nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
}

// ConnectWithRetry calls opener until it succeeds or timeout elapses.
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err)
		time.Sleep(retryInterval)
	}
}

// Open connects to the configured database and runs AutoMigrate for models
// when cfg.Migrate is set. sqlite is always migrated. On MySQL, migration also
// gives CaseSensitive columns a binary collation.
func Open(cfg Config, models ...any) (*gorm.DB, error) {
	dsn, opener, err := OpenerFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := ConnectWithRetry(dsn, connectTimeout, opener)
	if err != nil {
		return nil, err
	}
	slog.Info("database connected", "driver", cfg.Driver)

	if cfg.Migrate || cfg.Driver == DriverSQLite {
		if err := db.AutoMigrate(models...); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
		if err := ApplyBinaryCollation(db, models...); err != nil {
			return nil, err
		}
	}
	return db, nil
}
