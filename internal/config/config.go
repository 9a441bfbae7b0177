package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	DBDriver string
	DBDSN    string

	ServerPort    string
	SessionSecret string
	// SessionMaxAge is the session lifetime in seconds.
	SessionMaxAge int

	// ExportToken guards the database download; empty disables it.
	ExportToken  string
	RegisterPath string

	AdminUsername string
	AdminPassword string

	LogLevel string
	LogJSON  bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBDriver:      strings.ToLower(strings.TrimSpace(os.Getenv("DB_DRIVER"))),
		DBDSN:         os.Getenv("DB_DSN"),
		ServerPort:    os.Getenv("SERVER_PORT"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		ExportToken:   os.Getenv("EXPORT_TOKEN"),
		RegisterPath:  strings.TrimSpace(os.Getenv("REGISTER_PATH")),
		AdminUsername: strings.TrimSpace(os.Getenv("ADMIN_USERNAME")),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		LogJSON:       os.Getenv("LOG_JSON") == "true" || os.Getenv("LOG_JSON") == "1",
	}

	if cfg.DBDriver == "" {
		cfg.DBDriver = DriverSQLite
	}
	if cfg.DBDriver != DriverSQLite && cfg.DBDriver != DriverPostgres {
		return nil, errors.New("DB_DRIVER must be sqlite or postgres")
	}
	if cfg.DBDSN == "" {
		if cfg.DBDriver == DriverPostgres {
			return nil, errors.New("DB_DSN is not set")
		}
		cfg.DBDSN = "./data/timetracker.sqlite"
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = "3000"
	}
	if cfg.SessionSecret == "" {
		return nil, errors.New("SESSION_SECRET is not set")
	}

	cfg.SessionMaxAge = 8 * 60 * 60
	if v := os.Getenv("SESSION_MAX_AGE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, errors.New("SESSION_MAX_AGE must be a positive number of seconds")
		}
		cfg.SessionMaxAge = n
	}

	if cfg.RegisterPath == "" {
		cfg.RegisterPath = "/register"
	}
	if !strings.HasPrefix(cfg.RegisterPath, "/") {
		cfg.RegisterPath = "/" + cfg.RegisterPath
	}

	return cfg, nil
}
