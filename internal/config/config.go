package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultDSN         = "host=localhost user=postgres password=postgres dbname=realtor port=5432 sslmode=disable"
	defaultCORSOrigins = "http://localhost:5173"
	minSecretLength    = 32
)

type Config struct {
	HTTPPort       string `toml:"http_port"`
	DatabaseDriver string `toml:"database_driver"`
	DatabaseDSN    string `toml:"database_dsn"`
	JWTSecret      string `toml:"jwt_secret"`
	CORSOrigins    string `toml:"cors_allowed_origins"`
	LogFormat      string `toml:"log_format"` // json | text
	LogLevel       string `toml:"log_level"`
}

// Load builds the configuration from defaults, the optional TOML file at
// path, and the environment (including a .env file), in that order.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:       "8080",
		DatabaseDriver: DriverPostgres,
		DatabaseDSN:    defaultDSN,
		CORSOrigins:    defaultCORSOrigins,
		LogFormat:      "json",
		LogLevel:       "info",
	}

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	cfg.HTTPPort = getEnv("HTTP_PORT", cfg.HTTPPort)
	cfg.DatabaseDriver = getEnv("DATABASE_DRIVER", cfg.DatabaseDriver)
	cfg.DatabaseDSN = getEnv("DATABASE_DSN", cfg.DatabaseDSN)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.CORSOrigins = getEnv("CORS_ALLOWED_ORIGINS", cfg.CORSOrigins)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	if len(c.JWTSecret) < minSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", minSecretLength)
	}
	switch c.DatabaseDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unknown DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	for _, origin := range c.AllowedOrigins() {
		if err := validateOrigin(origin); err != nil {
			return fmt.Errorf("CORS_ALLOWED_ORIGINS: %w", err)
		}
	}
	return nil
}

// AllowedOrigins splits CORSOrigins on commas.
func (c *Config) AllowedOrigins() []string {
	origins := strings.Split(c.CORSOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return origins
}

// validateOrigin accepts "*" or scheme://host[:port], optionally with a
// "*." subdomain wildcard, as the cors middleware does.
func validateOrigin(origin string) error {
	if origin == "*" {
		return nil
	}
	u, err := url.Parse(strings.Replace(origin, "://*.", "://", 1))
	if err != nil {
		return fmt.Errorf("invalid origin %q: %w", origin, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("origin %q must start with http:// or https://", origin)
	}
	if u.Host == "" || (u.Path != "" && u.Path != "/") || u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("origin %q must be scheme://host[:port]", origin)
	}
	return nil
}

// Warn logs settings that are still at their development defaults.
func (c *Config) Warn() {
	if c.DatabaseDriver == DriverPostgres && c.DatabaseDSN == defaultDSN {
		slog.Warn("DATABASE_DSN is using the default value, set your own Postgres connection for production")
	}
	if c.CORSOrigins == defaultCORSOrigins {
		slog.Warn("CORS_ALLOWED_ORIGINS is using the default value, set your own domain for production")
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
