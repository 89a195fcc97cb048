package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultPort            = 8000
	DefaultRedisURL        = "redis://redis:6379"
	DefaultConnectTimeout  = 10 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)

// Root route variants accepted in ROOT_FORMAT.
const (
	RootFormatJSON = "json"
	RootFormatText = "text"
)

// Config holds everything the liveness service reads from its environment.
type Config struct {
	Port            int
	LogLevel        slog.Level
	RootFormat      string
	StartupChecks   bool
	RedisURL        string
	Database        DatabaseConfig
	ConnectTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig describes the PostgreSQL instance checked at startup.
type DatabaseConfig struct {
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	SSLMode  string
}

// Load reads configuration from environment variables.
//
// PORT never fails to load: a missing, non-numeric or out of range value
// falls back to DefaultPort.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            ParsePort(os.Getenv("PORT")),
		LogLevel:        slog.LevelInfo,
		RootFormat:      RootFormatJSON,
		RedisURL:        DefaultRedisURL,
		ConnectTimeout:  DefaultConnectTimeout,
		ShutdownTimeout: DefaultShutdownTimeout,
		Database: DatabaseConfig{
			Host:     "db",
			Port:     5432,
			Name:     "postgres",
			User:     "postgres",
			Password: "postgres",
			SSLMode:  "disable",
		},
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		level, err := ParseLogLevel(v)
		if err != nil {
			return nil, err
		}
		cfg.LogLevel = level
	}

	if v := os.Getenv("ROOT_FORMAT"); v != "" {
		switch f := strings.ToLower(strings.TrimSpace(v)); f {
		case RootFormatJSON, RootFormatText:
			cfg.RootFormat = f
		default:
			return nil, fmt.Errorf("invalid ROOT_FORMAT value %q: must be json or text", v)
		}
	}

	if v := os.Getenv("STARTUP_CHECKS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid STARTUP_CHECKS value %q: %w", v, err)
		}
		cfg.StartupChecks = b
	}

	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}

	if v := os.Getenv("PGHOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("PGPORT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 65535 {
			return nil, fmt.Errorf("invalid PGPORT value %q: must be a port number", v)
		}
		cfg.Database.Port = n
	}
	if v := os.Getenv("PGDATABASE"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("PGUSER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("PGPASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("PGSSLMODE"); v != "" {
		cfg.Database.SSLMode = v
	}

	if v := os.Getenv("CONNECT_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid CONNECT_TIMEOUT value %q: must be a positive duration", v)
		}
		cfg.ConnectTimeout = d
	}

	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT value %q: must be a positive duration", v)
		}
		cfg.ShutdownTimeout = d
	}

	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// ParsePort returns the port in v, or DefaultPort when v is not a usable port.
func ParsePort(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 || n > 65535 {
		return DefaultPort
	}
	return n
}

// ConnString renders a keyword/value connection string understood by pgx.
func (d DatabaseConfig) ConnString() string {
	parts := []string{
		"host=" + quote(d.Host),
		"port=" + strconv.Itoa(d.Port),
		"dbname=" + quote(d.Name),
		"user=" + quote(d.User),
	}
	if d.Password != "" {
		parts = append(parts, "password="+quote(d.Password))
	}
	if d.SSLMode != "" {
		parts = append(parts, "sslmode="+quote(d.SSLMode))
	}
	return strings.Join(parts, " ")
}

// quote escapes a keyword/value setting when it contains spaces or quotes.
func quote(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

// ParseLogLevel maps a LOG_LEVEL string onto a slog level.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL value %q: must be debug, info, warn, or error", s)
	}
}
