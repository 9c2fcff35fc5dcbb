package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress        string
	DatabaseURI       string
	LedgerAddress     string
	RefreshInterval   time.Duration
	LedgerConcurrency int
	LedgerRPS         float64
	ShutdownTimeout   time.Duration
	AllowedOrigins    []string
	LogLevel          string
}

// Args are the command line arguments left after the subcommand name.
type Args []string

const (
	defaultRunAddress      = ":8080"
	defaultRefreshInterval = 30 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultLogLevel        = "info"
	defaultEnvFile         = ".env"
)

// Load reads an optional .env file, then parses environment variables and flags.
func Load(args Args) (*Config, error) {
	if err := loadEnvFile(os.Getenv("ENV_FILE")); err != nil {
		return nil, err
	}
	return load(args, os.LookupEnv)
}

// loadEnvFile populates unset environment variables from path; a missing file is ignored.
func loadEnvFile(path string) error {
	if path == "" {
		path = defaultEnvFile
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:        getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:       getString(lookup, "DATABASE_URI", ""),
		LedgerAddress:     getString(lookup, "LEDGER_ADDRESS", ""),
		RefreshInterval:   getDuration(lookup, "REFRESH_INTERVAL", defaultRefreshInterval),
		LedgerConcurrency: getInt(lookup, "LEDGER_MAX_CONCURRENCY", 0),
		LedgerRPS:         getFloat(lookup, "LEDGER_RPS", 0),
		ShutdownTimeout:   getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		AllowedOrigins:    splitList(getString(lookup, "CORS_ALLOWED_ORIGINS", "")),
		LogLevel:          getString(lookup, "LOG_LEVEL", defaultLogLevel),
	}

	fs := flag.NewFlagSet("factra", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		refreshIntervalStr = cfg.RefreshInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		originsStr         = strings.Join(cfg.AllowedOrigins, ",")
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.LedgerAddress, "l", cfg.LedgerAddress, "Ledger gateway base URL")
	fs.StringVar(&refreshIntervalStr, "refresh-interval", refreshIntervalStr, "Interval between snapshot refreshes")
	fs.IntVar(&cfg.LedgerConcurrency, "ledger-concurrency", cfg.LedgerConcurrency, "Maximum concurrent ledger reads, 0 for one per invoice")
	fs.Float64Var(&cfg.LedgerRPS, "ledger-rps", cfg.LedgerRPS, "Ledger requests per second, 0 for unlimited")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&originsStr, "cors-origins", originsStr, "Comma separated list of allowed CORS origins")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.RefreshInterval, err = time.ParseDuration(refreshIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid refresh interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	cfg.AllowedOrigins = splitList(originsStr)

	if cfg.LedgerConcurrency < 0 {
		cfg.LedgerConcurrency = 0
	}

	if cfg.LedgerRPS < 0 {
		cfg.LedgerRPS = 0
	}

	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = defaultRefreshInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.LedgerAddress == "" {
		return nil, fmt.Errorf("ledger address must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(lookup envLookup, key string, def float64) float64 {
	if v, ok := lookup(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
