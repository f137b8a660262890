package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds application level configuration loaded from environment, an
// optional .env file and flags.
type Config struct {
	RunAddress          string
	DatabaseURI         string
	RedisURL            string
	TokenSecret         string
	TokenTTL            time.Duration
	WebhookURL          string
	DefaultTaxRate      decimal.Decimal
	CurrencyScale       int32
	DispatchWorkers     int
	DispatchMaxAttempts int
	ShutdownTimeout     time.Duration
	LogLevel            string
}

const (
	defaultRunAddress          = ":8080"
	defaultTokenSecret         = "change-me-in-production"
	defaultTokenTTL            = 24 * time.Hour
	defaultTaxRate             = "9"
	defaultCurrencyScale       = 0
	defaultDispatchWorkers     = 4
	defaultDispatchMaxAttempts = 5
	defaultShutdownTimeout     = 10 * time.Second
	defaultLogLevel            = "info"
	defaultEnvFile             = ".env"
)

// Load parses configuration. OS environment variables take precedence over
// the .env file named by ENV_FILE, and flags take precedence over both.
func Load() (*Config, error) {
	path := getString(os.LookupEnv, "ENV_FILE", defaultEnvFile)
	fileEnv, err := readEnvFile(path)
	if err != nil {
		return nil, err
	}
	return load(os.Args[1:], chain(os.LookupEnv, mapLookup(fileEnv)))
}

// UsesDefaultSecret reports whether tokens would be signed with the
// development secret.
func (c *Config) UsesDefaultSecret() bool {
	return c.TokenSecret == defaultTokenSecret
}

type envLookup func(string) (string, bool)

func readEnvFile(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}
	return values, nil
}

func mapLookup(values map[string]string) envLookup {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func chain(lookups ...envLookup) envLookup {
	return func(key string) (string, bool) {
		for _, lookup := range lookups {
			if v, ok := lookup(key); ok && v != "" {
				return v, true
			}
		}
		return "", false
	}
}

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:          getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:         getString(lookup, "DATABASE_URI", ""),
		RedisURL:            getString(lookup, "REDIS_URL", ""),
		TokenSecret:         getString(lookup, "TOKEN_SECRET", defaultTokenSecret),
		TokenTTL:            getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		WebhookURL:          getString(lookup, "NOTIFY_WEBHOOK_URL", ""),
		CurrencyScale:       int32(getInt(lookup, "CURRENCY_SCALE", defaultCurrencyScale)),
		DispatchWorkers:     getInt(lookup, "DISPATCH_WORKERS", defaultDispatchWorkers),
		DispatchMaxAttempts: getInt(lookup, "DISPATCH_MAX_ATTEMPTS", defaultDispatchMaxAttempts),
		ShutdownTimeout:     getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		LogLevel:            getString(lookup, "LOG_LEVEL", defaultLogLevel),
	}

	flags := flag.NewFlagSet("quoteflow", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var (
		taxRateStr         = getString(lookup, "DEFAULT_TAX_RATE", defaultTaxRate)
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		scale              = int(cfg.CurrencyScale)
	)

	flags.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	flags.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	flags.StringVar(&cfg.RedisURL, "redis", cfg.RedisURL, "Redis URL for the event queue")
	flags.StringVar(&cfg.WebhookURL, "webhook", cfg.WebhookURL, "Notification webhook URL")
	flags.StringVar(&cfg.TokenSecret, "token-secret", cfg.TokenSecret, "Secret for signing actor tokens")
	flags.StringVar(&taxRateStr, "tax-rate", taxRateStr, "Default tax rate in percent")
	flags.IntVar(&scale, "currency-scale", scale, "Decimal places of money amounts")
	flags.IntVar(&cfg.DispatchWorkers, "dispatch-workers", cfg.DispatchWorkers, "Number of notification workers")
	flags.IntVar(&cfg.DispatchMaxAttempts, "dispatch-attempts", cfg.DispatchMaxAttempts, "Delivery attempts per event")
	flags.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")

	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.DefaultTaxRate, err = decimal.NewFromString(strings.TrimSpace(taxRateStr)); err != nil {
		return nil, fmt.Errorf("invalid default tax rate: %w", err)
	}
	if cfg.DefaultTaxRate.IsNegative() || cfg.DefaultTaxRate.GreaterThan(decimal.NewFromInt(100)) {
		return nil, fmt.Errorf("default tax rate must be between 0 and 100")
	}

	if scale < 0 || scale > 4 {
		return nil, fmt.Errorf("currency scale must be between 0 and 4")
	}
	cfg.CurrencyScale = int32(scale)

	if secretFile, ok := lookup("TOKEN_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read token secret file: %w", err)
		}
		cfg.TokenSecret = strings.TrimSpace(string(content))
	}

	if cfg.DispatchWorkers <= 0 {
		cfg.DispatchWorkers = defaultDispatchWorkers
	}

	if cfg.DispatchMaxAttempts <= 0 {
		cfg.DispatchMaxAttempts = defaultDispatchMaxAttempts
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
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

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
