package config

import (
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
	RunAddress      string
	DatabaseURI     string
	RedisURL        string
	LogLevel        string
	JWTSecret       string
	TokenTTL        time.Duration
	OTPTTL          time.Duration
	OTPCooldown     time.Duration
	OTPMaxAttempts  int
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
	SnowflakeNode   int64

	SMS      SMSConfig
	Geocoder GeocoderConfig
	Outbox   OutboxConfig
}

// SMSConfig configures the SMS gateway client.
type SMSConfig struct {
	URL      string
	Username string
	APIKey   string
	Sender   string
	Timeout  time.Duration
}

// GeocoderConfig configures reverse geocoding.
type GeocoderConfig struct {
	URL       string
	UserAgent string
	Timeout   time.Duration
}

// OutboxConfig configures the side effect dispatcher.
type OutboxConfig struct {
	PollInterval   time.Duration
	BatchSize      int
	WorkerPoolSize int
	MaxAttempts    int
	Retention      time.Duration
}

const (
	defaultRunAddress         = ":8080"
	defaultJWTSecret          = "change-me-in-production"
	defaultTokenTTL           = 24 * time.Hour
	defaultOTPTTL             = 10 * time.Minute
	defaultOTPCooldown        = time.Minute
	defaultOTPMaxAttempts     = 5
	defaultShutdownTimeout    = 10 * time.Second
	defaultSnowflakeNode      = 1
	defaultSMSURL             = "https://www.msegat.com/gw/sendsms.php"
	defaultSMSTimeout         = 10 * time.Second
	defaultGeocoderURL        = "https://nominatim.openstreetmap.org"
	defaultGeocoderUserAgent  = "procurement-backend"
	defaultGeocoderTimeout    = 5 * time.Second
	defaultOutboxPollInterval = time.Second
	defaultOutboxBatchSize    = 32
	defaultWorkerPoolSize     = 4
	defaultOutboxMaxAttempts  = 5
	defaultOutboxRetention    = 24 * time.Hour
	defaultAllowedOrigins     = "http://localhost:5173"
)

// Load parses configuration from an optional .env file, environment variables and flags.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		RedisURL:        getString(lookup, "REDIS_URL", ""),
		LogLevel:        getString(lookup, "LOG_LEVEL", "info"),
		JWTSecret:       getString(lookup, "JWT_SECRET", defaultJWTSecret),
		TokenTTL:        getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		OTPTTL:          getDuration(lookup, "OTP_TTL", defaultOTPTTL),
		OTPCooldown:     getDuration(lookup, "OTP_COOLDOWN", defaultOTPCooldown),
		OTPMaxAttempts:  getInt(lookup, "OTP_MAX_ATTEMPTS", defaultOTPMaxAttempts),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		SnowflakeNode:   int64(getInt(lookup, "SNOWFLAKE_NODE", defaultSnowflakeNode)),
		SMS: SMSConfig{
			URL:      getString(lookup, "SMS_API_URL", defaultSMSURL),
			Username: getString(lookup, "SMS_USERNAME", ""),
			APIKey:   getString(lookup, "SMS_API_KEY", ""),
			Sender:   getString(lookup, "SMS_SENDER", ""),
			Timeout:  getDuration(lookup, "SMS_TIMEOUT", defaultSMSTimeout),
		},
		Geocoder: GeocoderConfig{
			URL:       getString(lookup, "GEOCODER_URL", defaultGeocoderURL),
			UserAgent: getString(lookup, "GEOCODER_USER_AGENT", defaultGeocoderUserAgent),
			Timeout:   getDuration(lookup, "GEOCODER_TIMEOUT", defaultGeocoderTimeout),
		},
		Outbox: OutboxConfig{
			PollInterval:   getDuration(lookup, "OUTBOX_POLL_INTERVAL", defaultOutboxPollInterval),
			BatchSize:      getInt(lookup, "OUTBOX_BATCH_SIZE", defaultOutboxBatchSize),
			WorkerPoolSize: getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
			MaxAttempts:    getInt(lookup, "OUTBOX_MAX_ATTEMPTS", defaultOutboxMaxAttempts),
			Retention:      getDuration(lookup, "OUTBOX_RETENTION", defaultOutboxRetention),
		},
	}

	fs := flag.NewFlagSet("procurement", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		pollIntervalStr    = cfg.Outbox.PollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		originsStr         = getString(lookup, "ALLOWED_ORIGINS", defaultAllowedOrigins)
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.RedisURL, "redis", cfg.RedisURL, "Redis URL for OTP throttling")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.IntVar(&cfg.Outbox.WorkerPoolSize, "worker-pool", cfg.Outbox.WorkerPoolSize, "Number of concurrent outbox workers")
	fs.IntVar(&cfg.Outbox.BatchSize, "outbox-batch", cfg.Outbox.BatchSize, "Maximum outbox messages per poll")
	fs.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between outbox polls")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&originsStr, "origins", originsStr, "Comma separated CORS origins")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.Outbox.PollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	cfg.AllowedOrigins = splitList(originsStr)

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	normalize(cfg)

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret must not be empty")
	}

	return cfg, nil
}

func normalize(cfg *Config) {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	if cfg.OTPTTL <= 0 {
		cfg.OTPTTL = defaultOTPTTL
	}
	if cfg.OTPCooldown < 0 {
		cfg.OTPCooldown = defaultOTPCooldown
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
	if cfg.SMS.Timeout <= 0 {
		cfg.SMS.Timeout = defaultSMSTimeout
	}
	if cfg.Geocoder.Timeout <= 0 {
		cfg.Geocoder.Timeout = defaultGeocoderTimeout
	}
	if cfg.Outbox.PollInterval <= 0 {
		cfg.Outbox.PollInterval = defaultOutboxPollInterval
	}
	if cfg.Outbox.BatchSize <= 0 {
		cfg.Outbox.BatchSize = defaultOutboxBatchSize
	}
	if cfg.Outbox.WorkerPoolSize <= 0 {
		cfg.Outbox.WorkerPoolSize = defaultWorkerPoolSize
	}
	if cfg.Outbox.MaxAttempts <= 0 {
		cfg.Outbox.MaxAttempts = defaultOutboxMaxAttempts
	}
	if cfg.Outbox.Retention <= 0 {
		cfg.Outbox.Retention = defaultOutboxRetention
	}
	if cfg.OTPMaxAttempts <= 0 {
		cfg.OTPMaxAttempts = defaultOTPMaxAttempts
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
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
