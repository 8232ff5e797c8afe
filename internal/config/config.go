// Package config loads process configuration from the environment
package config

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/ecosnap-api/internal/errors"
)

// Storage backends
const (
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

// Log formats
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config is the process configuration. Command line flags override it.
type Config struct {
	Storage       string        `env:"ECOSNAP_STORAGE"        envDefault:"redis"`
	RedisAddr     string        `env:"ECOSNAP_REDIS_ADDR"     envDefault:"localhost:6379"`
	PlayerID      string        `env:"ECOSNAP_PLAYER_ID"      envDefault:"local"`
	OpponentDelay time.Duration `env:"ECOSNAP_OPPONENT_DELAY" envDefault:"900ms"`
	GRPCPort      int           `env:"ECOSNAP_GRPC_PORT"      envDefault:"50051"`
	INatBaseURL   string        `env:"ECOSNAP_INAT_BASE_URL"  envDefault:"https://api.inaturalist.org/v1"`
	LogFormat     string        `env:"ECOSNAP_LOG_FORMAT"     envDefault:"text"`
	LogLevel      string        `env:"ECOSNAP_LOG_LEVEL"      envDefault:"info"`
}

// Load parses the environment and validates the result
func Load() (*Config, error) {
	return LoadWith(nil)
}

// LoadWith parses the environment, lets override adjust the result and
// validates once at the end. Invalid environment values that override
// replaces are never reported.
func LoadWith(override func(*Config)) (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	if override != nil {
		override(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every field
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateEnum("Storage", c.Storage, []string{StorageRedis, StorageMemory}, vb)
	if c.Storage == StorageRedis && c.RedisAddr == "" {
		vb.RequiredField("RedisAddr")
	}
	if c.PlayerID == "" {
		vb.RequiredField("PlayerID")
	}
	if c.OpponentDelay < 0 {
		vb.Field("OpponentDelay", "must not be negative")
	}
	if c.GRPCPort <= 0 || c.GRPCPort > 65535 {
		vb.Field("GRPCPort", "must be between 1 and 65535")
	}
	errors.ValidateEnum("LogFormat", c.LogFormat, []string{LogFormatText, LogFormatJSON}, vb)
	if _, ok := parseLevel(c.LogLevel); !ok {
		vb.Field("LogLevel", "must be one of: debug, info, warn, error")
	}

	return vb.Build()
}

// NewLogger builds the slog logger described by the config
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, _ := parseLevel(c.LogLevel)
	opts := &slog.HandlerOptions{Level: level}

	if c.LogFormat == LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
