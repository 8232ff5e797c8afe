package config_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/ecosnap-api/internal/config"
	"github.com/KirkDiggler/ecosnap-api/internal/errors"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) TestDefaults() {
	cfg, err := config.Load()
	s.Require().NoError(err)

	s.Equal(config.StorageRedis, cfg.Storage)
	s.Equal("localhost:6379", cfg.RedisAddr)
	s.Equal("local", cfg.PlayerID)
	s.Equal(900*time.Millisecond, cfg.OpponentDelay)
	s.Equal(50051, cfg.GRPCPort)
	s.Equal("https://api.inaturalist.org/v1", cfg.INatBaseURL)
	s.Equal(config.LogFormatText, cfg.LogFormat)
	s.Equal("info", cfg.LogLevel)
}

func (s *ConfigTestSuite) TestEnvironmentOverrides() {
	s.T().Setenv("ECOSNAP_STORAGE", "memory")
	s.T().Setenv("ECOSNAP_PLAYER_ID", "player_42")
	s.T().Setenv("ECOSNAP_OPPONENT_DELAY", "50ms")
	s.T().Setenv("ECOSNAP_GRPC_PORT", "6000")
	s.T().Setenv("ECOSNAP_LOG_FORMAT", "json")
	s.T().Setenv("ECOSNAP_LOG_LEVEL", "debug")

	cfg, err := config.Load()
	s.Require().NoError(err)
	s.Equal(config.StorageMemory, cfg.Storage)
	s.Equal("player_42", cfg.PlayerID)
	s.Equal(50*time.Millisecond, cfg.OpponentDelay)
	s.Equal(6000, cfg.GRPCPort)
	s.Equal(config.LogFormatJSON, cfg.LogFormat)
}

func (s *ConfigTestSuite) TestInvalidEnvironment() {
	s.Run("unparseable duration", func() {
		s.T().Setenv("ECOSNAP_OPPONENT_DELAY", "soon")
		_, err := config.Load()
		s.True(errors.IsInvalidArgument(err))
	})

	s.Run("unknown storage", func() {
		s.T().Setenv("ECOSNAP_STORAGE", "postgres")
		_, err := config.Load()
		s.True(errors.IsInvalidArgument(err))
		s.Contains(err.Error(), "Storage")
	})
}

func (s *ConfigTestSuite) TestLoadWithOverrides() {
	s.Run("override replaces an invalid environment value", func() {
		s.T().Setenv("ECOSNAP_STORAGE", "bogus")

		cfg, err := config.LoadWith(func(c *config.Config) {
			c.Storage = config.StorageMemory
		})
		s.Require().NoError(err)
		s.Equal(config.StorageMemory, cfg.Storage)
	})

	s.Run("override is validated", func() {
		_, err := config.LoadWith(func(c *config.Config) {
			c.GRPCPort = 0
		})
		s.True(errors.IsInvalidArgument(err))
		s.Contains(err.Error(), "GRPCPort")
	})

	s.Run("untouched invalid value still fails", func() {
		s.T().Setenv("ECOSNAP_LOG_FORMAT", "xml")

		_, err := config.LoadWith(func(c *config.Config) {
			c.Storage = config.StorageMemory
		})
		s.True(errors.IsInvalidArgument(err))
		s.Contains(err.Error(), "LogFormat")
	})
}

func (s *ConfigTestSuite) TestValidate() {
	valid := func() *config.Config {
		return &config.Config{
			Storage:   config.StorageRedis,
			RedisAddr: "localhost:6379",
			PlayerID:  "local",
			GRPCPort:  50051,
			LogFormat: config.LogFormatText,
			LogLevel:  "info",
		}
	}

	testCases := []struct {
		name   string
		mutate func(*config.Config)
		field  string
	}{
		{name: "missing redis address", mutate: func(c *config.Config) { c.RedisAddr = "" }, field: "RedisAddr"},
		{name: "missing player", mutate: func(c *config.Config) { c.PlayerID = "" }, field: "PlayerID"},
		{name: "negative delay", mutate: func(c *config.Config) { c.OpponentDelay = -time.Second }, field: "OpponentDelay"},
		{name: "bad port", mutate: func(c *config.Config) { c.GRPCPort = 70000 }, field: "GRPCPort"},
		{name: "bad log format", mutate: func(c *config.Config) { c.LogFormat = "xml" }, field: "LogFormat"},
		{name: "bad log level", mutate: func(c *config.Config) { c.LogLevel = "loud" }, field: "LogLevel"},
	}

	s.NoError(valid().Validate())

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			cfg := valid()
			tc.mutate(cfg)
			err := cfg.Validate()
			s.True(errors.IsInvalidArgument(err))
			s.Contains(err.Error(), tc.field)
		})
	}

	s.Run("memory storage needs no redis", func() {
		cfg := valid()
		cfg.Storage = config.StorageMemory
		cfg.RedisAddr = ""
		s.NoError(cfg.Validate())
	})
}

func (s *ConfigTestSuite) TestNewLogger() {
	var buf bytes.Buffer
	cfg := &config.Config{LogFormat: config.LogFormatJSON, LogLevel: "warn"}

	logger := cfg.NewLogger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "player_id", "p1")

	s.NotContains(buf.String(), "hidden")
	s.Contains(buf.String(), `"msg":"shown"`)
	s.Contains(buf.String(), `"player_id":"p1"`)
}
