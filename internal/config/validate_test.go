package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func TestValidate_OK(t *testing.T) {
	assert.Empty(t, validConfig().Validate())
}

func TestValidate_BadPort(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 70000
	errs := cfg.Validate()
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0], "server.port")
}

func TestValidate_BadLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Server.LogLevel = "verbose"
	errs := cfg.Validate()
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0], "server.log_level")
}

func TestValidate_BadStrategy(t *testing.T) {
	cfg := validConfig()
	cfg.Scanner.Strategy = "deep"
	errs := cfg.Validate()
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0], "scanner.strategy")
}

func TestValidate_MissingMediaRoot(t *testing.T) {
	cfg := validConfig()
	cfg.Media.Root = ""
	errs := cfg.Validate()
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0], "media.root")
}

func TestValidate_NegativeDurations(t *testing.T) {
	cfg := validConfig()
	cfg.Scanner.ProbeTimeout = -time.Second
	cfg.Scanner.HTTPTimeout = -time.Second
	cfg.Scanner.Interval = -time.Minute
	assert.Len(t, cfg.Validate(), 3)
}

func TestConfigError_Format(t *testing.T) {
	err := &ConfigError{
		Path:   "config.toml",
		Errors: []string{"server.port: must be between 1 and 65535, got 0"},
	}
	assert.True(t, err.HasErrors())
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), "server.port")
}
