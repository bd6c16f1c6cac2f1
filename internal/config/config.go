// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Media    MediaConfig    `toml:"media"`
	Scanner  ScannerConfig  `toml:"scanner"`
}

type ServerConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	LogLevel string `toml:"log_level"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

// MediaConfig describes the media tree on disk and how it is exposed to
// clients. Root contains the movies/ and series/ category directories;
// MountPrefix is the public URL prefix the files are served under.
type MediaConfig struct {
	Root        string `toml:"root"`
	MountPrefix string `toml:"mount_prefix"`
}

// ScannerConfig controls the library scanner.
type ScannerConfig struct {
	Strategy     string        `toml:"strategy"` // shallow | recursive
	Probe        bool          `toml:"probe"`
	FFprobePath  string        `toml:"ffprobe_path"`
	ProbeTimeout time.Duration `toml:"probe_timeout"`
	APIURL       string        `toml:"api_url"`
	APIToken     string        `toml:"api_token"`
	HTTPTimeout  time.Duration `toml:"http_timeout"`
	Interval     time.Duration `toml:"interval"` // 0 disables periodic daemon scans
}

// Load reads and parses the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Substitute environment variables
	content, missing := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()

	cfgErr := &ConfigError{Path: path, Missing: missing, Errors: cfg.Validate()}
	if cfgErr.HasErrors() {
		return nil, cfgErr
	}

	return &cfg, nil
}

// LoadWithoutValidation reads the configuration but skips validation.
// Used by CLI commands that only need a subset of the config.
func LoadWithoutValidation(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Unresolved env vars stay verbatim here; CLI commands only read a
	// subset of the config and must not fail on unrelated placeholders.
	content, _ := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 3001
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if c.Database.Path == "" {
		c.Database.Path = "./data/massflix.db"
	}
	if c.Media.Root == "" {
		c.Media.Root = "/media"
	}
	if c.Media.MountPrefix == "" {
		c.Media.MountPrefix = "/media"
	}
	if c.Scanner.Strategy == "" {
		c.Scanner.Strategy = "shallow"
	}
	if c.Scanner.FFprobePath == "" {
		c.Scanner.FFprobePath = "ffprobe"
	}
	if c.Scanner.ProbeTimeout == 0 {
		c.Scanner.ProbeTimeout = 30 * time.Second
	}
	if c.Scanner.HTTPTimeout == 0 {
		c.Scanner.HTTPTimeout = 15 * time.Second
	}
	if c.Scanner.APIURL == "" {
		c.Scanner.APIURL = fmt.Sprintf("http://localhost:%d/api", c.Server.Port)
	}
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values and
// returns the names of variables that were not set, leaving their
// placeholders verbatim.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func substituteEnvVars(content string) (string, []string) {
	var missing []string
	seen := make(map[string]bool)

	out := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := match[2 : len(match)-1] // Strip ${ and }
		if value, ok := os.LookupEnv(varName); ok {
			return value
		}
		if !seen[varName] {
			seen[varName] = true
			missing = append(missing, varName)
		}
		return match
	})
	return out, missing
}
