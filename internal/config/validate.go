package config

import (
	"fmt"
	"net/url"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

var validStrategies = map[string]bool{
	"shallow": true, "recursive": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !validLogLevels[c.Server.LogLevel] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}

	if c.Media.Root == "" {
		errs = append(errs, "media.root: required")
	}

	if !validStrategies[c.Scanner.Strategy] {
		errs = append(errs, fmt.Sprintf("scanner.strategy: must be shallow or recursive; got %q", c.Scanner.Strategy))
	}
	if c.Scanner.ProbeTimeout < 0 {
		errs = append(errs, "scanner.probe_timeout: must not be negative")
	}
	if c.Scanner.HTTPTimeout < 0 {
		errs = append(errs, "scanner.http_timeout: must not be negative")
	}
	if c.Scanner.Interval < 0 {
		errs = append(errs, "scanner.interval: must not be negative")
	}
	if c.Scanner.APIURL != "" {
		if _, err := url.Parse(c.Scanner.APIURL); err != nil {
			errs = append(errs, fmt.Sprintf("scanner.api_url: %v", err))
		}
	}

	return errs
}
