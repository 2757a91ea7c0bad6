package config

import (
	"fmt"
	"strings"
)

// LoggingConfig defines diagnostic log settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level"`
}

// SetDefaults applies sane defaults.
func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
}

// Validate checks mandatory fields.
func (c LoggingConfig) Validate() error {
	switch strings.ToLower(c.Level) {
	case "debug", "info", "warn", "error":
		return nil
	}
	return fmt.Errorf("unknown level %s", c.Level)
}

// MetricsConfig controls the Prometheus textfile dump written after each run.
type MetricsConfig struct {
	// Textfile is the destination path; empty disables metrics output.
	Textfile string `json:"textfile"`
}

// Enabled reports whether a textfile dump was requested.
func (c MetricsConfig) Enabled() bool { return c.Textfile != "" }
