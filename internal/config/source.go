package config

import (
	"fmt"
	"regexp"
	"strings"
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SourceConfig names where vehicles live inside each source format.
type SourceConfig struct {
	// Sheet is the spreadsheet tab holding the fleet.
	Sheet string `json:"sheet"`
	// Table is the sqlite table read from and written to.
	Table string `json:"table"`
	// CheckedMarker tags a csv that already passed validation.
	CheckedMarker string `json:"checked_marker"`
}

// SetDefaults applies sane defaults.
func (c *SourceConfig) SetDefaults() {
	if c.Sheet == "" {
		c.Sheet = "Vehicles"
	}
	if c.Table == "" {
		c.Table = "convoy"
	}
	if c.CheckedMarker == "" {
		c.CheckedMarker = "[CHECKED]"
	}
}

// Validate checks mandatory fields.
func (c SourceConfig) Validate() error {
	if !identRe.MatchString(c.Table) {
		return fmt.Errorf("table %q is not a valid identifier", c.Table)
	}
	if strings.ContainsAny(c.CheckedMarker, `/\`) {
		return fmt.Errorf("checked_marker %q must not contain path separators", c.CheckedMarker)
	}
	return nil
}
