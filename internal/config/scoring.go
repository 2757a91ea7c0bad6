package config

import "fmt"

// Route profile defaults.
const (
	DefaultRouteLength = 4.5
	DefaultThreshold   = 3
)

// ScoringConfig defines the fixed route profile vehicles are scored against.
type ScoringConfig struct {
	// RouteLength is the route distance used to project fuel burn and pitstops.
	RouteLength float64 `json:"route_length"`
	// Threshold splits vehicles: score above it goes to JSON, the rest to XML.
	Threshold int `json:"threshold"`
}

// SetDefaults applies the standard route length. Threshold keeps its value,
// zero included; Default seeds it.
func (c *ScoringConfig) SetDefaults() {
	if c.RouteLength == 0 {
		c.RouteLength = DefaultRouteLength
	}
}

// Validate checks the route profile.
func (c ScoringConfig) Validate() error {
	if c.RouteLength <= 0 {
		return fmt.Errorf("route_length must be positive, got %v", c.RouteLength)
	}
	if c.Threshold < 0 || c.Threshold > 6 {
		return fmt.Errorf("threshold must be within 0..6, got %d", c.Threshold)
	}
	return nil
}
