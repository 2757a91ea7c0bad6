package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `scoring:
  route_length: 5.5
  threshold: 4
source:
  sheet: "Fleet"
  table: "trucks"
logging:
  level: "debug"
metrics:
  textfile: "/tmp/convoy.prom"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	checks := []struct {
		name string
		got  any
		want any
	}{
		{"route_length", cfg.Scoring.RouteLength, 5.5},
		{"threshold", cfg.Scoring.Threshold, 4},
		{"sheet", cfg.Source.Sheet, "Fleet"},
		{"table", cfg.Source.Table, "trucks"},
		{"checked_marker", cfg.Source.CheckedMarker, "[CHECKED]"},
		{"level", cfg.Logging.Level, "debug"},
		{"textfile", cfg.Metrics.Textfile, "/tmp/convoy.prom"},
	}
	for _, c := range checks {
		assert.Equal(t, c.want, c.got, c.name)
	}
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"source":{"checked_marker":"_ok"}}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "_ok", cfg.Source.CheckedMarker)
	assert.Equal(t, DefaultRouteLength, cfg.Scoring.RouteLength)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultRouteLength, cfg.Scoring.RouteLength)
	assert.Equal(t, DefaultThreshold, cfg.Scoring.Threshold)
	assert.Equal(t, "Vehicles", cfg.Source.Sheet)
	assert.Equal(t, "convoy", cfg.Source.Table)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Metrics.Enabled())
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("CONVOY_SCORING__THRESHOLD", "5")
	t.Setenv("CONVOY_SOURCE__SHEET", "Trucks")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Scoring.Threshold)
	assert.Equal(t, "Trucks", cfg.Source.Sheet)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "config.toml"))
	assert.Error(t, err)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("source:\n  table: \"convoy; DROP\"\n"), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)

	lvl := filepath.Join(dir, "lvl.yaml")
	require.NoError(t, os.WriteFile(lvl, []byte("logging:\n  level: loud\n"), 0o644))
	_, err = Load(lvl)
	assert.Error(t, err)
}

func TestScoringValidate(t *testing.T) {
	assert.Error(t, ScoringConfig{RouteLength: -1, Threshold: 3}.Validate())
	assert.Error(t, ScoringConfig{RouteLength: 4.5, Threshold: 7}.Validate())
	assert.NoError(t, ScoringConfig{RouteLength: 4.5, Threshold: 3}.Validate())
}

func TestLoadZeroThreshold(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scoring:\n  threshold: 0\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Scoring.Threshold)
	assert.Equal(t, DefaultRouteLength, cfg.Scoring.RouteLength)
}
