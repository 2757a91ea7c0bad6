package model

import "time"

// Run statuses
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusNoop      = "noop"
)

// StepMetrics represents timing for a single pipeline step
type StepMetrics struct {
	Name     string        `json:"name"`
	Duration time.Duration `json:"duration"`
	Success  bool          `json:"success"`
}

// RunSummary describes one pipeline run
type RunSummary struct {
	RunID          string        `json:"run_id"`
	Input          string        `json:"input"`
	Stage          string        `json:"stage"`
	Vehicles       int           `json:"vehicles"`
	CellsCorrected int           `json:"cells_corrected"`
	Steps          []StepMetrics `json:"steps"`
	Results        []SinkResult  `json:"results"`
	StartTime      time.Time     `json:"start_time"`
	Duration       time.Duration `json:"duration"`
	Status         string        `json:"status"`
	Error          string        `json:"error,omitempty"`
}
