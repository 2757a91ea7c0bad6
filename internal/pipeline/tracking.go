package pipeline

import (
	"context"
	"time"

	"convoy-pipeline/internal/logger"
	"convoy-pipeline/internal/metrics"
	"convoy-pipeline/internal/model"

	"github.com/google/uuid"
)

// Tracker times every step of a run, logs it and feeds the metrics sink
type Tracker struct {
	RunID   string
	log     logger.Logger
	sink    metrics.Sink
	summary model.RunSummary
}

// NewTracker creates a new tracker with a fresh run id
func NewTracker(input string, stage Stage, log logger.Logger, sink metrics.Sink) *Tracker {
	if log == nil {
		log = logger.NopLogger{}
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	runID := uuid.New().String()
	return &Tracker{
		RunID: runID,
		log:   log.With("run_id", runID),
		sink:  sink,
		summary: model.RunSummary{
			RunID:     runID,
			Input:     input,
			Stage:     stage.String(),
			Steps:     make([]model.StepMetrics, 0),
			Results:   make([]model.SinkResult, 0),
			StartTime: time.Now(),
		},
	}
}

// Step runs fn as the named step. A failure is wrapped in a StageError.
func (t *Tracker) Step(name string, fn func() error) error {
	start := time.Now()
	t.log.Debugw("step started", map[string]any{"step": name})

	err := fn()
	d := time.Since(start)
	t.summary.Steps = append(t.summary.Steps, model.StepMetrics{Name: name, Duration: d, Success: err == nil})
	t.sink.RecordStep(name, d, err == nil)

	if err != nil {
		t.log.Errorf("step %s failed after %v: %v", name, d, err)
		return &StageError{Step: name, Err: err}
	}
	t.log.Debugw("step completed", map[string]any{"step": name, "duration_ms": d.Milliseconds()})
	return nil
}

// Logger returns the run-scoped logger
func (t *Tracker) Logger() logger.Logger {
	return t.log
}

// Vehicles records the size of the validated fleet
func (t *Tracker) Vehicles(n int) {
	t.summary.Vehicles = n
}

// CellsCorrected records the validation repair count
func (t *Tracker) CellsCorrected(n int) {
	t.summary.CellsCorrected = n
	t.sink.RecordCellsCorrected(n)
}

// AddResult records a completed sink write
func (t *Tracker) AddResult(res model.SinkResult) {
	t.summary.Results = append(t.summary.Results, res)
	t.sink.RecordSinkWrite(res.Sink, res.Count)
	t.log.Infof("%d rows written to %s sink %s", res.Count, res.Sink, res.Path)
}

// Finish closes the run and returns its summary
func (t *Tracker) Finish(status string, err error) model.RunSummary {
	t.summary.Duration = time.Since(t.summary.StartTime)
	t.summary.Status = status
	if err != nil {
		t.summary.Error = err.Error()
	}
	t.sink.RecordRun(t.summary.Stage, status)
	return t.summary
}

// trackedSinks times each sink write as its own step
type trackedSinks struct {
	tracker *Tracker
	next    Sinks
}

func (s trackedSinks) WriteStore(ctx context.Context, rows []model.ScoredVehicle) (res model.SinkResult, err error) {
	err = s.tracker.Step(StepWriteDatabase, func() error {
		res, err = s.next.WriteStore(ctx, rows)
		return err
	})
	return res, err
}

func (s trackedSinks) WriteJSON(fleet model.Fleet) (res model.SinkResult, err error) {
	err = s.tracker.Step(StepWriteJSON, func() error {
		res, err = s.next.WriteJSON(fleet)
		return err
	})
	return res, err
}

func (s trackedSinks) WriteXML(fleet model.Fleet) (res model.SinkResult, err error) {
	err = s.tracker.Step(StepWriteXML, func() error {
		res, err = s.next.WriteXML(fleet)
		return err
	})
	return res, err
}
