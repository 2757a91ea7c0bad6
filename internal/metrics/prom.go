package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records pipeline runs in Prometheus metrics.
type PromSink struct {
	cells  prometheus.Counter
	writes *prometheus.CounterVec
	steps  *prometheus.HistogramVec
	runs   *prometheus.CounterVec
}

// NewPromSink registers pipeline metrics on the provided registerer.
// If reg is nil, the default registerer is used. If the collectors are already
// registered, the existing ones are reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	cells := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "convoy_cells_corrected_total",
		Help: "Total number of malformed cells repaired during validation",
	})
	writes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "convoy_sink_rows_total",
		Help: "Rows or cells written per sink",
	}, []string{"sink"})
	steps := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "convoy_step_duration_seconds",
		Help:    "Duration of each pipeline step",
		Buckets: prometheus.DefBuckets,
	}, []string{"step", "success"})
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "convoy_runs_total",
		Help: "Pipeline runs by detected stage and outcome",
	}, []string{"stage", "status"})

	if err := reg.Register(cells); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return nil, fmt.Errorf("register cells counter: %w", err)
		}
		cells = are.ExistingCollector.(prometheus.Counter)
	}
	if err := reg.Register(writes); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return nil, fmt.Errorf("register sink counter: %w", err)
		}
		writes = are.ExistingCollector.(*prometheus.CounterVec)
	}
	if err := reg.Register(steps); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return nil, fmt.Errorf("register step histogram: %w", err)
		}
		steps = are.ExistingCollector.(*prometheus.HistogramVec)
	}
	if err := reg.Register(runs); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return nil, fmt.Errorf("register run counter: %w", err)
		}
		runs = are.ExistingCollector.(*prometheus.CounterVec)
	}

	return &PromSink{cells: cells, writes: writes, steps: steps, runs: runs}, nil
}

// RecordCellsCorrected adds repaired cells to the counter.
func (s *PromSink) RecordCellsCorrected(n int) {
	s.cells.Add(float64(n))
}

// RecordSinkWrite adds the rows written to a sink.
func (s *PromSink) RecordSinkWrite(sink string, count int) {
	s.writes.WithLabelValues(sink).Add(float64(count))
}

// RecordStep observes a step duration.
func (s *PromSink) RecordStep(step string, d time.Duration, success bool) {
	s.steps.WithLabelValues(step, strconv.FormatBool(success)).Observe(d.Seconds())
}

// RecordRun counts a finished run.
func (s *PromSink) RecordRun(stage, status string) {
	s.runs.WithLabelValues(stage, status).Inc()
}

// WriteTextfile dumps everything gathered by g in the node-exporter textfile format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
