package metrics

import "time"

// Sink receives run-level pipeline measurements.
type Sink interface {
	RecordCellsCorrected(n int)
	RecordSinkWrite(sink string, count int)
	RecordStep(step string, d time.Duration, success bool)
	RecordRun(stage, status string)
}

// NopSink discards every measurement.
type NopSink struct{}

func (NopSink) RecordCellsCorrected(int)               {}
func (NopSink) RecordSinkWrite(string, int)            {}
func (NopSink) RecordStep(string, time.Duration, bool) {}
func (NopSink) RecordRun(string, string)               {}
