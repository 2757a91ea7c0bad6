package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrUnreadableSource covers a missing file, wrong sheet, corrupt data or missing columns
	ErrUnreadableSource = errors.New("unreadable source")
	// ErrDuplicateVehicle is returned when a vehicle_id repeats within a table
	ErrDuplicateVehicle = errors.New("duplicate vehicle_id")
)

// MalformedCellError reports a cell with no recoverable digits
type MalformedCellError struct {
	Column string
	Row    int // 1-based data row, header excluded
	Value  string
	Err    error
}

func (e *MalformedCellError) Error() string {
	msg := fmt.Sprintf("malformed cell %q", e.Value)
	if e.Column != "" {
		msg = fmt.Sprintf("%s in column %s row %d", msg, e.Column, e.Row)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedCellError) Unwrap() error { return e.Err }

// SinkWriteError reports a failed write to a csv, json, xml or database sink
type SinkWriteError struct {
	Sink string
	Path string
	Err  error
}

func (e *SinkWriteError) Error() string {
	return fmt.Sprintf("failed to write %s sink %s: %v", e.Sink, e.Path, e.Err)
}

func (e *SinkWriteError) Unwrap() error { return e.Err }

// StageError names the pipeline step that aborted a run
type StageError struct {
	Step string
	Err  error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("step %s failed: %v", e.Step, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

func unreadable(path string, err error) error {
	return fmt.Errorf("%w %s: %v", ErrUnreadableSource, path, err)
}
