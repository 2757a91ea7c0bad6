package model

import (
	"fmt"

	"convoy-pipeline/pkg/utils"
)

// Sink names
const (
	SinkRawCSV     = "raw_csv"
	SinkCheckedCSV = "checked_csv"
	SinkDatabase   = "database"
	SinkJSON       = "json"
	SinkXML        = "xml"
)

// SinkResult represents the result of a single sink write
type SinkResult struct {
	Sink     string `json:"sink"`  // one of the Sink* names
	Path     string `json:"path"`  // file path written
	Count    int    `json:"count"` // rows or cells affected
	Noun     string `json:"noun"`  // "line", "cell", "record", "vehicle"
	Action   string `json:"action"`
	Document []byte `json:"-"`
}

// Message renders the console line for the result, e.g. "1 line was added to a.csv"
func (r SinkResult) Message() string {
	return fmt.Sprintf("%d %s %s %s", r.Count, utils.Pluralize(r.Count, r.Noun), r.Action, r.Path)
}
