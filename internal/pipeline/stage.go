package pipeline

import "convoy-pipeline/pkg/utils"

// Stage records how far a previous run already got for an input
type Stage int

const (
	StageRawSource Stage = iota
	StageCSVWritten
	StageValidated
	StageStoreWritten
	StageJSONWritten
	StageComplete
)

var stageNames = map[Stage]string{
	StageRawSource:    "raw_source",
	StageCSVWritten:   "csv_written",
	StageValidated:    "validated",
	StageStoreWritten: "store_written",
	StageJSONWritten:  "json_written",
	StageComplete:     "complete",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "unknown"
}

// Step names, also used as metric labels
const (
	StepRead            = "read_source"
	StepWriteRawCSV     = "write_raw_csv"
	StepValidate        = "validate"
	StepWriteCheckedCSV = "write_checked_csv"
	StepWriteDatabase   = "write_database"
	StepWriteJSON       = "write_json"
	StepWriteXML        = "write_xml"
)

// Plan lists what is left to do for a stage
type Plan struct {
	WriteRawCSV     bool
	Validate        bool
	WriteCheckedCSV bool
	Targets         Targets
}

// Empty reports whether there is nothing to do
func (p Plan) Empty() bool {
	return !p.WriteRawCSV && !p.Validate && !p.WriteCheckedCSV && !p.Targets.Any()
}

// Steps names the planned steps in execution order
func (p Plan) Steps() []string {
	var steps []string
	if p.Empty() {
		return steps
	}
	steps = append(steps, StepRead)
	if p.WriteRawCSV {
		steps = append(steps, StepWriteRawCSV)
	}
	if p.Validate {
		steps = append(steps, StepValidate)
	}
	if p.WriteCheckedCSV {
		steps = append(steps, StepWriteCheckedCSV)
	}
	if p.Targets.Store {
		steps = append(steps, StepWriteDatabase)
	}
	if p.Targets.JSON {
		steps = append(steps, StepWriteJSON)
	}
	if p.Targets.XML {
		steps = append(steps, StepWriteXML)
	}
	return steps
}

var allSinks = Targets{Store: true, JSON: true, XML: true}

var plans = map[Stage]Plan{
	StageRawSource:    {WriteRawCSV: true, Validate: true, WriteCheckedCSV: true, Targets: allSinks},
	StageCSVWritten:   {Validate: true, WriteCheckedCSV: true, Targets: allSinks},
	StageValidated:    {Targets: allSinks},
	StageStoreWritten: {Targets: Targets{JSON: true, XML: true}},
	StageJSONWritten:  {},
	StageComplete:     {},
}

// PlanFor returns the remaining work for a stage
func PlanFor(s Stage) Plan {
	return plans[s]
}

// DetectStage decides once, from the input name, which artifacts already
// exist. exists is consulted only for a database input, whose JSON and XML
// outputs mark the run as finished.
func DetectStage(p utils.OutputPaths, exists func(string) bool) Stage {
	switch {
	case p.Suffix == utils.StoreExt:
		if exists != nil && exists(p.JSON) && exists(p.XML) {
			return StageJSONWritten
		}
		return StageStoreWritten
	case p.Checked:
		return StageValidated
	case p.Suffix == ".csv":
		return StageCSVWritten
	default:
		return StageRawSource
	}
}
