package pipeline

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"convoy-pipeline/internal/model"
	"convoy-pipeline/internal/store"
	"convoy-pipeline/pkg/utils"
)

const emptyConvoyXML = "<convoy></convoy>"

// ExportManager writes the artifacts of one run
type ExportManager struct {
	Paths utils.OutputPaths
	DB    *store.DB
	Table string
}

// NewExportManager creates a new export manager
func NewExportManager(paths utils.OutputPaths, db *store.DB, table string) *ExportManager {
	return &ExportManager{Paths: paths, DB: db, Table: table}
}

type jsonConvoy struct {
	Convoy model.Fleet `json:"convoy"`
}

type xmlConvoy struct {
	XMLName  xml.Name        `xml:"convoy"`
	Vehicles []model.Vehicle `xml:"vehicle"`
}

// WriteRawCSV copies the table as read to <base>.csv
func (em *ExportManager) WriteRawCSV(t model.RawTable) (model.SinkResult, error) {
	path := em.Paths.RawCSV
	err := writeFile(path, func(w io.Writer) error {
		writer := csv.NewWriter(w)
		if err := writer.Write(t.Header()); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
		if err := writer.WriteAll(t.Rows); err != nil {
			return fmt.Errorf("failed to write rows: %w", err)
		}
		return nil
	})
	if err != nil {
		return model.SinkResult{}, &SinkWriteError{Sink: model.SinkRawCSV, Path: path, Err: err}
	}
	return model.SinkResult{Sink: model.SinkRawCSV, Path: path, Count: len(t.Rows), Noun: "line", Action: "added to"}, nil
}

// WriteCheckedCSV stores the validated fleet under the checked name. The
// reported count is the number of repaired cells.
func (em *ExportManager) WriteCheckedCSV(fleet model.Fleet, repairs int) (model.SinkResult, error) {
	path := em.Paths.CheckedCSV
	err := writeFile(path, func(w io.Writer) error {
		writer := csv.NewWriter(w)
		if err := writer.Write(model.VehicleFields); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
		for _, v := range fleet {
			if err := writer.Write(utils.FormatInts(v.Values())); err != nil {
				return fmt.Errorf("failed to write row: %w", err)
			}
		}
		writer.Flush()
		return writer.Error()
	})
	if err != nil {
		return model.SinkResult{}, &SinkWriteError{Sink: model.SinkCheckedCSV, Path: path, Err: err}
	}
	return model.SinkResult{Sink: model.SinkCheckedCSV, Path: path, Count: repairs, Noun: "cell", Action: "corrected in"}, nil
}

// WriteStore replaces the convoy table with the scored fleet
func (em *ExportManager) WriteStore(ctx context.Context, rows []model.ScoredVehicle) (model.SinkResult, error) {
	path := em.Paths.Store
	if em.DB == nil {
		return model.SinkResult{}, &SinkWriteError{Sink: model.SinkDatabase, Path: path, Err: fmt.Errorf("no database connection")}
	}
	n, err := em.DB.ReplaceTable(ctx, em.Table, rows)
	if err != nil {
		return model.SinkResult{}, &SinkWriteError{Sink: model.SinkDatabase, Path: path, Err: err}
	}
	return model.SinkResult{Sink: model.SinkDatabase, Path: path, Count: n, Noun: "record", Action: "inserted into"}, nil
}

// WriteJSON writes {"convoy": [...]} for the given vehicles
func (em *ExportManager) WriteJSON(fleet model.Fleet) (model.SinkResult, error) {
	path := em.Paths.JSON
	if fleet == nil {
		fleet = model.Fleet{}
	}
	err := writeFile(path, func(w io.Writer) error {
		if err := json.NewEncoder(w).Encode(jsonConvoy{Convoy: fleet}); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	})
	if err != nil {
		return model.SinkResult{}, &SinkWriteError{Sink: model.SinkJSON, Path: path, Err: err}
	}
	return model.SinkResult{Sink: model.SinkJSON, Path: path, Count: len(fleet), Noun: "vehicle", Action: "saved into"}, nil
}

// WriteXML writes a <convoy> document with one <vehicle> element per vehicle
func (em *ExportManager) WriteXML(fleet model.Fleet) (model.SinkResult, error) {
	path := em.Paths.XML
	doc, err := EncodeXML(fleet)
	if err == nil {
		err = writeFile(path, func(w io.Writer) error {
			_, err := w.Write(doc)
			return err
		})
	}
	if err != nil {
		return model.SinkResult{}, &SinkWriteError{Sink: model.SinkXML, Path: path, Err: err}
	}
	return model.SinkResult{Sink: model.SinkXML, Path: path, Count: len(fleet), Noun: "vehicle", Action: "saved into", Document: doc}, nil
}

// EncodeXML renders the XML document; an empty fleet yields <convoy></convoy>
func EncodeXML(fleet model.Fleet) ([]byte, error) {
	if len(fleet) == 0 {
		return []byte(emptyConvoyXML), nil
	}
	doc, err := xml.MarshalIndent(xmlConvoy{Vehicles: fleet}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode XML: %w", err)
	}
	return doc, nil
}

// writeFile creates path, lets fn fill it and reports close errors
func writeFile(path string, fn func(w io.Writer) error) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", cerr)
		}
	}()
	return fn(file)
}
