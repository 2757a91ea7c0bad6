package pipeline

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"convoy-pipeline/internal/model"
	"convoy-pipeline/internal/store"
	"convoy-pipeline/pkg/utils"

	"github.com/xuri/excelize/v2"
)

// SourceOptions names where vehicles live inside each source format
type SourceOptions struct {
	Sheet string // spreadsheet tab
	Table string // sqlite table
}

// ReadSource loads the raw vehicle table from a spreadsheet, csv or sqlite input.
// Sqlite inputs are read through db, which must point at the same file. A table
// lacking any vehicle column is rejected here, before anything is written.
func ReadSource(ctx context.Context, path string, opts SourceOptions, db *store.DB) (model.RawTable, error) {
	table, err := readTable(ctx, path, opts, db)
	if err != nil {
		return model.RawTable{}, err
	}
	if _, err := resolveColumns(table); err != nil {
		return model.RawTable{}, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

func readTable(ctx context.Context, path string, opts SourceOptions, db *store.DB) (model.RawTable, error) {
	if !utils.FileExists(path) {
		return model.RawTable{}, unreadable(path, os.ErrNotExist)
	}

	switch utils.NewOutputManager("").GetFileType(path) {
	case "csv":
		return readCSV(path)
	case "excel":
		return readExcel(path, opts.Sheet)
	case "sqlite":
		if db == nil {
			return model.RawTable{}, unreadable(path, errors.New("no database connection"))
		}
		table, err := db.LoadTable(ctx, opts.Table)
		if err != nil {
			return model.RawTable{}, unreadable(path, err)
		}
		return table, nil
	default:
		return model.RawTable{}, unreadable(path, fmt.Errorf("unsupported source format"))
	}
}

// ------------------- CSV Ingestion -------------------
func readCSV(path string) (model.RawTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return model.RawTable{}, unreadable(path, err)
	}
	defer file.Close()

	csvReader := csv.NewReader(file)
	csvReader.LazyQuotes = true
	headers, err := csvReader.Read()
	if err != nil {
		if err == io.EOF {
			err = errors.New("missing header row")
		}
		return model.RawTable{}, unreadable(path, err)
	}

	var rows [][]string
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return model.RawTable{}, unreadable(path, err)
		}
		rows = append(rows, record)
	}
	return newRawTable(headers, rows), nil
}

// ------------------- Spreadsheet Ingestion -------------------
func readExcel(path, sheet string) (model.RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return model.RawTable{}, unreadable(path, err)
	}
	defer f.Close()

	all, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return model.RawTable{}, unreadable(path, err)
	}
	if len(all) == 0 {
		return model.RawTable{}, unreadable(path, fmt.Errorf("sheet %s has no header row", sheet))
	}

	headers := all[0]
	var rows [][]string
	for i, r := range all[1:] {
		if isBlank(r) {
			continue
		}
		if len(r) > len(headers) && !isBlank(r[len(headers):]) {
			return model.RawTable{}, unreadable(path, fmt.Errorf("row %d has %d cells, header has %d", i+1, len(r), len(headers)))
		}
		// trailing empty cells are omitted by excelize
		row := make([]string, len(headers))
		copy(row, r)
		rows = append(rows, row)
	}
	return newRawTable(headers, rows), nil
}

// newRawTable declares every column ColumnInteger when all of its cells are
// plain decimal literals and ColumnText otherwise.
func newRawTable(headers []string, rows [][]string) model.RawTable {
	if rows == nil {
		rows = [][]string{}
	}
	cols := make([]model.Column, len(headers))
	for i, h := range headers {
		cols[i] = model.Column{Name: cleanHeader(h), Type: model.ColumnInteger}
		for _, r := range rows {
			if i >= len(r) || !utils.IsDecimal(r[i]) {
				cols[i].Type = model.ColumnText
				break
			}
		}
	}
	return model.RawTable{Columns: cols, Rows: rows}
}

// cleanHeader trims whitespace, a UTF-8 BOM and every quote from a header name
func cleanHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.TrimSpace(h)
	return strings.ReplaceAll(h, `"`, "")
}

func isBlank(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}
