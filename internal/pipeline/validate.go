package pipeline

import (
	"fmt"
	"strconv"

	"convoy-pipeline/internal/model"
	"convoy-pipeline/pkg/utils"
)

// NormalizeCell turns one cell into a non-negative integer. A plain decimal
// literal is parsed as is; anything else has every non-digit stripped and the
// remaining digits parsed, reporting repaired=true.
func NormalizeCell(raw string) (value int, repaired bool, err error) {
	if utils.IsDecimal(raw) {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, false, &MalformedCellError{Value: raw, Err: err}
		}
		return n, false, nil
	}

	digits := utils.DigitsOnly(raw)
	if digits == "" {
		return 0, false, &MalformedCellError{Value: raw}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false, &MalformedCellError{Value: raw, Err: err}
	}
	return n, true, nil
}

// ValidateTable converts a raw table into a fleet, repairing every cell of the
// text-typed columns. Cells are visited left-to-right, top-to-bottom and the
// first malformed cell aborts validation. The input table is left untouched.
func ValidateTable(t model.RawTable) (model.Fleet, int, error) {
	index, err := resolveColumns(t)
	if err != nil {
		return nil, 0, err
	}

	fleet := make(model.Fleet, 0, len(t.Rows))
	seen := make(map[int]int, len(t.Rows))
	repairs := 0

	for r, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return nil, 0, fmt.Errorf("%w: row %d has %d cells, want %d", ErrUnreadableSource, r+1, len(row), len(t.Columns))
		}

		values := make(map[string]int, len(model.VehicleFields))
		for c, col := range t.Columns {
			field, wanted := index[c]
			if !wanted {
				continue
			}
			v, repaired, err := validateCell(col, row[c])
			if err != nil {
				if mce, ok := err.(*MalformedCellError); ok {
					mce.Column, mce.Row = col.Name, r+1
				}
				return nil, 0, err
			}
			if repaired {
				repairs++
			}
			values[field] = v
		}

		v := model.Vehicle{
			VehicleID:       values[model.FieldVehicleID],
			EngineCapacity:  values[model.FieldEngineCapacity],
			FuelConsumption: values[model.FieldFuelConsumption],
			MaximumLoad:     values[model.FieldMaximumLoad],
		}
		if prev, dup := seen[v.VehicleID]; dup {
			return nil, 0, fmt.Errorf("%w: %d in rows %d and %d", ErrDuplicateVehicle, v.VehicleID, prev, r+1)
		}
		seen[v.VehicleID] = r + 1
		fleet = append(fleet, v)
	}
	return fleet, repairs, nil
}

func validateCell(col model.Column, raw string) (int, bool, error) {
	if col.Type == model.ColumnText {
		return NormalizeCell(raw)
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false, &MalformedCellError{Value: raw, Err: fmt.Errorf("integer column holds a non-integer")}
	}
	return n, false, nil
}

// resolveColumns maps source column positions to vehicle fields. Extra columns
// such as a stored score are ignored.
func resolveColumns(t model.RawTable) (map[int]string, error) {
	index := make(map[int]string, len(model.VehicleFields))
	found := make(map[string]bool, len(model.VehicleFields))
	for i, col := range t.Columns {
		for _, f := range model.VehicleFields {
			if col.Name == f && !found[f] {
				index[i] = f
				found[f] = true
			}
		}
	}
	for _, f := range model.VehicleFields {
		if !found[f] {
			return nil, fmt.Errorf("%w: missing column %s", ErrUnreadableSource, f)
		}
	}
	return index, nil
}
