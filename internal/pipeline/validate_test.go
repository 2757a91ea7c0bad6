package pipeline

import (
	"errors"
	"strconv"
	"testing"

	"convoy-pipeline/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCellValidLiteral(t *testing.T) {
	for _, n := range []int{0, 7, 25, 230, 100000} {
		v, repaired, err := NormalizeCell(strconv.Itoa(n))
		require.NoError(t, err)
		assert.Equal(t, n, v)
		assert.False(t, repaired)
	}
}

func TestNormalizeCellRepairs(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"200 l", 200},
		{"1,500", 1500},
		{"  42 ", 42},
		{"t3o5n", 35},
		{"-8", 8},
		{"12.5", 125},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			v, repaired, err := NormalizeCell(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
			assert.True(t, repaired)
		})
	}
}

func TestNormalizeCellNoDigits(t *testing.T) {
	for _, raw := range []string{"", "tonnes", " - "} {
		_, _, err := NormalizeCell(raw)
		var mce *MalformedCellError
		require.True(t, errors.As(err, &mce), "raw %q", raw)
		assert.Equal(t, raw, mce.Value)
	}
}

func TestNormalizeCellOverflow(t *testing.T) {
	_, _, err := NormalizeCell("99999999999999999999999x")
	var mce *MalformedCellError
	assert.True(t, errors.As(err, &mce))
}

func rawTable(types []model.ColumnType, headers []string, rows ...[]string) model.RawTable {
	cols := make([]model.Column, len(headers))
	for i, h := range headers {
		cols[i] = model.Column{Name: h, Type: types[i]}
	}
	if rows == nil {
		rows = [][]string{}
	}
	return model.RawTable{Columns: cols, Rows: rows}
}

var (
	intCol  = model.ColumnInteger
	textCol = model.ColumnText
)

func TestValidateTable(t *testing.T) {
	in := rawTable(
		[]model.ColumnType{intCol, textCol, textCol, intCol},
		model.VehicleFields,
		[]string{"1", "25", "4o", "30"},
		[]string{"2", "10 l", "60", "10"},
	)
	before := [][]string{{"1", "25", "4o", "30"}, {"2", "10 l", "60", "10"}}

	fleet, repairs, err := ValidateTable(in)
	require.NoError(t, err)
	assert.Equal(t, 2, repairs)
	assert.Equal(t, model.Fleet{
		{VehicleID: 1, EngineCapacity: 25, FuelConsumption: 4, MaximumLoad: 30},
		{VehicleID: 2, EngineCapacity: 10, FuelConsumption: 60, MaximumLoad: 10},
	}, fleet)
	assert.Equal(t, before, in.Rows, "input table must not be mutated")
}

func TestValidateTableColumnOrderAndExtraColumns(t *testing.T) {
	in := rawTable(
		[]model.ColumnType{intCol, intCol, intCol, intCol, intCol},
		[]string{"score", "maximum_load", "vehicle_id", "fuel_consumption", "engine_capacity"},
		[]string{"4", "30", "1", "40", "25"},
	)
	fleet, repairs, err := ValidateTable(in)
	require.NoError(t, err)
	assert.Zero(t, repairs)
	assert.Equal(t, model.Fleet{{VehicleID: 1, EngineCapacity: 25, FuelConsumption: 40, MaximumLoad: 30}}, fleet)
}

func TestValidateTableMissingColumn(t *testing.T) {
	in := rawTable([]model.ColumnType{intCol, intCol}, []string{"vehicle_id", "engine_capacity"})
	_, _, err := ValidateTable(in)
	assert.ErrorIs(t, err, ErrUnreadableSource)
}

func TestValidateTableMalformedCell(t *testing.T) {
	in := rawTable(
		[]model.ColumnType{intCol, textCol, intCol, intCol},
		model.VehicleFields,
		[]string{"1", "25", "40", "30"},
		[]string{"2", "n/a", "60", "10"},
	)
	fleet, _, err := ValidateTable(in)
	assert.Nil(t, fleet)

	var mce *MalformedCellError
	require.True(t, errors.As(err, &mce))
	assert.Equal(t, "engine_capacity", mce.Column)
	assert.Equal(t, 2, mce.Row)
	assert.Equal(t, "n/a", mce.Value)
}

func TestValidateTableIntegerColumnRejectsText(t *testing.T) {
	in := rawTable([]model.ColumnType{intCol, intCol, intCol, intCol}, model.VehicleFields,
		[]string{"1", "25", "forty", "30"})
	_, _, err := ValidateTable(in)
	var mce *MalformedCellError
	assert.True(t, errors.As(err, &mce))
}

func TestValidateTableDuplicateID(t *testing.T) {
	in := rawTable(
		[]model.ColumnType{textCol, intCol, intCol, intCol},
		model.VehicleFields,
		[]string{"1", "25", "40", "30"},
		[]string{"#1", "10", "60", "10"},
	)
	_, _, err := ValidateTable(in)
	assert.ErrorIs(t, err, ErrDuplicateVehicle)
}

func TestValidateTableRaggedRow(t *testing.T) {
	in := rawTable([]model.ColumnType{intCol, intCol, intCol, intCol}, model.VehicleFields,
		[]string{"1", "25", "40"})
	_, _, err := ValidateTable(in)
	assert.ErrorIs(t, err, ErrUnreadableSource)
}

func TestValidateTableEmpty(t *testing.T) {
	in := rawTable([]model.ColumnType{intCol, intCol, intCol, intCol}, model.VehicleFields)
	fleet, repairs, err := ValidateTable(in)
	require.NoError(t, err)
	assert.Empty(t, fleet)
	assert.NotNil(t, fleet)
	assert.Zero(t, repairs)
}
