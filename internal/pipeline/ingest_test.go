package pipeline

import (
	"context"
	"path/filepath"
	"testing"

	"convoy-pipeline/internal/model"
	"convoy-pipeline/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var vehicleHeader = []any{"vehicle_id", "engine_capacity", "fuel_consumption", "maximum_load"}

func TestReadSourceExcel(t *testing.T) {
	path := tempPath(t, "fleet.xlsx")
	writeXLSX(t, path, "Vehicles", [][]any{
		vehicleHeader,
		{1, 25, 40, 30},
		{2, "10 l", 60, 10},
	})

	table, err := ReadSource(context.Background(), path, SourceOptions{Sheet: "Vehicles"}, nil)
	require.NoError(t, err)
	assert.Equal(t, model.VehicleFields, table.Header())
	assert.Equal(t, [][]string{{"1", "25", "40", "30"}, {"2", "10 l", "60", "10"}}, table.Rows)
	assert.Equal(t, model.ColumnInteger, table.Columns[0].Type)
	assert.Equal(t, model.ColumnText, table.Columns[1].Type)
	assert.Equal(t, model.ColumnInteger, table.Columns[2].Type)
}

func TestReadSourceExcelWrongSheet(t *testing.T) {
	path := tempPath(t, "fleet.xlsx")
	writeXLSX(t, path, "Trucks", [][]any{vehicleHeader, {1, 25, 40, 30}})

	_, err := ReadSource(context.Background(), path, SourceOptions{Sheet: "Vehicles"}, nil)
	assert.ErrorIs(t, err, ErrUnreadableSource)
}

func TestReadSourceExcelRowWiderThanHeader(t *testing.T) {
	path := tempPath(t, "fleet.xlsx")
	writeXLSX(t, path, "Vehicles", [][]any{
		vehicleHeader,
		{1, 25, 40, 30},
		{2, 10, 60, 10, 99},
	})

	_, err := ReadSource(context.Background(), path, SourceOptions{Sheet: "Vehicles"}, nil)
	assert.ErrorIs(t, err, ErrUnreadableSource)
	assert.ErrorContains(t, err, "row 2 has 5 cells")
}

func TestReadSourceMissingColumn(t *testing.T) {
	path := tempPath(t, "fleet.xlsx")
	writeXLSX(t, path, "Vehicles", [][]any{
		{"vehicle_id", "engine_capacity", "fuel_consumption"},
		{1, 25, 40},
	})

	_, err := ReadSource(context.Background(), path, SourceOptions{Sheet: "Vehicles"}, nil)
	assert.ErrorIs(t, err, ErrUnreadableSource)
	assert.ErrorContains(t, err, "missing column maximum_load")
}

func TestReadSourceCSV(t *testing.T) {
	path := tempPath(t, "fleet.csv")
	writeText(t, path, "\ufeff\"vehicle_id\", engine_capacity,fuel_consumption,maximum_load\n1,25,40,30\n2,10,\"6,0\",10\n")

	table, err := ReadSource(context.Background(), path, SourceOptions{}, nil)
	require.NoError(t, err)
	assert.Equal(t, model.VehicleFields, table.Header())
	assert.Equal(t, [][]string{{"1", "25", "40", "30"}, {"2", "10", "6,0", "10"}}, table.Rows)
	assert.Equal(t, model.ColumnText, table.Columns[2].Type)
	assert.Equal(t, model.ColumnInteger, table.Columns[3].Type)
}

func TestReadSourceCSVHeaderOnly(t *testing.T) {
	path := tempPath(t, "fleet.csv")
	writeText(t, path, "vehicle_id,engine_capacity,fuel_consumption,maximum_load\n")

	table, err := ReadSource(context.Background(), path, SourceOptions{}, nil)
	require.NoError(t, err)
	assert.Empty(t, table.Rows)
	assert.Len(t, table.Columns, 4)
}

func TestReadSourceCSVErrors(t *testing.T) {
	empty := tempPath(t, "empty.csv")
	writeText(t, empty, "")
	_, err := ReadSource(context.Background(), empty, SourceOptions{}, nil)
	assert.ErrorIs(t, err, ErrUnreadableSource)

	ragged := tempPath(t, "ragged.csv")
	writeText(t, ragged, "a,b\n1,2,3\n")
	_, err = ReadSource(context.Background(), ragged, SourceOptions{}, nil)
	assert.ErrorIs(t, err, ErrUnreadableSource)
}

func TestReadSourceMissingAndUnsupported(t *testing.T) {
	_, err := ReadSource(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), SourceOptions{}, nil)
	assert.ErrorIs(t, err, ErrUnreadableSource)

	txt := tempPath(t, "fleet.txt")
	writeText(t, txt, "vehicle_id\n1\n")
	_, err = ReadSource(context.Background(), txt, SourceOptions{}, nil)
	assert.ErrorIs(t, err, ErrUnreadableSource)
}

func TestReadSourceSQLite(t *testing.T) {
	ctx := context.Background()
	path := tempPath(t, "fleet.s3db")
	db, err := store.Open(path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.ReplaceTable(ctx, "convoy", []model.ScoredVehicle{{Vehicle: vehicle(9, 25, 40, 30), Score: 4}})
	require.NoError(t, err)

	table, err := ReadSource(ctx, path, SourceOptions{Table: "convoy"}, db)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"9", "25", "40", "30", "4"}}, table.Rows)

	_, err = ReadSource(ctx, path, SourceOptions{Table: "trucks"}, db)
	assert.ErrorIs(t, err, ErrUnreadableSource)

	_, err = ReadSource(ctx, path, SourceOptions{Table: "convoy"}, nil)
	assert.ErrorIs(t, err, ErrUnreadableSource)
}
