package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"convoy-pipeline/internal/model"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the sqlite connection of one pipeline run
type DB struct {
	db   *sql.DB
	path string
}

// Open acquires the sqlite database at dbPath. The file is created on first write.
func Open(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", dbPath, err)
	}
	db.SetMaxOpenConns(1)
	return &DB{db: db, path: dbPath}, nil
}

// Path returns the database file location
func (s *DB) Path() string { return s.path }

// Close releases the connection
func (s *DB) Close() error { return s.db.Close() }

// ReplaceTable drops any existing table and stores the scored fleet in a fresh one
func (s *DB) ReplaceTable(ctx context.Context, table string, rows []model.ScoredVehicle) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS `+quote(table)); err != nil {
		return 0, fmt.Errorf("failed to drop table %s: %w", table, err)
	}

	schema := `
	CREATE TABLE ` + quote(table) + ` (
		vehicle_id INTEGER PRIMARY KEY,
		engine_capacity INTEGER NOT NULL,
		fuel_consumption INTEGER NOT NULL,
		maximum_load INTEGER NOT NULL,
		score INTEGER NOT NULL
	);
	`
	if _, err := tx.ExecContext(ctx, schema); err != nil {
		return 0, fmt.Errorf("failed to create table %s: %w", table, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO `+quote(table)+
		` (vehicle_id, engine_capacity, fuel_consumption, maximum_load, score) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, r.VehicleID, r.EngineCapacity, r.FuelConsumption, r.MaximumLoad, r.Score); err != nil {
			return 0, fmt.Errorf("failed to insert vehicle %d: %w", r.VehicleID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}
	return len(rows), nil
}

// LoadTable reads every row of table. Column types come from the declared
// schema: INTEGER columns are ColumnInteger, everything else ColumnText.
func (s *DB) LoadTable(ctx context.Context, table string) (model.RawTable, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT * FROM `+quote(table))
	if err != nil {
		return model.RawTable{}, fmt.Errorf("failed to query table %s: %w", table, err)
	}
	defer rows.Close()

	types, err := rows.ColumnTypes()
	if err != nil {
		return model.RawTable{}, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}
	out := model.RawTable{Columns: make([]model.Column, len(types)), Rows: [][]string{}}
	for i, ct := range types {
		col := model.Column{Name: ct.Name(), Type: model.ColumnText}
		if ct.DatabaseTypeName() == "INTEGER" {
			col.Type = model.ColumnInteger
		}
		out.Columns[i] = col
	}

	for rows.Next() {
		cells := make([]sql.NullString, len(types))
		dest := make([]any, len(types))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return model.RawTable{}, fmt.Errorf("failed to scan row of %s: %w", table, err)
		}
		row := make([]string, len(cells))
		for i, c := range cells {
			row[i] = c.String
		}
		out.Rows = append(out.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return model.RawTable{}, err
	}
	return out, nil
}

// CountRows returns the number of rows stored in table
func (s *DB) CountRows(ctx context.Context, table string) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+quote(table)).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func quote(ident string) string {
	return strconv.Quote(ident)
}
