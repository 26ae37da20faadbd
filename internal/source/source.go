// Package source reads chart points from a SQLite database.
package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/verte-zerg/canvasplot/internal/plot"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrTooFewColumns is returned for queries that select fewer than two columns.
var ErrTooFewColumns = errors.New("query must select at least two columns")

// Source wraps a SQLite database that series queries run against.
type Source struct {
	db *sql.DB
}

// Open opens an existing SQLite database. A missing file is an error rather
// than a new empty database.
func Open(path string) (*Source, error) {
	if path == "" {
		return nil, fmt.Errorf("database path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to stat database: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on ping failure.
			_ = cerr
		}
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &Source{db: db}, nil
}

// Close closes the underlying database.
func (s *Source) Close() error {
	return s.db.Close()
}

// Points runs query and reads the first two columns of every row as x and y,
// in row order. Rows where either value is NULL or not finite are skipped.
func (s *Source) Points(ctx context.Context, query string, args ...any) ([]plot.Point, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to run query: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort close.
			_ = cerr
		}
	}()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}
	if len(cols) < 2 {
		return nil, ErrTooFewColumns
	}

	var x, y sql.NullFloat64
	dest := make([]any, len(cols))
	dest[0] = &x
	dest[1] = &y
	for i := 2; i < len(cols); i++ {
		dest[i] = new(sql.RawBytes)
	}

	var points []plot.Point
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		if !x.Valid || !y.Valid || !finite(x.Float64) || !finite(y.Float64) {
			continue
		}
		points = append(points, plot.Point{X: x.Float64, Y: y.Float64})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	return points, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
