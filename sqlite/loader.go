// Package sqlite provides a convenience adapter that loads a row
// dataset out of a SQLite database into the in-memory slice the filter
// registry is bound to. Dataset construction is the host application's
// concern; this adapter only covers the common case of a table-backed
// grid. Filter state itself is never persisted.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// queryer abstracts the common query method of *sql.DB and *sql.Tx so
// a dataset can be loaded inside or outside a transaction.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// RowScanner converts the current cursor position into one application
// row. It must call none of the cursor movement methods.
type RowScanner[T any] func(rows *sql.Rows) (T, error)

// Loader reads application rows from a SQLite database.
type Loader[T any] struct {
	db     queryer
	scan   RowScanner[T]
	logger *zap.Logger
}

// NewLoader creates a loader around a database handle or transaction.
// A nil logger is replaced by a no-op logger.
func NewLoader[T any](db queryer, scan RowScanner[T], logger *zap.Logger) *Loader[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader[T]{db: db, scan: scan, logger: logger}
}

// Load executes the query and scans every result row into the dataset
// slice. The returned slice is ready to hand to registry.New.
func (l *Loader[T]) Load(ctx context.Context, query string, args ...any) ([]T, error) {
	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("dataset query failed: %w", err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		row, err := l.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning dataset row %d: %w", len(out), err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading dataset rows: %w", err)
	}

	l.logger.Debug("Loaded dataset", zap.Int("rows", len(out)))
	return out, nil
}

// Load is a one-shot convenience wrapper around NewLoader.
func Load[T any](ctx context.Context, db *sql.DB, query string, scan RowScanner[T], args ...any) ([]T, error) {
	return NewLoader(db, scan, nil).Load(ctx, query, args...)
}
