package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/jakechorley/shmira-scheduler/pkg/sheetssql"
)

//go:embed schema.sql
var schemaSQL string

// Store is a record store in a single SQLite file. Rows keep their insertion
// order by id; the first row of a collection is its header.
type Store struct {
	db *sql.DB
}

var _ sheetssql.Backend = (*Store)(nil)

// Open creates or opens a SQLite database at path and applies the schema.
// ":memory:" gives a throwaway store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite has a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ReadAll(ctx context.Context, collection string) ([][]interface{}, error) {
	if err := requireCollection(ctx, s.db, collection); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT cells FROM record_rows WHERE collection = ? ORDER BY id`, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	defer rows.Close()

	var values [][]interface{}
	for rows.Next() {
		var cells string
		if err := rows.Scan(&cells); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", collection, err)
		}
		row, err := sheetssql.UnmarshalRow([]byte(cells))
		if err != nil {
			return nil, err
		}
		values = append(values, row)
	}
	return values, rows.Err()
}

func (s *Store) AppendRows(ctx context.Context, collection string, rows [][]interface{}) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := requireCollection(ctx, tx, collection); err != nil {
			return err
		}
		return insertRows(ctx, tx, collection, rows)
	})
}

func (s *Store) DeleteRow(ctx context.Context, collection string, row int) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM record_rows WHERE id = (
			SELECT id FROM record_rows WHERE collection = ? ORDER BY id LIMIT 1 OFFSET ?
		)`, collection, row-1)
	if err != nil {
		return fmt.Errorf("failed to delete row %d from %s: %w", row, collection, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("row %d out of range for %q", row, collection)
	}
	return nil
}

func (s *Store) OverwriteCell(ctx context.Context, collection string, row, col int, value interface{}) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var id int64
		var cells string
		err := tx.QueryRowContext(ctx, `
			SELECT id, cells FROM record_rows
			WHERE collection = ? ORDER BY id LIMIT 1 OFFSET ?`, collection, row-1).Scan(&id, &cells)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("cell (%d,%d) out of range for %q", row, col, collection)
		}
		if err != nil {
			return fmt.Errorf("failed to read %s row %d: %w", collection, row, err)
		}

		values, err := sheetssql.UnmarshalRow([]byte(cells))
		if err != nil {
			return err
		}
		for len(values) < col {
			values = append(values, "")
		}
		values[col-1] = value

		encoded, err := sheetssql.MarshalRow(values)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `UPDATE record_rows SET cells = ? WHERE id = ?`, string(encoded), id); err != nil {
			return fmt.Errorf("failed to update %s row %d: %w", collection, row, err)
		}
		return nil
	})
}

func (s *Store) EnsureExists(ctx context.Context, collection string, header []interface{}) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO record_collections (name) VALUES (?)`, collection); err != nil {
			return fmt.Errorf("failed to register %s: %w", collection, err)
		}

		var count int
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM record_rows WHERE collection = ?`, collection).Scan(&count); err != nil {
			return fmt.Errorf("failed to inspect %s: %w", collection, err)
		}
		if count > 0 {
			return nil
		}
		return insertRows(ctx, tx, collection, [][]interface{}{header})
	})
}

func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func requireCollection(ctx context.Context, q queryRower, collection string) error {
	var exists bool
	if err := q.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM record_collections WHERE name = ?)`, collection).Scan(&exists); err != nil {
		return fmt.Errorf("failed to look up %s: %w", collection, err)
	}
	if !exists {
		return fmt.Errorf("collection %q not found", collection)
	}
	return nil
}

func insertRows(ctx context.Context, tx *sql.Tx, collection string, rows [][]interface{}) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO record_rows (collection, cells) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert into %s: %w", collection, err)
	}
	defer stmt.Close()

	for _, row := range rows {
		encoded, err := sheetssql.MarshalRow(row)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, collection, string(encoded)); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", collection, err)
		}
	}
	return nil
}
