package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/shmira-scheduler/pkg/sheetssql"
)

var _ sheetssql.Backend = (*DB)(nil)

func (db *DB) ReadAll(ctx context.Context, collection string) ([][]interface{}, error) {
	if err := db.requireCollection(ctx, db.pool, collection); err != nil {
		return nil, err
	}

	rows, err := db.pool.Query(ctx,
		`SELECT cells::text FROM record_rows WHERE collection = $1 ORDER BY id`, collection)
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
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", collection, err)
	}
	return values, nil
}

func (db *DB) AppendRows(ctx context.Context, collection string, rows [][]interface{}) error {
	return pgx.BeginFunc(ctx, db.pool, func(tx pgx.Tx) error {
		if err := db.requireCollection(ctx, tx, collection); err != nil {
			return err
		}
		return insertRows(ctx, tx, collection, rows)
	})
}

func (db *DB) DeleteRow(ctx context.Context, collection string, row int) error {
	tag, err := db.pool.Exec(ctx, `
		DELETE FROM record_rows WHERE id = (
			SELECT id FROM record_rows WHERE collection = $1 ORDER BY id OFFSET $2 LIMIT 1
		)`, collection, row-1)
	if err != nil {
		return fmt.Errorf("failed to delete row %d from %s: %w", row, collection, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("row %d out of range for %q", row, collection)
	}
	return nil
}

func (db *DB) OverwriteCell(ctx context.Context, collection string, row, col int, value interface{}) error {
	return pgx.BeginFunc(ctx, db.pool, func(tx pgx.Tx) error {
		var id int64
		var cells string
		err := tx.QueryRow(ctx, `
			SELECT id, cells::text FROM record_rows
			WHERE collection = $1 ORDER BY id OFFSET $2 LIMIT 1
			FOR UPDATE`, collection, row-1).Scan(&id, &cells)
		if errors.Is(err, pgx.ErrNoRows) {
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
		if _, err := tx.Exec(ctx, `UPDATE record_rows SET cells = $1::jsonb WHERE id = $2`, string(encoded), id); err != nil {
			return fmt.Errorf("failed to update %s row %d: %w", collection, row, err)
		}
		return nil
	})
}

func (db *DB) EnsureExists(ctx context.Context, collection string, header []interface{}) error {
	return pgx.BeginFunc(ctx, db.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`INSERT INTO record_collections (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, collection); err != nil {
			return fmt.Errorf("failed to register %s: %w", collection, err)
		}

		var empty bool
		if err := tx.QueryRow(ctx,
			`SELECT NOT EXISTS (SELECT 1 FROM record_rows WHERE collection = $1)`, collection).Scan(&empty); err != nil {
			return fmt.Errorf("failed to inspect %s: %w", collection, err)
		}
		if !empty {
			return nil
		}
		return insertRows(ctx, tx, collection, [][]interface{}{header})
	})
}

// querier is satisfied by both the pool and a transaction
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (db *DB) requireCollection(ctx context.Context, q querier, collection string) error {
	var exists bool
	if err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM record_collections WHERE name = $1)`, collection).Scan(&exists); err != nil {
		return fmt.Errorf("failed to look up %s: %w", collection, err)
	}
	if !exists {
		return fmt.Errorf("collection %q not found", collection)
	}
	return nil
}

func insertRows(ctx context.Context, tx pgx.Tx, collection string, rows [][]interface{}) error {
	batch := &pgx.Batch{}
	for _, row := range rows {
		encoded, err := sheetssql.MarshalRow(row)
		if err != nil {
			return err
		}
		batch.Queue(`INSERT INTO record_rows (collection, cells) VALUES ($1, $2::jsonb)`, collection, string(encoded))
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", collection, err)
	}
	return nil
}
