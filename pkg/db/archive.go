package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jakechorley/shmira-scheduler/pkg/core/model"
	"github.com/jakechorley/shmira-scheduler/pkg/sheetssql"
)

// GetArchiveKeys returns the set of keys already in the historical index
func (db *DB) GetArchiveKeys(ctx context.Context) (map[string]bool, error) {
	rows, rowErrs, err := sheetssql.GetTableAs[ArchiveIndexRow](ctx, db.ssql, db.tables.ArchiveIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to get archive index: %w", err)
	}
	db.skipRows(rowErrs)

	keys := make(map[string]bool, len(rows))
	for _, r := range rows {
		if k := strings.TrimSpace(r.Value.ArchiveKey); k != "" {
			keys[k] = true
		}
	}
	return keys, nil
}

// GetArchive retrieves every historical record
func (db *DB) GetArchive(ctx context.Context) ([]model.ArchiveRecord, error) {
	rows, rowErrs, err := sheetssql.GetTableAs[ArchiveRow](ctx, db.ssql, db.tables.Archive)
	if err != nil {
		return nil, fmt.Errorf("failed to get archive: %w", err)
	}
	db.skipRows(rowErrs)

	records := make([]model.ArchiveRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.Value.toModel())
	}
	return records, nil
}

// AppendArchive appends historical records
func (db *DB) AppendArchive(ctx context.Context, records []model.ArchiveRecord) error {
	rows := make([]ArchiveRow, len(records))
	for i, r := range records {
		rows[i] = archiveRowFrom(r)
	}
	if err := sheetssql.InsertModels(ctx, db.ssql, db.tables.Archive, rows); err != nil {
		return fmt.Errorf("failed to append archive: %w", err)
	}
	return nil
}

// AppendArchiveKeys appends keys to the historical index
func (db *DB) AppendArchiveKeys(ctx context.Context, keys []string) error {
	rows := make([]ArchiveIndexRow, len(keys))
	for i, k := range keys {
		rows[i] = ArchiveIndexRow{ArchiveKey: k}
	}
	if err := sheetssql.InsertModels(ctx, db.ssql, db.tables.ArchiveIndex, rows); err != nil {
		return fmt.Errorf("failed to append archive index: %w", err)
	}
	return nil
}
