package db

import (
	"context"
	"fmt"

	"github.com/jakechorley/shmira-scheduler/pkg/core/model"
	"github.com/jakechorley/shmira-scheduler/pkg/sheetssql"
)

// GetMappings retrieves the event map
func (db *DB) GetMappings(ctx context.Context) ([]model.Mapping, error) {
	rows, rowErrs, err := sheetssql.GetTableAs[MappingRow](ctx, db.ssql, db.tables.Mappings)
	if err != nil {
		return nil, fmt.Errorf("failed to get mappings: %w", err)
	}
	db.skipRows(rowErrs)

	mappings := make([]model.Mapping, 0, len(rows))
	for _, r := range rows {
		mappings = append(mappings, r.Value.toModel(r.Index))
	}
	return mappings, nil
}

// InsertMappings appends new unsent mappings
func (db *DB) InsertMappings(ctx context.Context, mappings []model.Mapping) error {
	if err := sheetssql.InsertModels(ctx, db.ssql, db.tables.Mappings, mappingRows(mappings)); err != nil {
		return fmt.Errorf("failed to insert mappings: %w", err)
	}
	return nil
}

// ArchiveMappings copies mappings into the mapping archive as they are
func (db *DB) ArchiveMappings(ctx context.Context, mappings []model.Mapping) error {
	if err := sheetssql.InsertModels(ctx, db.ssql, db.tables.MappingArchive, mappingRows(mappings)); err != nil {
		return fmt.Errorf("failed to archive mappings: %w", err)
	}
	return nil
}

// DeleteMappings removes persisted mappings by row
func (db *DB) DeleteMappings(ctx context.Context, mappings []model.Mapping) error {
	rows := make([]int, len(mappings))
	for i, m := range mappings {
		rows[i] = m.Row
	}
	if err := db.ssql.DeleteRows(ctx, db.tables.Mappings, rows); err != nil {
		return fmt.Errorf("failed to delete mappings: %w", err)
	}
	return nil
}

// MarkMappingSent records a successful send. The date is written before the
// flag so a partial failure leaves the row unsent.
func (db *DB) MarkMappingSent(ctx context.Context, row int, sentAt string) error {
	if err := sheetssql.UpdateField(ctx, db.ssql, db.tables.Mappings, row, "dateSent", sentAt); err != nil {
		return fmt.Errorf("failed to mark mapping row %d sent: %w", row, err)
	}
	if err := sheetssql.UpdateField(ctx, db.ssql, db.tables.Mappings, row, "emailSent", true); err != nil {
		return fmt.Errorf("failed to mark mapping row %d sent: %w", row, err)
	}
	return nil
}

func mappingRows(mappings []model.Mapping) []MappingRow {
	rows := make([]MappingRow, len(mappings))
	for i, m := range mappings {
		rows[i] = mappingRowFrom(m)
	}
	return rows
}
