package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/shmira-scheduler/internal/config"
	"github.com/jakechorley/shmira-scheduler/pkg/sheetssql"
)

// ImportedCollection reports one copied collection
type ImportedCollection struct {
	Name     string
	Replaced int
	Copied   int
}

// InputCollections lists the collections filled by intake forms and admins
func InputCollections(c config.Collections) []string {
	return []string{c.Events, c.ApprovedGuests, c.ApprovedMembers, c.Locations}
}

// ImportCollections replaces each named collection in dst with a copy of the
// same collection in src, first row included, so header rows stay where they are
func ImportCollections(
	ctx context.Context,
	src, dst sheetssql.Backend,
	names []string,
	logger *zap.Logger,
) ([]ImportedCollection, error) {
	imported := make([]ImportedCollection, 0, len(names))

	for _, name := range names {
		rows, err := src.ReadAll(ctx, name)
		if err != nil {
			return imported, fmt.Errorf("failed to read %s from source: %w", name, err)
		}
		if len(rows) == 0 {
			logger.Warn("Source collection is empty, skipping", zap.String("collection", name))
			continue
		}

		if err := dst.EnsureExists(ctx, name, rows[0]); err != nil {
			return imported, fmt.Errorf("failed to create %s: %w", name, err)
		}

		existing, err := dst.ReadAll(ctx, name)
		if err != nil {
			return imported, fmt.Errorf("failed to read %s from destination: %w", name, err)
		}
		if len(existing) == 0 {
			return imported, fmt.Errorf("destination %s has no first row after create", name)
		}

		// Everything below the first row is replaced, bottom up
		for row := len(existing); row >= 2; row-- {
			if err := dst.DeleteRow(ctx, name, row); err != nil {
				return imported, fmt.Errorf("failed to clear %s row %d: %w", name, row, err)
			}
		}

		first := existing[0]
		if !sameRow(first, rows[0]) {
			// Cells past the source width are blanked
			width := max(len(first), len(rows[0]))
			for col := 0; col < width; col++ {
				var cell interface{} = ""
				if col < len(rows[0]) {
					cell = rows[0][col]
				}
				if err := dst.OverwriteCell(ctx, name, 1, col+1, cell); err != nil {
					return imported, fmt.Errorf("failed to update %s first row: %w", name, err)
				}
			}
		}

		if len(rows) > 1 {
			if err := dst.AppendRows(ctx, name, rows[1:]); err != nil {
				return imported, fmt.Errorf("failed to copy %s: %w", name, err)
			}
		}

		logger.Info("Collection imported",
			zap.String("collection", name),
			zap.Int("replaced", len(existing)-1),
			zap.Int("copied", len(rows)-1))
		imported = append(imported, ImportedCollection{Name: name, Replaced: len(existing) - 1, Copied: len(rows) - 1})
	}

	return imported, nil
}

func sameRow(a, b []interface{}) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if fmt.Sprint(a[i]) != fmt.Sprint(b[i]) {
			return false
		}
	}
	return true
}
