package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/shmira-scheduler/internal/config"
	"github.com/jakechorley/shmira-scheduler/pkg/sheetssql"
)

func TestImportCollections_ReplacesDestination(t *testing.T) {
	ctx := context.Background()
	src := sheetssql.NewMemoryBackend()
	src.Seed("Members",
		[]interface{}{"Approvals", "Token"},
		[]interface{}{"yes", "M1"},
		[]interface{}{"yes", "M2"},
	)
	src.Seed("Form Responses 1",
		[]interface{}{"intake"},
		[]interface{}{"Timestamp", "Token"},
		[]interface{}{"1/1/2026", "E1"},
	)

	dst := sheetssql.NewMemoryBackend()
	dst.Seed("Members",
		[]interface{}{"Approvals", "Token"},
		[]interface{}{"yes", "OLD"},
	)

	imported, err := ImportCollections(ctx, src, dst, []string{"Members", "Form Responses 1"}, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, imported, 2)
	assert.Equal(t, ImportedCollection{Name: "Members", Replaced: 1, Copied: 2}, imported[0])
	assert.Equal(t, ImportedCollection{Name: "Form Responses 1", Replaced: 0, Copied: 2}, imported[1])

	assert.Equal(t, src.Rows("Members"), dst.Rows("Members"))
	assert.Equal(t, src.Rows("Form Responses 1"), dst.Rows("Form Responses 1"))

	// Importing again gives the same result
	_, err = ImportCollections(ctx, src, dst, []string{"Members"}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, src.Rows("Members"), dst.Rows("Members"))
}

func TestImportCollections_NarrowerHeaderClearsOldColumns(t *testing.T) {
	ctx := context.Background()
	src := sheetssql.NewMemoryBackend()
	src.Seed("Locations",
		[]interface{}{"Mortuary Name", "City"},
		[]interface{}{"Feldman Mortuary", "Denver"},
	)

	dst := sheetssql.NewMemoryBackend()
	dst.Seed("Locations",
		[]interface{}{"Mortuary Name", "Street Address", "City", "Map URL"},
		[]interface{}{"Old Mortuary", "1 Main St", "Boulder", "https://maps.example.org/1"},
	)

	imported, err := ImportCollections(ctx, src, dst, []string{"Locations"}, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, imported, 1)

	rows := dst.Rows("Locations")
	require.Len(t, rows, 2)
	assert.Equal(t, []interface{}{"Mortuary Name", "City", "", ""}, rows[0])
	assert.Equal(t, []interface{}{"Feldman Mortuary", "Denver"}, rows[1])
}

func TestImportCollections_MissingSource(t *testing.T) {
	_, err := ImportCollections(context.Background(), sheetssql.NewMemoryBackend(), sheetssql.NewMemoryBackend(), []string{"Guests"}, zap.NewNop())
	require.Error(t, err)
}

func TestInputCollections(t *testing.T) {
	assert.Equal(t, []string{"Form Responses 1", "Guests", "Members", "Locations"}, InputCollections(config.DefaultCollections()))
}
