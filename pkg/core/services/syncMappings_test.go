package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/shmira-scheduler/pkg/core/model"
)

func TestSyncMappings_AddsMembersAndMatchingGuests(t *testing.T) {
	ctx := context.Background()
	database, _ := newFixture(t)

	result, err := SyncMappings(ctx, database, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, result.Added, 3)
	assert.Empty(t, result.Archived)

	mappings, err := database.GetMappings(ctx)
	require.NoError(t, err)
	require.Len(t, mappings, 3)
	assert.Equal(t, model.MappingKey{Source: model.SourceMember, EventToken: "E1", PersonToken: "M1"}, mappings[0].Key())
	assert.Equal(t, model.MappingKey{Source: model.SourceMember, EventToken: "E1", PersonToken: "M2"}, mappings[1].Key())
	assert.Equal(t, model.MappingKey{Source: model.SourceGuest, EventToken: "E1", PersonToken: "G1"}, mappings[2].Key())
	for _, m := range mappings {
		assert.False(t, m.EmailSent)
		assert.Empty(t, m.DateSent)
	}
}

func TestSyncMappings_PreservesSentState(t *testing.T) {
	ctx := context.Background()
	database, _ := newFixture(t)

	_, err := SyncMappings(ctx, database, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, database.MarkMappingSent(ctx, 2, "2026-03-01 12:00:00"))

	result, err := SyncMappings(ctx, database, zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, result.Added)
	assert.Empty(t, result.Archived)
	assert.Equal(t, 3, result.Retained)

	mappings, err := database.GetMappings(ctx)
	require.NoError(t, err)
	require.Len(t, mappings, 3)
	assert.True(t, mappings[0].EmailSent)
	assert.Equal(t, "2026-03-01 12:00:00", mappings[0].DateSent)
}

func TestSyncMappings_ArchivesObsoleteRows(t *testing.T) {
	ctx := context.Background()
	database, backend := newFixture(t)

	_, err := SyncMappings(ctx, database, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, database.MarkMappingSent(ctx, 2, "2026-03-01 12:00:00"))

	// Withdraw approval of M2 (row 3, column 1)
	require.NoError(t, backend.OverwriteCell(ctx, membersSheet, 3, 1, "No"))

	result, err := SyncMappings(ctx, database, zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, result.Added)
	require.Len(t, result.Archived, 1)
	assert.Equal(t, "M2", result.Archived[0].PersonToken)

	assert.Equal(t, []interface{}{"Member", "E1", "M2", false, ""}, backend.Rows("Archive Event Map")[1])

	mappings, err := database.GetMappings(ctx)
	require.NoError(t, err)
	require.Len(t, mappings, 2)
	assert.Equal(t, "M1", mappings[0].PersonToken)
	assert.True(t, mappings[0].EmailSent)
	assert.Equal(t, "G1", mappings[1].PersonToken)
}
