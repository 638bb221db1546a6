package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/shmira-scheduler/pkg/sheetssql"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_MissingCollection(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.ReadAll(ctx, "Event Map")
	assert.Error(t, err)
	assert.Error(t, store.AppendRows(ctx, "Event Map", [][]interface{}{{"x"}}))
}

func TestStore_RoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	header := []interface{}{"source", "eventToken", "personToken", "emailSent", "dateSent"}
	require.NoError(t, store.EnsureExists(ctx, "Event Map", header))
	require.NoError(t, store.EnsureExists(ctx, "Event Map", header))

	require.NoError(t, store.AppendRows(ctx, "Event Map", [][]interface{}{
		{"Member", "E1", "M1", false, ""},
		{"Guest", "E1", "G1", false, ""},
		{"Member", "E2", "M1", false, ""},
	}))

	require.NoError(t, store.DeleteRow(ctx, "Event Map", 2))
	require.NoError(t, store.OverwriteCell(ctx, "Event Map", 2, 4, true))
	require.NoError(t, store.OverwriteCell(ctx, "Event Map", 2, 5, "2026-01-19 10:00:00"))

	assert.Error(t, store.DeleteRow(ctx, "Event Map", 9))
	assert.Error(t, store.OverwriteCell(ctx, "Event Map", 9, 1, "x"))

	values, err := store.ReadAll(ctx, "Event Map")
	require.NoError(t, err)
	assert.Equal(t, [][]interface{}{
		header,
		{"Guest", "E1", "G1", true, "2026-01-19 10:00:00"},
		{"Member", "E2", "M1", false, ""},
	}, values)
}

func TestStore_ServesTabularLayer(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	type shiftRow struct {
		ID         string `ssql_header:"Shift ID" ssql_required:"true"`
		StartEpoch int64  `ssql_header:"Start Epoch" ssql_required:"true"`
	}
	table := sheetssql.MustTableFromModel("Shifts Master", 1, shiftRow{})
	db := sheetssql.NewDB(store)

	require.NoError(t, db.EnsureTable(ctx, table))
	require.NoError(t, sheetssql.InsertModels(ctx, db, table, []shiftRow{
		{ID: "s1", StartEpoch: 1768838400000},
		{ID: "s2", StartEpoch: 1768842000000},
	}))

	rows, _, err := sheetssql.GetTableAs[shiftRow](ctx, db, table)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 3, rows[1].Index)
	assert.Equal(t, int64(1768842000000), rows[1].Value.StartEpoch)
}
