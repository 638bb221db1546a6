package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFiles(t *testing.T) {
	files, err := migrationFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{"001_create_record_rows.sql"}, files)
}

// newTestDB connects to TEST_DATABASE_URL and skips when it is unset
func newTestDB(t *testing.T) *DB {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := NewDB(ctx, url)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, db.RunMigrations(ctx))
	return db
}

func TestStore_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	collection := fmt.Sprintf("test_%d", time.Now().UnixNano())

	_, err := db.ReadAll(ctx, collection)
	require.Error(t, err)

	header := []interface{}{"Shift ID", "Start Epoch", "Sent"}
	require.NoError(t, db.EnsureExists(ctx, collection, header))
	require.NoError(t, db.EnsureExists(ctx, collection, header))

	require.NoError(t, db.AppendRows(ctx, collection, [][]interface{}{
		{"s1", "1768838400000", false},
		{"s2", "1768842000000", false},
		{"s3", "1768845600000", false},
	}))
	require.NoError(t, db.DeleteRow(ctx, collection, 2))
	require.NoError(t, db.OverwriteCell(ctx, collection, 3, 3, true))
	require.NoError(t, db.OverwriteCell(ctx, collection, 2, 5, "x"))
	assert.Error(t, db.DeleteRow(ctx, collection, 10))

	values, err := db.ReadAll(ctx, collection)
	require.NoError(t, err)
	assert.Equal(t, [][]interface{}{
		{"Shift ID", "Start Epoch", "Sent"},
		{"s2", "1768842000000", false, "", "x"},
		{"s3", "1768845600000", true},
	}, values)

	// Numbers stored by other writers come back as json.Number
	require.NoError(t, db.AppendRows(ctx, collection, [][]interface{}{{"s4", 42}}))
	values, err = db.ReadAll(ctx, collection)
	require.NoError(t, err)
	assert.Equal(t, json.Number("42"), values[3][1])
}
