package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitLogger_WritesFile(t *testing.T) {
	t.Chdir(t.TempDir())

	logger, err := InitLogger("test", false)
	require.NoError(t, err)
	logger.Debug("debug line")
	_ = logger.Sync()

	matches, err := filepath.Glob(filepath.Join(LogsDir, "test_*.log"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "debug line")
}

func TestForRun_TagsEntries(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	ForRun(zap.New(core), "01J0000000000000000000000").Info("pass started")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "01J0000000000000000000000", entries[0].ContextMap()["run_id"])
}
