package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/shmira-scheduler/pkg/core/model"
)

func TestWriteToTextfile(t *testing.T) {
	m := New()
	m.ShiftsAdded.Add(3)
	m.Skip("shifts", []model.Skip{
		{Record: "E9", Reason: model.SkipMalformedTime},
		{Record: "E10", Reason: model.SkipMalformedTime},
	})

	started := time.Date(2026, 1, 19, 3, 0, 0, 0, time.UTC)
	m.ObserveRun(started, started.Add(1500*time.Millisecond), nil)
	m.ObserveRun(started, started.Add(time.Second), errors.New("boom"))

	path := filepath.Join(t.TempDir(), "shmira.prom")
	require.NoError(t, m.WriteToTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "shmira_shifts_added_total 3")
	assert.Contains(t, out, `shmira_skipped_records_total{phase="shifts",reason="`+string(model.SkipMalformedTime)+`"} 2`)
	assert.Contains(t, out, `shmira_runs_total{outcome="success"} 1`)
	assert.Contains(t, out, `shmira_runs_total{outcome="failure"} 1`)
	assert.Contains(t, out, "shmira_last_run_duration_seconds 1")
}

func TestWriteToTextfile_BadPath(t *testing.T) {
	err := New().WriteToTextfile(filepath.Join(t.TempDir(), "missing", "shmira.prom"))
	assert.Error(t, err)
}
