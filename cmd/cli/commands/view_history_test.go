package commands

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSince(t *testing.T) {
	loc, err := time.LoadLocation("America/Denver")
	require.NoError(t, err)

	got, err := parseSince("2026-03-01", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, loc), got)

	got, err = parseSince("", loc)
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	_, err = parseSince("03/01/2026", loc)
	assert.ErrorContains(t, err, "expected YYYY-MM-DD")
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "3.5", formatHours(3.5))
	assert.Equal(t, "0.0", formatHours(0))
	assert.Equal(t, "1,250.0", formatHours(1250))
}
