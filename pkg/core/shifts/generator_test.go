package shifts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/shmira-scheduler/pkg/core/model"
)

func mustLoc(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Denver")
	require.NoError(t, err)
	return loc
}

func testEvent() model.Event {
	return model.Event{
		Token:        "E1",
		DeceasedName: "Ruth Cohen",
		LocationName: "Crist Mortuary",
		StartDate:    "1/19/2026",
		StartTime:    "9:00 AM",
		EndDate:      "1/19/2026",
		EndTime:      "11:30 AM",
		PersonalInfo: "Beloved grandmother",
		Pronoun:      "Her",
		MetOrMeita:   "Meita",
	}
}

func TestGenerate_ThreeAndAHalfHours(t *testing.T) {
	loc := mustLoc(t)
	start := time.Date(2026, 1, 19, 9, 0, 0, 0, loc)
	end := start.Add(3*time.Hour + 30*time.Minute)

	shifts := Generate(testEvent(), start, end, loc)
	require.Len(t, shifts, 4)

	for i := 0; i < 3; i++ {
		assert.Equal(t, int64(time.Hour/time.Millisecond), shifts[i].EndEpoch-shifts[i].StartEpoch)
	}
	assert.Equal(t, int64(30*time.Minute/time.Millisecond), shifts[3].EndEpoch-shifts[3].StartEpoch)

	// Contiguous and covering exactly [start, end)
	assert.Equal(t, start.UnixMilli(), shifts[0].StartEpoch)
	for i := 1; i < len(shifts); i++ {
		assert.Equal(t, shifts[i-1].EndEpoch, shifts[i].StartEpoch)
	}
	assert.Equal(t, end.UnixMilli(), shifts[3].EndEpoch)
}

func TestGenerate_ShiftFields(t *testing.T) {
	loc := mustLoc(t)
	start := time.Date(2026, 1, 19, 9, 0, 0, 0, loc)
	end := time.Date(2026, 1, 19, 11, 30, 0, 0, loc)

	shifts := Generate(testEvent(), start, end, loc)
	require.Len(t, shifts, 3)

	assert.Equal(t, "9:00 AM - 10:00 AM", shifts[0].DisplayTime)
	assert.Equal(t, "10:00 AM - 11:00 AM", shifts[1].DisplayTime)
	assert.Equal(t, "11:00 AM - 11:30 AM", shifts[2].DisplayTime)

	ids := make(map[string]bool)
	for _, s := range shifts {
		assert.Equal(t, "E1", s.EventToken)
		assert.Equal(t, "Ruth Cohen", s.DeceasedName)
		assert.Equal(t, "Crist Mortuary", s.LocationName)
		assert.Equal(t, "Mon, Jan 19", s.EventDate)
		assert.Equal(t, 1, s.MaxVolunteers)
		assert.Equal(t, 0, s.CurrentVolunteers)
		assert.Equal(t, "Her", s.Pronoun)
		assert.Equal(t, "Meita", s.MetOrMeita)
		assert.Equal(t, "Beloved grandmother", s.PersonalInfo)
		assert.Zero(t, s.Row)
		assert.NotEmpty(t, s.ID)
		ids[s.ID] = true
	}
	assert.Len(t, ids, 3, "each shift gets its own id")
}

func TestGenerate_EmptyCases(t *testing.T) {
	loc := mustLoc(t)
	start := time.Date(2026, 1, 19, 9, 0, 0, 0, loc)

	assert.Empty(t, Generate(testEvent(), start, start, loc), "zero length span")
	assert.Empty(t, Generate(testEvent(), start, start.Add(-time.Hour), loc), "end before start")

	noName := testEvent()
	noName.DeceasedName = "  "
	assert.Empty(t, Generate(noName, start, start.Add(time.Hour), loc))

	noLocation := testEvent()
	noLocation.LocationName = ""
	assert.Empty(t, Generate(noLocation, start, start.Add(time.Hour), loc))
}

func TestGenerate_OvernightSpanAcrossDays(t *testing.T) {
	loc := mustLoc(t)
	start := time.Date(2026, 1, 19, 22, 0, 0, 0, loc)
	end := time.Date(2026, 1, 20, 1, 15, 0, 0, loc)

	shifts := Generate(testEvent(), start, end, loc)
	require.Len(t, shifts, 4)
	assert.Equal(t, "Mon, Jan 19", shifts[1].EventDate)
	assert.Equal(t, "Tue, Jan 20", shifts[2].EventDate)
	assert.Equal(t, "1:00 AM - 1:15 AM", shifts[3].DisplayTime)
}
