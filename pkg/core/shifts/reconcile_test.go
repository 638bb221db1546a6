package shifts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/shmira-scheduler/pkg/core/model"
)

// persist simulates writing shifts to a store with a header on row 1
func persist(shifts []model.Shift) []model.Shift {
	out := make([]model.Shift, len(shifts))
	for i, s := range shifts {
		s.Row = i + 2
		out[i] = s
	}
	return out
}

func TestDesired_SkipsMalformedEvents(t *testing.T) {
	loc := mustLoc(t)

	good := testEvent()
	bad := testEvent()
	bad.Token = "E2"
	bad.StartDate = "someday"
	empty := testEvent()
	empty.Token = "E3"
	empty.EndTime = "9:00 AM"

	desired, skips := Desired([]model.Event{good, bad, empty}, loc)
	assert.Len(t, desired, 3)
	require.Len(t, skips, 2)
	assert.Equal(t, "E2", skips[0].Record)
	assert.Equal(t, model.SkipMalformedTime, skips[0].Reason)
	assert.Equal(t, "E3", skips[1].Record)
	assert.Equal(t, model.SkipMissingFields, skips[1].Reason)
}

func TestDiff_EmptyStoreAddsEverything(t *testing.T) {
	loc := mustLoc(t)
	desired, _ := Desired([]model.Event{testEvent()}, loc)

	delta := Diff(desired, nil)
	assert.Len(t, delta.ToAdd, 3)
	assert.Empty(t, delta.ToRemove)
	assert.Empty(t, delta.Retained)
}

func TestDiff_Idempotent(t *testing.T) {
	loc := mustLoc(t)
	first, _ := Desired([]model.Event{testEvent()}, loc)
	stored := persist(Diff(first, nil).ToAdd)

	// Regenerating yields fresh ids but the same content keys
	second, _ := Desired([]model.Event{testEvent()}, loc)
	delta := Diff(second, stored)
	assert.True(t, delta.Empty())
}

func TestDiff_PersonalInfoEditDoesNotTouchShifts(t *testing.T) {
	loc := mustLoc(t)
	first, _ := Desired([]model.Event{testEvent()}, loc)
	stored := persist(first)

	edited := testEvent()
	edited.PersonalInfo = "Services at Har HaShem"
	second, _ := Desired([]model.Event{edited}, loc)

	delta := Diff(second, stored)
	assert.Empty(t, delta.ToAdd)
	assert.Empty(t, delta.ToRemove)
}

func TestDiff_ShortenedEventRemovesTail(t *testing.T) {
	loc := mustLoc(t)
	first, _ := Desired([]model.Event{testEvent()}, loc)
	stored := persist(first)

	shorter := testEvent()
	shorter.EndTime = "11:00 AM"
	second, _ := Desired([]model.Event{shorter}, loc)

	delta := Diff(second, stored)
	assert.Empty(t, delta.ToAdd)
	require.Len(t, delta.ToRemove, 1)
	assert.Equal(t, stored[2].ID, delta.ToRemove[0].ID)
	assert.Equal(t, 4, delta.ToRemove[0].Row)
}

func TestDiff_MovedEventReplacesShifts(t *testing.T) {
	loc := mustLoc(t)
	first, _ := Desired([]model.Event{testEvent()}, loc)
	stored := persist(first)

	moved := testEvent()
	moved.LocationName = "Greenwood & Myers"
	second, _ := Desired([]model.Event{moved}, loc)

	delta := Diff(second, stored)
	assert.Len(t, delta.ToAdd, 3)
	assert.Len(t, delta.ToRemove, 3)
	assert.Empty(t, delta.Retained, "additions replace the removed rows")
}

func TestDiff_KeepsOneRowWhenEverythingIsObsolete(t *testing.T) {
	loc := mustLoc(t)
	first, _ := Desired([]model.Event{testEvent()}, loc)
	stored := persist(first)

	delta := Diff(nil, stored)
	assert.Empty(t, delta.ToAdd)
	require.Len(t, delta.Retained, 1)
	assert.Equal(t, 2, delta.Retained[0].Row)
	assert.Len(t, delta.ToRemove, 2)

	// Running again against the single leftover row changes nothing
	again := Diff(nil, delta.Retained)
	assert.True(t, again.Empty())
	assert.Len(t, again.Retained, 1)
}

func TestDiff_DuplicateDesiredKeysAddedOnce(t *testing.T) {
	loc := mustLoc(t)
	dup := testEvent()
	dup.Token = "E1-resubmitted"

	desired, _ := Desired([]model.Event{testEvent(), dup}, loc)
	require.Len(t, desired, 6)

	delta := Diff(desired, nil)
	assert.Len(t, delta.ToAdd, 3)
}
