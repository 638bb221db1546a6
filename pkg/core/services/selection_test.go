package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/shmira-scheduler/pkg/core/model"
	"github.com/jakechorley/shmira-scheduler/pkg/db"
)

func newSelectionFixture(t *testing.T) (*db.DB, []model.Shift) {
	t.Helper()
	database, _ := newFixture(t)
	_, err := SyncShifts(context.Background(), database, testConfig(), zap.NewNop())
	require.NoError(t, err)
	shifts, err := database.GetShifts(context.Background())
	require.NoError(t, err)
	require.Len(t, shifts, 4)
	return database, shifts
}

func TestSetVolunteerShifts_AddsAndConfirms(t *testing.T) {
	ctx := context.Background()
	database, shifts := newSelectionFixture(t)
	setClock(t, at(12, 0))

	mailer := &mockMailer{}
	result, err := SetVolunteerShifts(ctx, database, mailer, testConfig(), zap.NewNop(), "M1", []string{shifts[0].ID, shifts[1].ID, shifts[0].ID})
	require.NoError(t, err)
	require.Len(t, result.Changed, 2)
	assert.Nil(t, result.Confirmation)

	assignments, err := database.GetAssignments(ctx)
	require.NoError(t, err)
	require.Len(t, assignments, 2)
	assert.Equal(t, "03/01/2026 12:00:00", assignments[0].Timestamp)
	assert.Equal(t, "Miriam Adler", assignments[0].VolunteerName)
	assert.Equal(t, "M1", assignments[1].VolunteerToken)

	require.Len(t, mailer.sentEmails, 1)
	assert.Equal(t, "miriam@example.org", mailer.sentEmails[0].to)
	assert.Equal(t, "Chevra Kadisha Volunteer: Confirmation of Shift Addition: 2 shifts", mailer.sentEmails[0].subject)
	assert.Contains(t, mailer.sentEmails[0].body, "  - Time: Mar 1, 2026 6:00 PM - 7:00 PM\n  - Time: Mar 1, 2026 7:00 PM - 8:00 PM\n")
	assert.Contains(t, mailer.sentEmails[0].body, "Date: Sunday, March 1, 2026")

	// Repeating a selection is a no-op with no email
	result, err = SetVolunteerShifts(ctx, database, mailer, testConfig(), zap.NewNop(), "M1", []string{shifts[0].ID})
	require.NoError(t, err)
	assert.Empty(t, result.Changed)
	assert.Equal(t, []string{shifts[0].ID}, result.Unchanged)
	assert.Len(t, mailer.sentEmails, 1)

	assignments, err = database.GetAssignments(ctx)
	require.NoError(t, err)
	assert.Len(t, assignments, 2)
}

func TestSetVolunteerShifts_RejectsUnknownShift(t *testing.T) {
	ctx := context.Background()
	database, shifts := newSelectionFixture(t)

	_, err := SetVolunteerShifts(ctx, database, &mockMailer{}, testConfig(), zap.NewNop(), "M1", []string{shifts[0].ID, "nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")

	assignments, err := database.GetAssignments(ctx)
	require.NoError(t, err)
	assert.Empty(t, assignments)
}

func TestSetVolunteerShifts_UnknownVolunteer(t *testing.T) {
	database, shifts := newSelectionFixture(t)

	_, err := SetVolunteerShifts(context.Background(), database, &mockMailer{}, testConfig(), zap.NewNop(), "M3", []string{shifts[0].ID})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSetVolunteerShifts_ConfirmationFailureKeepsAssignment(t *testing.T) {
	ctx := context.Background()
	database, shifts := newSelectionFixture(t)

	mailer := &mockMailer{err: errors.New("smtp down")}
	result, err := SetVolunteerShifts(ctx, database, mailer, testConfig(), zap.NewNop(), "G1", []string{shifts[2].ID})
	require.NoError(t, err)
	require.NotNil(t, result.Confirmation)
	assert.Equal(t, "smtp down", result.Confirmation.Error)

	assignments, err := database.GetAssignments(ctx)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, "G1", assignments[0].VolunteerToken)
}

func TestRemoveVolunteerShifts(t *testing.T) {
	ctx := context.Background()
	database, shifts := newSelectionFixture(t)
	setClock(t, at(12, 0))

	mailer := &mockMailer{}
	_, err := SetVolunteerShifts(ctx, database, mailer, testConfig(), zap.NewNop(), "M1", []string{shifts[0].ID, shifts[1].ID})
	require.NoError(t, err)
	_, err = SetVolunteerShifts(ctx, database, mailer, testConfig(), zap.NewNop(), "G1", []string{shifts[1].ID})
	require.NoError(t, err)

	result, err := RemoveVolunteerShifts(ctx, database, mailer, testConfig(), zap.NewNop(), "M1", []string{shifts[1].ID, shifts[3].ID})
	require.NoError(t, err)
	require.Len(t, result.Changed, 1)
	assert.Equal(t, shifts[1].ID, result.Changed[0].ID)
	assert.Equal(t, []string{shifts[3].ID}, result.Unchanged)

	assignments, err := database.GetAssignments(ctx)
	require.NoError(t, err)
	require.Len(t, assignments, 2)
	assert.Equal(t, shifts[0].ID, assignments[0].ShiftID)
	assert.Equal(t, "G1", assignments[1].VolunteerToken)

	require.Len(t, mailer.sentEmails, 3)
	last := mailer.sentEmails[2]
	assert.Equal(t, "Chevra Kadisha Volunteer: Confirmation of Shift Removal: Mar 1, 2026 7:00 PM - 8:00 PM at Feldman Mortuary", last.subject)
	assert.Contains(t, last.body, "removed from the following shift has been processed")
}

func TestListShifts(t *testing.T) {
	ctx := context.Background()
	database, shifts := newSelectionFixture(t)
	setClock(t, at(12, 0))

	_, err := SetVolunteerShifts(ctx, database, &mockMailer{}, testConfig(), zap.NewNop(), "M1", []string{shifts[0].ID, shifts[2].ID})
	require.NoError(t, err)

	listing, err := ListShifts(ctx, database, zap.NewNop(), "E1", "M1")
	require.NoError(t, err)
	assert.Equal(t, "Ruth Cohen", listing.Event.DeceasedName)
	require.Len(t, listing.Selected, 2)
	assert.Equal(t, shifts[0].ID, listing.Selected[0].ID)
	require.Len(t, listing.Available, 2)
	assert.Equal(t, shifts[1].ID, listing.Available[0].ID)

	// Another volunteer sees only unclaimed shifts
	listing, err = ListShifts(ctx, database, zap.NewNop(), "E1", "G1")
	require.NoError(t, err)
	assert.Empty(t, listing.Selected)
	assert.Len(t, listing.Available, 2)

	// Ended shifts are hidden
	setClock(t, at(20, 30))
	listing, err = ListShifts(ctx, database, zap.NewNop(), "E1", "M1")
	require.NoError(t, err)
	require.Len(t, listing.Selected, 1)
	assert.Equal(t, shifts[2].ID, listing.Selected[0].ID)
	require.Len(t, listing.Available, 1)
	assert.Equal(t, shifts[3].ID, listing.Available[0].ID)
}

func TestListShifts_UnknownEvent(t *testing.T) {
	database, _ := newSelectionFixture(t)

	_, err := ListShifts(context.Background(), database, zap.NewNop(), "E9", "")
	require.Error(t, err)
}
