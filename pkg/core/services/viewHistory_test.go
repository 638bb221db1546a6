package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/shmira-scheduler/pkg/core/model"
)

// mockHistoryStore implements ViewHistoryStore
type mockHistoryStore struct {
	records []model.ArchiveRecord
	err     error
}

func (m *mockHistoryStore) GetArchive(ctx context.Context) ([]model.ArchiveRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.records, nil
}

func archived(token, name string, personType model.PersonType, start time.Time, minutes int) model.ArchiveRecord {
	person := model.Person{Type: personType, Token: token}
	if personType != model.PersonUnknown {
		person.FirstName = name
	}
	return model.ArchiveRecord{
		Shift: model.Shift{
			StartEpoch: start.UnixMilli(),
			EndEpoch:   start.Add(time.Duration(minutes) * time.Minute).UnixMilli(),
		},
		Assignment: model.Assignment{VolunteerToken: token, VolunteerName: name},
		Person:     person,
	}
}

func TestViewHistory_TotalsPerVolunteer(t *testing.T) {
	store := &mockHistoryStore{records: []model.ArchiveRecord{
		archived("G1", "Dana", model.PersonGuest, at(18, 0), 30),
		archived("M1", "Miriam", model.PersonMember, at(19, 0), 60),
		archived("M1", "Miriam", model.PersonMember, at(20, 0), 60),
		archived("X9", "Walk In", model.PersonUnknown, at(21, 0), 30),
		archived("M1", "Miriam", model.PersonMember, at(18, 0).AddDate(0, -1, 0), 60),
	}}

	history, err := ViewHistory(context.Background(), store, zap.NewNop(), at(0, 0))
	require.NoError(t, err)
	require.Len(t, history, 3)

	assert.Equal(t, "M1", history[0].Token)
	assert.Equal(t, 2, history[0].Shifts)
	assert.InDelta(t, 2.0, history[0].Hours, 0.0001)

	// Equal hours are ordered by name
	assert.Equal(t, "Dana", history[1].Name)
	assert.InDelta(t, 0.5, history[1].Hours, 0.0001)
	assert.Equal(t, "Walk In", history[2].Name)
	assert.Equal(t, model.PersonUnknown, history[2].PersonType)
}

func TestViewHistory_AllTime(t *testing.T) {
	store := &mockHistoryStore{records: []model.ArchiveRecord{
		archived("M1", "Miriam", model.PersonMember, at(19, 0), 60),
		archived("M1", "Miriam", model.PersonMember, at(18, 0).AddDate(0, -1, 0), 60),
	}}

	history, err := ViewHistory(context.Background(), store, zap.NewNop(), time.Time{})
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 2, history[0].Shifts)
}

func TestViewHistory_StoreError(t *testing.T) {
	store := &mockHistoryStore{err: errors.New("boom")}

	_, err := ViewHistory(context.Background(), store, zap.NewNop(), time.Time{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch historical archive")
}
