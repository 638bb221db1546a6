package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/shmira-scheduler/pkg/core/model"
)

// VolunteerHistory is one line of the history report
type VolunteerHistory struct {
	Token      string
	Name       string
	PersonType model.PersonType
	Shifts     int
	Hours      float64
}

// ViewHistoryStore defines the database operations needed for the history report
type ViewHistoryStore interface {
	GetArchive(ctx context.Context) ([]model.ArchiveRecord, error)
}

// ViewHistory totals archived shifts and hours per volunteer for shifts that
// started at or after since (zero means all time), most hours first
func ViewHistory(
	ctx context.Context,
	database ViewHistoryStore,
	logger *zap.Logger,
	since time.Time,
) ([]VolunteerHistory, error) {
	logger.Debug("Starting viewHistory", zap.Time("since", since))

	records, err := database.GetArchive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch historical archive: %w", err)
	}
	logger.Debug("Found archive records", zap.Int("count", len(records)))

	sinceMillis := int64(0)
	if !since.IsZero() {
		sinceMillis = since.UnixMilli()
	}

	byToken := make(map[string]*VolunteerHistory)
	var order []string
	for _, r := range records {
		if r.Shift.StartEpoch < sinceMillis {
			continue
		}
		token := r.Assignment.VolunteerToken
		h, ok := byToken[token]
		if !ok {
			name := r.Person.FullName()
			if name == "" {
				name = r.Assignment.VolunteerName
			}
			h = &VolunteerHistory{Token: token, Name: name, PersonType: r.Person.Type}
			byToken[token] = h
			order = append(order, token)
		}
		h.Shifts++
		if d := r.Shift.EndEpoch - r.Shift.StartEpoch; d > 0 {
			h.Hours += float64(d) / float64(time.Hour/time.Millisecond)
		}
	}

	history := make([]VolunteerHistory, 0, len(order))
	for _, token := range order {
		history = append(history, *byToken[token])
	}
	sort.SliceStable(history, func(i, j int) bool {
		if history[i].Hours != history[j].Hours {
			return history[i].Hours > history[j].Hours
		}
		return history[i].Name < history[j].Name
	})

	return history, nil
}
