package shifts

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jakechorley/shmira-scheduler/pkg/core/eventtime"
	"github.com/jakechorley/shmira-scheduler/pkg/core/model"
)

// SlotLength is the longest a single shift may run
const SlotLength = time.Hour

// Generate tiles [start, end) of an event into contiguous slots of at most SlotLength.
// The final slot is truncated to end. Returns nil when the span is empty or the
// event is missing its deceased or location name.
func Generate(event model.Event, start, end time.Time, loc *time.Location) []model.Shift {
	if !start.Before(end) {
		return nil
	}
	if strings.TrimSpace(event.DeceasedName) == "" || strings.TrimSpace(event.LocationName) == "" {
		return nil
	}

	var shifts []model.Shift
	for cursor := start; cursor.Before(end); {
		slotEnd := cursor.Add(SlotLength)
		if slotEnd.After(end) {
			slotEnd = end
		}

		localStart := cursor.In(loc)
		localEnd := slotEnd.In(loc)
		shifts = append(shifts, model.Shift{
			ID:                uuid.New().String(),
			EventToken:        event.Token,
			DeceasedName:      event.DeceasedName,
			LocationName:      event.LocationName,
			EventDate:         eventtime.EventDate(localStart),
			DisplayTime:       eventtime.ShiftTime(localStart, localEnd),
			StartEpoch:        cursor.UnixMilli(),
			EndEpoch:          slotEnd.UnixMilli(),
			MaxVolunteers:     1,
			CurrentVolunteers: 0,
			Pronoun:           event.Pronoun,
			MetOrMeita:        event.MetOrMeita,
			PersonalInfo:      event.PersonalInfo,
		})

		cursor = slotEnd
	}

	return shifts
}
