package shifts

import (
	"sort"
	"time"

	"github.com/jakechorley/shmira-scheduler/pkg/core/eventtime"
	"github.com/jakechorley/shmira-scheduler/pkg/core/model"
)

// Delta is the set of changes needed to bring the shift store in line with the events
type Delta struct {
	ToAdd    []model.Shift
	ToRemove []model.Shift
	// Retained holds obsolete shifts kept so the store never drops to zero data rows
	Retained []model.Shift
}

// Empty reports whether applying the delta would change nothing
func (d Delta) Empty() bool {
	return len(d.ToAdd) == 0 && len(d.ToRemove) == 0
}

// Desired generates the shifts every live event should have.
// Events with unreadable or missing fields are skipped.
func Desired(events []model.Event, loc *time.Location) ([]model.Shift, []model.Skip) {
	var desired []model.Shift
	var skips []model.Skip

	for _, event := range events {
		start, end, err := eventtime.Span(event, loc)
		if err != nil {
			skips = append(skips, model.Skip{Record: event.Token, Reason: model.SkipMalformedTime, Detail: err.Error()})
			continue
		}

		generated := Generate(event, start, end, loc)
		if len(generated) == 0 {
			skips = append(skips, model.Skip{Record: event.Token, Reason: model.SkipMissingFields, Detail: "no shifts for event span"})
			continue
		}
		desired = append(desired, generated...)
	}

	return desired, skips
}

// Diff compares desired shifts with persisted ones by content key.
// Shifts present on both sides are left out of the delta entirely.
func Diff(desired, persisted []model.Shift) Delta {
	stored := make(map[model.ShiftKey]bool, len(persisted))
	for _, s := range persisted {
		stored[s.Key()] = true
	}

	wanted := make(map[model.ShiftKey]bool, len(desired))
	var delta Delta
	for _, s := range desired {
		key := s.Key()
		if wanted[key] {
			continue
		}
		wanted[key] = true
		if !stored[key] {
			delta.ToAdd = append(delta.ToAdd, s)
		}
	}

	for _, s := range persisted {
		if !wanted[s.Key()] {
			delta.ToRemove = append(delta.ToRemove, s)
		}
	}

	// Removing every data row with nothing to replace it would leave only the header
	if len(delta.ToAdd) == 0 && len(persisted) > 0 && len(delta.ToRemove) == len(persisted) {
		sort.Slice(delta.ToRemove, func(i, j int) bool { return delta.ToRemove[i].Row < delta.ToRemove[j].Row })
		delta.Retained = []model.Shift{delta.ToRemove[0]}
		delta.ToRemove = delta.ToRemove[1:]
	}

	return delta
}
