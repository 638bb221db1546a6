package archive

import (
	"time"

	"github.com/jakechorley/shmira-scheduler/pkg/core/model"
)

// Input is everything one archive pass reads
type Input struct {
	Assignments []model.Assignment
	Shifts      []model.Shift
	Events      []model.Event
	Members     []model.Member
	Guests      []model.Guest
	// Indexed holds archive keys already written to the historical index
	Indexed map[string]bool
}

// Result is the outcome of one archive pass
type Result struct {
	Records []model.ArchiveRecord
	Skipped []model.Skip
	// AlreadyArchived counts assignments whose key was already indexed
	AlreadyArchived int
	// Pending counts assignments whose shift has not ended yet
	Pending int
}

// Keys returns the archive keys of the new records, in order
func (r Result) Keys() []string {
	keys := make([]string, len(r.Records))
	for i, rec := range r.Records {
		keys[i] = rec.Key
	}
	return keys
}

// Build scans assignments and returns a denormalized record for each one whose
// shift ended at or before now and whose key is not yet indexed.
// now is used for every eligibility check in the pass.
func Build(in Input, now time.Time, insertedAt string) Result {
	shiftsByID := make(map[string]model.Shift, len(in.Shifts))
	for _, s := range in.Shifts {
		shiftsByID[s.ID] = s
	}
	eventsByToken := make(map[string]model.Event, len(in.Events))
	for _, e := range in.Events {
		eventsByToken[e.Token] = e
	}
	people := NewDirectory(in.Members, in.Guests)

	seen := make(map[string]bool, len(in.Indexed))
	for k := range in.Indexed {
		seen[k] = true
	}

	nowMillis := now.UnixMilli()
	var result Result
	for _, a := range in.Assignments {
		shift, ok := shiftsByID[a.ShiftID]
		if !ok {
			result.Skipped = append(result.Skipped, model.Skip{Record: a.ShiftID, Reason: model.SkipUnknownShift, Detail: "volunteer " + a.VolunteerToken})
			continue
		}

		if shift.EndEpoch > nowMillis {
			result.Pending++
			continue
		}

		event, ok := eventsByToken[shift.EventToken]
		if !ok {
			result.Skipped = append(result.Skipped, model.Skip{Record: shift.EventToken, Reason: model.SkipUnknownEvent, Detail: "shift " + shift.ID})
			continue
		}

		key := model.ArchiveKey(event.Token, shift.ID, a.VolunteerToken)
		if seen[key] {
			result.AlreadyArchived++
			continue
		}
		seen[key] = true

		result.Records = append(result.Records, model.ArchiveRecord{
			Key:        key,
			InsertedAt: insertedAt,
			Event:      event,
			Shift:      shift,
			Assignment: a,
			Person:     people.Resolve(a.VolunteerToken),
		})
	}

	return result
}
