package mappings

import (
	"slices"

	"github.com/jakechorley/shmira-scheduler/pkg/core/model"
)

// Delta lists the mapping rows to archive and the new rows to add
type Delta struct {
	ToAdd     []model.Mapping
	ToArchive []model.Mapping
	Retained  int
}

// Empty reports whether applying the delta would change nothing
func (d Delta) Empty() bool {
	return len(d.ToAdd) == 0 && len(d.ToArchive) == 0
}

// Required computes the set of mappings that must exist: every member for every
// event, and a guest for an event when the event's deceased name is one of the
// guest's declared names. Order is deterministic: events in input order, members
// before guests.
func Required(events []model.Event, guests []model.Guest, members []model.Member) []model.MappingKey {
	seen := make(map[model.MappingKey]bool)
	var required []model.MappingKey

	add := func(key model.MappingKey) {
		if key.EventToken == "" || key.PersonToken == "" || seen[key] {
			return
		}
		seen[key] = true
		required = append(required, key)
	}

	for _, event := range events {
		for _, m := range members {
			add(model.MappingKey{Source: model.SourceMember, EventToken: event.Token, PersonToken: m.Token})
		}

		name := model.NormalizeName(event.DeceasedName)
		if name == "" {
			continue
		}
		for _, g := range guests {
			if slices.Contains(g.Names, name) {
				add(model.MappingKey{Source: model.SourceGuest, EventToken: event.Token, PersonToken: g.Token})
			}
		}
	}

	return required
}

// Diff compares the required set with persisted rows. Persisted rows that are
// still required are not part of the delta, so their sent state is untouched.
func Diff(required []model.MappingKey, persisted []model.Mapping) Delta {
	want := make(map[model.MappingKey]bool, len(required))
	for _, key := range required {
		want[key] = true
	}

	have := make(map[model.MappingKey]bool, len(persisted))
	var delta Delta
	for _, m := range persisted {
		key := m.Key()
		have[key] = true
		if want[key] {
			delta.Retained++
			continue
		}
		delta.ToArchive = append(delta.ToArchive, m)
	}

	for _, key := range required {
		if have[key] {
			continue
		}
		have[key] = true
		delta.ToAdd = append(delta.ToAdd, model.Mapping{
			Source:      key.Source,
			EventToken:  key.EventToken,
			PersonToken: key.PersonToken,
			EmailSent:   false,
		})
	}

	return delta
}
