package db

import (
	"strings"

	"github.com/jakechorley/shmira-scheduler/pkg/core/model"
)

// isApproved accepts "yes" or "true" in any case
func isApproved(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	return v == "yes" || v == "true"
}

func (r EventRow) toModel() model.Event {
	return model.Event{
		Token:        model.NormalizeToken(r.Token),
		Timestamp:    r.Timestamp,
		Email:        strings.TrimSpace(r.Email),
		DeceasedName: strings.TrimSpace(r.DeceasedName),
		LocationName: strings.TrimSpace(r.Location),
		StartDate:    r.StartDate,
		StartTime:    r.StartTime,
		EndDate:      r.EndDate,
		EndTime:      r.EndTime,
		PersonalInfo: r.PersonalInfo,
		Pronoun:      r.Pronoun,
		MetOrMeita:   r.MetOrMeita,
	}
}

func (r GuestRow) toModel() model.Guest {
	return model.Guest{
		Token:     model.NormalizeToken(r.Token),
		Email:     strings.TrimSpace(r.Email),
		FirstName: strings.TrimSpace(r.FirstName),
		LastName:  strings.TrimSpace(r.LastName),
		Phone:     r.Phone,
		Names:     model.SplitNames(r.DeceasedNames),
	}
}

func (r MemberRow) toModel() model.Member {
	return model.Member{
		Token:     model.NormalizeToken(r.Token),
		Timestamp: r.Timestamp,
		Email:     strings.TrimSpace(r.Email),
		FirstName: strings.TrimSpace(r.FirstName),
		LastName:  strings.TrimSpace(r.LastName),
		Phone:     r.Phone,
	}
}

func (r LocationRow) toModel() model.Location {
	return model.Location{
		Name:   strings.TrimSpace(r.Name),
		Street: r.Street,
		City:   r.City,
		State:  r.State,
		Zip:    r.Zip,
		Phone:  r.Phone,
		MapURL: r.MapURL,
		Notes:  r.Notes,
	}
}

func (r ShiftRow) toModel(row int) model.Shift {
	return model.Shift{
		Row:               row,
		ID:                strings.TrimSpace(r.ID),
		EventToken:        model.NormalizeToken(r.EventToken),
		DeceasedName:      r.DeceasedName,
		LocationName:      r.Location,
		EventDate:         r.EventDate,
		DisplayTime:       r.ShiftTime,
		StartEpoch:        r.StartEpoch,
		EndEpoch:          r.EndEpoch,
		MaxVolunteers:     r.MaxVolunteers,
		CurrentVolunteers: r.CurrentVolunteers,
		Pronoun:           r.Pronoun,
		MetOrMeita:        r.MetOrMeita,
		PersonalInfo:      r.PersonalInfo,
	}
}

func shiftRowFrom(s model.Shift) ShiftRow {
	return ShiftRow{
		ID:                s.ID,
		DeceasedName:      s.DeceasedName,
		Location:          s.LocationName,
		EventDate:         s.EventDate,
		ShiftTime:         s.DisplayTime,
		MaxVolunteers:     s.MaxVolunteers,
		CurrentVolunteers: s.CurrentVolunteers,
		StartEpoch:        s.StartEpoch,
		EndEpoch:          s.EndEpoch,
		Pronoun:           s.Pronoun,
		MetOrMeita:        s.MetOrMeita,
		PersonalInfo:      s.PersonalInfo,
		EventToken:        s.EventToken,
	}
}

func (r AssignmentRow) toModel(row int) model.Assignment {
	return model.Assignment{
		Row:            row,
		Timestamp:      r.Timestamp,
		ShiftID:        strings.TrimSpace(r.ShiftID),
		VolunteerToken: model.NormalizeToken(r.VolunteerToken),
		VolunteerName:  r.VolunteerName,
	}
}

func assignmentRowFrom(a model.Assignment) AssignmentRow {
	return AssignmentRow{
		Timestamp:      a.Timestamp,
		ShiftID:        a.ShiftID,
		VolunteerToken: a.VolunteerToken,
		VolunteerName:  a.VolunteerName,
	}
}

func (r MappingRow) toModel(row int) model.Mapping {
	return model.Mapping{
		Row:         row,
		Source:      model.Source(strings.TrimSpace(r.Source)),
		EventToken:  model.NormalizeToken(r.EventToken),
		PersonToken: model.NormalizeToken(r.PersonToken),
		EmailSent:   bool(r.EmailSent),
		DateSent:    r.DateSent,
	}
}

func mappingRowFrom(m model.Mapping) MappingRow {
	return MappingRow{
		Source:      string(m.Source),
		EventToken:  m.EventToken,
		PersonToken: m.PersonToken,
		EmailSent:   SentFlag(m.EmailSent),
		DateSent:    m.DateSent,
	}
}

func archiveRowFrom(r model.ArchiveRecord) ArchiveRow {
	return ArchiveRow{
		ArchiveKey:              r.Key,
		InsertedAt:              r.InsertedAt,
		EventToken:              r.Event.Token,
		EventTimestamp:          r.Event.Timestamp,
		EventEmail:              r.Event.Email,
		EventDeceasedName:       r.Event.DeceasedName,
		EventLocationName:       r.Event.LocationName,
		EventStartDate:          r.Event.StartDate,
		EventStartTime:          r.Event.StartTime,
		EventEndDate:            r.Event.EndDate,
		EventEndTime:            r.Event.EndTime,
		EventPersonalInfo:       r.Event.PersonalInfo,
		EventPronoun:            r.Event.Pronoun,
		EventMetOrMeita:         r.Event.MetOrMeita,
		ShiftID:                 r.Shift.ID,
		ShiftEventDate:          r.Shift.EventDate,
		ShiftTime:               r.Shift.DisplayTime,
		ShiftMaxVolunteers:      r.Shift.MaxVolunteers,
		ShiftCurrentVolunteers:  r.Shift.CurrentVolunteers,
		ShiftStartEpoch:         r.Shift.StartEpoch,
		ShiftEndEpoch:           r.Shift.EndEpoch,
		VolunteerShiftTimestamp: r.Assignment.Timestamp,
		VolunteerToken:          r.Assignment.VolunteerToken,
		VolunteerNameRaw:        r.Assignment.VolunteerName,
		PersonType:              string(r.Person.Type),
		PersonEmail:             r.Person.Email,
		PersonFirstName:         r.Person.FirstName,
		PersonLastName:          r.Person.LastName,
		PersonPhone:             r.Person.Phone,
	}
}

func (r ArchiveRow) toModel() model.ArchiveRecord {
	return model.ArchiveRecord{
		Key:        r.ArchiveKey,
		InsertedAt: r.InsertedAt,
		Event: model.Event{
			Token:        r.EventToken,
			Timestamp:    r.EventTimestamp,
			Email:        r.EventEmail,
			DeceasedName: r.EventDeceasedName,
			LocationName: r.EventLocationName,
			StartDate:    r.EventStartDate,
			StartTime:    r.EventStartTime,
			EndDate:      r.EventEndDate,
			EndTime:      r.EventEndTime,
			PersonalInfo: r.EventPersonalInfo,
			Pronoun:      r.EventPronoun,
			MetOrMeita:   r.EventMetOrMeita,
		},
		Shift: model.Shift{
			ID:                r.ShiftID,
			EventToken:        r.EventToken,
			DeceasedName:      r.EventDeceasedName,
			LocationName:      r.EventLocationName,
			EventDate:         r.ShiftEventDate,
			DisplayTime:       r.ShiftTime,
			MaxVolunteers:     r.ShiftMaxVolunteers,
			CurrentVolunteers: r.ShiftCurrentVolunteers,
			StartEpoch:        r.ShiftStartEpoch,
			EndEpoch:          r.ShiftEndEpoch,
		},
		Assignment: model.Assignment{
			Timestamp:      r.VolunteerShiftTimestamp,
			ShiftID:        r.ShiftID,
			VolunteerToken: r.VolunteerToken,
			VolunteerName:  r.VolunteerNameRaw,
		},
		Person: model.Person{
			Type:      model.PersonType(r.PersonType),
			Token:     r.VolunteerToken,
			Email:     r.PersonEmail,
			FirstName: r.PersonFirstName,
			LastName:  r.PersonLastName,
			Phone:     r.PersonPhone,
		},
	}
}
