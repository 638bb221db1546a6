package db

import "strings"

// Row models map record store columns onto fields. Header text is the only
// place column names appear; everything above this package works with
// model types.

// EventRow is one intake form response
type EventRow struct {
	Timestamp    string `ssql_header:"Timestamp" ssql_required:"true"`
	Email        string `ssql_header:"Email Address"`
	DeceasedName string `ssql_header:"Deceased Name" ssql_required:"true"`
	Location     string `ssql_header:"Location" ssql_required:"true"`
	StartDate    string `ssql_header:"Start Date" ssql_required:"true"`
	StartTime    string `ssql_header:"Start Time" ssql_required:"true"`
	EndDate      string `ssql_header:"End Date" ssql_required:"true"`
	EndTime      string `ssql_header:"End Time" ssql_required:"true"`
	PersonalInfo string `ssql_header:"Personal Information"`
	Pronoun      string `ssql_header:"Pronoun"`
	MetOrMeita   string `ssql_header:"Met-or-Meita"`
	Token        string `ssql_header:"Token" ssql_required:"true"`
}

// GuestRow is one guest application
type GuestRow struct {
	Approvals     string `ssql_header:"Approvals" ssql_required:"true"`
	Email         string `ssql_header:"Email Address"`
	FirstName     string `ssql_header:"First Name"`
	LastName      string `ssql_header:"Last Name"`
	Phone         string `ssql_header:"Phone"`
	DeceasedNames string `ssql_header:"Name of Deceased"`
	Token         string `ssql_header:"Token" ssql_required:"true"`
}

// MemberRow is one member application
type MemberRow struct {
	Approvals string `ssql_header:"Approvals" ssql_required:"true"`
	Timestamp string `ssql_header:"Timestamp"`
	Email     string `ssql_header:"Email Address"`
	FirstName string `ssql_header:"First Name"`
	LastName  string `ssql_header:"Last Name"`
	Phone     string `ssql_header:"Phone"`
	Token     string `ssql_header:"Token" ssql_required:"true"`
}

// LocationRow is one mortuary
type LocationRow struct {
	Name   string `ssql_header:"Mortuary Name" ssql_required:"true"`
	Street string `ssql_header:"Street Address"`
	City   string `ssql_header:"City"`
	State  string `ssql_header:"State"`
	Zip    string `ssql_header:"Zip"`
	Phone  string `ssql_header:"Phone"`
	MapURL string `ssql_header:"Map URL"`
	Notes  string `ssql_header:"Notes"`
}

// ShiftRow is one row of the shift master
type ShiftRow struct {
	ID                string `ssql_header:"Shift ID" ssql_required:"true"`
	DeceasedName      string `ssql_header:"Deceased Name" ssql_required:"true"`
	Location          string `ssql_header:"Location" ssql_required:"true"`
	EventDate         string `ssql_header:"Event Date"`
	ShiftTime         string `ssql_header:"Shift Time"`
	MaxVolunteers     int    `ssql_header:"Max Volunteers"`
	CurrentVolunteers int    `ssql_header:"Current Volunteers"`
	StartEpoch        int64  `ssql_header:"Start Epoch" ssql_required:"true"`
	EndEpoch          int64  `ssql_header:"End Epoch" ssql_required:"true"`
	Pronoun           string `ssql_header:"Pronoun"`
	MetOrMeita        string `ssql_header:"Met-or-Meita"`
	PersonalInfo      string `ssql_header:"Personal Information"`
	EventToken        string `ssql_header:"Event Token" ssql_required:"true"`
}

// AssignmentRow is one volunteer shift claim
type AssignmentRow struct {
	Timestamp      string `ssql_header:"Timestamp"`
	ShiftID        string `ssql_header:"Shift ID" ssql_required:"true"`
	VolunteerToken string `ssql_header:"Volunteer Token" ssql_required:"true"`
	VolunteerName  string `ssql_header:"Volunteer Name"`
}

// MappingRow is one event map entry. The mapping archive uses the same layout.
type MappingRow struct {
	Source      string   `ssql_header:"source" ssql_required:"true"`
	EventToken  string   `ssql_header:"eventToken" ssql_required:"true"`
	PersonToken string   `ssql_header:"personToken" ssql_required:"true"`
	EmailSent   SentFlag `ssql_header:"emailSent" ssql_required:"true"`
	DateSent    string   `ssql_header:"dateSent" ssql_required:"true"`
}

// SentFlag reads an emailSent cell. Blank, FALSE or 0 mean unsent; any other
// mark an admin may type (TRUE, yes, x) means sent.
type SentFlag bool

// UnmarshalCell implements sheetssql.CellUnmarshaler
func (f *SentFlag) UnmarshalCell(cell string) error {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "", "false", "0":
		*f = false
	default:
		*f = true
	}
	return nil
}

// MarshalCell implements sheetssql.CellMarshaler
func (f SentFlag) MarshalCell() interface{} {
	return bool(f)
}

// ArchiveRow is one denormalized historical record
type ArchiveRow struct {
	ArchiveKey              string `ssql_header:"archiveKey" ssql_required:"true"`
	InsertedAt              string `ssql_header:"insertedAt"`
	EventToken              string `ssql_header:"eventToken"`
	EventTimestamp          string `ssql_header:"eventTimestamp"`
	EventEmail              string `ssql_header:"eventEmail"`
	EventDeceasedName       string `ssql_header:"eventDeceasedName"`
	EventLocationName       string `ssql_header:"eventLocationName"`
	EventStartDate          string `ssql_header:"eventStartDate"`
	EventStartTime          string `ssql_header:"eventStartTime"`
	EventEndDate            string `ssql_header:"eventEndDate"`
	EventEndTime            string `ssql_header:"eventEndTime"`
	EventPersonalInfo       string `ssql_header:"eventPersonalInfo"`
	EventPronoun            string `ssql_header:"eventPronoun"`
	EventMetOrMeita         string `ssql_header:"eventMetOrMeita"`
	ShiftID                 string `ssql_header:"shiftId"`
	ShiftEventDate          string `ssql_header:"shiftEventDate"`
	ShiftTime               string `ssql_header:"shiftTime"`
	ShiftMaxVolunteers      int    `ssql_header:"shiftMaxVolunteers"`
	ShiftCurrentVolunteers  int    `ssql_header:"shiftCurrentVolunteers"`
	ShiftStartEpoch         int64  `ssql_header:"shiftStartEpoch"`
	ShiftEndEpoch           int64  `ssql_header:"shiftEndEpoch"`
	VolunteerShiftTimestamp string `ssql_header:"volunteerShiftTimestamp"`
	VolunteerToken          string `ssql_header:"volunteerToken"`
	VolunteerNameRaw        string `ssql_header:"volunteerNameRaw"`
	PersonType              string `ssql_header:"personType"`
	PersonEmail             string `ssql_header:"personEmail"`
	PersonFirstName         string `ssql_header:"personFirstName"`
	PersonLastName          string `ssql_header:"personLastName"`
	PersonPhone             string `ssql_header:"personPhone"`
}

// ArchiveIndexRow is one key of the historical index
type ArchiveIndexRow struct {
	ArchiveKey string `ssql_header:"archiveKey" ssql_required:"true"`
}
