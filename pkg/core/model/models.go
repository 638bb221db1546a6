package model

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Source identifies which approved list a person came from
type Source string

const (
	SourceGuest  Source = "Guest"
	SourceMember Source = "Member"
)

// PersonType is how an archived volunteer was resolved
type PersonType string

const (
	PersonMember  PersonType = "Member"
	PersonGuest   PersonType = "Guest"
	PersonUnknown PersonType = "Unknown"
)

// Event is a death notice submitted through the intake form.
// Date and time cells are kept as entered; see eventtime for parsing.
type Event struct {
	Token        string
	Timestamp    string
	Email        string
	DeceasedName string
	LocationName string
	StartDate    string
	StartTime    string
	EndDate      string
	EndTime      string
	PersonalInfo string
	Pronoun      string
	MetOrMeita   string
}

// Guest is an approved non-member who asked to be told about specific deaths
type Guest struct {
	Token     string
	Email     string
	FirstName string
	LastName  string
	Phone     string
	// Names holds normalized names of the deceased this guest is connected to
	Names []string
}

// Member is an approved Chevra Kadisha member
type Member struct {
	Token     string
	Timestamp string
	Email     string
	FirstName string
	LastName  string
	Phone     string
}

// Location is a mortuary where shmira takes place
type Location struct {
	Name   string
	Street string
	City   string
	State  string
	Zip    string
	Phone  string
	MapURL string
	Notes  string
}

// Address formats the street address on a single line
func (l Location) Address() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{l.Street, l.City, strings.TrimSpace(l.State + " " + l.Zip)} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Shift is a coverage slot of at most one hour.
// Row is the 1-based row in the shift store, zero for shifts not yet persisted.
type Shift struct {
	Row               int
	ID                string
	EventToken        string
	DeceasedName      string
	LocationName      string
	EventDate         string
	DisplayTime       string
	StartEpoch        int64
	EndEpoch          int64
	MaxVolunteers     int
	CurrentVolunteers int
	Pronoun           string
	MetOrMeita        string
	PersonalInfo      string
}

// ShiftKey is the content identity of a shift, independent of its surrogate id
type ShiftKey struct {
	DeceasedName string
	LocationName string
	StartEpoch   int64
	EndEpoch     int64
}

// Key returns the content key of the shift
func (s Shift) Key() ShiftKey {
	return ShiftKey{
		DeceasedName: s.DeceasedName,
		LocationName: s.LocationName,
		StartEpoch:   s.StartEpoch,
		EndEpoch:     s.EndEpoch,
	}
}

// Assignment is a volunteer's claim on one shift
type Assignment struct {
	Row            int
	Timestamp      string
	ShiftID        string
	VolunteerToken string
	VolunteerName  string
}

// Mapping links one event to one person who should be notified about it
type Mapping struct {
	Row         int
	Source      Source
	EventToken  string
	PersonToken string
	EmailSent   bool
	DateSent    string
}

// MappingKey is the identity of a mapping
type MappingKey struct {
	Source      Source
	EventToken  string
	PersonToken string
}

// Key returns the identity of the mapping
func (m Mapping) Key() MappingKey {
	return MappingKey{Source: m.Source, EventToken: m.EventToken, PersonToken: m.PersonToken}
}

// Person is a resolved guest or member
type Person struct {
	Type      PersonType
	Token     string
	Email     string
	FirstName string
	LastName  string
	Phone     string
}

// FullName joins first and last name
func (p Person) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// PersonFromMember converts a member to a person
func PersonFromMember(m Member) Person {
	return Person{Type: PersonMember, Token: m.Token, Email: m.Email, FirstName: m.FirstName, LastName: m.LastName, Phone: m.Phone}
}

// PersonFromGuest converts a guest to a person
func PersonFromGuest(g Guest) Person {
	return Person{Type: PersonGuest, Token: g.Token, Email: g.Email, FirstName: g.FirstName, LastName: g.LastName, Phone: g.Phone}
}

// ArchiveRecord is one denormalized row of the historical archive
type ArchiveRecord struct {
	Key        string
	InsertedAt string
	Event      Event
	Shift      Shift
	Assignment Assignment
	Person     Person
}

// ArchiveKey builds the deterministic identity eventToken|shiftId|volunteerToken
func ArchiveKey(eventToken, shiftID, volunteerToken string) string {
	return fmt.Sprintf("%s|%s|%s", eventToken, shiftID, volunteerToken)
}

// NormalizeName trims and lowercases a name for matching
func NormalizeName(name string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(name))
}

// NormalizeToken trims surrounding whitespace from an opaque token
func NormalizeToken(token string) string {
	return strings.TrimSpace(token)
}

// SplitNames splits a comma separated list of names and normalizes each one
func SplitNames(raw string) []string {
	var names []string
	for _, part := range strings.Split(raw, ",") {
		if n := NormalizeName(part); n != "" {
			names = append(names, n)
		}
	}
	return names
}
