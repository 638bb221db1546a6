package notification

import (
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"

	"github.com/jakechorley/shmira-scheduler/pkg/core/model"
)

const portal = "https://portal.example.org/select"

var org = Organization{
	Name:  "Boulder Chevra Kadisha",
	Phone: "303-555-0100",
	Email: "chevra@example.org",
}

var feldman = model.Location{
	Name:   "Feldman Mortuary",
	Street: "1673 S Colorado Blvd",
	City:   "Denver",
	State:  "CO",
	Zip:    "80222",
}

var dana = model.Person{Token: "tok 1", FirstName: "Dana", LastName: "Levi", Email: "dana@example.org"}

var ruth = model.Event{
	Token:        "ev-1",
	DeceasedName: "Ruth Cohen",
	LocationName: "feldman mortuary ",
	StartDate:    "3/1/2026",
	StartTime:    "6:00 PM",
	EndDate:      "3/2/2026",
	EndTime:      "10:00 AM",
	PersonalInfo: "Ruth taught Hebrew school for forty years.",
	Pronoun:      "Her",
	MetOrMeita:   "meita",
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func testComposer() *Composer {
	return NewComposer(portal, org, time.UTC, []model.Location{feldman})
}

func TestEventNotice(t *testing.T) {
	event := ruth
	event.LocationName = "Feldman Mortuary"

	msg := testComposer().EventNotice(event, dana, model.SourceMember)

	assert.Equal(t, "Baruch Dayan Ha-Emet - Death of Ruth Cohen - Chevra Kadisha Services Needed", msg.Subject)
	newGoldie(t).Assert(t, "event_notice", []byte(msg.Body))
}

func TestEventNotice_Fallbacks(t *testing.T) {
	event := model.Event{
		DeceasedName: "Sam Gold",
		LocationName: "Unknown Chapel",
		StartDate:    "someday",
		StartTime:    "evening",
		EndDate:      "3/3/2026",
		EndTime:      "9:00 AM",
	}

	msg := NewComposer(portal, Organization{Name: "CK"}, time.UTC, nil).EventNotice(event, dana, model.SourceGuest)

	assert.Contains(t, msg.Body, "The deceased is at Unknown Chapel (Address: address not on file).")
	assert.Contains(t, msg.Body, "Shmira will start on someday evening and is scheduled to end for the funeral on 3/3/2026 9:00 AM.")
	assert.Contains(t, msg.Body, "?g=tok+1")
	assert.NotContains(t, msg.Body, "Phone - ")
	assert.NotContains(t, msg.Body, "Email - ")
}

func TestShiftConfirmation(t *testing.T) {
	sam := model.Event{Token: "ev-2", DeceasedName: "Sam Gold", LocationName: "Unknown Chapel", StartDate: "bad"}
	shifts := []ConfirmedShift{
		{Event: ruth, Shift: model.Shift{EventToken: "ev-1", DeceasedName: "Ruth Cohen", LocationName: "Feldman Mortuary", StartEpoch: 1772388000000, EndEpoch: 1772391600000}},
		{Event: sam, Shift: model.Shift{EventToken: "ev-2", DeceasedName: "Sam Gold", LocationName: "Unknown Chapel", StartEpoch: 1772528400000, EndEpoch: 1772532000000}},
		{Event: ruth, Shift: model.Shift{EventToken: "ev-1", DeceasedName: "Ruth Cohen", LocationName: "Feldman Mortuary", StartEpoch: 1772391600000, EndEpoch: 1772395200000}},
	}

	msg := testComposer().ShiftConfirmation(dana, model.SourceGuest, ActionAddition, shifts)

	assert.Equal(t, "Chevra Kadisha Volunteer: Confirmation of Shift Addition: 3 shifts", msg.Subject)
	newGoldie(t).Assert(t, "shift_confirmation", []byte(msg.Body))
}

func TestShiftConfirmation_SingleRemoval(t *testing.T) {
	shift := model.Shift{EventToken: "ev-1", DeceasedName: "Ruth Cohen", LocationName: "Feldman Mortuary", StartEpoch: 1772388000000, EndEpoch: 1772391600000}

	msg := testComposer().ShiftConfirmation(dana, model.SourceMember, ActionRemoval, []ConfirmedShift{{Event: ruth, Shift: shift}})

	assert.Equal(t, "Chevra Kadisha Volunteer: Confirmation of Shift Removal: Mar 1, 2026 6:00 PM - 7:00 PM at Feldman Mortuary", msg.Subject)
	assert.Contains(t, msg.Body, "removed from the following shift has been processed")
	assert.Contains(t, msg.Body, "?m=tok+1.")
}

func TestPortalLink(t *testing.T) {
	assert.Equal(t, "https://x.org/f?m=a%26b", PortalLink("https://x.org/f", model.SourceMember, "a&b"))
	assert.Equal(t, "https://x.org/f?lang=en&g=abc", PortalLink("https://x.org/f?lang=en", model.SourceGuest, "abc"))
}
