package notification

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jakechorley/shmira-scheduler/pkg/core/eventtime"
	"github.com/jakechorley/shmira-scheduler/pkg/core/model"
)

const addressNotOnFile = "address not on file"

// Organization signs every message
type Organization struct {
	Name  string
	Phone string
	Email string
}

// Message is a composed plain text email
type Message struct {
	Subject string
	Body    string
}

// Action is what happened to a volunteer's shifts
type Action string

const (
	ActionAddition Action = "Addition"
	ActionRemoval  Action = "Removal"
)

// ConfirmedShift is one shift listed in a confirmation, with its event
type ConfirmedShift struct {
	Event model.Event
	Shift model.Shift
}

// Composer builds event notices and shift confirmations
type Composer struct {
	portalURL string
	org       Organization
	loc       *time.Location
	locations map[string]model.Location
}

// NewComposer creates a composer. Locations are matched to events by
// normalized mortuary name.
func NewComposer(portalURL string, org Organization, loc *time.Location, locations []model.Location) *Composer {
	byName := make(map[string]model.Location, len(locations))
	for _, l := range locations {
		byName[model.NormalizeName(l.Name)] = l
	}
	return &Composer{
		portalURL: portalURL,
		org:       org,
		loc:       loc,
		locations: byName,
	}
}

// PortalLink returns the personal selection form link of a person.
// Members get ?m=<token>, guests ?g=<token>.
func PortalLink(portalURL string, source model.Source, token string) string {
	param := "g"
	if source == model.SourceMember {
		param = "m"
	}
	sep := "?"
	if strings.Contains(portalURL, "?") {
		sep = "&"
	}
	return portalURL + sep + param + "=" + url.QueryEscape(token)
}

// EventNotice composes the death notice sent once per mapping
func (c *Composer) EventNotice(event model.Event, person model.Person, source model.Source) Message {
	subject := fmt.Sprintf("Baruch Dayan Ha-Emet - Death of %s - Chevra Kadisha Services Needed", event.DeceasedName)

	start, end := c.eventTimes(event)

	subjectLine := strings.TrimSpace(event.Pronoun + " " + event.MetOrMeita)
	if subjectLine == "" {
		subjectLine = "The deceased"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", person.FullName())
	fmt.Fprintf(&b, "Baruch Dayan Ha'Emet. We sadly notify you of the death of %s.\n\n", event.DeceasedName)
	fmt.Fprintf(&b, "%s is at %s (Address: %s).\n\n", subjectLine, event.LocationName, c.address(event.LocationName))
	fmt.Fprintf(&b, "Shmira will start on %s and is scheduled to end for the funeral on %s.\n\n", start, end)
	if info := strings.TrimSpace(event.PersonalInfo); info != "" {
		fmt.Fprintf(&b, "%s\n\n", info)
	}
	fmt.Fprintf(&b, "Volunteer Portal Link (unique to you): %s\n\n", PortalLink(c.portalURL, source, person.Token))
	fmt.Fprintf(&b, "As a reminder, only %s Member Volunteers can sit shmira after business hours at the mortuaries. "+
		"Log in to the Member Volunteer portal for after hours facility access information.\n\n", c.org.Name)
	b.WriteString("Thank you for your mitzvah of providing shmira for this member of our community.\n\n")
	b.WriteString("(If you have questions, reply to this email.)\n\n")
	b.WriteString("With gratitude,\n\n")
	c.writeFooter(&b)

	return Message{Subject: subject, Body: b.String()}
}

// ShiftConfirmation composes the confirmation sent after a volunteer adds or
// removes shifts. Shifts are grouped by event in the order given.
func (c *Composer) ShiftConfirmation(person model.Person, source model.Source, action Action, shifts []ConfirmedShift) Message {
	subject := "Chevra Kadisha Volunteer: Confirmation of Shift " + string(action)
	switch {
	case len(shifts) == 1:
		subject += fmt.Sprintf(": %s at %s", c.shiftDisplay(shifts[0].Shift), shifts[0].Shift.LocationName)
	case len(shifts) > 1:
		subject += fmt.Sprintf(": %d shifts", len(shifts))
	}

	verb := "added to"
	if action == ActionRemoval {
		verb = "removed from"
	}
	plural := ""
	if len(shifts) > 1 {
		plural = "s"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", person.FullName())
	fmt.Fprintf(&b, "This is an automatic confirmation that your request to be %s the following shift%s has been processed successfully:\n\n", verb, plural)

	for _, group := range groupByEvent(shifts) {
		event := group[0].Event
		location := group[0].Shift.LocationName
		fmt.Fprintf(&b, "Event: %s\n", orNA(group[0].Shift.DeceasedName))
		fmt.Fprintf(&b, "Location: %s\n", location)
		fmt.Fprintf(&b, "Address: %s\n", c.address(location))
		fmt.Fprintf(&b, "Date: %s\n", c.eventDay(event))
		b.WriteString("Shifts:\n")
		for _, s := range group {
			fmt.Fprintf(&b, "  - Time: %s\n", c.shiftDisplay(s.Shift))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "If you need to cancel or change your confirmation, go to your portal link: %s.\n\n", PortalLink(c.portalURL, source, person.Token))
	b.WriteString("Thank you for providing this mitzvah.\n\n")
	c.writeFooter(&b)

	return Message{Subject: subject, Body: b.String()}
}

func (c *Composer) writeFooter(b *strings.Builder) {
	fmt.Fprintf(b, "%s\n", c.org.Name)
	if c.org.Phone != "" {
		fmt.Fprintf(b, "Phone - %s\n", c.org.Phone)
	}
	if c.org.Email != "" {
		fmt.Fprintf(b, "Email - %s\n", c.org.Email)
	}
}

func (c *Composer) address(locationName string) string {
	l, ok := c.locations[model.NormalizeName(locationName)]
	if !ok {
		return addressNotOnFile
	}
	if addr := l.Address(); addr != "" {
		return addr
	}
	return addressNotOnFile
}

// eventTimes formats the event span, falling back to the raw cells when they
// cannot be parsed
func (c *Composer) eventTimes(event model.Event) (string, string) {
	start, end, err := eventtime.Span(event, c.loc)
	if err != nil {
		return rawTime(event.StartDate, event.StartTime), rawTime(event.EndDate, event.EndTime)
	}
	return start.Format(eventtime.LongLayout), end.Format(eventtime.LongLayout)
}

func (c *Composer) eventDay(event model.Event) string {
	start, _, err := eventtime.Span(event, c.loc)
	if err != nil {
		return "Date Unknown"
	}
	return start.Format("Monday, January 2, 2006")
}

func (c *Composer) shiftDisplay(s model.Shift) string {
	return eventtime.Display(eventtime.FromMillis(s.StartEpoch, c.loc), eventtime.FromMillis(s.EndEpoch, c.loc))
}

func groupByEvent(shifts []ConfirmedShift) [][]ConfirmedShift {
	var groups [][]ConfirmedShift
	index := make(map[string]int)
	for _, s := range shifts {
		key := s.Shift.EventToken
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], s)
	}
	return groups
}

func rawTime(date, clock string) string {
	return strings.TrimSpace(strings.TrimSpace(date) + " " + strings.TrimSpace(clock))
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
