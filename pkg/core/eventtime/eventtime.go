package eventtime

import (
	"fmt"
	"strings"
	"time"

	"github.com/jakechorley/shmira-scheduler/pkg/core/model"
)

const (
	// LongLayout is used in notification bodies
	LongLayout = "Monday, January 2, 2006 at 3:04 PM"
	// AssignmentLayout stamps volunteer assignment rows
	AssignmentLayout = "01/02/2006 15:04:05"
	// SentLayout stamps the Date Sent column of the event map
	SentLayout = "2006-01-02 15:04:05"
)

var dateLayouts = []string{
	"1/2/2006",
	"1/2/06",
	"2006-01-02",
	"Jan 2, 2006",
	"January 2, 2006",
}

var clockLayouts = []string{
	"3:04:05 PM",
	"3:04 PM",
	"3:04PM",
	"15:04:05",
	"15:04",
}

// MalformedError reports a date or time cell that could not be read
type MalformedError struct {
	Field string
	Value string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("unreadable %s %q", e.Field, e.Value)
}

// Parse combines a date cell and a time cell into an instant in loc
func Parse(date, clock string, loc *time.Location) (time.Time, error) {
	date = strings.TrimSpace(date)
	clock = strings.ToUpper(strings.TrimSpace(clock))
	if date == "" {
		return time.Time{}, &MalformedError{Field: "date", Value: date}
	}
	if clock == "" {
		return time.Time{}, &MalformedError{Field: "time", Value: clock}
	}

	for _, dl := range dateLayouts {
		if _, err := time.ParseInLocation(dl, date, loc); err != nil {
			continue
		}
		for _, cl := range clockLayouts {
			if t, err := time.ParseInLocation(dl+" "+cl, date+" "+clock, loc); err == nil {
				return t, nil
			}
		}
		return time.Time{}, &MalformedError{Field: "time", Value: clock}
	}

	return time.Time{}, &MalformedError{Field: "date", Value: date}
}

// Span returns the start and end instants of an event
func Span(e model.Event, loc *time.Location) (time.Time, time.Time, error) {
	start, err := Parse(e.StartDate, e.StartTime, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start: %w", err)
	}
	end, err := Parse(e.EndDate, e.EndTime, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end: %w", err)
	}
	return start, end, nil
}

// FromMillis converts epoch milliseconds to a time in loc
func FromMillis(ms int64, loc *time.Location) time.Time {
	return time.UnixMilli(ms).In(loc)
}

// EventDate renders the short day label stored on each shift, e.g. "Mon, Jan 2"
func EventDate(start time.Time) string {
	return start.Format("Mon, Jan 2")
}

// ShiftTime renders the clock range of a shift, e.g. "9:00 AM - 10:00 AM"
func ShiftTime(start, end time.Time) string {
	return start.Format("3:04 PM") + " - " + end.Format("3:04 PM")
}

// Display renders the full listing label, e.g. "Jan 2, 2006 9:00 AM - 10:00 AM"
func Display(start, end time.Time) string {
	return start.Format("Jan 2, 2006") + " " + ShiftTime(start, end)
}
