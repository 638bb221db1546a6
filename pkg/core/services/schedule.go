package services

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// NextRun returns the first occurrence of the schedule rrule strictly after
// after. Occurrences are anchored at midnight of after's day in loc, so
// FREQ=HOURLY fires on the hour and BYHOUR picks local clock hours.
func NextRun(schedule string, after time.Time, loc *time.Location) (time.Time, error) {
	rule, err := rrule.StrToRRule(schedule)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid rrule in schedule: %w", err)
	}

	local := after.In(loc)
	rule.DTStart(time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc))

	next := rule.After(after, false)
	if next.IsZero() {
		return time.Time{}, fmt.Errorf("schedule %q has no occurrence after %s", schedule, after.Format(time.RFC3339))
	}
	return next, nil
}
