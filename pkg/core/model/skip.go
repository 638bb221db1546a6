package model

import "fmt"

// SkipReason says why a record was left out of a computation
type SkipReason string

const (
	SkipUnknownEvent    SkipReason = "unknown event"
	SkipUnknownShift    SkipReason = "unknown shift"
	SkipUnknownPerson   SkipReason = "unknown person"
	SkipMissingEmail    SkipReason = "missing email"
	SkipMalformedTime   SkipReason = "malformed date/time"
	SkipMalformedCell   SkipReason = "malformed cell"
	SkipMissingFields   SkipReason = "missing required fields"
	SkipNotYetEligible  SkipReason = "shift not yet ended"
	SkipAlreadyArchived SkipReason = "already archived"
)

// Skip records one record that was excluded without failing the pass
type Skip struct {
	Record string
	Reason SkipReason
	Detail string
}

func (s Skip) String() string {
	if s.Detail == "" {
		return fmt.Sprintf("%s: %s", s.Record, s.Reason)
	}
	return fmt.Sprintf("%s: %s (%s)", s.Record, s.Reason, s.Detail)
}
