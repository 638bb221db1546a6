package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/jakechorley/shmira-scheduler/internal/config"
	"github.com/jakechorley/shmira-scheduler/pkg/core/archive"
	"github.com/jakechorley/shmira-scheduler/pkg/core/eventtime"
	"github.com/jakechorley/shmira-scheduler/pkg/core/model"
	"github.com/jakechorley/shmira-scheduler/pkg/core/notification"
)

// SelectionStore defines the database operations behind the volunteer selection form
type SelectionStore interface {
	GetEvents(ctx context.Context) ([]model.Event, error)
	GetGuests(ctx context.Context) ([]model.Guest, error)
	GetMembers(ctx context.Context) ([]model.Member, error)
	GetLocations(ctx context.Context) ([]model.Location, error)
	GetShifts(ctx context.Context) ([]model.Shift, error)
	GetAssignments(ctx context.Context) ([]model.Assignment, error)
	InsertAssignments(ctx context.Context, assignments []model.Assignment) error
	DeleteAssignments(ctx context.Context, assignments []model.Assignment) error
}

// ShiftListing is what a volunteer sees for one event
type ShiftListing struct {
	Event     model.Event
	Available []model.Shift
	Selected  []model.Shift
}

// SelectionResult reports a change to a volunteer's shifts
type SelectionResult struct {
	Volunteer model.Person
	Changed   []model.Shift
	// Unchanged holds requested shifts that needed no change
	Unchanged []string
	// Confirmation is set when the confirmation email could not be sent
	Confirmation *FailedEmail
}

// ListShifts returns the shifts of an event that have not ended yet, split into
// those nobody has claimed and those claimed by volunteerToken. volunteerToken
// may be empty.
func ListShifts(
	ctx context.Context,
	database SelectionStore,
	logger *zap.Logger,
	eventToken, volunteerToken string,
) (*ShiftListing, error) {
	eventToken = model.NormalizeToken(eventToken)
	volunteerToken = model.NormalizeToken(volunteerToken)
	logger.Debug("Listing shifts", zap.String("event_token", eventToken), zap.String("volunteer_token", volunteerToken))

	events, err := database.GetEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	listing := &ShiftListing{Available: []model.Shift{}, Selected: []model.Shift{}}
	found := false
	for _, e := range events {
		if e.Token == eventToken {
			listing.Event = e
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("event %q not found", eventToken)
	}

	shifts, err := database.GetShifts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shifts: %w", err)
	}
	assignments, err := database.GetAssignments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch volunteer assignments: %w", err)
	}

	claimed := make(map[string]bool)
	mine := make(map[string]bool)
	for _, a := range assignments {
		claimed[a.ShiftID] = true
		if volunteerToken != "" && a.VolunteerToken == volunteerToken {
			mine[a.ShiftID] = true
		}
	}

	nowMillis := timeNow().UnixMilli()
	for _, s := range shifts {
		if s.EventToken != eventToken || s.EndEpoch < nowMillis {
			continue
		}
		switch {
		case mine[s.ID]:
			listing.Selected = append(listing.Selected, s)
		case !claimed[s.ID]:
			listing.Available = append(listing.Available, s)
		}
	}

	sortByStart(listing.Available)
	sortByStart(listing.Selected)
	return listing, nil
}

// SetVolunteerShifts assigns the given shifts to a volunteer and emails a
// confirmation. Pairs that already exist are left as they are. Unknown shift
// ids are rejected before anything is written.
func SetVolunteerShifts(
	ctx context.Context,
	database SelectionStore,
	mailer Mailer,
	cfg config.Config,
	logger *zap.Logger,
	volunteerToken string,
	shiftIDs []string,
) (*SelectionResult, error) {
	sel, err := loadSelection(ctx, database, volunteerToken, shiftIDs)
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	assigned := make(map[string]bool)
	for _, a := range sel.assignments {
		if a.VolunteerToken == sel.person.Token {
			assigned[a.ShiftID] = true
		}
	}

	result := &SelectionResult{Volunteer: sel.person}
	stamp := timeNow().In(loc).Format(eventtime.AssignmentLayout)
	var toInsert []model.Assignment
	for _, s := range sel.requested {
		if assigned[s.ID] {
			result.Unchanged = append(result.Unchanged, s.ID)
			continue
		}
		assigned[s.ID] = true
		toInsert = append(toInsert, model.Assignment{
			Timestamp:      stamp,
			ShiftID:        s.ID,
			VolunteerToken: sel.person.Token,
			VolunteerName:  sel.person.FullName(),
		})
		result.Changed = append(result.Changed, s)
	}

	if len(toInsert) == 0 {
		logger.Info("All selected shifts were already assigned", zap.String("volunteer_token", sel.person.Token))
		return result, nil
	}

	if err := database.InsertAssignments(ctx, toInsert); err != nil {
		return nil, fmt.Errorf("failed to insert volunteer assignments: %w", err)
	}
	logger.Info("Volunteer shifts added",
		zap.String("volunteer_token", sel.person.Token),
		zap.Int("added", len(toInsert)))

	result.Confirmation = confirm(ctx, database, mailer, cfg, logger, sel, notification.ActionAddition, result.Changed)
	return result, nil
}

// RemoveVolunteerShifts removes a volunteer from the given shifts and emails a
// confirmation
func RemoveVolunteerShifts(
	ctx context.Context,
	database SelectionStore,
	mailer Mailer,
	cfg config.Config,
	logger *zap.Logger,
	volunteerToken string,
	shiftIDs []string,
) (*SelectionResult, error) {
	sel, err := loadSelection(ctx, database, volunteerToken, shiftIDs)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(sel.requested))
	for _, s := range sel.requested {
		wanted[s.ID] = true
	}

	var toDelete []model.Assignment
	removed := make(map[string]bool)
	for _, a := range sel.assignments {
		if a.VolunteerToken == sel.person.Token && wanted[a.ShiftID] {
			toDelete = append(toDelete, a)
			removed[a.ShiftID] = true
		}
	}

	result := &SelectionResult{Volunteer: sel.person}
	for _, s := range sel.requested {
		if removed[s.ID] {
			result.Changed = append(result.Changed, s)
		} else {
			result.Unchanged = append(result.Unchanged, s.ID)
		}
	}

	if len(toDelete) == 0 {
		logger.Info("Volunteer held none of the selected shifts", zap.String("volunteer_token", sel.person.Token))
		return result, nil
	}

	if err := database.DeleteAssignments(ctx, toDelete); err != nil {
		return nil, fmt.Errorf("failed to delete volunteer assignments: %w", err)
	}
	logger.Info("Volunteer shifts removed",
		zap.String("volunteer_token", sel.person.Token),
		zap.Int("removed", len(toDelete)))

	result.Confirmation = confirm(ctx, database, mailer, cfg, logger, sel, notification.ActionRemoval, result.Changed)
	return result, nil
}

type selection struct {
	person      model.Person
	source      model.Source
	requested   []model.Shift
	assignments []model.Assignment
	events      map[string]model.Event
}

func loadSelection(ctx context.Context, database SelectionStore, volunteerToken string, shiftIDs []string) (*selection, error) {
	volunteerToken = model.NormalizeToken(volunteerToken)
	if volunteerToken == "" {
		return nil, fmt.Errorf("volunteer token is required")
	}
	if len(shiftIDs) == 0 {
		return nil, fmt.Errorf("at least one shift id is required")
	}

	members, err := database.GetMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch members: %w", err)
	}
	guests, err := database.GetGuests(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch guests: %w", err)
	}
	person, ok := archive.NewDirectory(members, guests).Lookup(volunteerToken)
	if !ok {
		return nil, fmt.Errorf("volunteer %q not found", volunteerToken)
	}

	shifts, err := database.GetShifts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shifts: %w", err)
	}
	byID := make(map[string]model.Shift, len(shifts))
	for _, s := range shifts {
		byID[s.ID] = s
	}

	sel := &selection{person: person, source: sourceOf(person)}
	seen := make(map[string]bool, len(shiftIDs))
	var unknown []string
	for _, id := range shiftIDs {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		s, ok := byID[id]
		if !ok {
			unknown = append(unknown, id)
			continue
		}
		sel.requested = append(sel.requested, s)
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown shift ids: %s", strings.Join(unknown, ", "))
	}

	if sel.assignments, err = database.GetAssignments(ctx); err != nil {
		return nil, fmt.Errorf("failed to fetch volunteer assignments: %w", err)
	}

	events, err := database.GetEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	sel.events = make(map[string]model.Event, len(events))
	for _, e := range events {
		sel.events[e.Token] = e
	}

	return sel, nil
}

// confirm emails the volunteer about changed shifts. A failure is logged and
// returned but never undoes the change.
func confirm(
	ctx context.Context,
	database SelectionStore,
	mailer Mailer,
	cfg config.Config,
	logger *zap.Logger,
	sel *selection,
	action notification.Action,
	changed []model.Shift,
) *FailedEmail {
	failed := func(err error) *FailedEmail {
		logger.Warn("Failed to send shift confirmation",
			zap.String("volunteer_token", sel.person.Token),
			zap.String("email", sel.person.Email),
			zap.Error(err))
		return &FailedEmail{Token: sel.person.Token, Name: sel.person.FullName(), Email: sel.person.Email, Error: err.Error()}
	}

	if strings.TrimSpace(sel.person.Email) == "" {
		return failed(fmt.Errorf("volunteer has no email address"))
	}

	locations, err := database.GetLocations(ctx)
	if err != nil {
		return failed(fmt.Errorf("failed to fetch locations: %w", err))
	}
	composer, err := NewComposer(cfg, locations)
	if err != nil {
		return failed(err)
	}

	confirmed := make([]notification.ConfirmedShift, 0, len(changed))
	for _, s := range changed {
		confirmed = append(confirmed, notification.ConfirmedShift{Event: sel.events[s.EventToken], Shift: s})
	}
	msg := composer.ShiftConfirmation(sel.person, sel.source, action, confirmed)

	if err := mailer.SendEmail(ctx, sel.person.Email, msg.Subject, msg.Body); err != nil {
		return failed(err)
	}
	logger.Debug("Shift confirmation sent", zap.String("email", sel.person.Email))
	return nil
}

func sourceOf(p model.Person) model.Source {
	if p.Type == model.PersonMember {
		return model.SourceMember
	}
	return model.SourceGuest
}

func sortByStart(shifts []model.Shift) {
	sort.SliceStable(shifts, func(i, j int) bool { return shifts[i].StartEpoch < shifts[j].StartEpoch })
}
