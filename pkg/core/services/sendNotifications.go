package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jakechorley/shmira-scheduler/internal/config"
	"github.com/jakechorley/shmira-scheduler/pkg/core/archive"
	"github.com/jakechorley/shmira-scheduler/pkg/core/eventtime"
	"github.com/jakechorley/shmira-scheduler/pkg/core/model"
	"github.com/jakechorley/shmira-scheduler/pkg/core/notification"
)

// NotificationSent represents a mapping whose notice was delivered
type NotificationSent struct {
	Mapping model.Mapping
	Name    string
	Email   string
}

// SendNotificationsStore defines the database operations needed to dispatch event notices
type SendNotificationsStore interface {
	GetEvents(ctx context.Context) ([]model.Event, error)
	GetGuests(ctx context.Context) ([]model.Guest, error)
	GetMembers(ctx context.Context) ([]model.Member, error)
	GetLocations(ctx context.Context) ([]model.Location, error)
	GetMappings(ctx context.Context) ([]model.Mapping, error)
	MarkMappingSent(ctx context.Context, row int, sentAt string) error
}

// SendNotificationsResult summarises one dispatch pass
type SendNotificationsResult struct {
	Sent    []NotificationSent
	Failed  []FailedEmail
	Skipped []model.Skip
}

// NewComposer builds a message composer from the configuration and the current locations
func NewComposer(cfg config.Config, locations []model.Location) (*notification.Composer, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	org := notification.Organization{
		Name:  cfg.Organization.Name,
		Phone: cfg.Organization.Phone,
		Email: cfg.Organization.Email,
	}
	return notification.NewComposer(cfg.PortalURL, org, loc, locations), nil
}

// SendNotifications emails an event notice for every unsent row of the event map.
// A row is only marked sent after its email went out; failed rows stay unsent
// and are retried on the next pass.
func SendNotifications(
	ctx context.Context,
	database SendNotificationsStore,
	mailer Mailer,
	cfg config.Config,
	logger *zap.Logger,
) (*SendNotificationsResult, error) {
	logger.Debug("Starting sendNotifications")

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	rows, err := database.GetMappings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event map: %w", err)
	}

	var pending []model.Mapping
	for _, m := range rows {
		if !m.EmailSent {
			pending = append(pending, m)
		}
	}
	logger.Debug("Found unsent mappings", zap.Int("count", len(pending)))

	result := &SendNotificationsResult{
		Sent:   []NotificationSent{},
		Failed: []FailedEmail{},
	}
	if len(pending) == 0 {
		logger.Info("No notifications to send")
		return result, nil
	}

	events, err := database.GetEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	members, err := database.GetMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch members: %w", err)
	}
	guests, err := database.GetGuests(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch guests: %w", err)
	}
	locations, err := database.GetLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch locations: %w", err)
	}

	composer, err := NewComposer(cfg, locations)
	if err != nil {
		return nil, err
	}

	eventsByToken := make(map[string]model.Event, len(events))
	for _, e := range events {
		eventsByToken[e.Token] = e
	}
	people := archive.NewDirectory(members, guests)

	attempted := 0
	for _, m := range pending {
		event, ok := eventsByToken[m.EventToken]
		if !ok {
			result.Skipped = append(result.Skipped, model.Skip{Record: m.EventToken, Reason: model.SkipUnknownEvent, Detail: fmt.Sprintf("event map row %d", m.Row)})
			continue
		}

		person, ok := people.Lookup(m.PersonToken)
		if !ok {
			result.Skipped = append(result.Skipped, model.Skip{Record: m.PersonToken, Reason: model.SkipUnknownPerson, Detail: fmt.Sprintf("event map row %d", m.Row)})
			continue
		}

		if strings.TrimSpace(person.Email) == "" {
			result.Skipped = append(result.Skipped, model.Skip{Record: m.PersonToken, Reason: model.SkipMissingEmail, Detail: fmt.Sprintf("event map row %d", m.Row)})
			continue
		}

		msg := composer.EventNotice(event, person, m.Source)
		attempted++

		logger.Info("Sending event notice",
			zap.String("event_token", event.Token),
			zap.String("person_token", person.Token),
			zap.String("email", person.Email))

		if err := mailer.SendEmail(ctx, person.Email, msg.Subject, msg.Body); err != nil {
			logger.Warn("Failed to send event notice",
				zap.String("person_token", person.Token),
				zap.String("email", person.Email),
				zap.Error(err))

			result.Failed = append(result.Failed, FailedEmail{
				Token: person.Token,
				Name:  person.FullName(),
				Email: person.Email,
				Error: err.Error(),
			})
			continue
		}

		sentAt := timeNow().In(loc).Format(eventtime.SentLayout)
		if err := database.MarkMappingSent(ctx, m.Row, sentAt); err != nil {
			return result, fmt.Errorf("failed to mark event map row %d sent: %w", m.Row, err)
		}

		m.EmailSent = true
		m.DateSent = sentAt
		result.Sent = append(result.Sent, NotificationSent{
			Mapping: m,
			Name:    person.FullName(),
			Email:   person.Email,
		})
	}

	logSkips(logger, "sendNotifications", result.Skipped)

	if attempted > 0 && len(result.Failed) == attempted {
		return result, fmt.Errorf("%w: %d event notices", ErrAllSendsFailed, attempted)
	}

	logger.Info("Notifications sent",
		zap.Int("sent", len(result.Sent)),
		zap.Int("failed", len(result.Failed)),
		zap.Int("skipped", len(result.Skipped)))

	return result, nil
}
