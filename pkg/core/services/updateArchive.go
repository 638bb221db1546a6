package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/shmira-scheduler/internal/config"
	"github.com/jakechorley/shmira-scheduler/pkg/core/archive"
	"github.com/jakechorley/shmira-scheduler/pkg/core/eventtime"
	"github.com/jakechorley/shmira-scheduler/pkg/core/model"
)

// UpdateArchiveStore defines the database operations needed to archive finished shifts
type UpdateArchiveStore interface {
	GetAssignments(ctx context.Context) ([]model.Assignment, error)
	GetShifts(ctx context.Context) ([]model.Shift, error)
	GetEvents(ctx context.Context) ([]model.Event, error)
	GetMembers(ctx context.Context) ([]model.Member, error)
	GetGuests(ctx context.Context) ([]model.Guest, error)
	GetArchiveKeys(ctx context.Context) (map[string]bool, error)
	AppendArchive(ctx context.Context, records []model.ArchiveRecord) error
	AppendArchiveKeys(ctx context.Context, keys []string) error
}

// UpdateArchive copies every assignment whose shift has ended into the
// historical archive, once per archive key
func UpdateArchive(
	ctx context.Context,
	database UpdateArchiveStore,
	cfg config.Config,
	logger *zap.Logger,
) (*archive.Result, error) {
	logger.Debug("Starting updateArchive")

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	// Sampled once so no shift changes eligibility mid-pass
	now := timeNow()

	var in archive.Input
	if in.Assignments, err = database.GetAssignments(ctx); err != nil {
		return nil, fmt.Errorf("failed to fetch volunteer assignments: %w", err)
	}
	if in.Shifts, err = database.GetShifts(ctx); err != nil {
		return nil, fmt.Errorf("failed to fetch shifts: %w", err)
	}
	if in.Events, err = database.GetEvents(ctx); err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	if in.Members, err = database.GetMembers(ctx); err != nil {
		return nil, fmt.Errorf("failed to fetch members: %w", err)
	}
	if in.Guests, err = database.GetGuests(ctx); err != nil {
		return nil, fmt.Errorf("failed to fetch guests: %w", err)
	}
	if in.Indexed, err = database.GetArchiveKeys(ctx); err != nil {
		return nil, fmt.Errorf("failed to fetch archive index: %w", err)
	}

	logger.Debug("Loaded archive inputs",
		zap.Int("assignments", len(in.Assignments)),
		zap.Int("shifts", len(in.Shifts)),
		zap.Int("indexed", len(in.Indexed)))

	result := archive.Build(in, now, now.In(loc).Format(eventtime.SentLayout))
	logSkips(logger, "updateArchive", result.Skipped)

	if len(result.Records) == 0 {
		logger.Info("No new archive records",
			zap.Int("already_archived", result.AlreadyArchived),
			zap.Int("pending", result.Pending))
		return &result, nil
	}

	if err := database.AppendArchive(ctx, result.Records); err != nil {
		return nil, fmt.Errorf("failed to append archive records: %w", err)
	}
	if err := database.AppendArchiveKeys(ctx, result.Keys()); err != nil {
		return nil, fmt.Errorf("failed to append archive index: %w", err)
	}

	logger.Info("Archive updated",
		zap.Int("archived", len(result.Records)),
		zap.Int("already_archived", result.AlreadyArchived),
		zap.Int("pending", result.Pending),
		zap.Int("skipped", len(result.Skipped)))

	return &result, nil
}
