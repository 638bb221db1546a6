package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/shmira-scheduler/internal/config"
	"github.com/jakechorley/shmira-scheduler/pkg/core/model"
	"github.com/jakechorley/shmira-scheduler/pkg/core/shifts"
)

// SyncShiftsStore defines the database operations needed to reconcile shifts
type SyncShiftsStore interface {
	GetEvents(ctx context.Context) ([]model.Event, error)
	GetShifts(ctx context.Context) ([]model.Shift, error)
	InsertShifts(ctx context.Context, shifts []model.Shift) error
	DeleteShifts(ctx context.Context, shifts []model.Shift) error
}

// SyncShiftsResult summarises one shift reconciliation
type SyncShiftsResult struct {
	Added    []model.Shift
	Removed  []model.Shift
	Retained []model.Shift
	Skipped  []model.Skip
}

// SyncShifts generates the shifts every current event should have and brings
// the shift master in line: missing shifts are appended, obsolete ones deleted.
// Shifts that already exist by content key are never touched.
func SyncShifts(
	ctx context.Context,
	database SyncShiftsStore,
	cfg config.Config,
	logger *zap.Logger,
) (*SyncShiftsResult, error) {
	logger.Debug("Starting syncShifts")

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	events, err := database.GetEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	logger.Debug("Found events", zap.Int("count", len(events)))

	persisted, err := database.GetShifts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shifts: %w", err)
	}
	logger.Debug("Found persisted shifts", zap.Int("count", len(persisted)))

	desired, skips := shifts.Desired(events, loc)
	logSkips(logger, "syncShifts", skips)

	delta := shifts.Diff(desired, persisted)
	result := &SyncShiftsResult{
		Added:    delta.ToAdd,
		Removed:  delta.ToRemove,
		Retained: delta.Retained,
		Skipped:  skips,
	}

	for _, s := range delta.Retained {
		logger.Info("Keeping obsolete shift so the shift master is not emptied",
			zap.String("shift_id", s.ID),
			zap.Int("row", s.Row))
	}

	if delta.Empty() {
		logger.Info("Shifts already up to date", zap.Int("shifts", len(persisted)))
		return result, nil
	}

	if len(delta.ToAdd) > 0 {
		if err := database.InsertShifts(ctx, delta.ToAdd); err != nil {
			return nil, fmt.Errorf("failed to insert shifts: %w", err)
		}
	}

	if len(delta.ToRemove) > 0 {
		if err := database.DeleteShifts(ctx, delta.ToRemove); err != nil {
			return nil, fmt.Errorf("failed to delete obsolete shifts: %w", err)
		}
	}

	logger.Info("Shifts synchronised",
		zap.Int("added", len(delta.ToAdd)),
		zap.Int("removed", len(delta.ToRemove)),
		zap.Int("skipped", len(skips)))

	return result, nil
}
