package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/shmira-scheduler/pkg/core/mappings"
	"github.com/jakechorley/shmira-scheduler/pkg/core/model"
)

// SyncMappingsStore defines the database operations needed to synchronise the event map
type SyncMappingsStore interface {
	GetEvents(ctx context.Context) ([]model.Event, error)
	GetGuests(ctx context.Context) ([]model.Guest, error)
	GetMembers(ctx context.Context) ([]model.Member, error)
	GetMappings(ctx context.Context) ([]model.Mapping, error)
	InsertMappings(ctx context.Context, mappings []model.Mapping) error
	ArchiveMappings(ctx context.Context, mappings []model.Mapping) error
	DeleteMappings(ctx context.Context, mappings []model.Mapping) error
}

// SyncMappingsResult summarises one event map synchronisation
type SyncMappingsResult struct {
	Added    []model.Mapping
	Archived []model.Mapping
	Retained int
}

// SyncMappings computes who must be told about which event and updates the
// event map. Rows no longer required are copied to the mapping archive and then
// removed; retained rows keep their sent state.
func SyncMappings(
	ctx context.Context,
	database SyncMappingsStore,
	logger *zap.Logger,
) (*SyncMappingsResult, error) {
	logger.Debug("Starting syncMappings")

	events, err := database.GetEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}

	guests, err := database.GetGuests(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch guests: %w", err)
	}

	members, err := database.GetMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch members: %w", err)
	}

	persisted, err := database.GetMappings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event map: %w", err)
	}

	logger.Debug("Loaded mapping inputs",
		zap.Int("events", len(events)),
		zap.Int("guests", len(guests)),
		zap.Int("members", len(members)),
		zap.Int("mappings", len(persisted)))

	required := mappings.Required(events, guests, members)
	delta := mappings.Diff(required, persisted)
	result := &SyncMappingsResult{
		Added:    delta.ToAdd,
		Archived: delta.ToArchive,
		Retained: delta.Retained,
	}

	if delta.Empty() {
		logger.Info("Event map already up to date", zap.Int("mappings", delta.Retained))
		return result, nil
	}

	if len(delta.ToArchive) > 0 {
		if err := database.ArchiveMappings(ctx, delta.ToArchive); err != nil {
			return nil, fmt.Errorf("failed to archive mappings: %w", err)
		}
		if err := database.DeleteMappings(ctx, delta.ToArchive); err != nil {
			return nil, fmt.Errorf("failed to delete archived mappings: %w", err)
		}
	}

	if len(delta.ToAdd) > 0 {
		if err := database.InsertMappings(ctx, delta.ToAdd); err != nil {
			return nil, fmt.Errorf("failed to insert mappings: %w", err)
		}
	}

	logger.Info("Event map synchronised",
		zap.Int("added", len(delta.ToAdd)),
		zap.Int("archived", len(delta.ToArchive)),
		zap.Int("retained", delta.Retained))

	return result, nil
}
