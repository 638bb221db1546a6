package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/jakechorley/shmira-scheduler/internal/config"
	"github.com/jakechorley/shmira-scheduler/pkg/core/archive"
	"github.com/jakechorley/shmira-scheduler/pkg/db"
	"github.com/jakechorley/shmira-scheduler/pkg/metrics"
	"github.com/jakechorley/shmira-scheduler/pkg/utils/logging"
)

// PipelineResult collects the outcome of every phase of one run
type PipelineResult struct {
	RunID         string
	Shifts        *SyncShiftsResult
	Mappings      *SyncMappingsResult
	Notifications *SendNotificationsResult
	Archive       *archive.Result
}

// RunPipeline runs syncShifts, syncMappings, sendNotifications and updateArchive
// in order. Any store error stops the run. A notification pass where every send
// failed is logged and the run carries on, since those rows are retried next time.
// m may be nil.
func RunPipeline(
	ctx context.Context,
	database db.Database,
	mailer Mailer,
	cfg config.Config,
	m *metrics.Metrics,
	logger *zap.Logger,
) (result *PipelineResult, err error) {
	runID := ulid.Make().String()
	logger = logging.ForRun(logger, runID)
	started := timeNow()
	result = &PipelineResult{RunID: runID}

	logger.Info("Starting pipeline run")

	defer func() {
		if m == nil {
			return
		}
		m.ObserveRun(started, timeNow(), err)
		if cfg.MetricsFile != "" {
			if werr := m.WriteToTextfile(cfg.MetricsFile); werr != nil {
				logger.Warn("Failed to write metrics file", zap.String("path", cfg.MetricsFile), zap.Error(werr))
			}
		}
	}()

	if err = database.EnsureSchema(ctx); err != nil {
		return result, err
	}

	if result.Shifts, err = SyncShifts(ctx, database, cfg, logger); err != nil {
		return result, phaseError("syncShifts", err)
	}
	if m != nil {
		m.ShiftsAdded.Add(float64(len(result.Shifts.Added)))
		m.ShiftsRemoved.Add(float64(len(result.Shifts.Removed)))
		m.Skip("syncShifts", result.Shifts.Skipped)
	}

	if result.Mappings, err = SyncMappings(ctx, database, logger); err != nil {
		return result, phaseError("syncMappings", err)
	}
	if m != nil {
		m.MappingsAdded.Add(float64(len(result.Mappings.Added)))
		m.MappingsArchived.Add(float64(len(result.Mappings.Archived)))
	}

	notifications, err := SendNotifications(ctx, database, mailer, cfg, logger)
	result.Notifications = notifications
	if err != nil && !errors.Is(err, ErrAllSendsFailed) {
		return result, phaseError("sendNotifications", err)
	}
	if err != nil {
		logger.Error("Every event notice failed to send; rows stay unsent", zap.Error(err))
		err = nil
	}
	if m != nil && notifications != nil {
		m.NotificationsSent.Add(float64(len(notifications.Sent)))
		m.NotificationsFailed.Add(float64(len(notifications.Failed)))
		m.Skip("sendNotifications", notifications.Skipped)
	}

	if result.Archive, err = UpdateArchive(ctx, database, cfg, logger); err != nil {
		return result, phaseError("updateArchive", err)
	}
	if m != nil {
		m.ArchiveRecords.Add(float64(len(result.Archive.Records)))
		m.Skip("updateArchive", result.Archive.Skipped)
	}

	logger.Info("Pipeline run complete", zap.Duration("duration", timeNow().Sub(started)))
	return result, nil
}

func phaseError(phase string, err error) error {
	return fmt.Errorf("%s failed: %w", phase, err)
}
