package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/shmira-scheduler/pkg/core/services"
)

// WatchCmd creates the watch command
func WatchCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the pipeline at every occurrence of the configured schedule until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Cfg.Schedule == "" {
				return fmt.Errorf("no schedule configured - set schedule to an RRULE such as FREQ=HOURLY;INTERVAL=1")
			}
			loc, err := app.Cfg.Location()
			if err != nil {
				return err
			}
			immediately, _ := cmd.Flags().GetBool("now")

			runOnce := func() {
				result, err := services.RunPipeline(app.Ctx, app.Database, app.Mailer, app.Cfg, app.Metrics, app.Logger)
				if err != nil {
					app.Logger.Error("Pipeline run failed", zap.Error(err))
					return
				}
				printPipeline(result)
			}

			if immediately {
				runOnce()
			}

			for {
				next, err := services.NextRun(app.Cfg.Schedule, time.Now(), loc)
				if err != nil {
					return err
				}
				app.Logger.Info("Waiting for next run", zap.Time("at", next))

				timer := time.NewTimer(time.Until(next))
				select {
				case <-app.Ctx.Done():
					timer.Stop()
					app.Logger.Info("Watch stopped")
					return nil
				case <-timer.C:
				}

				runOnce()
			}
		},
	}

	cmd.Flags().Bool("now", false, "Run once immediately before waiting for the schedule")

	return cmd
}
