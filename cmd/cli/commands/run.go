package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/shmira-scheduler/pkg/core/services"
)

// RunCmd creates the run command
func RunCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run every phase once: shifts, event map, notifications, archive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.RunPipeline(app.Ctx, app.Database, app.Mailer, app.Cfg, app.Metrics, app.Logger)
			if result != nil {
				printPipeline(result)
			}
			return err
		},
	}
}

func printPipeline(result *services.PipelineResult) {
	fmt.Printf("\nRun %s\n", result.RunID)
	if result.Shifts != nil {
		fmt.Printf("  Shifts:        %d added, %d removed\n", len(result.Shifts.Added), len(result.Shifts.Removed))
	}
	if result.Mappings != nil {
		fmt.Printf("  Event map:     %d added, %d archived\n", len(result.Mappings.Added), len(result.Mappings.Archived))
	}
	if result.Notifications != nil {
		fmt.Printf("  Notifications: %d sent, %d failed, %d skipped\n",
			len(result.Notifications.Sent), len(result.Notifications.Failed), len(result.Notifications.Skipped))
	}
	if result.Archive != nil {
		fmt.Printf("  Archive:       %d new, %d pending\n", len(result.Archive.Records), result.Archive.Pending)
	}
	fmt.Println()

	if result.Notifications != nil {
		printFailedEmails(result.Notifications.Failed)
	}
}
