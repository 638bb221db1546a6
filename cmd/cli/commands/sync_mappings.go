package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/shmira-scheduler/pkg/core/services"
)

// SyncMappingsCmd creates the syncMappings command
func SyncMappingsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "syncMappings",
		Short: "Update the event map of who should be notified about which event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Database.EnsureSchema(app.Ctx); err != nil {
				return err
			}

			result, err := services.SyncMappings(app.Ctx, app.Database, app.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Event map synchronised: %d added, %d archived, %d unchanged\n\n",
				len(result.Added), len(result.Archived), result.Retained)
			return nil
		},
	}
}
