package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/shmira-scheduler/pkg/core/services"
)

// SyncShiftsCmd creates the syncShifts command
func SyncShiftsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "syncShifts",
		Short: "Generate hourly shifts for every event and update the shift master",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Database.EnsureSchema(app.Ctx); err != nil {
				return err
			}

			result, err := services.SyncShifts(app.Ctx, app.Database, app.Cfg, app.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Shifts synchronised: %d added, %d removed\n", len(result.Added), len(result.Removed))
			if len(result.Retained) > 0 {
				fmt.Printf("  %d obsolete shift kept so the shift master is never empty\n", len(result.Retained))
			}
			printSkips(result.Skipped)
			return nil
		},
	}
}
