package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/shmira-scheduler/pkg/core/services"
)

// UpdateArchiveCmd creates the updateArchive command
func UpdateArchiveCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "updateArchive",
		Short: "Copy finished volunteer shifts into the historical archive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Database.EnsureSchema(app.Ctx); err != nil {
				return err
			}

			result, err := services.UpdateArchive(app.Ctx, app.Database, app.Cfg, app.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Archive updated: %d new, %d already archived, %d not yet ended\n",
				len(result.Records), result.AlreadyArchived, result.Pending)
			printSkips(result.Skipped)
			return nil
		},
	}
}
