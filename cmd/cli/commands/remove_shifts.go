package commands

import (
	"github.com/spf13/cobra"

	"github.com/jakechorley/shmira-scheduler/pkg/core/services"
)

// RemoveShiftsCmd creates the removeShifts command
func RemoveShiftsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "removeShifts <volunteer_token> <shift_id>...",
		Short: "Take a volunteer off shifts and email a confirmation",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Database.EnsureSchema(app.Ctx); err != nil {
				return err
			}

			result, err := services.RemoveVolunteerShifts(app.Ctx, app.Database, app.Mailer, app.Cfg, app.Logger, args[0], args[1:])
			if err != nil {
				return err
			}

			printSelection("removed from", result)
			return nil
		},
	}
}
