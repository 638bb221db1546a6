package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/shmira-scheduler/pkg/core/services"
)

// SetShiftsCmd creates the setShifts command
func SetShiftsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "setShifts <volunteer_token> <shift_id>...",
		Short: "Sign a volunteer up for shifts and email a confirmation",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Database.EnsureSchema(app.Ctx); err != nil {
				return err
			}

			result, err := services.SetVolunteerShifts(app.Ctx, app.Database, app.Mailer, app.Cfg, app.Logger, args[0], args[1:])
			if err != nil {
				return err
			}

			printSelection("added to", result)
			return nil
		},
	}
}

func printSelection(verb string, result *services.SelectionResult) {
	fmt.Printf("\n✓ %s %s %d shifts\n", result.Volunteer.FullName(), verb, len(result.Changed))
	for _, s := range result.Changed {
		fmt.Printf("  %s  %s %s\n", s.ID, s.EventDate, s.DisplayTime)
	}
	if len(result.Unchanged) > 0 {
		fmt.Printf("  %d already as requested\n", len(result.Unchanged))
	}
	fmt.Println()

	if result.Confirmation != nil {
		printFailedEmails([]services.FailedEmail{*result.Confirmation})
	}
}
