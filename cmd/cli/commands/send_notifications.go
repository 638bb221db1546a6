package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/shmira-scheduler/pkg/core/services"
)

// SendNotificationsCmd creates the sendNotifications command
func SendNotificationsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sendNotifications",
		Short: "Email an event notice for every unsent row of the event map",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Database.EnsureSchema(app.Ctx); err != nil {
				return err
			}

			result, err := services.SendNotifications(app.Ctx, app.Database, app.Mailer, app.Cfg, app.Logger)
			if result != nil {
				printNotifications(result)
			}
			return err
		},
	}
}

func printNotifications(result *services.SendNotificationsResult) {
	fmt.Println()
	if len(result.Sent) > 0 {
		fmt.Printf("Event notices sent to %d people:\n", len(result.Sent))
		for _, s := range result.Sent {
			fmt.Printf("  ✓ %s (%s) for event %s\n", s.Name, s.Email, s.Mapping.EventToken)
		}
		fmt.Println()
	}

	printFailedEmails(result.Failed)
	printSkips(result.Skipped)

	if len(result.Sent) == 0 && len(result.Failed) == 0 {
		fmt.Println("No notifications to send.")
	}
}
