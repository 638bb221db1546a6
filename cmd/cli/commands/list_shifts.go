package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/shmira-scheduler/pkg/core/model"
	"github.com/jakechorley/shmira-scheduler/pkg/core/services"
)

// ListShiftsCmd creates the listShifts command
func ListShiftsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listShifts <event_token> [volunteer_token]",
		Short: "List the open shifts of an event, and those a volunteer already holds",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			volunteerToken := ""
			if len(args) == 2 {
				volunteerToken = args[1]
			}

			listing, err := services.ListShifts(app.Ctx, app.Database, app.Logger, args[0], volunteerToken)
			if err != nil {
				return err
			}

			fmt.Printf("\n%s at %s\n\n", listing.Event.DeceasedName, listing.Event.LocationName)
			printShiftList("Available", listing.Available)
			if volunteerToken != "" {
				printShiftList("Selected", listing.Selected)
			}
			return nil
		},
	}
}

func printShiftList(title string, shifts []model.Shift) {
	fmt.Printf("%s (%d):\n", title, len(shifts))
	if len(shifts) == 0 {
		fmt.Println("  none")
	}
	for _, s := range shifts {
		fmt.Printf("  %s  %s %s\n", s.ID, s.EventDate, s.DisplayTime)
	}
	fmt.Println()
}
