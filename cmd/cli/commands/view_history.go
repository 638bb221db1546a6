package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jakechorley/shmira-scheduler/pkg/core/services"
)

// ViewHistoryCmd creates the viewHistory command
func ViewHistoryCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "viewHistory",
		Short: "Show archived shifts and hours per volunteer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := app.Cfg.Location()
			if err != nil {
				return err
			}
			sinceFlag, _ := cmd.Flags().GetString("since")
			since, err := parseSince(sinceFlag, loc)
			if err != nil {
				return err
			}

			history, err := services.ViewHistory(app.Ctx, app.Database, app.Logger, since)
			if err != nil {
				return err
			}

			if len(history) == 0 {
				fmt.Println("\nNo archived shifts found.")
				return nil
			}

			fmt.Println()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTYPE\tSHIFTS\tHOURS")
			for _, h := range history {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", h.Name, h.PersonType, h.Shifts, formatHours(h.Hours))
			}
			return w.Flush()
		},
	}

	cmd.Flags().String("since", "", "Only count shifts starting on or after this date (YYYY-MM-DD)")

	return cmd
}

// parseSince reads a YYYY-MM-DD date as local midnight. Empty means all time.
func parseSince(value string, loc *time.Location) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --since date %q, expected YYYY-MM-DD", value)
	}
	return t, nil
}

var hoursPrinter = message.NewPrinter(language.English)

func formatHours(hours float64) string {
	return hoursPrinter.Sprintf("%.1f", hours)
}
