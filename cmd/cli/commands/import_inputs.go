package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/shmira-scheduler/internal/config"
	"github.com/jakechorley/shmira-scheduler/pkg/clients/sheetsclient"
	"github.com/jakechorley/shmira-scheduler/pkg/core/services"
)

// ImportInputsCmd creates the importInputs command
func ImportInputsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "importInputs",
		Short: "Copy the form and admin sheets into the configured SQL backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Cfg.Backend == config.BackendSheets {
				return fmt.Errorf("importInputs only applies to the %s and %s backends", config.BackendPostgres, config.BackendSQLite)
			}
			if app.Cfg.SpreadsheetID == "" {
				return fmt.Errorf("spreadsheet_id must be set to import from Google Sheets")
			}

			src := sheetsclient.NewStore(app.SheetsClient, app.Cfg.SpreadsheetID)
			imported, err := services.ImportCollections(app.Ctx, src, app.Backend, services.InputCollections(app.Cfg.Collections), app.Logger)
			for _, c := range imported {
				fmt.Printf("  ✓ %s: %d rows copied, %d replaced\n", c.Name, c.Copied, c.Replaced)
			}
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Imported %d collections\n\n", len(imported))
			return nil
		},
	}
}
