package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/shmira-scheduler/cmd/cli/commands"
	"github.com/jakechorley/shmira-scheduler/internal/config"
	"github.com/jakechorley/shmira-scheduler/pkg/clients/gmailclient"
	"github.com/jakechorley/shmira-scheduler/pkg/clients/sheetsclient"
	"github.com/jakechorley/shmira-scheduler/pkg/db"
	"github.com/jakechorley/shmira-scheduler/pkg/metrics"
	"github.com/jakechorley/shmira-scheduler/pkg/postgres"
	"github.com/jakechorley/shmira-scheduler/pkg/sheetssql"
	"github.com/jakechorley/shmira-scheduler/pkg/sqlite"
	"github.com/jakechorley/shmira-scheduler/pkg/utils/logging"
)

func main() {
	app := &commands.AppContext{}
	var (
		stop    context.CancelFunc
		closeFn func()
	)

	rootCmd := &cobra.Command{
		Use:   "shmira",
		Short: "Shmira Scheduler CLI - coordinate volunteer shifts for Jewish funerals",
		Long:  `A CLI tool that turns death notices into hourly shmira shifts, notifies the people who asked to hear about each event, and keeps a history of who sat with whom.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app.Ctx, stop = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			var err error
			closeFn, err = initApp(app)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if closeFn != nil {
				closeFn()
			}
			if app.Logger != nil {
				app.Logger.Sync()
			}
			if stop != nil {
				stop()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&app.Env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.SyncShiftsCmd(app))
	rootCmd.AddCommand(commands.SyncMappingsCmd(app))
	rootCmd.AddCommand(commands.SendNotificationsCmd(app))
	rootCmd.AddCommand(commands.UpdateArchiveCmd(app))
	rootCmd.AddCommand(commands.RunCmd(app))
	rootCmd.AddCommand(commands.WatchCmd(app))
	rootCmd.AddCommand(commands.ListShiftsCmd(app))
	rootCmd.AddCommand(commands.SetShiftsCmd(app))
	rootCmd.AddCommand(commands.RemoveShiftsCmd(app))
	rootCmd.AddCommand(commands.ViewHistoryCmd(app))
	rootCmd.AddCommand(commands.ImportInputsCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp loads config and wires the logger, clients, storage backend and metrics.
// The returned func releases the backend.
func initApp(app *commands.AppContext) (func(), error) {
	var err error

	app.Cfg, err = config.LoadWithEnv(app.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	app.Logger, err = logging.InitLogger(app.Env, app.Cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(app.Logger)
	app.Logger.Info("Starting application",
		zap.String("environment", app.Env),
		zap.String("backend", app.Cfg.Backend))

	oauthCfg, err := config.LoadOAuthClientWithEnv(app.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to load OAuth client config: %w", err)
	}

	app.Logger.Info("Initializing sheets client")
	app.SheetsClient, err = sheetsclient.NewClient(app.Ctx, oauthCfg, app.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	closeFn := func() {}
	switch app.Cfg.Backend {
	case config.BackendPostgres:
		app.Logger.Info("Connecting to postgres")
		pg, err := postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		if err := pg.RunMigrations(app.Ctx); err != nil {
			pg.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		app.Backend = pg
		closeFn = pg.Close
	case config.BackendSQLite:
		app.Logger.Info("Opening sqlite database", zap.String("path", app.Cfg.SQLitePath))
		store, err := sqlite.Open(app.Cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		app.Backend = store
		closeFn = func() {
			if err := store.Close(); err != nil {
				app.Logger.Warn("Failed to close sqlite database", zap.Error(err))
			}
		}
	default:
		app.Logger.Info("Using Google Sheets", zap.String("spreadsheet_id", app.Cfg.SpreadsheetID))
		app.Backend = sheetsclient.NewStore(app.SheetsClient, app.Cfg.SpreadsheetID)
	}

	app.Database = db.NewDB(sheetssql.NewDB(app.Backend), app.Cfg.Collections, db.WithLogger(app.Logger))

	app.Logger.Info("Initializing gmail client")
	app.Mailer, err = gmailclient.NewClient(app.Ctx, oauthCfg, app.SheetsClient.Token(), app.Cfg.GmailSender)
	if err != nil {
		closeFn()
		return nil, fmt.Errorf("failed to create gmail client: %w", err)
	}

	app.Metrics = metrics.New()

	app.Logger.Debug("Application initialized")
	return closeFn, nil
}
