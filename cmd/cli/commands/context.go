package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/shmira-scheduler/internal/config"
	"github.com/jakechorley/shmira-scheduler/pkg/clients/sheetsclient"
	"github.com/jakechorley/shmira-scheduler/pkg/core/model"
	"github.com/jakechorley/shmira-scheduler/pkg/core/services"
	"github.com/jakechorley/shmira-scheduler/pkg/db"
	"github.com/jakechorley/shmira-scheduler/pkg/metrics"
	"github.com/jakechorley/shmira-scheduler/pkg/sheetssql"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Env          string
	Cfg          config.Config
	SheetsClient *sheetsclient.Client
	Backend      sheetssql.Backend
	Database     db.Database
	Mailer       services.Mailer
	Metrics      *metrics.Metrics
	Logger       *zap.Logger
	Ctx          context.Context
}

// printFailedEmails lists emails that could not be sent
func printFailedEmails(failed []services.FailedEmail) {
	if len(failed) == 0 {
		return
	}
	fmt.Printf("⚠️  Failed to send %d emails:\n", len(failed))
	for _, fe := range failed {
		fmt.Printf("  ✗ %s (%s): %s\n", fe.Name, fe.Email, fe.Error)
	}
	fmt.Println()
}

// printSkips lists records a phase left out
func printSkips(skips []model.Skip) {
	if len(skips) == 0 {
		return
	}
	fmt.Printf("⚠️  Skipped %d records:\n", len(skips))
	for _, s := range skips {
		fmt.Printf("  - %s\n", s)
	}
	fmt.Println()
}
