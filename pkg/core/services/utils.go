package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/shmira-scheduler/pkg/core/model"
	"github.com/jakechorley/shmira-scheduler/pkg/sheetssql"
)

// Mailer sends a plain text email
type Mailer interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// FailedEmail represents a person whose email could not be sent
type FailedEmail struct {
	Token string
	Name  string
	Email string
	Error string
}

// ErrAllSendsFailed is returned when every attempted send in a pass failed
var ErrAllSendsFailed = errors.New("all email send attempts failed")

// timeNow is replaced in tests
var timeNow = time.Now

// IsSchemaError reports whether err was caused by a missing required column
func IsSchemaError(err error) bool {
	var schemaErr *sheetssql.SchemaError
	return errors.As(err, &schemaErr)
}

// logSkips logs each skipped record at warn level
func logSkips(logger *zap.Logger, phase string, skips []model.Skip) {
	for _, s := range skips {
		logger.Warn("Skipped record",
			zap.String("phase", phase),
			zap.String("record", s.Record),
			zap.String("reason", string(s.Reason)),
			zap.String("detail", s.Detail))
	}
}
