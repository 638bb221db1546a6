package db

import (
	"context"

	"github.com/jakechorley/shmira-scheduler/pkg/core/model"
)

// Database defines the interface for all database operations.
// db.DB implements it over any sheetssql.Backend: Google Sheets, Postgres,
// SQLite or memory.
type Database interface {
	EnsureSchema(ctx context.Context) error

	GetEvents(ctx context.Context) ([]model.Event, error)
	GetGuests(ctx context.Context) ([]model.Guest, error)
	GetMembers(ctx context.Context) ([]model.Member, error)
	GetLocations(ctx context.Context) ([]model.Location, error)

	GetShifts(ctx context.Context) ([]model.Shift, error)
	InsertShifts(ctx context.Context, shifts []model.Shift) error
	DeleteShifts(ctx context.Context, shifts []model.Shift) error

	GetAssignments(ctx context.Context) ([]model.Assignment, error)
	InsertAssignments(ctx context.Context, assignments []model.Assignment) error
	DeleteAssignments(ctx context.Context, assignments []model.Assignment) error

	GetMappings(ctx context.Context) ([]model.Mapping, error)
	InsertMappings(ctx context.Context, mappings []model.Mapping) error
	ArchiveMappings(ctx context.Context, mappings []model.Mapping) error
	DeleteMappings(ctx context.Context, mappings []model.Mapping) error
	MarkMappingSent(ctx context.Context, row int, sentAt string) error

	GetArchiveKeys(ctx context.Context) (map[string]bool, error)
	GetArchive(ctx context.Context) ([]model.ArchiveRecord, error)
	AppendArchive(ctx context.Context, records []model.ArchiveRecord) error
	AppendArchiveKeys(ctx context.Context, keys []string) error
}

var _ Database = (*DB)(nil)
