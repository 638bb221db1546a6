package db

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jakechorley/shmira-scheduler/internal/config"
	"github.com/jakechorley/shmira-scheduler/pkg/core/model"
	"github.com/jakechorley/shmira-scheduler/pkg/sheetssql"
)

// Tables holds the schema of every table the scheduler reads or writes
type Tables struct {
	Events         sheetssql.TableSchema
	Guests         sheetssql.TableSchema
	Members        sheetssql.TableSchema
	Locations      sheetssql.TableSchema
	Shifts         sheetssql.TableSchema
	Assignments    sheetssql.TableSchema
	Mappings       sheetssql.TableSchema
	MappingArchive sheetssql.TableSchema
	Archive        sheetssql.TableSchema
	ArchiveIndex   sheetssql.TableSchema
}

// NewTables builds table schemas from the configured collection names
func NewTables(c config.Collections) Tables {
	return Tables{
		Events:         sheetssql.MustTableFromModel(c.Events, c.EventsHeaderRow, EventRow{}),
		Guests:         sheetssql.MustTableFromModel(c.ApprovedGuests, 1, GuestRow{}),
		Members:        sheetssql.MustTableFromModel(c.ApprovedMembers, 1, MemberRow{}),
		Locations:      sheetssql.MustTableFromModel(c.Locations, 1, LocationRow{}),
		Shifts:         sheetssql.MustTableFromModel(c.ShiftMaster, 1, ShiftRow{}),
		Assignments:    sheetssql.MustTableFromModel(c.VolunteerAssignments, 1, AssignmentRow{}),
		Mappings:       sheetssql.MustTableFromModel(c.EventMapping, 1, MappingRow{}),
		MappingArchive: sheetssql.MustTableFromModel(c.MappingArchive, 1, MappingRow{}),
		Archive:        sheetssql.MustTableFromModel(c.HistoricalArchive, 1, ArchiveRow{}),
		ArchiveIndex:   sheetssql.MustTableFromModel(c.HistoricalIndex, 1, ArchiveIndexRow{}),
	}
}

// DB is the typed record store used by every phase
type DB struct {
	ssql   *sheetssql.DB
	tables Tables
	logger *zap.Logger
}

// Option configures a DB
type Option func(*DB)

// WithLogger sets the logger that reports rows left out of a read
func WithLogger(logger *zap.Logger) Option {
	return func(db *DB) {
		db.logger = logger
	}
}

// NewDB creates a new database over a tabular record store
func NewDB(ssql *sheetssql.DB, collections config.Collections, opts ...Option) *DB {
	db := &DB{
		ssql:   ssql,
		tables: NewTables(collections),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

// Tables returns the schemas in use
func (db *DB) Tables() Tables {
	return db.tables
}

// EnsureSchema creates the tables the scheduler owns and checks their
// required columns. Input tables are checked when read.
func (db *DB) EnsureSchema(ctx context.Context) error {
	owned := []sheetssql.TableSchema{
		db.tables.Shifts,
		db.tables.Assignments,
		db.tables.Mappings,
		db.tables.MappingArchive,
		db.tables.Archive,
		db.tables.ArchiveIndex,
	}
	for _, table := range owned {
		if err := db.ssql.EnsureTable(ctx, table); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

// skipRows logs each row a read left out
func (db *DB) skipRows(rowErrs []*sheetssql.RowError) {
	for _, e := range rowErrs {
		reason := model.SkipMalformedCell
		if strings.Contains(strings.ToLower(e.Column), "epoch") {
			reason = model.SkipMalformedTime
		}
		skip := model.Skip{
			Record: fmt.Sprintf("%s row %d", e.Table, e.Row),
			Reason: reason,
			Detail: fmt.Sprintf("%s: %v", e.Column, e.Err),
		}
		db.logger.Warn("Skipping unreadable row",
			zap.Stringer("skip", skip),
			zap.String("table", e.Table),
			zap.Int("row", e.Row))
	}
}
