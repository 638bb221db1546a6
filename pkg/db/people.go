package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jakechorley/shmira-scheduler/pkg/core/model"
	"github.com/jakechorley/shmira-scheduler/pkg/sheetssql"
)

// GetEvents retrieves intake responses. Rows without a timestamp or token
// are partially filled form rows and are ignored.
func (db *DB) GetEvents(ctx context.Context) ([]model.Event, error) {
	rows, rowErrs, err := sheetssql.GetTableAs[EventRow](ctx, db.ssql, db.tables.Events)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	db.skipRows(rowErrs)

	events := make([]model.Event, 0, len(rows))
	for _, r := range rows {
		if strings.TrimSpace(r.Value.Timestamp) == "" || strings.TrimSpace(r.Value.Token) == "" {
			continue
		}
		events = append(events, r.Value.toModel())
	}
	return events, nil
}

// GetGuests retrieves approved guests
func (db *DB) GetGuests(ctx context.Context) ([]model.Guest, error) {
	rows, rowErrs, err := sheetssql.GetTableAs[GuestRow](ctx, db.ssql, db.tables.Guests)
	if err != nil {
		return nil, fmt.Errorf("failed to get guests: %w", err)
	}
	db.skipRows(rowErrs)

	var guests []model.Guest
	for _, r := range rows {
		if !isApproved(r.Value.Approvals) || strings.TrimSpace(r.Value.Token) == "" {
			continue
		}
		guests = append(guests, r.Value.toModel())
	}
	return guests, nil
}

// GetMembers retrieves approved members
func (db *DB) GetMembers(ctx context.Context) ([]model.Member, error) {
	rows, rowErrs, err := sheetssql.GetTableAs[MemberRow](ctx, db.ssql, db.tables.Members)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	db.skipRows(rowErrs)

	var members []model.Member
	for _, r := range rows {
		if !isApproved(r.Value.Approvals) || strings.TrimSpace(r.Value.Token) == "" {
			continue
		}
		members = append(members, r.Value.toModel())
	}
	return members, nil
}

// GetLocations retrieves mortuary details
func (db *DB) GetLocations(ctx context.Context) ([]model.Location, error) {
	rows, rowErrs, err := sheetssql.GetTableAs[LocationRow](ctx, db.ssql, db.tables.Locations)
	if err != nil {
		return nil, fmt.Errorf("failed to get locations: %w", err)
	}
	db.skipRows(rowErrs)

	locations := make([]model.Location, 0, len(rows))
	for _, r := range rows {
		if strings.TrimSpace(r.Value.Name) == "" {
			continue
		}
		locations = append(locations, r.Value.toModel())
	}
	return locations, nil
}
