package db

import (
	"context"
	"fmt"

	"github.com/jakechorley/shmira-scheduler/pkg/core/model"
	"github.com/jakechorley/shmira-scheduler/pkg/sheetssql"
)

// GetShifts retrieves the shift master
func (db *DB) GetShifts(ctx context.Context) ([]model.Shift, error) {
	rows, rowErrs, err := sheetssql.GetTableAs[ShiftRow](ctx, db.ssql, db.tables.Shifts)
	if err != nil {
		return nil, fmt.Errorf("failed to get shifts: %w", err)
	}
	db.skipRows(rowErrs)

	shifts := make([]model.Shift, 0, len(rows))
	for _, r := range rows {
		shifts = append(shifts, r.Value.toModel(r.Index))
	}
	return shifts, nil
}

// InsertShifts appends shifts to the shift master
func (db *DB) InsertShifts(ctx context.Context, shifts []model.Shift) error {
	rows := make([]ShiftRow, len(shifts))
	for i, s := range shifts {
		rows[i] = shiftRowFrom(s)
	}
	if err := sheetssql.InsertModels(ctx, db.ssql, db.tables.Shifts, rows); err != nil {
		return fmt.Errorf("failed to insert shifts: %w", err)
	}
	return nil
}

// DeleteShifts removes persisted shifts by row
func (db *DB) DeleteShifts(ctx context.Context, shifts []model.Shift) error {
	rows := make([]int, len(shifts))
	for i, s := range shifts {
		rows[i] = s.Row
	}
	if err := db.ssql.DeleteRows(ctx, db.tables.Shifts, rows); err != nil {
		return fmt.Errorf("failed to delete shifts: %w", err)
	}
	return nil
}

// GetAssignments retrieves volunteer shift claims
func (db *DB) GetAssignments(ctx context.Context) ([]model.Assignment, error) {
	rows, rowErrs, err := sheetssql.GetTableAs[AssignmentRow](ctx, db.ssql, db.tables.Assignments)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignments: %w", err)
	}
	db.skipRows(rowErrs)

	assignments := make([]model.Assignment, 0, len(rows))
	for _, r := range rows {
		assignments = append(assignments, r.Value.toModel(r.Index))
	}
	return assignments, nil
}

// InsertAssignments appends volunteer shift claims
func (db *DB) InsertAssignments(ctx context.Context, assignments []model.Assignment) error {
	rows := make([]AssignmentRow, len(assignments))
	for i, a := range assignments {
		rows[i] = assignmentRowFrom(a)
	}
	if err := sheetssql.InsertModels(ctx, db.ssql, db.tables.Assignments, rows); err != nil {
		return fmt.Errorf("failed to insert assignments: %w", err)
	}
	return nil
}

// DeleteAssignments removes persisted claims by row
func (db *DB) DeleteAssignments(ctx context.Context, assignments []model.Assignment) error {
	rows := make([]int, len(assignments))
	for i, a := range assignments {
		rows[i] = a.Row
	}
	if err := db.ssql.DeleteRows(ctx, db.tables.Assignments, rows); err != nil {
		return fmt.Errorf("failed to delete assignments: %w", err)
	}
	return nil
}
