package sheetssql

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Row is a typed record together with its 1-based position in the table
type Row[T any] struct {
	Index int
	Value T
}

// RowError reports a data row left out of a read because one of its cells
// could not be converted
type RowError struct {
	Table  string
	Row    int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("table %s row %d, column %s: %v", e.Table, e.Row, e.Column, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// CellUnmarshaler is implemented by field types that parse their own cells
type CellUnmarshaler interface {
	UnmarshalCell(cell string) error
}

// CellMarshaler is implemented by field types that render their own cells
type CellMarshaler interface {
	MarshalCell() interface{}
}

// GetTableAs reads a table and maps each data row onto T using ssql_header tags.
// Blank rows are skipped. A row with a cell that does not convert is left out
// and reported as a RowError. Missing required columns yield a SchemaError.
func GetTableAs[T any](ctx context.Context, db *DB, table TableSchema) ([]Row[T], []*RowError, error) {
	values, err := db.backend.ReadAll(ctx, table.Name)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get table %s: %w", table.Name, err)
	}

	columnIndexes, err := db.indexHeader(table, values)
	if err != nil {
		return nil, nil, err
	}

	if len(values) <= table.headerRow() {
		return []Row[T]{}, nil, nil
	}
	dataRows := values[table.headerRow():]

	var model T
	t := reflect.TypeOf(model)
	fields := fieldsByHeader(t)

	results := make([]Row[T], 0, len(dataRows))
	var rowErrs []*RowError
	for i, row := range dataRows {
		rowNumber := table.headerRow() + 1 + i
		if isBlank(row) {
			continue
		}

		result := reflect.New(t).Elem()
		var rowErr *RowError
		for _, columnName := range sortedColumns(fields) {
			colIdx, ok := columnIndexes[columnName]
			if !ok || colIdx >= len(row) || row[colIdx] == nil {
				continue
			}

			if err := setFieldValue(result.Field(fields[columnName]), row[colIdx]); err != nil {
				rowErr = &RowError{Table: table.Name, Row: rowNumber, Column: columnName, Err: err}
				break
			}
		}
		if rowErr != nil {
			rowErrs = append(rowErrs, rowErr)
			continue
		}

		results = append(results, Row[T]{Index: rowNumber, Value: result.Interface().(T)})
	}

	return results, rowErrs, nil
}

// sortedColumns orders header names by field position so the first failing
// cell of a row is reported consistently
func sortedColumns(fields map[string]int) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return fields[names[i]] < fields[names[j]] })
	return names
}

// InsertModels appends structs as rows, ordering cells by the table's actual header
func InsertModels[T any](ctx context.Context, db *DB, table TableSchema, models []T) error {
	if len(models) == 0 {
		return nil
	}

	columnIndexes, err := db.header(ctx, table)
	if err != nil {
		return err
	}

	width := 0
	for _, idx := range columnIndexes {
		if idx+1 > width {
			width = idx + 1
		}
	}

	t := reflect.TypeOf(models[0])
	fields := fieldsByHeader(t)
	for columnName := range fields {
		if _, ok := columnIndexes[columnName]; !ok {
			return &SchemaError{Table: table.Name, Column: columnName}
		}
	}

	rows := make([][]interface{}, 0, len(models))
	for _, model := range models {
		v := reflect.ValueOf(model)
		row := make([]interface{}, width)
		for i := range row {
			row[i] = ""
		}
		for columnName, fieldIdx := range fields {
			row[columnIndexes[columnName]] = toCell(v.Field(fieldIdx).Interface())
		}
		rows = append(rows, row)
	}

	if err := db.backend.AppendRows(ctx, table.Name, rows); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", table.Name, err)
	}
	return nil
}

// UpdateField overwrites one cell, locating the column by header name
func UpdateField(ctx context.Context, db *DB, table TableSchema, row int, column string, value interface{}) error {
	if row <= table.headerRow() {
		return fmt.Errorf("row %d is not a data row of %s", row, table.Name)
	}

	columnIndexes, err := db.header(ctx, table)
	if err != nil {
		return err
	}

	colIdx, ok := columnIndexes[column]
	if !ok {
		return &SchemaError{Table: table.Name, Column: column}
	}

	if err := db.backend.OverwriteCell(ctx, table.Name, row, colIdx+1, toCell(value)); err != nil {
		return fmt.Errorf("failed to update %s row %d column %s: %w", table.Name, row, column, err)
	}
	return nil
}

// toCell converts a field value to a cell. Integers are written as decimal
// strings so large values such as epoch milliseconds survive any backend.
func toCell(v interface{}) interface{} {
	if m, ok := v.(CellMarshaler); ok {
		return m.MarshalCell()
	}
	switch val := v.(type) {
	case string, bool:
		return val
	case int:
		return strconv.FormatInt(int64(val), 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

// cellString renders a cell as read from any backend
func cellString(cell interface{}) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func isBlank(row []interface{}) bool {
	for _, cell := range row {
		if strings.TrimSpace(cellString(cell)) != "" {
			return false
		}
	}
	return true
}

// setFieldValue converts a cell value to the appropriate Go type and sets it on the field
func setFieldValue(field reflect.Value, cellValue interface{}) error {
	if !field.CanSet() {
		return fmt.Errorf("field cannot be set")
	}

	cellStr := cellString(cellValue)
	trimmed := strings.TrimSpace(cellStr)

	if field.CanAddr() {
		if u, ok := field.Addr().Interface().(CellUnmarshaler); ok {
			return u.UnmarshalCell(cellStr)
		}
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(cellStr)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if trimmed == "" {
			field.SetInt(0)
		} else {
			intVal, err := strconv.ParseInt(trimmed, 10, 64)
			if err != nil {
				return fmt.Errorf("failed to parse int: %w", err)
			}
			field.SetInt(intVal)
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if trimmed == "" {
			field.SetUint(0)
		} else {
			uintVal, err := strconv.ParseUint(trimmed, 10, 64)
			if err != nil {
				return fmt.Errorf("failed to parse uint: %w", err)
			}
			field.SetUint(uintVal)
		}

	case reflect.Float32, reflect.Float64:
		if trimmed == "" {
			field.SetFloat(0)
		} else {
			floatVal, err := strconv.ParseFloat(trimmed, 64)
			if err != nil {
				return fmt.Errorf("failed to parse float: %w", err)
			}
			field.SetFloat(floatVal)
		}

	case reflect.Bool:
		if trimmed == "" {
			field.SetBool(false)
		} else {
			boolVal, err := strconv.ParseBool(trimmed)
			if err != nil {
				return fmt.Errorf("failed to parse bool: %w", err)
			}
			field.SetBool(boolVal)
		}

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}
