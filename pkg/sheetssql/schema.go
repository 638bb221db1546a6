package sheetssql

import (
	"fmt"
	"reflect"
)

// TableFromModel builds a TableSchema by reflecting on a struct definition.
// Every field must carry an `ssql_header:"Column Name"` tag; `ssql_required:"true"`
// marks columns whose absence is a SchemaError.
func TableFromModel(name string, headerRow int, model interface{}) (TableSchema, error) {
	t := reflect.TypeOf(model)

	// Handle pointer to struct
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return TableSchema{}, fmt.Errorf("model must be a struct, got %s", t.Kind())
	}

	columns := make([]Column, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		header := field.Tag.Get("ssql_header")
		if header == "" {
			return TableSchema{}, fmt.Errorf("field %s.%s missing 'ssql_header' tag", t.Name(), field.Name)
		}

		columns = append(columns, Column{
			Name:     header,
			Required: field.Tag.Get("ssql_required") == "true",
		})
	}

	if len(columns) == 0 {
		return TableSchema{}, fmt.Errorf("struct %s has no fields", t.Name())
	}

	return TableSchema{
		Name:      name,
		HeaderRow: headerRow,
		Columns:   columns,
	}, nil
}

// MustTableFromModel is TableFromModel for package-level declarations
func MustTableFromModel(name string, headerRow int, model interface{}) TableSchema {
	table, err := TableFromModel(name, headerRow, model)
	if err != nil {
		panic(err)
	}
	return table
}

// fieldsByHeader maps header names to struct field indices
func fieldsByHeader(t reflect.Type) map[string]int {
	fields := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if header := t.Field(i).Tag.Get("ssql_header"); header != "" {
			fields[header] = i
		}
	}
	return fields
}
