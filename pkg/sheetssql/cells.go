package sheetssql

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalRow encodes a row of cells for stores that keep rows as JSON arrays
func MarshalRow(row []interface{}) ([]byte, error) {
	if row == nil {
		row = []interface{}{}
	}
	data, err := json.Marshal(row)
	if err != nil {
		return nil, fmt.Errorf("failed to encode row: %w", err)
	}
	return data, nil
}

// UnmarshalRow decodes a row written by MarshalRow. Numbers are kept as
// json.Number so large integers survive.
func UnmarshalRow(data []byte) ([]interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var row []interface{}
	if err := dec.Decode(&row); err != nil {
		return nil, fmt.Errorf("failed to decode row: %w", err)
	}
	return row, nil
}
