package sheetssql

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalRow(t *testing.T) {
	data, err := MarshalRow([]interface{}{"Guest", "E1", true, "1768838400000"})
	require.NoError(t, err)
	assert.JSONEq(t, `["Guest","E1",true,"1768838400000"]`, string(data))

	empty, err := MarshalRow(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(empty))
}

func TestUnmarshalRow_KeepsNumbers(t *testing.T) {
	row, err := UnmarshalRow([]byte(`["s1", 1768838400000, false]`))
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"s1", json.Number("1768838400000"), false}, row)
	assert.Equal(t, "1768838400000", cellString(row[1]))

	_, err = UnmarshalRow([]byte(`{"not":"a row"}`))
	assert.Error(t, err)
}
