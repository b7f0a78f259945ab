package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordList_BareArray(t *testing.T) {
	var records RecordList
	err := json.Unmarshal([]byte(`[{"Invoice": 1}, {"Invoice": 2}]`), &records)
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, float64(1), records[0]["Invoice"])
}

func TestRecordList_Envelope(t *testing.T) {
	var records RecordList
	err := json.Unmarshal([]byte(`{"records": [{"Invoice": 1}]}`), &records)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, float64(1), records[0]["Invoice"])
}

func TestRecordList_SingleObject(t *testing.T) {
	var records RecordList
	err := json.Unmarshal([]byte(`{"Invoice": 7, "Status": "Paid"}`), &records)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "Paid", records[0]["Status"])
}

func TestRecordList_InvalidShapes(t *testing.T) {
	cases := []string{
		`"a string"`,
		`42`,
		`[1, 2, 3]`,
		`{"records": {"not": "a list"}}`,
		``,
	}
	for _, payload := range cases {
		var records RecordList
		err := records.UnmarshalJSON([]byte(payload))
		assert.Error(t, err, "payload %q", payload)
	}
}
