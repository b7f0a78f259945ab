package dto

import (
	"bytes"
	"encoding/json"
	"errors"
)

// RecordList accepts the three payload shapes clients historically send:
// a bare array of objects, an object wrapping {"records": [...]}, or a
// single object. The variant is detected at the transport boundary and
// each one is normalized by its own function.
type RecordList []map[string]any

type recordsEnvelope struct {
	Records json.RawMessage `json:"records"`
}

func (r *RecordList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return errors.New("payload must be a JSON object or array of objects")
	}

	switch trimmed[0] {
	case '[':
		return r.fromArray(data)
	case '{':
		var env recordsEnvelope
		if err := json.Unmarshal(data, &env); err == nil && env.Records != nil {
			return r.fromEnvelope(env.Records)
		}
		return r.fromSingle(data)
	default:
		return errors.New("payload must be a JSON object or array of objects")
	}
}

func (r *RecordList) fromArray(data []byte) error {
	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		return errors.New("array payload must contain only JSON objects")
	}
	*r = records
	return nil
}

func (r *RecordList) fromEnvelope(raw json.RawMessage) error {
	var records []map[string]any
	if err := json.Unmarshal(raw, &records); err != nil {
		return errors.New("'records' must be a list of objects")
	}
	*r = records
	return nil
}

func (r *RecordList) fromSingle(data []byte) error {
	var record map[string]any
	if err := json.Unmarshal(data, &record); err != nil {
		return errors.New("payload must be a JSON object or array of objects")
	}
	*r = RecordList{record}
	return nil
}
