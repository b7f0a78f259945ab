package schema

import (
	"fmt"
	"strings"
)

// StructuralError rejects a whole batch before any per-row work: header
// shape mismatch or row count over the configured bound.
type StructuralError struct {
	Detail string
}

func (e *StructuralError) Error() string {
	return e.Detail
}

// FieldError is one per-cell validation failure. Row is 1-based; Row 0
// marks a metadata error with no row locus.
type FieldError struct {
	Row    int
	Column string
	Detail string
}

func (e FieldError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("column '%s' %s", e.Column, e.Detail)
	}
	return fmt.Sprintf("row %d: column '%s' %s", e.Row, e.Column, e.Detail)
}

// ValidationError carries every field error found in a batch. Validation
// never stops at the first failure, so one corrected resubmission is
// always possible.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := e.Messages()
	return fmt.Sprintf("validation failed: %s", strings.Join(msgs, "; "))
}

// Messages returns the accumulated errors as human-readable strings.
func (e *ValidationError) Messages() []string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Error())
	}
	return msgs
}
