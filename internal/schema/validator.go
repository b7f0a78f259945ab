package schema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"crm-insight/internal/dto"
	"crm-insight/internal/models"
)

const defaultFilename = "untitled-upload"

// dateLayouts are tried in priority order; the first that parses wins
// and the value is normalized to a calendar date.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
}

type Validator struct {
	columns     []ColumnSpec
	maxRows     int
	maxFieldLen int
}

func NewValidator(columns []ColumnSpec, maxRows, maxFieldLen int) *Validator {
	if maxFieldLen <= 0 {
		maxFieldLen = 255
	}
	return &Validator{
		columns:     columns,
		maxRows:     maxRows,
		maxFieldLen: maxFieldLen,
	}
}

func (v *Validator) Columns() []ColumnSpec {
	return v.columns
}

// ValidateBatch validates and sanitizes a raw batch. The header list must
// equal the declared column keys exactly and in order, and the row count
// must be within bounds, before any per-row work begins. Per-row errors
// are accumulated across the whole batch and returned together; a batch
// with any error is rejected in full.
func (v *Validator) ValidateBatch(headers []string, rows []map[string]any) ([]map[string]any, error) {
	if err := v.checkHeaders(headers); err != nil {
		return nil, err
	}
	if v.maxRows > 0 && len(rows) > v.maxRows {
		return nil, &StructuralError{
			Detail: fmt.Sprintf("batch has %d rows, exceeding the maximum of %d", len(rows), v.maxRows),
		}
	}

	sanitized := make([]map[string]any, 0, len(rows))
	var fieldErrs []FieldError

	for i, row := range rows {
		clean := make(map[string]any, len(v.columns))
		for _, col := range v.columns {
			value, err := v.sanitizeCell(row[col.Key], col)
			if err != nil {
				fieldErrs = append(fieldErrs, FieldError{Row: i + 1, Column: col.Key, Detail: err.Error()})
				continue
			}
			clean[col.Key] = value
		}
		sanitized = append(sanitized, clean)
	}

	if len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}
	return sanitized, nil
}

func (v *Validator) checkHeaders(headers []string) error {
	match := len(headers) == len(v.columns)
	if match {
		for i, col := range v.columns {
			if headers[i] != col.Key {
				match = false
				break
			}
		}
	}
	if match {
		return nil
	}

	expected := make([]string, len(v.columns))
	for i, col := range v.columns {
		expected[i] = col.Key
	}
	return &StructuralError{
		Detail: "invalid headers, expected exact columns: " + strings.Join(expected, ", "),
	}
}

func (v *Validator) sanitizeCell(value any, col ColumnSpec) (any, error) {
	if isBlank(value) {
		if col.Required {
			return nil, errors.New("is required")
		}
		return "", nil
	}

	raw := strings.TrimSpace(renderValue(value))
	switch col.Type {
	case TypeInt:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("must be an integer, got %q", raw)
		}
		return n, nil
	case TypeFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("must be a number, got %q", raw)
		}
		return f, nil
	case TypeDate:
		normalized, ok := parseDate(raw)
		if !ok {
			return nil, fmt.Errorf("must be a valid date, got %q", raw)
		}
		return normalized, nil
	default:
		return v.sanitizeString(raw), nil
	}
}

func (v *Validator) sanitizeString(s string) string {
	replacer := strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")
	s = replacer.Replace(s)
	if runes := []rune(s); len(runes) > v.maxFieldLen {
		s = string(runes[:v.maxFieldLen])
	}
	return s
}

func parseDate(s string) (string, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

// SanitizeMeta cleans caller-supplied metadata. The server-received
// timestamp and row count are always derived server-side.
func SanitizeMeta(meta dto.UploadMeta, rowCount int, now time.Time) (models.BatchMeta, error) {
	filename := strings.TrimSpace(meta.OriginalFilename)
	if filename == "" {
		filename = defaultFilename
	}

	uploadTime := strings.TrimSpace(meta.UploadTime)
	if uploadTime != "" {
		if _, ok := parseTimestamp(uploadTime); !ok {
			return models.BatchMeta{}, &ValidationError{Fields: []FieldError{
				{Column: "meta.uploadTime", Detail: fmt.Sprintf("must be an ISO-8601 timestamp, got %q", uploadTime)},
			}}
		}
	}

	warnings := make([]string, 0, len(meta.Warnings))
	for _, w := range meta.Warnings {
		if trimmed := strings.TrimSpace(w); trimmed != "" {
			warnings = append(warnings, trimmed)
		}
	}

	return models.BatchMeta{
		OriginalFilename: filename,
		UploadTime:       uploadTime,
		Warnings:         warnings,
		ServerReceivedAt: now.UTC(),
		RowCount:         rowCount,
	}, nil
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func isBlank(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

func renderValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	default:
		return fmt.Sprint(val)
	}
}
