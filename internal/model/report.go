package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Passthrough fields copied from each reply item
const (
	FieldProduct     = "Producto"
	FieldDescription = "Descripción"
	FieldBrand       = "Marca"

	// FieldResults holds the nested mapping merged flat into the row
	FieldResults = "Resultados"
)

// PassthroughFields returns the fields every ReportRow carries, in column order
func PassthroughFields() []string {
	return []string{FieldProduct, FieldDescription, FieldBrand}
}

// ReportRow is a flat, insertion-ordered mapping produced from one reply item.
// Values keep the type they had in the reply: string, json.Number, bool,
// nil, or json.RawMessage for nested arrays/objects.
type ReportRow struct {
	keys   []string
	values map[string]any
}

// NewReportRow creates an empty row
func NewReportRow() *ReportRow {
	return &ReportRow{values: make(map[string]any)}
}

// Set stores a value. An existing key keeps its position and takes the new value.
func (r *ReportRow) Set(key string, value any) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the value for key and whether it is present
func (r *ReportRow) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the keys in insertion order
func (r *ReportRow) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of fields
func (r *ReportRow) Len() int {
	return len(r.keys)
}

// MarshalJSON writes the row as an object with keys in insertion order
func (r *ReportRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSON(&buf, k); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSON(&buf, r.values[k]); err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// writeJSON encodes v without HTML escaping and without the trailing newline
func writeJSON(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1)
	return nil
}

// Report is the ordered set of parsed rows for one group
type Report struct {
	GroupIndex int
	Rows       []*ReportRow
}

// Label returns the display name of the report's group
func (r *Report) Label() string {
	return GroupLabel(r.GroupIndex)
}

// Columns returns the passthrough fields followed by every other key
// in first-seen order across the rows
func (r *Report) Columns() []string {
	cols := PassthroughFields()
	seen := make(map[string]bool, len(cols))
	for _, c := range cols {
		seen[c] = true
	}
	for _, row := range r.Rows {
		for _, k := range row.keys {
			if !seen[k] {
				seen[k] = true
				cols = append(cols, k)
			}
		}
	}
	return cols
}

// FormatValue renders a cell value as display text
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case json.RawMessage:
		return string(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		return fmt.Sprintf("%v", val)
	}
}
