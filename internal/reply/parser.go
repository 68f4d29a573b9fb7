// Package reply turns the agent's pasted JSON reply into flat report rows.
//
// A reply is a single object or an array of objects shaped as
//
//	{"Producto": ..., "Descripción": ..., "Marca": ..., "Resultados": {...}}
//
// Every key of "Resultados" becomes a column. Key order is preserved as it
// appears in the reply, and values keep their JSON type.
package reply

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"comparables/internal/model"
)

// ParseError reports a reply that is not valid JSON or not shaped as
// an object or an array of objects
type ParseError struct {
	Item int // zero-based element index, -1 when the whole payload failed
	Err  error
}

func (e *ParseError) Error() string {
	if e.Item >= 0 {
		return fmt.Sprintf("invalid reply item %d: %v", e.Item+1, e.Err)
	}
	return fmt.Sprintf("invalid reply: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse validates the reply text and flattens it into rows, one per item,
// in the order the items appear. An empty array yields zero rows.
// Any element that is not an object fails the whole parse.
func Parse(text string) ([]*model.ReportRow, error) {
	payload := []byte(StripFences(text))

	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()

	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, &ParseError{Item: -1, Err: err}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &ParseError{Item: -1, Err: errors.New("unexpected data after the JSON value")}
	}

	var items []json.RawMessage
	switch leading(raw) {
	case '{':
		items = []json.RawMessage{raw}
	case '[':
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, &ParseError{Item: -1, Err: err}
		}
	default:
		return nil, &ParseError{Item: -1, Err: errors.New("expected a JSON object or an array of objects")}
	}

	rows := make([]*model.ReportRow, 0, len(items))
	for i, item := range items {
		row, err := flatten(item)
		if err != nil {
			return nil, &ParseError{Item: i, Err: err}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ParseReport parses the reply for one group
func ParseReport(groupIndex int, text string) (*model.Report, error) {
	rows, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return &model.Report{GroupIndex: groupIndex, Rows: rows}, nil
}

// StripFences removes a surrounding Markdown code fence (```json ... ```)
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```JSON")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// flatten builds one row: passthrough fields first ("" when absent),
// then every "Resultados" entry. A Resultados key equal to a passthrough
// field overwrites its value.
func flatten(item json.RawMessage) (*model.ReportRow, error) {
	if leading(item) != '{' {
		return nil, fmt.Errorf("expected an object, got %s", describe(item))
	}
	fields, err := decodeObject(item)
	if err != nil {
		return nil, err
	}
	lookup := make(map[string]json.RawMessage, len(fields))
	for _, f := range fields {
		lookup[f.key] = f.value
	}

	row := model.NewReportRow()
	for _, name := range model.PassthroughFields() {
		raw, ok := lookup[name]
		if !ok {
			row.Set(name, "")
			continue
		}
		v, err := scalar(raw)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		row.Set(name, v)
	}

	raw, ok := lookup[model.FieldResults]
	if !ok {
		return row, nil
	}
	if leading(raw) != '{' {
		return nil, fmt.Errorf("%q must be an object, got %s", model.FieldResults, describe(raw))
	}
	results, err := decodeObject(raw)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", model.FieldResults, err)
	}
	for _, f := range results {
		v, err := scalar(f.value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.key, err)
		}
		row.Set(f.key, v)
	}
	return row, nil
}
