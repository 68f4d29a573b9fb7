// Package common holds the cell conversions shared by every report format.
package common

import (
	"encoding/json"
	"strings"

	"comparables/internal/model"
)

// Cell is one report value prepared for a renderer
type Cell struct {
	Text string
	Link bool // Text is an http(s) URL
}

// IsLink reports whether v is a string holding an http(s) URL
func IsLink(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, " \n\t") {
		return false
	}
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// NativeValue converts a reply value into the Go type a spreadsheet cell
// should hold: integers and floats for JSON numbers, compact JSON text
// for nested values, nil for null.
func NativeValue(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case json.RawMessage:
		return string(val)
	default:
		return val
	}
}

// Cells lays a report out as rows of cells following report.Columns().
// Keys a row lacks become empty cells.
func Cells(report *model.Report) (columns []string, rows [][]Cell) {
	columns = report.Columns()
	rows = make([][]Cell, 0, len(report.Rows))
	for _, r := range report.Rows {
		cells := make([]Cell, len(columns))
		for i, col := range columns {
			v, _ := r.Get(col)
			cells[i] = Cell{Text: model.FormatValue(v), Link: IsLink(v)}
		}
		rows = append(rows, cells)
	}
	return columns, rows
}
