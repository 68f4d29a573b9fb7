package model

import (
	"fmt"
	"strings"
)

// Input column names. Matching is exact and case-sensitive.
const (
	ColumnAsset       = "Activo"
	ColumnDescription = "Descripción"
	ColumnBrand       = "Marca"
)

// CombinedSeparator joins the three identity fields of a row
const CombinedSeparator = "///"

// RequiredColumns lists the input columns every spreadsheet must carry
func RequiredColumns() []string {
	return []string{ColumnAsset, ColumnDescription, ColumnBrand}
}

// Row is one input record
type Row struct {
	Asset       string
	Description string
	Brand       string

	// Combined is Asset///Description///Brand
	Combined string
}

// NewRow builds a Row and derives its Combined field
func NewRow(asset, description, brand string) Row {
	return Row{
		Asset:       asset,
		Description: description,
		Brand:       brand,
		Combined:    Combine(asset, description, brand),
	}
}

// Combine joins the identity fields in fixed order
func Combine(asset, description, brand string) string {
	return asset + CombinedSeparator + description + CombinedSeparator + brand
}

// SplitCombined reverses Combine. It fails when the value does not hold
// exactly three parts, which happens when a field contains the separator.
func SplitCombined(combined string) (asset, description, brand string, err error) {
	parts := strings.Split(combined, CombinedSeparator)
	if len(parts) != 3 {
		return "", "", "", fmt.Errorf("combined value has %d parts, expected 3", len(parts))
	}
	return parts[0], parts[1], parts[2], nil
}

// Group is a contiguous slice of input rows sent to the agent as one unit
type Group struct {
	Index int // zero-based
	Rows  []Row
}

// Label returns the display name of the group ("Grupo 1" for index 0)
func (g Group) Label() string {
	return GroupLabel(g.Index)
}

// GroupLabel returns the display name for a zero-based group index
func GroupLabel(index int) string {
	return fmt.Sprintf("Grupo %d", index+1)
}

// Prompt is the rendered instruction text for one group
type Prompt struct {
	GroupIndex int
	Label      string
	Text       string
}
