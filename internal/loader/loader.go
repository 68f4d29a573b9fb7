// Package loader reads the uploaded spreadsheet into input rows.
//
// Supported inputs are .xlsx/.xlsm workbooks (first sheet unless one is
// named) and .csv files. The first row holds the headers; it must contain
// Activo, Descripción and Marca. Other columns are ignored.
package loader

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"comparables/internal/model"
	"comparables/internal/utils"

	"github.com/xuri/excelize/v2"
)

// Options controls how cells become row fields
type Options struct {
	Sheet        string // workbook sheet, empty = first sheet
	MissingValue string // text used for empty cells
}

// SchemaValidationError reports required columns absent from the input
type SchemaValidationError struct {
	Missing  []string
	Required []string
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("the file must contain the columns %s (missing: %s)",
		strings.Join(e.Required, ", "), strings.Join(e.Missing, ", "))
}

// Load reads the file at path and returns its rows with Combined set
func Load(path string, opts Options) ([]model.Row, error) {
	var (
		records [][]string
		err     error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		records, err = readWorkbook(path, opts.Sheet)
	case ".csv":
		records, err = readCSV(path)
	default:
		return nil, fmt.Errorf("unsupported input format %q (use .xlsx or .csv)", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	return buildRows(records, opts)
}

func readWorkbook(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %s has no sheets", filepath.Base(path))
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	text, err := utils.DecodeText(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = detectDelimiter(text)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return records, nil
}

// detectDelimiter picks ';' when the header line has more semicolons than commas
func detectDelimiter(text string) rune {
	header, _, _ := strings.Cut(text, "\n")
	if strings.Count(header, ";") > strings.Count(header, ",") {
		return ';'
	}
	return ','
}

func buildRows(records [][]string, opts Options) ([]model.Row, error) {
	required := model.RequiredColumns()
	if len(records) == 0 {
		return nil, &SchemaValidationError{Missing: required, Required: required}
	}

	// first occurrence wins for duplicated headers
	positions := make(map[string]int)
	for i, h := range records[0] {
		name := utils.NormalizeHeader(h)
		if _, ok := positions[name]; !ok {
			positions[name] = i
		}
	}

	var missing []string
	for _, col := range required {
		if _, ok := positions[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaValidationError{Missing: missing, Required: required}
	}

	cell := func(record []string, col string) string {
		i := positions[col]
		if i >= len(record) || record[i] == "" {
			return opts.MissingValue
		}
		return record[i]
	}

	rows := make([]model.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		if utils.IsBlankRow(record) {
			continue
		}
		rows = append(rows, model.NewRow(
			cell(record, model.ColumnAsset),
			cell(record, model.ColumnDescription),
			cell(record, model.ColumnBrand),
		))
	}
	return rows, nil
}
