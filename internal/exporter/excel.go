package exporter

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"comparables/internal/config"
	"comparables/internal/exporter/common"
	"comparables/internal/model"

	"github.com/xuri/excelize/v2"
)

const (
	minColWidth = 12
	maxColWidth = 60
)

// ExcelExporter writes one workbook per group plus the combined workbook
type ExcelExporter struct {
	// Stateless
}

// NewExcelExporter creates a new ExcelExporter
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// Export writes "Grupo N_Resultados.xlsx" for every report and, when there
// is at least one report, the combined workbook with one sheet per group.
func (e *ExcelExporter) Export(reports []*model.Report, cfg *config.Config) error {
	for _, r := range reports {
		if err := e.ExportGroup(r, cfg.GroupReportPath(r.Label())); err != nil {
			return fmt.Errorf("%s: %w", r.Label(), err)
		}
	}

	if len(reports) == 0 {
		return nil
	}
	return e.ExportCombined(reports, cfg.CombinedPath(".xlsx"))
}

// ExportGroup writes a single report to its own workbook
func (e *ExcelExporter) ExportGroup(report *model.Report, path string) error {
	return e.write(path, []*model.Report{report})
}

// ExportCombined writes every report to one workbook, one sheet each,
// named after the group label
func (e *ExcelExporter) ExportCombined(reports []*model.Report, path string) error {
	if len(reports) == 0 {
		return fmt.Errorf("no reports to combine")
	}
	return e.write(path, reports)
}

func (e *ExcelExporter) write(path string, reports []*model.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	styler, err := NewStyler(f)
	if err != nil {
		return err
	}

	for _, r := range reports {
		if err := e.writeSheet(f, styler, r.Label(), r); err != nil {
			return err
		}
	}

	// Remove default "Sheet1"
	if idx, err := f.GetSheetIndex("Sheet1"); err == nil && idx != -1 {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return err
		}
	}
	if idx, err := f.GetSheetIndex(reports[0].Label()); err == nil && idx != -1 {
		f.SetActiveSheet(idx)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

func (e *ExcelExporter) writeSheet(f *excelize.File, s *Styler, sheet string, report *model.Report) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	columns := report.Columns()
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = utf8.RuneCountInString(col)
	}

	if err := e.writeRow(f, sheet, 1, columns, s.HeaderStyle); err != nil {
		return err
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	for r, row := range report.Rows {
		for c, col := range columns {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}

			v, _ := row.Get(col)
			style := s.DefaultStyle
			if native := common.NativeValue(v); native != nil {
				if err := f.SetCellValue(sheet, cell, native); err != nil {
					return err
				}
			}
			if common.IsLink(v) {
				link := strings.TrimSpace(v.(string))
				if err := f.SetCellHyperLink(sheet, cell, link, "External"); err != nil {
					return err
				}
				style = s.LinkStyle
			}
			if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
				return err
			}

			if w := utf8.RuneCountInString(model.FormatValue(v)); w > widths[c] {
				widths[c] = w
			}
		}
	}

	for i, w := range widths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, float64(clamp(w+2, minColWidth, maxColWidth))); err != nil {
			return err
		}
	}

	return nil
}

func (e *ExcelExporter) writeRow(f *excelize.File, sheet string, row int, values []string, style int) error {
	for i, val := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, val); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
