package ui

import (
	"fmt"
	"strings"

	"comparables/internal/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// MaxCellWidth truncates long values (links, descriptions) in previews
const MaxCellWidth = 40

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2A2A2A")).Background(lipgloss.Color("#F6E51C")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#D4C514"))
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F6E51C"))
)

// RenderReport draws a report as a terminal table headed by its group label
func RenderReport(report *model.Report) string {
	columns := report.Columns()

	rows := make([][]string, 0, len(report.Rows))
	for _, r := range report.Rows {
		cells := make([]string, len(columns))
		for i, col := range columns {
			v, _ := r.Get(col)
			cells[i] = truncate(model.FormatValue(v), MaxCellWidth)
		}
		rows = append(rows, cells)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(columns...).
		Rows(rows...)

	title := titleStyle.Render(fmt.Sprintf("%s (%d fila(s))", report.Label(), len(report.Rows)))
	return title + "\n" + t.Render()
}

// RenderCombinedPreview lists the first n combined values, 1-based
func RenderCombinedPreview(rows []model.Row, n int) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Vista previa de datos combinados"))
	sb.WriteString("\n")
	for i, row := range rows {
		if i >= n {
			break
		}
		sb.WriteString(fmt.Sprintf("%3d  %s\n", i+1, row.Combined))
	}
	return sb.String()
}

func truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

// GroupStatus is one line of the status table
type GroupStatus struct {
	Label  string
	Rows   int
	Stored bool
}

// RenderStatus lists the groups and whether each has a stored reply
func RenderStatus(groups []GroupStatus) string {
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		stored := "no"
		if g.Stored {
			stored = "sí"
		}
		rows = append(rows, []string{g.Label, fmt.Sprintf("%d", g.Rows), stored})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("Grupo", "Filas", "Respuesta").
		Rows(rows...)

	return t.Render()
}
