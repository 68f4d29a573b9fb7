package html

import (
	"html/template"
	"os"
	"time"

	"comparables/internal/config"
	"comparables/internal/exporter/common"
	"comparables/internal/model"
)

// HTMLExporter writes the combined results as a single HTML page
type HTMLExporter struct {
	SessionID string
}

func NewHTMLExporter(sessionID string) *HTMLExporter {
	return &HTMLExporter{SessionID: sessionID}
}

// ReportData feeds ReportTemplate
type ReportData struct {
	Title       string
	GeneratedAt string
	SessionID   string
	TotalRows   int
	Groups      []GroupData
}

type GroupData struct {
	Label   string
	Columns []string
	Rows    [][]common.Cell
}

func (e *HTMLExporter) Export(reports []*model.Report, cfg *config.Config) error {
	data := BuildData(reports, e.SessionID)
	data.Title = cfg.Output.CombinedName

	f, err := os.Create(cfg.CombinedPath(".html"))
	if err != nil {
		return err
	}
	defer f.Close()

	tmpl, err := template.New("report").Parse(ReportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(f, data)
}

// BuildData lays the reports out for the template
func BuildData(reports []*model.Report, sessionID string) ReportData {
	data := ReportData{
		GeneratedAt: time.Now().Format("2006-01-02 15:04:05"),
		SessionID:   sessionID,
	}
	for _, r := range reports {
		columns, rows := common.Cells(r)
		data.Groups = append(data.Groups, GroupData{
			Label:   r.Label(),
			Columns: columns,
			Rows:    rows,
		})
		data.TotalRows += len(rows)
	}
	return data
}
