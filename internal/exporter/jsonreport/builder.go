// Package jsonreport writes the combined results as a JSON document.
package jsonreport

import (
	"encoding/json"
	"os"
	"time"

	"comparables/internal/config"
	"comparables/internal/model"
)

// Document is the root of the JSON report
type Document struct {
	SessionID   string  `json:"session_id"`
	GeneratedAt string  `json:"generated_at"`
	Groups      []Group `json:"groups"`
}

// Group holds one group's parsed rows. Rows keep the key order of the reply.
type Group struct {
	Number  int                `json:"group"`
	Label   string             `json:"label"`
	Columns []string           `json:"columns"`
	Rows    []*model.ReportRow `json:"rows"`
}

// JSONExporter writes <combined_name>.json
type JSONExporter struct {
	SessionID string
}

func NewJSONExporter(sessionID string) *JSONExporter {
	return &JSONExporter{SessionID: sessionID}
}

func (b *JSONExporter) Export(reports []*model.Report, cfg *config.Config) error {
	doc := Build(reports, b.SessionID)

	f, err := os.Create(cfg.CombinedPath(".json"))
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Build assembles the document for the given reports
func Build(reports []*model.Report, sessionID string) Document {
	doc := Document{
		SessionID:   sessionID,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Groups:      make([]Group, 0, len(reports)),
	}
	for _, r := range reports {
		rows := r.Rows
		if rows == nil {
			rows = []*model.ReportRow{}
		}
		doc.Groups = append(doc.Groups, Group{
			Number:  r.GroupIndex + 1,
			Label:   r.Label(),
			Columns: r.Columns(),
			Rows:    rows,
		})
	}
	return doc
}
