package exporter

import (
	"strings"

	"comparables/internal/exporter/html"
	"comparables/internal/exporter/jsonreport"
	"comparables/internal/exporter/word"
)

// GetExporters returns the report Exporters for the requested formats.
// Unknown formats are skipped; the caller handles defaults.
func GetExporters(formats []string, sessionID string) []Exporter {
	exporters := []Exporter{}
	seen := make(map[string]bool)

	for _, fmtStr := range formats {
		fmtStr = normalizeFormat(fmtStr)
		if seen[fmtStr] {
			continue
		}
		seen[fmtStr] = true

		switch fmtStr {
		case "excel":
			exporters = append(exporters, NewExcelExporter())
		case "html":
			exporters = append(exporters, html.NewHTMLExporter(sessionID))
		case "json":
			exporters = append(exporters, jsonreport.NewJSONExporter(sessionID))
		}
	}

	return exporters
}

// GetPromptExporters returns the PromptExporters for the requested formats
func GetPromptExporters(formats []string) []PromptExporter {
	exporters := []PromptExporter{}
	seen := make(map[string]bool)

	for _, fmtStr := range formats {
		fmtStr = normalizeFormat(fmtStr)
		if seen[fmtStr] {
			continue
		}
		seen[fmtStr] = true

		switch fmtStr {
		case "txt":
			exporters = append(exporters, NewTextExporter())
		case "word":
			exporters = append(exporters, word.NewWordExporter())
		}
	}

	return exporters
}

// normalizeFormat folds aliases so "xlsx" and "excel" count once
func normalizeFormat(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "xlsx":
		return "excel"
	case "docx":
		return "word"
	case "text":
		return "txt"
	}
	return s
}
