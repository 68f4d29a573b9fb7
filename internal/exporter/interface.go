package exporter

import (
	"comparables/internal/config"
	"comparables/internal/model"
)

// Exporter is the unified interface for all report formats
type Exporter interface {
	Export(reports []*model.Report, cfg *config.Config) error
}

// PromptExporter writes the rendered group prompts
type PromptExporter interface {
	ExportPrompts(prompts []model.Prompt, cfg *config.Config) error
}
