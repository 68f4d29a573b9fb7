package exporter

import (
	"fmt"
	"os"

	"comparables/internal/config"
	"comparables/internal/model"
)

// TextExporter writes each prompt to "Grupo N_Prompt.txt"
type TextExporter struct{}

func NewTextExporter() *TextExporter {
	return &TextExporter{}
}

func (e *TextExporter) ExportPrompts(prompts []model.Prompt, cfg *config.Config) error {
	for _, p := range prompts {
		if err := os.WriteFile(cfg.PromptPath(p.Label), []byte(p.Text), 0644); err != nil {
			return fmt.Errorf("failed to write prompt for %s: %w", p.Label, err)
		}
	}
	return nil
}
