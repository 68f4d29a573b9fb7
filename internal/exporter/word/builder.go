package word

import (
	"fmt"
	"os"
	"strings"
	"time"

	"comparables/internal/config"
	"comparables/internal/model"

	"github.com/nguyenthenguyen/docx"
)

// Title heads the prompts document
const Title = "Prompts por grupo"

// WordExporter writes every group prompt into one Word document
type WordExporter struct{}

func NewWordExporter() *WordExporter {
	return &WordExporter{}
}

func (e *WordExporter) ExportPrompts(prompts []model.Prompt, cfg *config.Config) error {
	// 1. Write the template to a temp file
	templateBytes, err := buildTemplate()
	if err != nil {
		return fmt.Errorf("failed to build template: %w", err)
	}

	tmpFile, err := os.CreateTemp("", "comparables-template-*.docx")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(templateBytes); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write template to temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// 2. Open docx from temp path
	r, err := docx.ReadDocxFile(tmpFile.Name())
	if err != nil {
		return fmt.Errorf("failed to read docx from temp file: %w", err)
	}
	defer r.Close()

	doc := r.Editable()

	if err := doc.Replace(placeholderTitle, Title, -1); err != nil {
		return err
	}
	if err := doc.Replace(placeholderDate, time.Now().Format("2006-01-02 15:04"), -1); err != nil {
		return err
	}

	// 3. CRLF becomes a line break in the document
	content := strings.ReplaceAll(BuildContent(prompts), "\n", "\r\n")
	if err := doc.Replace(placeholderContent, content, -1); err != nil {
		return err
	}

	if err := doc.WriteToFile(cfg.PromptsDocPath()); err != nil {
		return fmt.Errorf("failed to write Word document: %w", err)
	}

	return nil
}

// BuildContent joins the prompts under their group labels
func BuildContent(prompts []model.Prompt) string {
	var sb strings.Builder
	for i, p := range prompts {
		if i > 0 {
			sb.WriteString("\n" + strings.Repeat("-", 80) + "\n\n")
		}
		sb.WriteString(strings.ToUpper(p.Label))
		sb.WriteString("\n\n")
		sb.WriteString(strings.TrimRight(p.Text, "\n"))
		sb.WriteString("\n")
	}
	return sb.String()
}
