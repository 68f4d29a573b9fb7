package exporter

import (
	"os"
	"strings"
	"testing"

	"comparables/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetExporters(t *testing.T) {
	got := GetExporters([]string{"xlsx", "Excel", " html ", "json", "pdf"}, "s")
	require.Len(t, got, 3)
	assert.IsType(t, &ExcelExporter{}, got[0])

	assert.Empty(t, GetExporters(nil, "s"))
}

func TestGetPromptExporters(t *testing.T) {
	got := GetPromptExporters([]string{"txt", "docx", "word", "text"})
	require.Len(t, got, 2)
	assert.IsType(t, &TextExporter{}, got[0])
}

func TestTextExporter(t *testing.T) {
	cfg := testConfig(t)
	prompts := []model.Prompt{
		{GroupIndex: 0, Label: "Grupo 1", Text: "uno"},
		{GroupIndex: 1, Label: "Grupo 2", Text: "dos\nlíneas"},
	}

	require.NoError(t, NewTextExporter().ExportPrompts(prompts, cfg))

	data, err := os.ReadFile(cfg.PromptPath("Grupo 2"))
	require.NoError(t, err)
	assert.Equal(t, "dos\nlíneas", string(data))
}

func TestHTMLExport(t *testing.T) {
	cfg := testConfig(t)
	exporters := GetExporters([]string{"html"}, "sesion-xyz")
	require.Len(t, exporters, 1)
	require.NoError(t, exporters[0].Export(sampleReports(), cfg))

	data, err := os.ReadFile(cfg.CombinedPath(".html"))
	require.NoError(t, err)
	page := string(data)

	assert.Contains(t, page, "sesion-xyz")
	assert.Contains(t, page, "<h2>Grupo 3</h2>")
	assert.Contains(t, page, `<a href="https://example.com/compresor"`)
	assert.Equal(t, 2, strings.Count(page, "<table>"))
}
