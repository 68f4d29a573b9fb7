package jsonreport

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"comparables/internal/config"
	"comparables/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONExport(t *testing.T) {
	row := model.NewReportRow()
	row.Set(model.FieldProduct, "Compresor")
	row.Set(model.FieldDescription, "")
	row.Set(model.FieldBrand, "Atlas & Co")
	row.Set("Comparable 1 en US", json.Number("1500"))

	cfg := &config.Config{Output: config.OutputConfig{Dir: t.TempDir(), CombinedName: "Todos"}}
	reports := []*model.Report{
		{GroupIndex: 0, Rows: []*model.ReportRow{row}},
		{GroupIndex: 3},
	}

	require.NoError(t, NewJSONExporter("sesion-1").Export(reports, cfg))

	content, err := os.ReadFile(cfg.CombinedPath(".json"))
	require.NoError(t, err)

	// key order of the reply is kept and HTML is not escaped
	first := bytes.Index(content, []byte(`"Producto"`))
	last := bytes.Index(content, []byte(`"Comparable 1 en US": 1500`))
	assert.True(t, first >= 0 && last > first, "ordered row keys")
	assert.Contains(t, string(content), "Atlas & Co")

	var doc struct {
		SessionID string `json:"session_id"`
		Groups    []struct {
			Number int              `json:"group"`
			Label  string           `json:"label"`
			Rows   []map[string]any `json:"rows"`
		} `json:"groups"`
	}
	require.NoError(t, json.Unmarshal(content, &doc))

	assert.Equal(t, "sesion-1", doc.SessionID)
	require.Len(t, doc.Groups, 2)
	assert.Equal(t, 1, doc.Groups[0].Number)
	assert.Equal(t, "Grupo 4", doc.Groups[1].Label)
	assert.NotNil(t, doc.Groups[1].Rows)
	assert.Empty(t, doc.Groups[1].Rows)
	assert.Equal(t, "Compresor", doc.Groups[0].Rows[0]["Producto"])
}
