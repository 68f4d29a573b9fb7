package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"comparables/internal/loader"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// workspace switches to a temp dir holding an input spreadsheet of n rows
func workspace(t *testing.T, n int) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)

	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Activo", "Descripción", "Marca", "Ubicación"}))
	for i := 1; i <= n; i++ {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &[]any{
			fmt.Sprintf("A%d", i), fmt.Sprintf("D%d", i), fmt.Sprintf("M%d", i), "Planta",
		}))
	}
	path := filepath.Join(dir, "activos.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := execute(strings.NewReader(stdin), &out, append([]string{"--quiet"}, args...))
	return out.String(), err
}

func replyJSON(products ...string) string {
	items := make([]string, 0, len(products))
	for _, p := range products {
		items = append(items, fmt.Sprintf(
			`{"Producto":%q,"Descripción":"d","Marca":"m","Resultados":{"Comparable 1 en US":"100 USD","Fuente comparable 1":"Nacional","Link de comparable 1":"https://example.com/%s"}}`,
			p, p))
	}
	return "[" + strings.Join(items, ",") + "]"
}

func TestSaveWindows1252Reply(t *testing.T) {
	workspace(t, 3)

	// "Grúa" and "Descripción" encoded as Windows-1252
	raw := "[{\"Producto\":\"Gr\xfaa\",\"Descripci\xf3n\":\"d\",\"Marca\":\"m\",\"Resultados\":{}}]"
	require.NoError(t, os.WriteFile("respuesta.json", []byte(raw), 0644))

	_, err := run(t, "", "save", "-g", "1", "-f", "respuesta.json")
	require.NoError(t, err)
	_, err = run(t, raw, "save", "-g", "2")
	require.NoError(t, err)

	for _, g := range []string{"1", "2"} {
		out, err := run(t, "", "show", "-g", g)
		require.NoError(t, err)
		assert.Contains(t, out, `"Producto":"Grúa"`)
		assert.Contains(t, out, `"Descripción":"d"`)
	}
}

func TestPromptsCommand(t *testing.T) {
	input := workspace(t, 7)

	_, err := run(t, "", "prompts", "-i", input, "-n", "3", "--format", "txt,docx")
	require.NoError(t, err)

	for n := 1; n <= 3; n++ {
		_, err := os.Stat(filepath.Join("output", fmt.Sprintf("Grupo %d_Prompt.txt", n)))
		assert.NoError(t, err, "Grupo %d", n)
	}
	_, err = os.Stat(filepath.Join("output", "Grupo 4_Prompt.txt"))
	assert.True(t, os.IsNotExist(err))

	text, err := os.ReadFile(filepath.Join("output", "Grupo 3_Prompt.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(text), "1) A7///D7///M7")

	_, err = os.Stat(filepath.Join("output", "Prompts_Grupos.docx"))
	assert.NoError(t, err)
}

func TestPromptsSingleGroup(t *testing.T) {
	input := workspace(t, 5)

	out, err := run(t, "", "prompts", "-i", input, "-n", "2", "--group", "2", "--print", "--format", "txt")
	require.NoError(t, err)

	assert.Contains(t, out, "### Grupo 2")
	assert.Contains(t, out, "1) A3///D3///M3")
	assert.Contains(t, out, "2) A4///D4///M4")
	assert.NotContains(t, out, "A5///")

	_, err = run(t, "", "prompts", "-i", input, "-n", "2", "--group", "4")
	assert.Error(t, err)
}

func TestInvalidGroupSize(t *testing.T) {
	input := workspace(t, 3)

	_, err := run(t, "", "prompts", "-i", input, "-n", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "grouping.size")
}

func TestMissingColumns(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "malo.csv")
	require.NoError(t, os.WriteFile(path, []byte("Activo,Marca\nA,B\n"), 0644))

	_, err := run(t, "", "prompts", "-i", path)
	var serr *loader.SchemaValidationError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, []string{"Descripción"}, serr.Missing)
}

func TestSaveShowReportReset(t *testing.T) {
	input := workspace(t, 6)

	// group 1 from a file, group 2 from stdin, group 3 is not JSON
	require.NoError(t, os.WriteFile("r1.json", []byte(replyJSON("A1", "A2")), 0644))
	_, err := run(t, "", "save", "-i", input, "-g", "1", "-f", "r1.json")
	require.NoError(t, err)

	_, err = run(t, "```json\n"+replyJSON("A3")+"\n```", "save", "-g", "2")
	require.NoError(t, err)

	_, err = run(t, "{not json", "save", "-g", "3")
	require.NoError(t, err, "a reply that does not parse is still saved")

	_, err = run(t, "   ", "save", "-g", "1")
	require.NoError(t, err)

	_, err = run(t, "x", "save", "-i", input, "-g", "9")
	assert.Error(t, err, "group outside the input")

	out, err := run(t, "", "show", "-g", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "{not json")

	// blank text did not overwrite group 1
	data, err := os.ReadFile(filepath.Join("datos_guardados", "grupo_0.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "A2")

	_, err = run(t, "", "report", "--format", "excel,json")
	require.NoError(t, err)

	for _, name := range []string{"Grupo 1_Resultados.xlsx", "Grupo 2_Resultados.xlsx", "Todos_Grupos_Resultados.xlsx", "Todos_Grupos_Resultados.json"} {
		_, err := os.Stat(filepath.Join("output", name))
		assert.NoError(t, err, name)
	}
	_, err = os.Stat(filepath.Join("output", "Grupo 3_Resultados.xlsx"))
	assert.True(t, os.IsNotExist(err), "failing group is not exported")

	_, err = run(t, "", "report", "-i", input, "-g", "9")
	assert.Error(t, err, "group outside the input")

	_, err = run(t, "", "report", "-i", input, "-g", "1", "--format", "json")
	require.NoError(t, err)

	f, err := excelize.OpenFile(filepath.Join("output", "Todos_Grupos_Resultados.xlsx"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Grupo 1", "Grupo 2"}, f.GetSheetList())
	f.Close()

	out, err = run(t, "", "status", "-i", input)
	require.NoError(t, err)
	assert.Contains(t, out, "Grupo 2")

	_, err = run(t, "", "reset")
	require.NoError(t, err)

	entries, err := os.ReadDir("datos_guardados")
	require.NoError(t, err)
	assert.Empty(t, entries)

	out, err = run(t, "", "show", "-g", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "sin respuesta guardada")
}

func TestReportWithoutReplies(t *testing.T) {
	workspace(t, 2)

	out, err := run(t, "", "report")
	require.NoError(t, err)
	assert.Contains(t, out, "No hay respuestas guardadas")
}

func TestSessionCommand(t *testing.T) {
	input := workspace(t, 4)
	require.NoError(t, os.MkdirAll("datos_guardados", 0755))
	require.NoError(t, os.WriteFile(filepath.Join("datos_guardados", "grupo_0.json"),
		[]byte(fmt.Sprintf("%q", replyJSON("A1"))), 0644))

	script := strings.Join([]string{
		"groups",
		"prompt 2",
		"paste 2",
		`[{"Producto":"A3","Resultados":{"Comparable 1 en US":"1"}},`,
		`{"Producto":"A4","Resultados":{}}]`,
		"END",
		"show 2",
		"paste 9",
		"bogus",
		"export json,excel",
		"quit",
	}, "\n")

	out, err := run(t, script, "session", "-i", input, "-n", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "1) A3///D3///M3")
	assert.Contains(t, out, "comando desconocido")
	assert.Contains(t, out, `{"Producto":"A4","Resultados":{}}]`)

	data, err := os.ReadFile(filepath.Join("output", "Todos_Grupos_Resultados.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Producto": "A1"`)
	assert.Contains(t, string(data), `"Producto": "A4"`)

	f, err := excelize.OpenFile(filepath.Join("output", "Todos_Grupos_Resultados.xlsx"))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Grupo 1", "Grupo 2"}, f.GetSheetList())
}
