package prompt

import (
	"strings"
	"testing"

	"comparables/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleGroup(index int) model.Group {
	return model.Group{
		Index: index,
		Rows: []model.Row{
			model.NewRow("Compresor", "Tornillo 50 HP", "Atlas Copco"),
			model.NewRow("Montacargas", "Diesel 3 ton", "nan"),
		},
	}
}

func TestRenderEmbedsEnumeratedRows(t *testing.T) {
	text := Render(sampleGroup(0))

	assert.Contains(t, text, "1) Compresor///Tornillo 50 HP///Atlas Copco\n2) Montacargas///Diesel 3 ton///nan")
	assert.True(t, strings.HasPrefix(text, preamble))
	assert.True(t, strings.HasSuffix(text, instructions))
}

func TestRenderDescribesReplySchema(t *testing.T) {
	text := Render(sampleGroup(0))

	for _, key := range append(model.PassthroughFields(), model.FieldResults) {
		assert.Contains(t, text, `"`+key+`"`)
	}
	for _, key := range ResultKeys() {
		assert.Contains(t, text, `"`+key+`"`)
	}
	assert.Contains(t, text, "exactamente 3 productos similares")
	assert.Contains(t, text, "NACIONAL o INTERNACIONAL")
	assert.Contains(t, text, "Entrega solo el formato JSON")
}

func TestRenderIsPureAndSharesTemplate(t *testing.T) {
	a := Render(sampleGroup(0))
	b := Render(sampleGroup(0))
	assert.Equal(t, a, b)

	// group index does not change the text, only the rows do
	assert.Equal(t, a, Render(sampleGroup(5)))

	other := model.Group{Rows: []model.Row{model.NewRow("X", "Y", "Z")}}
	c := Render(other)
	assert.NotEqual(t, a, c)
	assert.True(t, strings.HasPrefix(c, preamble))
}

func TestEnumerateRowsEmpty(t *testing.T) {
	assert.Equal(t, "", EnumerateRows(nil))
}

func TestResultKeys(t *testing.T) {
	keys := ResultKeys()
	require.Len(t, keys, 9)
	assert.Equal(t, "Comparable 1 en US", keys[0])
	assert.Equal(t, "Fuente comparable 3", keys[5])
	assert.Equal(t, "Link de comparable 3", keys[8])
}

func TestBuild(t *testing.T) {
	prompts := Build([]model.Group{sampleGroup(0), sampleGroup(1)})
	require.Len(t, prompts, 2)
	assert.Equal(t, "Grupo 2", prompts[1].Label)
	assert.Equal(t, 1, prompts[1].GroupIndex)
	assert.Equal(t, Render(sampleGroup(1)), prompts[1].Text)
}
