package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeHeader(t *testing.T) {
	decomposed := "Descripcio\u0301n"
	assert.NotEqual(t, "Descripción", decomposed)
	assert.Equal(t, "Descripción", NormalizeHeader(decomposed))
	assert.Equal(t, "Marca", NormalizeHeader("Marca"))
}

func TestIsBlankRow(t *testing.T) {
	tests := []struct {
		cells    []string
		expected bool
	}{
		{nil, true},
		{[]string{"", " ", "\t"}, true},
		{[]string{"", "x"}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, IsBlankRow(tt.cells), "%q", tt.cells)
	}
}

func TestDecodeText(t *testing.T) {
	got, err := DecodeText([]byte("\xEF\xBB\xBFActivo;Descripción"))
	require.NoError(t, err)
	assert.Equal(t, "Activo;Descripción", got)

	// "Descripción" in Windows-1252
	got, err = DecodeText([]byte("Descripci\xF3n"))
	require.NoError(t, err)
	assert.Equal(t, "Descripción", got)
}
