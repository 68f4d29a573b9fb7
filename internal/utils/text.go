package utils

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeHeader puts a column header in NFC form so that "Descripción"
// typed with a combining accent still matches the required name
func NormalizeHeader(s string) string {
	return norm.NFC.String(s)
}

// IsBlankRow reports whether every cell of a row is empty or whitespace
func IsBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// DecodeText returns data as UTF-8. Valid UTF-8 is kept (minus a BOM);
// anything else is read as Windows-1252, the usual encoding of CSV files
// exported by Spanish-locale Excel.
func DecodeText(data []byte) (string, error) {
	if utf8.Valid(data) {
		return strings.TrimPrefix(string(data), "\uFEFF"), nil
	}

	decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
