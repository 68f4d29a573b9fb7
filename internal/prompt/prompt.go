// Package prompt renders the instruction text sent to the agent for each group.
// Output depends only on the group's rows; the surrounding text is fixed.
package prompt

import (
	"fmt"
	"strings"

	"comparables/internal/model"
)

// ComparableCount is the number of comparables requested per product
const ComparableCount = 3

// ResultKeys returns the "Resultados" keys the reply schema asks for
func ResultKeys() []string {
	keys := make([]string, 0, ComparableCount*3)
	for i := 1; i <= ComparableCount; i++ {
		keys = append(keys, fmt.Sprintf("Comparable %d en US", i))
	}
	for i := 1; i <= ComparableCount; i++ {
		keys = append(keys, fmt.Sprintf("Fuente comparable %d", i))
	}
	for i := 1; i <= ComparableCount; i++ {
		keys = append(keys, fmt.Sprintf("Link de comparable %d", i))
	}
	return keys
}

// EnumerateRows renders "<n>) <Combined>" per row, 1-based, newline separated
func EnumerateRows(rows []model.Row) string {
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = fmt.Sprintf("%d) %s", i+1, row.Combined)
	}
	return strings.Join(lines, "\n")
}

// Render builds the full prompt text for a group
func Render(group model.Group) string {
	var sb strings.Builder
	sb.WriteString(preamble)
	sb.WriteString(EnumerateRows(group.Rows))
	sb.WriteString(instructions)
	return sb.String()
}

// Build renders a prompt for every group
func Build(groups []model.Group) []model.Prompt {
	prompts := make([]model.Prompt, len(groups))
	for i, g := range groups {
		prompts[i] = model.Prompt{
			GroupIndex: g.Index,
			Label:      g.Label(),
			Text:       Render(g),
		}
	}
	return prompts
}
