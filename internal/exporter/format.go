package exporter

import (
	"fmt"
	"strings"
)

// maxDescriptionLen caps the exported description column.
const maxDescriptionLen = 1000

// formatScore formats a score with exactly 2 decimal places, so 13.4
// appears as 13.40 in the export.
func formatScore(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// quoteField wraps a textual field in quotes with internal quotes doubled.
// Every textual column is quoted unconditionally — the export encoding is a
// compatibility contract, not a minimal-quoting optimization.
func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// truncate caps s at n characters, not bytes, so a multi-byte rune is never
// split mid-sequence.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
