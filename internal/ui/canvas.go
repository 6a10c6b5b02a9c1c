package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orbitals/internal/export"
	"github.com/litescript/ls-orbitals/internal/field"
)

const halfBlock = "▀"

// renderField draws f with two field rows per terminal line: the upper
// half-block takes the upper row's color as foreground, the lower row shows
// through as background. Row j = 0 is at the bottom. f.H is expected to be
// even; an odd top row is dropped.
func renderField(f field.Field) string {
	lines := f.H / 2
	var b strings.Builder
	for line := 0; line < lines; line++ {
		upper := f.H - 1 - 2*line
		lower := upper - 1
		for i := 0; i < f.W; i++ {
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(export.Hex(f.At(i, upper)))).
				Background(lipgloss.Color(export.Hex(f.At(i, lower))))
			b.WriteString(style.Render(halfBlock))
		}
		if line < lines-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
