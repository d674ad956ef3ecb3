package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// footerHint represents a single key hint in a footer line.
type footerHint struct {
	key  string // Short symbol: "u", "esc", etc.
	desc string
}

func keyPill(key, desc string) string {
	return styleKeyPill.Render(" "+key+" ") + " " + styleKeyDesc.Render(desc)
}

// footerLine renders hints as pills centered in width. Hints are dropped from
// the end until the line fits.
func footerLine(hints []footerHint, width int) string {
	for len(hints) > 0 {
		line := joinHints(hints)
		if lipgloss.Width(line) <= width || len(hints) == 1 {
			return lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
		}
		hints = hints[:len(hints)-1]
	}
	return ""
}

func joinHints(hints []footerHint) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, keyPill(h.key, h.desc))
	}
	return strings.Join(parts, "  ")
}
