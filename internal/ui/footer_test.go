package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestKeyPill(t *testing.T) {
	got := stripANSI(keyPill("u", "Update"))
	if got != " u  Update" {
		t.Errorf("keyPill() = %q", got)
	}
}

func TestFooterLineDropsHintsToFit(t *testing.T) {
	hints := []footerHint{
		{key: "u", desc: "Update"},
		{key: "n", desc: "Don't show again"},
		{key: "esc", desc: "Dismiss"},
	}

	wide := stripANSI(footerLine(hints, 80))
	for _, h := range hints {
		if !strings.Contains(wide, h.desc) {
			t.Errorf("wide footer missing %q: %q", h.desc, wide)
		}
	}
	if lipgloss.Width(wide) != 80 {
		t.Errorf("footer width = %d, want 80", lipgloss.Width(wide))
	}

	narrow := stripANSI(footerLine(hints, 30))
	if !strings.Contains(narrow, "Update") || strings.Contains(narrow, "Dismiss") {
		t.Errorf("narrow footer should keep leading hints only: %q", narrow)
	}

	if got := footerLine(nil, 40); got != "" {
		t.Errorf("empty hints rendered %q", got)
	}
}

func TestTruncateLine(t *testing.T) {
	if got := truncateLine("abcdefgh", 5); got != "abcd…" {
		t.Errorf("truncateLine() = %q", got)
	}
	if got := truncateLine("abc", 0); got != "" {
		t.Errorf("truncateLine(width 0) = %q", got)
	}
	styled := lipgloss.NewStyle().Bold(true).Render("abcdefgh")
	if got := stripANSI(truncateLine(styled, 4)); got != "abc…" {
		t.Errorf("styled truncate = %q", got)
	}
}

func TestSplitLines(t *testing.T) {
	if got := splitLines(""); got != nil {
		t.Errorf("splitLines(\"\") = %v", got)
	}
	if got := splitLines("a\r\nb\nc"); len(got) != 3 || got[1] != "b" {
		t.Errorf("splitLines() = %q", got)
	}
}
