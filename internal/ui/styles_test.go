package ui

import (
	"strings"
	"testing"

	"appupdater/internal/ui/theme"
)

func TestSetTheme(t *testing.T) {
	defer func() { _ = SetTheme(theme.DefaultName) }()

	if err := SetTheme(" Nord "); err != nil {
		t.Fatalf("SetTheme(nord) error: %v", err)
	}
	nord, _ := theme.Lookup("nord")
	if got := styleDialog.GetBorderTopForeground(); got != nord.Primary {
		t.Errorf("dialog border = %v, want nord primary %v", got, nord.Primary)
	}

	err := SetTheme("neon")
	if err == nil || !strings.Contains(err.Error(), "dracula") {
		t.Fatalf("SetTheme(neon) error = %v, want list of themes", err)
	}
	if theme.CurrentName() != "nord" {
		t.Errorf("failed SetTheme changed palette to %q", theme.CurrentName())
	}

	if err := SetTheme(""); err != nil {
		t.Fatalf("SetTheme(\"\") error: %v", err)
	}
	if theme.CurrentName() != theme.DefaultName {
		t.Errorf("empty name should select %q, got %q", theme.DefaultName, theme.CurrentName())
	}
}

func TestBuildMarkdownRendererPlainWraps(t *testing.T) {
	render := buildMarkdownRenderer("plain", 10)
	out := render("one two three four")
	for _, line := range strings.Split(out, "\n") {
		if len(line) > 10 {
			t.Errorf("line %q wider than 10", line)
		}
	}
}
