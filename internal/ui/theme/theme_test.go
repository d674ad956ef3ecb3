package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestBuiltinPalettesRegistered(t *testing.T) {
	want := map[string]bool{DefaultName: true, "dracula": true, "nord": true, "gruvbox": true, "solarized": true}
	names := Names()
	for _, name := range names {
		delete(want, name)
	}
	if len(want) > 0 {
		t.Errorf("missing palettes %v in %v", want, names)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("Names() not sorted: %v", names)
		}
	}
}

func TestBuiltinPalettesComplete(t *testing.T) {
	for _, name := range Names() {
		p, _ := Lookup(name)
		colors := map[string]lipgloss.AdaptiveColor{
			"Primary": p.Primary, "Secondary": p.Secondary, "Accent": p.Accent,
			"Error": p.Error, "Warning": p.Warning, "Success": p.Success,
			"Text": p.Text, "Muted": p.Muted, "Border": p.Border,
		}
		for field, col := range colors {
			if col.Light == "" || col.Dark == "" {
				t.Errorf("%s.%s is incomplete: %+v", name, field, col)
			}
		}
	}
}

func TestSet(t *testing.T) {
	defer Set(DefaultName)

	if CurrentName() != DefaultName {
		t.Fatalf("CurrentName() = %q, want %q", CurrentName(), DefaultName)
	}
	if !Set("nord") {
		t.Fatal("Set(nord) = false")
	}
	nord, _ := Lookup("nord")
	if Current() != nord {
		t.Error("Current() should return the nord palette")
	}
	if Set("no-such-theme") {
		t.Error("Set should reject unknown names")
	}
	if CurrentName() != "nord" {
		t.Errorf("unknown name changed the palette to %q", CurrentName())
	}
}
