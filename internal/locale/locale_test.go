package locale

import (
	"strings"
	"testing"

	"golang.org/x/text/language"
)

func TestEveryKeyHasEveryLanguage(t *testing.T) {
	for _, key := range Keys() {
		for _, tag := range Languages() {
			if _, ok := messages[key][tag]; !ok {
				t.Errorf("message %q missing %s translation", key, tag)
			}
		}
	}
}

func TestKnown(t *testing.T) {
	if !Known(ButtonUpdate) {
		t.Errorf("Known(%q) = false, want true", ButtonUpdate)
	}
	if Known("button.launch-rockets") {
		t.Error("Known() should reject keys outside the catalog")
	}
}

func TestMatch(t *testing.T) {
	tests := map[string]language.Tag{
		"":      language.English,
		"en-GB": language.English,
		"es-MX": language.Spanish,
		"fr":    language.French,
		"de-AT": language.German,
		"!!":    language.English,
	}
	for in, want := range tests {
		if got := Match(in); got != want {
			t.Errorf("Match(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestLocalizerText(t *testing.T) {
	en := New("en")
	if got := en.Text(ButtonDismiss, "Notes", "2.0"); got != "Dismiss" {
		t.Errorf("Text(ButtonDismiss) = %q, want Dismiss", got)
	}
	if got := en.Text(SnackbarUpdateAvailable, "Notes", "2.0"); got != "Update 2.0 is available!" {
		t.Errorf("Text(SnackbarUpdateAvailable) = %q", got)
	}
	desc := en.Text(DescriptionUpdateAvailable, "Notes", "2.0")
	if !strings.Contains(desc, "Update 2.0") || !strings.Contains(desc, "of Notes.") {
		t.Errorf("Text(DescriptionUpdateAvailable) = %q, want app name and version", desc)
	}
	if strings.Contains(desc, "%!") {
		t.Errorf("Text() left formatting noise: %q", desc)
	}

	de := New("de-DE")
	if got := de.Text(ButtonUpdate, "Notes", "2.0"); got != "Aktualisieren" {
		t.Errorf("German Text(ButtonUpdate) = %q, want Aktualisieren", got)
	}
	if got := de.Text(SnackbarUpdateNotAvailable, "Notes", ""); got != "Notes ist auf dem neuesten Stand" {
		t.Errorf("German Text(SnackbarUpdateNotAvailable) = %q", got)
	}
}

func TestLocalizerUnknownKey(t *testing.T) {
	if got := New("fr").Text("nope", "Notes", "1.0"); got != "nope" {
		t.Errorf("Text(unknown) = %q, want the key", got)
	}
}
