package appupdater

import (
	"fmt"
	"strings"

	"appupdater/internal/update"
)

// Source selects where the latest version is published.
type Source = update.SourceKind

const (
	GooglePlay = update.SourceGooglePlay
	GitHub     = update.SourceGitHub
	XML        = update.SourceXML
	JSON       = update.SourceJSON
)

// ParseSource accepts "google-play" (or "store"), "github", "xml" and
// "json", case-insensitively.
func ParseSource(s string) (Source, error) {
	return update.ParseSourceKind(s)
}

// Display selects how a result is shown to the user.
type Display int

const (
	// Dialog shows a modal dialog with Update, Dismiss and Don't show again.
	Dialog Display = iota
	// Snackbar shows a transient banner with an Update action.
	Snackbar
	// Notification posts a desktop notification.
	Notification
	// Silent never shows anything; only the listener is called.
	Silent
)

func (d Display) String() string {
	switch d {
	case Dialog:
		return "dialog"
	case Snackbar:
		return "snackbar"
	case Notification:
		return "notification"
	case Silent:
		return "silent"
	default:
		return "unknown"
	}
}

func (d Display) valid() bool {
	return d >= Dialog && d <= Silent
}

// ParseDisplay converts a display name to a Display.
func ParseDisplay(s string) (Display, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dialog":
		return Dialog, nil
	case "snackbar", "banner":
		return Snackbar, nil
	case "notification":
		return Notification, nil
	case "silent", "none":
		return Silent, nil
	default:
		return Dialog, configError(fmt.Sprintf("unknown display %q", s))
	}
}

// Duration controls how long a snackbar stays visible.
type Duration int

const (
	// Normal hides the snackbar after ten seconds.
	Normal Duration = iota
	// Indefinite keeps the snackbar until the user acts on it.
	Indefinite
)

func (d Duration) String() string {
	switch d {
	case Normal:
		return "normal"
	case Indefinite:
		return "indefinite"
	default:
		return "unknown"
	}
}

func (d Duration) valid() bool {
	return d == Normal || d == Indefinite
}

// ParseDuration converts a duration name to a Duration.
func ParseDuration(s string) (Duration, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal", "short", "long":
		return Normal, nil
	case "indefinite":
		return Indefinite, nil
	default:
		return Normal, configError(fmt.Sprintf("unknown duration %q", s))
	}
}
