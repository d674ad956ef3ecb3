package ui

import (
	"io"
	"os"
	"strings"

	"appupdater/internal/debug"

	"github.com/muesli/termenv"
)

// Notifier posts desktop notifications through the terminal (OSC 777).
// Terminals without support ignore the sequence.
type Notifier struct {
	out *termenv.Output
}

// NewNotifier writes notifications to w, or stderr when w is nil.
func NewNotifier(w io.Writer) *Notifier {
	if w == nil {
		w = os.Stderr
	}
	return &Notifier{out: termenv.NewOutput(w)}
}

// Notify posts p's title and description.
func (n *Notifier) Notify(p Prompt) {
	title := strings.TrimSpace(p.Title)
	if icon := strings.TrimSpace(p.Icon); icon != "" {
		title = icon + " " + title
	}
	body := strings.TrimSpace(p.Description)
	debug.With("notification posted", "title", title, "url", p.URL)
	n.out.Notify(title, body)
}
