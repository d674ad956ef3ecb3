package ui

import "time"

// PromptKind distinguishes the two things a prompt can announce.
type PromptKind int

const (
	PromptUpdateAvailable PromptKind = iota
	PromptUpToDate
)

// DefaultBannerDuration is how long a normal banner stays visible.
const DefaultBannerDuration = 10 * time.Second

// Prompt carries the resolved texts and button actions for one
// presentation. Action callbacks run on the presenter's event loop and may
// be nil.
type Prompt struct {
	Kind PromptKind

	Title        string
	Description  string
	ReleaseNotes string
	URL          string
	Icon         string

	UpdateLabel         string
	DismissLabel        string
	DoNotShowAgainLabel string

	// Duration bounds a banner's lifetime. Zero keeps it until dismissed.
	Duration time.Duration

	OnUpdate         func()
	OnDismiss        func()
	OnDoNotShowAgain func()
}

// HasUpdate reports whether the prompt offers an update.
func (p Prompt) HasUpdate() bool {
	return p.Kind == PromptUpdateAvailable
}

// Presenter is a surface that can show update prompts.
//
// Show* and Dismiss must only be called from inside a function passed to
// Dispatch. Dispatch itself is safe from any goroutine and runs fn on the
// presenter's event loop.
type Presenter interface {
	ShowDialog(p Prompt)
	ShowBanner(p Prompt)
	ShowNotification(p Prompt)
	Dismiss()
	Dispatch(fn func())
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}
