package appupdater

import (
	"time"

	"appupdater/internal/update"
)

// Update describes the outcome of a successful check.
type Update struct {
	// LatestVersion is the version string published by the source.
	LatestVersion string
	// LatestVersionCode is the published build number, or 0.
	LatestVersionCode int
	// ReleaseNotes is optional text from the source.
	ReleaseNotes string
	// URL is where the update can be obtained.
	URL string
	// InstalledVersion is the version the check compared against.
	InstalledVersion string
	// Available reports whether LatestVersion is newer than the installed
	// version.
	Available bool
	// Source is where the result came from.
	Source Source
	// CheckedAt is when the comparison ran.
	CheckedAt time.Time
}

func newUpdate(res update.Result) Update {
	return Update{
		LatestVersion:     res.Update.LatestVersion,
		LatestVersionCode: res.Update.LatestVersionCode,
		ReleaseNotes:      res.Update.ReleaseNotes,
		URL:               res.Update.URL,
		InstalledVersion:  res.Installed,
		Available:         res.Available,
		Source:            res.Source,
		CheckedAt:         res.CheckedAt,
	}
}

// Listener receives the result of every completed check, in every display
// mode. Calls run on the presenter's event loop.
type Listener interface {
	OnSuccess(u Update)
	OnFailed(err error)
}

// ListenerFuncs adapts plain functions to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	Success func(Update)
	Failed  func(error)
}

func (l ListenerFuncs) OnSuccess(u Update) {
	if l.Success != nil {
		l.Success(u)
	}
}

func (l ListenerFuncs) OnFailed(err error) {
	if l.Failed != nil {
		l.Failed(err)
	}
}

// ClickListener handles a dialog or banner button. Setting one replaces the
// button's default behavior.
type ClickListener func(u Update)
