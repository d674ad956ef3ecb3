package appupdater

import (
	"fmt"
	"strings"

	"appupdater/internal/locale"
)

// Message keys usable with Resource.
const (
	MsgTitleUpdateAvailable          = locale.TitleUpdateAvailable
	MsgDescriptionUpdateAvailable    = locale.DescriptionUpdateAvailable
	MsgTitleUpdateNotAvailable       = locale.TitleUpdateNotAvailable
	MsgDescriptionUpdateNotAvailable = locale.DescriptionUpdateNotAvailable
	MsgButtonUpdate                  = locale.ButtonUpdate
	MsgButtonDismiss                 = locale.ButtonDismiss
	MsgButtonDoNotShowAgain          = locale.ButtonDoNotShowAgain
	MsgSnackbarUpdateAvailable       = locale.SnackbarUpdateAvailable
	MsgSnackbarUpdateNotAvailable    = locale.SnackbarUpdateNotAvailable
	MsgNotificationTitle             = locale.NotificationTitle
	MsgNotificationBody              = locale.NotificationBody
)

// Text is a user-visible string: either a literal or a reference to a
// localized catalog message. The zero Text means "use the default".
type Text struct {
	literal string
	key     string
}

// Literal wraps a fixed string.
func Literal(s string) Text {
	return Text{literal: s}
}

// Resource refers to a catalog message, resolved in the updater's language
// when shown.
func Resource(key string) Text {
	return Text{key: key}
}

// IsZero reports whether t is unset.
func (t Text) IsZero() bool {
	return t.literal == "" && t.key == ""
}

func (t Text) String() string {
	if t.key != "" {
		return "resource:" + t.key
	}
	return t.literal
}

func (t Text) validate() error {
	switch {
	case t.key != "":
		if !locale.Known(t.key) {
			return configError(fmt.Sprintf("unknown message %q", t.key))
		}
	case strings.TrimSpace(t.literal) == "":
		return configError("text must not be empty")
	}
	return nil
}

// resolve renders t, falling back to the catalog message fallbackKey when t
// is unset.
func (t Text) resolve(l *locale.Localizer, fallbackKey, appName, version string) string {
	switch {
	case t.key != "":
		return l.Text(t.key, appName, version)
	case t.literal != "":
		return t.literal
	default:
		return l.Text(fallbackKey, appName, version)
	}
}
