// Package locale holds the default texts shown by the update prompts.
//
// Messages live in a golang.org/x/text catalog keyed by dotted names. Every
// message may refer to the app name as %[1]s and the latest version as %[2]s.
package locale

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys.
const (
	TitleUpdateAvailable          = "dialog.title.update-available"
	DescriptionUpdateAvailable    = "dialog.description.update-available"
	TitleUpdateNotAvailable       = "dialog.title.update-not-available"
	DescriptionUpdateNotAvailable = "dialog.description.update-not-available"
	ButtonUpdate                  = "button.update"
	ButtonDismiss                 = "button.dismiss"
	ButtonDoNotShowAgain          = "button.do-not-show-again"
	SnackbarUpdateAvailable       = "snackbar.update-available"
	SnackbarUpdateNotAvailable    = "snackbar.update-not-available"
	NotificationTitle             = "notification.title"
	NotificationBody              = "notification.body"
)

var supported = []language.Tag{
	language.English,
	language.Spanish,
	language.French,
	language.German,
}

var messages = map[string]map[language.Tag]string{
	TitleUpdateAvailable: {
		language.English: "Update available",
		language.Spanish: "Actualización disponible",
		language.French:  "Mise à jour disponible",
		language.German:  "Update verfügbar",
	},
	DescriptionUpdateAvailable: {
		language.English: "Update %[2]s is available to download. Downloading the latest update you will get the latest features, improvements and bug fixes of %[1]s.",
		language.Spanish: "La actualización %[2]s está disponible para descargar. Con la última actualización obtendrás las últimas funciones, mejoras y correcciones de %[1]s.",
		language.French:  "La mise à jour %[2]s est disponible. En la téléchargeant, vous profiterez des dernières fonctionnalités, améliorations et corrections de %[1]s.",
		language.German:  "Update %[2]s steht zum Download bereit. Mit dem neuesten Update erhältst du die neuesten Funktionen, Verbesserungen und Fehlerbehebungen für %[1]s.",
	},
	TitleUpdateNotAvailable: {
		language.English: "No update available",
		language.Spanish: "No hay actualizaciones",
		language.French:  "Aucune mise à jour",
		language.German:  "Kein Update verfügbar",
	},
	DescriptionUpdateNotAvailable: {
		language.English: "You have the latest version of %[1]s available!",
		language.Spanish: "¡Tienes la última versión de %[1]s!",
		language.French:  "Vous avez la dernière version de %[1]s !",
		language.German:  "Du hast bereits die neueste Version von %[1]s!",
	},
	ButtonUpdate: {
		language.English: "Update",
		language.Spanish: "Actualizar",
		language.French:  "Mettre à jour",
		language.German:  "Aktualisieren",
	},
	ButtonDismiss: {
		language.English: "Dismiss",
		language.Spanish: "Descartar",
		language.French:  "Ignorer",
		language.German:  "Schließen",
	},
	ButtonDoNotShowAgain: {
		language.English: "Don't show again",
		language.Spanish: "No volver a mostrar",
		language.French:  "Ne plus afficher",
		language.German:  "Nicht mehr anzeigen",
	},
	SnackbarUpdateAvailable: {
		language.English: "Update %[2]s is available!",
		language.Spanish: "¡La actualización %[2]s está disponible!",
		language.French:  "La mise à jour %[2]s est disponible !",
		language.German:  "Update %[2]s ist verfügbar!",
	},
	SnackbarUpdateNotAvailable: {
		language.English: "%[1]s is up to date",
		language.Spanish: "%[1]s está actualizada",
		language.French:  "%[1]s est à jour",
		language.German:  "%[1]s ist auf dem neuesten Stand",
	},
	NotificationTitle: {
		language.English: "%[1]s: update available",
		language.Spanish: "%[1]s: actualización disponible",
		language.French:  "%[1]s : mise à jour disponible",
		language.German:  "%[1]s: Update verfügbar",
	},
	NotificationBody: {
		language.English: "Version %[2]s is ready to download",
		language.Spanish: "La versión %[2]s está lista para descargar",
		language.French:  "La version %[2]s est prête à être téléchargée",
		language.German:  "Version %[2]s steht zum Download bereit",
	},
}

var (
	cat     *catalog.Builder
	matcher = language.NewMatcher(supported)
)

func init() {
	cat = catalog.NewBuilder(catalog.Fallback(language.English))
	for key, byLang := range messages {
		for tag, msg := range byLang {
			if err := cat.SetString(tag, key, msg); err != nil {
				panic(fmt.Sprintf("locale: register %s/%s: %v", tag, key, err))
			}
		}
	}
}

// Known reports whether key names a catalog message.
func Known(key string) bool {
	_, ok := messages[key]
	return ok
}

// Keys returns every message key in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(messages))
	for k := range messages {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Languages lists the tags the catalog carries, English first.
func Languages() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// Match maps a BCP 47 string (e.g. "es-MX") to the closest supported tag.
// Unknown or empty input falls back to English.
func Match(lang string) language.Tag {
	tag, err := language.Parse(strings.TrimSpace(lang))
	if err != nil {
		return language.English
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return language.English
	}
	return supported[idx]
}

// Localizer resolves catalog keys for one language.
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a Localizer for the closest supported match of lang.
func New(lang string) *Localizer {
	tag := Match(lang)
	return &Localizer{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(cat)),
	}
}

// Language reports the tag the Localizer resolved to.
func (l *Localizer) Language() language.Tag { return l.tag }

// Text renders key with the app name and version substituted. Unknown keys
// render as the key itself.
func (l *Localizer) Text(key, appName, version string) string {
	if !Known(key) {
		return key
	}
	if !strings.Contains(l.format(key), "%") {
		return l.printer.Sprintf(key)
	}
	return l.printer.Sprintf(key, appName, version)
}

// format returns the raw catalog text for key in the Localizer's language.
func (l *Localizer) format(key string) string {
	byLang := messages[key]
	if msg, ok := byLang[l.tag]; ok {
		return msg
	}
	return byLang[language.English]
}
