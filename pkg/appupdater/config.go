package appupdater

import (
	"context"
	"fmt"
	"strings"

	"appupdater/internal/config"
	"appupdater/internal/debug"
	"appupdater/internal/prefs"
)

// MemoryDatabase as database.path keeps preferences in memory only.
const MemoryDatabase = ":memory:"

// FromConfig builds an Updater from the loaded configuration (config files,
// AU_* environment variables and flag overrides). Invalid values are
// recorded like setter problems and reported by Validate and Start.
//
// Unless database.path is ":memory:", preferences persist in SQLite; the
// returned Updater owns that store and releases it on Close.
func FromConfig(ctx context.Context) (*Updater, error) {
	u := New()

	src, err := ParseSource(config.GetString(config.KeySource))
	u.set("source", err, func(s *settings) { s.source = src })

	display, err := ParseDisplay(config.GetString(config.KeyDisplay))
	u.set("display", err, func(s *settings) { s.display = display })

	duration, err := ParseDuration(config.GetString(config.KeyDuration))
	u.set("duration", err, func(s *settings) { s.duration = duration })

	if user, repo := config.GetString(config.KeyGitHubUser), config.GetString(config.KeyGitHubRepo); user != "" || repo != "" {
		u.SetGitHubUserAndRepo(user, repo)
	}
	if v := config.GetString(config.KeyXMLURL); v != "" {
		u.SetUpdateXML(v)
	}
	if v := config.GetString(config.KeyJSONURL); v != "" {
		u.SetUpdateJSON(v)
	}
	if v := config.GetString(config.KeyPackageID); v != "" {
		u.SetPackageID(v)
	}
	if v := config.GetString(config.KeyAppName); v != "" {
		u.SetAppName(v)
	}
	if v := config.GetString(config.KeyInstalledVersion); v != "" {
		u.SetInstalledVersion(v)
	}
	if config.IsSet(config.KeyShowEvery) {
		u.ShowEvery(config.GetInt(config.KeyShowEvery))
	}
	u.ShowAppUpdated(config.GetBool(config.KeyShowAppUpdated))
	if v := config.GetString(config.KeyIcon); v != "" {
		u.SetIcon(v)
	}
	if v := config.GetString(config.KeyLanguage); v != "" {
		u.SetLanguage(v)
	}

	texts := []struct {
		key string
		set func(Text) *Updater
	}{
		{config.KeyTitleUpdateAvailable, u.SetDialogTitleWhenUpdateAvailable},
		{config.KeyDescriptionUpdateAvailable, u.SetDialogDescriptionWhenUpdateAvailable},
		{config.KeyTitleUpdateNotAvailable, u.SetDialogTitleWhenUpdateNotAvailable},
		{config.KeyDescriptionUpdateNotAvailable, u.SetDialogDescriptionWhenUpdateNotAvailable},
		{config.KeyButtonUpdate, u.SetDialogButtonUpdate},
		{config.KeyButtonDismiss, u.SetDialogButtonDismiss},
		{config.KeyButtonDoNotShowAgain, u.SetDialogButtonDoNotShowAgain},
	}
	for _, t := range texts {
		if v := config.GetString(t.key); v != "" {
			t.set(parseText(v))
		}
	}

	store, err := openStore(ctx, config.GetString(config.KeyDatabasePath))
	if err != nil {
		return nil, err
	}
	u.SetPreferences(store)
	u.mu.Lock()
	u.ownsStore = true
	u.mu.Unlock()
	return u, nil
}

// parseText reads "@message.key" as a catalog reference and anything else
// as a literal.
func parseText(v string) Text {
	if key, ok := strings.CutPrefix(v, "@"); ok {
		return Resource(key)
	}
	return Literal(v)
}

func openStore(ctx context.Context, path string) (prefs.Store, error) {
	if path == MemoryDatabase {
		return prefs.NewMemoryStore(), nil
	}
	if path == "" {
		p, err := config.DefaultDatabasePath()
		if err != nil {
			return nil, fmt.Errorf("preferences: %w", err)
		}
		path = p
	}
	store, err := prefs.OpenSQLite(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open preferences %s: %w", path, err)
	}
	debug.With("preferences opened", "path", store.Path())
	return store, nil
}
