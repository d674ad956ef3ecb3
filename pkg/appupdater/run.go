package appupdater

import (
	"context"

	"appupdater/internal/debug"
	"appupdater/internal/locale"
	"appupdater/internal/ui"
	"appupdater/internal/update"
)

type presentation int

const (
	presentNone presentation = iota
	presentUpdate
	presentUpToDate
)

// Start validates the configuration and launches one check in the
// background. Configuration problems are returned before any network call.
// A check still running from an earlier Start is cancelled first.
//
// The result reaches the listener, and the prompt the presenter, through
// the presenter's Dispatch. Cancelling ctx or calling Stop before then
// delivers nothing.
func (u *Updater) Start(ctx context.Context) error {
	if err := u.Validate(); err != nil {
		debug.With("update check not started", "err", err)
		return err
	}

	u.mu.Lock()
	cfg := u.cfg
	src, err := update.NewSource(cfg.sourceConfig(), cfg.sourceOptions()...)
	if err != nil {
		u.mu.Unlock()
		return err
	}
	if u.cancel != nil {
		u.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	u.cancel = cancel
	u.wg.Add(1)
	u.mu.Unlock()

	debug.With("update check started", "source", src.Kind().String(), "installed", cfg.installed, "display", cfg.display.String())
	go func() {
		defer u.wg.Done()
		u.run(runCtx, src, cfg)
	}()
	return nil
}

// Stop cancels the check in flight, if any. A visible prompt stays open;
// use Dismiss to close it.
func (u *Updater) Stop() {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.cancel != nil {
		u.cancel()
		u.cancel = nil
	}
}

// Dismiss closes any prompt the updater is showing.
func (u *Updater) Dismiss() {
	u.mu.Lock()
	p := u.cfg.presenter
	u.mu.Unlock()
	p.Dispatch(p.Dismiss)
}

// Wait blocks until background checks have handed their result to the
// presenter.
func (u *Updater) Wait() {
	u.wg.Wait()
}

// Close stops any check and releases the preference store when the updater
// opened it (see FromConfig).
func (u *Updater) Close() error {
	u.Stop()
	u.Wait()
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.ownsStore && u.cfg.store != nil {
		u.ownsStore = false
		return u.cfg.store.Close()
	}
	return nil
}

// ResetPreferences clears the show-every counter and re-enables prompts.
func (u *Updater) ResetPreferences(ctx context.Context) error {
	u.mu.Lock()
	store := u.cfg.store
	u.mu.Unlock()
	return store.Reset(ctx)
}

func (u *Updater) run(ctx context.Context, src update.Source, cfg settings) {
	res, err := update.NewChecker(src).Check(ctx, cfg.installed, cfg.installedCode)
	if ctx.Err() != nil {
		debug.With("update check cancelled", "source", src.Kind().String())
		return
	}
	if err != nil {
		deliver(ctx, cfg, func() {
			if cfg.listener != nil {
				cfg.listener.OnFailed(err)
			}
		})
		return
	}

	found := newUpdate(res)
	deliver(ctx, cfg, func() {
		if cfg.listener != nil {
			cfg.listener.OnSuccess(found)
		}
		kind := decide(ctx, cfg, found)
		debug.With("update check finished",
			"latest", found.LatestVersion,
			"available", found.Available,
			"present", kind != presentNone,
		)
		present(cfg, found, kind)
	})
}

// deliver runs fn on the presenter's event loop unless ctx was cancelled
// in the meantime.
func deliver(ctx context.Context, cfg settings, fn func()) {
	cfg.presenter.Dispatch(func() {
		if ctx.Err() != nil {
			return
		}
		fn()
	})
}

// decide applies the display mode, the don't-show-again flag and the
// show-every counter. It runs on the presenter's loop after the
// cancellation check, so a stopped check never consumes a counter slot.
// Store failures are logged and suppress the prompt.
func decide(ctx context.Context, cfg settings, found Update) presentation {
	if cfg.display == Silent {
		return presentNone
	}
	if !found.Available {
		if cfg.showAppUpdated {
			return presentUpToDate
		}
		return presentNone
	}

	show, err := cfg.store.ShowEnabled(ctx)
	if err != nil {
		debug.With("read preferences failed", "err", err)
		return presentNone
	}
	if !show {
		return presentNone
	}
	n, err := cfg.store.IncrementSuccessfulChecks(ctx)
	if err != nil {
		debug.With("update preferences failed", "err", err)
		return presentNone
	}
	if n%cfg.showEvery != 0 {
		return presentNone
	}
	return presentUpdate
}

func present(cfg settings, found Update, kind presentation) {
	if kind == presentNone {
		return
	}
	p := buildPrompt(cfg, found, kind)
	switch cfg.display {
	case Dialog:
		cfg.presenter.ShowDialog(p)
	case Snackbar:
		cfg.presenter.ShowBanner(p)
	case Notification:
		cfg.presenter.ShowNotification(p)
	}
}

func buildPrompt(cfg settings, found Update, kind presentation) ui.Prompt {
	l := locale.New(cfg.language)
	app, version := cfg.appDisplayName(), found.LatestVersion
	text := func(t Text, fallbackKey string) string {
		return t.resolve(l, fallbackKey, app, version)
	}

	p := ui.Prompt{
		Icon:         cfg.icon,
		URL:          found.URL,
		ReleaseNotes: found.ReleaseNotes,
		DismissLabel: text(cfg.btnDismiss, locale.ButtonDismiss),
		OnDismiss: func() {
			if cfg.onDismissClick != nil {
				cfg.onDismissClick(found)
			}
		},
	}

	if kind == presentUpToDate {
		p.Kind = ui.PromptUpToDate
		switch cfg.display {
		case Snackbar:
			p.Description = text(cfg.descNoUpdate, locale.SnackbarUpdateNotAvailable)
		default:
			p.Title = text(cfg.titleNoUpdate, locale.TitleUpdateNotAvailable)
			p.Description = text(cfg.descNoUpdate, locale.DescriptionUpdateNotAvailable)
		}
	} else {
		p.Kind = ui.PromptUpdateAvailable
		switch cfg.display {
		case Snackbar:
			p.Description = text(cfg.descUpdate, locale.SnackbarUpdateAvailable)
		case Notification:
			p.Title = text(cfg.titleUpdate, locale.NotificationTitle)
			p.Description = text(cfg.descUpdate, locale.NotificationBody)
		default:
			p.Title = text(cfg.titleUpdate, locale.TitleUpdateAvailable)
			p.Description = text(cfg.descUpdate, locale.DescriptionUpdateAvailable)
		}
		p.UpdateLabel = text(cfg.btnUpdate, locale.ButtonUpdate)
		p.DoNotShowAgainLabel = text(cfg.btnDisable, locale.ButtonDoNotShowAgain)
		p.OnUpdate = func() { onUpdate(cfg, found) }
		p.OnDoNotShowAgain = func() { onDoNotShowAgain(cfg, found) }
	}

	if cfg.display == Snackbar && cfg.duration == Normal {
		p.Duration = ui.DefaultBannerDuration
	}
	return p
}

func onUpdate(cfg settings, found Update) {
	if cfg.onUpdateClick != nil {
		cfg.onUpdateClick(found)
		return
	}
	if found.URL == "" {
		return
	}
	if err := cfg.openURL(found.URL); err != nil {
		debug.With("open update url failed", "url", found.URL, "err", err)
	}
}

func onDoNotShowAgain(cfg settings, found Update) {
	if cfg.onDisableClick != nil {
		cfg.onDisableClick(found)
		return
	}
	if err := cfg.store.SetShowEnabled(context.Background(), false); err != nil {
		debug.With("disable prompts failed", "err", err)
	}
}
