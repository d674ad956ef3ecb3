package update

import (
	"context"
	"fmt"
	"time"

	"appupdater/internal/debug"
	appErrors "appupdater/internal/errors"
)

// SourceConfig carries everything any Source needs; only the fields of the
// selected Kind are read.
type SourceConfig struct {
	Kind       SourceKind
	PackageID  string
	GitHubUser string
	GitHubRepo string
	XMLURL     string
	JSONURL    string
}

// NewSource builds the Source selected by cfg.Kind. Misconfiguration is
// reported here, before any network call.
func NewSource(cfg SourceConfig, opts ...SourceOption) (Source, error) {
	switch cfg.Kind {
	case SourceGooglePlay:
		return NewPlayStoreSource(cfg.PackageID, opts...)
	case SourceGitHub:
		return NewGitHubSource(cfg.GitHubUser, cfg.GitHubRepo, opts...)
	case SourceXML:
		return NewXMLSource(cfg.XMLURL, opts...)
	case SourceJSON:
		return NewJSONSource(cfg.JSONURL, opts...)
	default:
		return nil, appErrors.New(appErrors.CodeConfigurationError, fmt.Sprintf("unknown update source %d", cfg.Kind), nil)
	}
}

// Result contains the outcome of one version check.
type Result struct {
	Installed string
	Update    Update
	Available bool
	Source    SourceKind
	CheckedAt time.Time
}

// Checker runs one fetch and one comparison.
type Checker struct {
	source Source
	now    func() time.Time
}

// NewChecker creates a checker reading from source.
func NewChecker(source Source) *Checker {
	return &Checker{source: source, now: time.Now}
}

// Check fetches the latest version and compares it to the installed one.
// An installed version that cannot be parsed (for example "dev") never has
// an update available.
func (c *Checker) Check(ctx context.Context, installed string, installedCode int) (Result, error) {
	if c.source == nil {
		return Result{}, appErrors.New(appErrors.CodeConfigurationError, "no update source configured", nil)
	}

	u, err := c.source.Fetch(ctx)
	if err != nil {
		debug.With("update check failed", "source", c.source.Kind().String(), "code", string(appErrors.CodeOf(err)), "err", err)
		return Result{}, err
	}

	res := Result{
		Installed: installed,
		Update:    u,
		Available: IsUpdateAvailable(installed, installedCode, u),
		Source:    c.source.Kind(),
		CheckedAt: c.now(),
	}
	debug.With("update check finished",
		"source", res.Source.String(),
		"installed", installed,
		"latest", u.LatestVersion,
		"available", res.Available)
	return res, nil
}
