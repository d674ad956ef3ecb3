package update

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	appErrors "appupdater/internal/errors"
)

// DefaultTimeout bounds a single fetch.
const DefaultTimeout = 5 * time.Second

// maxBodyBytes caps how much of a response is read. Store pages are the
// largest payload and stay well under this.
const maxBodyBytes = 8 << 20

const userAgent = "appupdater-version-checker"

// Update describes the latest published version of the application.
type Update struct {
	// LatestVersion is the display string as published by the source.
	LatestVersion string
	// Version is the parsed numeric form of LatestVersion. It is the zero
	// Version when the published string is not numeric.
	Version Version
	// LatestVersionCode is an optional integer build number (XML/JSON feeds).
	LatestVersionCode int
	// ReleaseNotes is optional markdown or plain text.
	ReleaseNotes string
	// URL is where the update can be obtained.
	URL string
}

func newUpdate(latest string, code int, notes, link string) Update {
	latest = strings.TrimSpace(latest)
	parsed, _ := ParseVersion(latest)
	return Update{
		LatestVersion:     latest,
		Version:           parsed,
		LatestVersionCode: code,
		ReleaseNotes:      strings.TrimSpace(notes),
		URL:               strings.TrimSpace(link),
	}
}

// SourceKind selects where the latest version is published.
type SourceKind int

const (
	// SourceGooglePlay scrapes the Google Play store listing.
	SourceGooglePlay SourceKind = iota
	// SourceGitHub reads the latest GitHub release.
	SourceGitHub
	// SourceXML reads a custom XML descriptor.
	SourceXML
	// SourceJSON reads a custom JSON descriptor.
	SourceJSON
)

// String returns the string representation of a SourceKind.
func (k SourceKind) String() string {
	switch k {
	case SourceGooglePlay:
		return "google-play"
	case SourceGitHub:
		return "github"
	case SourceXML:
		return "xml"
	case SourceJSON:
		return "json"
	default:
		return "unknown"
	}
}

// ParseSourceKind maps a config value onto a SourceKind.
func ParseSourceKind(s string) (SourceKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "google-play", "googleplay", "play", "store", "":
		return SourceGooglePlay, nil
	case "github":
		return SourceGitHub, nil
	case "xml":
		return SourceXML, nil
	case "json":
		return SourceJSON, nil
	default:
		return SourceGooglePlay, appErrors.New(appErrors.CodeConfigurationError, fmt.Sprintf("unknown update source %q", s), nil)
	}
}

// Source fetches the latest published version.
type Source interface {
	Kind() SourceKind
	Fetch(ctx context.Context) (Update, error)
}

// SourceOption configures the HTTP side of a Source.
type SourceOption func(*fetcher)

// WithHTTPClient sets a custom HTTP client for the source.
func WithHTTPClient(client *http.Client) SourceOption {
	return func(f *fetcher) {
		if client != nil {
			f.httpClient = client
		}
	}
}

// WithTimeout sets the request timeout. The client is copied first, so a
// client passed to WithHTTPClient is left untouched.
func WithTimeout(timeout time.Duration) SourceOption {
	return func(f *fetcher) {
		if timeout <= 0 {
			return
		}
		c := *f.httpClient
		c.Timeout = timeout
		f.httpClient = &c
	}
}

// fetcher performs the single GET each source needs.
type fetcher struct {
	httpClient *http.Client
}

func newFetcher(opts []SourceOption) fetcher {
	f := fetcher{httpClient: &http.Client{Timeout: DefaultTimeout}}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// get fetches url and returns the body, classifying failures.
func (f fetcher) get(ctx context.Context, rawURL, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, appErrors.New(appErrors.CodeMalformedURL, fmt.Sprintf("create request for %s", rawURL), err)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, appErrors.New(appErrors.CodeNetworkNotAvailable, fmt.Sprintf("network request failed: %v", err), err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, appErrors.New(appErrors.CodeSourceNotFound, fmt.Sprintf("%s not found", rawURL), nil)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, appErrors.New(appErrors.CodeNetworkNotAvailable, fmt.Sprintf("network request failed: status %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, appErrors.New(appErrors.CodeNetworkNotAvailable, "read response body", err)
	}
	return body, nil
}

// ValidateFeedURL checks that a descriptor URL is an absolute http(s) URL.
func ValidateFeedURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return appErrors.New(appErrors.CodeMalformedURL, "feed url is empty", nil)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return appErrors.New(appErrors.CodeMalformedURL, fmt.Sprintf("invalid feed url %q", raw), err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return appErrors.New(appErrors.CodeMalformedURL, fmt.Sprintf("feed url %q must be an absolute http(s) url", raw), nil)
	}
	return nil
}

func malformed(format string, args ...any) error {
	return appErrors.New(appErrors.CodeMalformedResponse, fmt.Sprintf(format, args...), nil)
}
