package update

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	appErrors "appupdater/internal/errors"

	"golang.org/x/net/html"
)

const (
	defaultPlayStoreBase = "https://play.google.com"
	variesWithDevice     = "Varies with device"
)

// embeddedVersion matches the version array the current store pages embed in
// their inline script data.
var embeddedVersion = regexp.MustCompile(`\[\[\["(\d+(?:\.\d+)+[^"]*)"\]\]`)

// PlayStoreSource scrapes the Google Play listing of a package.
type PlayStoreSource struct {
	fetcher
	packageID string
	baseURL   string
}

// NewPlayStoreSource creates a source for the given application id.
func NewPlayStoreSource(packageID string, opts ...SourceOption) (*PlayStoreSource, error) {
	packageID = strings.TrimSpace(packageID)
	if packageID == "" {
		return nil, appErrors.New(appErrors.CodeConfigurationError, "google play source requires a package id", nil)
	}
	return &PlayStoreSource{
		fetcher:   newFetcher(opts),
		packageID: packageID,
		baseURL:   defaultPlayStoreBase,
	}, nil
}

// Kind implements Source.
func (s *PlayStoreSource) Kind() SourceKind { return SourceGooglePlay }

// ListingURL is the public store page, also used as the update URL.
func (s *PlayStoreSource) ListingURL() string {
	q := url.Values{}
	q.Set("id", s.packageID)
	return fmt.Sprintf("%s/store/apps/details?%s", s.baseURL, q.Encode())
}

// Fetch implements Source.
func (s *PlayStoreSource) Fetch(ctx context.Context) (Update, error) {
	body, err := s.get(ctx, s.ListingURL()+"&hl=en", "text/html")
	if err != nil {
		if appErrors.IsCode(err, appErrors.CodeSourceNotFound) {
			return Update{}, appErrors.New(appErrors.CodeSourceNotFound,
				fmt.Sprintf("package %s is not published on google play", s.packageID), err)
		}
		return Update{}, err
	}

	version, err := parseStoreVersion(body)
	if err != nil {
		return Update{}, err
	}
	if strings.EqualFold(version, variesWithDevice) {
		return Update{}, appErrors.New(appErrors.CodeUpdateVariesByDevice,
			fmt.Sprintf("google play lists %s as %q", s.packageID, variesWithDevice), nil)
	}

	listing := s.ListingURL()
	return newUpdate(version, 0, "", listing), nil
}

// parseStoreVersion finds the published version on a store page. It looks for
// the softwareVersion itemprop, then the "Current Version" label, then the
// inline script data.
func parseStoreVersion(page []byte) (string, error) {
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return "", appErrors.New(appErrors.CodeMalformedResponse, "parse store page", err)
	}

	if n := findNode(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && attr(n, "itemprop") == "softwareVersion"
	}); n != nil {
		if v := strings.TrimSpace(textContent(n)); v != "" {
			return v, nil
		}
	}

	if label := findNode(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.FirstChild != nil &&
			n.FirstChild.Type == html.TextNode &&
			strings.EqualFold(strings.TrimSpace(n.FirstChild.Data), "Current Version")
	}); label != nil {
		for sib := label.NextSibling; sib != nil; sib = sib.NextSibling {
			if sib.Type != html.ElementNode {
				continue
			}
			if v := strings.TrimSpace(textContent(sib)); v != "" {
				return v, nil
			}
		}
	}

	if m := embeddedVersion.FindSubmatch(page); m != nil {
		return string(m[1]), nil
	}
	if bytes.Contains(page, []byte(variesWithDevice)) {
		return variesWithDevice, nil
	}

	return "", malformed("store page does not contain a version")
}

func findNode(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findNode(c, match); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
