package update

import (
	"bytes"
	"context"
	"encoding/xml"
	"strconv"
	"strings"

	appErrors "appupdater/internal/errors"
)

// xmlDescriptor is the document served by a custom XML feed:
//
//	<update>
//	  <latestVersion>1.2.3</latestVersion>
//	  <latestVersionCode>12</latestVersionCode>
//	  <url>https://example.com/app.apk</url>
//	  <releaseNotes>- Fixes</releaseNotes>
//	</update>
//
// <version> is accepted in place of <latestVersion>.
type xmlDescriptor struct {
	LatestVersion     string `xml:"latestVersion"`
	Version           string `xml:"version"`
	LatestVersionCode string `xml:"latestVersionCode"`
	URL               string `xml:"url"`
	ReleaseNotes      string `xml:"releaseNotes"`
}

// XMLSource reads a custom XML descriptor.
type XMLSource struct {
	fetcher
	url string
}

// NewXMLSource creates a source for the descriptor at rawURL.
func NewXMLSource(rawURL string, opts ...SourceOption) (*XMLSource, error) {
	if err := ValidateFeedURL(rawURL); err != nil {
		return nil, err
	}
	return &XMLSource{fetcher: newFetcher(opts), url: strings.TrimSpace(rawURL)}, nil
}

// Kind implements Source.
func (s *XMLSource) Kind() SourceKind { return SourceXML }

// Fetch implements Source.
func (s *XMLSource) Fetch(ctx context.Context) (Update, error) {
	body, err := s.get(ctx, s.url, "application/xml, text/xml")
	if err != nil {
		return Update{}, err
	}
	return parseXMLDescriptor(body)
}

func parseXMLDescriptor(body []byte) (Update, error) {
	var doc xmlDescriptor
	dec := xml.NewDecoder(bytes.NewReader(body))
	dec.Strict = false
	if err := dec.Decode(&doc); err != nil {
		return Update{}, appErrors.New(appErrors.CodeMalformedResponse, "decode xml descriptor", err)
	}

	latest := strings.TrimSpace(doc.LatestVersion)
	if latest == "" {
		latest = strings.TrimSpace(doc.Version)
	}
	if latest == "" {
		return Update{}, malformed("xml descriptor has no <latestVersion> or <version>")
	}

	code := 0
	if raw := strings.TrimSpace(doc.LatestVersionCode); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return Update{}, malformed("xml descriptor has invalid <latestVersionCode> %q", raw)
		}
		code = n
	}

	return newUpdate(latest, code, doc.ReleaseNotes, doc.URL), nil
}
