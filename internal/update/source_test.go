package update

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appErrors "appupdater/internal/errors"
)

func serveBody(t *testing.T, contentType, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestPlayStoreSourceItemprop(t *testing.T) {
	page := `<html><body>
<div class="details">
  <div itemprop="softwareVersion"> 3.4.1 </div>
</div></body></html>`

	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		if r.URL.Path != "/store/apps/details" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(page))
	}))
	defer server.Close()

	src, err := NewPlayStoreSource("com.example.notes", WithHTTPClient(rewriteClient(server.URL)))
	if err != nil {
		t.Fatalf("NewPlayStoreSource() error: %v", err)
	}
	u, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if u.LatestVersion != "3.4.1" {
		t.Errorf("LatestVersion = %q, want 3.4.1", u.LatestVersion)
	}
	if !strings.Contains(gotQuery, "id=com.example.notes") || !strings.Contains(gotQuery, "hl=en") {
		t.Errorf("query = %q, want id and hl parameters", gotQuery)
	}
	if u.URL != "https://play.google.com/store/apps/details?id=com.example.notes" {
		t.Errorf("URL = %q, want the public listing", u.URL)
	}
}

func TestPlayStoreSourceCurrentVersionLabel(t *testing.T) {
	page := `<html><body>
<div class="hAyfc"><div class="BgcNfc">Updated</div><span class="htlgb">May 1, 2024</span></div>
<div class="hAyfc"><div class="BgcNfc">Current Version</div><span class="htlgb"><div><span>2.10.0</span></div></span></div>
</body></html>`
	server := serveBody(t, "text/html", page)

	src, _ := NewPlayStoreSource("com.example.notes", WithHTTPClient(rewriteClient(server.URL)))
	u, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if u.LatestVersion != "2.10.0" {
		t.Errorf("LatestVersion = %q, want 2.10.0", u.LatestVersion)
	}
}

func TestPlayStoreSourceEmbeddedScriptData(t *testing.T) {
	page := `<html><script>AF_initDataCallback({data:[null,[[["5.0.2"]],[[[33]],[[[21,"5.0"]]]]]]});</script></html>`
	server := serveBody(t, "text/html", page)

	src, _ := NewPlayStoreSource("com.example.notes", WithHTTPClient(rewriteClient(server.URL)))
	u, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if u.LatestVersion != "5.0.2" {
		t.Errorf("LatestVersion = %q, want 5.0.2", u.LatestVersion)
	}
}

func TestPlayStoreSourceVariesWithDevice(t *testing.T) {
	page := `<html><body><div itemprop="softwareVersion">Varies with device</div></body></html>`
	server := serveBody(t, "text/html", page)

	src, _ := NewPlayStoreSource("com.example.notes", WithHTTPClient(rewriteClient(server.URL)))
	_, err := src.Fetch(context.Background())
	if !appErrors.IsCode(err, appErrors.CodeUpdateVariesByDevice) {
		t.Fatalf("Fetch() error = %v, want %s", err, appErrors.CodeUpdateVariesByDevice)
	}
}

func TestPlayStoreSourceNoVersion(t *testing.T) {
	server := serveBody(t, "text/html", `<html><body><h1>Notes</h1></body></html>`)

	src, _ := NewPlayStoreSource("com.example.notes", WithHTTPClient(rewriteClient(server.URL)))
	_, err := src.Fetch(context.Background())
	if !appErrors.IsCode(err, appErrors.CodeMalformedResponse) {
		t.Fatalf("Fetch() error = %v, want %s", err, appErrors.CodeMalformedResponse)
	}
}

func TestPlayStoreSourceUnknownPackage(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	src, _ := NewPlayStoreSource("com.example.missing", WithHTTPClient(rewriteClient(server.URL)))
	_, err := src.Fetch(context.Background())
	if !appErrors.IsCode(err, appErrors.CodeSourceNotFound) {
		t.Fatalf("Fetch() error = %v, want %s", err, appErrors.CodeSourceNotFound)
	}
}

func TestNewPlayStoreSourceRequiresPackage(t *testing.T) {
	if _, err := NewPlayStoreSource("  "); !appErrors.IsCode(err, appErrors.CodeConfigurationError) {
		t.Fatalf("NewPlayStoreSource() error = %v, want configuration error", err)
	}
}

func TestXMLSource(t *testing.T) {
	doc := `<?xml version="1.0" encoding="utf-8"?>
<update>
  <latestVersion>1.5.0</latestVersion>
  <latestVersionCode>15</latestVersionCode>
  <url>https://example.com/app-1.5.0.apk</url>
  <releaseNotes>- Dark mode
- Faster sync</releaseNotes>
</update>`
	server := serveBody(t, "application/xml", doc)

	src, err := NewXMLSource(server.URL + "/update.xml")
	if err != nil {
		t.Fatalf("NewXMLSource() error: %v", err)
	}
	u, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if u.LatestVersion != "1.5.0" || u.LatestVersionCode != 15 {
		t.Errorf("got version %q code %d, want 1.5.0 / 15", u.LatestVersion, u.LatestVersionCode)
	}
	if u.URL != "https://example.com/app-1.5.0.apk" {
		t.Errorf("URL = %q", u.URL)
	}
	if !strings.Contains(u.ReleaseNotes, "Dark mode") {
		t.Errorf("ReleaseNotes = %q, want release notes", u.ReleaseNotes)
	}
}

func TestXMLSourceVersionElement(t *testing.T) {
	server := serveBody(t, "text/xml", `<app><version>2.1</version><url>https://example.com</url></app>`)

	src, _ := NewXMLSource(server.URL)
	u, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if u.LatestVersion != "2.1" {
		t.Errorf("LatestVersion = %q, want 2.1", u.LatestVersion)
	}
}

func TestXMLSourceMalformed(t *testing.T) {
	tests := map[string]string{
		"not xml":          `{"latestVersion": "1.0"}`,
		"missing version":  `<update><url>https://example.com</url></update>`,
		"bad version code": `<update><latestVersion>1.0</latestVersion><latestVersionCode>abc</latestVersionCode></update>`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			server := serveBody(t, "application/xml", body)
			src, _ := NewXMLSource(server.URL)
			_, err := src.Fetch(context.Background())
			if !appErrors.IsCode(err, appErrors.CodeMalformedResponse) {
				t.Fatalf("Fetch() error = %v, want %s", err, appErrors.CodeMalformedResponse)
			}
		})
	}
}

func TestFeedURLValidation(t *testing.T) {
	for _, raw := range []string{"", "example.com/update.xml", "ftp://example.com/u.xml", "https://", "://bad"} {
		if _, err := NewXMLSource(raw); !appErrors.IsCode(err, appErrors.CodeMalformedURL) {
			t.Errorf("NewXMLSource(%q) error = %v, want %s", raw, err, appErrors.CodeMalformedURL)
		}
		if _, err := NewJSONSource(raw); !appErrors.IsCode(err, appErrors.CodeMalformedURL) {
			t.Errorf("NewJSONSource(%q) error = %v, want %s", raw, err, appErrors.CodeMalformedURL)
		}
	}
}

func TestJSONSource(t *testing.T) {
	doc := `{
  "latestVersion": "4.2.0",
  "latestVersionCode": 420,
  "url": "https://example.com/download",
  "releaseNotes": ["Offline mode", " Bug fixes "]
}`
	server := serveBody(t, "application/json", doc)

	src, err := NewJSONSource(server.URL + "/update.json")
	if err != nil {
		t.Fatalf("NewJSONSource() error: %v", err)
	}
	u, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if u.LatestVersion != "4.2.0" || u.LatestVersionCode != 420 {
		t.Errorf("got version %q code %d, want 4.2.0 / 420", u.LatestVersion, u.LatestVersionCode)
	}
	if u.ReleaseNotes != "- Offline mode\n- Bug fixes" {
		t.Errorf("ReleaseNotes = %q", u.ReleaseNotes)
	}
}

func TestJSONSourceSchemaViolations(t *testing.T) {
	tests := map[string]string{
		"not json":         `<update/>`,
		"missing version":  `{"url": "https://example.com"}`,
		"empty version":    `{"latestVersion": ""}`,
		"blank version":    `{"latestVersion": "   "}`,
		"tab version":      `{"latestVersion": "\t\n"}`,
		"negative code":    `{"latestVersion": "1.0", "latestVersionCode": -1}`,
		"code as string":   `{"latestVersion": "1.0", "latestVersionCode": "12"}`,
		"notes wrong type": `{"latestVersion": "1.0", "releaseNotes": 5}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			server := serveBody(t, "application/json", body)
			src, _ := NewJSONSource(server.URL)
			_, err := src.Fetch(context.Background())
			if !appErrors.IsCode(err, appErrors.CodeMalformedResponse) {
				t.Fatalf("Fetch() error = %v, want %s", err, appErrors.CodeMalformedResponse)
			}
		})
	}
}
