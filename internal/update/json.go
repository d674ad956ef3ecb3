package update

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	appErrors "appupdater/internal/errors"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const descriptorSchemaURL = "https://appupdater.local/schema/update.json"

// descriptorSchema describes the document served by a custom JSON feed.
const descriptorSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["latestVersion"],
  "properties": {
    "latestVersion": {"type": "string", "pattern": "\\S"},
    "latestVersionCode": {"type": "integer", "minimum": 0},
    "url": {"type": "string"},
    "releaseNotes": {
      "oneOf": [
        {"type": "string"},
        {"type": "array", "items": {"type": "string"}}
      ]
    }
  }
}`

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func descriptorValidator() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(descriptorSchema))
		if err != nil {
			schemaErr = fmt.Errorf("parse descriptor schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(descriptorSchemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("add descriptor schema: %w", err)
			return
		}
		schema, schemaErr = c.Compile(descriptorSchemaURL)
	})
	return schema, schemaErr
}

type jsonDescriptor struct {
	LatestVersion     string          `json:"latestVersion"`
	LatestVersionCode int             `json:"latestVersionCode"`
	URL               string          `json:"url"`
	ReleaseNotes      json.RawMessage `json:"releaseNotes"`
}

// JSONSource reads a custom JSON descriptor.
type JSONSource struct {
	fetcher
	url string
}

// NewJSONSource creates a source for the descriptor at rawURL.
func NewJSONSource(rawURL string, opts ...SourceOption) (*JSONSource, error) {
	if err := ValidateFeedURL(rawURL); err != nil {
		return nil, err
	}
	return &JSONSource{fetcher: newFetcher(opts), url: strings.TrimSpace(rawURL)}, nil
}

// Kind implements Source.
func (s *JSONSource) Kind() SourceKind { return SourceJSON }

// Fetch implements Source.
func (s *JSONSource) Fetch(ctx context.Context) (Update, error) {
	body, err := s.get(ctx, s.url, "application/json")
	if err != nil {
		return Update{}, err
	}
	return parseJSONDescriptor(body)
}

func parseJSONDescriptor(body []byte) (Update, error) {
	sch, err := descriptorValidator()
	if err != nil {
		return Update{}, err
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return Update{}, appErrors.New(appErrors.CodeMalformedResponse, "decode json descriptor", err)
	}
	if err := sch.Validate(inst); err != nil {
		return Update{}, appErrors.New(appErrors.CodeMalformedResponse, "json descriptor does not match schema", err)
	}

	var doc jsonDescriptor
	if err := json.Unmarshal(body, &doc); err != nil {
		return Update{}, appErrors.New(appErrors.CodeMalformedResponse, "decode json descriptor", err)
	}

	if strings.TrimSpace(doc.LatestVersion) == "" {
		return Update{}, malformed("json descriptor has a blank latestVersion")
	}
	return newUpdate(doc.LatestVersion, doc.LatestVersionCode, releaseNotesText(doc.ReleaseNotes), doc.URL), nil
}

// releaseNotesText accepts either a string or a list of lines.
func releaseNotesText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var lines []string
	if err := json.Unmarshal(raw, &lines); err == nil {
		for i, l := range lines {
			lines[i] = "- " + strings.TrimSpace(l)
		}
		return strings.Join(lines, "\n")
	}
	return ""
}
