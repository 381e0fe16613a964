package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/nickagliano/hookplayer/internal/errors"
	"github.com/nickagliano/hookplayer/internal/logging"
)

// BaseContentURL builds the raw-content URL a pack's files live under:
// <contentBase>/<repo>/<ref>[/<path>]. An empty or "." source path means
// the pack sits at the repository root.
func (c *Client) BaseContentURL(p Pack) string {
	base := c.contentBase + "/" + p.SourceRepo + "/" + p.SourceRef
	if sub := normalizeSourcePath(p.SourcePath); sub != "" {
		base += "/" + sub
	}
	return base
}

func normalizeSourcePath(p string) string {
	p = strings.Trim(p, "/")
	p = strings.TrimPrefix(p, "./")
	p = strings.Trim(p, "/")
	if p == "." {
		return ""
	}
	return p
}

// FetchManifest downloads and validates <baseURL>/openpeon.json.
func (c *Client) FetchManifest(ctx context.Context, baseURL string) (*Manifest, error) {
	url := strings.TrimRight(baseURL, "/") + "/" + ManifestFileName

	body, err := c.fetcher.Bytes(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := validate(&manifestSchema, body, "pack manifest"); err != nil {
		return nil, err
	}

	var m Manifest
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, errors.Wrap(err, errors.ErrParse, "parsing pack manifest")
	}

	logger := logging.GetLogger("registry")
	logger.Debug().
		Str("url", url).
		Int("categories", len(m.Categories)).
		Msg("manifest loaded")
	return &m, nil
}

// UnmarshalJSON decodes a manifest keeping categories in document order.
func (m *Manifest) UnmarshalJSON(data []byte) error {
	var raw struct {
		Categories json.RawMessage `json:"categories"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	m.Categories = nil
	if len(raw.Categories) == 0 || string(raw.Categories) == "null" {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw.Categories))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("categories: expected object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		id, ok := tok.(string)
		if !ok {
			return fmt.Errorf("categories: expected key, got %v", tok)
		}

		var body struct {
			Sounds []SoundEntry `json:"sounds"`
		}
		if err := dec.Decode(&body); err != nil {
			return fmt.Errorf("category %q: %w", id, err)
		}
		m.Categories = append(m.Categories, Category{ID: id, Sounds: body.Sounds})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// Basename returns the final path component of a manifest file reference.
// References without a usable name ("", ".", "..", "/") return false.
func Basename(file string) (string, bool) {
	file = strings.ReplaceAll(file, "\\", "/")
	base := path.Base(file)
	switch base {
	case ".", "..", "/":
		return "", false
	}
	return base, true
}

// Basenames returns the distinct basenames referenced anywhere in m.
func (m *Manifest) Basenames() map[string]struct{} {
	set := make(map[string]struct{})
	for _, cat := range m.Categories {
		for _, s := range cat.Sounds {
			if name, ok := Basename(s.File); ok {
				set[name] = struct{}{}
			}
		}
	}
	return set
}
