package registry

import (
	"context"
	"net/http"
	"strings"

	"github.com/nickagliano/hookplayer/internal/branding"
	"github.com/nickagliano/hookplayer/internal/errors"
	"github.com/nickagliano/hookplayer/internal/fetch"
	"github.com/nickagliano/hookplayer/internal/logging"
)

// DefaultContentBase is the raw-content host pack sources are served from.
const DefaultContentBase = "https://raw.githubusercontent.com"

// Client fetches the registry index and pack manifests.
type Client struct {
	fetcher     *fetch.Client
	indexURL    string
	contentBase string
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	httpClient  *http.Client
	indexURL    string
	contentBase string
}

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = c
	}
}

// WithIndexURL overrides the registry index URL. An empty value keeps the
// default.
func WithIndexURL(url string) Option {
	return func(o *clientOptions) {
		if url != "" {
			o.indexURL = url
		}
	}
}

// WithContentBase overrides the raw-content host used to build pack base
// URLs.
func WithContentBase(base string) Option {
	return func(o *clientOptions) {
		if base != "" {
			o.contentBase = base
		}
	}
}

// NewClient creates a registry client.
func NewClient(opts ...Option) *Client {
	o := clientOptions{
		indexURL:    branding.RegistryURL(),
		contentBase: DefaultContentBase,
	}
	for _, opt := range opts {
		opt(&o)
	}

	var fetchOpts []fetch.Option
	if o.httpClient != nil {
		fetchOpts = append(fetchOpts, fetch.WithHTTPClient(o.httpClient))
	}
	fetchOpts = append(fetchOpts, fetch.WithUserAgent(branding.CLIName()))

	return &Client{
		fetcher:     fetch.New(fetchOpts...),
		indexURL:    o.indexURL,
		contentBase: strings.TrimRight(o.contentBase, "/"),
	}
}

// Fetcher exposes the underlying GET client so the pack installer shares
// the same transport settings.
func (c *Client) Fetcher() *fetch.Client {
	return c.fetcher
}

// FetchIndex downloads and validates the registry index.
func (c *Client) FetchIndex(ctx context.Context) (*Index, error) {
	logger := logging.GetLogger("registry")

	body, err := c.fetcher.Bytes(ctx, c.indexURL)
	if err != nil {
		return nil, err
	}
	if err := validate(&indexSchema, body, "registry index"); err != nil {
		return nil, err
	}

	var idx Index
	if err := fetch.Decode(body, "registry index", &idx); err != nil {
		return nil, err
	}

	logger.Debug().Int("packs", len(idx.Packs)).Str("url", c.indexURL).Msg("registry index loaded")
	return &idx, nil
}

// Resolve returns the pack whose name equals name exactly.
func (idx *Index) Resolve(name string) (*Pack, error) {
	for i := range idx.Packs {
		if idx.Packs[i].Name == name {
			return &idx.Packs[i], nil
		}
	}
	return nil, errors.Newf(errors.ErrNotFound, "pack '%s' not found in registry", name)
}
