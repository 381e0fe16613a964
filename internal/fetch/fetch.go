// Package fetch performs the plain HTTP GETs used by the registry, pack
// installer, and updater, mapping failures onto the shared error codes.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/nickagliano/hookplayer/internal/errors"
	"github.com/nickagliano/hookplayer/internal/logging"
)

// DefaultUserAgent is sent on every request unless overridden.
const DefaultUserAgent = "hookplayer"

// Client issues GET requests. The zero value is not usable; call New.
type Client struct {
	httpClient *http.Client
	userAgent  string
	headers    map[string]string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(cl *Client) {
		cl.userAgent = ua
	}
}

// WithHeader adds a header sent with every request.
func WithHeader(key, value string) Option {
	return func(cl *Client) {
		cl.headers[key] = value
	}
}

// New creates a Client.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
		userAgent:  DefaultUserAgent,
		headers:    map[string]string{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Bytes fetches url and returns the full response body. Transport errors
// and non-2xx statuses are reported as errors.ErrNetwork.
func (c *Client) Bytes(ctx context.Context, url string) ([]byte, error) {
	logger := logging.GetLogger("fetch")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrNetwork, "creating request for %s", url)
	}
	req.Header.Set("User-Agent", c.userAgent)
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	logger.Debug().Str("url", url).Msg("GET")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrNetwork, "fetching %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Newf(errors.ErrNetwork, "fetching %s: server returned status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrNetwork, "reading response from %s", url)
	}

	logger.Trace().Str("url", url).Int("bytes", len(body)).Msg("response received")
	return body, nil
}

// JSON fetches url and decodes the body into v. Decode failures are
// reported as errors.ErrParse.
func (c *Client) JSON(ctx context.Context, url string, v any) error {
	body, err := c.Bytes(ctx, url)
	if err != nil {
		return err
	}
	return Decode(body, url, v)
}

// Decode unmarshals body into v, labelling failures with source.
func Decode(body []byte, source string, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return errors.Wrap(err, errors.ErrParse, fmt.Sprintf("parsing %s", source))
	}
	return nil
}
