package updater

import (
	"net/http"
	"runtime"
	"strings"

	"github.com/nickagliano/hookplayer/internal/branding"
)

const (
	githubAPIBase      = "https://api.github.com"
	githubDownloadBase = "https://github.com"
)

// Release represents a GitHub release.
type Release struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
	// Version is TagName with its leading prefix character removed.
	Version string `json:"-"`
}

// Updater provides self-update functionality.
type Updater struct {
	currentVersion string
	httpClient     *http.Client
	repo           string
	apiBase        string
	downloadBase   string
	mirror         string
	goos           string
	goarch         string
}

// Option configures an Updater.
type Option func(*Updater)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(u *Updater) {
		u.httpClient = c
	}
}

// WithMirror sets a mirror URL for downloading release assets. Assets are
// fetched from <mirror>/<asset-name>.
func WithMirror(mirror string) Option {
	return func(u *Updater) {
		u.mirror = strings.TrimRight(mirror, "/")
	}
}

// WithRepo overrides the "owner/repo" releases are read from.
func WithRepo(repo string) Option {
	return func(u *Updater) {
		u.repo = repo
	}
}

// WithAPIBase overrides the GitHub API root.
func WithAPIBase(base string) Option {
	return func(u *Updater) {
		u.apiBase = strings.TrimRight(base, "/")
	}
}

// WithDownloadBase overrides the host release assets are downloaded from.
func WithDownloadBase(base string) Option {
	return func(u *Updater) {
		u.downloadBase = strings.TrimRight(base, "/")
	}
}

// WithPlatform overrides the detected GOOS/GOARCH.
func WithPlatform(goos, goarch string) Option {
	return func(u *Updater) {
		u.goos = goos
		u.goarch = goarch
	}
}

// New creates an Updater with the given current version and options.
func New(currentVersion string, opts ...Option) *Updater {
	u := &Updater{
		currentVersion: currentVersion,
		httpClient:     http.DefaultClient,
		repo:           branding.GitHubRepo(),
		apiBase:        githubAPIBase,
		downloadBase:   githubDownloadBase,
		goos:           runtime.GOOS,
		goarch:         runtime.GOARCH,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}
