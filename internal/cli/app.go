package cli

import (
	"context"
	"net/http"
	"os"

	"github.com/nickagliano/hookplayer/internal/branding"
	"github.com/nickagliano/hookplayer/internal/config"
	"github.com/nickagliano/hookplayer/internal/logging"
	"github.com/nickagliano/hookplayer/internal/platform"
	"github.com/nickagliano/hookplayer/internal/player"
	"github.com/nickagliano/hookplayer/internal/registry"
	"github.com/nickagliano/hookplayer/internal/updater"
)

// BuildInfo is injected via ldflags at build time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// PlayFunc plays the file at path.
type PlayFunc func(ctx context.Context, path string, volume float64) error

// Option configures the command tree.
type Option func(*app)

// WithHTTPClient sets the HTTP client used for registry and release
// requests.
func WithHTTPClient(c *http.Client) Option {
	return func(a *app) { a.httpClient = c }
}

// WithRegistryOptions appends registry client options after the ones
// derived from config.
func WithRegistryOptions(opts ...registry.Option) Option {
	return func(a *app) { a.registryOpts = append(a.registryOpts, opts...) }
}

// WithUpdaterOptions appends updater options after the ones derived from
// config.
func WithUpdaterOptions(opts ...updater.Option) Option {
	return func(a *app) { a.updaterOpts = append(a.updaterOpts, opts...) }
}

// WithPlayer replaces audio playback.
func WithPlayer(fn PlayFunc) Option {
	return func(a *app) { a.play = fn }
}

// WithExecutable sets the binary that update replaces instead of the
// running one.
func WithExecutable(path string) Option {
	return func(a *app) { a.exePath = path }
}

// WithLogSetup replaces logging.Setup.
func WithLogSetup(fn func(verbosity int)) Option {
	return func(a *app) { a.setupLogging = fn }
}

// app holds per-invocation state shared by commands. Config is loaded on
// first use so commands that never touch it cannot fail on a bad file.
type app struct {
	build     BuildInfo
	verbosity int

	httpClient   *http.Client
	registryOpts []registry.Option
	updaterOpts  []updater.Option
	play         PlayFunc
	exePath      string
	setupLogging func(int)

	home  string
	store *config.Store
}

func newApp(build BuildInfo, opts ...Option) *app {
	a := &app{
		build:        build,
		play:         player.Play,
		setupLogging: logging.Setup,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *app) homeDir() (string, error) {
	if a.home != "" {
		return a.home, nil
	}
	home, err := platform.HomeDir()
	if err != nil {
		return "", err
	}
	a.home = home
	return home, nil
}

// config loads the settings file once per invocation.
func (a *app) config() (*config.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	home, err := a.homeDir()
	if err != nil {
		return nil, err
	}
	store, err := config.Load(config.Path(os.Getenv(branding.EnvVar("config")), home))
	if err != nil {
		return nil, err
	}
	a.store = store
	return store, nil
}

// soundsDir resolves the effective sounds directory, honouring
// HOOKPLAYER_SOUNDS_DIR.
func (a *app) soundsDir() (string, error) {
	store, err := a.config()
	if err != nil {
		return "", err
	}
	return config.ResolveSoundsDir(store.Config().SoundsDir, os.Getenv(branding.EnvVar("sounds_dir")), a.home), nil
}

// registry builds a registry client. HOOKPLAYER_REGISTRY_URL overrides the
// configured index URL.
func (a *app) registry() (*registry.Client, error) {
	store, err := a.config()
	if err != nil {
		return nil, err
	}
	indexURL := store.Config().RegistryURL
	if env := os.Getenv(branding.EnvVar("registry_url")); env != "" {
		indexURL = env
	}
	opts := []registry.Option{registry.WithIndexURL(indexURL)}
	if a.httpClient != nil {
		opts = append(opts, registry.WithHTTPClient(a.httpClient))
	}
	opts = append(opts, a.registryOpts...)
	return registry.NewClient(opts...), nil
}

// updater builds an Updater. HOOKPLAYER_MIRROR overrides the configured
// mirror.
func (a *app) updater() (*updater.Updater, error) {
	store, err := a.config()
	if err != nil {
		return nil, err
	}
	mirror := store.Config().Mirror
	if env := os.Getenv(branding.EnvVar("mirror")); env != "" {
		mirror = env
	}

	var opts []updater.Option
	if mirror != "" {
		opts = append(opts, updater.WithMirror(mirror))
	}
	if a.httpClient != nil {
		opts = append(opts, updater.WithHTTPClient(a.httpClient))
	}
	opts = append(opts, a.updaterOpts...)
	return updater.New(a.build.Version, opts...), nil
}

func (a *app) executable() (string, error) {
	if a.exePath != "" {
		return a.exePath, nil
	}
	return platform.Executable()
}
