// Package pack downloads a pack's sound files into the local sounds
// directory and lists what is already installed there.
package pack

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"sort"

	"github.com/nickagliano/hookplayer/internal/errors"
	"github.com/nickagliano/hookplayer/internal/fetch"
	"github.com/nickagliano/hookplayer/internal/logging"
	"github.com/nickagliano/hookplayer/internal/registry"
)

// ManifestSource is the registry surface the installer needs.
// *registry.Client satisfies it.
type ManifestSource interface {
	BaseContentURL(p registry.Pack) string
	FetchManifest(ctx context.Context, baseURL string) (*registry.Manifest, error)
	Fetcher() *fetch.Client
}

// ProgressFunc is called after each sound file is written. index is
// 1-based.
type ProgressFunc func(file string, index, total int)

// Installer downloads packs.
type Installer struct {
	source   ManifestSource
	progress ProgressFunc
}

// Option configures an Installer.
type Option func(*Installer)

// WithProgress sets the per-file progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(i *Installer) {
		i.progress = fn
	}
}

// NewInstaller creates an Installer.
func NewInstaller(source ManifestSource, opts ...Option) *Installer {
	i := &Installer{source: source}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Install fetches p's manifest and downloads every distinct sound basename
// into destRoot/<p.Name>, overwriting existing files. Files are fetched one
// at a time in sorted order. A failure part way through leaves the files
// already written in place.
func (i *Installer) Install(ctx context.Context, p registry.Pack, destRoot string) (string, error) {
	logger := logging.GetLogger("pack")

	baseURL := i.source.BaseContentURL(p)
	m, err := i.source.FetchManifest(ctx, baseURL)
	if err != nil {
		return "", err
	}

	files := sortedNames(m.Basenames())

	outDir := filepath.Join(destRoot, p.Name)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", errors.Wrapf(err, errors.ErrIO, "creating %s", outDir)
	}

	logger.Info().Str("pack", p.Name).Int("files", len(files)).Str("dir", outDir).Msg("installing pack")

	fetcher := i.source.Fetcher()
	for n, file := range files {
		data, err := fetcher.Bytes(ctx, baseURL+"/sounds/"+url.PathEscape(file))
		if err != nil {
			return "", err
		}

		dest := filepath.Join(outDir, file)
		if err := os.WriteFile(dest, data, 0644); err != nil {
			return "", errors.Wrapf(err, errors.ErrIO, "writing %s", dest)
		}
		if i.progress != nil {
			i.progress(file, n+1, len(files))
		}
	}

	return outDir, nil
}

func sortedNames(set map[string]struct{}) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListInstalled returns the sorted names of the pack directories under
// soundsDir.
func ListInstalled(soundsDir string) ([]string, error) {
	entries, err := os.ReadDir(soundsDir)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrIO, "could not read sounds dir")
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
