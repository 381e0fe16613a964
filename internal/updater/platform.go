package updater

import (
	"fmt"

	"github.com/nickagliano/hookplayer/internal/branding"
	"github.com/nickagliano/hookplayer/internal/errors"
)

// Platform is the OS/architecture pair used in release asset names.
type Platform struct {
	OS   string // "macos" or "linux"
	Arch string // "x86_64", "aarch64", or GOARCH verbatim
}

// DetectPlatform maps Go's GOOS/GOARCH onto the release naming scheme.
// Only macOS and Linux binaries are published.
func DetectPlatform(goos, goarch string) (Platform, error) {
	var osName string
	switch goos {
	case "darwin":
		osName = "macos"
	case "linux":
		osName = "linux"
	default:
		return Platform{}, errors.Newf(errors.ErrUnsupportedPlatform, "unsupported OS: %s", goos)
	}

	arch := goarch
	switch goarch {
	case "amd64":
		arch = "x86_64"
	case "arm64":
		arch = "aarch64"
	}
	return Platform{OS: osName, Arch: arch}, nil
}

// AssetName returns the release asset name, e.g. "hookplayer-linux-x86_64".
func (p Platform) AssetName() string {
	return fmt.Sprintf("%s-%s-%s", branding.CLIName(), p.OS, p.Arch)
}

// assetURL builds the download URL for asset in the release tagged tag.
func (u *Updater) assetURL(tag, asset string) string {
	if u.mirror != "" {
		return u.mirror + "/" + asset
	}
	return fmt.Sprintf("%s/%s/releases/download/%s/%s", u.downloadBase, u.repo, tag, asset)
}
