package updater

import (
	"context"

	"github.com/nickagliano/hookplayer/internal/logging"
)

// DownloadBinary fetches the raw executable published in release for this
// updater's platform. Platform detection runs first, so an unsupported OS
// fails before any asset request is made.
func (u *Updater) DownloadBinary(ctx context.Context, release *Release) ([]byte, error) {
	p, err := DetectPlatform(u.goos, u.goarch)
	if err != nil {
		return nil, err
	}

	url := u.assetURL(release.TagName, p.AssetName())
	logger := logging.GetLogger("updater")
	logger.Debug().Str("asset", p.AssetName()).Str("url", url).Msg("downloading release asset")

	return u.fetcher(false).Bytes(ctx, url)
}
