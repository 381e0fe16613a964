package updater

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/nickagliano/hookplayer/internal/branding"
	"github.com/nickagliano/hookplayer/internal/errors"
	"github.com/nickagliano/hookplayer/internal/fetch"
)

// CheckLatestVersion fetches the latest published release.
func (u *Updater) CheckLatestVersion(ctx context.Context) (*Release, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", u.apiBase, u.repo)
	return u.fetchRelease(ctx, url)
}

// CheckSpecificVersion fetches a release by version. The version must be a
// valid semantic version; a leading "v" is accepted.
func (u *Updater) CheckSpecificVersion(ctx context.Context, version string) (*Release, error) {
	if _, err := semver.NewVersion(version); err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid version %q", version)
	}
	tag := version
	if !strings.HasPrefix(tag, "v") {
		tag = "v" + tag
	}
	url := fmt.Sprintf("%s/repos/%s/releases/tags/%s", u.apiBase, u.repo, tag)
	return u.fetchRelease(ctx, url)
}

func (u *Updater) fetchRelease(ctx context.Context, url string) (*Release, error) {
	var release Release
	if err := u.fetcher(true).JSON(ctx, url, &release); err != nil {
		return nil, err
	}
	if release.TagName == "" {
		return nil, errors.New(errors.ErrParse, "missing tag_name in GitHub response")
	}
	release.Version = VersionFromTag(release.TagName)
	return &release, nil
}

// fetcher builds a GET client. API requests carry the GitHub headers and
// GITHUB_TOKEN when set, for higher rate limits.
func (u *Updater) fetcher(api bool) *fetch.Client {
	opts := []fetch.Option{
		fetch.WithHTTPClient(u.httpClient),
		fetch.WithUserAgent(branding.CLIName()),
	}
	if api {
		opts = append(opts, fetch.WithHeader("Accept", "application/vnd.github+json"))
		if token := os.Getenv("GITHUB_TOKEN"); token != "" {
			opts = append(opts, fetch.WithHeader("Authorization", "token "+token))
		}
	}
	return fetch.New(opts...)
}
