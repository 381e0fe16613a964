package updater

import (
	"context"
	"fmt"
	"io"

	"github.com/nickagliano/hookplayer/internal/logging"
)

// State is a step of the update state machine.
type State int

const (
	StateChecking State = iota
	StateUpToDate
	StateDownloading
	StateReplacing
	StateUpdated
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateChecking:
		return "checking"
	case StateUpToDate:
		return "up-to-date"
	case StateDownloading:
		return "downloading"
	case StateReplacing:
		return "replacing"
	case StateUpdated:
		return "updated"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Result describes where an update run stopped.
type Result struct {
	State   State
	Current string
	Latest  string
	// FailedIn is the state that was active when the run failed.
	FailedIn State
}

// RunOptions tunes a single run.
type RunOptions struct {
	// Version pins the release to install instead of the latest one.
	Version string
	// Force reinstalls even when the release is not newer.
	Force bool
	// CheckOnly stops after Checking, reporting availability.
	CheckOnly bool
}

// Run drives Checking → UpToDate, or Checking → Downloading → Replacing →
// Updated, replacing the binary at exePath. Any error ends in StateFailed
// and is returned alongside the result. Progress lines are written to w.
func (u *Updater) Run(ctx context.Context, exePath string, w io.Writer, opts RunOptions) (*Result, error) {
	logger := logging.GetLogger("updater")
	res := &Result{State: StateChecking, Current: u.currentVersion}

	fail := func(err error) (*Result, error) {
		res.FailedIn = res.State
		res.State = StateFailed
		logger.Debug().Err(err).Str("state", res.FailedIn.String()).Msg("update failed")
		return res, err
	}

	var release *Release
	var err error
	if opts.Version != "" {
		release, err = u.CheckSpecificVersion(ctx, opts.Version)
	} else {
		release, err = u.CheckLatestVersion(ctx)
	}
	if err != nil {
		return fail(err)
	}
	res.Latest = release.Version

	newer := IsNewer(release.Version, u.currentVersion)
	if opts.CheckOnly || (!newer && !opts.Force) {
		if !newer {
			res.State = StateUpToDate
		}
		return res, nil
	}

	fmt.Fprintf(w, "Update available: %s -> %s\n", u.currentVersion, release.Version)

	res.State = StateDownloading
	data, err := u.DownloadBinary(ctx, release)
	if err != nil {
		return fail(err)
	}

	res.State = StateReplacing
	if err := ReplaceExecutable(exePath, data); err != nil {
		return fail(err)
	}

	res.State = StateUpdated
	logger.Info().Str("from", u.currentVersion).Str("to", release.Version).Msg("binary replaced")
	return res, nil
}
