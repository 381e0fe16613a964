// Package player plays a sound file by running the platform's command-line
// audio player and waiting for it to finish.
package player

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/nickagliano/hookplayer/internal/errors"
	"github.com/nickagliano/hookplayer/internal/logging"
)

// candidates lists audio players per GOOS in preference order.
var candidates = map[string][]string{
	"darwin": {"afplay", "ffplay"},
	"linux":  {"paplay", "ffplay", "aplay"},
}

// LookPathFunc resolves a command name to an executable path.
type LookPathFunc func(name string) (string, error)

// RunFunc runs a resolved command to completion.
type RunFunc func(ctx context.Context, bin string, args []string) error

// Player plays files through an external audio command.
type Player struct {
	goos     string
	lookPath LookPathFunc
	run      RunFunc
}

// Option configures a Player.
type Option func(*Player)

// WithGOOS overrides the detected operating system.
func WithGOOS(goos string) Option {
	return func(p *Player) { p.goos = goos }
}

// WithLookPath replaces exec.LookPath (useful for testing).
func WithLookPath(f LookPathFunc) Option {
	return func(p *Player) { p.lookPath = f }
}

// WithRunner replaces process execution (useful for testing).
func WithRunner(f RunFunc) Option {
	return func(p *Player) { p.run = f }
}

// New creates a Player for the current platform.
func New(opts ...Option) *Player {
	p := &Player{
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
		run:      runCommand,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Play plays path at volume (0.0 to 1.0) with the default Player.
func Play(ctx context.Context, path string, volume float64) error {
	return New().Play(ctx, path, volume)
}

// Play blocks until the sound at path has finished playing.
func (p *Player) Play(ctx context.Context, path string, volume float64) error {
	if _, err := os.Stat(path); err != nil {
		return errors.Wrapf(err, errors.ErrPlayback, "opening %s", path)
	}

	name, bin, err := p.detect()
	if err != nil {
		return err
	}

	args := Args(name, path, volume)
	logger := logging.GetLogger("player")
	logger.Debug().Str("command", bin).Strs("args", args).Msg("playing sound")

	if err := p.run(ctx, bin, args); err != nil {
		return errors.Wrapf(err, errors.ErrPlayback, "playing %s", path)
	}
	return nil
}

// detect returns the first available audio player for the platform.
func (p *Player) detect() (name, bin string, err error) {
	names, ok := candidates[p.goos]
	if !ok {
		return "", "", errors.Newf(errors.ErrPlayback, "no audio player for %s", p.goos)
	}
	for _, name := range names {
		if bin, err := p.lookPath(name); err == nil {
			return name, bin, nil
		}
	}
	return "", "", errors.Newf(errors.ErrPlayback, "no audio player found (tried %s)", strings.Join(names, ", "))
}

// Args builds the argument list for audio command name playing path.
// aplay has no volume control and always plays at full level.
func Args(name, path string, volume float64) []string {
	volume = max(0, min(1, volume))
	switch name {
	case "afplay":
		return []string{"-v", fmt.Sprintf("%.2f", volume), path}
	case "paplay":
		return []string{fmt.Sprintf("--volume=%d", int(volume*65536)), path}
	case "ffplay":
		return []string{"-nodisp", "-autoexit", "-loglevel", "quiet", "-volume", fmt.Sprintf("%d", int(volume*100)), path}
	case "aplay":
		return []string{"-q", path}
	default:
		return []string{path}
	}
}

func runCommand(ctx context.Context, bin string, args []string) error {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}
