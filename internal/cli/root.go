package cli

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/nickagliano/hookplayer/internal/branding"
	"github.com/nickagliano/hookplayer/internal/events"
)

// NewRootCmd creates the command tree.
func NewRootCmd(build BuildInfo, opts ...Option) *cobra.Command {
	a := newApp(build, opts...)

	rootCmd := &cobra.Command{
		Use:   branding.CLIName() + " [event]",
		Short: branding.Description(),
		Long: branding.DisplayName() + ` plays sounds from community packs in response to hook events.

Run it with an event name (start, stop, notify, permission, error) from
your editor or agent hooks. Unknown events fall back to "unknown".

  ` + branding.CLIName() + ` list           # browse packs in the registry
  ` + branding.CLIName() + ` download peon  # install a pack's sounds
  ` + branding.CLIName() + ` use peon       # map its sounds to events
  ` + branding.CLIName() + ` stop           # play a sound for "stop"`,
		Version:       build.Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.setupLogging(a.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			event := events.EventUnknown
			if len(args) > 0 {
				event = args[0]
			}
			return a.runPlay(cmd, event)
		},
	}

	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.Flags().BoolP("version", "V", false, "Print version and exit")
	rootCmd.SetVersionTemplate(branding.CLIName() + " {{.Version}}\n")

	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newDownloadCmd(a))
	rootCmd.AddCommand(newUseCmd(a))
	rootCmd.AddCommand(newPacksCmd(a))
	rootCmd.AddCommand(newDirCmd(a))
	rootCmd.AddCommand(newSetDirCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newUpdateCmd(a))
	rootCmd.AddCommand(newVersionCmd(a))

	return rootCmd
}

// Execute runs the command tree and prints any error as a single
// "hookplayer: <message>" line on stderr.
func Execute(version, commit, date string) error {
	rootCmd := NewRootCmd(BuildInfo{Version: version, Commit: commit, Date: date})
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", branding.CLIName(), err)
		return err
	}
	return nil
}

// runPlay plays one randomly chosen sound configured for event. An event
// with no sounds is silent; an empty events table also prints setup help.
func (a *app) runPlay(cmd *cobra.Command, event string) error {
	store, err := a.config()
	if err != nil {
		return err
	}
	cfg := store.Config()

	sounds := events.EventMap(cfg.Events).Lookup(event)
	if len(sounds) == 0 {
		if len(cfg.Events) == 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "%[1]s: no sounds configured.\nRun '%[1]s list' to browse packs, then '%[1]s use <pack>' to get started.\n", branding.CLIName())
		}
		log.Debug().Str("event", event).Msg("No sounds for event")
		return nil
	}

	dir, err := a.soundsDir()
	if err != nil {
		return err
	}

	chosen := sounds[rand.IntN(len(sounds))] //nolint:gosec // sound variety, not security
	path := filepath.Join(dir, filepath.FromSlash(chosen))
	log.Debug().Str("event", event).Str("path", path).Float64("volume", cfg.Volume).Msg("Playing")

	if err := a.play(cmd.Context(), path, cfg.Volume); err != nil {
		return fmt.Errorf("playback error: %w", err)
	}
	return nil
}
