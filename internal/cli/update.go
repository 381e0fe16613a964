package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nickagliano/hookplayer/internal/branding"
	"github.com/nickagliano/hookplayer/internal/updater"
)

func newUpdateCmd(a *app) *cobra.Command {
	var opts updater.RunOptions

	cmd := &cobra.Command{
		Use:     "update",
		Aliases: []string{"self-update"},
		Short:   "Update " + branding.CLIName() + " to the latest version",
		Long: `Downloads the release binary for this platform from GitHub releases, or
from a configured mirror, and replaces the running executable.

  ` + branding.CLIName() + ` update                  # update to latest
  ` + branding.CLIName() + ` update --check          # check only
  ` + branding.CLIName() + ` update --version 1.2.0  # install a specific version`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.updater()
			if err != nil {
				return err
			}
			exe, err := a.executable()
			if err != nil {
				return fmt.Errorf("update failed: %w", err)
			}

			errOut := cmd.ErrOrStderr()
			if opts.Version != "" {
				fmt.Fprintf(errOut, "Checking for version %s...\n", opts.Version)
			} else {
				fmt.Fprintln(errOut, "Checking for updates...")
			}

			res, err := u.Run(cmd.Context(), exe, errOut, opts)
			if err != nil {
				return fmt.Errorf("update failed: %w", err)
			}

			out := cmd.OutOrStdout()
			switch res.State {
			case updater.StateUpToDate:
				fmt.Fprintf(out, "You are on the latest version (%s)\n", res.Current)
			case updater.StateChecking:
				if updater.IsNewer(res.Latest, res.Current) {
					fmt.Fprintf(out, "Update available: %s -> %s\n", res.Current, res.Latest)
				} else {
					fmt.Fprintf(out, "You are on the latest version (%s)\n", res.Current)
				}
			case updater.StateUpdated:
				fmt.Fprintf(out, "Successfully updated to %s\n", res.Latest)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.CheckOnly, "check", false, "Only check for updates, don't install")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Force update even if already on latest version")
	cmd.Flags().StringVar(&opts.Version, "version", "", "Install a specific version (e.g., 1.2.0)")
	return cmd
}
