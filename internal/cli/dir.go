package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nickagliano/hookplayer/internal/branding"
	"github.com/nickagliano/hookplayer/internal/config"
	"github.com/nickagliano/hookplayer/internal/pack"
)

func newDirCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dir",
		Short: "Print the sounds directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := a.soundsDir()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

func newSetDirCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set-dir <path>",
		Short: "Store a new sounds directory in the config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.config()
			if err != nil {
				return err
			}
			if err := store.SetSoundsDir(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sounds_dir set to %s\n", args[0])

			resolved := config.ResolveSoundsDir(args[0], "", a.home)
			if _, err := os.Stat(resolved); os.IsNotExist(err) {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: directory does not exist yet: %s\nCreate it manually or run '%s download <pack>' to populate it.\n",
					resolved, branding.CLIName())
			}
			return nil
		},
	}
}

func newPacksCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "packs",
		Short: "List packs installed in the sounds directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := a.soundsDir()
			if err != nil {
				return err
			}
			names, err := pack.ListInstalled(dir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, name := range names {
				fmt.Fprintf(out, "  %s\n", name)
			}
			fmt.Fprintf(out, "\n%d pack(s) installed\n", len(names))
			return nil
		},
	}
}
