package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nickagliano/hookplayer/internal/pack"
)

func newDownloadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "download <pack>",
		Short: "Download a pack's sounds into the sounds directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.registry()
			if err != nil {
				return err
			}
			soundsDir, err := a.soundsDir()
			if err != nil {
				return err
			}

			idx, err := client.FetchIndex(cmd.Context())
			if err != nil {
				return err
			}
			p, err := idx.Resolve(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Fetching manifest for '%s'...\n", p.DisplayName)

			installer := pack.NewInstaller(client, pack.WithProgress(func(file string, index, total int) {
				if index == 1 {
					fmt.Fprintf(out, "Downloading %d sounds into sounds/%s/\n", total, p.Name)
				}
				fmt.Fprintf(out, "  + %s\n", file)
			}))
			if _, err := installer.Install(cmd.Context(), *p, soundsDir); err != nil {
				return err
			}

			fmt.Fprintf(out, "Done. Pack '%s' installed.\n", p.Name)
			return nil
		},
	}
}
