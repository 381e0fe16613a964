package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List packs available in the registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.registry()
			if err != nil {
				return err
			}
			idx, err := client.FetchIndex(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, p := range idx.Packs {
				fmt.Fprintf(out, "  %-28s %s\n", p.Name, p.DisplayName)
			}
			fmt.Fprintf(out, "\n%d packs available\n", len(idx.Packs))
			return nil
		},
	}
}
