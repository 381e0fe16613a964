package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nickagliano/hookplayer/internal/errors"
	"github.com/nickagliano/hookplayer/internal/events"
)

func newUseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "use <pack>[,pack2,...]",
		Short: "Map the sounds of one or more packs to events",
		Long: `Builds the [events] table from the manifests of the named packs and
replaces the table in the config file. Packs are merged in the order given.
Nothing is written if any pack cannot be resolved or fetched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := splitPackNames(args[0])
			if len(names) == 0 {
				return errors.New(errors.ErrInvalidInput, "no pack names given")
			}

			store, err := a.config()
			if err != nil {
				return err
			}
			table, err := events.DefaultTable().With(store.Config().Categories)
			if err != nil {
				return err
			}
			client, err := a.registry()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Configuring events from: %s\n", strings.Join(names, ", "))

			m, err := events.NewBuilder(client, table).Build(cmd.Context(), names)
			if err != nil {
				return err
			}
			if err := store.SetEvents(m); err != nil {
				return err
			}

			fmt.Fprintln(out, "Done. Config updated.")
			return nil
		},
	}
}

// splitPackNames splits a comma-separated list, trimming blanks.
func splitPackNames(arg string) []string {
	var names []string
	for _, name := range strings.Split(arg, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}
