package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	"github.com/rshade/idelinux/internal/discovery"
	"github.com/rshade/idelinux/internal/tui"
)

// newListCmd creates the list command.
func newListCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List editor installations, best last",
		Example: `  # Show a table of installations
  idelinux list

  # Machine-readable output
  idelinux list --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := a.discoverer()
			if err != nil {
				return err
			}

			ranked := discovery.Rank(d.All(cmd.Context()))
			if asJSON {
				return writeJSON(cmd, ranked)
			}
			cmd.Println(tui.RenderInstallations(ranked))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print installations as JSON")
	return cmd
}

// writeJSON prints v as indented JSON. A nil slice prints as [].
func writeJSON(cmd *cobra.Command, v []discovery.Installation) error {
	if v == nil {
		v = []discovery.Installation{}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding installations: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(pretty.Pretty(data))
	return err
}
