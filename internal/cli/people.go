package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dsai-cliques/cliques/pkg/selection"
)

// peopleCommand creates the people command.
func (c *CLI) peopleCommand() *cobra.Command {
	cfg := defaultConfig()
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "people",
		Short: "List everyone in the network",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.resolveConfig(cmd, &cfg); err != nil {
				return err
			}
			snap, err := loadSnapshot(cmd.Context(), source(cfg))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					Options []string `json:"options"`
				}{selection.Options(snap.Network)})
			}
			fmt.Fprintln(out, renderPeopleTable(snap.Network))
			return nil
		},
	}

	addDatasetFlags(cmd, &cfg)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the selection control entries as JSON")
	return cmd
}
