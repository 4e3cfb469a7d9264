package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dsai-cliques/cliques/pkg/errors"
	"github.com/dsai-cliques/cliques/pkg/pipeline"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	cfg := defaultConfig()
	var format string

	cmd := &cobra.Command{
		Use:   "inspect <name>",
		Short: "Show the detail panel for one person",
		Long: `Show the detail panel for one person: origin, native language and every
direct connection with its relationship type.`,
		Example: `  cliques inspect Ann
  cliques inspect Ann --format markdown
  cliques inspect "(none)" --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.resolveConfig(cmd, &cfg); err != nil {
				return err
			}
			ctx := cmd.Context()
			snap, err := loadSnapshot(ctx, source(cfg))
			if err != nil {
				return err
			}

			runner := pipeline.NewRunner(nil, nil, c.Logger)
			res, err := runner.Select(ctx, snap, args[0], cfg.SceneOptions())
			out := cmd.OutOrStdout()

			switch format {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if encErr := enc.Encode(res.Panel); encErr != nil {
					return encErr
				}
			case "markdown":
				fmt.Fprint(out, res.Panel.Markdown())
			case "text", "":
				fmt.Fprintln(out, renderPanel(res.Panel))
			default:
				return errors.New(errors.ErrCodeInvalidInput, "unknown format %q (want text, markdown or json)", format)
			}
			return err
		},
	}

	addDatasetFlags(cmd, &cfg)
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, markdown, json")
	return cmd
}
