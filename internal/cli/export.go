package cli

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dsai-cliques/cliques/pkg/errors"
	"github.com/dsai-cliques/cliques/pkg/pipeline"
	"github.com/dsai-cliques/cliques/pkg/render/nodelink"
)

// Export formats.
const (
	formatJSON = "json"
	formatDOT  = "dot"
	formatSVG  = "svg"
	formatPNG  = "png"
)

type exportOptions struct {
	person  string
	format  string
	output  string
	noCache bool
}

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	cfg := defaultConfig()
	var opts exportOptions

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export one render pass as JSON, DOT, SVG or PNG",
		Long: `Export the panel and scene of one render pass.

json writes the full render result (panel and vis-network scene). dot writes
the scene as an undirected Graphviz graph, and svg and png lay that graph out
with Graphviz in-process.`,
		Example: `  cliques export --format json > scene.json
  cliques export --person Ann --format svg -o ann.svg
  cliques export --person Ann --format png -o ann.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.resolveConfig(cmd, &cfg); err != nil {
				return err
			}
			return c.runExport(cmd, cfg, opts)
		},
	}

	addDatasetFlags(cmd, &cfg)
	addSceneFlags(cmd, &cfg)
	cmd.Flags().StringVarP(&opts.person, "person", "p", "", "name of the person to select")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatJSON, "output format: json, dot, svg, png")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the export cache")

	return cmd
}

func (c *CLI) runExport(cmd *cobra.Command, cfg Config, opts exportOptions) error {
	ctx := cmd.Context()
	switch opts.format {
	case formatJSON, formatDOT, formatSVG, formatPNG:
	default:
		return errors.New(errors.ErrCodeUnsupported, "unknown format %q (want json, dot, svg or png)", opts.format)
	}

	snap, err := loadSnapshot(ctx, source(cfg))
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := runner.Select(ctx, snap, opts.person, cfg.SceneOptions())
	if err != nil {
		return err
	}

	var data []byte
	switch opts.format {
	case formatJSON:
		data, err = json.MarshalIndent(res, "", "  ")
		data = append(data, '\n')
	case formatDOT:
		data = []byte(nodelink.ToDOT(res.Scene))
	case formatSVG, formatPNG:
		data, err = exportImage(cmd, runner, res, opts.format)
	}
	if err != nil {
		return err
	}

	return writeOutput(cmd.OutOrStdout(), opts.output, data)
}

func exportImage(cmd *cobra.Command, runner *pipeline.Runner, res pipeline.Result, format string) ([]byte, error) {
	spinner := newSpinnerWithContext(cmd.Context(), "Laying out graph...")
	spinner.Start()
	data, err := runner.Export(cmd.Context(), res.Scene, format)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return nil, err
	}
	spinner.Stop()
	return data, nil
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	printSuccess("Exported")
	printFile(path)
	return nil
}
