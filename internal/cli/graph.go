package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shardline/pkg/activation"
	"github.com/matzehuels/shardline/pkg/depgraph"
	"github.com/matzehuels/shardline/pkg/errors"
	"github.com/matzehuels/shardline/pkg/restore"
)

// Output formats for the graph command.
const (
	formatDOT = "dot"
	formatSVG = "svg"
)

type graphOpts struct {
	inputOpts
	format   string
	output   string
	activate bool
}

func (c *CLI) graphCommand() *cobra.Command {
	opts := graphOpts{format: formatDOT}

	cmd := &cobra.Command{
		Use:   "graph <dataset>",
		Short: "Export the dependency graph as DOT or SVG",
		Long: `Export a dataset's dependency graph in Graphviz DOT or rendered SVG.

Modules referenced as dependents but never declared are drawn dashed. With
--activate the modules reached from the start module are highlighted and
numbered in activation order.

Examples:
  shardline graph vault.toml > vault.dot
  shardline graph vault.toml --format svg -o vault.svg --activate`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd.Context(), cmd.OutOrStdout(), args[0], &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format (dot, svg)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.activate, "activate", false, "highlight the activation order")

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, w io.Writer, path string, opts *graphOpts) error {
	if err := errors.ValidateFormat(opts.format, formatDOT, formatSVG); err != nil {
		return err
	}

	ds, p, err := opts.load(ctx, path)
	if err != nil {
		return err
	}
	g := ds.Graph()

	var dotOpts depgraph.DOTOptions
	if opts.activate {
		start, err := restore.StartModule(p, ds)
		if err != nil {
			return err
		}
		dotOpts.Highlight, _ = activation.Activator{Message: p.Message}.Activate(g, start)
	}

	data := []byte(depgraph.ToDOT(g, dotOpts))
	if opts.format == formatSVG {
		spinner := newSpinnerWithContext(ctx, c.status, "Rendering SVG...")
		spinner.Start()
		data, err = depgraph.RenderSVG(ctx, string(data))
		if err != nil {
			spinner.StopWithError("Render failed")
			return err
		}
		spinner.Stop()
	}

	if opts.output == "" {
		_, err = w.Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess(w, "Wrote %s graph (%d modules, %d edges)", opts.format, g.Len(), g.EdgeCount())
	printFile(w, opts.output)
	return nil
}
