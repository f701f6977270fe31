package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sunburst/pkg/chart"
	"github.com/matzehuels/sunburst/pkg/pipeline"
)

// visualizeCommand creates the visualize command for rendering from a layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		formatsStr  string
		output      string
		noCache     bool
		refresh     bool
		interactive bool
		links       string
		scale       float64
	)

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render a chart from a computed layout",
		Long: `Render a chart from a computed layout.

The visualize command takes a layout.json file (produced by 'layout') and
renders it to SVG, PNG or PDF. The layout carries every arc path, label and
color, so this step is purely about drawing.

Use 'render' as a shortcut to go directly from a dataset to visual output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{
				Formats:     parseFormats(formatsStr),
				VizType:     pipeline.VizTypeSunburst,
				Interactive: interactive,
				Links:       links,
				Scale:       scale,
				Refresh:     refresh,
				Logger:      c.Logger,
			}
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runVisualize(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple), - for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached results and recompute")
	cmd.Flags().BoolVar(&interactive, "interactive", true, "embed hover highlighting in SVG output")
	cmd.Flags().StringVar(&links, "links", "", "wrap clickable arcs in links, e.g. '?focus=%d'")
	cmd.Flags().Float64Var(&scale, "scale", pipeline.DefaultScale, "PNG scale factor")

	return cmd
}

// runVisualize loads the layout and renders it.
func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	ch, err := chart.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering sunburst...")
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, ch, nil, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	// "chart.layout.json" renders to "chart.svg", not "chart.layout.svg".
	base := strings.TrimSuffix(input, ".json")
	base = strings.TrimSuffix(base, ".layout")
	if err := writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     base + ".json",
		output:    output,
	}); err != nil {
		return err
	}
	if output != "-" {
		printStats(0, len(ch.Visible()), cacheHit)
	}
	return nil
}
