package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sunburst/pkg/pipeline"
)

// renderCommand creates the render command: dataset in, chart files out.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags       chartFlags
		formatsStr  string
		vizType     string
		output      string
		noCache     bool
		refresh     bool
		interactive bool
		links       string
		scale       float64
		detailed    bool
	)

	cmd := &cobra.Command{
		Use:   "render [dataset]",
		Short: "Render a hierarchy to SVG, PNG, PDF or JSON",
		Long: `Render a hierarchy to SVG, PNG, PDF or JSON.

The dataset is a JSON or YAML document of nested {name, value, children}
objects. The default output is <dataset>.svg next to the input; with several
formats each gets its own extension.

Use --type nodelink for a Graphviz tree diagram of the same hierarchy.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd, flags)
			opts.Input = args[0]
			opts.VizType = vizType
			opts.Formats = parseFormats(formatsStr)
			opts.Interactive = interactive
			opts.Links = links
			opts.Scale = scale
			opts.Detailed = detailed
			opts.Refresh = refresh
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), opts, output, noCache)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple), - for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVarP(&vizType, "type", "t", pipeline.VizTypeSunburst, "visualization type: sunburst, nodelink")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached results and recompute")
	cmd.Flags().BoolVar(&interactive, "interactive", true, "embed hover highlighting in SVG output")
	cmd.Flags().StringVar(&links, "links", "", "wrap clickable arcs in links, e.g. '?focus=%d'")
	cmd.Flags().Float64Var(&scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "show values in node labels (nodelink)")

	return cmd
}

// runRender executes the full pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", opts.Input))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     opts.Input,
		output:    output,
	}); err != nil {
		return err
	}
	if output == "-" {
		return nil
	}
	printStats(result.Stats.NodeCount, result.Stats.Visible, result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	return nil
}

// artifactWriteParams describes where rendered artifacts go.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	suffix    string // inserted before the extension, e.g. ".nodelink"
}

// writeArtifacts writes each format to its own file. A single format goes
// to output verbatim; several formats share output as base path.
func writeArtifacts(p artifactWriteParams) error {
	formats := p.formats
	if len(formats) == 0 {
		for f := range p.artifacts {
			formats = append(formats, f)
		}
		sort.Strings(formats)
	}

	if p.output == "-" {
		if len(formats) != 1 {
			return fmt.Errorf("stdout output needs exactly one format, got %d", len(formats))
		}
		_, err := os.Stdout.Write(p.artifacts[formats[0]])
		return err
	}

	for _, format := range formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}
		path := p.output
		if path == "" || len(formats) > 1 {
			path = basePath(p.output, p.input) + p.suffix + "." + format
		}
		if err := writeFile(path, data); err != nil {
			return err
		}
		printFile(path)
	}
	printSuccess("Render complete")
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func writeFile(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty or "-", it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
