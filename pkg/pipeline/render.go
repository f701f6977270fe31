package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/sunburst/pkg/chart"
	"github.com/matzehuels/sunburst/pkg/hierarchy"
	"github.com/matzehuels/sunburst/pkg/palette"
	"github.com/matzehuels/sunburst/pkg/partition"
	"github.com/matzehuels/sunburst/pkg/render/nodelink"
	"github.com/matzehuels/sunburst/pkg/render/sink"
)

// Render generates output artifacts in the requested formats. Sunburst
// output is drawn from c; nodelink output is drawn from root.
func Render(ctx context.Context, c *chart.Chart, root *hierarchy.Node, opts Options) (map[string][]byte, error) {
	if opts.IsNodelink() {
		if root == nil {
			return nil, fmt.Errorf("nodelink render needs the hierarchy")
		}
		return renderNodelink(ctx, root, opts)
	}
	if c == nil {
		return nil, fmt.Errorf("sunburst render needs a chart")
	}
	return renderSunburst(ctx, c, opts)
}

// renderSunburst generates sunburst outputs.
func renderSunburst(ctx context.Context, c *chart.Chart, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(c, buildSVGOptions(opts)...)
		case FormatPNG:
			data, err = sink.RenderPNG(c, sink.WithScale(opts.Scale))
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, c)
		case FormatJSON:
			data, err = sink.RenderJSON(c)
		default:
			return nil, fmt.Errorf("unsupported sunburst format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if opts.Interactive {
		svgOpts = append(svgOpts, sink.WithInteraction())
	}
	if opts.Links != "" {
		svgOpts = append(svgOpts, sink.WithLinks(opts.Links), sink.WithCenterLink())
	}
	return svgOpts
}

// renderNodelink generates node-link outputs. The tree is laid out first so
// children appear in the same order and colors as in the sunburst.
func renderNodelink(ctx context.Context, root *hierarchy.Node, opts Options) (map[string][]byte, error) {
	work, err := clone(root)
	if err != nil {
		return nil, err
	}
	var popts []partition.Option
	if opts.NoSort {
		popts = append(popts, partition.WithoutSort())
	}
	l := partition.Build(work, popts...)
	dot := nodelink.ToDOT(l.Root, nodelink.Options{
		Detailed: opts.Detailed,
		Fills:    palette.ByTopAncestor(l),
	})

	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(ctx, dot, opts.Scale)
		case FormatPDF:
			data, err = nodelink.RenderPDF(ctx, dot)
		case FormatJSON:
			data, err = marshalHierarchy(l.Root)
		default:
			return nil, fmt.Errorf("unsupported nodelink format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
