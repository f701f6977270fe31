package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/sunburst/pkg/hierarchy"
	"github.com/matzehuels/sunburst/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the subtree value and own weight to node labels.
	// When false, only the node name is shown.
	Detailed bool

	// Fills holds one fill color per node, indexed by pre-order index.
	// Nodes without an entry are white.
	Fills []string

	// MaxDepth drops nodes deeper than this. Zero keeps every node.
	MaxDepth int
}

// ToDOT converts a hierarchy to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Zero-value nodes are drawn dashed, matching their empty arcs in the
// sunburst.
func ToDOT(root *hierarchy.Node, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.2;\n")
	buf.WriteString("\n")

	var edges []string
	root.Each(func(n *hierarchy.Node) {
		if opts.MaxDepth > 0 && n.Depth-root.Depth > opts.MaxDepth {
			return
		}
		fmt.Fprintf(&buf, "  n%d [%s];\n", n.Index, fmtAttrs(n, opts))
		if n != root {
			edges = append(edges, fmt.Sprintf("  n%d -> n%d;\n", n.Parent.Index, n.Index))
		}
	})

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *hierarchy.Node, detailed bool) string {
	if !detailed {
		return n.Name
	}
	label := n.Name + "\nvalue: " + humanize.Commaf(n.Value)
	if n.Weight != 0 && !n.IsLeaf() {
		label += "\nown: " + humanize.Commaf(n.Weight)
	}
	return label
}

func fmtAttrs(n *hierarchy.Node, opts Options) string {
	attrs := fmt.Sprintf("label=%q", fmtLabel(n, opts.Detailed))
	if n.Index < len(opts.Fills) && opts.Fills[n.Index] != "" {
		attrs += fmt.Sprintf(", fillcolor=%q", opts.Fills[n.Index])
	}
	if n.Value == 0 {
		attrs += ", style=\"rounded,filled,dashed\", fontcolor=grey40"
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with one
// that scales cleanly when embedded.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
