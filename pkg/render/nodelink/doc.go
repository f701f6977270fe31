// Package nodelink renders a hierarchy as a traditional tree diagram.
//
// # Overview
//
// This package produces node-link visualizations using Graphviz, where
// every hierarchy node is a box and edges run from parent to child. It is
// an alternative to the sunburst for readers who want to see the exact
// structure rather than proportions.
//
// # Usage
//
// Convert a hierarchy to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(root, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # Options
//
//   - Detailed: node labels include the subtree value and own weight
//   - Fills: per-node fill colors indexed like the layout, usually from
//     [palette.ByTopAncestor], so both views share colors
//   - MaxDepth: nodes deeper than this are left out (0 keeps all)
//
// Node identifiers in the DOT source are pre-order indices, so repeated
// names in different branches stay distinct.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
//
// [palette.ByTopAncestor]: github.com/matzehuels/sunburst/pkg/palette.ByTopAncestor
package nodelink
