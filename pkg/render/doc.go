// Package render turns charts into files.
//
// # Overview
//
// This package holds format conversion shared by all renderers. The
// subpackages do the drawing:
//
//   - [sink]: sunburst output (SVG, PNG, PDF, JSON) from a [chart.Chart]
//   - [nodelink]: the same hierarchy as a Graphviz tree diagram
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG with the external rsvg-convert tool
// (from librsvg):
//
//	svg := sink.RenderSVG(c, sink.WithInteraction())
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)
//
// When rsvg-convert is missing the error carries the UNSUPPORTED code and
// install instructions. [sink.RenderPNG] does not need it: it rasterizes
// arcs directly.
//
// [sink]: github.com/matzehuels/sunburst/pkg/render/sink
// [nodelink]: github.com/matzehuels/sunburst/pkg/render/nodelink
// [chart.Chart]: github.com/matzehuels/sunburst/pkg/chart.Chart
package render
