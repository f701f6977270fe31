// Package sink provides output format renderers for sunburst charts.
//
// # Overview
//
// A "sink" transforms a built [chart.Chart] into a final output format:
//
//   - SVG: scalable vector output, optionally interactive
//   - PNG: raster output drawn directly with gg
//   - PDF: print-ready output (requires rsvg-convert)
//   - JSON: the chart document for external tools and caching
//
// # SVG Output
//
// [RenderSVG] draws every visible element as a path and every visible
// label as centered text. The viewBox is centered on the origin, matching
// the coordinates produced by the arc package:
//
//	svg := sink.RenderSVG(c,
//	    sink.WithInteraction(),
//	    sink.WithLinks("?focus=%d"),
//	    sink.WithCenterLink(),
//	)
//
// # SVG Options
//
//   - [WithInteraction]: hovering an arc dims everything outside its
//     ancestor chain
//   - [WithLinks]: wraps clickable arcs in links that zoom into them
//   - [WithCenterLink]: links the center disc to the parent focus
//   - [WithInstanceID]: fixes the element id prefix (default derived from
//     chart content)
//
// Ancestor chains are written as index lists on each arc, so the script
// never looks elements up by name.
//
// # PNG and PDF Output
//
// [RenderPNG] rasterizes arcs with the same padded edges as the SVG path
// generator. [RenderPDF] converts the SVG with [render.ToPDF].
//
// [chart.Chart]: github.com/matzehuels/sunburst/pkg/chart.Chart
// [render.ToPDF]: github.com/matzehuels/sunburst/pkg/render.ToPDF
package sink
