// Package pkg provides the core libraries for sunburst charts.
//
// # Overview
//
// A sunburst draws a weighted hierarchy as concentric rings. Each node is an
// arc whose angle is proportional to its aggregate value and whose ring is
// its depth. Clicking an arc zooms in so that node fills the circle; clicking
// the center zooms back out to its parent. The pkg directory is organized
// into four areas:
//
//  1. Model: [hierarchy] and [partition] (tree loading and the radial layout)
//  2. Geometry: [arc], [label], [palette] and [zoom]
//  3. Output: [chart] (the flat render contract) and [render] (SVG, PNG,
//     PDF, JSON and Graphviz sinks)
//  4. Orchestration: [pipeline], [cache], [server], [config] and [routes]
//
// # Architecture
//
// The typical data flow:
//
//	JSON / YAML dataset
//	         ↓
//	    [hierarchy] package (validate, aggregate values)
//	         ↓
//	    [partition] package (angles and rings, focus retargeting)
//	         ↓
//	    [chart] package (arc paths, labels, colors)
//	         ↓
//	    SVG/PNG/PDF/JSON output
//
// # Quick Start
//
// Load a dataset and render it zoomed into one node:
//
//	import (
//	    "github.com/matzehuels/sunburst/pkg/chart"
//	    "github.com/matzehuels/sunburst/pkg/hierarchy"
//	    "github.com/matzehuels/sunburst/pkg/partition"
//	    "github.com/matzehuels/sunburst/pkg/render/sink"
//	)
//
//	root, _ := hierarchy.ReadFile("flare.yaml")
//	l := partition.Build(root)
//
//	n, _ := l.Root.Lookup("flare/animate")
//	c := chart.Build(l, partition.Retarget(l, n.Index), chart.Options{Focus: n.Index})
//
//	svg := sink.RenderSVG(c, sink.WithInteraction())
//
// The [pipeline] package wraps these steps with validation, caching and
// observability hooks, and is what the CLI and the HTTP viewer use.
//
// # Main Packages
//
// [hierarchy] - Dataset model. Reads JSON or YAML trees of {name, value,
// children}, rejects negative or non-finite weights, and computes value,
// depth and height for every node.
//
// [partition] - The radial partition. Assigns every node an angular span
// proportional to its value and a ring equal to its depth, and rescales
// spans so that a focused node covers the full circle.
//
// [arc] - Padded annular sector geometry and SVG path data.
//
// [label] - Label visibility window, placement transform and word wrapping.
//
// [palette] - Cubehelix rainbow colors assigned per top-level branch.
//
// [zoom] - Animated focus transitions between two partitions.
//
// [chart] - The flat list of drawable elements for one frame, with
// hover highlighting and a versioned JSON document form.
//
// [render] - Output sinks. [render/sink] writes SVG, PNG, PDF and JSON;
// [render/nodelink] draws the same hierarchy as a Graphviz tree.
//
// [routes] - The route selector overlay shown next to the chart.
//
// [pipeline] - Load → layout → render orchestration with caching.
//
// [cache] - File, Redis and MongoDB caches for layouts and artifacts.
//
// [server] - The HTTP viewer with live reload.
//
// [config] - TOML configuration.
//
// [observability] - Hooks for logging and metrics.
//
// [hierarchy]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/hierarchy
// [partition]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/partition
// [arc]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/arc
// [label]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/label
// [palette]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/palette
// [zoom]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/zoom
// [chart]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/chart
// [render]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/render/sink
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/render/nodelink
// [routes]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/routes
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/cache
// [server]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/server
// [config]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/observability
package pkg
