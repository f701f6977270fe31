// Package chart turns a partition layout into a flat list of drawable
// elements.
//
// A [Chart] is the render contract between layout and output backends. It
// holds one [Element] per hierarchy node, in pre-order, and every field a
// backend needs: arc path data, fill, opacity, visibility and label
// placement. Elements refer to each other by index ([Element.Parent]), never
// by name, so repeated sibling names cannot collide.
//
// # Building
//
// [Build] takes a layout plus the spans to draw. Pass [partition.Retarget]
// output for a static zoomed snapshot, or a [zoom.View]'s Current slice for
// a frame in the middle of a tween:
//
//	spans := partition.Retarget(l, focus)
//	c := chart.Build(l, spans, chart.Options{Size: 928, Focus: focus})
//
// # Interaction
//
// [Chart.Highlight] returns the ancestor chain of a hovered element as a
// mask. Backends dim every element outside the mask.
//
// # Documents
//
// [Chart.Export] produces a serializable [Document] for JSON output and
// caching; [Import] turns it back into a Chart.
package chart
