// Package partition computes radial partition (sunburst) layouts.
//
// # Overview
//
// Given a loaded [hierarchy.Node] tree, [Build] assigns every node a
// [Span]: an angular interval [X0, X1) in radians and a radial interval
// [Y0, Y1] in ring units. The root always spans the full extent and the
// innermost ring; each child receives a slice of its parent's angular
// span proportional to its value:
//
//	child.X1 - child.X0 = (parent.X1 - parent.X0) * child.Value / parent.Value
//
// Radial spans depend on depth only (Y0 = depth, Y1 = depth + 1). Callers
// scale ring units to pixels when drawing, see package arc.
//
// Siblings are laid out in order after a stable sort by descending value
// (largest slice first), which keeps the picture stable between runs.
// Use [WithoutSort] to keep input order. Zero-value nodes collapse to zero
// width but keep a deterministic position in the ordering.
//
// # Focus Changes
//
// Zooming into a subtree does not recompute proportions. [Retarget]
// re-normalizes every base span against the focus node's span so the
// focus fills the full circle and rings shift inward by its depth:
//
//	x' = clamp((x - focus.X0) / (focus.X1 - focus.X0), 0, 1) * 2π
//	y' = max(0, y - focus.Depth)
//
// Because targets are always derived from the base layout, zooming into a
// node and back out to its parent reproduces the original spans exactly.
//
// # Flat Records
//
// A [Layout] stores spans in a slice indexed by the node's pre-order
// index, so renderers address nodes by integer handle rather than by
// name. Names are not unique in real datasets.
package partition
