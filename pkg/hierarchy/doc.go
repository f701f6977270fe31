// Package hierarchy loads weighted trees for radial partition layouts.
//
// # Overview
//
// A sunburst chart is drawn from a rooted tree of named nodes where each
// node may carry a non-negative weight. This package turns a [Spec] (the
// raw, decoded document) into a validated tree of [Node] values with the
// derived fields every later stage relies on:
//
//   - Value: own weight plus the value of every child (bottom-up sum)
//   - Depth: distance from the root (root = 0)
//   - Height: longest distance to a leaf in the subtree
//   - Index: pre-order position, used as a stable handle by renderers
//
// # Loading
//
// Use [Load] with a decoded [Spec], or one of the readers:
//
//	root, err := hierarchy.ReadFile("flare.json")
//	if errors.Is(err, errors.ErrCodeMalformedHierarchy) {
//	    // negative weight, empty name, cycle ...
//	}
//
// Nodes without an explicit value have an own weight of 0. Load never
// coerces invalid input: negative or non-finite weights, empty names,
// cycles and nodes shared between two parents are rejected with a
// MALFORMED_HIERARCHY error naming the offending node path.
//
// # Input Formats
//
// [ReadJSON] and [ReadYAML] accept the same shape:
//
//	{"name": "flare", "children": [{"name": "a", "value": 3}, {"name": "b", "value": 1}]}
//
// [ReadFile] picks the decoder from the file extension.
package hierarchy
