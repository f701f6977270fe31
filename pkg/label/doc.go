// Package label decides which arcs and labels are drawn and where labels go.
//
// Visibility works in ring units on a (possibly retargeted) span. A [Window]
// holds the rings on screen. The focus ring (depth 0) is never drawn as an
// arc because it is the clickable center:
//
//	visible = y0 >= MinRing && y1 <= MaxRing && x1 > x0
//
// A label also needs enough room: the area estimate (y1-y0)*(x1-x0) has to
// exceed a legibility threshold, [DefaultThreshold] by default.
//
// [TransformFor] places a label at the middle of its arc, rotated to follow
// the radius. Labels in the left half are flipped so text never reads upside
// down. [Wrap] breaks long names into lines of a few characters.
package label
