package partition

import "math"

// Retarget computes the span of every node when focus fills the view.
//
// Angular bounds are re-normalized against the focus span, clamped to
// [0, 1] and scaled back to the full extent; radial bounds shift inward
// by the focus depth and floor at zero. Nodes outside the focus subtree
// collapse onto the edges of the circle. Retarget is a pure function of
// the base layout: Retarget(l, 0) returns the base spans.
func Retarget(l *Layout, focus int) []Span {
	out := make([]Span, len(l.Spans))
	if !l.Valid(focus) {
		focus = 0
	}
	p := l.Spans[focus]
	depth := p.Y0
	width := p.Width()

	for i, s := range l.Spans {
		if width <= 0 {
			// A zero-width focus cannot be a zoom target; keep geometry.
			out[i] = s
			continue
		}
		out[i] = Span{
			X0: clamp01((s.X0-p.X0)/width) * l.Extent,
			X1: clamp01((s.X1-p.X0)/width) * l.Extent,
			Y0: math.Max(0, s.Y0-depth),
			Y1: math.Max(0, s.Y1-depth),
		}
	}
	return out
}

// ZoomTarget reports whether i may become the focus. Only nodes with
// children and a non-zero angular width qualify; for anything else the
// caller keeps its current focus.
func ZoomTarget(l *Layout, i int) bool {
	if !l.Valid(i) {
		return false
	}
	return !l.Nodes[i].IsLeaf() && l.Spans[i].Width() > 0
}

// ParentFocus returns the focus that a click on the center restores: the
// parent of focus, or the root when focus is already the root.
func ParentFocus(l *Layout, focus int) int {
	if !l.Valid(focus) || l.Parents[focus] < 0 {
		return 0
	}
	return l.Parents[focus]
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
