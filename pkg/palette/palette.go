// Package palette assigns fill colors to sunburst arcs.
//
// Every arc takes the color of its top-level ancestor, so a branch reads as
// one hue at every depth. Colors are evenly spaced stops of a cubehelix
// rainbow; the rainbow is cyclic, so n branches use n+1 stops and never
// reuse the first hue for the last branch.
package palette

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/sunburst/pkg/partition"
)

// Cubehelix basis.
const (
	chA = -0.14861
	chB = +1.78277
	chC = -0.29227
	chD = -0.90649
	chE = +1.97294
)

// Rainbow returns the cyclic cubehelix rainbow color at t. Values outside
// [0, 1] wrap around.
func Rainbow(t float64) colorful.Color {
	if t < 0 || t > 1 {
		t -= math.Floor(t)
	}
	ts := math.Abs(t - 0.5)
	return cubehelix(360*t-100, 1.5-1.5*ts, 0.8-0.9*ts)
}

// cubehelix converts hue (degrees), saturation and lightness to RGB.
func cubehelix(h, s, l float64) colorful.Color {
	h = (h + 120) * math.Pi / 180
	a := s * l * (1 - l)
	cosh, sinh := math.Cos(h), math.Sin(h)
	return colorful.Color{
		R: l + a*(chA*cosh+chB*sinh),
		G: l + a*(chC*cosh+chD*sinh),
		B: l + a*(chE*cosh),
	}.Clamped()
}

// Quantize returns n evenly spaced rainbow stops as hex strings, from t=0
// to t=1 inclusive.
func Quantize(n int) []string {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []string{Rainbow(0).Hex()}
	}
	out := make([]string, n)
	for i := range out {
		out[i] = Rainbow(float64(i) / float64(n-1)).Hex()
	}
	return out
}

// ByTopAncestor returns one fill per node of l, indexed like l.Spans. The
// k-th child of the root and all of its descendants get stop k; the root
// gets the first stop.
func ByTopAncestor(l *partition.Layout) []string {
	stops := Quantize(len(l.Root.Children) + 1)
	top := make(map[int]int, len(l.Root.Children))
	for k, c := range l.Root.Children {
		top[c.Index] = k
	}

	fills := make([]string, len(l.Nodes))
	for i := range l.Nodes {
		fills[i] = stops[0]
		// Walk up to the node whose parent is the root.
		j := i
		for j >= 0 && l.Parents[j] > 0 {
			j = l.Parents[j]
		}
		if k, ok := top[j]; ok {
			fills[i] = stops[k]
		}
	}
	return fills
}

// Dim blends hex toward white by amount in [0, 1]. Invalid input is
// returned unchanged.
func Dim(hex string, amount float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	amount = math.Max(0, math.Min(1, amount))
	return c.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, amount).Clamped().Hex()
}

// RGBA parses hex into components in [0, 1] with the given alpha, for
// raster backends.
func RGBA(hex string, alpha float64) (r, g, b, a float64) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0, 0, 0, alpha
	}
	return c.R, c.G, c.B, alpha
}
