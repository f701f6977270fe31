package partition

import "math"

// Tau is a full turn in radians.
const Tau = 2 * math.Pi

// Span is the angular and radial extent of one node.
// X is in radians, Y in ring units (one ring per depth level).
type Span struct {
	X0 float64 `json:"x0" bson:"x0"`
	X1 float64 `json:"x1" bson:"x1"`
	Y0 float64 `json:"y0" bson:"y0"`
	Y1 float64 `json:"y1" bson:"y1"`
}

// Width returns the angular extent.
func (s Span) Width() float64 { return s.X1 - s.X0 }

// Thickness returns the radial extent.
func (s Span) Thickness() float64 { return s.Y1 - s.Y0 }

// MidAngle returns the angular midpoint in radians.
func (s Span) MidAngle() float64 { return (s.X0 + s.X1) / 2 }

// MidRadius returns the radial midpoint in ring units.
func (s Span) MidRadius() float64 { return (s.Y0 + s.Y1) / 2 }

// Area is the product of thickness and width, the legibility estimate
// used to decide whether a label fits.
func (s Span) Area() float64 { return s.Thickness() * s.Width() }

// Lerp interpolates linearly from s to to at t in [0, 1].
func (s Span) Lerp(to Span, t float64) Span {
	return Span{
		X0: s.X0 + (to.X0-s.X0)*t,
		X1: s.X1 + (to.X1-s.X1)*t,
		Y0: s.Y0 + (to.Y0-s.Y0)*t,
		Y1: s.Y1 + (to.Y1-s.Y1)*t,
	}
}

// ApproxEqual reports whether every bound of s and o differs by at most eps.
func (s Span) ApproxEqual(o Span, eps float64) bool {
	return math.Abs(s.X0-o.X0) <= eps && math.Abs(s.X1-o.X1) <= eps &&
		math.Abs(s.Y0-o.Y0) <= eps && math.Abs(s.Y1-o.Y1) <= eps
}
