package arc

import (
	"math"

	"github.com/matzehuels/sunburst/pkg/partition"
)

const (
	epsilon = 1e-12
	halfPi  = math.Pi / 2
	tau     = 2 * math.Pi

	// DefaultPadCap is the largest angular pad between sectors, in radians.
	DefaultPadCap = 0.005

	// DefaultStrokeInset is subtracted from the outer radius so adjacent
	// rings do not touch.
	DefaultStrokeInset = 1.0
)

// Config holds the global radius and padding settings shared by all arcs.
type Config struct {
	RadiusScale float64 `json:"radius_scale" bson:"radius_scale"` // user units per ring
	StrokeInset float64 `json:"stroke_inset" bson:"stroke_inset"` // subtracted from the outer radius
	PadCap      float64 `json:"pad_cap" bson:"pad_cap"`           // maximum angular pad in radians
	PadRadius   float64 `json:"pad_radius" bson:"pad_radius"`     // radius at which the pad is measured
}

// DefaultConfig returns the standard configuration for the given ring
// size: one unit inset, 0.005 rad pad cap, pad radius of 1.5 rings.
func DefaultConfig(radiusScale float64) Config {
	return Config{
		RadiusScale: radiusScale,
		StrokeInset: DefaultStrokeInset,
		PadCap:      DefaultPadCap,
		PadRadius:   radiusScale * 1.5,
	}
}

// Sector is a span scaled to user units.
type Sector struct {
	InnerRadius float64
	OuterRadius float64
	StartAngle  float64
	EndAngle    float64
	PadAngle    float64
	PadRadius   float64
}

// SectorFor scales s by cfg.
func SectorFor(s partition.Span, cfg Config) Sector {
	inner := s.Y0 * cfg.RadiusScale
	outer := math.Max(inner, s.Y1*cfg.RadiusScale-cfg.StrokeInset)
	return Sector{
		InnerRadius: inner,
		OuterRadius: outer,
		StartAngle:  s.X0,
		EndAngle:    s.X1,
		PadAngle:    math.Min(s.Width()/2, cfg.PadCap),
		PadRadius:   cfg.PadRadius,
	}
}

// Empty reports whether the sector has no area to draw.
func (s Sector) Empty() bool {
	return !(s.EndAngle-s.StartAngle > epsilon) || !(s.OuterRadius > epsilon)
}

// Full reports whether the sector covers the whole circle.
func (s Sector) Full() bool {
	return math.Abs(s.EndAngle-s.StartAngle) > tau-epsilon
}

// Edges describes the padded boundary of a sector. Angles are canvas
// angles (zero at three o'clock, clockwise in screen space).
type Edges struct {
	Inner, Outer                   float64 // radii
	OuterStart, OuterEnd           float64
	InnerStart, InnerEnd           float64
	OuterCollapsed, InnerCollapsed bool
}

// Edges applies the pad to the sector's outer and inner arcs.
//
// The pad shrinks each arc by asin(padRadius/r * sin(pad/2)) on both
// sides. An arc too thin to survive the shrink collapses to its midpoint.
func (s Sector) Edges() Edges {
	r0, r1 := s.InnerRadius, s.OuterRadius
	if r1 < r0 {
		r0, r1 = r1, r0
	}
	a0 := s.StartAngle - halfPi
	a1 := s.EndAngle - halfPi
	da := math.Abs(a1 - a0)
	cw := a1 > a0

	e := Edges{
		Inner: r0, Outer: r1,
		OuterStart: a0, OuterEnd: a1,
		InnerStart: a0, InnerEnd: a1,
	}

	ap := s.PadAngle / 2
	if !(ap > epsilon) {
		return e
	}
	rp := s.PadRadius
	if rp <= 0 {
		rp = math.Sqrt(r0*r0 + r1*r1)
	}
	dir := 1.0
	if !cw {
		dir = -1
	}
	mid := (a0 + a1) / 2

	p0 := asin(rp / r0 * math.Sin(ap))
	if da-2*p0 > epsilon {
		e.InnerStart += p0 * dir
		e.InnerEnd -= p0 * dir
	} else {
		e.InnerStart, e.InnerEnd, e.InnerCollapsed = mid, mid, true
	}

	p1 := asin(rp / r1 * math.Sin(ap))
	if da-2*p1 > epsilon {
		e.OuterStart += p1 * dir
		e.OuterEnd -= p1 * dir
	} else {
		e.OuterStart, e.OuterEnd, e.OuterCollapsed = mid, mid, true
	}
	return e
}

// asin clamps its input to [-1, 1]; r0 may be zero, giving +Inf.
func asin(x float64) float64 {
	switch {
	case x >= 1:
		return halfPi
	case x <= -1:
		return -halfPi
	default:
		return math.Asin(x)
	}
}
