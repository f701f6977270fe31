package label

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/sunburst/pkg/partition"
)

const (
	// DefaultRings is the number of rings shown below the focus.
	DefaultRings = 2

	// DefaultThreshold is the minimum area estimate for a label.
	DefaultThreshold = 0.03

	// DefaultWrapWidth is the line budget used by Wrap, in characters.
	DefaultWrapWidth = 10
)

// Window is the band of rings currently on screen.
type Window struct {
	MinRing float64
	MaxRing float64
}

// WindowFor returns the window showing rings below the focus. rings <= 0
// shows every ring.
func WindowFor(rings int) Window {
	if rings <= 0 {
		return Window{MinRing: 1, MaxRing: math.Inf(1)}
	}
	return Window{MinRing: 1, MaxRing: float64(rings) + 1}
}

// Contains reports whether the radial band [y0, y1] lies within the window.
func (w Window) Contains(y0, y1 float64) bool {
	return y0 >= w.MinRing && y1 <= w.MaxRing
}

// ArcVisible reports whether s should be drawn inside w.
func ArcVisible(s partition.Span, w Window) bool {
	return w.Contains(s.Y0, s.Y1) && s.X1 > s.X0
}

// LabelVisible reports whether the label of s fits: the arc is visible and
// its area estimate exceeds threshold.
func LabelVisible(s partition.Span, w Window, threshold float64) bool {
	return ArcVisible(s, w) && s.Area() > threshold
}

// Transform positions a label. Angle is in degrees from twelve o'clock.
type Transform struct {
	Angle  float64 `json:"angle" bson:"angle"`
	Radius float64 `json:"radius" bson:"radius"`
	Flip   bool    `json:"flip,omitempty" bson:"flip,omitempty"`
}

// TransformFor returns the label transform for s with rings of scale user
// units.
func TransformFor(s partition.Span, scale float64) Transform {
	angle := s.MidAngle() * 180 / math.Pi
	return Transform{
		Angle:  angle,
		Radius: s.MidRadius() * scale,
		Flip:   angle >= 180,
	}
}

// String renders t as an SVG transform attribute value.
func (t Transform) String() string {
	flip := "0"
	if t.Flip {
		flip = "180"
	}
	var sb strings.Builder
	sb.WriteString("rotate(")
	sb.WriteString(fmtNum(t.Angle - 90))
	sb.WriteString(") translate(")
	sb.WriteString(fmtNum(t.Radius))
	sb.WriteString(",0) rotate(")
	sb.WriteString(flip)
	sb.WriteString(")")
	return sb.String()
}

// Rotation returns the total clockwise rotation in radians applied by t,
// for rasterizers that draw the text themselves.
func (t Transform) Rotation() float64 {
	r := (t.Angle - 90) * math.Pi / 180
	if t.Flip {
		r += math.Pi
	}
	return r
}

func fmtNum(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
