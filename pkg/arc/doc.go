// Package arc turns partition spans into annulus-sector path data.
//
// A node's [partition.Span] is mapped to a [Sector] by scaling ring units
// to user units:
//
//	inner = Y0 * RadiusScale
//	outer = max(inner, Y1 * RadiusScale - StrokeInset)
//
// so arcs never have negative thickness, even mid-zoom. Neighboring thin
// sectors get an angular pad of min((X1-X0)/2, PadCap), split evenly on
// both sides. The pad is measured at PadRadius, which keeps the gap
// between sectors the same width on the inner and outer edge.
//
// [Path] renders a sector as SVG path data. Angles run clockwise from
// twelve o'clock. Zero-width spans produce an empty string, never an error.
// Output is a pure function of span and [Config]: numbers are rounded to
// three decimals so repeated calls return identical bytes.
package arc
