package arc

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/sunburst/pkg/partition"
)

// Path returns SVG path data for the span under cfg, centered on the
// origin. Zero-width spans return "".
func Path(s partition.Span, cfg Config) string {
	return SectorPath(SectorFor(s, cfg))
}

// SectorPath returns SVG path data for an already scaled sector.
func SectorPath(s Sector) string {
	if s.Empty() {
		return ""
	}
	var p pathBuilder
	e := s.Edges()

	if s.Full() {
		p.circle(e.Outer, false)
		if e.Inner > epsilon {
			p.circle(e.Inner, true)
		}
		return p.String()
	}

	p.moveTo(e.Outer*math.Cos(e.OuterStart), e.Outer*math.Sin(e.OuterStart))
	if !e.OuterCollapsed {
		p.arc(e.Outer, e.OuterStart, e.OuterEnd)
	}
	p.lineTo(e.Inner*math.Cos(e.InnerEnd), e.Inner*math.Sin(e.InnerEnd))
	if e.Inner > epsilon && !e.InnerCollapsed {
		p.arc(e.Inner, e.InnerEnd, e.InnerStart)
	}
	p.close()
	return p.String()
}

type pathBuilder struct {
	sb strings.Builder
}

func (p *pathBuilder) moveTo(x, y float64) {
	p.sb.WriteString("M")
	p.point(x, y)
}

func (p *pathBuilder) lineTo(x, y float64) {
	p.sb.WriteString("L")
	p.point(x, y)
}

// arc draws from the current point (at angle a0) to angle a1 on radius r.
// Increasing angles sweep clockwise on screen.
func (p *pathBuilder) arc(r, a0, a1 float64) {
	da := a1 - a0
	sweep := 1
	if da < 0 {
		sweep = 0
	}
	large := 0
	if math.Abs(da) > math.Pi {
		large = 1
	}
	p.sb.WriteString("A")
	p.sb.WriteString(num(r))
	p.sb.WriteString(",")
	p.sb.WriteString(num(r))
	p.sb.WriteString(",0,")
	p.sb.WriteString(strconv.Itoa(large))
	p.sb.WriteString(",")
	p.sb.WriteString(strconv.Itoa(sweep))
	p.sb.WriteString(",")
	p.point(r*math.Cos(a1), r*math.Sin(a1))
}

// circle draws a full ring as two half arcs starting at twelve o'clock.
// reverse sweeps counter-clockwise so an inner circle cuts a hole under
// the nonzero fill rule.
func (p *pathBuilder) circle(r float64, reverse bool) {
	sweep := "1"
	if reverse {
		sweep = "0"
	}
	rs := num(r)
	p.sb.WriteString("M0," + num(-r))
	p.sb.WriteString("A" + rs + "," + rs + ",0,1," + sweep + ",0," + rs)
	p.sb.WriteString("A" + rs + "," + rs + ",0,1," + sweep + ",0," + num(-r))
	p.sb.WriteString("Z")
}

func (p *pathBuilder) close() { p.sb.WriteString("Z") }

func (p *pathBuilder) point(x, y float64) {
	p.sb.WriteString(num(x))
	p.sb.WriteString(",")
	p.sb.WriteString(num(y))
}

func (p *pathBuilder) String() string { return p.sb.String() }

// num formats v with at most three decimals and no negative zero.
func num(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
