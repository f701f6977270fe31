package sink

import (
	"bytes"
	"fmt"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/sunburst/pkg/arc"
	"github.com/matzehuels/sunburst/pkg/chart"
	"github.com/matzehuels/sunburst/pkg/palette"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale      float64
	background string
	labels     bool
	highlight  int
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithBackground fills the image with a hex color before drawing. The
// default background is transparent.
func WithBackground(hex string) PNGOption {
	return func(r *pngRenderer) { r.background = hex }
}

// WithoutLabels skips label text.
func WithoutLabels() PNGOption {
	return func(r *pngRenderer) { r.labels = false }
}

// WithHighlight draws the chart as if element i were hovered.
func WithHighlight(i int) PNGOption {
	return func(r *pngRenderer) { r.highlight = i }
}

// RenderPNG rasterizes c. Unlike [RenderPDF] it needs no external tools.
func RenderPNG(c *chart.Chart, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0, labels: true, highlight: -1}
	for _, opt := range opts {
		opt(&r)
	}

	side := int(math.Ceil(c.Size * r.scale))
	if side <= 0 {
		return nil, fmt.Errorf("invalid image size %d", side)
	}
	dc := gg.NewContext(side, side)
	if r.background != "" {
		cr, cg, cb, _ := palette.RGBA(r.background, 1)
		dc.SetRGB(cr, cg, cb)
		dc.Clear()
	}

	center := float64(side) / 2
	mask := c.Highlight(r.highlight)
	for _, e := range c.Elements {
		if !e.Visible {
			continue
		}
		opacity := e.FillOpacity
		if mask != nil && !mask[e.Index] {
			opacity *= chart.DimmedOpacity
		}
		cr, cg, cb, ca := palette.RGBA(e.Fill, opacity)
		dc.SetRGBA(cr, cg, cb, ca)
		drawSector(dc, center, r.scale, arc.SectorFor(e.Span, c.Arc))
		dc.Fill()
	}

	if r.labels {
		drawLabels(dc, c, center, r.scale)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// drawSector appends the padded sector outline to the current path.
func drawSector(dc *gg.Context, center, scale float64, s arc.Sector) {
	if s.Empty() {
		return
	}
	e := s.Edges()
	outer, inner := e.Outer*scale, e.Inner*scale

	if s.Full() {
		dc.NewSubPath()
		dc.DrawArc(center, center, outer, 0, 2*math.Pi)
		dc.ClosePath()
		if inner > 0 {
			dc.NewSubPath()
			dc.DrawArc(center, center, inner, 2*math.Pi, 0)
			dc.ClosePath()
		}
		return
	}

	dc.NewSubPath()
	dc.DrawArc(center, center, outer, e.OuterStart, e.OuterEnd)
	if inner > 0 {
		dc.DrawArc(center, center, inner, e.InnerEnd, e.InnerStart)
	} else {
		dc.LineTo(center, center)
	}
	dc.ClosePath()
}

func drawLabels(dc *gg.Context, c *chart.Chart, center, scale float64) {
	dc.SetRGB(0, 0, 0)
	_, lh := dc.MeasureString("M")
	for _, e := range c.Elements {
		if !e.Label.Visible || len(e.Label.Lines) == 0 {
			continue
		}
		t := e.Label.Transform
		theta := (t.Angle - 90) * math.Pi / 180
		x := center + t.Radius*scale*math.Cos(theta)
		y := center + t.Radius*scale*math.Sin(theta)

		dc.Push()
		dc.RotateAbout(t.Rotation(), x, y)
		top := y - float64(len(e.Label.Lines)-1)*lh*lineHeight/2
		for i, line := range e.Label.Lines {
			dc.DrawStringAnchored(line, x, top+float64(i)*lh*lineHeight, 0.5, 0.5)
		}
		dc.Pop()
	}
}
