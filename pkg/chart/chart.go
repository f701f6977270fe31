package chart

import (
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/matzehuels/sunburst/pkg/arc"
	"github.com/matzehuels/sunburst/pkg/label"
	"github.com/matzehuels/sunburst/pkg/palette"
	"github.com/matzehuels/sunburst/pkg/partition"
)

// Fill opacities.
const (
	BranchOpacity = 0.6
	LeafOpacity   = 0.4

	// DimmedOpacity is applied to elements outside a highlight.
	DimmedOpacity = 0.3
)

// DefaultSize is the side of the square viewport in user units.
const DefaultSize = 928.0

// Options control how a layout becomes a chart. Zero values select the
// defaults from the label and arc packages.
type Options struct {
	Size           float64 // viewport side (default 928)
	Rings          int     // rings below the focus; 0 selects 2, negative shows all
	LabelThreshold float64 // minimum area for a label (default 0.03)
	WrapWidth      int     // label line budget in characters (default 10)
	PadCap         float64 // maximum angular pad (default 0.005)
	StrokeInset    float64 // outer radius inset (default 1)
	Focus          int     // index of the node filling the view
	Fills          []string
}

// WithDefaults returns o with zero fields replaced by defaults.
func (o Options) WithDefaults() Options {
	if o.Size <= 0 {
		o.Size = DefaultSize
	}
	if o.Rings == 0 {
		o.Rings = label.DefaultRings
	}
	if o.LabelThreshold <= 0 {
		o.LabelThreshold = label.DefaultThreshold
	}
	if o.WrapWidth <= 0 {
		o.WrapWidth = label.DefaultWrapWidth
	}
	if o.PadCap <= 0 {
		o.PadCap = arc.DefaultPadCap
	}
	if o.StrokeInset <= 0 {
		o.StrokeInset = arc.DefaultStrokeInset
	}
	return o
}

// Label is the placed text of an element.
type Label struct {
	Lines     []string        `json:"lines,omitempty" bson:"lines,omitempty"`
	Transform label.Transform `json:"transform" bson:"transform"`
	Visible   bool            `json:"visible" bson:"visible"`
}

// Element is one drawable arc.
type Element struct {
	Index       int            `json:"index" bson:"index"`
	Parent      int            `json:"parent" bson:"parent"`
	Depth       int            `json:"depth" bson:"depth"`
	Name        string         `json:"name" bson:"name"`
	Title       string         `json:"title" bson:"title"`
	Value       float64        `json:"value" bson:"value"`
	Span        partition.Span `json:"span" bson:"span"`
	Path        string         `json:"path,omitempty" bson:"path,omitempty"`
	Fill        string         `json:"fill" bson:"fill"`
	FillOpacity float64        `json:"fill_opacity" bson:"fill_opacity"`
	Visible     bool           `json:"visible" bson:"visible"`
	Clickable   bool           `json:"clickable,omitempty" bson:"clickable,omitempty"`
	Label       Label          `json:"label" bson:"label"`
}

// Chart is the flat render contract for one frame.
type Chart struct {
	Elements []Element
	Size     float64 // viewport side
	Radius   float64 // user units per ring
	Rings    int     // negative when every ring is shown
	Focus    int
	Back     int // focus restored by a center click
	Arc      arc.Config
}

// Build assembles a chart from l drawn at spans. spans must be indexed like
// l.Spans; pass l.Spans for the unzoomed chart.
func Build(l *partition.Layout, spans []partition.Span, opts Options) *Chart {
	opts = opts.WithDefaults()
	if !l.Valid(opts.Focus) {
		opts.Focus = 0
	}

	c := &Chart{
		Elements: make([]Element, len(l.Nodes)),
		Size:     opts.Size,
		Rings:    opts.Rings,
		Focus:    opts.Focus,
		Back:     partition.ParentFocus(l, opts.Focus),
	}
	c.Radius = opts.Size / 2 / float64(c.visibleRings(l)+1)

	fills := opts.Fills
	if len(fills) != len(l.Nodes) {
		fills = palette.ByTopAncestor(l)
	}
	win := label.WindowFor(opts.Rings)
	cfg := arc.Config{
		RadiusScale: c.Radius,
		StrokeInset: opts.StrokeInset,
		PadCap:      opts.PadCap,
		PadRadius:   c.Radius * 1.5,
	}
	c.Arc = cfg

	for i, n := range l.Nodes {
		s := spans[i]
		e := Element{
			Index:  i,
			Parent: l.Parents[i],
			Depth:  n.Depth,
			Name:   n.Name,
			Title:  n.Path() + "\n" + formatValue(n.Value),
			Value:  n.Value,
			Span:   s,
			Fill:   fills[i],
		}
		if label.ArcVisible(s, win) {
			e.Visible = true
			e.Path = arc.Path(s, cfg)
			e.FillOpacity = LeafOpacity
			if !n.IsLeaf() {
				e.FillOpacity = BranchOpacity
			}
			e.Clickable = partition.ZoomTarget(l, i)
		}
		e.Label = Label{
			Transform: label.TransformFor(s, c.Radius),
			Visible:   label.LabelVisible(s, win, opts.LabelThreshold),
		}
		if e.Label.Visible {
			e.Label.Lines = label.Wrap(n.Name, opts.WrapWidth)
		}
		c.Elements[i] = e
	}
	return c
}

// visibleRings is the ring count used to size the chart.
func (c *Chart) visibleRings(l *partition.Layout) int {
	if c.Rings > 0 {
		return c.Rings
	}
	return max(l.Nodes[c.Focus].Height, 1)
}

// Highlight returns a mask marking i and its ancestors, as shown while i
// is hovered. It returns nil when i is out of range.
func (c *Chart) Highlight(i int) []bool {
	if i < 0 || i >= len(c.Elements) {
		return nil
	}
	mask := make([]bool, len(c.Elements))
	for j := i; j >= 0; j = c.Elements[j].Parent {
		mask[j] = true
	}
	return mask
}

// Ancestors returns the indices of i's ancestors from the root down to i.
func (c *Chart) Ancestors(i int) []int {
	var out []int
	for j := i; j >= 0 && j < len(c.Elements); j = c.Elements[j].Parent {
		out = append(out, j)
	}
	for a, b := 0, len(out)-1; a < b; a, b = a+1, b-1 {
		out[a], out[b] = out[b], out[a]
	}
	return out
}

// Visible returns the visible elements in pre-order.
func (c *Chart) Visible() []Element {
	out := make([]Element, 0, len(c.Elements))
	for _, e := range c.Elements {
		if e.Visible {
			out = append(out, e)
		}
	}
	return out
}

// CenterTitle returns the title shown on the center disc: the focus path.
func (c *Chart) CenterTitle() string {
	if len(c.Elements) == 0 {
		return ""
	}
	title := c.Elements[c.Focus].Title
	if i := strings.IndexByte(title, '\n'); i >= 0 {
		return title[:i]
	}
	return title
}

func formatValue(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return humanize.Comma(int64(v))
	}
	return humanize.Commaf(v)
}
