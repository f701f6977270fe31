package partition

import (
	"github.com/matzehuels/sunburst/pkg/hierarchy"
)

// Layout is the result of a partition pass. Nodes, Spans and Parents are
// indexed by pre-order node index; Parents[0] is -1.
type Layout struct {
	Root    *hierarchy.Node
	Nodes   []*hierarchy.Node
	Spans   []Span
	Parents []int
	Extent  float64
}

// Option configures [Build].
type Option func(*config)

type config struct {
	extent float64
	sort   bool
}

// WithAngularExtent sets the angle covered by the root (default 2π).
// Non-positive values are ignored.
func WithAngularExtent(rad float64) Option {
	return func(c *config) {
		if rad > 0 {
			c.extent = rad
		}
	}
}

// WithoutSort keeps siblings in input order instead of descending value.
func WithoutSort() Option {
	return func(c *config) { c.sort = false }
}

// Build lays out the tree rooted at root. Sorting reorders children in
// place and refreshes node indices, so the tree must not be shared with a
// concurrent layout pass.
func Build(root *hierarchy.Node, opts ...Option) *Layout {
	cfg := config{extent: Tau, sort: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.sort {
		root.SortByValue()
	}

	nodes := root.Descendants()
	l := &Layout{
		Root:    root,
		Nodes:   nodes,
		Spans:   make([]Span, len(nodes)),
		Parents: make([]int, len(nodes)),
		Extent:  cfg.extent,
	}
	for i, n := range nodes {
		// Index doubles as the slice position below.
		n.Index = i
		if n.Parent == nil {
			l.Parents[i] = -1
		} else {
			l.Parents[i] = n.Parent.Index
		}
	}

	l.Spans[root.Index] = Span{X0: 0, X1: cfg.extent, Y0: 0, Y1: 1}
	for _, n := range nodes {
		l.divide(n)
	}
	return l
}

// divide hands out n's angular span to its children in order.
func (l *Layout) divide(n *hierarchy.Node) {
	if n.IsLeaf() {
		return
	}
	parent := l.Spans[n.Index]
	k := 0.0
	if n.Value > 0 {
		k = parent.Width() / n.Value
	}
	depth := float64(n.Depth - l.Root.Depth + 1)
	x := parent.X0
	last := -1
	for j, c := range n.Children {
		x1 := x + c.Value*k
		l.Spans[c.Index] = Span{X0: x, X1: x1, Y0: depth, Y1: depth + 1}
		if c.Value > 0 {
			last = j
		}
		x = x1
	}

	// Own weight leaves a gap on purpose; otherwise absorb rounding drift so
	// the last non-empty child ends exactly on the parent's bound.
	if n.Weight != 0 || last < 0 {
		return
	}
	l.Spans[n.Children[last].Index].X1 = parent.X1
	for _, c := range n.Children[last+1:] {
		l.Spans[c.Index].X0 = parent.X1
		l.Spans[c.Index].X1 = parent.X1
	}
}

// Len returns the number of nodes.
func (l *Layout) Len() int { return len(l.Nodes) }

// Node returns the node at index i.
func (l *Layout) Node(i int) *hierarchy.Node { return l.Nodes[i] }

// Children returns the indices of i's children in layout order.
func (l *Layout) Children(i int) []int {
	n := l.Nodes[i]
	out := make([]int, len(n.Children))
	for j, c := range n.Children {
		out[j] = c.Index
	}
	return out
}

// Ancestors returns i followed by every ancestor index up to the root.
func (l *Layout) Ancestors(i int) []int {
	var out []int
	for ; i >= 0; i = l.Parents[i] {
		out = append(out, i)
	}
	return out
}

// Valid reports whether i addresses a node of l.
func (l *Layout) Valid(i int) bool { return i >= 0 && i < len(l.Nodes) }
