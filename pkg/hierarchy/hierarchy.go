package hierarchy

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/matzehuels/sunburst/pkg/errors"
)

// Spec is the raw description of a hierarchy node as found in a dataset.
// Value is optional; a nil Value means an own weight of 0.
type Spec struct {
	Name     string   `json:"name" yaml:"name"`
	Value    *float64 `json:"value,omitempty" yaml:"value,omitempty"`
	Children []*Spec  `json:"children,omitempty" yaml:"children,omitempty"`
}

// Weight returns a pointer to v, for building a [Spec] in code.
func Weight(v float64) *float64 { return &v }

// Node is a validated hierarchy node with its derived aggregates.
//
// The tree is owned by whoever runs the layout pass: [Node.SortByValue]
// reorders children in place and reassigns Index.
type Node struct {
	Name     string
	Weight   float64 // own weight
	Value    float64 // Weight plus the Value of every child
	Depth    int     // root = 0
	Height   int     // longest distance to a leaf
	Index    int     // pre-order position
	Parent   *Node
	Children []*Node
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// IsRoot reports whether n has no parent.
func (n *Node) IsRoot() bool { return n.Parent == nil }

// Ancestors returns n followed by its parent chain up to the root.
func (n *Node) Ancestors() []*Node {
	out := make([]*Node, 0, n.Depth+1)
	for cur := n; cur != nil; cur = cur.Parent {
		out = append(out, cur)
	}
	return out
}

// PathNames returns the node names from the root down to n.
func (n *Node) PathNames() []string {
	anc := n.Ancestors()
	names := make([]string, len(anc))
	for i, a := range anc {
		names[len(anc)-1-i] = a.Name
	}
	return names
}

// Path returns the slash-joined [Node.PathNames].
func (n *Node) Path() string { return strings.Join(n.PathNames(), "/") }

// Descendants returns n and every node below it in pre-order.
func (n *Node) Descendants() []*Node {
	var out []*Node
	n.Each(func(d *Node) { out = append(out, d) })
	return out
}

// Each calls fn for n and every descendant in pre-order.
func (n *Node) Each(fn func(*Node)) {
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(cur)
		for i := len(cur.Children) - 1; i >= 0; i-- {
			stack = append(stack, cur.Children[i])
		}
	}
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	c := 0
	n.Each(func(*Node) { c++ })
	return c
}

// Lookup finds the first node (pre-order) whose path from n matches the
// slash-separated path. The first segment must match n itself.
func (n *Node) Lookup(path string) (*Node, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) == 0 || parts[0] != n.Name {
		return nil, false
	}
	return lookup(n, parts[1:])
}

func lookup(n *Node, rest []string) (*Node, bool) {
	if len(rest) == 0 {
		return n, true
	}
	for _, c := range n.Children {
		if c.Name != rest[0] {
			continue
		}
		if found, ok := lookup(c, rest[1:]); ok {
			return found, true
		}
	}
	return nil, false
}

// SortByValue orders every child list by descending value and reassigns
// pre-order indices. The sort is stable, so ties keep input order and
// repeated calls are no-ops.
func (n *Node) SortByValue() {
	n.Each(func(d *Node) {
		slices.SortStableFunc(d.Children, func(a, b *Node) int {
			return cmp.Compare(b.Value, a.Value)
		})
	})
	n.reindex()
}

func (n *Node) reindex() {
	i := 0
	n.Each(func(d *Node) {
		d.Index = i
		i++
	})
}

// Load validates spec and builds the node tree with computed aggregates.
// Invalid input is rejected with an error coded MALFORMED_HIERARCHY.
func Load(spec *Spec) (*Node, error) {
	if spec == nil {
		return nil, errors.New(errors.ErrCodeMalformedHierarchy, "hierarchy is empty")
	}
	l := loader{
		onPath: make(map[*Spec]bool),
		seen:   make(map[*Spec]bool),
	}
	root, err := l.build(spec, nil, nil)
	if err != nil {
		return nil, err
	}
	root.reindex()
	return root, nil
}

type loader struct {
	onPath map[*Spec]bool
	seen   map[*Spec]bool
}

func (l *loader) build(s *Spec, parent *Node, path []string) (*Node, error) {
	path = append(path, s.Name)
	where := strings.Join(path, "/")

	if l.onPath[s] {
		return nil, errors.New(errors.ErrCodeMalformedHierarchy, "cycle at %s", where)
	}
	if l.seen[s] {
		return nil, errors.New(errors.ErrCodeMalformedHierarchy, "node %s has more than one parent", where)
	}
	if err := errors.ValidateNodeName(s.Name); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedHierarchy, err, "invalid name under %s", parentPath(path))
	}

	var w float64
	if s.Value != nil {
		w = *s.Value
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, errors.New(errors.ErrCodeMalformedHierarchy, "non-finite weight at %s", where)
		}
		if w < 0 {
			return nil, errors.New(errors.ErrCodeMalformedHierarchy, "negative weight %g at %s", w, where)
		}
	}

	l.onPath[s] = true
	l.seen[s] = true
	defer delete(l.onPath, s)

	n := &Node{Name: s.Name, Weight: w, Value: w, Parent: parent}
	if parent != nil {
		n.Depth = parent.Depth + 1
	}
	n.Children = make([]*Node, 0, len(s.Children))
	for i, cs := range s.Children {
		if cs == nil {
			return nil, errors.New(errors.ErrCodeMalformedHierarchy, "child %d of %s is null", i, where)
		}
		c, err := l.build(cs, n, path)
		if err != nil {
			return nil, err
		}
		n.Value += c.Value
		n.Height = max(n.Height, c.Height+1)
		n.Children = append(n.Children, c)
	}
	return n, nil
}

func parentPath(path []string) string {
	if len(path) <= 1 {
		return "root"
	}
	return strings.Join(path[:len(path)-1], "/")
}
