package pipeline

import (
	"github.com/matzehuels/sunburst/pkg/chart"
	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/hierarchy"
	"github.com/matzehuels/sunburst/pkg/partition"
)

// =============================================================================
// Layout Generation
// =============================================================================

// BuildLayout partitions a copy of root and assembles the chart for the
// requested focus. root itself is left in input order.
func BuildLayout(root *hierarchy.Node, opts Options) (*partition.Layout, *chart.Chart, error) {
	opts.SetLayoutDefaults()

	work, err := clone(root)
	if err != nil {
		return nil, nil, err
	}
	var popts []partition.Option
	if opts.NoSort {
		popts = append(popts, partition.WithoutSort())
	}
	l := partition.Build(work, popts...)

	focus, err := ResolveFocus(l, opts.Focus, opts.FocusPath)
	if err != nil {
		return nil, nil, err
	}
	c := chart.Build(l, partition.Retarget(l, focus), opts.ChartOptions(focus))
	return l, c, nil
}

// ResolveFocus returns the node index that should fill the view. A
// non-empty path is looked up from the root ("org/eng/platform") and wins
// over index. The root is always a valid focus; any other node must be a
// zoom target.
func ResolveFocus(l *partition.Layout, index int, path string) (int, error) {
	if path != "" {
		n, ok := l.Root.Lookup(path)
		if !ok {
			return 0, errors.New(errors.ErrCodeInvalidFocus, "no node at path %q", path)
		}
		index = n.Index
	}
	if !l.Valid(index) {
		return 0, errors.New(errors.ErrCodeInvalidFocus,
			"focus %d out of range (dataset has %d nodes)", index, l.Len())
	}
	if index != 0 && !partition.ZoomTarget(l, index) {
		return 0, errors.New(errors.ErrCodeInvalidFocus,
			"cannot focus %q: only nodes with children and a non-zero value can fill the view", l.Node(index).Path())
	}
	return index, nil
}
