package chart_test

import (
	"fmt"

	"github.com/matzehuels/sunburst/pkg/chart"
	"github.com/matzehuels/sunburst/pkg/hierarchy"
	"github.com/matzehuels/sunburst/pkg/partition"
)

func ExampleChart_Highlight() {
	root, _ := hierarchy.Load(&hierarchy.Spec{
		Name: "root",
		Children: []*hierarchy.Spec{
			{Name: "a", Children: []*hierarchy.Spec{{Name: "a1", Value: hierarchy.Weight(1)}}},
			{Name: "b", Value: hierarchy.Weight(1)},
		},
	})
	l := partition.Build(root)
	c := chart.Build(l, l.Spans, chart.Options{})

	mask := c.Highlight(2)
	for i, e := range c.Elements {
		op := chart.DimmedOpacity
		if mask[i] {
			op = 1
		}
		fmt.Printf("%s %.1f\n", e.Name, op)
	}
	// Output:
	// root 1.0
	// a 1.0
	// a1 1.0
	// b 0.3
}
