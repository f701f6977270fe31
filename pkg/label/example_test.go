package label_test

import (
	"fmt"
	"math"

	"github.com/matzehuels/sunburst/pkg/label"
	"github.com/matzehuels/sunburst/pkg/partition"
)

func ExampleTransformFor() {
	s := partition.Span{X0: math.Pi, X1: 1.5 * math.Pi, Y0: 1, Y1: 2}
	fmt.Println(label.TransformFor(s, 80))
	// Output: rotate(135) translate(120,0) rotate(180)
}

func ExampleWrap() {
	for _, line := range label.Wrap("Site Reliability Engineering", label.DefaultWrapWidth) {
		fmt.Println(line)
	}
	// Output:
	// Site
	// Reliability
	// Engineering
}
