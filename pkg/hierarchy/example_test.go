package hierarchy_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/sunburst/pkg/hierarchy"
)

func ExampleReadJSON() {
	doc := `{"name": "root", "children": [{"name": "a", "value": 3}, {"name": "b", "value": 1}]}`

	root, err := hierarchy.ReadJSON(strings.NewReader(doc))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println("Value:", root.Value)
	fmt.Println("Height:", root.Height)
	for _, c := range root.Children {
		fmt.Printf("%s depth=%d value=%g\n", c.Path(), c.Depth, c.Value)
	}
	// Output:
	// Value: 4
	// Height: 1
	// root/a depth=1 value=3
	// root/b depth=1 value=1
}

func ExampleLoad_malformed() {
	_, err := hierarchy.Load(&hierarchy.Spec{
		Name:     "root",
		Children: []*hierarchy.Spec{{Name: "bad", Value: hierarchy.Weight(-1)}},
	})
	fmt.Println(err)
	// Output:
	// MALFORMED_HIERARCHY: negative weight -1 at root/bad
}
