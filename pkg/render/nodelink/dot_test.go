package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/sunburst/pkg/hierarchy"
)

func testTree(t *testing.T) *hierarchy.Node {
	t.Helper()
	w := hierarchy.Weight
	root, err := hierarchy.Load(&hierarchy.Spec{
		Name:  "root",
		Value: w(2),
		Children: []*hierarchy.Spec{
			{Name: "lib", Children: []*hierarchy.Spec{{Name: "core", Value: w(1500)}}},
			{Name: "core", Value: w(0)},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return root
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testTree(t), Options{})
	for _, want := range []string{
		"digraph G {",
		`n0 [label="root"]`,
		`n1 [label="lib"]`,
		"n0 -> n1;",
		"n1 -> n2;",
		"n0 -> n3;",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if !strings.Contains(dot, `n3 [label="core", style="rounded,filled,dashed"`) {
		t.Errorf("zero-value node should be dashed:\n%s", dot)
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(testTree(t), Options{Detailed: true, Fills: []string{"#111111", "#222222"}})
	if !strings.Contains(dot, `label="root\nvalue: 1,502\nown: 2", fillcolor="#111111"`) {
		t.Errorf("detailed root label missing:\n%s", dot)
	}
	if !strings.Contains(dot, `label="core\nvalue: 1,500"`) {
		t.Errorf("detailed leaf label missing:\n%s", dot)
	}
}

func TestToDOTMaxDepth(t *testing.T) {
	dot := ToDOT(testTree(t), Options{MaxDepth: 1})
	if strings.Contains(dot, "n2 ") || strings.Contains(dot, "-> n2") {
		t.Errorf("depth 2 node kept:\n%s", dot)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(testTree(t), Options{}))
	if err != nil {
		t.Fatal(err)
	}
	s := string(svg)
	if !strings.Contains(s, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `) {
		t.Errorf("svg header not normalized: %.200s", s)
	}
	if !strings.Contains(s, "lib") {
		t.Error("node label missing from SVG")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 10.00 20.00"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10.00 20.00" width="10" height="20"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}
}
