package chart

import (
	"math"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/hierarchy"
	"github.com/matzehuels/sunburst/pkg/partition"
)

// testLayout indexes: 0 root, 1 eng, 2 platform, 3 infra, 4 web, 5 sales, 6 empty.
func testLayout(t *testing.T) *partition.Layout {
	t.Helper()
	w := hierarchy.Weight
	root, err := hierarchy.Load(&hierarchy.Spec{
		Name: "org",
		Children: []*hierarchy.Spec{
			{Name: "eng", Children: []*hierarchy.Spec{
				{Name: "platform", Children: []*hierarchy.Spec{
					{Name: "infra", Value: w(1200)},
				}},
				{Name: "web", Value: w(600)},
			}},
			{Name: "sales", Value: w(1000)},
			{Name: "empty", Value: w(0)},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return partition.Build(root)
}

func TestBuildElements(t *testing.T) {
	l := testLayout(t)
	c := Build(l, l.Spans, Options{})

	if c.Size != DefaultSize || c.Radius != DefaultSize/6 {
		t.Errorf("size=%v radius=%v", c.Size, c.Radius)
	}
	if len(c.Elements) != 7 {
		t.Fatalf("len = %d", len(c.Elements))
	}

	tests := []struct {
		index     int
		name      string
		visible   bool
		clickable bool
		opacity   float64
	}{
		{0, "org", false, false, 0},
		{1, "eng", true, true, BranchOpacity},
		{2, "platform", true, true, BranchOpacity},
		{3, "infra", false, false, 0},
		{4, "web", true, false, LeafOpacity},
		{5, "sales", true, false, LeafOpacity},
		{6, "empty", false, false, 0},
	}
	for _, tt := range tests {
		e := c.Elements[tt.index]
		if e.Name != tt.name {
			t.Errorf("element %d name = %s, want %s", tt.index, e.Name, tt.name)
			continue
		}
		if e.Visible != tt.visible || e.Clickable != tt.clickable || e.FillOpacity != tt.opacity {
			t.Errorf("%s: visible=%v clickable=%v opacity=%v", e.Name, e.Visible, e.Clickable, e.FillOpacity)
		}
		if e.Visible == (e.Path == "") {
			t.Errorf("%s: visible=%v but path=%q", e.Name, e.Visible, e.Path)
		}
	}
	if c.Elements[6].Label.Visible || c.Elements[6].Label.Lines != nil {
		t.Error("zero-value leaf must not get a label")
	}
	if got := c.Elements[3].Title; got != "org/eng/platform/infra\n1,200" {
		t.Errorf("title = %q", got)
	}
}

func TestBuildFillsFollowTopAncestor(t *testing.T) {
	l := testLayout(t)
	c := Build(l, l.Spans, Options{})
	for _, i := range []int{2, 3, 4} {
		if c.Elements[i].Fill != c.Elements[1].Fill {
			t.Errorf("element %d fill %s differs from its branch %s", i, c.Elements[i].Fill, c.Elements[1].Fill)
		}
	}
	if c.Elements[5].Fill == c.Elements[1].Fill {
		t.Error("sibling branches share a fill")
	}
}

func TestBuildZoomed(t *testing.T) {
	l := testLayout(t)
	c := Build(l, partition.Retarget(l, 1), Options{Focus: 1})

	if c.Focus != 1 || c.Back != 0 {
		t.Errorf("focus=%d back=%d", c.Focus, c.Back)
	}
	if c.CenterTitle() != "org/eng" {
		t.Errorf("CenterTitle() = %q", c.CenterTitle())
	}
	if c.Elements[5].Visible {
		t.Error("sales is outside the focus and must be hidden")
	}
	if !c.Elements[3].Visible {
		t.Error("infra should move into the second ring")
	}
}

func TestBuildAllRings(t *testing.T) {
	l := testLayout(t)
	c := Build(l, l.Spans, Options{Rings: -1, Size: 800})
	if c.Radius != 100 {
		t.Errorf("radius = %v, want 100 for height 3", c.Radius)
	}
	if !c.Elements[3].Visible {
		t.Error("third ring should be visible when every ring is shown")
	}
}

func TestHighlight(t *testing.T) {
	l := testLayout(t)
	c := Build(l, l.Spans, Options{})

	want := []bool{true, true, true, true, false, false, false}
	if got := c.Highlight(3); !reflect.DeepEqual(got, want) {
		t.Errorf("Highlight(3) = %v, want %v", got, want)
	}
	if got := c.Highlight(42); got != nil {
		t.Errorf("Highlight(42) = %v, want nil", got)
	}
	if got := c.Ancestors(4); !reflect.DeepEqual(got, []int{0, 1, 4}) {
		t.Errorf("Ancestors(4) = %v", got)
	}
}

func TestLabelsWrap(t *testing.T) {
	l := testLayout(t)
	c := Build(l, l.Spans, Options{WrapWidth: 3})
	if got := c.Elements[1].Label.Lines; !reflect.DeepEqual(got, []string{"eng"}) {
		t.Errorf("lines = %v", got)
	}
	if !strings.HasPrefix(c.Elements[1].Label.Transform.String(), "rotate(") {
		t.Errorf("transform = %s", c.Elements[1].Label.Transform)
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	l := testLayout(t)
	c := Build(l, l.Spans, Options{})

	path := filepath.Join(t.TempDir(), "chart.json")
	if err := WriteFile(c, path); err != nil {
		t.Fatal(err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, c) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, c)
	}
}

func TestImportRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
	}{
		{"version", Document{Version: 9}},
		{"index", Document{Version: DocumentVersion, Elements: []Element{{Index: 1, Parent: -1}}}},
		{"parent", Document{Version: DocumentVersion, Elements: []Element{{Index: 0, Parent: -1}, {Index: 1, Parent: 1}}}},
		{"focus", Document{Version: DocumentVersion, Focus: 3, Elements: []Element{{Index: 0, Parent: -1}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Import(tt.doc)
			if !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("Import() error = %v, want INVALID_FORMAT", err)
			}
		})
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v", err)
	}
}

func TestFormatValue(t *testing.T) {
	if got := formatValue(1234567); got != "1,234,567" {
		t.Errorf("formatValue int = %s", got)
	}
	if got := formatValue(math.Pi); !strings.HasPrefix(got, "3.14") {
		t.Errorf("formatValue float = %s", got)
	}
}
