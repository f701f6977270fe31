package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/sunburst/pkg/cache"
	"github.com/matzehuels/sunburst/pkg/chart"
	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/hierarchy"
	"github.com/matzehuels/sunburst/pkg/observability"
)

// testRoot is org{sales 10, eng{infra 20, platform 30}, empty}. Sorted
// pre-order: 0 org, 1 eng, 2 platform, 3 infra, 4 sales, 5 empty.
func testRoot(t *testing.T) *hierarchy.Node {
	t.Helper()
	root, err := hierarchy.Load(&hierarchy.Spec{
		Name: "org",
		Children: []*hierarchy.Spec{
			{Name: "sales", Value: hierarchy.Weight(10)},
			{Name: "eng", Children: []*hierarchy.Spec{
				{Name: "infra", Value: hierarchy.Weight(20)},
				{Name: "platform", Value: hierarchy.Weight(30)},
			}},
			{Name: "empty"},
		},
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return root
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s, want INVALID_FORMAT", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateVizType(t *testing.T) {
	tests := []struct {
		vizType string
		wantErr bool
	}{
		{"sunburst", false},
		{"nodelink", false},
		{"tower", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateVizType(tt.vizType)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateVizType(%q) error = %v, wantErr %v", tt.vizType, err, tt.wantErr)
		}
	}
}

func TestOptionsValidateForLoad(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateForLoad(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Missing input should fail with INVALID_INPUT, got %v", err)
	}

	opts = Options{Input: "org.yaml"}
	if err := opts.ValidateForLoad(); err != nil {
		t.Errorf("Input path should pass: %v", err)
	}

	opts = Options{Root: testRoot(t)}
	if err := opts.ValidateForLoad(); err != nil {
		t.Errorf("Loaded root should pass: %v", err)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestOptionsValidateForLayout(t *testing.T) {
	opts := Options{Focus: -1}
	if err := opts.ValidateForLayout(); !errors.Is(err, errors.ErrCodeInvalidFocus) {
		t.Errorf("Negative focus should fail with INVALID_FOCUS, got %v", err)
	}

	opts = Options{VizType: "tower"}
	if err := opts.ValidateForLayout(); !errors.Is(err, errors.ErrCodeInvalidVizType) {
		t.Errorf("Unknown viz type should fail with INVALID_VIZ_TYPE, got %v", err)
	}
}

func TestOptionsIsNodelink(t *testing.T) {
	opts := Options{}
	if opts.IsNodelink() {
		t.Error("Empty VizType should not be nodelink")
	}

	opts.VizType = "nodelink"
	if !opts.IsNodelink() {
		t.Error("nodelink VizType should be nodelink")
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Input: "org.json"}

	// First call
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalSize := opts.Size
	originalVizType := opts.VizType
	originalFormats := strings.Join(opts.Formats, ",")

	// Second call should be idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if opts.Size != originalSize {
		t.Error("Size changed on second call")
	}
	if opts.VizType != originalVizType {
		t.Error("VizType changed on second call")
	}
	if strings.Join(opts.Formats, ",") != originalFormats {
		t.Error("Formats changed on second call")
	}
}

func TestSetLayoutDefaults(t *testing.T) {
	opts := Options{}
	opts.SetLayoutDefaults()

	if opts.VizType != DefaultVizType {
		t.Errorf("VizType should be %s, got %s", DefaultVizType, opts.VizType)
	}
	if opts.Size != chart.DefaultSize {
		t.Errorf("Size should be %f, got %f", chart.DefaultSize, opts.Size)
	}
	if opts.Rings != 0 {
		t.Errorf("Rings should stay 0 for the chart default, got %d", opts.Rings)
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale should be %f, got %f", DefaultScale, opts.Scale)
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{VizType: VizTypeSunburst, Interactive: true, Links: "?focus=%d", Scale: 3}

	svg := opts.ArtifactKeyOpts(FormatSVG)
	if !svg.Interactive || svg.Links != "?focus=%d" || svg.Scale != 0 {
		t.Errorf("svg key opts = %+v", svg)
	}
	png := opts.ArtifactKeyOpts(FormatPNG)
	if png.Interactive || png.Links != "" || png.Scale != 3 {
		t.Errorf("png key opts = %+v", png)
	}

	opts.VizType = VizTypeNodelink
	opts.Detailed = true
	if k := opts.ArtifactKeyOpts(FormatSVG); !k.Detailed || k.Interactive {
		t.Errorf("nodelink key opts = %+v", k)
	}
}

func TestResolveFocus(t *testing.T) {
	_, c, err := BuildLayout(testRoot(t), Options{})
	if err != nil {
		t.Fatalf("BuildLayout: %v", err)
	}
	if c.Focus != 0 {
		t.Fatalf("default focus = %d, want 0", c.Focus)
	}

	tests := []struct {
		name  string
		index int
		path  string
		want  int
		code  errors.Code
	}{
		{"root", 0, "", 0, ""},
		{"branch by index", 1, "", 1, ""},
		{"branch by path", 0, "org/eng", 1, ""},
		{"path wins over index", 4, "/org/eng/", 1, ""},
		{"root by path", 3, "org", 0, ""},
		{"leaf", 2, "", 0, errors.ErrCodeInvalidFocus},
		{"zero-value leaf", 5, "", 0, errors.ErrCodeInvalidFocus},
		{"out of range", 6, "", 0, errors.ErrCodeInvalidFocus},
		{"missing path", 0, "org/hr", 0, errors.ErrCodeInvalidFocus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, _, err := BuildLayout(testRoot(t), Options{})
			if err != nil {
				t.Fatalf("BuildLayout: %v", err)
			}
			got, err := ResolveFocus(l, tt.index, tt.path)
			if tt.code != "" {
				if !errors.Is(err, tt.code) {
					t.Fatalf("ResolveFocus() error = %v, want %s", err, tt.code)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveFocus() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveFocus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBuildLayoutKeepsInputOrder(t *testing.T) {
	root := testRoot(t)
	l, c, err := BuildLayout(root, Options{FocusPath: "org/eng"})
	if err != nil {
		t.Fatalf("BuildLayout: %v", err)
	}

	if root.Children[0].Name != "sales" {
		t.Errorf("caller's tree was reordered: first child = %q", root.Children[0].Name)
	}
	if l.Root == root {
		t.Error("layout should own a copy of the tree")
	}
	if l.Node(1).Name != "eng" || c.Elements[1].Name != "eng" {
		t.Errorf("sorted index 1 = %q, want eng", l.Node(1).Name)
	}
	if c.Focus != 1 || c.Back != 0 {
		t.Errorf("focus/back = %d/%d, want 1/0", c.Focus, c.Back)
	}
	// eng fills the view, so sales collapses out of sight.
	if c.Elements[4].Visible {
		t.Error("sales should not be visible when eng is the focus")
	}
	if !c.Elements[2].Visible {
		t.Error("platform should be visible when eng is the focus")
	}
}

func TestBuildLayoutWithoutSort(t *testing.T) {
	_, c, err := BuildLayout(testRoot(t), Options{NoSort: true})
	if err != nil {
		t.Fatalf("BuildLayout: %v", err)
	}
	if c.Elements[1].Name != "sales" {
		t.Errorf("index 1 = %q, want sales in input order", c.Elements[1].Name)
	}
}

func TestDatasetHash(t *testing.T) {
	a, err := DatasetHash(testRoot(t))
	if err != nil {
		t.Fatal(err)
	}
	b, _ := DatasetHash(testRoot(t))
	if a != b {
		t.Error("equal trees should hash equal")
	}

	other := testRoot(t)
	other.Children[0].Name = "marketing"
	c, _ := DatasetHash(other)
	if a == c {
		t.Error("renamed node should change the hash")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "org.yaml")
	doc := "name: org\nchildren:\n  - name: a\n    value: 1\n  - name: b\n    value: 2\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewRunner(nil, nil, nil)
	root, err := r.Load(context.Background(), Options{Input: path})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if root.Count() != 3 || root.Value != 3 {
		t.Errorf("loaded %d nodes with value %v, want 3 and 3", root.Count(), root.Value)
	}

	_, err = r.Load(context.Background(), Options{Input: filepath.Join(dir, "missing.json")})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestRunnerExecuteCaches(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)
	ctx := context.Background()
	opts := Options{
		Root:    testRoot(t),
		Formats: []string{FormatSVG, FormatJSON},
		Links:   "?focus=%d",
	}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run should miss the cache: %+v", first.CacheInfo)
	}
	if first.Stats.NodeCount != 6 || first.Stats.Height != 2 {
		t.Errorf("stats = %+v", first.Stats)
	}
	svg := string(first.Artifacts[FormatSVG])
	if !strings.HasPrefix(svg, "<svg") || !strings.Contains(svg, `href="?focus=1"`) {
		t.Errorf("svg output missing zoom link:\n%s", svg)
	}
	if _, err := chart.Unmarshal(first.Artifacts[FormatJSON]); err != nil {
		t.Errorf("json output is not a chart document: %v", err)
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit the cache: %+v", second.CacheInfo)
	}
	if string(second.Artifacts[FormatSVG]) != svg {
		t.Error("cached svg differs from the rendered one")
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if third.CacheInfo.LayoutHit || third.CacheInfo.RenderHit {
		t.Errorf("refresh should bypass the cache: %+v", third.CacheInfo)
	}
}

func TestRunnerExecuteFocusChangesKey(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	ctx := context.Background()

	root, err := r.Execute(ctx, Options{Root: testRoot(t), Formats: []string{FormatJSON}})
	if err != nil {
		t.Fatal(err)
	}
	eng, err := r.Execute(ctx, Options{Root: testRoot(t), Focus: 1, Formats: []string{FormatJSON}})
	if err != nil {
		t.Fatal(err)
	}
	if root.Chart.Focus != 0 || eng.Chart.Focus != 1 {
		t.Errorf("focus = %d/%d, want 0/1", root.Chart.Focus, eng.Chart.Focus)
	}
	if string(root.Artifacts[FormatJSON]) == string(eng.Artifacts[FormatJSON]) {
		t.Error("different focus should render different charts")
	}
}

func TestRunnerExecuteInvalidFocus(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(context.Background(), Options{Root: testRoot(t), FocusPath: "org/nobody"})
	if !errors.Is(err, errors.ErrCodeInvalidFocus) {
		t.Errorf("Execute() error = %v, want INVALID_FOCUS", err)
	}
}

func TestRenderNodelinkJSON(t *testing.T) {
	root := testRoot(t)
	out, err := Render(context.Background(), nil, root, Options{
		VizType: VizTypeNodelink,
		Formats: []string{FormatJSON},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	got, err := hierarchy.ReadJSON(strings.NewReader(string(out[FormatJSON])))
	if err != nil {
		t.Fatalf("nodelink json is not a hierarchy: %v", err)
	}
	if got.Children[0].Name != "eng" {
		t.Errorf("first child = %q, want eng in sorted order", got.Children[0].Name)
	}
}

func TestRenderRequiresInputs(t *testing.T) {
	ctx := context.Background()
	if _, err := Render(ctx, nil, nil, Options{Formats: []string{FormatSVG}}); err == nil {
		t.Error("sunburst render without chart should fail")
	}
	if _, err := Render(ctx, nil, nil, Options{VizType: VizTypeNodelink}); err == nil {
		t.Error("nodelink render without hierarchy should fail")
	}
}

func TestRunnerFiresHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()

	rec := &recordingHooks{}
	observability.SetPipelineHooks(rec)

	r := NewRunner(nil, nil, nil)
	if _, err := r.Execute(context.Background(), Options{Root: testRoot(t), Formats: []string{FormatJSON}}); err != nil {
		t.Fatal(err)
	}

	want := []string{"load-start", "load", "layout-start", "layout", "render-start", "render"}
	if strings.Join(rec.calls, ",") != strings.Join(want, ",") {
		t.Errorf("hook calls = %v, want %v", rec.calls, want)
	}
	if rec.nodes != 6 {
		t.Errorf("OnLoadComplete nodes = %d, want 6", rec.nodes)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu    sync.Mutex
	calls []string
	nodes int
}

func (h *recordingHooks) record(s string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = append(h.calls, s)
}

func (h *recordingHooks) OnLoadStart(context.Context, string) { h.record("load-start") }
func (h *recordingHooks) OnLoadComplete(_ context.Context, _ string, n int, _ time.Duration, _ error) {
	h.nodes = n
	h.record("load")
}
func (h *recordingHooks) OnLayoutStart(context.Context, string, int) { h.record("layout-start") }
func (h *recordingHooks) OnLayoutComplete(context.Context, string, time.Duration, error) {
	h.record("layout")
}
func (h *recordingHooks) OnRenderStart(context.Context, []string) { h.record("render-start") }
func (h *recordingHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	h.record("render")
}
