package routes

import (
	"strings"
	"testing"

	"github.com/matzehuels/sunburst/pkg/errors"
)

func TestSelector(t *testing.T) {
	tests := []struct {
		name  string
		steps func(s *Selector)
		want  string
	}{
		{"initial", func(s *Selector) {}, ""},
		{"hover", func(s *Selector) { s.Enter("route2") }, "route2"},
		{"hover then leave", func(s *Selector) { s.Enter("route2"); s.Leave() }, ""},
		{"click", func(s *Selector) { s.Click("route1") }, "route1"},
		{"hover wins over active", func(s *Selector) { s.Click("route1"); s.Enter("route3") }, "route3"},
		{"leave restores active", func(s *Selector) { s.Click("route1"); s.Enter("route3"); s.Leave() }, "route1"},
		{"new hover supersedes", func(s *Selector) { s.Enter("route1"); s.Enter("route2") }, "route2"},
		{"unknown ignored", func(s *Selector) { s.Click("route1"); s.Enter("nope"); s.Click("nope") }, "route1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSelector(Defaults())
			tt.steps(s)
			if got := s.Current(); got != tt.want {
				t.Errorf("Current() = %q, want %q", got, tt.want)
			}
			for _, r := range s.Routes() {
				if s.Shown(r.ID) != (r.ID == tt.want) {
					t.Errorf("Shown(%s) = %v", r.ID, s.Shown(r.ID))
				}
			}
		})
	}
}

func TestLabel(t *testing.T) {
	tests := map[string]string{
		"route1":  "Route 1",
		"route12": "Route 12",
		"north":   "Route north",
	}
	for id, want := range tests {
		if got := Label(id); got != want {
			t.Errorf("Label(%q) = %q, want %q", id, got, want)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(Defaults()); err != nil {
		t.Fatalf("Validate(Defaults()) = %v", err)
	}
	bad := [][]Route{
		{{ID: "", Src: "/a.png"}},
		{{ID: "a"}},
		{{ID: "a", Src: "/a.png"}, {ID: "a", Src: "/b.png"}},
	}
	for i, rs := range bad {
		if err := Validate(rs); !errors.Is(err, errors.ErrCodeInvalidConfig) {
			t.Errorf("case %d: err = %v, want INVALID_CONFIG", i, err)
		}
	}
}

func TestRenderHTML(t *testing.T) {
	s := NewSelector([]Route{
		{ID: "route1", Src: "/r1.png", Alt: `Alt "quoted" <b>`},
		{ID: "route2", Src: "/r2.png", Alt: "two"},
	})
	s.Click("route2")

	out, err := RenderHTML(s, "")
	if err != nil {
		t.Fatal(err)
	}
	html := string(out)
	for _, want := range []string{
		`data-active="route2"`,
		`src="/assets/base.png"`,
		`class="routes-overlay shown" data-route="route2"`,
		`class="routes-overlay" data-route="route1"`,
		`>Route 1</button>`,
		`&lt;b&gt;`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML missing %q:\n%s", want, html)
		}
	}
	if strings.Contains(html, "<b>") {
		t.Error("alt text not escaped")
	}
}
