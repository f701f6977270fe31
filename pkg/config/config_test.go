package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/sunburst/pkg/errors"
)

func TestDefaultsValid(t *testing.T) {
	if err := Defaults().Validate(); err != nil {
		t.Fatalf("Defaults().Validate() = %v", err)
	}
}

func TestReadOverridesDefaults(t *testing.T) {
	cfg, err := Read(strings.NewReader(`
[chart]
rings = 0
zoom_duration = "1s"

[cache]
url = "redis://localhost:6379/1"

[routes]
base = "/assets/base.png"

[[routes.items]]
id = "north"
src = "/assets/north.png"
alt = "North"
`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Chart.Rings != 0 || cfg.Chart.ZoomDuration != time.Second {
		t.Errorf("chart = %+v", cfg.Chart)
	}
	if cfg.Chart.Size != 928 || !cfg.Chart.Sort {
		t.Errorf("untouched chart keys lost their defaults: %+v", cfg.Chart)
	}
	if cfg.Cache.URL != "redis://localhost:6379/1" {
		t.Errorf("cache url = %q", cfg.Cache.URL)
	}
	if len(cfg.Routes.Items) != 1 || cfg.Routes.Items[0].ID != "north" {
		t.Errorf("routes = %+v", cfg.Routes.Items)
	}
}

func TestReadRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"syntax", "[chart\nsize = 1"},
		{"unknown key", "[chart]\nsizee = 10"},
		{"negative size", "[chart]\nsize = -1"},
		{"negative rings", "[chart]\nrings = -2"},
		{"zero label threshold", "[chart]\nlabel_threshold = 0"},
		{"zero pad cap", "[chart]\npad_cap = 0"},
		{"zero stroke inset", "[chart]\nstroke_inset = 0"},
		{"cache scheme", "[cache]\nurl = \"ftp://x\""},
		{"duplicate route", "[[routes.items]]\nid = \"a\"\nsrc = \"/a\"\n[[routes.items]]\nid = \"a\"\nsrc = \"/b\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.doc))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Read() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sunburst.toml")
	if err := os.WriteFile(path, []byte("[server]\naddr = \":9999\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing explicit file: %v", err)
	}
}
