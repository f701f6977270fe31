// Package config loads sunburst settings from a TOML file.
//
// Every field has a default in [Defaults]; a file only needs the keys it
// changes. Command line flags are applied on top by the CLI.
//
//	[chart]
//	size = 928
//	rings = 2            # 0 shows every ring
//	label_threshold = 0.03
//
//	[server]
//	addr = ":8080"
//	watch = true
//
//	[cache]
//	url = "redis://localhost:6379/0"
//
//	[[routes.items]]
//	id = "route1"
//	src = "/assets/route1.png"
//	alt = "Route 1 Image"
package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/routes"
)

// Config is the complete file configuration.
type Config struct {
	Chart  ChartConfig  `toml:"chart"`
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
	Routes RoutesConfig `toml:"routes"`
}

// ChartConfig controls layout and drawing.
type ChartConfig struct {
	Size           float64       `toml:"size"`
	Rings          int           `toml:"rings"`
	LabelThreshold float64       `toml:"label_threshold"`
	WrapWidth      int           `toml:"wrap_width"`
	PadCap         float64       `toml:"pad_cap"`
	StrokeInset    float64       `toml:"stroke_inset"`
	Sort           bool          `toml:"sort"`
	ZoomDuration   time.Duration `toml:"zoom_duration"`
}

// ServerConfig controls the HTTP viewer.
type ServerConfig struct {
	Addr         string        `toml:"addr"`
	Assets       string        `toml:"assets"`
	Watch        bool          `toml:"watch"`
	ReadTimeout  time.Duration `toml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	URL   string `toml:"url"`
	Dir   string `toml:"dir"`
	Scope string `toml:"scope"`
}

// RoutesConfig lists the route selector overlays.
type RoutesConfig struct {
	Base  string         `toml:"base"`
	Items []routes.Route `toml:"items"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Chart: ChartConfig{
			Size:           928,
			Rings:          2,
			LabelThreshold: 0.03,
			WrapWidth:      10,
			PadCap:         0.005,
			StrokeInset:    1,
			Sort:           true,
			ZoomDuration:   750 * time.Millisecond,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			Watch:        true,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Cache: CacheConfig{
			Dir: defaultCacheDir(),
		},
		Routes: RoutesConfig{
			Base:  routes.DefaultBase,
			Items: routes.Defaults(),
		},
	}
}

// DefaultPath returns the config file location under the user config
// directory, or "" if there is none.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "sunburst", "config.toml")
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "sunburst")
	}
	return filepath.Join(dir, "sunburst")
}

// Load reads path over the defaults. A missing file at the default path
// is not an error; a missing explicit path is.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Defaults(), nil
		}
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "open config %s", path)
	}
	defer f.Close()
	return Read(f)
}

// Read decodes a TOML document over the defaults and validates the
// result. Unknown keys are rejected so typos do not pass silently.
func Read(r io.Reader) (Config, error) {
	cfg := Defaults()
	// A file listing routes replaces the defaults instead of patching them.
	cfg.Routes.Items = nil
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if cfg.Routes.Items == nil {
		cfg.Routes.Items = routes.Defaults()
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	ch := c.Chart
	switch {
	case ch.Size <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "chart.size must be positive")
	case ch.Rings < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "chart.rings must be >= 0")
	case ch.LabelThreshold <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "chart.label_threshold must be positive")
	case ch.WrapWidth <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "chart.wrap_width must be positive")
	case ch.PadCap <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "chart.pad_cap must be positive")
	case ch.StrokeInset <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "chart.stroke_inset must be positive")
	case ch.ZoomDuration < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "chart.zoom_duration must be >= 0")
	}
	if c.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "server.addr is required")
	}
	if err := errors.ValidateCacheURL(c.Cache.URL); err != nil {
		return err
	}
	return routes.Validate(c.Routes.Items)
}
