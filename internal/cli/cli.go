// Package cli implements the sunburst command-line interface.
package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sunburst/pkg/buildinfo"
	"github.com/matzehuels/sunburst/pkg/cache"
	"github.com/matzehuels/sunburst/pkg/config"
	"github.com/matzehuels/sunburst/pkg/observability"
	"github.com/matzehuels/sunburst/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "sunburst"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before any subcommand runs.
	Config     config.Config
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Defaults(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Sunburst draws hierarchies as zoomable radial charts",
		Long: `Sunburst lays out a weighted hierarchy as concentric rings: every node is an
arc whose angle is proportional to its value. Clicking an arc zooms in so the
node fills the circle; clicking the center zooms back out.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			registerHooks(c.Logger)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: "+config.DefaultPath()+")")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer = cache.NewDefaultKeyer()
	if scope := c.Config.Cache.Scope; scope != "" {
		keyer = cache.NewScopedKeyer(keyer, scope)
	}
	return pipeline.NewRunner(cc, keyer, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	cc, err := cache.Open(ctx, c.Config.Cache.URL, c.Config.Cache.Dir)
	if err != nil {
		if c.Config.Cache.URL != "" {
			return nil, err
		}
		// A local cache that cannot be created only costs speed.
		c.Logger.Warn("file cache unavailable, continuing without cache", "error", err)
		return cache.NewNullCache(), nil
	}
	return cc, nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// chartFlags holds layout flags shared by several commands. Values start
// from the config file; flags override them.
type chartFlags struct {
	size      float64
	rings     int
	focus     int
	focusPath string
	noSort    bool
	threshold float64
	wrap      int
}

func (f *chartFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.size, "size", 0, "viewport side in user units (default from config)")
	cmd.Flags().IntVar(&f.rings, "rings", 0, "rings shown below the focus, 0 shows all (default from config)")
	cmd.Flags().IntVar(&f.focus, "focus", 0, "index of the node that fills the view")
	cmd.Flags().StringVar(&f.focusPath, "path", "", "slash path of the node that fills the view (overrides --focus)")
	cmd.Flags().BoolVar(&f.noSort, "no-sort", false, "keep siblings in input order")
	cmd.Flags().Float64Var(&f.threshold, "label-threshold", 0, "minimum arc area for a label (default from config)")
	cmd.Flags().IntVar(&f.wrap, "wrap", 0, "label wrap width in characters (default from config)")
}

// options merges config and flags into pipeline options.
func (c *CLI) options(cmd *cobra.Command, f chartFlags) pipeline.Options {
	ch := c.Config.Chart
	opts := pipeline.Options{
		Size:           ch.Size,
		Rings:          chartRings(ch.Rings),
		Focus:          f.focus,
		FocusPath:      f.focusPath,
		NoSort:         !ch.Sort || f.noSort,
		LabelThreshold: ch.LabelThreshold,
		WrapWidth:      ch.WrapWidth,
		PadCap:         ch.PadCap,
		StrokeInset:    ch.StrokeInset,
		Logger:         c.Logger,
	}
	if f.size > 0 {
		opts.Size = f.size
	}
	if cmd.Flags().Changed("rings") {
		opts.Rings = chartRings(f.rings)
	}
	if f.threshold > 0 {
		opts.LabelThreshold = f.threshold
	}
	if f.wrap > 0 {
		opts.WrapWidth = f.wrap
	}
	return opts
}

// chartRings converts the user-facing ring count, where 0 means every
// ring, to the chart convention, where 0 selects the default.
func chartRings(rings int) int {
	if rings == 0 {
		return -1
	}
	return rings
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// registerHooks routes pipeline, cache and server events to the debug log.
func registerHooks(l *log.Logger) {
	h := &logHooks{logger: l}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	observability.SetServerHooks(h)
}
