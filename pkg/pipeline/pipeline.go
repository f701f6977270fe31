// Package pipeline provides the load → layout → render pipeline for sunburst.
//
// The CLI and the HTTP viewer both run charts through this package, so a
// dataset renders identically no matter which entry point asked for it.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read and validate a hierarchy document (JSON or YAML)
//  2. Layout: partition the tree, apply the focus and assemble a [chart.Chart]
//  3. Render: generate output in various formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:   "org.yaml",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	root, err := runner.Load(ctx, opts)
//	c, err := runner.Layout(ctx, root, opts)
//	artifacts, err := runner.Render(ctx, c, root, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sunburst/pkg/cache"
	"github.com/matzehuels/sunburst/pkg/chart"
	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/hierarchy"
	"github.com/matzehuels/sunburst/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for the CLI and the viewer
// =============================================================================

const (
	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0

	// DefaultVizType is the default visualization type.
	DefaultVizType = VizTypeSunburst
)

// Visualization types.
const (
	VizTypeSunburst = "sunburst"
	VizTypeNodelink = "nodelink"
)

// Format constants for output formats.
const (
	FormatSVG  = render.FormatSVG
	FormatPNG  = render.FormatPNG
	FormatPDF  = render.FormatPDF
	FormatJSON = render.FormatJSON
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	VizTypeSunburst: true,
	VizTypeNodelink: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
type Options struct {
	// Load options
	Input string          `json:"input,omitempty"`
	Root  *hierarchy.Node `json:"-"` // already loaded tree; takes precedence over Input

	// Layout options
	VizType        string  `json:"viz_type,omitempty"`
	Size           float64 `json:"size,omitempty"`
	Rings          int     `json:"rings,omitempty"` // 0 selects 2, negative shows every ring
	Focus          int     `json:"focus,omitempty"`
	FocusPath      string  `json:"focus_path,omitempty"` // slash path; wins over Focus
	NoSort         bool    `json:"no_sort,omitempty"`
	LabelThreshold float64 `json:"label_threshold,omitempty"`
	WrapWidth      int     `json:"wrap_width,omitempty"`
	PadCap         float64 `json:"pad_cap,omitempty"`
	StrokeInset    float64 `json:"stroke_inset,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Interactive bool     `json:"interactive,omitempty"` // embed hover highlight CSS/JS
	Links       string   `json:"links,omitempty"`       // zoom link format, e.g. "?focus=%d"
	Scale       float64  `json:"scale,omitempty"`
	Detailed    bool     `json:"detailed,omitempty"` // nodelink labels with values
	Refresh     bool     `json:"refresh,omitempty"`  // bypass cached results

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Root is the loaded hierarchy in input order.
	Root *hierarchy.Node

	// DatasetHash is the content hash of Root.
	DatasetHash string

	// Chart is the assembled render contract.
	Chart *chart.Chart

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	Height     int
	Visible    int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the chart came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errors.New(errors.ErrCodeInvalidVizType,
			"invalid viz_type: %q (must be one of: sunburst, nodelink)", vizType)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks that there is something to load.
func (o *Options) ValidateForLoad() error {
	if o.Root == nil && o.Input == "" {
		return errors.New(errors.ErrCodeInvalidInput, "input is required")
	}
	o.setLogger()
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if o.Size <= 0 {
		o.Size = chart.DefaultSize
	}
	o.setLogger()
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if o.Focus < 0 {
		return errors.New(errors.ErrCodeInvalidFocus, "focus must not be negative, got %d", o.Focus)
	}
	return ValidateVizType(o.VizType)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	return ValidateFormats(o.Formats)
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// IsNodelink returns true if this is a nodelink visualization.
func (o *Options) IsNodelink() bool {
	return o.VizType == VizTypeNodelink
}

// ChartOptions returns the chart options for a resolved focus.
func (o *Options) ChartOptions(focus int) chart.Options {
	return chart.Options{
		Size:           o.Size,
		Rings:          o.Rings,
		LabelThreshold: o.LabelThreshold,
		WrapWidth:      o.WrapWidth,
		PadCap:         o.PadCap,
		StrokeInset:    o.StrokeInset,
		Focus:          focus,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Size:           o.Size,
		Rings:          o.Rings,
		Focus:          o.Focus,
		FocusPath:      o.FocusPath,
		Sort:           !o.NoSort,
		LabelThreshold: o.LabelThreshold,
		WrapWidth:      o.WrapWidth,
		PadCap:         o.PadCap,
		StrokeInset:    o.StrokeInset,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		VizType: o.VizType,
		Format:  format,
	}
	switch {
	case o.IsNodelink():
		k.Detailed = o.Detailed
		if format == FormatPNG {
			k.Scale = o.Scale
		}
	case format == FormatSVG:
		k.Interactive = o.Interactive
		k.Links = o.Links
	case format == FormatPNG:
		k.Scale = o.Scale
	}
	return k
}
