package cache

// LayoutKeyOpts are the options that change a built chart.
type LayoutKeyOpts struct {
	Size           float64 `json:"size"`
	Rings          int     `json:"rings"`
	Focus          int     `json:"focus"`
	FocusPath      string  `json:"focus_path,omitempty"`
	Sort           bool    `json:"sort"`
	LabelThreshold float64 `json:"label_threshold"`
	WrapWidth      int     `json:"wrap_width"`
	PadCap         float64 `json:"pad_cap"`
	StrokeInset    float64 `json:"stroke_inset"`
}

// ArtifactKeyOpts are the options that change rendered output for a
// given chart.
type ArtifactKeyOpts struct {
	VizType     string  `json:"viz_type"`
	Format      string  `json:"format"`
	Interactive bool    `json:"interactive,omitempty"`
	Links       string  `json:"links,omitempty"`
	Scale       float64 `json:"scale,omitempty"`
	Detailed    bool    `json:"detailed,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey is the key of the chart built from a dataset.
	LayoutKey(datasetHash string, opts LayoutKeyOpts) string

	// ArtifactKey is the key of one rendered output of a chart.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the source hash together with every option.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements [Keyer].
func (DefaultKeyer) LayoutKey(datasetHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", datasetHash, opts)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
