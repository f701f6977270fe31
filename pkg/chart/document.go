package chart

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/sunburst/pkg/arc"
	"github.com/matzehuels/sunburst/pkg/errors"
)

// DocumentVersion is written into every exported [Document].
const DocumentVersion = 1

// Document is the serialized form of a [Chart], used for JSON output and
// for the layout cache.
type Document struct {
	Version  int        `json:"version" bson:"version"`
	Size     float64    `json:"size" bson:"size"`
	Radius   float64    `json:"radius" bson:"radius"`
	Rings    int        `json:"rings" bson:"rings"`
	Focus    int        `json:"focus" bson:"focus"`
	Back     int        `json:"back" bson:"back"`
	Arc      arc.Config `json:"arc" bson:"arc"`
	Elements []Element  `json:"elements" bson:"elements"`
}

// Export returns the document form of c.
func (c *Chart) Export() Document {
	return Document{
		Version:  DocumentVersion,
		Size:     c.Size,
		Radius:   c.Radius,
		Rings:    c.Rings,
		Focus:    c.Focus,
		Back:     c.Back,
		Arc:      c.Arc,
		Elements: c.Elements,
	}
}

// Import rebuilds a chart from d. It checks that element indices and
// parents are consistent.
func Import(d Document) (*Chart, error) {
	if d.Version != DocumentVersion {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported chart document version %d", d.Version)
	}
	for i, e := range d.Elements {
		if e.Index != i {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "element %d has index %d", i, e.Index)
		}
		if e.Parent >= i || (i > 0 && e.Parent < 0) || (i == 0 && e.Parent != -1) {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "element %d has invalid parent %d", i, e.Parent)
		}
	}
	if n := len(d.Elements); n > 0 && (d.Focus < 0 || d.Focus >= n || d.Back < 0 || d.Back >= n) {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "focus %d out of range", d.Focus)
	}
	return &Chart{
		Elements: d.Elements,
		Size:     d.Size,
		Radius:   d.Radius,
		Rings:    d.Rings,
		Focus:    d.Focus,
		Back:     d.Back,
		Arc:      d.Arc,
	}, nil
}

// Marshal encodes c as indented JSON.
func Marshal(c *Chart) ([]byte, error) {
	return json.MarshalIndent(c.Export(), "", "  ")
}

// Unmarshal decodes a JSON document produced by [Marshal].
func Unmarshal(data []byte) (*Chart, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode chart")
	}
	return Import(d)
}

// WriteJSON encodes c as JSON and writes it to w.
func WriteJSON(c *Chart, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c.Export()); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteFile writes c as JSON to path.
func WriteFile(c *Chart, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(c, f)
}

// ReadFile reads a chart written by [WriteFile].
func ReadFile(path string) (*Chart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}
