package hierarchy

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/sunburst/pkg/errors"
)

// ReadJSON decodes a JSON hierarchy document from r and loads it.
//
// The input must be a single JSON object, optionally followed by whitespace:
//
//	{"name": "root", "children": [{"name": "a", "value": 3}]}
//
// Decode failures are reported as MALFORMED_HIERARCHY, as are every
// validation failure of [Load]. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Node, error) {
	var spec Spec
	dec := json.NewDecoder(r)
	if err := dec.Decode(&spec); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedHierarchy, err, "decode JSON")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New(errors.ErrCodeMalformedHierarchy, "trailing data after JSON document")
	}
	return Load(&spec)
}

// ReadYAML decodes a YAML hierarchy document from r and loads it.
func ReadYAML(r io.Reader) (*Node, error) {
	var spec Spec
	if err := yaml.NewDecoder(r).Decode(&spec); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedHierarchy, err, "decode YAML")
	}
	return Load(&spec)
}

// ReadFile opens path and decodes it according to its extension:
// .json, .yaml or .yml.
func ReadFile(path string) (*Node, error) {
	read, err := readerFor(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	root, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}

func readerFor(path string) (func(io.Reader) (*Node, error), error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ReadJSON, nil
	case ".yaml", ".yml":
		return ReadYAML, nil
	default:
		return nil, errors.New(errors.ErrCodeUnsupportedEncoding,
			"unsupported dataset extension %q (must be .json, .yaml or .yml)", filepath.Ext(path))
	}
}

// ToSpec converts a loaded tree back to its document form.
// Nodes with zero own weight omit the value field.
func (n *Node) ToSpec() *Spec {
	s := &Spec{Name: n.Name}
	if n.Weight != 0 {
		s.Value = Weight(n.Weight)
	}
	for _, c := range n.Children {
		s.Children = append(s.Children, c.ToSpec())
	}
	return s
}

// WriteJSON encodes the tree rooted at n as an indented JSON document.
func WriteJSON(n *Node, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(n.ToSpec()); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
