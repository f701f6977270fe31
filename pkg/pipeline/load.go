package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/sunburst/pkg/cache"
	"github.com/matzehuels/sunburst/pkg/hierarchy"
)

// Load returns the hierarchy named by opts: opts.Root when set, otherwise
// the document at opts.Input.
func Load(ctx context.Context, opts Options) (*hierarchy.Node, error) {
	if opts.Root != nil {
		return opts.Root, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	root, err := hierarchy.ReadFile(opts.Input)
	if err != nil {
		return nil, err
	}
	return root, nil
}

// DatasetHash returns the content hash of the tree rooted at root. Two
// trees with the same names, weights and child order hash equal.
func DatasetHash(root *hierarchy.Node) (string, error) {
	data, err := marshalHierarchy(root)
	if err != nil {
		return "", fmt.Errorf("hash dataset: %w", err)
	}
	return cache.Hash(data), nil
}

// clone copies the tree so layout passes never reorder a caller's tree.
func clone(root *hierarchy.Node) (*hierarchy.Node, error) {
	return hierarchy.Load(root.ToSpec())
}

// source names the dataset for logs and hooks.
func source(opts Options) string {
	if opts.Root != nil {
		return opts.Root.Name
	}
	return opts.Input
}

func marshalHierarchy(root *hierarchy.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := hierarchy.WriteJSON(root, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
