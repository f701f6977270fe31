package sink

import "github.com/matzehuels/sunburst/pkg/chart"

// RenderJSON exports c as an indented chart document. The output can be
// read back with [chart.Unmarshal] and rendered again unchanged.
func RenderJSON(c *chart.Chart) ([]byte, error) {
	return chart.Marshal(c)
}
