package server

import (
	"bytes"
	"fmt"
	"html/template"
)

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { font: 14px sans-serif; margin: 24px; display: flex; gap: 32px; flex-wrap: wrap; }
  .chart svg { max-width: 100%; height: auto; }
  .chart h1 { font-size: 16px; font-weight: normal; white-space: pre-line; }
</style>
</head>
<body>
<section class="chart">
  <h1>{{.Center}}</h1>
  {{.Chart}}
</section>
<section class="routes-panel">
  {{.Selector}}
</section>
</body>
</html>
`))

type pageData struct {
	Title    string
	Center   string
	Chart    []byte
	Selector []byte
}

// renderPage embeds the rendered chart and selector. Both are produced by
// this module's own renderers and are inserted without escaping.
func renderPage(d pageData) ([]byte, error) {
	var buf bytes.Buffer
	err := page.Execute(&buf, struct {
		Title    string
		Center   string
		Chart    template.HTML
		Selector template.HTML
	}{
		Title:    d.Title,
		Center:   d.Center,
		Chart:    template.HTML(d.Chart),
		Selector: template.HTML(d.Selector),
	})
	if err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}
