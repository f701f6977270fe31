package routes

import (
	"bytes"
	"fmt"
	"html/template"
)

var fragment = template.Must(template.New("routes").Funcs(template.FuncMap{
	"label": Label,
}).Parse(`<div class="routes" data-active="{{.Active}}">
  <div class="routes-stage">
    <img class="routes-base" src="{{.Base}}" alt="Base Image" width="600" height="600">
{{- range .Routes}}
    <img class="routes-overlay{{if $.Shown .ID}} shown{{end}}" data-route="{{.ID}}" src="{{.Src}}" alt="{{.Alt}}" width="600" height="600">
{{- end}}
  </div>
  <ul class="routes-menu">
{{- range .Routes}}
    <li><button type="button" data-route="{{.ID}}">{{label .ID}}</button></li>
{{- end}}
  </ul>
</div>
<style>
  .routes-stage { position: relative; max-width: 600px; }
  .routes-stage img { width: 100%; height: auto; display: block; }
  .routes-overlay { position: absolute; inset: 0; opacity: 0; transition: opacity 0.5s; }
  .routes-overlay.shown { opacity: 1; }
</style>
<script>
  (function () {
    const root = document.currentScript.previousElementSibling.previousElementSibling;
    let hover = null, active = root.dataset.active || null;
    function paint() {
      const cur = hover || active;
      root.querySelectorAll('.routes-overlay').forEach(img => img.classList.toggle('shown', img.dataset.route === cur));
    }
    root.querySelectorAll('.routes-menu button').forEach(btn => {
      btn.addEventListener('mouseenter', () => { hover = btn.dataset.route; paint(); });
      btn.addEventListener('mouseleave', () => { hover = null; paint(); });
      btn.addEventListener('click', () => { active = btn.dataset.route; paint(); });
    });
  })();
</script>
`))

type fragmentData struct {
	*Selector
	Base string
}

// RenderHTML renders the selector as an HTML fragment with its own style
// and script. The initial overlay reflects the selector's current state;
// after that the page script follows the same hover and click rules.
func RenderHTML(s *Selector, base string) ([]byte, error) {
	if base == "" {
		base = DefaultBase
	}
	var buf bytes.Buffer
	if err := fragment.Execute(&buf, fragmentData{Selector: s, Base: base}); err != nil {
		return nil, fmt.Errorf("render routes: %w", err)
	}
	return buf.Bytes(), nil
}
