package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/sunburst/pkg/chart"
)

const arcInteractionCSS = `
    #%[1]s .arc { transition: opacity 0.2s ease; }
    #%[1]s.hovering .arc:not(.active) { opacity: %[2]g; }
    #%[1]s a { cursor: pointer; }`

const arcInteractionJS = `
    (function () {
      const root = document.getElementById('%s');
      const arcs = root.querySelectorAll('.arc');
      function highlight(chain) {
        root.classList.add('hovering');
        arcs.forEach(a => a.classList.toggle('active', chain.includes(a.dataset.index)));
      }
      function clearHighlight() {
        root.classList.remove('hovering');
        arcs.forEach(a => a.classList.remove('active'));
      }
      arcs.forEach(el => {
        el.addEventListener('mouseenter', () => highlight(el.dataset.ancestors.split(' ')));
        el.addEventListener('mouseleave', clearHighlight);
      });
    })();`

// instanceNamespace scopes content-derived chart ids.
var instanceNamespace = uuid.MustParse("6f1c2d3e-8b4a-5c6d-9e0f-a1b2c3d4e5f6")

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	interaction bool
	linkFormat  string
	centerLink  bool
	id          string
	font        string
}

// WithInteraction embeds the ancestor highlight style and script.
func WithInteraction() SVGOption { return func(r *svgRenderer) { r.interaction = true } }

// WithLinks wraps each clickable arc in a link. format receives the arc
// index, e.g. "?focus=%d".
func WithLinks(format string) SVGOption { return func(r *svgRenderer) { r.linkFormat = format } }

// WithCenterLink links the center disc to the focus a click on the center
// restores. It needs [WithLinks] for the URL format.
func WithCenterLink() SVGOption { return func(r *svgRenderer) { r.centerLink = true } }

// WithInstanceID sets the id of the svg element and the prefix of every
// arc id.
func WithInstanceID(id string) SVGOption { return func(r *svgRenderer) { r.id = id } }

// WithFont sets the CSS font shorthand (default "10px sans-serif").
func WithFont(font string) SVGOption { return func(r *svgRenderer) { r.font = font } }

// InstanceID returns a stable id for c derived from its content, so two
// charts embedded in one page do not share element ids.
func InstanceID(c *chart.Chart) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%g/%d/%d;", c.Size, c.Rings, c.Focus)
	for _, e := range c.Elements {
		sb.WriteString(e.Title)
		sb.WriteByte(0)
	}
	return "sb-" + uuid.NewSHA1(instanceNamespace, []byte(sb.String())).String()[:8]
}

// RenderSVG renders c as an SVG document.
func RenderSVG(c *chart.Chart, opts ...SVGOption) []byte {
	r := svgRenderer{font: "10px sans-serif"}
	for _, opt := range opts {
		opt(&r)
	}
	if r.id == "" {
		r.id = InstanceID(c)
	}

	half := c.Size / 2
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" id="%s" class="sunburst" viewBox="%s %s %s %s" width="%.0f" height="%.0f" style="font: %s">`+"\n",
		r.id, num(-half), num(-half), num(c.Size), num(c.Size), c.Size, c.Size, escapeXML(r.font))

	r.renderArcs(&buf, c)
	r.renderLabels(&buf, c)
	r.renderCenter(&buf, c)
	if r.interaction {
		fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", fmt.Sprintf(arcInteractionCSS, r.id, chart.DimmedOpacity))
		fmt.Fprintf(&buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", fmt.Sprintf(arcInteractionJS, r.id))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderArcs(buf *bytes.Buffer, c *chart.Chart) {
	buf.WriteString("  <g class=\"arcs\">\n")
	for _, e := range c.Elements {
		if !e.Visible || e.Path == "" {
			continue
		}
		link := e.Clickable && r.linkFormat != ""
		if link {
			fmt.Fprintf(buf, "    <a href=\"%s\">\n  ", escapeXML(fmt.Sprintf(r.linkFormat, e.Index)))
		}
		fmt.Fprintf(buf, `    <path id="%s-arc-%d" class="arc" data-index="%d" data-ancestors="%s" d="%s" fill="%s" fill-opacity="%s"><title>%s</title></path>`+"\n",
			r.id, e.Index, e.Index, joinInts(c.Ancestors(e.Index)), e.Path, e.Fill, num(e.FillOpacity), escapeXML(e.Title))
		if link {
			buf.WriteString("    </a>\n")
		}
	}
	buf.WriteString("  </g>\n")
}

func (r *svgRenderer) renderLabels(buf *bytes.Buffer, c *chart.Chart) {
	buf.WriteString("  <g class=\"labels\" pointer-events=\"none\" text-anchor=\"middle\" style=\"user-select: none\">\n")
	for _, e := range c.Elements {
		if !e.Label.Visible || len(e.Label.Lines) == 0 {
			continue
		}
		if len(e.Label.Lines) == 1 {
			fmt.Fprintf(buf, "    <text transform=\"%s\" dy=\"0.35em\">%s</text>\n",
				e.Label.Transform, escapeXML(e.Label.Lines[0]))
			continue
		}
		fmt.Fprintf(buf, "    <text transform=\"%s\">", e.Label.Transform)
		for i, line := range e.Label.Lines {
			dy := lineHeight
			if i == 0 {
				dy = 0.35 - float64(len(e.Label.Lines)-1)*lineHeight/2
			}
			fmt.Fprintf(buf, `<tspan x="0" dy="%sem">%s</tspan>`, num(dy), escapeXML(line))
		}
		buf.WriteString("</text>\n")
	}
	buf.WriteString("  </g>\n")
}

// lineHeight is the distance between wrapped label lines, in em.
const lineHeight = 1.1

func (r *svgRenderer) renderCenter(buf *bytes.Buffer, c *chart.Chart) {
	title := escapeXML(c.CenterTitle())
	if r.centerLink && r.linkFormat != "" && c.Back != c.Focus {
		fmt.Fprintf(buf, "  <a href=\"%s\"><circle class=\"center\" r=\"%s\" fill=\"none\" pointer-events=\"all\"><title>%s</title></circle></a>\n",
			escapeXML(fmt.Sprintf(r.linkFormat, c.Back)), num(c.Radius), title)
		return
	}
	fmt.Fprintf(buf, "  <circle class=\"center\" r=\"%s\" fill=\"none\" pointer-events=\"all\"><title>%s</title></circle>\n",
		num(c.Radius), title)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, " ")
}

func num(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
