package sink

import (
	"bytes"
	"fmt"
	"html"
	"maps"
	"slices"
	"strconv"

	"github.com/google/uuid"

	"github.com/matzehuels/netgraph/pkg/canvas"
	"github.com/matzehuels/netgraph/pkg/diagram"
)

const hoverCSS = `
    .neuron { cursor: pointer; }
    text { font-family: "Go", "Helvetica", sans-serif; }`

// hoverJS mirrors diagram.Renderer.Enter and Leave. %q slots: document id,
// hover color, neuron color, dimmed color.
const hoverJS = `
    (function () {
      const root = document.getElementById(%q);
      if (!root) return;
      const hover = %q, normal = %q, dimmed = %q;
      const lines = Array.from(root.querySelectorAll('line.connection'));
      const bands = Array.from(root.querySelectorAll('rect.band'));
      const touches = (l, layer, index) =>
        (+l.dataset.layer === layer && +l.dataset.from === index) ||
        (+l.dataset.layer === layer - 1 && +l.dataset.to === index);
      root.querySelectorAll('ellipse.neuron').forEach(n => {
        const layer = +n.dataset.layer, index = +n.dataset.index;
        n.addEventListener('mouseenter', () => {
          n.setAttribute('fill', hover);
          lines.forEach(l => {
            if (touches(l, layer, index)) {
              l.setAttribute('stroke-width', 2);
            } else {
              l.setAttribute('stroke', dimmed);
              root.insertBefore(l, root.firstChild);
            }
          });
          bands.forEach(b => root.insertBefore(b, root.firstChild));
        });
        n.addEventListener('mouseleave', () => {
          n.setAttribute('fill', normal);
          lines.forEach(l => {
            l.setAttribute('stroke', l.dataset.color);
            l.setAttribute('stroke-width', 1);
          });
        });
      });
    })();`

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	renderer    *diagram.Renderer
	palette     diagram.Palette
	docID       string
	title       string
	interactive bool
}

// WithRenderer attaches the renderer that drew the scene, so connections
// carry their resting weight colors and the script uses its palette.
func WithRenderer(r *diagram.Renderer) SVGOption {
	return func(s *svgRenderer) {
		s.renderer = r
		s.palette = r.Palette()
	}
}

// WithDocumentID sets the id of the wrapping group. The default is a random UUID.
func WithDocumentID(id string) SVGOption { return func(s *svgRenderer) { s.docID = id } }

// WithTitle adds a <title> element.
func WithTitle(t string) SVGOption { return func(s *svgRenderer) { s.title = t } }

// WithoutInteraction omits the hover script and stylesheet.
func WithoutInteraction() SVGOption { return func(s *svgRenderer) { s.interactive = false } }

// RenderSVG renders the shapes of scene, bottom to top.
func RenderSVG(scene *canvas.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{palette: diagram.DefaultPalette(), interactive: true}
	for _, opt := range opts {
		opt(&r)
	}
	if r.docID == "" {
		r.docID = "netgraph-" + uuid.NewString()
	}

	w, h := scene.Size()
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", html.EscapeString(r.title))
	}
	fmt.Fprintf(&buf, "  <rect width=\"100%%\" height=\"100%%\" fill=\"#ffffff\"/>\n")
	fmt.Fprintf(&buf, "  <g id=%q>\n", r.docID)
	for _, sh := range scene.Shapes() {
		r.renderShape(&buf, sh)
	}
	buf.WriteString("  </g>\n")

	if r.interactive {
		renderInteraction(&buf, r.docID, r.palette)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderShape(buf *bytes.Buffer, sh canvas.Shape) {
	st := sh.Style
	attrs := shapeAttrs(st)

	switch sh.Kind {
	case canvas.KindOval:
		fill, fo := paint(st.Fill)
		stroke, _ := paint(st.Outline)
		fmt.Fprintf(buf, `    <ellipse cx="%.2f" cy="%.2f" rx="%.2f" ry="%.2f" fill="%s"%s stroke="%s" stroke-width="%g"%s/>`+"\n",
			(sh.X0+sh.X1)/2, (sh.Y0+sh.Y1)/2, abs(sh.X1-sh.X0)/2, abs(sh.Y1-sh.Y0)/2,
			fill, opacityAttr("fill-opacity", fo), stroke, st.Width, attrs)
	case canvas.KindLine:
		stroke, so := paint(st.Fill)
		fmt.Fprintf(buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s"%s stroke-width="%g"%s%s/>`+"\n",
			sh.X0, sh.Y0, sh.X1, sh.Y1, stroke, opacityAttr("stroke-opacity", so), max(st.Width, 1),
			r.restingColor(sh), attrs)
	case canvas.KindRect:
		fill, fo := paint(st.Fill)
		outline := ""
		if st.Outline.A > 0 && st.Width > 0 {
			outline = fmt.Sprintf(` stroke="%s" stroke-width="%g"`, hex(st.Outline), st.Width)
		}
		fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"%s%s%s/>`+"\n",
			min(sh.X0, sh.X1), min(sh.Y0, sh.Y1), abs(sh.X1-sh.X0), abs(sh.Y1-sh.Y0),
			fill, opacityAttr("fill-opacity", fo), outline, attrs)
	case canvas.KindText:
		fill, _ := paint(st.Fill)
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-size="%g" fill="%s" text-anchor="middle" dominant-baseline="central"%s>%s</text>`+"\n",
			sh.X0, sh.Y0, st.FontSize, fill, attrs, html.EscapeString(sh.Text))
	}
}

// restingColor returns the data-color attribute the hover script restores
// a connection to.
func (r *svgRenderer) restingColor(sh canvas.Shape) string {
	c := r.palette.Connection
	if r.renderer != nil {
		if id, ok := connectionID(sh); ok {
			if wc, ok := r.renderer.ConnectionColor(id); ok {
				c = wc
			}
		}
	} else if sh.Style.Fill != r.palette.ConnectionDimmed {
		c = sh.Style.Fill
	}
	return fmt.Sprintf(` data-color="%s"`, hex(c))
}

func shapeAttrs(st canvas.Style) string {
	var buf bytes.Buffer
	if st.Class != "" {
		fmt.Fprintf(&buf, ` class="%s"`, html.EscapeString(st.Class))
	}
	for _, k := range slices.Sorted(maps.Keys(st.Data)) {
		fmt.Fprintf(&buf, ` data-%s="%s"`, html.EscapeString(k), html.EscapeString(st.Data[k]))
	}
	if st.Disabled {
		buf.WriteString(` pointer-events="none"`)
	}
	return buf.String()
}

func opacityAttr(name string, v float64) string {
	if v >= 1 {
		return ""
	}
	return fmt.Sprintf(` %s="%.3f"`, name, v)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func renderInteraction(buf *bytes.Buffer, docID string, p diagram.Palette) {
	fmt.Fprintf(buf, "  <style>%s\n  </style>\n", hoverCSS)
	fmt.Fprintf(buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n",
		fmt.Sprintf(hoverJS, docID, hex(p.NeuronHover), hex(p.Neuron), hex(p.ConnectionDimmed)))
}

// dataInt reads an integer data attribute.
func dataInt(sh canvas.Shape, key string) (int, bool) {
	v, ok := sh.Style.Data[key]
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	return n, err == nil
}
