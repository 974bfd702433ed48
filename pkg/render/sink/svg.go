package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image/color"
	"math"

	"github.com/matzehuels/datatree/pkg/chart"
	"github.com/matzehuels/datatree/pkg/colormap"
	"github.com/matzehuels/datatree/pkg/render"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background *color.NRGBA
	labels     bool
}

// WithBackground fills the canvas with c instead of leaving it transparent.
func WithBackground(c color.NRGBA) SVGOption {
	return func(r *svgRenderer) { r.background = &c }
}

// WithoutLabels omits the wedge labels.
func WithoutLabels() SVGOption { return func(r *svgRenderer) { r.labels = false } }

// RenderSVG renders the chart as vector paths on the same square canvas as
// the finalized raster image.
func RenderSVG(c *chart.Chart, opts ...SVGOption) []byte {
	r := svgRenderer{labels: true}
	for _, opt := range opts {
		opt(&r)
	}
	g := render.OutputGeometry()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		g.Width, g.Height, g.Width, g.Height)
	if r.background != nil {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", colormap.Hex(*r.background))
	}
	for _, ring := range c.Rings() {
		renderRing(&buf, g, ring, r.labels)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderRing(buf *bytes.Buffer, g render.Geometry, ring *chart.Ring, labels bool) {
	style := ring.RenderStyle()
	wedges := ring.Wedges()

	fmt.Fprintf(buf, `  <g stroke="%s" stroke-width="%.2f" stroke-linejoin="round">`+"\n",
		colormap.Hex(style.Wedge.EdgeColor), style.Wedge.LineWidth*g.PxPerPt)
	for _, w := range wedges {
		if w.Empty() {
			continue
		}
		fmt.Fprintf(buf, `    <path d="%s" fill="%s"/>`+"\n", wedgePath(g, w, style), colormap.Hex(w.Color))
	}
	buf.WriteString("  </g>\n")

	if !labels {
		return
	}
	fmt.Fprintf(buf, `  <g font-family="%s" font-size="%.2f" text-anchor="middle" dominant-baseline="central">`+"\n",
		escapeXML(style.Text.Family), style.Text.Size*g.PxPerPt)
	for _, w := range wedges {
		if w.Empty() {
			continue
		}
		x, y := g.Point(style.LabelDistance*style.Radius, w.Mid())
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" transform="rotate(%.2f %.2f %.2f)">%s</text>`+"\n",
			x, y, -w.LabelRotation(), x, y, escapeXML(w.Label))
	}
	buf.WriteString("  </g>\n")
}

// wedgePath outlines an annular sector. Each arc is split at the mid angle
// so no single arc spans more than 180 degrees, which also covers a wedge
// that fills the whole ring.
func wedgePath(g render.Geometry, w chart.Wedge, style chart.RenderStyle) string {
	outer := style.Radius
	inner := math.Max(0, style.Radius-style.Wedge.Width)
	mid := w.Mid()

	var b bytes.Buffer
	x, y := g.Point(outer, w.Theta1)
	fmt.Fprintf(&b, "M%.2f %.2f", x, y)
	arc(&b, g, outer, mid, 1)
	arc(&b, g, outer, w.Theta2, 1)
	if inner > 0 {
		x, y = g.Point(inner, w.Theta2)
		fmt.Fprintf(&b, " L%.2f %.2f", x, y)
		arc(&b, g, inner, mid, 0)
		arc(&b, g, inner, w.Theta1, 0)
	} else {
		fmt.Fprintf(&b, " L%.2f %.2f", g.CenterX, g.CenterY)
	}
	b.WriteString(" Z")
	return b.String()
}

func arc(b *bytes.Buffer, g render.Geometry, r, to float64, sweep int) {
	x, y := g.Point(r, to)
	rp := r * g.Scale
	fmt.Fprintf(b, " A%.2f %.2f 0 0 %d %.2f %.2f", rp, rp, sweep, x, y)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
