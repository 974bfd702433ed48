package render

import (
	"image"
	"image/draw"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/datatree/pkg/chart"
	dterrors "github.com/matzehuels/datatree/pkg/errors"
)

// FaceSource resolves a font family and size in points to a face.
// *fonts.Resolver implements it.
type FaceSource interface {
	Face(family string, points float64) (font.Face, error)
}

// Figure is a transparent drawing surface. Acquire it with [NewFigure] and
// release it with [Figure.Close]; a closed figure cannot be drawn on.
type Figure struct {
	dc  *gg.Context
	geo Geometry
}

// NewFigure acquires a blank transparent figure.
func NewFigure() *Figure {
	return newFigure(FigureGeometry())
}

func newFigure(geo Geometry) *Figure {
	return &Figure{dc: gg.NewContext(geo.Width, geo.Height), geo: geo}
}

// Close releases the drawing surface. It is safe to call more than once.
func (f *Figure) Close() error {
	f.dc = nil
	return nil
}

// Geometry returns the data-to-pixel mapping of the figure.
func (f *Figure) Geometry() Geometry { return f.geo }

// Snapshot copies the current pixels.
func (f *Figure) Snapshot() (*image.NRGBA, error) {
	if f.dc == nil {
		return nil, dterrors.New(dterrors.ErrCodeInternal, "figure is closed")
	}
	src := f.dc.Image()
	dst := image.NewNRGBA(src.Bounds())
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
	return dst, nil
}

// DrawRing draws the wedges of one ring and then their labels. Zero-size
// wedges are skipped.
func (f *Figure) DrawRing(r *chart.Ring, face font.Face) error {
	if f.dc == nil {
		return dterrors.New(dterrors.ErrCodeInternal, "figure is closed")
	}
	style := r.RenderStyle()
	wedges := r.Wedges()
	for _, w := range wedges {
		if w.Empty() {
			continue
		}
		f.drawWedge(w, style)
	}
	if face == nil {
		return nil
	}
	f.dc.SetFontFace(face)
	for _, w := range wedges {
		if w.Empty() {
			continue
		}
		f.drawLabel(w, style)
	}
	return nil
}

// drawWedge fills and outlines an annular sector. gg measures angles
// clockwise on screen, so data angles are negated.
func (f *Figure) drawWedge(w chart.Wedge, style chart.RenderStyle) {
	dc, g := f.dc, f.geo
	outer := style.Radius * g.Scale
	inner := math.Max(0, style.Radius-style.Wedge.Width) * g.Scale
	a1, a2 := gg.Radians(-w.Theta1), gg.Radians(-w.Theta2)

	dc.NewSubPath()
	dc.DrawArc(g.CenterX, g.CenterY, outer, a1, a2)
	if inner > 0 {
		dc.DrawArc(g.CenterX, g.CenterY, inner, a2, a1)
	} else {
		dc.LineTo(g.CenterX, g.CenterY)
	}
	dc.ClosePath()

	dc.SetColor(w.Color)
	dc.FillPreserve()
	dc.SetColor(style.Wedge.EdgeColor)
	dc.SetLineWidth(style.Wedge.LineWidth * g.PxPerPt)
	dc.SetLineJoinRound()
	dc.Stroke()
}

// drawLabel centers the label at the label distance along the wedge's mid
// angle, rotated to read outwards.
func (f *Figure) drawLabel(w chart.Wedge, style chart.RenderStyle) {
	dc := f.dc
	x, y := f.geo.Point(style.LabelDistance*style.Radius, w.Mid())
	dc.Push()
	defer dc.Pop()
	if style.RotateLabels {
		dc.RotateAbout(gg.Radians(-w.LabelRotation()), x, y)
	}
	dc.SetColor(labelColor)
	dc.DrawStringAnchored(w.Label, x, y, 0.5, 0.5)
}
