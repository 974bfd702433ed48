package render

import (
	"image"
	"math"
)

// Figure and export dimensions. The figure is 6.4 x 4.8 inches at 300 DPI.
// Finalize crops the square around the chart and resizes it to OutputSize.
const (
	DPI          = 300
	FigureWidth  = 1920
	FigureHeight = 1440
	OutputSize   = 1440

	// Axes limits in data units on both axes.
	axesLimit = 1.25
)

// Subplot box as fractions of the figure, measured from the bottom left.
const (
	subplotLeft   = 0.125
	subplotRight  = 0.9
	subplotBottom = 0.11
	subplotTop    = 0.88
)

// CropBox is the region of the figure kept by Finalize.
var CropBox = image.Rect(315, 55, 1655, 1395)

// Geometry maps chart data units to pixels.
type Geometry struct {
	Width, Height    int
	CenterX, CenterY float64 // pixels, y grows downwards
	Scale            float64 // pixels per data unit
	PxPerPt          float64 // pixels per typographic point
}

// FigureGeometry is the mapping on the full figure canvas. The axes are
// shrunk to a square (equal aspect) centered in the subplot box.
func FigureGeometry() Geometry {
	w, h := float64(FigureWidth), float64(FigureHeight)
	boxW := (subplotRight - subplotLeft) * w
	boxH := (subplotTop - subplotBottom) * h
	side := math.Min(boxW, boxH)
	return Geometry{
		Width:   FigureWidth,
		Height:  FigureHeight,
		CenterX: subplotLeft*w + boxW/2,
		CenterY: h - (subplotBottom*h + boxH/2),
		Scale:   side / (2 * axesLimit),
		PxPerPt: DPI / 72.0,
	}
}

// OutputGeometry is the mapping on the finalized image: the figure mapping
// moved by the crop offset and scaled to OutputSize.
func OutputGeometry() Geometry {
	fg := FigureGeometry()
	k := float64(OutputSize) / float64(CropBox.Dx())
	return Geometry{
		Width:   OutputSize,
		Height:  OutputSize,
		CenterX: (fg.CenterX - float64(CropBox.Min.X)) * k,
		CenterY: (fg.CenterY - float64(CropBox.Min.Y)) * k,
		Scale:   fg.Scale * k,
		PxPerPt: fg.PxPerPt * k,
	}
}

// Point returns the pixel position at radius r (data units) and angle theta
// (degrees, counter-clockwise from 3 o'clock).
func (g Geometry) Point(r, theta float64) (x, y float64) {
	rad := theta * math.Pi / 180
	return g.CenterX + r*g.Scale*math.Cos(rad), g.CenterY - r*g.Scale*math.Sin(rad)
}
