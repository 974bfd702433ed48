package chart

import (
	"image/color"
)

// Ring styling constants shared by every ring.
const (
	// StartAngle is the angle of the first wedge edge, in degrees
	// counter-clockwise from 3 o'clock (90 = 12 o'clock).
	StartAngle = 90.0

	// RingWidth is the radial thickness of every ring in data units. With
	// radii 0.5, 1 and 1.5 the three rings tile the disc without gaps.
	RingWidth = 0.5

	// EdgeWidth is the wedge outline width in points.
	EdgeWidth = 0.5
)

// EdgeColor is the wedge outline color.
var EdgeColor = color.NRGBA{A: 0xff}

// Style holds the per-ring drawing parameters.
type Style struct {
	FontFamily    string
	FontSize      float64 // points
	LabelDistance float64 // label anchor distance from the center, data units
	Radius        float64 // outer radius, data units
}

// ColorFunc maps a real-valued palette position to a color.
type ColorFunc func(pos float64) color.NRGBA

// Ring accumulates the wedges of one ring of the chart.
//
// A ring is populated once with [Ring.Append], colorized once with
// [Ring.AssignColors] and then only read. Sizes, Labels and Colors are
// parallel slices in wedge order.
type Ring struct {
	Sizes  []int
	Labels []string
	Colors []color.NRGBA
	Style  Style

	positions []int
}

// NewRing creates an empty ring with the given style.
func NewRing(style Style) *Ring {
	return &Ring{Style: style}
}

// Append adds one wedge after the existing ones. The first wedge starts at
// 12 o'clock and wedges continue clockwise.
func (r *Ring) Append(size int, label string) {
	r.Sizes = append(r.Sizes, size)
	r.Labels = append(r.Labels, label)
}

// Len returns the number of wedges.
func (r *Ring) Len() int { return len(r.Sizes) }

// Total returns the sum of all wedge sizes.
func (r *Ring) Total() int {
	n := 0
	for _, s := range r.Sizes {
		n += s
	}
	return n
}

// AssignColors derives one color per wedge.
//
// For wedge i the running value is v = startOffset + sum(Sizes[:i]). The
// palette position is v when v >= 0 and paletteSize + v otherwise, so a
// negative start samples from the end of the palette and continues from
// the front once the running value reaches zero. With startOffset 0 the
// positions are 0, Sizes[0], Sizes[0]+Sizes[1], ...
func (r *Ring) AssignColors(paletteSize int, sample ColorFunc, startOffset int) {
	r.positions = make([]int, len(r.Sizes))
	r.Colors = make([]color.NRGBA, len(r.Sizes))
	v := startOffset
	for i, size := range r.Sizes {
		pos := v
		if pos < 0 {
			pos += paletteSize
		}
		r.positions[i] = pos
		r.Colors[i] = sample(float64(pos))
		v += size
	}
}

// Positions returns the palette positions used by the last AssignColors
// call, or nil if the ring has not been colorized.
func (r *Ring) Positions() []int { return r.positions }

// TextStyle is the label text configuration of a ring.
type TextStyle struct {
	Family string
	Size   float64 // points
	HAlign string
	VAlign string
}

// WedgeStyle is the wedge shape and outline configuration of a ring.
type WedgeStyle struct {
	Width     float64 // radial thickness, data units
	EdgeColor color.NRGBA
	LineWidth float64 // points
}

// RenderStyle is everything a renderer needs to draw one ring.
type RenderStyle struct {
	Labels        []string
	LabelDistance float64
	RotateLabels  bool
	StartAngle    float64
	CounterClock  bool
	Text          TextStyle
	Radius        float64
	Colors        []color.NRGBA
	Wedge         WedgeStyle
}

// RenderStyle returns the drawing configuration for the ring.
func (r *Ring) RenderStyle() RenderStyle {
	return RenderStyle{
		Labels:        r.Labels,
		LabelDistance: r.Style.LabelDistance,
		RotateLabels:  true,
		StartAngle:    StartAngle,
		CounterClock:  false,
		Text: TextStyle{
			Family: r.Style.FontFamily,
			Size:   r.Style.FontSize,
			HAlign: "center",
			VAlign: "center",
		},
		Radius: r.Style.Radius,
		Colors: r.Colors,
		Wedge: WedgeStyle{
			Width:     RingWidth,
			EdgeColor: EdgeColor,
			LineWidth: EdgeWidth,
		},
	}
}
