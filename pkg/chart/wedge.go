package chart

import (
	"image/color"
	"math"
)

// Wedge is one laid-out slice of a ring.
//
// Angles are in degrees, counter-clockwise from 3 o'clock. Because wedges
// run clockwise, Theta2 <= Theta1.
type Wedge struct {
	Index  int
	Size   int
	Label  string
	Color  color.NRGBA
	Theta1 float64
	Theta2 float64
}

// Empty reports whether the wedge has no angular extent. Empty wedges are
// kept in the ring data but not drawn.
func (w Wedge) Empty() bool { return w.Size == 0 }

// Mid returns the angle halfway between the wedge edges.
func (w Wedge) Mid() float64 { return (w.Theta1 + w.Theta2) / 2 }

// LabelRotation returns the text rotation in degrees for a radial label:
// the mid angle, turned by 180 degrees on the left half so text never reads
// upside down.
func (w Wedge) LabelRotation() float64 {
	mid := w.Mid()
	if math.Cos(mid*math.Pi/180) > 0 {
		return mid
	}
	return mid + 180
}

// Wedges lays out the ring around the circle in order. A ring whose sizes
// sum to zero yields wedges of zero extent.
func (r *Ring) Wedges() []Wedge {
	total := float64(r.Total())
	wedges := make([]Wedge, len(r.Sizes))
	theta := StartAngle
	for i, size := range r.Sizes {
		w := Wedge{Index: i, Size: size, Label: r.Labels[i], Theta1: theta, Theta2: theta}
		if i < len(r.Colors) {
			w.Color = r.Colors[i]
		}
		if total > 0 {
			w.Theta2 = theta - 360*float64(size)/total
		}
		theta = w.Theta2
		wedges[i] = w
	}
	return wedges
}
