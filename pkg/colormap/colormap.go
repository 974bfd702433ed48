// Package colormap provides named colormaps and the discrete palettes
// sampled from them.
//
// Names follow matplotlib ("hsv", "viridis", "tab10", ...) so datasets and
// settings carry over unchanged. Appending "_r" to any name reverses it.
//
// A continuous colormap interpolates linearly in RGB between its stops. A
// listed (qualitative) colormap has a fixed list of colors and picks the
// nearest one. [Colormap.Palette] resamples either kind into n discrete
// colors the same way matplotlib does when a colormap is requested with a
// lookup-table size.
package colormap

import (
	"image/color"
	"math"
	"slices"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	dterrors "github.com/matzehuels/datatree/pkg/errors"
)

// Default is the colormap used when none is configured.
const Default = "hsv"

// reversedSuffix marks a reversed colormap name.
const reversedSuffix = "_r"

// Colormap maps a position in [0, 1] to a color.
type Colormap struct {
	name     string
	fn       func(x float64) colorful.Color
	listed   []colorful.Color
	reversed bool
}

// Name returns the name the colormap was looked up with.
func (c *Colormap) Name() string { return c.name }

// Listed reports whether the colormap is a fixed list of colors.
func (c *Colormap) Listed() bool { return c.listed != nil }

// At returns the color at x. Values outside [0, 1] are clamped.
func (c *Colormap) At(x float64) color.NRGBA {
	return toNRGBA(c.at(x))
}

func (c *Colormap) at(x float64) colorful.Color {
	x = max(0, min(1, x))
	if c.reversed {
		x = 1 - x
	}
	if c.listed != nil {
		n := len(c.listed)
		return c.listed[min(int(x*float64(n)), n-1)]
	}
	return c.fn(x)
}

// Palette resamples the colormap into n evenly spaced colors, the first at
// x=0 and the last at x=1. n <= 0 yields an empty palette.
func (c *Colormap) Palette(n int) Palette {
	if n <= 0 {
		return Palette{}
	}
	p := make(Palette, n)
	for i := range p {
		x := 0.0
		if n > 1 {
			x = float64(i) / float64(n-1)
		}
		p[i] = c.At(x)
	}
	return p
}

// Lookup returns the colormap registered under name. A "_r" suffix returns
// the reversed map. Unknown names return an error with code
// UNKNOWN_COLORMAP.
func Lookup(name string) (*Colormap, error) {
	base, reversed := name, false
	if b, ok := strings.CutSuffix(name, reversedSuffix); ok {
		if _, known := registry[name]; !known {
			base, reversed = b, true
		}
	}
	def, ok := registry[base]
	if !ok {
		return nil, dterrors.New(dterrors.ErrCodeUnknownColormap, "unknown colormap %q", name)
	}
	c := def.build()
	c.name = name
	c.reversed = reversed
	return c, nil
}

// Names returns all registered colormap names, sorted, without reversed
// variants.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Palette is a discrete list of colors indexed by sample position.
type Palette []color.NRGBA

// Sample returns the color at a real-valued position. The position is
// floored to an index; indices below zero or past the end clamp to the
// first or last color. Sampling an empty palette returns transparent black.
func (p Palette) Sample(pos float64) color.NRGBA {
	if len(p) == 0 {
		return color.NRGBA{}
	}
	if math.IsNaN(pos) {
		return p[0]
	}
	i := int(math.Floor(max(-1, min(pos, float64(len(p))))))
	return p[max(0, min(len(p)-1, i))]
}

// Hex returns the palette as "#rrggbb" strings.
func (p Palette) Hex() []string {
	out := make([]string, len(p))
	for i, c := range p {
		out[i] = Hex(c)
	}
	return out
}

// Hex formats an opaque color as "#rrggbb".
func Hex(c color.NRGBA) string {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
}

func toNRGBA(c colorful.Color) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}
