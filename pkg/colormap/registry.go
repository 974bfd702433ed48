package colormap

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// stop is one control point of a continuous colormap.
type stop struct {
	pos float64
	hex string
}

// definition describes how to build a registered colormap. Exactly one of
// fn, stops or listed is set.
type definition struct {
	fn     func(x float64) colorful.Color
	stops  []stop
	listed []string
}

func (d definition) build() *Colormap {
	switch {
	case d.fn != nil:
		return &Colormap{fn: d.fn}
	case d.listed != nil:
		colors := make([]colorful.Color, len(d.listed))
		for i, h := range d.listed {
			colors[i] = mustHex(h)
		}
		return &Colormap{listed: colors}
	default:
		return &Colormap{fn: interpolate(d.stops)}
	}
}

// interpolate blends linearly in RGB between the two stops around x.
func interpolate(stops []stop) func(float64) colorful.Color {
	colors := make([]colorful.Color, len(stops))
	for i, s := range stops {
		colors[i] = mustHex(s.hex)
	}
	return func(x float64) colorful.Color {
		if x <= stops[0].pos {
			return colors[0]
		}
		for i := 1; i < len(stops); i++ {
			if x <= stops[i].pos {
				lo, hi := stops[i-1].pos, stops[i].pos
				if hi == lo {
					return colors[i]
				}
				return colors[i-1].BlendRgb(colors[i], (x-lo)/(hi-lo))
			}
		}
		return colors[len(colors)-1]
	}
}

// even spaces hex colors uniformly over [0, 1].
func even(hexes ...string) []stop {
	stops := make([]stop, len(hexes))
	for i, h := range hexes {
		stops[i] = stop{pos: float64(i) / float64(len(hexes)-1), hex: h}
	}
	return stops
}

func mustHex(h string) colorful.Color {
	c, err := colorful.Hex(h)
	if err != nil {
		panic(fmt.Sprintf("colormap: bad color %q: %v", h, err))
	}
	return c
}

// hsv sweeps the full hue circle at full saturation and value, starting and
// ending at red.
func hsv(x float64) colorful.Color {
	return colorful.Hsv(math.Mod(360*x, 360), 1, 1)
}

var registry = map[string]definition{
	"hsv": {fn: hsv},

	// Perceptually uniform sequential maps.
	"viridis": {stops: even("#440154", "#482878", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725")},
	"plasma":  {stops: even("#0d0887", "#46039f", "#7201a8", "#9c179e", "#bd3786", "#d8576b", "#ed7953", "#fb9f3a", "#fdca26", "#f0f921")},
	"inferno": {stops: even("#000004", "#1b0c41", "#4a0c6b", "#781c6d", "#a52c60", "#cf4446", "#ed6925", "#fb9b06", "#f7d13d", "#fcffa4")},
	"magma":   {stops: even("#000004", "#180f3d", "#440f76", "#721f81", "#9e2f7f", "#cd4071", "#f1605d", "#fd9668", "#feca8d", "#fcfdbf")},
	"cividis": {stops: even("#00224e", "#123570", "#3b496c", "#575d6d", "#707173", "#8a8779", "#a69d75", "#c4b56c", "#e4cf5b", "#fee838")},

	// Cyclic and rainbow-like maps.
	"twilight": {stops: even("#e2d9e2", "#a6bfcb", "#6f8ec2", "#5d5bb1", "#4e2d7d", "#2f1436", "#5e1c3f", "#9a3a45", "#c0715b", "#d6ad99", "#e2d9e2")},
	"turbo":    {stops: even("#30123b", "#4145ab", "#4675ed", "#39a2fc", "#1bcfd4", "#24eca6", "#61fc6c", "#a4fc3b", "#d1e834", "#f3c63a", "#fe9b2d", "#f36315", "#d93806", "#b11901", "#7a0403")},
	"rainbow":  {stops: even("#8000ff", "#4062fa", "#00b5eb", "#40ecd4", "#80ffb4", "#c0eb8d", "#ffb360", "#ff6231", "#ff0000")},
	"jet": {stops: []stop{
		{0, "#00007f"}, {0.125, "#0000ff"}, {0.375, "#00ffff"},
		{0.625, "#ffff00"}, {0.875, "#ff0000"}, {1, "#7f0000"},
	}},

	// Diverging maps.
	"coolwarm": {stops: even("#3b4cc0", "#688aef", "#99baff", "#c9d8ef", "#edd1c2", "#f7a789", "#e36a53", "#b40426")},
	"Spectral": {stops: even("#9e0142", "#d53e4f", "#f46d43", "#fdae61", "#fee08b", "#ffffbf", "#e6f598", "#abdda4", "#66c2a5", "#3288bd", "#5e4fa2")},
	"RdYlGn":   {stops: even("#a50026", "#d73027", "#f46d43", "#fdae61", "#fee08b", "#ffffbf", "#d9ef8b", "#a6d96a", "#66bd63", "#1a9850", "#006837")},

	// Single-hue sequential maps.
	"gray":   {stops: even("#000000", "#ffffff")},
	"Greys":  {stops: even("#ffffff", "#f0f0f0", "#d9d9d9", "#bdbdbd", "#969696", "#737373", "#525252", "#252525", "#000000")},
	"Blues":  {stops: even("#f7fbff", "#deebf7", "#c6dbef", "#9ecae1", "#6baed6", "#4292c6", "#2171b5", "#08519c", "#08306b")},
	"Reds":   {stops: even("#fff5f0", "#fee0d2", "#fcbba1", "#fc9272", "#fb6a4a", "#ef3b2c", "#cb181d", "#a50f15", "#67000d")},
	"Greens": {stops: even("#f7fcf5", "#e5f5e0", "#c7e9c0", "#a1d99b", "#74c476", "#41ab5d", "#238b45", "#006d2c", "#00441b")},

	// Qualitative maps.
	"tab10":   {listed: []string{"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd", "#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf"}},
	"Set1":    {listed: []string{"#e41a1c", "#377eb8", "#4daf4a", "#984ea3", "#ff7f00", "#ffff33", "#a65628", "#f781bf", "#999999"}},
	"Set2":    {listed: []string{"#66c2a5", "#fc8d62", "#8da0cb", "#e78ac3", "#a6d854", "#ffd92f", "#e5c494", "#b3b3b3"}},
	"Set3":    {listed: []string{"#8dd3c7", "#ffffb3", "#bebada", "#fb8072", "#80b1d3", "#fdb462", "#b3de69", "#fccde5", "#d9d9d9", "#bc80bd", "#ccebc5", "#ffed6f"}},
	"Pastel1": {listed: []string{"#fbb4ae", "#b3cde3", "#ccebc5", "#decbe4", "#fed9a6", "#ffffcc", "#e5d8bd", "#fddaec", "#f2f2f2"}},
	"Paired":  {listed: []string{"#a6cee3", "#1f78b4", "#b2df8a", "#33a02c", "#fb9a99", "#e31a1c", "#fdbf6f", "#ff7f00", "#cab2d6", "#6a3d9a", "#ffff99", "#b15928"}},
	"Dark2":   {listed: []string{"#1b9e77", "#d95f02", "#7570b3", "#e7298a", "#66a61e", "#e6ab02", "#a6761d", "#666666"}},
}
