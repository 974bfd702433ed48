package chart

import (
	"math"

	"github.com/matzehuels/datatree/pkg/colormap"
	"github.com/matzehuels/datatree/pkg/dataset"
	dterrors "github.com/matzehuels/datatree/pkg/errors"
)

// Ring geometry in data units. Rings share one center; labels sit between
// the inner and outer edge of their ring.
const (
	InnerRadius        = 0.5
	InnerLabelDistance = 0.6
	MidRadius          = 1.0
	MidLabelDistance   = 0.77
	OuterRadius        = 1.5
	OuterLabelDistance = 0.85
)

// Chart is three colorized rings ready to be drawn.
type Chart struct {
	Inner *Ring // categories
	Mid   *Ring // subcategories
	Outer *Ring // items

	Colormap string
	Offset   float64
	Shift    int
	Palette  colormap.Palette
}

// Rings returns the rings in drawing order: inner, mid, outer.
func (c *Chart) Rings() []*Ring {
	return []*Ring{c.Inner, c.Mid, c.Outer}
}

// NewRings returns empty inner, mid and outer rings styled with the given
// font family and sizes.
func NewRings(family string, sizes FontSizes) (inner, mid, outer *Ring) {
	inner = NewRing(Style{FontFamily: family, FontSize: sizes[0], LabelDistance: InnerLabelDistance, Radius: InnerRadius})
	mid = NewRing(Style{FontFamily: family, FontSize: sizes[1], LabelDistance: MidLabelDistance, Radius: MidRadius})
	outer = NewRing(Style{FontFamily: family, FontSize: sizes[2], LabelDistance: OuterLabelDistance, Radius: OuterRadius})
	return inner, mid, outer
}

// Populate fills the three rings in one pass over d, in order at every
// level. Each item becomes an outer wedge of size 1; each subcategory a mid
// wedge sized by its item count; each category an inner wedge sized by the
// sum of its subcategories. All three rings therefore have the same total.
func Populate(d dataset.Dataset, inner, mid, outer *Ring) {
	for _, cat := range d {
		catSize := 0
		for _, sub := range cat.Subcategories {
			for _, item := range sub.Items {
				outer.Append(1, item)
			}
			mid.Append(len(sub.Items), sub.Name)
			catSize += len(sub.Items)
		}
		inner.Append(catSize, cat.Name)
	}
}

// ShiftFor returns the color shift for a chart with total outer wedges:
// -round(total / offset) with halves rounded to even, or 0 when offset is
// 0. With offset 20, 50 items shift by -2 and 10 items not at all.
func ShiftFor(total int, offset float64) int {
	if offset == 0 {
		return 0
	}
	return int(-math.RoundToEven(float64(total) / offset))
}

// Colorize samples a palette with one color per outer wedge from cmap and
// assigns colors to every ring. The inner ring starts at palette position
// 0; the mid and outer rings start at the shift derived from offset.
func Colorize(c *Chart, cmap *colormap.Colormap, offset float64) error {
	n := c.Outer.Len()
	if n == 0 {
		return dterrors.New(dterrors.ErrCodeEmptyDataset, "dataset has no items")
	}
	c.Colormap = cmap.Name()
	c.Offset = offset
	c.Shift = ShiftFor(n, offset)
	c.Palette = cmap.Palette(n)

	c.Outer.AssignColors(n, c.Palette.Sample, c.Shift)
	c.Mid.AssignColors(n, c.Palette.Sample, c.Shift)
	c.Inner.AssignColors(n, c.Palette.Sample, 0)
	return nil
}

// Build turns a dataset into a colorized chart. Zero-size wedges from empty
// categories or subcategories are kept.
func Build(d dataset.Dataset, opts Options) (*Chart, error) {
	cmap, err := colormap.Lookup(opts.Colormap)
	if err != nil {
		return nil, err
	}
	c := &Chart{}
	c.Inner, c.Mid, c.Outer = NewRings(opts.FontFamily, opts.FontSizes)
	Populate(d, c.Inner, c.Mid, c.Outer)
	if err := Colorize(c, cmap, opts.Offset); err != nil {
		return nil, err
	}
	return c, nil
}
