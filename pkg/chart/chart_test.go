package chart

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/datatree/pkg/colormap"
	"github.com/matzehuels/datatree/pkg/dataset"
	dterrors "github.com/matzehuels/datatree/pkg/errors"
)

func scenario() dataset.Dataset {
	return dataset.Dataset{
		{Name: "A", Subcategories: []dataset.Subcategory{{Name: "x", Items: []string{"i1", "i2"}}}},
		{Name: "B", Subcategories: []dataset.Subcategory{{Name: "y", Items: []string{"i3"}}}},
	}
}

// flat builds a dataset with one category per entry of counts, each holding
// one subcategory with that many items.
func flat(counts ...int) dataset.Dataset {
	var d dataset.Dataset
	for i, n := range counts {
		items := make([]string, n)
		for j := range items {
			items[j] = string(rune('a'+i)) + string(rune('0'+j))
		}
		name := string(rune('A' + i))
		d = append(d, dataset.Category{Name: name, Subcategories: []dataset.Subcategory{{Name: name + "s", Items: items}}})
	}
	return d
}

func TestBuildScenario(t *testing.T) {
	c, err := Build(scenario(), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []int{1, 1, 1}, c.Outer.Sizes)
	assert.Equal(t, []string{"i1", "i2", "i3"}, c.Outer.Labels)
	assert.Equal(t, []int{2, 1}, c.Mid.Sizes)
	assert.Equal(t, []string{"x", "y"}, c.Mid.Labels)
	assert.Equal(t, []int{2, 1}, c.Inner.Sizes)
	assert.Equal(t, []string{"A", "B"}, c.Inner.Labels)

	// 3 items at offset 20 round to no shift.
	assert.Equal(t, 0, c.Shift)
	assert.Equal(t, []int{0, 1, 2}, c.Outer.Positions())
	assert.Equal(t, []int{0, 2}, c.Mid.Positions())
	assert.Equal(t, []int{0, 2}, c.Inner.Positions())
	assert.Len(t, c.Palette, 3)
	assert.Equal(t, c.Palette[0], c.Outer.Colors[0])
	assert.Equal(t, c.Palette[2], c.Inner.Colors[1])
}

func TestBuildRingInvariants(t *testing.T) {
	tests := []struct {
		name string
		ds   dataset.Dataset
	}{
		{"scenario", scenario()},
		{"flat", flat(3, 1, 4, 1, 5)},
		{"empty subcategory", dataset.Dataset{
			{Name: "A", Subcategories: []dataset.Subcategory{
				{Name: "x", Items: []string{"i1"}},
				{Name: "empty", Items: []string{}},
			}},
		}},
		{"empty category", dataset.Dataset{
			{Name: "A"},
			{Name: "B", Subcategories: []dataset.Subcategory{{Name: "y", Items: []string{"i1", "i1"}}}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Build(tt.ds, DefaultOptions())
			require.NoError(t, err)

			total := c.Outer.Total()
			for _, r := range c.Rings() {
				assert.Equal(t, total, r.Total())
				assert.Len(t, r.Labels, r.Len())
				assert.Len(t, r.Colors, r.Len())
				assert.Len(t, r.Positions(), r.Len())
			}
			assert.Equal(t, tt.ds.Stats().Items, c.Outer.Len())
			assert.Equal(t, tt.ds.Stats().Categories, c.Inner.Len())
		})
	}
}

func TestBuildEmptySubcategory(t *testing.T) {
	ds := dataset.Dataset{
		{Name: "A", Subcategories: []dataset.Subcategory{
			{Name: "x", Items: []string{"i1"}},
			{Name: "empty", Items: []string{}},
			{Name: "z", Items: []string{"i2"}},
		}},
	}
	c, err := Build(ds, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []int{1, 0, 1}, c.Mid.Sizes)
	assert.Equal(t, []string{"x", "empty", "z"}, c.Mid.Labels)
	assert.Equal(t, []string{"i1", "i2"}, c.Outer.Labels)

	w := c.Mid.Wedges()
	require.Len(t, w, 3)
	assert.True(t, w[1].Empty())
	assert.Equal(t, w[1].Theta1, w[1].Theta2)
}

func TestBuildEmptyDataset(t *testing.T) {
	for _, ds := range []dataset.Dataset{nil, {{Name: "A"}}, {{Name: "A", Subcategories: []dataset.Subcategory{{Name: "x"}}}}} {
		_, err := Build(ds, DefaultOptions())
		require.Error(t, err)
		assert.True(t, dterrors.Is(err, dterrors.ErrCodeEmptyDataset))
	}
}

func TestBuildUnknownColormap(t *testing.T) {
	opts := DefaultOptions()
	opts.Colormap = "nope"
	_, err := Build(scenario(), opts)
	require.Error(t, err)
	assert.True(t, dterrors.Is(err, dterrors.ErrCodeUnknownColormap))
}

func TestBuildZeroOffsetMatchesUnshifted(t *testing.T) {
	opts := DefaultOptions()
	opts.Offset = 0
	c, err := Build(flat(2, 3, 5), opts)
	require.NoError(t, err)

	assert.Equal(t, 0, c.Shift)
	assert.Equal(t, []int{0, 2, 5}, c.Mid.Positions())
	assert.Equal(t, c.Inner.Positions(), c.Mid.Positions())
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, c.Outer.Positions())
}

func TestBuildShiftWrapsPalette(t *testing.T) {
	opts := DefaultOptions()
	opts.Offset = 2
	c, err := Build(flat(4, 6), opts)
	require.NoError(t, err)

	// 10 items / offset 2 -> shift -5.
	assert.Equal(t, -5, c.Shift)
	assert.Equal(t, []int{5, 6, 7, 8, 9, 0, 1, 2, 3, 4}, c.Outer.Positions())
	assert.Equal(t, []int{5, 9}, c.Mid.Positions())
	assert.Equal(t, []int{0, 4}, c.Inner.Positions())
	assert.Equal(t, c.Palette[5], c.Outer.Colors[0])
	assert.Equal(t, c.Palette[0], c.Outer.Colors[5])
}

func TestShiftFor(t *testing.T) {
	tests := []struct {
		total  int
		offset float64
		want   int
	}{
		{3, 20, 0},
		{30, 20, -2},
		{10, 20, 0},
		{50, 20, -2},
		{70, 20, -4},
		{90, 20, -4},
		{100, 20, -5},
		{10, 0, 0},
		{10, -2, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ShiftFor(tt.total, tt.offset), "ShiftFor(%d, %v)", tt.total, tt.offset)
	}
}

func TestAssignColors(t *testing.T) {
	p := colormap.Palette{
		{R: 0, A: 255}, {R: 1, A: 255}, {R: 2, A: 255}, {R: 3, A: 255}, {R: 4, A: 255},
	}

	r := NewRing(Style{})
	r.Append(1, "a")
	r.Append(2, "b")
	r.Append(2, "c")

	r.AssignColors(5, p.Sample, 0)
	assert.Equal(t, []int{0, 1, 3}, r.Positions())

	r.AssignColors(5, p.Sample, -2)
	assert.Equal(t, []int{3, 4, 1}, r.Positions())
	assert.Equal(t, []color.NRGBA{p[3], p[4], p[1]}, r.Colors)
}

func TestWedgesRunClockwiseFromTop(t *testing.T) {
	r := NewRing(Style{})
	r.Append(1, "a")
	r.Append(3, "b")

	w := r.Wedges()
	require.Len(t, w, 2)
	assert.Equal(t, 90.0, w[0].Theta1)
	assert.InDelta(t, 0.0, w[0].Theta2, 1e-9)
	assert.InDelta(t, 0.0, w[1].Theta1, 1e-9)
	assert.InDelta(t, -270.0, w[1].Theta2, 1e-9)
	assert.InDelta(t, 45.0, w[0].Mid(), 1e-9)

	// Right half keeps the mid angle, left half is flipped.
	assert.InDelta(t, 45.0, w[0].LabelRotation(), 1e-9)
	assert.InDelta(t, 45.0, w[1].LabelRotation(), 1e-9)
}

func TestRenderStyle(t *testing.T) {
	c, err := Build(scenario(), DefaultOptions())
	require.NoError(t, err)

	s := c.Outer.RenderStyle()
	assert.Equal(t, OuterRadius, s.Radius)
	assert.Equal(t, OuterLabelDistance, s.LabelDistance)
	assert.Equal(t, 90.0, s.StartAngle)
	assert.False(t, s.CounterClock)
	assert.True(t, s.RotateLabels)
	assert.Equal(t, "Ebrima", s.Text.Family)
	assert.Equal(t, 6.5, s.Text.Size)
	assert.Equal(t, "center", s.Text.HAlign)
	assert.Equal(t, 0.5, s.Wedge.Width)
	assert.Equal(t, EdgeColor, s.Wedge.EdgeColor)
	assert.Equal(t, c.Outer.Colors, s.Colors)

	assert.Equal(t, 8.0, c.Inner.RenderStyle().Text.Size)
	assert.Equal(t, 7.0, c.Mid.RenderStyle().Text.Size)
}
