package sink

import (
	"encoding/json"

	"github.com/matzehuels/datatree/pkg/chart"
	"github.com/matzehuels/datatree/pkg/colormap"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	wedges bool
}

// WithJSONWedges includes the laid-out wedge angles of every ring.
func WithJSONWedges() JSONOption { return func(r *jsonRenderer) { r.wedges = true } }

type jsonOutput struct {
	Colormap string     `json:"colormap"`
	Offset   float64    `json:"offset"`
	Shift    int        `json:"shift"`
	Palette  []string   `json:"palette"`
	Rings    []jsonRing `json:"rings"`
}

type jsonRing struct {
	Name          string      `json:"name"`
	Radius        float64     `json:"radius"`
	Width         float64     `json:"width"`
	LabelDistance float64     `json:"label_distance"`
	FontFamily    string      `json:"font_family"`
	FontSize      float64     `json:"font_size"`
	Sizes         []int       `json:"sizes"`
	Labels        []string    `json:"labels"`
	Colors        []string    `json:"colors"`
	Positions     []int       `json:"positions"`
	Wedges        []jsonWedge `json:"wedges,omitempty"`
}

type jsonWedge struct {
	Label  string  `json:"label"`
	Theta1 float64 `json:"theta1"`
	Theta2 float64 `json:"theta2"`
}

var ringNames = []string{"inner", "mid", "outer"}

// RenderJSON exports ring sizes, labels, colors and style for external
// tools and debugging.
func RenderJSON(c *chart.Chart, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Colormap: c.Colormap,
		Offset:   c.Offset,
		Shift:    c.Shift,
		Palette:  c.Palette.Hex(),
	}
	for i, ring := range c.Rings() {
		style := ring.RenderStyle()
		jr := jsonRing{
			Name:          ringNames[i],
			Radius:        style.Radius,
			Width:         style.Wedge.Width,
			LabelDistance: style.LabelDistance,
			FontFamily:    style.Text.Family,
			FontSize:      style.Text.Size,
			Sizes:         ring.Sizes,
			Labels:        ring.Labels,
			Colors:        colormap.Palette(ring.Colors).Hex(),
			Positions:     ring.Positions(),
		}
		if r.wedges {
			for _, w := range ring.Wedges() {
				jr.Wedges = append(jr.Wedges, jsonWedge{Label: w.Label, Theta1: w.Theta1, Theta2: w.Theta2})
			}
		}
		out.Rings = append(out.Rings, jr)
	}
	return json.MarshalIndent(out, "", "  ")
}
