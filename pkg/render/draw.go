package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/matzehuels/datatree/pkg/chart"
	dterrors "github.com/matzehuels/datatree/pkg/errors"
)

var labelColor = color.NRGBA{A: 0xff}

// Draw renders the chart onto a fresh transparent figure and returns the raw
// figure pixels. Rings are drawn inner, mid, outer around one center. The
// figure is released before Draw returns, also on failure.
func Draw(c *chart.Chart, faces FaceSource) (*image.NRGBA, error) {
	if c == nil || c.Inner == nil || c.Mid == nil || c.Outer == nil {
		return nil, dterrors.New(dterrors.ErrCodeInvalidInput, "chart has no rings")
	}

	fig := NewFigure()
	defer fig.Close()

	for _, r := range c.Rings() {
		text := r.RenderStyle().Text
		face, err := faces.Face(text.Family, text.Size)
		if err != nil {
			return nil, err
		}
		if err := fig.DrawRing(r, face); err != nil {
			return nil, fmt.Errorf("draw ring: %w", err)
		}
	}
	return fig.Snapshot()
}

// Render draws the chart and finalizes it into the exported image.
func Render(c *chart.Chart, faces FaceSource) (*Image, error) {
	img, err := Draw(c, faces)
	if err != nil {
		return nil, err
	}
	return Finalize(img)
}
