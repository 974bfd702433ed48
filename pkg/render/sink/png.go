package sink

import (
	"bytes"

	"github.com/matzehuels/datatree/pkg/chart"
	"github.com/matzehuels/datatree/pkg/fonts"
	"github.com/matzehuels/datatree/pkg/render"
)

// RasterOption configures PNG and JPEG rendering.
type RasterOption func(*rasterRenderer)

type rasterRenderer struct {
	faces render.FaceSource
}

// WithFonts sets the font source for labels (default [fonts.Default]).
func WithFonts(f render.FaceSource) RasterOption {
	return func(r *rasterRenderer) { r.faces = f }
}

func newRasterRenderer(opts ...RasterOption) rasterRenderer {
	r := rasterRenderer{faces: fonts.Default()}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderImage draws and finalizes the chart.
func RenderImage(c *chart.Chart, opts ...RasterOption) (*render.Image, error) {
	r := newRasterRenderer(opts...)
	return render.Render(c, r.faces)
}

// RenderPNG renders the chart as a 1440x1440 PNG with a transparent
// background.
func RenderPNG(c *chart.Chart, opts ...RasterOption) ([]byte, error) {
	img, err := RenderImage(c, opts...)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := img.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
