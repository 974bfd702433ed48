package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/datatree/pkg/chart"
	"github.com/matzehuels/datatree/pkg/render"
	"github.com/matzehuels/datatree/pkg/render/sink"
)

// RenderArtifacts renders c in each of formats. PNG and JPEG share one
// rasterization.
func RenderArtifacts(ctx context.Context, c *chart.Chart, formats []string, opts Options) (map[string][]byte, error) {
	faces := opts.Fonts
	artifacts := make(map[string][]byte, len(formats))

	var img *render.Image
	raster := func() (*render.Image, error) {
		if img != nil {
			return img, nil
		}
		var err error
		img, err = sink.RenderImage(c, sink.WithFonts(faces))
		return img, err
	}

	for _, format := range formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var (
			data []byte
			err  error
		)
		switch format {
		case FormatPNG, FormatJPEG:
			data, err = encodeRaster(raster, format)
		case FormatSVG:
			data = sink.RenderSVG(c)
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, c)
		case FormatJSON:
			data, err = sink.RenderJSON(c, sink.WithJSONWedges())
		default:
			err = ValidateFormat(format)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func encodeRaster(raster func() (*render.Image, error), format string) ([]byte, error) {
	img, err := raster()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if format == FormatJPEG {
		err = img.EncodeJPEG(&buf)
	} else {
		err = img.EncodePNG(&buf)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
