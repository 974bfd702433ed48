package sink

import (
	"bytes"

	"github.com/matzehuels/datatree/pkg/chart"
)

// RenderJPEG renders the chart as a 1440x1440 JPEG. Transparent areas become
// white.
func RenderJPEG(c *chart.Chart, opts ...RasterOption) ([]byte, error) {
	img, err := RenderImage(c, opts...)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := img.EncodeJPEG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
