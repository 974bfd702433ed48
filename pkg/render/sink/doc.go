// Package sink provides output format renderers for charts.
//
// # Overview
//
// A "sink" transforms a built [chart.Chart] into a final output format:
//
//   - PNG: 1440x1440 raster with a transparent background
//   - JPEG: the same raster flattened over white
//   - SVG: the ring geometry as vector paths on the same canvas
//   - PDF: SVG converted with rsvg-convert
//   - JSON: ring data for external tools
//
// # Raster Output
//
// [RenderPNG] and [RenderJPEG] draw through the render package. Labels use
// fonts from [fonts.Default] unless [WithFonts] supplies another source:
//
//	png, err := sink.RenderPNG(c)
//	jpg, err := sink.RenderJPEG(c, sink.WithFonts(resolver))
//
// # PDF Output
//
// [RenderPDF] requires librsvg to be installed:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [chart.Chart]: github.com/matzehuels/datatree/pkg/chart.Chart
// [fonts.Default]: github.com/matzehuels/datatree/pkg/fonts.Default
package sink
