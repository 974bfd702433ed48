// Package render draws a chart into a raster image.
//
// # Overview
//
// Rendering happens in two steps. [Draw] acquires a transparent 1920x1440
// figure (6.4 x 4.8 inches at 300 DPI), draws the inner, mid and outer ring
// around one center and releases the figure. [Finalize] crops the square
// around the chart and resizes it to 1440x1440:
//
//	raw, err := render.Draw(c, &fonts.Resolver{})
//	img, err := render.Finalize(raw)
//	err = img.Save("chart.png")
//
// [Render] does both.
//
// # Geometry
//
// Chart coordinates are data units with the center at the origin. The axes
// span -1.25 to 1.25 in a square centered in the figure's subplot box, so
// the outer ring (radius 1.5) extends past the axes; wedges are not
// clipped. [FigureGeometry] and [OutputGeometry] give the pixel mapping
// before and after Finalize.
//
// # Export
//
// PNG keeps the alpha channel. JPEG has none, so [Image.EncodeJPEG] and
// [Image.SaveJPEG] first flatten the image over white with [Image.ToRGB].
//
// # Format Conversion
//
// [ToPDF] converts SVG output to PDF with the external rsvg-convert tool
// (from librsvg).
package render
