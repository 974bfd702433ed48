// Package chart turns a three-level dataset into three concentric rings.
//
// The inner ring has one wedge per category, the mid ring one per
// subcategory and the outer ring one per item. Wedges start at 12 o'clock
// and run clockwise in dataset order, so every category wedge spans exactly
// the subcategory and item wedges beneath it.
//
// # Building
//
//	c, err := chart.Build(ds, chart.DefaultOptions())
//
// [Build] is [Populate] followed by [Colorize]. Colors come from a palette
// with one entry per item. The inner ring samples the palette from position
// 0; the mid and outer rings start from a shift of -round(items/offset),
// wrapping around the palette end, which rotates their colors against the
// inner ring.
//
// A [Chart] carries no pixels. The render package draws it and the sinks
// package encodes it.
package chart
