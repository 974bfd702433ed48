// Package pkg provides the core libraries for datatree.
//
// # Overview
//
// Datatree draws a three-level dataset (categories, subcategories, items) as
// three concentric rings around one center. Categories form the inner ring,
// subcategories the middle ring and items the outer ring; every item is one
// unit of angle, so a wedge's extent is the number of items below it.
//
// # Architecture
//
// The typical data flow through datatree:
//
//	dataset JSON file
//	         ↓
//	    [dataset] package (ordered categories → subcategories → items)
//	         ↓
//	    [chart] package (populate three rings, colorize from a colormap)
//	         ↓
//	    [render] package (draw on a transparent figure, crop, resize)
//	         ↓
//	    PNG/JPEG/SVG/PDF/JSON output ([render/sink])
//
// # Quick Start
//
// Build a chart and write a PNG:
//
//	import (
//	    "github.com/matzehuels/datatree/pkg/chart"
//	    "github.com/matzehuels/datatree/pkg/dataset"
//	    "github.com/matzehuels/datatree/pkg/render/sink"
//	)
//
//	d, _ := dataset.Import("dataset.json")
//	opts := chart.DefaultOptions()
//	opts.FontFamily = "Go"
//	c, _ := chart.Build(d, opts)
//	png, _ := sink.RenderPNG(c)
//
// Or use the [pipeline] package, which adds caching and hooks:
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	result, _ := runner.Execute(ctx, pipeline.Options{Input: "dataset.json"})
//
// # Package Organization
//
// ## Data
//
// [dataset] - The ordered dataset, its JSON codec and the editable Document
// tree used by the terminal editor.
//
// [colormap] - Named colormaps and discrete palettes.
//
// ## Drawing
//
// [chart] - Rings, wedges and the composition of the three-ring chart.
//
// [fonts] - Font family resolution (embedded Go fonts, then system fonts).
//
// [render] - Raster drawing and export; [render/sink] - output formats.
//
// ## Infrastructure
//
// [pipeline] - Load → build → render with caching, used by every command.
//
// [cache] - Artifact caches (file, Redis, none).
//
// [config] - TOML configuration with validated defaults.
//
// [observability] - Hooks for pipeline and cache events.
//
// [watch] - Debounced file watching for live re-rendering.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test -run Example ./pkg/...       # Examples only
//	go test -tags integration ./pkg/...  # Include Redis tests
//
// [dataset]: https://pkg.go.dev/github.com/matzehuels/datatree/pkg/dataset
// [colormap]: https://pkg.go.dev/github.com/matzehuels/datatree/pkg/colormap
// [chart]: https://pkg.go.dev/github.com/matzehuels/datatree/pkg/chart
// [fonts]: https://pkg.go.dev/github.com/matzehuels/datatree/pkg/fonts
// [render]: https://pkg.go.dev/github.com/matzehuels/datatree/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/datatree/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/datatree/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/datatree/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/datatree/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/datatree/pkg/observability
// [watch]: https://pkg.go.dev/github.com/matzehuels/datatree/pkg/watch
package pkg
