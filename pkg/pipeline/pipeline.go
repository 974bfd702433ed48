// Package pipeline provides the load → build → render pipeline for datatree.
//
// The CLI render command, watch mode and the editor all go through this
// package so that caching, defaults and output formats behave the same
// everywhere.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read the dataset JSON file (or take an in-memory dataset)
//  2. Build: Populate and colorize the three rings
//  3. Render: Produce artifacts in the requested formats (PNG, JPEG, SVG, PDF, JSON)
//
// Rendered artifacts are cached by dataset content and options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "dataset.json",
//	    Formats: []string{"png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.Artifacts["png"]
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/datatree/pkg/cache"
	"github.com/matzehuels/datatree/pkg/chart"
	"github.com/matzehuels/datatree/pkg/dataset"
	dterrors "github.com/matzehuels/datatree/pkg/errors"
	"github.com/matzehuels/datatree/pkg/fonts"
	"github.com/matzehuels/datatree/pkg/render"
)

// Format constants for output formats.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatSVG  = "svg"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// DefaultFormat is rendered when no format is requested.
const DefaultFormat = FormatPNG

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatJPEG: true,
	FormatSVG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// Extensions maps each format to its file extension.
var Extensions = map[string]string{
	FormatPNG:  ".png",
	FormatJPEG: ".jpg",
	FormatSVG:  ".svg",
	FormatPDF:  ".pdf",
	FormatJSON: ".json",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// Input is the dataset file. Ignored when Dataset is set.
	Input string
	// Dataset is an already loaded dataset, as held by the editor.
	Dataset dataset.Dataset

	Chart   chart.Options
	Formats []string

	// Refresh bypasses cached artifacts and overwrites them.
	Refresh bool

	// Runtime options
	Logger *log.Logger
	Fonts  render.FaceSource

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Dataset     dataset.Dataset
	DatasetHash string
	Chart       *chart.Chart
	Artifacts   map[string][]byte
	Stats       Stats
	CacheInfo   CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	dataset.Stats
	LoadTime   time.Duration
	BuildTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// NormalizeFormat lowercases a format name and maps "jpg" to "jpeg".
func NormalizeFormat(format string) string {
	f := strings.ToLower(strings.TrimSpace(format))
	if f == "jpg" {
		return FormatJPEG
	}
	return f
}

// ValidateFormat checks that a normalized format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return dterrors.New(dterrors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: png, jpeg, svg, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Dataset == nil && o.Input == "" {
		return dterrors.New(dterrors.ErrCodeInvalidInput, "input file or dataset is required")
	}

	o.Chart = o.Chart.WithDefaults()

	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	formats := make([]string, 0, len(o.Formats))
	for _, f := range o.Formats {
		f = NormalizeFormat(f)
		if !slices.Contains(formats, f) {
			formats = append(formats, f)
		}
	}
	if err := ValidateFormats(formats); err != nil {
		return err
	}
	o.Formats = formats

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Fonts == nil {
		o.Fonts = fonts.Default()
	}
	o.validated = true
	return nil
}

// ArtifactKeyOpts returns cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		Colormap:   o.Chart.Colormap,
		Offset:     o.Chart.Offset,
		FontFamily: o.Chart.FontFamily,
		FontSizes:  [3]float64(o.Chart.FontSizes),
	}
}

// source names the dataset origin for logs and hooks.
func (o *Options) source() string {
	if o.Dataset != nil {
		return "<memory>"
	}
	return o.Input
}

// ArtifactPath returns the output path for format next to dir, named after
// the input file: data/dataset.json → dir/dataset.png.
func ArtifactPath(input, dir, format string) string {
	base := input
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	if base == "" {
		base = "chart"
	}
	name := base + Extensions[format]
	if dir == "" {
		return name
	}
	return fmt.Sprintf("%s/%s", strings.TrimRight(dir, `/`), name)
}
