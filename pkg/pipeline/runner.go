package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/datatree/pkg/cache"
	"github.com/matzehuels/datatree/pkg/chart"
	"github.com/matzehuels/datatree/pkg/dataset"
	"github.com/matzehuels/datatree/pkg/observability"
)

// DefaultTTL is how long rendered artifacts stay cached.
const DefaultTTL = 7 * 24 * time.Hour

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    DefaultTTL,
	}
}

// Execute runs the complete load → build → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	d, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Dataset = d
	result.Stats.Stats = d.Stats()
	result.Stats.LoadTime = time.Since(loadStart)

	hash, err := HashDataset(d)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.DatasetHash = hash

	r.Logger.Info("loaded dataset",
		"categories", result.Stats.Categories,
		"subcategories", result.Stats.Subcategories,
		"items", result.Stats.Items,
		"duration", result.Stats.LoadTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Build
	buildStart := time.Now()
	c, err := r.Build(ctx, d, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Chart = c
	result.Stats.BuildTime = time.Since(buildStart)

	r.Logger.Info("built chart",
		"colormap", c.Colormap,
		"shift", c.Shift,
		"duration", result.Stats.BuildTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, c, hash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load returns opts.Dataset when set, otherwise reads opts.Input.
func (r *Runner) Load(ctx context.Context, opts Options) (dataset.Dataset, error) {
	source := opts.source()
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, source)
	start := time.Now()

	var (
		d   dataset.Dataset
		err error
	)
	if opts.Dataset != nil {
		d = opts.Dataset.Clone()
	} else {
		d, err = dataset.Import(opts.Input)
	}

	items := 0
	if err == nil {
		items = d.Stats().Items
	}
	hooks.OnLoadComplete(ctx, source, items, time.Since(start), err)
	return d, err
}

// Build populates and colorizes the chart for d.
func (r *Runner) Build(ctx context.Context, d dataset.Dataset, opts Options) (*chart.Chart, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, opts.Chart.Colormap, d.Stats().Items)
	start := time.Now()

	c, err := chart.Build(d, opts.Chart)

	hooks.OnBuildComplete(ctx, opts.Chart.Colormap, time.Since(start), err)
	return c, err
}

// RenderWithCacheInfo generates artifacts with caching and reports whether
// every format was served from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, c *chart.Chart, datasetHash string, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	cacheHooks := observability.Cache()

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if opts.Refresh || datasetHash == "" {
			missing = append(missing, format)
			continue
		}
		key := r.Keyer.ArtifactKey(datasetHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			opts.Logger.Warn("cache read failed", "format", format, "err", err)
		}
		if err == nil && hit {
			cacheHooks.OnCacheHit(ctx, "artifact")
			artifacts[format] = data
			continue
		}
		cacheHooks.OnCacheMiss(ctx, "artifact")
		missing = append(missing, format)
	}

	if len(missing) == 0 {
		return artifacts, true, nil
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, missing)
	start := time.Now()
	rendered, err := RenderArtifacts(ctx, c, missing, opts)
	hooks.OnRenderComplete(ctx, missing, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		if datasetHash == "" {
			continue
		}
		key := r.Keyer.ArtifactKey(datasetHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "err", err)
			continue
		}
		cacheHooks.OnCacheSet(ctx, "artifact", len(data))
	}

	return artifacts, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, c *chart.Chart, datasetHash string, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, c, datasetHash, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// HashDataset returns the content hash of d's canonical JSON encoding.
func HashDataset(d dataset.Dataset) (string, error) {
	var buf bytes.Buffer
	if err := dataset.WriteJSON(d, &buf); err != nil {
		return "", err
	}
	return cache.Hash(buf.Bytes()), nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
