package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/datatree/pkg/chart"
	"github.com/matzehuels/datatree/pkg/config"
	"github.com/matzehuels/datatree/pkg/pipeline"
	"github.com/matzehuels/datatree/pkg/watch"
)

// renderOpts holds the command-line flags for the render command.
// Chart flags only override the config file when set explicitly.
type renderOpts struct {
	output     string          // output file (single format) or base path (multiple)
	dir        string          // output directory when output is empty
	formats    string          // comma-separated output formats
	colormap   string          // colormap name
	offset     float64         // palette offset
	fontFamily string          // label font family
	fontSizes  chart.FontSizes // inner, mid, outer label sizes
	watch      bool            // re-render on every change of the input
	noCache    bool            // disable the artifact cache
	refresh    bool            // ignore cached artifacts
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	defaults := chart.DefaultOptions()
	opts := renderOpts{
		colormap:   defaults.Colormap,
		offset:     defaults.Offset,
		fontFamily: defaults.FontFamily,
		fontSizes:  defaults.FontSizes,
	}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a dataset as a three-ring chart",
		Long: `Render a dataset JSON file as a three-ring chart.

The output is a 1440x1440 image with a transparent background (PNG) or a
white one (JPEG). SVG, PDF and JSON (ring data) are also available. PDF
requires rsvg-convert.`,
		Example: `  datatree render dataset.json
  datatree render dataset.json -o chart.jpg --colormap viridis --offset 0
  datatree render dataset.json --format png,svg --dir out --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			popts, err := opts.pipelineOptions(cmd, cfg, args[0])
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cfg, popts, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVar(&opts.dir, "dir", "", "output directory (default: from config, else current directory)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): png, jpeg, svg, pdf, json (comma-separated)")
	cmd.Flags().StringVar(&opts.colormap, "colormap", opts.colormap, "colormap name (append _r to reverse)")
	cmd.Flags().Float64Var(&opts.offset, "offset", opts.offset, "palette offset; 0 disables the color shift")
	cmd.Flags().StringVar(&opts.fontFamily, "font-family", opts.fontFamily, "label font family")
	cmd.Flags().Var(&opts.fontSizes, "font-sizes", "label font sizes for inner, mid and outer ring")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-render whenever the file changes")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render and overwrite cached artifacts")

	return cmd
}

// pipelineOptions merges config defaults and explicitly set flags.
func (o *renderOpts) pipelineOptions(cmd *cobra.Command, cfg config.Config, input string) (pipeline.Options, error) {
	chartOpts := cfg.ChartOptions()
	flags := cmd.Flags()
	if flags.Changed("colormap") {
		chartOpts.Colormap = o.colormap
	}
	if flags.Changed("offset") {
		chartOpts.Offset = o.offset
	}
	if flags.Changed("font-family") {
		chartOpts.FontFamily = o.fontFamily
	}
	if flags.Changed("font-sizes") {
		chartOpts.FontSizes = o.fontSizes
	}

	formats := parseFormats(o.formats)
	if len(formats) == 0 && o.output != "" {
		if f := formatFromPath(o.output); f != "" {
			formats = []string{f}
		}
	}
	if len(formats) == 0 {
		formats = cfg.Output.Formats
	}
	if o.dir == "" {
		o.dir = cfg.Output.Dir
	}

	popts := pipeline.Options{
		Input:   input,
		Chart:   chartOpts,
		Formats: formats,
		Refresh: o.refresh,
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return pipeline.Options{}, err
	}
	return popts, nil
}

// runRender renders once, then keeps rendering on changes in watch mode.
func (c *CLI) runRender(ctx context.Context, cfg config.Config, popts pipeline.Options, opts *renderOpts) error {
	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()
	popts.Logger = c.Logger

	if !opts.watch {
		return c.renderOnce(ctx, runner, popts, opts)
	}

	w, err := watch.New(popts.Input, watch.WithLogger(c.Logger))
	if err != nil {
		return err
	}
	defer w.Close()

	if err := c.renderOnce(ctx, runner, popts, opts); err != nil {
		printError("%v", err)
	}
	printInfo("Watching %s %s", StyleHighlight.Render(popts.Input), StyleDim.Render("(ctrl+c to stop)"))
	return w.Run(ctx, func(ctx context.Context) error {
		err := c.renderOnce(ctx, runner, popts, opts)
		if err != nil {
			printError("%v", err)
		}
		return err
	})
}

// renderOnce runs the pipeline and writes every artifact.
func (c *CLI) renderOnce(ctx context.Context, runner *pipeline.Runner, popts pipeline.Options, opts *renderOpts) error {
	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, popts)
	if err != nil {
		return err
	}

	paths := outputPaths(popts.Input, opts.output, opts.dir, popts.Formats)
	for _, format := range popts.Formats {
		path := paths[format]
		if err := writeArtifact(path, result.Artifacts[format]); err != nil {
			return err
		}
		c.Logger.Debug("wrote artifact", "format", format, "bytes", len(result.Artifacts[format]), "path", path)
	}

	prog.done("Rendered "+popts.Input, "formats", popts.Formats, "cached", result.CacheInfo.RenderHit)
	printSuccess("Rendered %s", StyleHighlight.Render(popts.Input))
	printStats(result.Stats.Stats, result.CacheInfo.RenderHit)
	for _, format := range popts.Formats {
		printFile(paths[format])
	}
	return nil
}

// outputPaths decides where each format is written. A single format with
// -o goes exactly there; multiple formats share -o as base path; without
// -o files are named after the input inside dir.
func outputPaths(input, output, dir string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if output != "" && len(formats) == 1 {
		paths[formats[0]] = output
		return paths
	}
	for _, f := range formats {
		if output != "" {
			paths[f] = basePath(output) + pipeline.Extensions[f]
			continue
		}
		paths[f] = pipeline.ArtifactPath(input, dir, f)
	}
	return paths
}

// basePath strips a known format extension from path.
func basePath(path string) string {
	ext := filepath.Ext(path)
	if formatFromPath(path) != "" {
		return strings.TrimSuffix(path, ext)
	}
	return path
}

// formatFromPath returns the format for a file extension, or "".
func formatFromPath(path string) string {
	f := pipeline.NormalizeFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	if pipeline.ValidFormats[f] {
		return f
	}
	return ""
}

func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
