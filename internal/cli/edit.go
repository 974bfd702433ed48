package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/datatree/pkg/config"
	"github.com/matzehuels/datatree/pkg/dataset"
	dterrors "github.com/matzehuels/datatree/pkg/errors"
	"github.com/matzehuels/datatree/pkg/pipeline"
)

// editCommand creates the interactive editor command.
func (c *CLI) editCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "edit [file]",
		Short: "Edit a dataset in the terminal",
		Long: `Edit a dataset file in an interactive terminal editor.

A missing file is created on first save. Press r to render the current state
with the formats and output directory from the config file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEdit(cmd.Context(), args[0], noCache)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache for renders")
	return cmd
}

func (c *CLI) runEdit(ctx context.Context, path string, noCache bool) error {
	doc, err := openOrCreate(path)
	if err != nil {
		return err
	}
	c.Logger.Debug("opened document", "path", path, "session", doc.ID, "nodes", doc.Len())

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	model := NewEditorModel(doc, c.documentRenderer(ctx, runner, cfg, path))
	final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("editor: %w", err)
	}

	if m, ok := final.(EditorModel); ok && m.Doc.Dirty() {
		printWarning("Discarded unsaved changes to %s", path)
		return nil
	}
	printSuccess("Closed %s", StyleHighlight.Render(path))
	return nil
}

// openOrCreate opens path, or starts an empty document that will be saved
// there.
func openOrCreate(path string) (*dataset.Document, error) {
	doc, err := dataset.Open(path)
	if dterrors.Is(err, dterrors.ErrCodeFileNotFound) {
		doc = dataset.NewDocument()
		doc.Path = path
		return doc, nil
	}
	return doc, err
}

// documentRenderer renders the editor's dataset next to path using the
// configured chart options and formats.
func (c *CLI) documentRenderer(ctx context.Context, runner *pipeline.Runner, cfg config.Config, path string) RenderFunc {
	return func(d dataset.Dataset) (string, error) {
		opts := pipeline.Options{
			Input:   path,
			Dataset: d,
			Chart:   cfg.ChartOptions(),
			Formats: cfg.Output.Formats,
			Logger:  c.Logger,
		}
		result, err := runner.Execute(ctx, opts)
		if err != nil {
			return "", err
		}

		var written []string
		for _, format := range opts.Formats {
			format = pipeline.NormalizeFormat(format)
			out := pipeline.ArtifactPath(path, cfg.Output.Dir, format)
			if err := writeArtifact(out, result.Artifacts[format]); err != nil {
				return "", err
			}
			written = append(written, out)
		}
		return "Rendered " + strings.Join(written, ", "), nil
	}
}

// fileExists reports whether path names an existing file.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
