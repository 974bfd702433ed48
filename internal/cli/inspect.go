package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/datatree/pkg/chart"
	"github.com/matzehuels/datatree/pkg/dataset"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var rings bool

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Print the structure of a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dataset.Import(args[0])
			if err != nil {
				return err
			}
			fmt.Println(StyleTitle.Render(args[0]))
			printStats(d.Stats(), false)
			fmt.Println()
			fmt.Println(datasetTable(d))
			if !rings {
				return nil
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			ch, err := chart.Build(d, cfg.ChartOptions())
			if err != nil {
				return err
			}
			fmt.Println()
			printKeyValue("colormap", ch.Colormap)
			printKeyValue("offset", strconv.FormatFloat(ch.Offset, 'g', -1, 64))
			printKeyValue("shift", strconv.Itoa(ch.Shift))
			printKeyValue("palette", strconv.Itoa(len(ch.Palette)))
			for _, name := range []string{"inner", "mid", "outer"} {
				r := ringByName(ch, name)
				printKeyValue(name, fmt.Sprintf("%d wedges, sizes %v", r.Len(), r.Sizes))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&rings, "rings", false, "also build the chart and print ring sizes and color shift")
	return cmd
}

func ringByName(c *chart.Chart, name string) *chart.Ring {
	switch name {
	case "inner":
		return c.Inner
	case "mid":
		return c.Mid
	default:
		return c.Outer
	}
}

// datasetTable renders one row per subcategory.
func datasetTable(d dataset.Dataset) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	var rows [][]string
	for _, c := range d {
		if len(c.Subcategories) == 0 {
			rows = append(rows, []string{c.Name, "", "0", ""})
			continue
		}
		for i, s := range c.Subcategories {
			name := c.Name
			if i > 0 {
				name = ""
			}
			rows = append(rows, []string{name, s.Name, strconv.Itoa(len(s.Items)), joinItems(s.Items, 48)})
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Category", "Subcategory", "Items", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 2 {
				return lipgloss.NewStyle().Foreground(colorCyan).Align(lipgloss.Right)
			}
			if col == 3 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

// joinItems joins items with commas, truncated to width runes.
func joinItems(items []string, width int) string {
	s := strings.Join(items, ", ")
	r := []rune(s)
	if len(r) > width {
		return string(r[:width-1]) + "…"
	}
	return s
}
