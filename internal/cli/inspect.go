package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sunburst/pkg/chart"
	"github.com/matzehuels/sunburst/pkg/hierarchy"
	"github.com/matzehuels/sunburst/pkg/pipeline"
)

var (
	inspectHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	inspectCellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// inspectCommand creates the inspect command that prints a hierarchy and
// the arcs of its chart to the terminal.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		flags    chartFlags
		maxDepth int
		noArcs   bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [dataset]",
		Short: "Print a hierarchy and its visible arcs",
		Long: `Print a hierarchy and its visible arcs.

The tree shows every node with its aggregate value. The table lists the
arcs drawn for the chosen focus, with their share of the focus value and
whether a label fits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd, flags)
			opts.Input = args[0]
			return c.runInspect(cmd.Context(), opts, maxDepth, noArcs)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&maxDepth, "depth", 3, "tree depth to print, 0 prints everything")
	cmd.Flags().BoolVar(&noArcs, "no-arcs", false, "skip the arc table")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, opts pipeline.Options, maxDepth int, noArcs bool) error {
	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return err
	}
	defer runner.Close()

	root, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}

	fmt.Println(StyleTitle.Render(root.Name))
	printKeyValue("Nodes", humanize.Comma(int64(root.Count())))
	printKeyValue("Height", strconv.Itoa(root.Height))
	printKeyValue("Value", humanize.Commaf(root.Value))
	printNewline()
	fmt.Println(hierarchyTree(root, maxDepth))

	if noArcs {
		return nil
	}
	ch, err := runner.Layout(ctx, root, opts)
	if err != nil {
		return err
	}
	printNewline()
	fmt.Println(arcTable(ch))
	return nil
}

// hierarchyTree renders root as an indented tree cut at maxDepth levels
// below the root. Cut subtrees are summarized by their node count.
func hierarchyTree(root *hierarchy.Node, maxDepth int) string {
	t := tree.Root(StyleHighlight.Render(root.Name) + " " + StyleDim.Render(humanize.Commaf(root.Value))).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(StyleDim)
	addChildren(t, root, maxDepth)
	return t.String()
}

func addChildren(t *tree.Tree, n *hierarchy.Node, maxDepth int) {
	for _, child := range n.Children {
		if maxDepth > 0 && child.Depth > maxDepth {
			t.Child(StyleDim.Render(fmt.Sprintf("… %d more", len(n.Children))))
			return
		}
		if child.IsLeaf() {
			t.Child(nodeLine(child))
			continue
		}
		sub := tree.Root(nodeLine(child)).
			Enumerator(tree.RoundedEnumerator).
			EnumeratorStyle(StyleDim)
		addChildren(sub, child, maxDepth)
		t.Child(sub)
	}
}

func nodeLine(n *hierarchy.Node) string {
	return n.Name + " " + StyleDim.Render(humanize.Commaf(n.Value))
}

// arcTable lists the visible arcs of c.
func arcTable(c *chart.Chart) string {
	focus := c.Elements[c.Focus].Value
	var rows [][]string
	for _, e := range c.Visible() {
		share := "-"
		if focus > 0 {
			share = strconv.FormatFloat(100*e.Value/focus, 'f', 1, 64) + "%"
		}
		labeled := ""
		if e.Label.Visible {
			labeled = iconSuccess
		}
		rows = append(rows, []string{
			strconv.Itoa(e.Index),
			e.Name,
			strconv.Itoa(e.Depth),
			humanize.Commaf(e.Value),
			share,
			labeled,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("#", "Name", "Depth", "Value", "Share", "Label").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return inspectHeaderStyle.Padding(0, 1)
			}
			if col == 5 {
				return inspectCellStyle.Foreground(colorGreen)
			}
			return inspectCellStyle
		})
	return t.Render()
}
