package cli

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sunburst/pkg/chart"
	"github.com/matzehuels/sunburst/pkg/partition"
	"github.com/matzehuels/sunburst/pkg/pipeline"
	"github.com/matzehuels/sunburst/pkg/routes"
	"github.com/matzehuels/sunburst/pkg/zoom"
)

// frameInterval paces zoom tweens in the terminal.
const frameInterval = 16 * time.Millisecond

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	paneStyle         = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
	paneActiveStyle   = paneStyle.BorderForeground(colorCyan)
)

// exploreCommand creates the explore command: an interactive terminal
// sunburst with animated zoom and the route selector.
func (c *CLI) exploreCommand() *cobra.Command {
	var flags chartFlags

	cmd := &cobra.Command{
		Use:   "explore [dataset]",
		Short: "Browse a hierarchy interactively in the terminal",
		Long: `Browse a hierarchy interactively in the terminal.

Arcs are listed as bars whose length is their angular width. Enter zooms
into the selected arc, backspace zooms out, tab switches to the route
selector.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd, flags)
			opts.Input = args[0]
			return c.runExplore(cmd.Context(), opts)
		},
	}
	flags.register(cmd)
	return cmd
}

func (c *CLI) runExplore(ctx context.Context, opts pipeline.Options) error {
	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return err
	}
	defer runner.Close()

	root, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}
	l, ch, err := pipeline.BuildLayout(root, opts)
	if err != nil {
		return err
	}

	view := zoom.NewView(l,
		zoom.WithDuration(c.Config.Chart.ZoomDuration),
		zoom.WithFocus(ch.Focus))
	m := newExploreModel(view, opts.ChartOptions(ch.Focus), routes.NewSelector(c.Config.Routes.Items))

	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// =============================================================================
// ExploreModel - zoomable arc list
// =============================================================================

type explorePane int

const (
	paneChart explorePane = iota
	paneRoutes
)

// tickMsg advances a running zoom tween.
type tickMsg time.Time

// ExploreModel is the bubbletea model for the explore command.
type ExploreModel struct {
	view     *zoom.View
	opts     chart.Options
	chart    *chart.Chart
	selector *routes.Selector

	pane        explorePane
	cursor      int // index into chart.Visible()
	routeCursor int
	width       int
	height      int
	ticking     bool // a tick chain is armed
	now         func() time.Time
}

func newExploreModel(v *zoom.View, opts chart.Options, sel *routes.Selector) *ExploreModel {
	m := &ExploreModel{
		view:     v,
		opts:     opts,
		selector: sel,
		width:    80,
		height:   24,
		now:      time.Now,
	}
	m.rebuild()
	return m
}

func (m *ExploreModel) Init() tea.Cmd { return nil }

func (m *ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tickMsg:
		running := m.view.Advance(time.Time(msg))
		m.rebuild()
		if running {
			return m, tick()
		}
		m.ticking = false
	case tea.KeyMsg:
		return m, m.key(msg.String())
	}
	return m, nil
}

func (m *ExploreModel) key(k string) tea.Cmd {
	switch k {
	case "q", "ctrl+c":
		return tea.Quit
	case "tab":
		if m.pane == paneChart && len(m.selector.Routes()) > 0 {
			m.pane = paneRoutes
			m.hoverRoute()
		} else {
			m.pane = paneChart
			m.selector.Leave()
		}
		return nil
	}
	if m.pane == paneRoutes {
		m.routeKey(k)
		return nil
	}
	return m.chartKey(k)
}

func (m *ExploreModel) chartKey(k string) tea.Cmd {
	visible := m.chart.Visible()
	switch k {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(visible)-1 {
			m.cursor++
		}
	case "enter", "right", "l":
		if m.cursor < len(visible) && m.view.Click(visible[m.cursor].Index, m.now()) {
			m.rebuild()
			return m.animate()
		}
	case "backspace", "esc", "left", "h":
		if m.view.Back(m.now()) {
			m.rebuild()
			return m.animate()
		}
	}
	return nil
}

func (m *ExploreModel) routeKey(k string) {
	rs := m.selector.Routes()
	switch k {
	case "up", "k":
		if m.routeCursor > 0 {
			m.routeCursor--
		}
		m.hoverRoute()
	case "down", "j":
		if m.routeCursor < len(rs)-1 {
			m.routeCursor++
		}
		m.hoverRoute()
	case "enter":
		m.selector.Click(rs[m.routeCursor].ID)
	case "esc":
		m.selector.Leave()
	}
}

func (m *ExploreModel) hoverRoute() {
	if rs := m.selector.Routes(); m.routeCursor < len(rs) {
		m.selector.Enter(rs[m.routeCursor].ID)
	}
}

// rebuild redraws the chart from the view's current spans. The cursor
// follows the same node when it stays visible.
func (m *ExploreModel) rebuild() {
	prev := -1
	if m.chart != nil {
		if v := m.chart.Visible(); m.cursor < len(v) {
			prev = v[m.cursor].Index
		}
	}
	opts := m.opts
	opts.Focus = m.view.Focus()
	m.chart = chart.Build(m.view.Layout(), m.view.Current, opts)

	visible := m.chart.Visible()
	m.cursor = 0
	for i, e := range visible {
		if e.Index == prev {
			m.cursor = i
			break
		}
	}
}

// animate arms the frame loop for a new tween. A retarget during a running
// tween reuses the loop that is already ticking.
func (m *ExploreModel) animate() tea.Cmd {
	if m.ticking || !m.view.Animating() {
		return nil
	}
	m.ticking = true
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// hovered returns the element under the cursor, or -1.
func (m *ExploreModel) hovered() int {
	if v := m.chart.Visible(); m.pane == paneChart && m.cursor < len(v) {
		return v[m.cursor].Index
	}
	return -1
}

func (m *ExploreModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render(m.chart.CenterTitle()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ zoom in  ⌫ zoom out  tab routes  q quit"))
	b.WriteString("\n\n")

	routesPane := m.routesView()
	chartWidth := max(m.width-lipgloss.Width(routesPane)-6, 20)
	left := paneStyle
	right := paneStyle
	if m.pane == paneChart {
		left = paneActiveStyle
	} else {
		right = paneActiveStyle
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		left.Render(m.arcsView(chartWidth)),
		right.Render(routesPane)))
	b.WriteString("\n")

	if i := m.hovered(); i >= 0 {
		b.WriteString(listDimStyle.Render(strings.ReplaceAll(m.chart.Elements[i].Title, "\n", "  ")))
	}
	return b.String()
}

// arcsView draws each visible arc as a bar scaled to its angular width.
func (m *ExploreModel) arcsView(width int) string {
	visible := m.chart.Visible()
	mask := m.chart.Highlight(m.hovered())
	focusDepth := m.chart.Elements[m.chart.Focus].Depth

	rows := max(m.height-8, 5)
	offset := 0
	if m.cursor >= rows {
		offset = m.cursor - rows + 1
	}

	var lines []string
	for i := offset; i < len(visible) && i < offset+rows; i++ {
		e := visible[i]
		indent := strings.Repeat("  ", max(e.Depth-focusDepth-1, 0))
		name := indent + e.Name
		barMax := max(width-lipgloss.Width(name)-3, 1)
		bar := strings.Repeat("█", barLength(e.Span, barMax))
		line := fmt.Sprintf("%s %s", name, lipgloss.NewStyle().Foreground(lipgloss.Color(e.Fill)).Render(bar))

		switch {
		case i == m.cursor && m.pane == paneChart:
			line = listSelectedStyle.Render("▸ ") + line
		case mask != nil && !mask[e.Index]:
			line = "  " + listDimStyle.Render(indent+e.Name)
		default:
			line = "  " + line
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return listDimStyle.Render("nothing to show")
	}
	return strings.Join(lines, "\n")
}

// barLength scales a span's angle, out of a full turn, to n cells.
func barLength(s partition.Span, n int) int {
	return max(int(math.Round(s.Width()/(2*math.Pi)*float64(n))), 1)
}

func (m *ExploreModel) routesView() string {
	rs := m.selector.Routes()
	if len(rs) == 0 {
		return listDimStyle.Render("no routes")
	}
	var b strings.Builder
	b.WriteString(listDimStyle.Render("Routes"))
	b.WriteString("\n")
	for i, r := range rs {
		label := routes.Label(r.ID)
		switch {
		case m.pane == paneRoutes && i == m.routeCursor:
			label = listSelectedStyle.Render("▸ " + label)
		case m.selector.Active() == r.ID:
			label = StyleSuccess.Render("• " + label)
		default:
			label = listNormalStyle.Render("  " + label)
		}
		b.WriteString(label)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	current := m.selector.Current()
	if current == "" {
		current = "base"
	}
	b.WriteString(listDimStyle.Render("showing " + current))
	return b.String()
}
