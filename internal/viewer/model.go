// Package viewer provides the Bubble Tea chart preview.
package viewer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/canvasplot/internal/chartfile"
	"github.com/verte-zerg/canvasplot/internal/plot"
	"github.com/verte-zerg/canvasplot/internal/render"
	"github.com/verte-zerg/canvasplot/internal/surface/term"
)

const summaryTab = "Summary"

const minChartRows = 5

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// Model implements the Bubble Tea chart preview. Every chart gets a tab and
// the last tab summarizes all of them.
type Model struct {
	charts    []chartfile.Resolved
	summaries []render.Summary
	color     bool

	tabs      []string
	activeTab int
	viewports []viewport.Model
	summary   table.Model

	width  int
	height int
	errMsg string

	jumpMode  bool
	jumpInput textinput.Model
	jumpError string
}

// NewModel constructs a preview for charts. With color set, chart cells carry
// their stroke and fill colors.
func NewModel(charts []chartfile.Resolved, color bool) (*Model, error) {
	summaries, err := render.Describe(charts)
	if err != nil {
		return nil, fmt.Errorf("failed to describe charts: %w", err)
	}
	m := &Model{
		charts:    charts,
		summaries: summaries,
		color:     color,
	}
	for _, c := range charts {
		m.tabs = append(m.tabs, c.Name)
	}
	m.tabs = append(m.tabs, summaryTab)
	m.viewports = make([]viewport.Model, len(charts))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
	m.summary = buildSummaryTable(summaries, 0, 1)
	m.jumpInput = textinput.New()
	m.jumpInput.Prompt = "Chart: "
	m.jumpInput.Placeholder = "name prefix"
	m.jumpInput.Cursor.SetMode(cursor.CursorBlink)
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderCharts()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.jumpMode {
			return m.updateJump(msg)
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "/":
			m.jumpMode = true
			m.jumpError = ""
			m.jumpInput.SetValue("")
			return m, m.jumpInput.Focus()
		case "g", "home":
			if m.onSummary() {
				m.summary.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.onSummary() {
				m.summary.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			var cmd tea.Cmd
			if m.onSummary() {
				m.summary, cmd = m.summary.Update(msg)
				return m, cmd
			}
			m.viewports[m.activeTab], cmd = m.viewports[m.activeTab].Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) onSummary() bool {
	return m.activeTab == len(m.charts)
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if m.jumpMode || m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = bodyHeight
	}
	m.summary.SetWidth(m.width)
	m.summary.SetHeight(maxInt(1, bodyHeight-1))
	m.jumpInput.Width = maxInt(10, m.width-lipgloss.Width(m.jumpInput.Prompt)-2)
}

// renderCharts draws every chart at the current body size.
func (m *Model) renderCharts() {
	_, bodyHeight, _ := m.layoutHeights()
	cols, rows := term.SizeFor(m.width, maxInt(minChartRows, bodyHeight))
	var r *lipgloss.Renderer
	if m.color {
		r = lipgloss.DefaultRenderer()
	}
	failed := 0
	for i, c := range m.charts {
		s := term.New(cols, rows)
		if err := render.Draw(s, c); err != nil {
			m.viewports[i].SetContent(fmt.Sprintf("Failed to render chart: %v", err))
			failed++
			continue
		}
		m.viewports[i].SetContent(s.Render(r))
	}
	m.errMsg = ""
	if failed > 0 {
		m.errMsg = fmt.Sprintf("%d of %d charts failed to render", failed, len(m.charts))
	}
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	if m.onSummary() {
		m.summary.Focus()
	} else {
		m.summary.Blur()
	}
}

func (m *Model) updateJump(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.jumpMode = false
		m.jumpError = ""
		m.jumpInput.Blur()
		return m, nil
	case tea.KeyEnter:
		idx, ok := m.findTab(m.jumpInput.Value())
		if !ok {
			m.jumpError = fmt.Sprintf("no chart matches %q", m.jumpInput.Value())
			return m, nil
		}
		m.jumpMode = false
		m.jumpError = ""
		m.jumpInput.Blur()
		m.moveTab(idx - m.activeTab)
		return m, tea.ClearScreen
	}
	var cmd tea.Cmd
	m.jumpInput, cmd = m.jumpInput.Update(msg)
	return m, cmd
}

// findTab returns the first tab whose name starts with prefix, ignoring case.
func (m *Model) findTab(prefix string) (int, bool) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return 0, false
	}
	for i, name := range m.tabs {
		if strings.HasPrefix(strings.ToLower(name), prefix) {
			return i, true
		}
	}
	return 0, false
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	return padLines(m.renderTabs(), m.width) + "\n" + headerStyle.Render(truncateLine(m.renderInfo(), m.width))
}

func (m *Model) renderInfo() string {
	if m.onSummary() {
		return fmt.Sprintf("%d charts", len(m.charts))
	}
	s := m.summaries[m.activeTab]
	if s.Empty {
		return fmt.Sprintf("%s  no data", s.Kind)
	}
	return fmt.Sprintf("%s  x=%s..%s  y=%s..%s  last=%s  points=%d",
		s.Kind,
		plot.FormatValue(s.Bounds.MinX), plot.FormatValue(s.Bounds.MaxX),
		plot.FormatValue(s.Bounds.MinY), plot.FormatValue(s.Bounds.MaxY),
		plot.FormatValue(s.LastY), s.Points)
}

func (m *Model) renderBody() string {
	if m.onSummary() {
		return m.summary.View()
	}
	return m.viewports[m.activeTab].View()
}

func (m *Model) renderFooter() string {
	if m.jumpMode {
		line := m.jumpInput.View()
		if m.jumpError != "" {
			line += "  " + errorStyle.Render(m.jumpError)
		}
		return headerStyle.Render("enter: go  esc: cancel") + "\n" + line
	}
	help := headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Jump: /  Quit: q")
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	return help
}

func buildSummaryTable(sums []render.Summary, width, height int) table.Model {
	columns := []table.Column{
		{Title: "Chart", Width: 16},
		{Title: "Kind", Width: 9},
		{Title: "Points", Width: 7},
		{Title: "X range", Width: 16},
		{Title: "Y range", Width: 16},
		{Title: "Last", Width: 8},
	}
	rows := make([]table.Row, 0, len(sums))
	for _, s := range sums {
		if s.Empty {
			rows = append(rows, table.Row{s.Name, s.Kind, "0", "-", "-", "-"})
			continue
		}
		rows = append(rows, table.Row{
			s.Name,
			s.Kind,
			strconv.Itoa(s.Points),
			plot.FormatValue(s.Bounds.MinX) + ".." + plot.FormatValue(s.Bounds.MaxX),
			plot.FormatValue(s.Bounds.MinY) + ".." + plot.FormatValue(s.Bounds.MaxY),
			plot.FormatValue(s.LastY),
		})
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(maxInt(1, height-1)),
	)
	t.SetWidth(width)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	t.SetStyles(styles)
	return t
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
