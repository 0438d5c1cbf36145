// Package tui is the interactive terminal viewer: a glossary tab with
// search, a graph tab with hover highlighting, and a detail panel.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"go.uber.org/zap"

	"github.com/msalah0e/glossview/internal/detail"
	"github.com/msalah0e/glossview/internal/glossary"
	"github.com/msalah0e/glossview/internal/graphview"
	"github.com/msalah0e/glossview/internal/layout"
	"github.com/msalah0e/glossview/internal/model"
	"github.com/msalah0e/glossview/internal/page"
)

const (
	cardHeight    = 3
	maxPanelWidth = 48
	minPanelWidth = 24
	panStep       = 4
)

// Options configure a viewer.
type Options struct {
	Loader page.Loader
	Engine layout.Engine // nil selects the layered engine
	Layout layout.Options
	Logger *zap.Logger
	Theme  *Theme
	Mouse  bool
}

// Model is the bubbletea model of the viewer. Shared state lives behind
// the page controller; copies of Model share it.
type Model struct {
	ctx    context.Context
	ctrl   *page.Controller
	keys   KeyMap
	theme  Theme
	styles styles
	logger *zap.Logger

	glossary *glossary.View
	graph    *graphview.View
	grid     *Grid
	input    textinput.Model

	filtering  bool
	width      int
	height     int
	listOffset int
	panCol     int
	panRow     int
	focus      int // keyboard-focused node index, -1 for none
	layoutErr  string
}

// New creates a viewer model. Nothing is fetched until Init runs.
func New(ctx context.Context, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	theme := DefaultTheme
	if opts.Theme != nil {
		theme = *opts.Theme
	}

	ctrl := page.New(opts.Loader, logger)
	input := textinput.New()
	input.Prompt = "/ "
	input.Placeholder = "Search terms"

	return Model{
		ctx:      ctx,
		ctrl:     ctrl,
		keys:     DefaultKeyMap,
		theme:    theme,
		styles:   theme.styles(),
		logger:   logger,
		glossary: glossary.NewView(nil, ctrl.SelectTerm),
		graph:    graphview.NewView(opts.Engine, opts.Layout, ctrl.SelectNode),
		grid:     NewGrid(theme),
		input:    input,
		focus:    -1,
	}
}

// Run starts the viewer on the terminal and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if opts.Mouse {
		programOpts = append(programOpts, tea.WithMouseAllMotion())
	}
	m := New(ctx, opts)
	_, err := tea.NewProgram(m, programOpts...).Run()
	m.ctrl.Unmount()
	return err
}

// run turns a controller job into a command. The result comes back to
// Update as a page.Msg.
func (m Model) run(job page.Job) tea.Cmd {
	if job == nil {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg { return job(ctx) }
}

// Init starts the term load.
func (m Model) Init() tea.Cmd {
	return m.run(m.ctrl.Start())
}

// Update handles one message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.clampPan()
		m.ensureCursorVisible()

	case page.TermsLoaded:
		m.ctrl.Apply(msg)
		if m.ctrl.Mounted() {
			m.glossary.SetTerms(m.ctrl.Snapshot().Terms)
		}

	case page.GraphLoaded:
		m.ctrl.Apply(msg)
		if m.ctrl.Mounted() && msg.Err == nil {
			m.loadGraph(m.ctrl.Snapshot().Graph)
		}

	case tea.KeyMsg:
		if m.filtering {
			return m.handleFilterKeys(msg)
		}
		return m.handleKeys(msg)

	case tea.MouseMsg:
		cmd := m.handleMouse(msg)
		return m, cmd

	default:
		// Cursor blink ticks belong to the search box.
		if m.filtering {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *Model) loadGraph(doc *model.GraphDocument) {
	m.layoutErr = ""
	if err := m.graph.Load(doc); err != nil {
		m.layoutErr = err.Error()
		m.logger.Warn("graph layout failed", zap.Error(err))
	}
	m.focus = -1
	m.panCol, m.panRow = 0, 0
	m.redraw()
}

func (m *Model) redraw() {
	if m.graph.Empty() {
		m.grid = NewGrid(m.theme)
		return
	}
	if err := m.graph.Render(m.grid); err != nil {
		m.logger.Warn("graph render failed", zap.Error(err))
	}
}

func (m Model) tab() page.Tab { return m.ctrl.Snapshot().Tab }

func (m *Model) switchTab(tab page.Tab) tea.Cmd {
	if m.filtering && tab != page.TabGlossary {
		m.stopFiltering(false)
	}
	return m.run(m.ctrl.SetTab(tab))
}

func (m Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.ctrl.Unmount()
		return m, tea.Quit

	case key.Matches(msg, m.keys.TabGlossary):
		cmd := m.switchTab(page.TabGlossary)
		return m, cmd

	case key.Matches(msg, m.keys.TabGraph):
		cmd := m.switchTab(page.TabGraph)
		return m, cmd

	case key.Matches(msg, m.keys.NextTab):
		next := page.TabGraph
		if m.tab() == page.TabGraph {
			next = page.TabGlossary
		}
		cmd := m.switchTab(next)
		return m, cmd
	}

	if m.tab() == page.TabGraph {
		m.handleGraphKeys(msg)
	} else {
		return m.handleGlossaryKeys(msg)
	}
	return m, nil
}

func (m Model) handleGlossaryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.glossary.MoveCursor(-1)
		m.ensureCursorVisible()
	case key.Matches(msg, m.keys.Down):
		m.glossary.MoveCursor(1)
		m.ensureCursorVisible()
	case key.Matches(msg, m.keys.Select):
		m.glossary.Select()
	case key.Matches(msg, m.keys.Close):
		m.ctrl.ClearSelection()
	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		cmd := m.input.Focus()
		return m, cmd
	}
	return m, nil
}

func (m Model) handleFilterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.stopFiltering(true)
		return m, nil
	case tea.KeyEnter:
		m.stopFiltering(false)
		return m, nil
	case tea.KeyUp, tea.KeyDown:
		delta := 1
		if msg.Type == tea.KeyUp {
			delta = -1
		}
		m.glossary.MoveCursor(delta)
		m.ensureCursorVisible()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.glossary.SetQuery(m.input.Value())
	m.listOffset = 0
	m.ensureCursorVisible()
	return m, cmd
}

func (m *Model) stopFiltering(clear bool) {
	m.filtering = false
	m.input.Blur()
	if clear {
		m.input.SetValue("")
		m.glossary.SetQuery("")
		m.ensureCursorVisible()
	}
}

func (m *Model) handleGraphKeys(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.NextNode):
		m.moveFocus(1)
	case key.Matches(msg, m.keys.PrevNode):
		m.moveFocus(-1)
	case key.Matches(msg, m.keys.Select):
		if id := m.graph.Hovered(); id != "" {
			m.graph.Click(id)
		}
	case key.Matches(msg, m.keys.Close):
		if m.ctrl.Snapshot().Selected != nil {
			m.ctrl.ClearSelection()
			return
		}
		m.focus = -1
		m.graph.HoverLeave()
		m.redraw()
	case key.Matches(msg, m.keys.Up):
		m.panRow -= panStep / 2
	case key.Matches(msg, m.keys.Down):
		m.panRow += panStep / 2
	case key.Matches(msg, m.keys.PanLeft):
		m.panCol -= panStep
	case key.Matches(msg, m.keys.PanRight):
		m.panCol += panStep
	case key.Matches(msg, m.keys.Relayout):
		if err := m.graph.Relayout(); err != nil {
			m.layoutErr = err.Error()
		}
		m.redraw()
	}
	m.clampPan()
}

// moveFocus steps keyboard focus through the nodes in document order.
// Focus drives the same highlight as pointer hover.
func (m *Model) moveFocus(delta int) {
	nodes := m.graph.Nodes()
	if len(nodes) == 0 {
		return
	}
	if m.focus < 0 {
		if delta > 0 {
			m.focus = 0
		} else {
			m.focus = len(nodes) - 1
		}
	} else {
		m.focus = (m.focus + delta + len(nodes)) % len(nodes)
	}
	id := nodes[m.focus].ID
	m.graph.HoverEnter(id)
	m.redraw()
	m.revealNode(id)
}

func (m *Model) revealNode(id string) {
	col, row, w, h, ok := m.grid.Box(id)
	if !ok {
		return
	}
	viewW, viewH := m.mainWidth(), m.bodyHeight()
	if col < m.panCol {
		m.panCol = col - 2
	} else if col+w > m.panCol+viewW {
		m.panCol = col + w - viewW + 2
	}
	if row < m.panRow {
		m.panRow = row - 1
	} else if row+h > m.panRow+viewH {
		m.panRow = row + h - viewH + 1
	}
	m.clampPan()
}

func (m *Model) clampPan() {
	cols, rows := m.grid.Size()
	m.panCol = max(0, min(m.panCol, cols-m.mainWidth()))
	m.panRow = max(0, min(m.panRow, rows-m.bodyHeight()))
}

func (m *Model) ensureCursorVisible() {
	visible := m.visibleCards()
	cursor := m.glossary.Cursor()
	if cursor < m.listOffset {
		m.listOffset = cursor
	} else if cursor >= m.listOffset+visible {
		m.listOffset = cursor - visible + 1
	}
	m.listOffset = max(0, m.listOffset)
}

// Geometry.

func (m Model) headerHeight() int {
	if m.ctrl.Snapshot().Error != "" {
		return 2
	}
	return 1
}

func (m Model) bodyHeight() int {
	return max(1, m.height-m.headerHeight()-1)
}

func (m Model) panelWidth() int {
	if m.ctrl.Snapshot().Selected == nil {
		return 0
	}
	return max(minPanelWidth, min(maxPanelWidth, m.width/3))
}

func (m Model) mainWidth() int {
	if w := m.panelWidth(); w > 0 {
		return max(1, m.width-w-1)
	}
	return max(1, m.width)
}

func (m Model) visibleCards() int {
	return max(1, (m.bodyHeight()-1)/cardHeight)
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	top := m.headerHeight()
	mainW := m.mainWidth()
	inBody := msg.Y >= top && msg.Y < top+m.bodyHeight()

	if msg.Y == 0 && msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		for tab, r := range m.tabRanges() {
			if msg.X >= r[0] && msg.X < r[1] {
				return m.switchTab(page.Tab(tab))
			}
		}
		return nil
	}

	if pw := m.panelWidth(); pw > 0 && msg.X > mainW {
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft &&
			msg.Y == top && msg.X >= m.width-3 {
			m.ctrl.ClearSelection()
			m.clampPan()
		}
		return nil
	}
	if !inBody || msg.X >= mainW {
		if msg.Action == tea.MouseActionMotion && m.graph.Hovered() != "" && m.tab() == page.TabGraph {
			m.graph.HoverLeave()
			m.redraw()
		}
		return nil
	}

	if m.tab() == page.TabGraph {
		m.handleGraphMouse(msg, msg.X+m.panCol, msg.Y-top+m.panRow)
		return nil
	}
	m.handleGlossaryMouse(msg, msg.Y-top)
	return nil
}

func (m *Model) handleGraphMouse(msg tea.MouseMsg, col, row int) {
	id, onNode := m.grid.NodeAt(col, row)
	switch {
	case msg.Action == tea.MouseActionMotion && msg.Button == tea.MouseButtonNone:
		switch {
		case onNode && id != m.graph.Hovered():
			m.graph.HoverEnter(id)
			m.redraw()
		case !onNode && m.graph.Hovered() != "":
			m.graph.HoverLeave()
			m.focus = -1
			m.redraw()
		}
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if onNode {
			m.graph.Click(id)
			m.clampPan()
		}
	case msg.Button == tea.MouseButtonWheelUp:
		m.panRow -= panStep / 2
		m.clampPan()
	case msg.Button == tea.MouseButtonWheelDown:
		m.panRow += panStep / 2
		m.clampPan()
	}
}

func (m *Model) handleGlossaryMouse(msg tea.MouseMsg, row int) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.glossary.MoveCursor(-1)
		m.ensureCursorVisible()
	case msg.Button == tea.MouseButtonWheelDown:
		m.glossary.MoveCursor(1)
		m.ensureCursorVisible()
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if row < 1 {
			m.filtering = true
			m.input.Focus()
			return
		}
		idx := m.listOffset + (row-1)/cardHeight
		if idx < m.glossary.Count() {
			m.glossary.SetCursor(idx)
			m.glossary.Select()
		}
	}
}

// Rendering.

func (m Model) tabLabels() []string {
	return []string{"1 Glossary", "2 Graph"}
}

func (m Model) brand() string {
	return m.styles.header.Render(" ◈ glossview ")
}

// tabRanges returns the [start, end) columns of each tab on row 0.
func (m Model) tabRanges() [][2]int {
	x := lipgloss.Width(m.brand()) + 1
	var out [][2]int
	for _, label := range m.tabLabels() {
		w := lipgloss.Width(m.styles.tab.Render(label))
		out = append(out, [2]int{x, x + w})
		x += w + 1
	}
	return out
}

func (m Model) renderHeader(s page.State) string {
	parts := []string{m.brand()}
	for i, label := range m.tabLabels() {
		st := m.styles.tab
		if page.Tab(i) == s.Tab {
			st = m.styles.activeTab
		}
		parts = append(parts, st.Render(label))
	}
	return strings.Join(parts, " ")
}

// View renders the screen.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	s := m.ctrl.Snapshot()

	rows := []string{m.renderHeader(s)}
	if s.Error != "" {
		rows = append(rows, m.styles.banner.Width(m.width).Render(ansi.Truncate(s.Error, m.width-2, "…")))
	}

	bodyH := m.bodyHeight()
	mainW := m.mainWidth()
	var body []string
	if s.Tab == page.TabGraph {
		body = m.renderGraph(s, mainW, bodyH)
	} else {
		body = m.renderGlossary(s, mainW, bodyH)
	}
	content := block(body, mainW, bodyH)
	if pw := m.panelWidth(); pw > 0 {
		divider := m.styles.panelBorder.Render(strings.TrimRight(strings.Repeat("│\n", bodyH), "\n"))
		panel := block(m.renderPanel(s.Selected, pw), pw, bodyH)
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, divider, panel)
	}
	rows = append(rows, content, m.renderHelp(s))
	return strings.Join(rows, "\n")
}

// block pads or crops lines to exactly width x height.
func block(lines []string, width, height int) string {
	out := make([]string, height)
	for i := range out {
		line := ""
		if i < len(lines) {
			line = ansi.Truncate(lines[i], width, "")
		}
		if w := ansi.StringWidth(line); w < width {
			line += strings.Repeat(" ", width-w)
		}
		out[i] = line
	}
	return strings.Join(out, "\n")
}

func (m Model) renderGlossary(s page.State, width, height int) []string {
	search := m.input.View()
	if !m.filtering && m.glossary.Query() == "" {
		search = m.styles.faint.Render("/ Search terms")
	} else if !m.filtering {
		search = "/ " + m.glossary.Query()
	}
	count := m.styles.faint.Render(fmt.Sprintf("%d terms", m.glossary.Count()))
	gap := max(1, width-ansi.StringWidth(search)-ansi.StringWidth(count))
	lines := []string{search + strings.Repeat(" ", gap) + count}

	visible := m.glossary.Visible()
	if len(visible) == 0 {
		msg := "No terms yet."
		if m.glossary.Query() != "" {
			msg = "No terms match."
		}
		return append(lines, "", m.styles.faint.Render("  "+msg))
	}

	end := min(len(visible), m.listOffset+m.visibleCards())
	selectedID := s.Selected.ID()
	for i := m.listOffset; i < end; i++ {
		t := visible[i]
		marker := "  "
		if i == m.glossary.Cursor() {
			marker = m.styles.heading.Render("▌ ")
		}
		title := ansi.Truncate(t.Title, width-2, "…")
		if t.ID == selectedID {
			title = m.styles.selected.Render(title)
		} else {
			title = m.styles.title.Render(title)
		}
		def := strings.Join(strings.Fields(t.Definition), " ")
		if def == "" {
			def = detail.Placeholder
		}
		lines = append(lines,
			marker+title,
			marker+m.styles.faint.Render(ansi.Truncate(def, width-2, "…")),
			"",
		)
	}
	return lines
}

func (m Model) renderGraph(s page.State, width, height int) []string {
	switch {
	case m.graph.Empty() && s.GraphLoading:
		return []string{"", m.styles.faint.Render("  Loading graph…")}
	case m.layoutErr != "":
		return []string{"", m.styles.banner.Render("Layout failed: " + m.layoutErr)}
	case m.graph.Empty():
		return []string{"", m.styles.faint.Render("  No graph to show.")}
	}
	return m.grid.Render(m.panCol, m.panRow, width, height)
}

func (m Model) renderPanel(sel *model.Selection, width int) []string {
	inner := width - 2
	title := m.styles.faint.Render(" Details")
	closeBtn := m.styles.faint.Render(" ✕")
	gap := max(1, width-ansi.StringWidth(" Details")-ansi.StringWidth(" ✕"))
	lines := []string{title + strings.Repeat(" ", gap) + closeBtn, ""}

	for _, l := range detail.Render(sel, inner) {
		text := l.Text
		switch l.Kind {
		case detail.KindTitle:
			text = m.styles.title.Render(text)
		case detail.KindHeading:
			text = m.styles.heading.Render(text)
		case detail.KindLink:
			text = ansi.SetHyperlink(l.URL) + m.styles.link.Render(text) + ansi.ResetHyperlink()
		case detail.KindID:
			text = m.styles.faint.Render(text)
		}
		lines = append(lines, " "+text)
	}
	return lines
}

func (m Model) renderHelp(s page.State) string {
	bindings := []key.Binding{m.keys.TabGlossary, m.keys.TabGraph}
	if s.Tab == page.TabGraph {
		bindings = append(bindings, m.keys.NextNode, m.keys.Select, m.keys.PanLeft, m.keys.Relayout)
	} else {
		bindings = append(bindings, m.keys.Filter, m.keys.Down, m.keys.Select)
	}
	if s.Selected != nil {
		bindings = append(bindings, m.keys.Close)
	}
	bindings = append(bindings, m.keys.Quit)

	var parts []string
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return m.styles.help.Render(ansi.Truncate(" "+strings.Join(parts, " · "), m.width, "…"))
}
