package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/msalah0e/glossview/internal/graphview"
)

// Layout units per terminal cell. A 220x46 node box becomes 22x3 cells.
const (
	cellWidth  = 10.0
	cellHeight = 16.0
)

type tone int

const (
	toneNone tone = iota
	toneMuted
	toneEdge
	toneLabel
	toneNodeDim
	toneNode
	toneAccent
	toneAccentLabel
	toneNodeAccent
)

// Line-drawing directions, combined per cell.
const (
	dirN = 1 << iota
	dirE
	dirS
	dirW
)

var lineGlyphs = map[int]rune{
	dirE | dirW:               '─',
	dirE:                      '─',
	dirW:                      '─',
	dirN | dirS:               '│',
	dirN:                      '│',
	dirS:                      '│',
	dirE | dirS:               '┌',
	dirW | dirS:               '┐',
	dirN | dirE:               '└',
	dirN | dirW:               '┘',
	dirN | dirS | dirE:        '├',
	dirN | dirS | dirW:        '┤',
	dirE | dirW | dirS:        '┬',
	dirE | dirW | dirN:        '┴',
	dirN | dirE | dirS | dirW: '┼',
}

type cell struct {
	r    rune
	skip bool // right half of a wide rune
	dirs int
	tone tone
}

type hitBox struct {
	id             string
	col, row, w, h int
}

// Grid is a terminal canvas for the graph. Draw rasterizes styled
// nodes and edges into cells; Render crops a viewport out of them.
type Grid struct {
	cells  [][]cell
	boxes  []hitBox
	cols   int
	rows   int
	styles map[tone]lipgloss.Style
}

// NewGrid returns an empty grid using theme colors.
func NewGrid(theme Theme) *Grid {
	return &Grid{styles: theme.canvasStyles()}
}

// Size returns the grid extent in cells.
func (g *Grid) Size() (cols, rows int) { return g.cols, g.rows }

// NodeAt returns the node whose box covers the given cell.
func (g *Grid) NodeAt(col, row int) (string, bool) {
	for i := len(g.boxes) - 1; i >= 0; i-- {
		b := g.boxes[i]
		if col >= b.col && col < b.col+b.w && row >= b.row && row < b.row+b.h {
			return b.id, true
		}
	}
	return "", false
}

// Box returns the cell rectangle of a node.
func (g *Grid) Box(id string) (col, row, w, h int, ok bool) {
	for _, b := range g.boxes {
		if b.id == id {
			return b.col, b.row, b.w, b.h, true
		}
	}
	return 0, 0, 0, 0, false
}

func toCol(x float64) int { return int(math.Round(x / cellWidth)) }
func toRow(y float64) int { return int(math.Round(y / cellHeight)) }

func boxOf(n graphview.FlowNode) hitBox {
	return hitBox{
		id:  n.ID,
		col: toCol(n.Position.X),
		row: toRow(n.Position.Y),
		w:   max(4, toCol(n.Width)),
		h:   max(3, toRow(n.Height)),
	}
}

// Draw implements graphview.Canvas.
func (g *Grid) Draw(nodes []graphview.DisplayNode, edges []graphview.DisplayEdge) error {
	g.boxes = g.boxes[:0]
	byID := make(map[string]hitBox, len(nodes))
	g.cols, g.rows = 0, 0
	for _, n := range nodes {
		b := boxOf(n.FlowNode)
		byID[n.ID] = b
		g.boxes = append(g.boxes, b)
		g.cols = max(g.cols, b.col+b.w+2)
		g.rows = max(g.rows, b.row+b.h+1)
	}
	g.cells = make([][]cell, g.rows)
	for r := range g.cells {
		g.cells[r] = make([]cell, g.cols)
	}
	sides := make(map[string]graphview.DisplayNode, len(nodes))
	for _, n := range nodes {
		sides[n.ID] = n
	}

	type labelAt struct {
		text     string
		col, row int
		tone     tone
	}
	var labels []labelAt
	for _, e := range edges {
		src, ok1 := byID[e.Source]
		dst, ok2 := byID[e.Target]
		if !ok1 || !ok2 || e.Source == e.Target {
			continue
		}
		t, lt := edgeTones(e.Style)
		col, row := g.route(src, dst, sides[e.Source].SourcePosition, t)
		if e.Label != "" {
			labels = append(labels, labelAt{text: e.Label, col: col, row: row, tone: lt})
		}
	}
	for _, l := range labels {
		text := " " + ansi.Truncate(l.text, 24, "…") + " "
		g.text(l.col-ansi.StringWidth(text)/2, l.row, text, l.tone)
	}
	for _, n := range nodes {
		g.box(byID[n.ID], n.Data.Label, nodeTone(n.Style))
	}
	return nil
}

func edgeTones(s graphview.EdgeStyle) (line, label tone) {
	switch {
	case s.Emphasized:
		return toneAccent, toneAccentLabel
	case s.Opacity < 1:
		return toneMuted, toneMuted
	}
	return toneEdge, toneLabel
}

func nodeTone(s graphview.NodeStyle) tone {
	switch {
	case s.Outline:
		return toneNodeAccent
	case s.Opacity < 1:
		return toneNodeDim
	}
	return toneNode
}

// route draws an orthogonal connector between two boxes and returns the
// cell where its label belongs.
func (g *Grid) route(src, dst hitBox, side graphview.Side, t tone) (labelCol, labelRow int) {
	switch side {
	case graphview.SideBottom, graphview.SideTop:
		c1, c2 := src.col+src.w/2, dst.col+dst.w/2
		r1, r2, head := src.row+src.h, dst.row-1, '▼'
		if side == graphview.SideTop {
			r1, r2, head = src.row-1, dst.row+dst.h, '▲'
		}
		mid := (r1 + r2) / 2
		g.vline(c1, r1, mid, t)
		g.hline(mid, c1, c2, t)
		g.vline(c2, mid, r2, t)
		g.glyph(c2, r2, head, t)
		return (c1 + c2) / 2, mid
	default:
		r1, r2 := src.row+src.h/2, dst.row+dst.h/2
		c1, c2, head := src.col+src.w, dst.col-1, '▶'
		if side == graphview.SideLeft {
			c1, c2, head = src.col-1, dst.col+dst.w, '◀'
		}
		mid := (c1 + c2) / 2
		g.hline(r1, c1, mid, t)
		g.vline(mid, r1, r2, t)
		g.hline(r2, mid, c2, t)
		g.glyph(c2, r2, head, t)
		return mid, (r1 + r2) / 2
	}
}

func (g *Grid) at(col, row int) *cell {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return nil
	}
	return &g.cells[row][col]
}

func (g *Grid) line(col, row, dirs int, t tone) {
	c := g.at(col, row)
	if c == nil {
		return
	}
	c.dirs |= dirs
	c.tone = max(c.tone, t)
}

func (g *Grid) hline(row, c1, c2 int, t tone) {
	lo, hi := min(c1, c2), max(c1, c2)
	for c := lo; c <= hi; c++ {
		d := 0
		if c > lo {
			d |= dirW
		}
		if c < hi {
			d |= dirE
		}
		if lo == hi {
			d = dirE | dirW
		}
		g.line(c, row, d, t)
	}
}

func (g *Grid) vline(col, r1, r2 int, t tone) {
	lo, hi := min(r1, r2), max(r1, r2)
	if lo == hi {
		return
	}
	for r := lo; r <= hi; r++ {
		d := 0
		if r > lo {
			d |= dirN
		}
		if r < hi {
			d |= dirS
		}
		g.line(col, r, d, t)
	}
}

func (g *Grid) glyph(col, row int, r rune, t tone) {
	if c := g.at(col, row); c != nil {
		*c = cell{r: r, tone: max(c.tone, t)}
	}
}

func (g *Grid) text(col, row int, s string, t tone) {
	for _, r := range s {
		w := ansi.StringWidth(string(r))
		if w == 0 {
			continue
		}
		if c := g.at(col, row); c != nil {
			*c = cell{r: r, tone: t}
		}
		if w == 2 {
			if c := g.at(col+1, row); c != nil {
				*c = cell{skip: true, tone: t}
			}
		}
		col += w
	}
}

func (g *Grid) box(b hitBox, label string, t tone) {
	right, bottom := b.col+b.w-1, b.row+b.h-1
	for r := b.row; r <= bottom; r++ {
		for c := b.col; c <= right; c++ {
			ch := ' '
			switch {
			case r == b.row && c == b.col:
				ch = '╭'
			case r == b.row && c == right:
				ch = '╮'
			case r == bottom && c == b.col:
				ch = '╰'
			case r == bottom && c == right:
				ch = '╯'
			case r == b.row || r == bottom:
				ch = '─'
			case c == b.col || c == right:
				ch = '│'
			}
			if cl := g.at(c, r); cl != nil {
				*cl = cell{r: ch, tone: t}
			}
		}
	}
	inner := b.w - 4
	text := ansi.Truncate(label, inner, "…")
	pad := (inner - ansi.StringWidth(text)) / 2
	g.text(b.col+2+pad, b.row+b.h/2, text, t)
}

func (c cell) glyph() string {
	switch {
	case c.skip:
		return ""
	case c.r != 0:
		return string(c.r)
	case c.dirs != 0:
		return string(lineGlyphs[c.dirs])
	}
	return " "
}

// Render returns width x height cells starting at (col, row), one
// string per row with styles applied to runs of equal tone.
func (g *Grid) Render(col, row, width, height int) []string {
	out := make([]string, height)
	for y := 0; y < height; y++ {
		var b, run strings.Builder
		runTone := toneNone
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if st, ok := g.styles[runTone]; ok && runTone != toneNone {
				b.WriteString(st.Render(run.String()))
			} else {
				b.WriteString(run.String())
			}
			run.Reset()
		}
		for x := 0; x < width; x++ {
			c := cell{}
			if p := g.at(col+x, row+y); p != nil {
				c = *p
			}
			t := c.tone
			if c.r == 0 && c.dirs == 0 && !c.skip {
				t = toneNone
			}
			if t != runTone {
				flush()
				runTone = t
			}
			run.WriteString(c.glyph())
		}
		flush()
		out[y] = b.String()
	}
	return out
}

// Plain returns the whole grid without styling.
func (g *Grid) Plain() string {
	var b strings.Builder
	for r := 0; r < g.rows; r++ {
		var line strings.Builder
		for c := 0; c < g.cols; c++ {
			line.WriteString(g.cells[r][c].glyph())
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		b.WriteString("\n")
	}
	return b.String()
}
