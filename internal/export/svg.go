package export

import (
	"bufio"
	"fmt"
	"html"
	"io"

	"github.com/msalah0e/glossview/internal/graphview"
	"github.com/msalah0e/glossview/internal/model"
)

// Padding around the drawing, in layout units.
const svgPad = 20

// SVG is a graphview.Canvas that writes a standalone SVG document.
type SVG struct {
	w *bufio.Writer
}

// NewSVG returns a canvas writing to w.
func NewSVG(w io.Writer) *SVG {
	return &SVG{w: bufio.NewWriter(w)}
}

// Draw writes one complete document. Edges go first so boxes sit on top.
func (s *SVG) Draw(nodes []graphview.DisplayNode, edges []graphview.DisplayEdge) error {
	width, height := 0.0, 0.0
	byID := make(map[string]graphview.DisplayNode, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
		width = max(width, n.Position.X+n.Width)
		height = max(height, n.Position.Y+n.Height)
	}
	width += svgPad
	height += svgPad

	fmt.Fprintf(s.w, `<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g" viewBox="0 0 %g %g" font-family="sans-serif" font-size="13">`+"\n",
		width, height, width, height)
	fmt.Fprintf(s.w, `  <rect width="100%%" height="100%%" fill="#0b1220"/>`+"\n")

	for _, e := range edges {
		src, ok1 := byID[e.Source]
		dst, ok2 := byID[e.Target]
		if !ok1 || !ok2 {
			continue
		}
		s.edge(e, anchor(src.FlowNode, src.SourcePosition), anchor(dst.FlowNode, dst.TargetPosition))
	}
	for _, n := range nodes {
		s.node(n)
	}

	fmt.Fprintln(s.w, "</svg>")
	return s.w.Flush()
}

func (s *SVG) edge(e graphview.DisplayEdge, from, to model.Point) {
	st := e.Style
	stroke := st.Stroke
	if stroke == "" {
		stroke = "rgba(255, 255, 255, 0.45)"
	}
	midX := (from.X + to.X) / 2
	fmt.Fprintf(s.w, `  <path d="M %g %g C %g %g, %g %g, %g %g" fill="none" stroke="%s" stroke-width="%g" opacity="%g"`,
		from.X, from.Y, midX, from.Y, midX, to.Y, to.X, to.Y, stroke, st.StrokeWidth, st.Opacity)
	if e.Animated {
		fmt.Fprint(s.w, ` stroke-dasharray="5 5"`)
	}
	fmt.Fprintln(s.w, "/>")

	if e.Label == "" {
		return
	}
	mx, my := (from.X+to.X)/2, (from.Y+to.Y)/2
	bg := st.LabelBG
	if bg == "" {
		bg = "#1e293b"
	}
	color := st.LabelColor
	if color == "" {
		color = "#e2e8f0"
	}
	weight := "normal"
	if st.LabelBold {
		weight = "bold"
	}
	w := float64(len([]rune(e.Label)))*7 + 12
	fmt.Fprintf(s.w, `  <g opacity="%g"><rect x="%g" y="%g" width="%g" height="18" rx="9" fill="%s"/>`,
		st.LabelOpacity, mx-w/2, my-9, w, bg)
	fmt.Fprintf(s.w, `<text x="%g" y="%g" text-anchor="middle" fill="%s" font-size="11" font-weight="%s">%s</text></g>`+"\n",
		mx, my+4, color, weight, html.EscapeString(e.Label))
}

func (s *SVG) node(n graphview.DisplayNode) {
	border := "rgba(255, 255, 255, 0.25)"
	strokeWidth := 1.0
	if n.Style.Outline {
		border = n.Style.BorderColor
		strokeWidth = 2
	}
	fmt.Fprintf(s.w, `  <g opacity="%g"><rect x="%g" y="%g" width="%g" height="%g" rx="8" fill="#111827" stroke="%s" stroke-width="%g"/>`,
		n.Style.Opacity, n.Position.X, n.Position.Y, n.Width, n.Height, border, strokeWidth)
	c := n.Center()
	fmt.Fprintf(s.w, `<text x="%g" y="%g" text-anchor="middle" fill="#f8fafc">%s</text></g>`+"\n",
		c.X, c.Y+4, html.EscapeString(n.Data.Label))
}

// anchor returns the midpoint of the given side of a node box.
func anchor(n graphview.FlowNode, side graphview.Side) model.Point {
	c := n.Center()
	switch side {
	case graphview.SideLeft:
		return model.Point{X: n.Position.X, Y: c.Y}
	case graphview.SideRight:
		return model.Point{X: n.Position.X + n.Width, Y: c.Y}
	case graphview.SideTop:
		return model.Point{X: c.X, Y: n.Position.Y}
	case graphview.SideBottom:
		return model.Point{X: c.X, Y: n.Position.Y + n.Height}
	}
	return c
}
