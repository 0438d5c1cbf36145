// Package export writes a laid-out, styled graph in portable formats.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/msalah0e/glossview/internal/graphview"
	"github.com/msalah0e/glossview/internal/layout"
)

// Format is an export format name.
type Format string

const (
	FormatDOT  Format = "dot"
	FormatJSON Format = "json"
	FormatSVG  Format = "svg"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatDOT:
		return FormatDOT, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatSVG:
		return FormatSVG, nil
	}
	return "", fmt.Errorf("unknown export format %q (want dot, json or svg)", s)
}

// Write renders the current display of v in format f.
func Write(w io.Writer, f Format, v *graphview.View) error {
	nodes, edges := v.Display()
	switch f {
	case FormatDOT:
		_, err := io.WriteString(w, DOT(v.Options().Direction, nodes, edges))
		return err
	case FormatJSON:
		return JSON(w, nodes, edges)
	case FormatSVG:
		return NewSVG(w).Draw(nodes, edges)
	}
	return fmt.Errorf("unknown export format %q", f)
}

// DOT returns the graph in Graphviz DOT format with ranks flowing in
// dir. Node and edge attributes carry the hover styling so a highlighted
// export reads the same as the interactive view.
func DOT(dir layout.Direction, nodes []graphview.DisplayNode, edges []graphview.DisplayEdge) string {
	if dir == "" {
		dir = layout.LeftRight
	}
	var b strings.Builder
	b.WriteString("digraph glossary {\n")
	fmt.Fprintf(&b, "  rankdir=%s;\n", dir)
	b.WriteString("  node [shape=box, style=rounded];\n\n")

	for _, n := range nodes {
		attrs := []string{fmt.Sprintf("label=%q", n.Data.Label)}
		attrs = append(attrs, fmt.Sprintf("pos=\"%g,%g!\"", n.Center().X, -n.Center().Y))
		if n.Style.Outline {
			attrs = append(attrs, `color="#22d3ee"`, "penwidth=2")
		} else if n.Style.Opacity < 1 {
			attrs = append(attrs, `fontcolor="#888888"`, `color="#888888"`)
		}
		fmt.Fprintf(&b, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	b.WriteString("\n")
	for _, e := range edges {
		var attrs []string
		if e.Label != "" {
			attrs = append(attrs, fmt.Sprintf("label=%q", e.Label))
		}
		switch {
		case e.Style.Emphasized:
			attrs = append(attrs, `color="#22d3ee"`, "penwidth=3", `fontname="bold"`)
		case e.Style.Opacity < 1:
			attrs = append(attrs, `color="#dddddd"`)
		}
		if e.Animated {
			attrs = append(attrs, "style=dashed")
		}
		if len(attrs) == 0 {
			fmt.Fprintf(&b, "  %q -> %q;\n", e.Source, e.Target)
			continue
		}
		fmt.Fprintf(&b, "  %q -> %q [%s];\n", e.Source, e.Target, strings.Join(attrs, ", "))
	}

	b.WriteString("}\n")
	return b.String()
}

type jsonNode struct {
	ID     string              `json:"id"`
	Label  string              `json:"label"`
	X      float64             `json:"x"`
	Y      float64             `json:"y"`
	Width  float64             `json:"width"`
	Height float64             `json:"height"`
	Source graphview.Side      `json:"sourcePosition"`
	Target graphview.Side      `json:"targetPosition"`
	Style  graphview.NodeStyle `json:"style"`
}

type jsonEdge struct {
	ID       string              `json:"id"`
	Source   string              `json:"source"`
	Target   string              `json:"target"`
	Label    string              `json:"label,omitempty"`
	Animated bool                `json:"animated,omitempty"`
	Style    graphview.EdgeStyle `json:"style"`
}

// JSON writes placed nodes (top-left positions) and styled edges.
func JSON(w io.Writer, nodes []graphview.DisplayNode, edges []graphview.DisplayEdge) error {
	doc := struct {
		Nodes []jsonNode `json:"nodes"`
		Edges []jsonEdge `json:"edges"`
	}{Nodes: make([]jsonNode, 0, len(nodes)), Edges: make([]jsonEdge, 0, len(edges))}

	for _, n := range nodes {
		doc.Nodes = append(doc.Nodes, jsonNode{
			ID: n.ID, Label: n.Data.Label,
			X: n.Position.X, Y: n.Position.Y,
			Width: n.Width, Height: n.Height,
			Source: n.SourcePosition, Target: n.TargetPosition,
			Style: n.Style,
		})
	}
	for _, e := range edges {
		doc.Edges = append(doc.Edges, jsonEdge{
			ID: e.ID, Source: e.Source, Target: e.Target,
			Label: e.Label, Animated: e.Animated, Style: e.Style,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
