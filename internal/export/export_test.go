package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/msalah0e/glossview/internal/graphview"
	"github.com/msalah0e/glossview/internal/layout"
	"github.com/msalah0e/glossview/internal/model"
)

func sampleView(t *testing.T) *graphview.View {
	t.Helper()
	return sampleViewWith(t, layout.DefaultOptions())
}

func sampleViewWith(t *testing.T, opts layout.Options) *graphview.View {
	t.Helper()
	doc := &model.GraphDocument{
		Nodes: []model.GraphNode{
			{ID: "web_components", Data: model.NodeData{Label: "Веб-компоненты"}},
			{ID: "shadow_dom", Data: model.NodeData{Label: "Shadow DOM"}},
			{ID: "templates", Data: model.NodeData{Label: "<template>"}},
		},
		Edges: []model.GraphEdge{
			{ID: "e1", Source: "web_components", Target: "shadow_dom", Label: "состоит из"},
			{ID: "e2", Source: "shadow_dom", Target: "templates", Label: "использует", Animated: true},
		},
	}
	v := graphview.NewView(nil, opts, nil)
	if err := v.Load(doc); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return v
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"dot", "JSON", "svg"} {
		if _, err := ParseFormat(s); err != nil {
			t.Errorf("ParseFormat(%q) failed: %v", s, err)
		}
	}
	if _, err := ParseFormat("png"); err == nil {
		t.Error("expected error for png")
	}
}

func TestDOT(t *testing.T) {
	v := sampleView(t)
	var buf bytes.Buffer
	if err := Write(&buf, FormatDOT, v); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"digraph glossary {",
		"rankdir=LR;",
		`"web_components" [label="Веб-компоненты"`,
		`"web_components" -> "shadow_dom" [label="состоит из"]`,
		"style=dashed",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("DOT missing %q\n%s", want, out)
		}
	}
}

func TestDOTHover(t *testing.T) {
	v := sampleView(t)
	v.HoverEnter("web_components")
	nodes, edges := v.Display()
	out := DOT(layout.LeftRight, nodes, edges)

	if !strings.Contains(out, `"web_components" -> "shadow_dom" [label="состоит из", color="#22d3ee", penwidth=3`) {
		t.Errorf("incident edge should be emphasized\n%s", out)
	}
	if strings.Contains(out, `label="использует"`) {
		t.Errorf("muted edge label should be blank\n%s", out)
	}
}

func TestDOTDirection(t *testing.T) {
	opts := layout.DefaultOptions()
	opts.Direction = layout.TopBottom
	v := sampleViewWith(t, opts)

	var buf bytes.Buffer
	if err := Write(&buf, FormatDOT, v); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !strings.Contains(buf.String(), "rankdir=TB;") {
		t.Errorf("expected rankdir=TB\n%s", buf.String())
	}
	if strings.Contains(buf.String(), "rankdir=LR;") {
		t.Error("direction should not be hard-coded")
	}
	if out := DOT("", nil, nil); !strings.Contains(out, "rankdir=LR;") {
		t.Errorf("empty direction should default to LR\n%s", out)
	}
}

func TestJSON(t *testing.T) {
	v := sampleView(t)
	v.HoverEnter("templates")

	var buf bytes.Buffer
	if err := Write(&buf, FormatJSON, v); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var doc struct {
		Nodes []struct {
			ID     string  `json:"id"`
			X      float64 `json:"x"`
			Width  float64 `json:"width"`
			Source string  `json:"sourcePosition"`
			Style  struct {
				Opacity float64 `json:"opacity"`
			} `json:"style"`
		} `json:"nodes"`
		Edges []struct {
			ID    string `json:"id"`
			Label string `json:"label"`
		} `json:"edges"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(doc.Nodes) != 3 || len(doc.Edges) != 2 {
		t.Fatalf("unexpected sizes %d/%d", len(doc.Nodes), len(doc.Edges))
	}
	if doc.Nodes[0].Width != graphview.NodeWidth || doc.Nodes[0].Source != "right" {
		t.Errorf("unexpected node %+v", doc.Nodes[0])
	}
	if doc.Nodes[0].Style.Opacity != graphview.DimmedNodeOpacity {
		t.Errorf("web_components is not adjacent to templates, got opacity %v", doc.Nodes[0].Style.Opacity)
	}
	if doc.Edges[0].Label != "" || doc.Edges[1].Label != "использует" {
		t.Errorf("unexpected edge labels %+v", doc.Edges)
	}
}

func TestSVG(t *testing.T) {
	v := sampleView(t)
	v.HoverEnter("shadow_dom")

	var buf bytes.Buffer
	if err := v.Render(NewSVG(&buf)); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "<svg ") || !strings.HasSuffix(out, "</svg>\n") {
		t.Fatalf("not a complete document:\n%s", out)
	}
	if got := strings.Count(out, "<path "); got != 2 {
		t.Errorf("expected 2 edges, got %d", got)
	}
	if !strings.Contains(out, "&lt;template&gt;") {
		t.Error("labels must be escaped")
	}
	if !strings.Contains(out, `stroke="`+graphview.Accent+`" stroke-width="3"`) {
		t.Error("edges at the hovered node should use the accent stroke")
	}
	if !strings.Contains(out, `stroke-dasharray="5 5"`) {
		t.Error("animated edge should be dashed")
	}
}

func TestSVGEmptyViewDrawsNothing(t *testing.T) {
	v := graphview.NewView(nil, layout.DefaultOptions(), nil)
	var buf bytes.Buffer
	if err := v.Render(NewSVG(&buf)); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output for an empty graph, got %q", buf.String())
	}
}
