package tui

import (
	"strings"
	"testing"

	"github.com/msalah0e/glossview/internal/graphview"
	"github.com/msalah0e/glossview/internal/layout"
	"github.com/msalah0e/glossview/internal/model"
)

func drawnGrid(t *testing.T, hovered string, dir layout.Direction) (*Grid, *graphview.View) {
	t.Helper()
	opts := layout.DefaultOptions()
	opts.Direction = dir
	v := graphview.NewView(nil, opts, nil)
	err := v.Load(&model.GraphDocument{
		Nodes: []model.GraphNode{
			{ID: "a", Data: model.NodeData{Label: "Веб-компоненты"}},
			{ID: "b", Data: model.NodeData{Label: "Shadow DOM"}},
			{ID: "c", Data: model.NodeData{Label: "Island"}},
		},
		Edges: []model.GraphEdge{{ID: "e1", Source: "a", Target: "b", Label: "rel"}},
	})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if hovered != "" {
		v.HoverEnter(hovered)
	}
	g := NewGrid(DefaultTheme)
	if err := v.Render(g); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return g, v
}

func TestGridDrawsBoxesEdgesAndLabels(t *testing.T) {
	g, _ := drawnGrid(t, "", layout.LeftRight)
	out := g.Plain()

	for _, want := range []string{"╭", "╯", "Веб-компоненты", "Shadow DOM", "Island", "rel", "▶"} {
		if !strings.Contains(out, want) {
			t.Errorf("grid missing %q:\n%s", want, out)
		}
	}

	col, row, w, h, ok := g.Box("a")
	if !ok {
		t.Fatal("box for a not found")
	}
	if w != 22 || h != 3 {
		t.Errorf("expected a 22x3 box, got %dx%d", w, h)
	}
	if id, ok := g.NodeAt(col+1, row+1); !ok || id != "a" {
		t.Errorf("NodeAt inside box = %q, %v", id, ok)
	}
	if _, ok := g.NodeAt(col+w, row-1); ok {
		t.Error("NodeAt outside any box should miss")
	}
}

func TestGridTopBottomArrow(t *testing.T) {
	g, _ := drawnGrid(t, "", layout.TopBottom)
	if !strings.Contains(g.Plain(), "▼") {
		t.Errorf("expected a downward arrow:\n%s", g.Plain())
	}
}

func TestGridHoverTones(t *testing.T) {
	g, _ := drawnGrid(t, "a", layout.LeftRight)

	acol, arow, aw, ah, _ := g.Box("a")
	if tone := g.cells[arow][acol].tone; tone != toneNodeAccent {
		t.Errorf("hovered node border tone = %v", tone)
	}
	ccol, crow, _, _, _ := g.Box("c")
	if tone := g.cells[crow][ccol].tone; tone != toneNodeDim {
		t.Errorf("unrelated node should be dimmed, got tone %v", tone)
	}
	// First cell of the connector just right of a.
	if tone := g.cells[arow+ah/2][acol+aw].tone; tone != toneAccent {
		t.Errorf("incident edge should use the accent tone, got %v", tone)
	}
}

func TestGridMutedEdgeHasNoLabel(t *testing.T) {
	g, _ := drawnGrid(t, "c", layout.LeftRight)
	if strings.Contains(g.Plain(), "rel") {
		t.Error("edges away from the hovered node lose their label")
	}
}

func TestGridRenderViewport(t *testing.T) {
	g, _ := drawnGrid(t, "", layout.LeftRight)
	rows := g.Render(0, 0, 10, 4)
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}

	far := g.Render(1000, 1000, 5, 2)
	for _, r := range far {
		if strings.TrimSpace(r) != "" {
			t.Errorf("outside the grid should render blank, got %q", r)
		}
	}
}
