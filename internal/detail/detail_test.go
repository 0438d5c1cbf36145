package detail

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/msalah0e/glossview/internal/model"
)

func kinds(lines []Line, k Kind) []Line {
	var out []Line
	for _, l := range lines {
		if l.Kind == k {
			out = append(out, l)
		}
	}
	return out
}

func TestRenderNil(t *testing.T) {
	if lines := Render(nil, 40); lines != nil {
		t.Errorf("expected nothing for nil selection, got %v", lines)
	}
}

func TestRenderTerm(t *testing.T) {
	sel := model.SelectTerm(model.Term{
		ID:         "shadow_dom",
		Title:      "Shadow DOM",
		Definition: "Encapsulated DOM subtree",
		Sources: []model.Source{
			{Title: "MDN", URL: "https://developer.mozilla.org"},
			{Title: "Printed book"},
		},
	})
	lines := Render(sel, 0)

	if lines[0].Kind != KindTitle || lines[0].Text != "Shadow DOM" {
		t.Errorf("first line should be title, got %+v", lines[0])
	}
	if defs := kinds(lines, KindDefinition); len(defs) != 1 || defs[0].Text != "Encapsulated DOM subtree" {
		t.Errorf("unexpected definition lines %+v", defs)
	}
	links := kinds(lines, KindLink)
	if len(links) != 1 || links[0].URL != "https://developer.mozilla.org" {
		t.Errorf("expected one link line, got %+v", links)
	}
	plain := kinds(lines, KindSource)
	if len(plain) != 1 || !strings.Contains(plain[0].Text, "Printed book") {
		t.Errorf("expected one plain source, got %+v", plain)
	}
	if ids := kinds(lines, KindID); len(ids) != 1 || ids[0].Text != "shadow_dom" {
		t.Errorf("unexpected id lines %+v", ids)
	}
}

func TestRenderNodePlaceholders(t *testing.T) {
	sel := model.SelectNode(model.GraphNode{ID: "n1", Data: model.NodeData{Label: "Slots"}})
	lines := Render(sel, 30)

	if lines[0].Text != "Slots" {
		t.Errorf("expected node label as title, got %q", lines[0].Text)
	}
	if defs := kinds(lines, KindDefinition); len(defs) != 1 || defs[0].Text != Placeholder {
		t.Errorf("expected placeholder definition, got %+v", defs)
	}
	if src := kinds(lines, KindSource); len(src) != 1 || src[0].Text != Placeholder {
		t.Errorf("expected placeholder source, got %+v", src)
	}
}

func TestText(t *testing.T) {
	sel := model.SelectTerm(model.Term{ID: "x", Title: "X", Sources: []model.Source{{Title: "site", URL: "https://x.dev"}}})
	out := Text(sel, 0)
	if !strings.Contains(out, "site <https://x.dev>") {
		t.Errorf("expected link with url, got %q", out)
	}
	if !strings.HasSuffix(out, "x\n") {
		t.Errorf("expected id on last line, got %q", out)
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  []string
	}{
		{"short", 10, []string{"short"}},
		{"one two three four", 9, []string{"one two", "three", "four"}},
		{"abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"Компонент интерфейса", 10, []string{"Компонент", "интерфейса"}},
		{"anything", 0, []string{"anything"}},
		{"組件 模型 定義", 5, []string{"組件", "模型", "定義"}},
		{"first\nsecond\nthird", 40, []string{"first", "second", "third"}},
		{"line one\nline two", 0, []string{"line one", "line two"}},
	}
	for _, tt := range tests {
		got := Wrap(tt.in, tt.width)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("Wrap(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
		for _, row := range got {
			if tt.width > 0 && ansi.StringWidth(row) > tt.width {
				t.Errorf("Wrap(%q, %d) row %q too long", tt.in, tt.width, row)
			}
		}
	}
}

func TestWrapWideText(t *testing.T) {
	text := "組件 模型 定義 瀏覽器 原生 自定義 元素 封裝 樣式 模板"
	rows := Wrap(text, 20)
	if len(rows) < 2 {
		t.Fatalf("expected several rows, got %q", rows)
	}
	for _, row := range rows {
		if w := ansi.StringWidth(row); w > 20 {
			t.Errorf("row %q is %d cells wide", row, w)
		}
	}
}

func TestRenderMultilineDefinition(t *testing.T) {
	sel := model.SelectTerm(model.Term{ID: "x", Title: "X", Definition: "first\nsecond\nthird\nfourth"})
	defs := kinds(Render(sel, 30), KindDefinition)
	if len(defs) != 4 {
		t.Fatalf("expected one line per paragraph, got %+v", defs)
	}
	for _, l := range defs {
		if strings.Contains(l.Text, "\n") {
			t.Errorf("line %q still holds a newline", l.Text)
		}
	}
}
