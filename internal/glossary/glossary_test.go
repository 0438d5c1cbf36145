package glossary

import (
	"strings"
	"testing"

	"github.com/msalah0e/glossview/internal/model"
)

func sampleTerms() []model.Term {
	return []model.Term{
		{ID: "wc", Title: "Web Components", Definition: "A set of browser APIs for reusable widgets"},
		{ID: "sd", Title: "Shadow DOM", Definition: "Encapsulated DOM subtree"},
		{ID: "ce", Title: "Custom Elements", Definition: "User-defined HTML tags"},
		{ID: "ru", Title: "Реактивность", Definition: "Автоматическое обновление представления"},
		{ID: "vd", Title: "Virtual DOM", Definition: "In-memory tree diffed against the real DOM"},
	}
}

// isSubsequence reports whether sub appears in full in the same order.
func isSubsequence(sub, full []model.Term) bool {
	j := 0
	for _, t := range full {
		if j < len(sub) && sub[j].ID == t.ID {
			j++
		}
	}
	return j == len(sub)
}

func TestFilterEmptyQuery(t *testing.T) {
	terms := sampleTerms()
	for _, q := range []string{"", "   "} {
		got := Filter(terms, q)
		if len(got) != len(terms) {
			t.Fatalf("Filter(%q): expected %d terms, got %d", q, len(terms), len(got))
		}
		for i := range terms {
			if got[i].ID != terms[i].ID {
				t.Errorf("Filter(%q): order changed at %d", q, i)
			}
		}
	}
}

func TestFilterProperties(t *testing.T) {
	terms := sampleTerms()
	queries := []string{"dom", "DOM", "web", "tags", "реакт", "ОБНОВ", "zzz", "e", " shadow "}

	for _, q := range queries {
		got := Filter(terms, q)
		if !isSubsequence(got, terms) {
			t.Errorf("Filter(%q) is not an order-preserving subset", q)
		}

		lq := strings.ToLower(strings.TrimSpace(q))
		kept := make(map[string]bool)
		for _, term := range got {
			kept[term.ID] = true
			if !strings.Contains(strings.ToLower(term.Title), lq) && !strings.Contains(strings.ToLower(term.Definition), lq) {
				t.Errorf("Filter(%q) returned non-matching term %q", q, term.ID)
			}
		}
		for _, term := range terms {
			if kept[term.ID] {
				continue
			}
			if strings.Contains(strings.ToLower(term.Title), lq) || strings.Contains(strings.ToLower(term.Definition), lq) {
				t.Errorf("Filter(%q) excluded matching term %q", q, term.ID)
			}
		}
	}
}

func TestFilterCounts(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"dom", []string{"sd", "vd"}},
		{"Shadow", []string{"sd"}},
		{"реактив", []string{"ru"}},
		{"nothing-matches", nil},
	}

	for _, tt := range tests {
		got := Filter(sampleTerms(), tt.query)
		if len(got) != len(tt.want) {
			t.Errorf("Filter(%q): expected %d results, got %d", tt.query, len(tt.want), len(got))
			continue
		}
		for i, id := range tt.want {
			if got[i].ID != id {
				t.Errorf("Filter(%q)[%d]: expected %q, got %q", tt.query, i, id, got[i].ID)
			}
		}
	}
}

func TestViewSelect(t *testing.T) {
	var selected []string
	v := NewView(sampleTerms(), func(t model.Term) { selected = append(selected, t.ID) })

	if v.Count() != 5 {
		t.Fatalf("expected 5 visible, got %d", v.Count())
	}

	v.MoveCursor(2)
	if !v.Select() {
		t.Fatal("Select should succeed")
	}
	v.SetQuery("dom")
	if v.Cursor() != 1 {
		t.Errorf("cursor should be clamped to 1, got %d", v.Cursor())
	}
	v.Select()

	if len(selected) != 2 || selected[0] != "ce" || selected[1] != "vd" {
		t.Errorf("unexpected selections %v", selected)
	}
}

func TestViewEmpty(t *testing.T) {
	called := false
	v := NewView(nil, func(model.Term) { called = true })
	v.MoveCursor(3)
	if v.Cursor() != 0 {
		t.Errorf("cursor should stay at 0, got %d", v.Cursor())
	}
	if v.Select() {
		t.Error("Select on empty list should report false")
	}
	if called {
		t.Error("callback must not fire on empty list")
	}
}

func TestViewSetTermsKeepsQuery(t *testing.T) {
	v := NewView(nil, nil)
	v.SetQuery("shadow")
	v.SetTerms(sampleTerms())
	if v.Count() != 1 || v.Visible()[0].ID != "sd" {
		t.Errorf("expected query to apply to new terms, got %+v", v.Visible())
	}
}
