// Package glossary implements the filterable term list.
package glossary

import (
	"strings"

	"github.com/msalah0e/glossview/internal/model"
)

// Filter returns the terms whose title or definition contains query,
// case-insensitively. The order of terms is preserved. An empty or
// blank query returns terms unchanged.
func Filter(terms []model.Term, query string) []model.Term {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return terms
	}

	out := make([]model.Term, 0, len(terms))
	for _, t := range terms {
		if Matches(t, q) {
			out = append(out, t)
		}
	}
	return out
}

// Matches reports whether t matches an already lowercased query.
func Matches(t model.Term, q string) bool {
	return strings.Contains(strings.ToLower(t.Title), q) ||
		strings.Contains(strings.ToLower(t.Definition), q)
}

// View is the glossary list state: the full term list, the query and a
// cursor over the visible cards. Selecting a card hands the term to
// onSelect.
type View struct {
	terms    []model.Term
	query    string
	visible  []model.Term
	cursor   int
	onSelect func(model.Term)
}

// NewView creates a view over terms.
func NewView(terms []model.Term, onSelect func(model.Term)) *View {
	v := &View{onSelect: onSelect}
	v.SetTerms(terms)
	return v
}

// SetTerms replaces the term list and reapplies the current query.
func (v *View) SetTerms(terms []model.Term) {
	v.terms = terms
	v.refilter()
}

// SetQuery updates the query and recomputes the visible cards.
func (v *View) SetQuery(query string) {
	if query == v.query {
		return
	}
	v.query = query
	v.refilter()
}

// Query returns the current query.
func (v *View) Query() string { return v.query }

// Visible returns the filtered cards.
func (v *View) Visible() []model.Term { return v.visible }

// Count returns the number of visible cards.
func (v *View) Count() int { return len(v.visible) }

// Cursor returns the index of the highlighted card.
func (v *View) Cursor() int { return v.cursor }

// MoveCursor moves the highlighted card by delta, clamped to the list.
func (v *View) MoveCursor(delta int) {
	v.SetCursor(v.cursor + delta)
}

// SetCursor places the cursor on index i, clamped to the list.
func (v *View) SetCursor(i int) {
	if i >= len(v.visible) {
		i = len(v.visible) - 1
	}
	if i < 0 {
		i = 0
	}
	v.cursor = i
}

// Select emits the card under the cursor. It reports false when the
// list is empty.
func (v *View) Select() bool {
	if len(v.visible) == 0 {
		return false
	}
	if v.onSelect != nil {
		v.onSelect(v.visible[v.cursor])
	}
	return true
}

func (v *View) refilter() {
	v.visible = Filter(v.terms, v.query)
	v.SetCursor(v.cursor)
}
