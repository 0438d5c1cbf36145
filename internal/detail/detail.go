// Package detail lays out the side panel for the selected term or node.
// It returns typed lines so terminal and plain-text callers can style
// them independently.
package detail

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/msalah0e/glossview/internal/model"
)

// Placeholder is shown for an empty definition or source list.
const Placeholder = "—"

// Kind classifies a panel line.
type Kind int

const (
	KindTitle Kind = iota
	KindDefinition
	KindHeading
	KindSource // plain citation
	KindLink   // citation with a URL
	KindID
	KindBlank
)

// Line is one rendered row of the panel.
type Line struct {
	Kind Kind
	Text string
	URL  string
}

// Headings used by the panel.
const (
	SourcesHeading = "Sources"
	IDHeading      = "ID"
)

// Render lays out sel for a panel of the given width. Long text is
// wrapped on word boundaries; width <= 0 disables wrapping. A nil
// selection renders nothing.
func Render(sel *model.Selection, width int) []Line {
	if sel == nil {
		return nil
	}
	d := sel.Detail()

	var lines []Line
	add := func(kind Kind, text, url string) {
		for _, row := range Wrap(text, width) {
			lines = append(lines, Line{Kind: kind, Text: row, URL: url})
		}
	}

	add(KindTitle, d.Title, "")
	lines = append(lines, Line{Kind: KindBlank})

	def := strings.TrimSpace(d.Definition)
	if def == "" {
		def = Placeholder
	}
	add(KindDefinition, def, "")
	lines = append(lines, Line{Kind: KindBlank})

	lines = append(lines, Line{Kind: KindHeading, Text: SourcesHeading})
	if len(d.Sources) == 0 {
		lines = append(lines, Line{Kind: KindSource, Text: Placeholder})
	}
	for _, s := range d.Sources {
		if s.URL != "" {
			add(KindLink, "• "+s.Title, s.URL)
		} else {
			add(KindSource, "• "+s.Title, "")
		}
	}
	lines = append(lines, Line{Kind: KindBlank})

	lines = append(lines, Line{Kind: KindHeading, Text: IDHeading})
	lines = append(lines, Line{Kind: KindID, Text: d.ID})
	return lines
}

// Text renders sel as plain text, one line per row.
func Text(sel *model.Selection, width int) string {
	var b strings.Builder
	for _, l := range Render(sel, width) {
		b.WriteString(l.Text)
		if l.Kind == KindLink {
			b.WriteString(" <" + l.URL + ">")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Wrap splits s into rows no wider than width terminal cells, breaking
// on spaces. Each newline in s starts a new row and words wider than
// width are cut. Width <= 0 only splits on newlines.
func Wrap(s string, width int) []string {
	var rows []string
	for _, para := range strings.Split(s, "\n") {
		para = strings.TrimSpace(para)
		if width <= 0 || para == "" {
			rows = append(rows, para)
			continue
		}
		for _, row := range strings.Split(ansi.Wrap(para, width, ""), "\n") {
			rows = append(rows, strings.TrimRight(row, " "))
		}
	}
	return rows
}
