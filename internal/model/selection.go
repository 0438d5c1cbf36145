package model

// Selection holds at most one selected entity: a Term or a GraphNode.
type Selection struct {
	Term *Term
	Node *GraphNode
}

// Detail is the projection shown by the side panel.
type Detail struct {
	ID         string
	Title      string
	Definition string
	Sources    []Source
}

// SelectTerm returns a selection holding a copy of t.
func SelectTerm(t Term) *Selection {
	return &Selection{Term: &t}
}

// SelectNode returns a selection holding a copy of n.
func SelectNode(n GraphNode) *Selection {
	return &Selection{Node: &n}
}

// ID returns the identifier of the selected entity.
func (s *Selection) ID() string {
	switch {
	case s == nil:
		return ""
	case s.Term != nil:
		return s.Term.ID
	case s.Node != nil:
		return s.Node.ID
	}
	return ""
}

// Detail projects the selection onto the fields the panel displays.
// Term fields win over node payload fields.
func (s *Selection) Detail() Detail {
	if s == nil {
		return Detail{}
	}
	if s.Term != nil {
		return Detail{
			ID:         s.Term.ID,
			Title:      s.Term.Title,
			Definition: s.Term.Definition,
			Sources:    s.Term.Sources,
		}
	}
	if s.Node != nil {
		return Detail{
			ID:         s.Node.ID,
			Title:      s.Node.Data.Label,
			Definition: s.Node.Data.Definition,
			Sources:    s.Node.Data.Sources,
		}
	}
	return Detail{}
}
