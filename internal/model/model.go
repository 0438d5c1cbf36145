package model

import (
	"encoding/json"
	"fmt"
)

// Source is a citation attached to a term.
type Source struct {
	Title string `json:"title"`
	URL   string `json:"url,omitempty"`
}

// Term represents a glossary entry.
type Term struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Definition string   `json:"definition"`
	Sources    []Source `json:"sources"`
}

// Point is a 2D coordinate in layout space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeData is the display payload of a graph node.
type NodeData struct {
	Label      string   `json:"label"`
	Definition string   `json:"definition"`
	Sources    []Source `json:"sources"`
}

// GraphNode is a node of the semantic graph. Its ID matches a Term ID
// where the node stands for a term.
type GraphNode struct {
	ID       string   `json:"id"`
	Type     string   `json:"type,omitempty"`
	Position Point    `json:"position"`
	Data     NodeData `json:"data"`
}

// UnmarshalJSON accepts both the nested shape {"id", "data": {...}} and
// a flat node that carries label/title, definition and sources itself.
func (n *GraphNode) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID         string    `json:"id"`
		Type       string    `json:"type"`
		Position   Point     `json:"position"`
		Data       *NodeData `json:"data"`
		Label      string    `json:"label"`
		Title      string    `json:"title"`
		Definition string    `json:"definition"`
		Sources    []Source  `json:"sources"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("graph node: %w", err)
	}

	n.ID = raw.ID
	n.Type = raw.Type
	n.Position = raw.Position
	if raw.Data != nil {
		n.Data = *raw.Data
		return nil
	}

	label := raw.Label
	if label == "" {
		label = raw.Title
	}
	n.Data = NodeData{Label: label, Definition: raw.Definition, Sources: raw.Sources}
	return nil
}

// GraphEdge is a directed relation between two nodes.
type GraphEdge struct {
	ID       string `json:"id,omitempty"`
	Source   string `json:"source"`
	Target   string `json:"target"`
	Label    string `json:"label,omitempty"`
	Animated bool   `json:"animated,omitempty"`
}

// GraphDocument is the graph served by the backend.
type GraphDocument struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// Empty reports whether the document is absent or has no nodes.
func (d *GraphDocument) Empty() bool {
	return d == nil || len(d.Nodes) == 0
}
