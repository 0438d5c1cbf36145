// Package graphview turns a graph document into positioned, styled
// nodes and edges and tracks hover and click interaction on them.
package graphview

import (
	"fmt"

	"github.com/msalah0e/glossview/internal/layout"
	"github.com/msalah0e/glossview/internal/model"
)

// Node boxes have a fixed size in layout units.
const (
	NodeWidth  = 220
	NodeHeight = 46
)

// Side is the side of a node box where edges attach.
type Side string

const (
	SideLeft   Side = "left"
	SideRight  Side = "right"
	SideTop    Side = "top"
	SideBottom Side = "bottom"
)

// FlowNode is a graph node placed on the canvas. Position is the
// top-left corner of the box.
type FlowNode struct {
	model.GraphNode
	Position       model.Point
	Width, Height  float64
	SourcePosition Side
	TargetPosition Side
	Draggable      bool
	Rank           int // layer along the flow direction
}

// Center returns the centre of the node box.
func (n FlowNode) Center() model.Point {
	return model.Point{X: n.Position.X + n.Width/2, Y: n.Position.Y + n.Height/2}
}

// FlowEdge is an edge ready to be drawn.
type FlowEdge struct {
	model.GraphEdge
}

// Sides returns the source and target attachment sides for a direction.
func Sides(dir layout.Direction) (source, target Side) {
	switch dir {
	case layout.RightLeft:
		return SideLeft, SideRight
	case layout.TopBottom:
		return SideBottom, SideTop
	case layout.BottomTop:
		return SideTop, SideBottom
	}
	return SideRight, SideLeft
}

// FromDocument converts a graph document into unplaced flow elements.
// A nil document yields no elements.
func FromDocument(doc *model.GraphDocument) ([]FlowNode, []FlowEdge) {
	if doc == nil {
		return nil, nil
	}
	nodes := make([]FlowNode, len(doc.Nodes))
	for i, n := range doc.Nodes {
		nodes[i] = FlowNode{GraphNode: n, Position: n.Position}
	}
	edges := make([]FlowEdge, len(doc.Edges))
	for i, e := range doc.Edges {
		edges[i] = FlowEdge{GraphEdge: e}
	}
	return nodes, edges
}

// Arrange runs engine over nodes and edges and returns placed copies of
// the nodes. The engine reports centres; positions are shifted by half
// the fixed box size to get the top-left corner. Edges are returned
// unchanged. Inputs are not modified.
func Arrange(nodes []FlowNode, edges []FlowEdge, engine layout.Engine, opts layout.Options) ([]FlowNode, []FlowEdge, error) {
	boxes := make([]layout.Node, len(nodes))
	for i, n := range nodes {
		boxes[i] = layout.Node{ID: n.ID, Width: NodeWidth, Height: NodeHeight}
	}
	links := make([]layout.Edge, len(edges))
	for i, e := range edges {
		links[i] = layout.Edge{Source: e.Source, Target: e.Target}
	}

	res, err := engine.Layout(boxes, links, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("layout: %w", err)
	}

	src, dst := Sides(opts.Direction)
	placed := make([]FlowNode, len(nodes))
	for i, n := range nodes {
		c := res.Centers[n.ID]
		n.Position = model.Point{X: c.X - NodeWidth/2, Y: c.Y - NodeHeight/2}
		n.Width, n.Height = NodeWidth, NodeHeight
		n.SourcePosition = src
		n.TargetPosition = dst
		n.Draggable = true
		n.Rank = res.Ranks[n.ID]
		placed[i] = n
	}
	out := make([]FlowEdge, len(edges))
	copy(out, edges)
	return placed, out, nil
}
