package graphview

import (
	"github.com/msalah0e/glossview/internal/layout"
	"github.com/msalah0e/glossview/internal/model"
)

// Canvas is a rendering surface for styled graph elements.
type Canvas interface {
	Draw(nodes []DisplayNode, edges []DisplayEdge) error
}

// View owns the placed graph, the hover state and the click callback.
// It is not safe for concurrent use; it lives on the UI event loop.
type View struct {
	engine   layout.Engine
	opts     layout.Options
	nodes    []FlowNode
	edges    []FlowEdge
	hovered  string
	onSelect func(model.GraphNode)
}

// NewView creates an empty view.
func NewView(engine layout.Engine, opts layout.Options, onSelect func(model.GraphNode)) *View {
	if engine == nil {
		engine = layout.Layered{}
	}
	return &View{engine: engine, opts: opts, onSelect: onSelect}
}

// Load places the nodes and edges of doc. A nil or empty document
// clears the view.
func (v *View) Load(doc *model.GraphDocument) error {
	v.hovered = ""
	if doc.Empty() {
		v.nodes, v.edges = nil, nil
		return nil
	}
	nodes, edges := FromDocument(doc)
	return v.arrange(nodes, edges)
}

// Relayout runs the layout again over the current nodes and edges.
func (v *View) Relayout() error {
	if len(v.nodes) == 0 {
		return nil
	}
	return v.arrange(v.nodes, v.edges)
}

func (v *View) arrange(nodes []FlowNode, edges []FlowEdge) error {
	placed, links, err := Arrange(nodes, edges, v.engine, v.opts)
	if err != nil {
		return err
	}
	v.nodes, v.edges = placed, links
	return nil
}

// Options returns the layout options the view arranges with.
func (v *View) Options() layout.Options { return v.opts }

// Empty reports whether there is nothing to draw.
func (v *View) Empty() bool { return len(v.nodes) == 0 }

// Nodes returns the placed nodes.
func (v *View) Nodes() []FlowNode { return v.nodes }

// Edges returns the edges.
func (v *View) Edges() []FlowEdge { return v.edges }

// Hovered returns the hovered node id, or "".
func (v *View) Hovered() string { return v.hovered }

// HoverEnter marks id as hovered.
func (v *View) HoverEnter(id string) { v.hovered = id }

// HoverLeave clears the hover state.
func (v *View) HoverLeave() { v.hovered = "" }

// Node returns the node with id.
func (v *View) Node(id string) (FlowNode, bool) {
	for _, n := range v.nodes {
		if n.ID == id {
			return n, true
		}
	}
	return FlowNode{}, false
}

// Click emits the node with id, payload included. Unknown ids are
// ignored.
func (v *View) Click(id string) bool {
	n, ok := v.Node(id)
	if !ok {
		return false
	}
	if v.onSelect != nil {
		v.onSelect(n.GraphNode)
	}
	return true
}

// Display returns the styled elements for the current hover state.
func (v *View) Display() ([]DisplayNode, []DisplayEdge) {
	return ComputeDisplay(v.nodes, v.edges, v.hovered)
}

// Render draws the current display on c. An empty graph draws nothing.
func (v *View) Render(c Canvas) error {
	if v.Empty() {
		return nil
	}
	nodes, edges := v.Display()
	return c.Draw(nodes, edges)
}

// Bounds returns the extent of the placed nodes plus margins.
func (v *View) Bounds() (width, height float64) {
	for _, n := range v.nodes {
		if r := n.Position.X + n.Width; r > width {
			width = r
		}
		if b := n.Position.Y + n.Height; b > height {
			height = b
		}
	}
	return width + v.opts.MarginX, height + v.opts.MarginY
}
