package graphview

// Colours used by the highlight policy.
const (
	Accent      = "rgba(34, 211, 238, 1)"
	AccentGlow  = "rgba(34, 211, 238, 0.55)"
	AccentBG    = "rgba(34, 211, 238, 0.92)"
	AccentText  = "#06121f"
	MutedStroke = "rgba(255, 255, 255, 0.12)"
	MutedLabel  = "rgba(255, 255, 255, 0.65)"
	MutedPill   = "rgba(255, 255, 255, 0.06)"
)

// Opacity applied to nodes outside the hovered neighbourhood. Kept high
// enough for labels to stay readable.
const DimmedNodeOpacity = 0.55

// NodeStyle is the presentation of a node.
type NodeStyle struct {
	Opacity     float64 `json:"opacity"`
	Outline     bool    `json:"outline,omitempty"`
	BorderColor string  `json:"borderColor,omitempty"`
}

// EdgeStyle is the presentation of an edge and its label.
type EdgeStyle struct {
	Stroke       string  `json:"stroke,omitempty"`
	StrokeWidth  float64 `json:"strokeWidth"`
	Opacity      float64 `json:"opacity"`
	Emphasized   bool    `json:"emphasized,omitempty"`
	LabelColor   string  `json:"labelColor,omitempty"`
	LabelBG      string  `json:"labelBg,omitempty"`
	LabelOpacity float64 `json:"labelOpacity"`
	LabelBold    bool    `json:"labelBold,omitempty"`
}

// DisplayNode is a node with its derived style.
type DisplayNode struct {
	FlowNode
	Style NodeStyle
}

// DisplayEdge is an edge with its derived style. Label is the text to
// draw, which is blank for muted edges while a node is hovered.
type DisplayEdge struct {
	FlowEdge
	Label string
	Style EdgeStyle
}

// NeutralNodeStyle is the style of every node when nothing is hovered.
func NeutralNodeStyle() NodeStyle {
	return NodeStyle{Opacity: 1}
}

// NeutralEdgeStyle is the style of every edge when nothing is hovered.
func NeutralEdgeStyle() EdgeStyle {
	return EdgeStyle{StrokeWidth: 1, Opacity: 1, LabelOpacity: 1}
}

// NeighborSet returns the hovered node and every node joined to it by
// an edge in either direction. Ids not present among the nodes are not
// filtered out; callers only look ids up.
func NeighborSet(edges []FlowEdge, id string) map[string]bool {
	set := map[string]bool{id: true}
	for _, e := range edges {
		if e.Source == id {
			set[e.Target] = true
		}
		if e.Target == id {
			set[e.Source] = true
		}
	}
	return set
}

// ComputeDisplay derives the drawn nodes and edges for a hover state.
// An empty hovered id gives every element its neutral style. Inputs are
// never modified.
func ComputeDisplay(nodes []FlowNode, edges []FlowEdge, hovered string) ([]DisplayNode, []DisplayEdge) {
	dn := make([]DisplayNode, len(nodes))
	de := make([]DisplayEdge, len(edges))

	if hovered == "" {
		for i, n := range nodes {
			dn[i] = DisplayNode{FlowNode: n, Style: NeutralNodeStyle()}
		}
		for i, e := range edges {
			de[i] = DisplayEdge{FlowEdge: e, Label: e.Label, Style: NeutralEdgeStyle()}
		}
		return dn, de
	}

	near := NeighborSet(edges, hovered)
	for i, n := range nodes {
		style := NodeStyle{Opacity: DimmedNodeOpacity}
		if near[n.ID] {
			style = NodeStyle{Opacity: 1, Outline: true, BorderColor: Accent}
		}
		dn[i] = DisplayNode{FlowNode: n, Style: style}
	}

	for i, e := range edges {
		if e.Source == hovered || e.Target == hovered {
			de[i] = DisplayEdge{FlowEdge: e, Label: e.Label, Style: EdgeStyle{
				Stroke:       Accent,
				StrokeWidth:  3,
				Opacity:      1,
				Emphasized:   true,
				LabelColor:   AccentText,
				LabelBG:      AccentBG,
				LabelOpacity: 1,
				LabelBold:    true,
			}}
			continue
		}
		de[i] = DisplayEdge{FlowEdge: e, Label: "", Style: EdgeStyle{
			Stroke:       MutedStroke,
			StrokeWidth:  1,
			Opacity:      0.18,
			LabelColor:   MutedLabel,
			LabelBG:      MutedPill,
			LabelOpacity: 0.28,
		}}
	}
	return dn, de
}
