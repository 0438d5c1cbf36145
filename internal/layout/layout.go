// Package layout assigns positions to graph nodes. Engines return node
// centres; callers that draw from a top-left corner convert themselves.
package layout

import (
	"fmt"
	"strings"

	"github.com/msalah0e/glossview/internal/model"
)

// Direction is the flow direction of ranks.
type Direction string

const (
	LeftRight Direction = "LR"
	RightLeft Direction = "RL"
	TopBottom Direction = "TB"
	BottomTop Direction = "BT"
)

// ParseDirection parses a direction name, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToUpper(strings.TrimSpace(s))); d {
	case LeftRight, RightLeft, TopBottom, BottomTop:
		return d, nil
	case "":
		return LeftRight, nil
	}
	return "", fmt.Errorf("unknown layout direction %q (use LR, RL, TB or BT)", s)
}

// Horizontal reports whether ranks advance along the x axis.
func (d Direction) Horizontal() bool {
	return d == LeftRight || d == RightLeft
}

// Node is a box to be placed.
type Node struct {
	ID     string
	Width  float64
	Height float64
}

// Edge is a directed connection between two node ids.
type Edge struct {
	Source string
	Target string
}

// Options controls spacing and direction.
type Options struct {
	Direction Direction
	NodeSep   float64 // gap between neighbouring nodes of one rank
	RankSep   float64 // gap between ranks
	EdgeSep   float64 // gap reserved around edge bends
	MarginX   float64
	MarginY   float64
	Sweeps    int // crossing reduction sweeps
}

// DefaultOptions returns the spacing used by the graph view.
func DefaultOptions() Options {
	return Options{
		Direction: LeftRight,
		NodeSep:   70,
		RankSep:   110,
		EdgeSep:   10,
		MarginX:   20,
		MarginY:   20,
		Sweeps:    24,
	}
}

// Result is the outcome of a layout run.
type Result struct {
	// Centers maps node id to the centre of its box.
	Centers map[string]model.Point
	// Ranks maps node id to its layer along the flow direction.
	Ranks map[string]int
	// Order lists node ids per rank in their final cross-axis order.
	Order [][]string
	// Width and Height are the extents of the drawing including margins.
	Width  float64
	Height float64
}

// Engine computes node positions.
type Engine interface {
	Layout(nodes []Node, edges []Edge, opts Options) (*Result, error)
}
