// Package page holds the viewer's shared state: active tab, loaded data,
// the selected entity and the error banner. Views receive snapshots and
// request changes through the controller's methods.
package page

import (
	"context"

	"go.uber.org/zap"

	"github.com/msalah0e/glossview/internal/model"
)

// Tab identifies the active view.
type Tab int

const (
	TabGlossary Tab = iota
	TabGraph
)

func (t Tab) String() string {
	if t == TabGraph {
		return "graph"
	}
	return "glossary"
}

// Loader fetches the two resources the viewer needs.
type Loader interface {
	LoadTerms(ctx context.Context) ([]model.Term, error)
	LoadGraph(ctx context.Context) (*model.GraphDocument, error)
}

// Msg is the result of a load job.
type Msg interface{ isLoadResult() }

// TermsLoaded carries the result of a terms load.
type TermsLoaded struct {
	Terms []model.Term
	Err   error
}

// GraphLoaded carries the result of a graph load.
type GraphLoaded struct {
	Graph *model.GraphDocument
	Err   error
}

func (TermsLoaded) isLoadResult() {}
func (GraphLoaded) isLoadResult() {}

// Job is a blocking load to be run off the event loop. Its result is
// handed back to Apply.
type Job func(ctx context.Context) Msg

// State is a read-only snapshot of the controller.
type State struct {
	Tab          Tab
	Terms        []model.Term
	Graph        *model.GraphDocument
	Selected     *model.Selection
	Error        string
	GraphLoading bool
}

// Controller owns all shared viewer state. It is driven from a single
// event loop and is not safe for concurrent use.
type Controller struct {
	loader Loader
	log    *zap.Logger

	tab          Tab
	terms        []model.Term
	graph        *model.GraphDocument
	selected     *model.Selection
	err          string
	mounted      bool
	graphPending bool
}

// New creates a mounted controller.
func New(loader Loader, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{loader: loader, log: logger, terms: []model.Term{}, mounted: true}
}

// Start returns the job that loads the term list.
func (c *Controller) Start() Job {
	return func(ctx context.Context) Msg {
		terms, err := c.loader.LoadTerms(ctx)
		return TermsLoaded{Terms: terms, Err: err}
	}
}

// SetTab switches the active view. The first switch to the graph tab
// while no graph is loaded or loading returns the graph load job;
// otherwise it returns nil.
func (c *Controller) SetTab(tab Tab) Job {
	c.tab = tab
	if tab != TabGraph || c.graph != nil || c.graphPending {
		return nil
	}
	c.graphPending = true
	return func(ctx context.Context) Msg {
		g, err := c.loader.LoadGraph(ctx)
		return GraphLoaded{Graph: g, Err: err}
	}
}

// Apply stores the result of a load job. Results arriving after Unmount
// are dropped. Errors replace the banner text; a later success leaves a
// previous error in place.
func (c *Controller) Apply(msg Msg) {
	if !c.mounted {
		c.log.Debug("dropping load result after unmount")
		return
	}
	switch m := msg.(type) {
	case TermsLoaded:
		if m.Err != nil {
			c.fail("terms", m.Err)
			return
		}
		c.terms = m.Terms
		c.log.Debug("terms loaded", zap.Int("count", len(m.Terms)))
	case GraphLoaded:
		c.graphPending = false
		if m.Err != nil {
			c.fail("graph", m.Err)
			return
		}
		c.graph = m.Graph
		if m.Graph != nil {
			c.log.Debug("graph loaded", zap.Int("nodes", len(m.Graph.Nodes)), zap.Int("edges", len(m.Graph.Edges)))
		}
	}
}

func (c *Controller) fail(resource string, err error) {
	c.err = err.Error()
	c.log.Warn("load failed", zap.String("resource", resource), zap.Error(err))
}

// Select replaces the selection.
func (c *Controller) Select(sel *model.Selection) { c.selected = sel }

// SelectTerm selects t.
func (c *Controller) SelectTerm(t model.Term) { c.selected = model.SelectTerm(t) }

// SelectNode selects n.
func (c *Controller) SelectNode(n model.GraphNode) { c.selected = model.SelectNode(n) }

// ClearSelection closes the side panel.
func (c *Controller) ClearSelection() { c.selected = nil }

// Unmount stops the controller from accepting further load results.
// In-flight requests are not aborted.
func (c *Controller) Unmount() { c.mounted = false }

// Mounted reports whether load results are still accepted.
func (c *Controller) Mounted() bool { return c.mounted }

// Snapshot returns the current state. Slices are shared and must be
// treated as read-only.
func (c *Controller) Snapshot() State {
	return State{
		Tab:          c.tab,
		Terms:        c.terms,
		Graph:        c.graph,
		Selected:     c.selected,
		Error:        c.err,
		GraphLoading: c.graphPending,
	}
}
