package backend

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/msalah0e/glossview/internal/model"
)

// DefaultAnchor is the term whose connected component is served.
const DefaultAnchor = "web_components"

// DefaultDedupeLabels are relation labels shown once per source node.
var DefaultDedupeLabels = []string{"состоит из"}

var edgeNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("glossview/edge"))

// Options control how a dataset is reduced to the served graph.
type Options struct {
	Anchor       string
	DedupeLabels []string
}

// DefaultOptions returns the options used by the original dataset.
func DefaultOptions() Options {
	return Options{Anchor: DefaultAnchor, DedupeLabels: DefaultDedupeLabels}
}

// snapshot is one immutable, reduced view of a dataset.
type snapshot struct {
	order []string // term ids in file order
	terms map[string]TermRecord
	edges []model.GraphEdge
}

// Store holds the served glossary. It is safe for concurrent use; Replace
// swaps the whole snapshot at once.
type Store struct {
	opts Options
	mu   sync.RWMutex
	snap *snapshot
}

// NewStore returns an empty store.
func NewStore(opts Options) *Store {
	if opts.Anchor == "" {
		opts.Anchor = DefaultAnchor
	}
	return &Store{opts: opts, snap: &snapshot{terms: map[string]TermRecord{}}}
}

// LoadFile reads path and replaces the store content. On error the store
// keeps what it had.
func (s *Store) LoadFile(path string) error {
	ds, err := ReadFile(path)
	if err != nil {
		return err
	}
	s.Replace(ds)
	return nil
}

// Replace reduces ds and makes it the served content.
func (s *Store) Replace(ds *Dataset) {
	snap := reduce(ds, s.opts)
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
}

func (s *Store) current() *snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Terms returns the served terms sorted by case-folded title.
func (s *Store) Terms() []TermRecord {
	snap := s.current()
	out := make([]TermRecord, 0, len(snap.order))
	for _, id := range snap.order {
		out = append(out, snap.terms[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Title) < strings.ToLower(out[j].Title)
	})
	return out
}

// Term returns one served term.
func (s *Store) Term(id string) (TermRecord, bool) {
	t, ok := s.current().terms[id]
	return t, ok
}

// Graph returns the served graph, nodes in file order.
func (s *Store) Graph() *model.GraphDocument {
	snap := s.current()
	doc := &model.GraphDocument{
		Nodes: make([]model.GraphNode, 0, len(snap.order)),
		Edges: make([]model.GraphEdge, len(snap.edges)),
	}
	for _, id := range snap.order {
		t := snap.terms[id]
		sources := make([]model.Source, len(t.Sources))
		for i, src := range t.Sources {
			sources[i] = model.Source{Title: src.Title, URL: src.URL}
		}
		doc.Nodes = append(doc.Nodes, model.GraphNode{
			ID:       t.ID,
			Position: t.Position,
			Data:     model.NodeData{Label: t.Title, Definition: t.Definition, Sources: sources},
		})
	}
	copy(doc.Edges, snap.edges)
	return doc
}

// Counts returns the number of served terms and edges.
func (s *Store) Counts() (terms, edges int) {
	snap := s.current()
	return len(snap.order), len(snap.edges)
}

// reduce keeps the connected component around the anchor, drops edges
// leaving it, fills missing edge ids and blanks repeated labels.
func reduce(ds *Dataset, opts Options) *snapshot {
	snap := &snapshot{terms: map[string]TermRecord{}}
	var order []string
	for _, t := range ds.Terms {
		if _, seen := snap.terms[t.ID]; !seen {
			order = append(order, t.ID)
		}
		// a repeated id keeps its first position but takes the later value
		snap.terms[t.ID] = t
	}
	if len(order) == 0 {
		return snap
	}

	core := component(order, ds.Edges, opts.Anchor)
	for _, id := range order {
		if core[id] {
			snap.order = append(snap.order, id)
		} else {
			delete(snap.terms, id)
		}
	}

	var edges []model.GraphEdge
	for i, e := range ds.Edges {
		if !core[e.Source] || !core[e.Target] {
			continue
		}
		id := e.ID
		if id == "" {
			id = EdgeID(e.Source, e.Target, i)
		}
		edges = append(edges, model.GraphEdge{
			ID: id, Source: e.Source, Target: e.Target,
			Label: e.Label, Animated: e.Animated,
		})
	}
	snap.edges = dedupeLabels(edges, opts.DedupeLabels)
	return snap
}

// component returns the undirected connected component containing the
// anchor, or the first term when the anchor is absent.
func component(order []string, edges []EdgeRecord, anchor string) map[string]bool {
	adj := make(map[string][]string, len(order))
	for _, id := range order {
		adj[id] = nil
	}
	for _, e := range edges {
		if _, ok := adj[e.Source]; !ok {
			continue
		}
		if _, ok := adj[e.Target]; !ok {
			continue
		}
		adj[e.Source] = append(adj[e.Source], e.Target)
		adj[e.Target] = append(adj[e.Target], e.Source)
	}

	start := anchor
	if _, ok := adj[start]; !ok {
		start = order[0]
	}

	core := map[string]bool{}
	stack := []string{start}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if core[cur] {
			continue
		}
		core[cur] = true
		stack = append(stack, adj[cur]...)
	}
	return core
}

// dedupeLabels blanks a label from the set when the same source already
// showed it. Other labels are left alone.
func dedupeLabels(edges []model.GraphEdge, labels []string) []model.GraphEdge {
	set := make(map[string]bool, len(labels))
	for _, l := range labels {
		set[l] = true
	}

	type key struct{ source, label string }
	seen := map[key]bool{}
	out := make([]model.GraphEdge, len(edges))
	for i, e := range edges {
		out[i] = e
		label := strings.TrimSpace(e.Label)
		if label == "" || !set[label] {
			continue
		}
		k := key{e.Source, label}
		if seen[k] {
			out[i].Label = ""
			continue
		}
		seen[k] = true
	}
	return out
}

// EdgeID derives a stable id for an edge that has none.
func EdgeID(source, target string, index int) string {
	name := fmt.Sprintf("%s|%s|%d", source, target, index)
	return uuid.NewSHA1(edgeNamespace, []byte(name)).String()
}
