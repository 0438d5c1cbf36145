package layout

import (
	"fmt"
	"sort"

	"github.com/msalah0e/glossview/internal/model"
)

// Layered is a hierarchical layout in the Sugiyama style: cycles are
// broken, nodes are ranked by longest path, long edges are split with
// dummy vertices, crossings are reduced with barycenter sweeps and
// coordinates are assigned per rank. Ties are broken by input order,
// so identical input always produces identical output.
type Layered struct{}

// vertex is a real node or a dummy on a long edge.
type vertex struct {
	id    string
	real  bool
	index int // input index for real nodes
	rank  int
	flow  float64 // size along the flow axis
	cross float64 // size across the flow axis
	pos   float64 // cross-axis centre
	up    []int   // neighbours in rank-1
	down  []int   // neighbours in rank+1
}

// Layout implements Engine.
func (Layered) Layout(nodes []Node, edges []Edge, opts Options) (*Result, error) {
	if opts.Direction == "" {
		opts.Direction = LeftRight
	}
	if _, err := ParseDirection(string(opts.Direction)); err != nil {
		return nil, err
	}
	if opts.Sweeps <= 0 {
		opts.Sweeps = DefaultOptions().Sweeps
	}

	res := &Result{
		Centers: make(map[string]model.Point, len(nodes)),
		Ranks:   make(map[string]int, len(nodes)),
	}
	if len(nodes) == 0 {
		res.Width = 2 * opts.MarginX
		res.Height = 2 * opts.MarginY
		return res, nil
	}

	index := make(map[string]int, len(nodes))
	var uniq []Node
	for _, n := range nodes {
		if _, dup := index[n.ID]; dup {
			continue
		}
		if n.Width < 0 || n.Height < 0 {
			return nil, fmt.Errorf("node %q has negative size", n.ID)
		}
		index[n.ID] = len(uniq)
		uniq = append(uniq, n)
	}

	dag := acyclic(len(uniq), resolveEdges(index, edges))
	ranks := longestPath(len(uniq), dag)

	g := buildLayers(uniq, dag, ranks, opts.Direction)
	g.order(opts.Sweeps)
	g.place(opts)

	return g.result(res, opts), nil
}

// resolveEdges maps edges to index pairs, dropping dangling references,
// self loops and parallel duplicates.
func resolveEdges(index map[string]int, edges []Edge) [][2]int {
	seen := make(map[[2]int]bool)
	var out [][2]int
	for _, e := range edges {
		s, ok1 := index[e.Source]
		t, ok2 := index[e.Target]
		if !ok1 || !ok2 || s == t {
			continue
		}
		p := [2]int{s, t}
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// acyclic reverses DFS back edges so the result has no cycles.
func acyclic(n int, edges [][2]int) [][2]int {
	adj := make([][]int, n) // edge indices by source
	for i, e := range edges {
		adj[e[0]] = append(adj[e[0]], i)
	}

	const (
		unvisited = iota
		onStack
		done
	)
	state := make([]int, n)
	reversed := make([]bool, len(edges))

	var visit func(u int)
	visit = func(u int) {
		state[u] = onStack
		for _, ei := range adj[u] {
			v := edges[ei][1]
			switch state[v] {
			case unvisited:
				visit(v)
			case onStack:
				reversed[ei] = true
			}
		}
		state[u] = done
	}
	for u := 0; u < n; u++ {
		if state[u] == unvisited {
			visit(u)
		}
	}

	seen := make(map[[2]int]bool)
	out := make([][2]int, 0, len(edges))
	for i, e := range edges {
		if reversed[i] {
			e = [2]int{e[1], e[0]}
		}
		if seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}

// longestPath ranks nodes so every edge points to a higher rank, then
// pulls pure sources down next to their closest successor.
func longestPath(n int, edges [][2]int) []int {
	succ := make([][]int, n)
	indeg := make([]int, n)
	for _, e := range edges {
		succ[e[0]] = append(succ[e[0]], e[1])
		indeg[e[1]]++
	}

	rank := make([]int, n)
	remaining := append([]int(nil), indeg...)
	queue := make([]int, 0, n)
	for u := 0; u < n; u++ {
		if remaining[u] == 0 {
			queue = append(queue, u)
		}
	}
	topo := make([]int, 0, n)
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		topo = append(topo, u)
		for _, v := range succ[u] {
			if rank[u]+1 > rank[v] {
				rank[v] = rank[u] + 1
			}
			remaining[v]--
			if remaining[v] == 0 {
				queue = append(queue, v)
			}
		}
	}

	for i := len(topo) - 1; i >= 0; i-- {
		u := topo[i]
		if indeg[u] != 0 || len(succ[u]) == 0 {
			continue
		}
		lowest := -1
		for _, v := range succ[u] {
			if lowest < 0 || rank[v] < lowest {
				lowest = rank[v]
			}
		}
		rank[u] = lowest - 1
	}
	return rank
}

type layered struct {
	dir      Direction
	vertices []vertex
	layers   [][]int
}

func buildLayers(nodes []Node, edges [][2]int, ranks []int, dir Direction) *layered {
	g := &layered{dir: dir}
	maxRank := 0
	for i, n := range nodes {
		flow, cross := n.Width, n.Height
		if !dir.Horizontal() {
			flow, cross = n.Height, n.Width
		}
		g.vertices = append(g.vertices, vertex{
			id: n.ID, real: true, index: i, rank: ranks[i], flow: flow, cross: cross,
		})
		if ranks[i] > maxRank {
			maxRank = ranks[i]
		}
	}

	link := func(a, b int) {
		g.vertices[a].down = append(g.vertices[a].down, b)
		g.vertices[b].up = append(g.vertices[b].up, a)
	}
	for _, e := range edges {
		prev := e[0]
		for r := ranks[e[0]] + 1; r < ranks[e[1]]; r++ {
			g.vertices = append(g.vertices, vertex{
				id:   fmt.Sprintf("\x00%s>%s#%d", nodes[e[0]].ID, nodes[e[1]].ID, r),
				rank: r,
			})
			d := len(g.vertices) - 1
			link(prev, d)
			prev = d
		}
		link(prev, e[1])
	}

	g.layers = make([][]int, maxRank+1)
	for i, v := range g.vertices {
		g.layers[v.rank] = append(g.layers[v.rank], i)
	}
	return g
}

// order runs alternating barycenter sweeps and keeps the ordering with
// the fewest crossings seen.
func (g *layered) order(sweeps int) {
	g.initialOrder()
	best := g.snapshot()
	bestCross := g.crossings()

	for i := 0; i < sweeps && bestCross > 0; i++ {
		if i%2 == 0 {
			for r := 1; r < len(g.layers); r++ {
				g.sortLayer(r, true)
			}
		} else {
			for r := len(g.layers) - 2; r >= 0; r-- {
				g.sortLayer(r, false)
			}
		}
		if c := g.crossings(); c < bestCross {
			bestCross = c
			best = g.snapshot()
		}
	}
	g.layers = best
}

// initialOrder lays out each rank in depth-first discovery order from
// the first rank, which keeps connected nodes close before any sweep.
func (g *layered) initialOrder() {
	visited := make([]bool, len(g.vertices))
	layers := make([][]int, len(g.layers))

	var visit func(v int)
	visit = func(v int) {
		visited[v] = true
		layers[g.vertices[v].rank] = append(layers[g.vertices[v].rank], v)
		for _, w := range g.vertices[v].down {
			if !visited[w] {
				visit(w)
			}
		}
	}
	for _, layer := range g.layers {
		for _, v := range layer {
			if !visited[v] {
				visit(v)
			}
		}
	}
	g.layers = layers
}

func (g *layered) snapshot() [][]int {
	out := make([][]int, len(g.layers))
	for i, l := range g.layers {
		out[i] = append([]int(nil), l...)
	}
	return out
}

func (g *layered) positions() []int {
	pos := make([]int, len(g.vertices))
	for _, layer := range g.layers {
		for i, v := range layer {
			pos[v] = i
		}
	}
	return pos
}

func (g *layered) sortLayer(r int, useUp bool) {
	pos := g.positions()
	layer := g.layers[r]
	bary := make(map[int]float64, len(layer))
	for _, v := range layer {
		nbrs := g.vertices[v].down
		if useUp {
			nbrs = g.vertices[v].up
		}
		if len(nbrs) == 0 {
			bary[v] = float64(pos[v])
			continue
		}
		sum := 0.0
		for _, w := range nbrs {
			sum += float64(pos[w])
		}
		bary[v] = sum / float64(len(nbrs))
	}
	sort.SliceStable(layer, func(i, j int) bool {
		return bary[layer[i]] < bary[layer[j]]
	})
}

// crossings counts pairwise edge crossings between adjacent ranks.
func (g *layered) crossings() int {
	pos := g.positions()
	total := 0
	for r := 0; r+1 < len(g.layers); r++ {
		var segs [][2]int
		for _, v := range g.layers[r] {
			for _, w := range g.vertices[v].down {
				segs = append(segs, [2]int{pos[v], pos[w]})
			}
		}
		for i := 0; i < len(segs); i++ {
			for j := i + 1; j < len(segs); j++ {
				a, b := segs[i], segs[j]
				if (a[0] < b[0] && a[1] > b[1]) || (a[0] > b[0] && a[1] < b[1]) {
					total++
				}
			}
		}
	}
	return total
}

func (g *layered) gap(a, b int, opts Options) float64 {
	half := func(v int) float64 {
		if g.vertices[v].real {
			return opts.NodeSep / 2
		}
		return opts.EdgeSep / 2
	}
	return g.vertices[a].cross/2 + half(a) + half(b) + g.vertices[b].cross/2
}

// place assigns cross-axis centres: packed and centred first, then a few
// passes pulling each vertex toward the mean of its neighbours while
// keeping the order and minimum gaps.
func (g *layered) place(opts Options) {
	for _, layer := range g.layers {
		x := 0.0
		for i, v := range layer {
			if i > 0 {
				x += g.gap(layer[i-1], v, opts)
			}
			g.vertices[v].pos = x
		}
		shift := x / 2
		for _, v := range layer {
			g.vertices[v].pos -= shift
		}
	}

	for pass := 0; pass < 4; pass++ {
		if pass%2 == 0 {
			for r := 1; r < len(g.layers); r++ {
				g.align(r, true, opts)
			}
		} else {
			for r := len(g.layers) - 2; r >= 0; r-- {
				g.align(r, false, opts)
			}
		}
	}
}

func (g *layered) align(r int, useUp bool, opts Options) {
	layer := g.layers[r]
	if len(layer) == 0 {
		return
	}
	want := make([]float64, len(layer))
	for i, v := range layer {
		nbrs := g.vertices[v].down
		if useUp {
			nbrs = g.vertices[v].up
		}
		if len(nbrs) == 0 {
			want[i] = g.vertices[v].pos
			continue
		}
		sum := 0.0
		for _, w := range nbrs {
			sum += g.vertices[w].pos
		}
		want[i] = sum / float64(len(nbrs))
	}

	placed := make([]float64, len(layer))
	for i := range layer {
		placed[i] = want[i]
		if i > 0 {
			if floor := placed[i-1] + g.gap(layer[i-1], layer[i], opts); placed[i] < floor {
				placed[i] = floor
			}
		}
	}
	// Uniform shift so the layer sits on its targets on average.
	drift := 0.0
	for i := range layer {
		drift += placed[i] - want[i]
	}
	drift /= float64(len(layer))
	for i, v := range layer {
		g.vertices[v].pos = placed[i] - drift
	}
}

func (g *layered) result(res *Result, opts Options) *Result {
	thick := make([]float64, len(g.layers))
	for r, layer := range g.layers {
		for _, v := range layer {
			if g.vertices[v].flow > thick[r] {
				thick[r] = g.vertices[v].flow
			}
		}
	}
	flowAt := make([]float64, len(g.layers))
	offset := 0.0
	for r := range g.layers {
		flowAt[r] = offset + thick[r]/2
		offset += thick[r]
		if r+1 < len(g.layers) {
			offset += opts.RankSep
		}
	}
	flowTotal := offset

	minCross, maxCross := 0.0, 0.0
	first := true
	for _, v := range g.vertices {
		lo, hi := v.pos-v.cross/2, v.pos+v.cross/2
		if first || lo < minCross {
			minCross = lo
		}
		if first || hi > maxCross {
			maxCross = hi
		}
		first = false
	}
	crossTotal := maxCross - minCross

	flowMargin, crossMargin := opts.MarginX, opts.MarginY
	if !g.dir.Horizontal() {
		flowMargin, crossMargin = opts.MarginY, opts.MarginX
	}

	res.Order = make([][]string, len(g.layers))
	for r, layer := range g.layers {
		for _, vi := range layer {
			v := &g.vertices[vi]
			if !v.real {
				continue
			}
			res.Order[r] = append(res.Order[r], v.id)

			flow := flowAt[r]
			if g.dir == RightLeft || g.dir == BottomTop {
				flow = flowTotal - flow
			}
			flow += flowMargin
			cross := v.pos - minCross + crossMargin

			if g.dir.Horizontal() {
				res.Centers[v.id] = model.Point{X: flow, Y: cross}
			} else {
				res.Centers[v.id] = model.Point{X: cross, Y: flow}
			}
			res.Ranks[v.id] = r
		}
	}

	if g.dir.Horizontal() {
		res.Width = flowTotal + 2*opts.MarginX
		res.Height = crossTotal + 2*opts.MarginY
	} else {
		res.Width = crossTotal + 2*opts.MarginX
		res.Height = flowTotal + 2*opts.MarginY
	}
	return res
}
