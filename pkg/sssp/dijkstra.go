// Package sssp computes single-source shortest-path distances over a CSR
// graph, reusing caller-owned working memory across queries.
package sssp

import (
	"errors"
	"fmt"
	"math"

	"github.com/azybler/mssp/pkg/graph"
)

// Unreachable is the distance reported for nodes with no path from the source.
const Unreachable = math.MaxUint32

// ErrWorkspaceMismatch is returned when a Workspace was sized for a different graph.
var ErrWorkspaceMismatch = errors.New("workspace size does not match graph")

// QueryStats counts the work done by one Run.
type QueryStats struct {
	Settled int // pops accepted as final
	Stale   int // pops skipped because a shorter distance was already known
	Relaxed int // edges that improved a tentative distance
	Pushed  int // frontier insertions, including the source
}

// Workspace holds per-query state for Run. It is allocated once and reset
// at the start of every Run; it must not be used by two queries at once.
type Workspace struct {
	Dist     []uint32
	Frontier MinHeap
	Stats    QueryStats
}

// NewWorkspace creates a Workspace for a graph with n nodes.
func NewWorkspace(n uint32) *Workspace {
	dist := make([]uint32, n)
	for i := range dist {
		dist[i] = Unreachable
	}
	return &Workspace{
		Dist:     dist,
		Frontier: NewMinHeap(int(n)),
	}
}

// Reset marks every node unreachable and empties the frontier.
func (ws *Workspace) Reset() {
	for i := range ws.Dist {
		ws.Dist[i] = Unreachable
	}
	ws.Frontier.Reset()
	ws.Stats = QueryStats{}
}

// Run computes shortest distances from source into ws.Dist.
//
// Stale frontier entries are skipped on pop instead of being removed on
// update. Edge costs saturate at Unreachable rather than wrapping.
func Run(g *graph.Graph, source int, ws *Workspace) error {
	if !g.HasNode(source) {
		return fmt.Errorf("%w: source %d (n=%d)", graph.ErrInvalidNodeIndex, source, g.NumNodes)
	}
	if len(ws.Dist) != int(g.NumNodes) {
		return fmt.Errorf("%w: workspace has %d nodes, graph has %d", ErrWorkspaceMismatch, len(ws.Dist), g.NumNodes)
	}

	ws.Reset()

	dist := ws.Dist
	pq := &ws.Frontier
	st := &ws.Stats

	s := uint32(source)
	dist[s] = 0
	pq.Push(s, 0)
	st.Pushed++

	for pq.Len() > 0 {
		item := pq.Pop()
		u, d := item.Node, item.Dist

		if d > dist[u] {
			st.Stale++
			continue
		}
		st.Settled++

		head, weight := g.Neighbors(u)
		for i, v := range head {
			nd := satAdd(d, weight[i])
			if nd < dist[v] {
				dist[v] = nd
				pq.Push(v, nd)
				st.Relaxed++
				st.Pushed++
			}
		}
	}

	return nil
}

// satAdd returns a+b, or Unreachable if the sum overflows.
func satAdd(a, b uint32) uint32 {
	s := a + b
	if s < a {
		return Unreachable
	}
	return s
}
