package sssp

import (
	"context"
	"sync"

	"github.com/azybler/mssp/pkg/graph"
)

// Pool hands out Workspaces for one graph to concurrent callers.
// Each concurrent batch gets its own Workspace; the graph is shared read-only.
type Pool struct {
	g    *graph.Graph
	obs  Observer
	pool sync.Pool
}

// NewPool creates a Pool for g. o may be nil.
func NewPool(g *graph.Graph, o Observer) *Pool {
	p := &Pool{g: g, obs: o}
	p.pool.New = func() any {
		return NewWorkspace(g.NumNodes)
	}
	return p
}

// Solve runs one batch on a pooled Workspace.
func (p *Pool) Solve(sources []int) (Matrix, error) {
	return p.SolveContext(context.Background(), sources)
}

// SolveContext runs one batch on a pooled Workspace, stopping between
// queries once ctx is done.
func (p *Pool) SolveContext(ctx context.Context, sources []int) (Matrix, error) {
	ws := p.pool.Get().(*Workspace)
	defer p.pool.Put(ws)

	opts := []SolverOption{WithWorkspace(ws)}
	if p.obs != nil {
		opts = append(opts, WithObserver(p.obs))
	}
	return NewSolver(p.g, opts...).SolveContext(ctx, sources)
}
