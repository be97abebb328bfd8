package sssp

import (
	"context"
	"fmt"
	"time"

	"github.com/azybler/mssp/pkg/graph"
)

// Matrix holds one distance vector per query source, in source order.
type Matrix [][]uint32

// Observer receives per-query statistics from a Solver.
type Observer interface {
	ObserveQuery(stats QueryStats, elapsed time.Duration)
}

// SolverOption configures a Solver.
type SolverOption func(*Solver)

// WithObserver reports every query to o.
func WithObserver(o Observer) SolverOption {
	return func(s *Solver) {
		s.obs = o
	}
}

// WithWorkspace makes the Solver use ws instead of allocating its own.
// ws must have been created for a graph with the same node count.
func WithWorkspace(ws *Workspace) SolverOption {
	return func(s *Solver) {
		s.ws = ws
	}
}

// Solver runs batches of single-source queries against one graph, reusing a
// single Workspace for every query. A Solver is not safe for concurrent use.
type Solver struct {
	g   *graph.Graph
	ws  *Workspace
	obs Observer
}

// NewSolver creates a Solver for g.
func NewSolver(g *graph.Graph, opts ...SolverOption) *Solver {
	s := &Solver{g: g}
	for _, opt := range opts {
		opt(s)
	}
	if s.ws == nil {
		s.ws = NewWorkspace(g.NumNodes)
	}
	return s
}

// Solve returns the distance matrix for sources. All sources are validated
// before any query runs. Each row is a copy of the shared distance buffer.
func (s *Solver) Solve(sources []int) (Matrix, error) {
	return s.SolveContext(context.Background(), sources)
}

// SolveContext is Solve with cancellation. ctx is checked before each query;
// a query that has started always runs to completion.
func (s *Solver) SolveContext(ctx context.Context, sources []int) (Matrix, error) {
	for i, src := range sources {
		if !s.g.HasNode(src) {
			return nil, fmt.Errorf("%w: sources[%d]=%d (n=%d)", graph.ErrInvalidNodeIndex, i, src, s.g.NumNodes)
		}
	}

	n := int(s.g.NumNodes)
	backing := make([]uint32, len(sources)*n)
	out := make(Matrix, len(sources))

	for i, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := time.Now()
		if err := Run(s.g, src, s.ws); err != nil {
			return nil, err
		}
		if s.obs != nil {
			s.obs.ObserveQuery(s.ws.Stats, time.Since(start))
		}
		row := backing[i*n : (i+1)*n : (i+1)*n]
		copy(row, s.ws.Dist)
		out[i] = row
	}
	return out, nil
}

// Solve is a convenience wrapper that builds a Solver for a single batch.
func Solve(g *graph.Graph, sources []int) (Matrix, error) {
	return NewSolver(g).Solve(sources)
}
