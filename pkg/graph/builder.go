package graph

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidNodeCount is returned when the node count is negative or too large.
	ErrInvalidNodeCount = errors.New("invalid node count")

	// ErrInvalidNodeIndex is returned when an edge or source references a node outside [0, n).
	ErrInvalidNodeIndex = errors.New("invalid node index")

	// ErrNegativeWeight is returned when an edge has a negative weight.
	ErrNegativeWeight = errors.New("negative edge weight")

	// ErrTooManyEdges is returned when the edge count does not fit a uint32 offset.
	ErrTooManyEdges = errors.New("too many edges")
)

// Build creates a CSR Graph with n nodes from an edge list.
//
// Edges are grouped by source node; within a node they keep their input order.
// Parallel edges and self-loops are kept. A weight above math.MaxUint32 is
// clamped to math.MaxUint32, which the shortest-path engine treats as
// impassable.
func Build(n int, edges []Edge) (*Graph, error) {
	if n < 0 || uint64(n) > MaxNodes {
		return nil, fmt.Errorf("%w: %d", ErrInvalidNodeCount, n)
	}
	if uint64(len(edges)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d", ErrTooManyEdges, len(edges))
	}

	// Step 1: Validate everything before allocating the arrays.
	for i, e := range edges {
		if e.From < 0 || e.From >= n {
			return nil, fmt.Errorf("%w: edge %d has source %d (n=%d)", ErrInvalidNodeIndex, i, e.From, n)
		}
		if e.To < 0 || e.To >= n {
			return nil, fmt.Errorf("%w: edge %d has target %d (n=%d)", ErrInvalidNodeIndex, i, e.To, n)
		}
		if e.Weight < 0 {
			return nil, fmt.Errorf("%w: edge %d (%d->%d) weight=%d", ErrNegativeWeight, i, e.From, e.To, e.Weight)
		}
	}

	numNodes := uint32(n)
	numEdges := uint32(len(edges))

	firstOut := make([]uint32, numNodes+1)
	head := make([]uint32, numEdges)
	weight := make([]uint32, numEdges)

	// Step 2: Count edges per node, then prefix sum.
	for _, e := range edges {
		firstOut[e.From+1]++
	}
	for i := uint32(1); i <= numNodes; i++ {
		firstOut[i] += firstOut[i-1]
	}

	// Step 3: Place edges into CSR order. The cursor walks forward so each
	// node's edges stay in input order.
	pos := make([]uint32, numNodes)
	copy(pos, firstOut[:numNodes])
	for _, e := range edges {
		idx := pos[e.From]
		head[idx] = uint32(e.To)
		weight[idx] = clampWeight(e.Weight)
		pos[e.From]++
	}

	return &Graph{
		NumNodes: numNodes,
		NumEdges: numEdges,
		FirstOut: firstOut,
		Head:     head,
		Weight:   weight,
	}, nil
}

func clampWeight(w int64) uint32 {
	if w > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(w)
}
