package problem

import "github.com/azybler/mssp/pkg/graph"

// Mock returns a deterministic instance with n nodes, m edges and k sources.
// Edge i goes from i mod n to (3i+7) mod n with weight (i mod 100)+1, and
// source j is 19j mod n. A non-positive n yields an empty instance.
func Mock(n, m, k int) *Problem {
	if n <= 0 {
		return &Problem{}
	}
	p := &Problem{
		NumNodes: n,
		Edges:    make([]graph.Edge, max(m, 0)),
		Sources:  make([]int, max(k, 0)),
	}
	for i := range p.Edges {
		p.Edges[i] = graph.Edge{
			From:   i % n,
			To:     (3*i + 7) % n,
			Weight: int64(i%100 + 1),
		}
	}
	for j := range p.Sources {
		p.Sources[j] = 19 * j % n
	}
	return p
}
