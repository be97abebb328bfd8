package graph

// MaxNodes is the largest node count a Graph can hold. Node indices are
// uint32 and one value is reserved so FirstOut can be indexed at NumNodes.
const MaxNodes = 1<<32 - 2

// Edge is a directed, weighted edge as supplied by the caller.
// Indices and weight are signed so invalid input can be detected at Build.
type Edge struct {
	From   int
	To     int
	Weight int64
}

// Graph represents an immutable directed graph in CSR (Compressed Sparse Row) format.
type Graph struct {
	NumNodes uint32
	NumEdges uint32
	FirstOut []uint32 // len: NumNodes + 1; FirstOut[i]..FirstOut[i+1] are edges from node i
	Head     []uint32 // len: NumEdges; target node for each edge
	Weight   []uint32 // len: NumEdges; edge cost

	// Optional node coordinates, set for graphs imported from OSM.
	NodeLat []float64 // len: NumNodes or 0
	NodeLon []float64 // len: NumNodes or 0
}

// EdgesFrom returns the range of edge indices for edges originating from node u.
func (g *Graph) EdgesFrom(u uint32) (start, end uint32) {
	return g.FirstOut[u], g.FirstOut[u+1]
}

// Neighbors returns views of the targets and weights of the edges leaving u.
// The slices alias the graph's storage and must not be modified.
func (g *Graph) Neighbors(u uint32) (head, weight []uint32) {
	start, end := g.FirstOut[u], g.FirstOut[u+1]
	return g.Head[start:end:end], g.Weight[start:end:end]
}

// HasNode reports whether u is a valid node index.
func (g *Graph) HasNode(u int) bool {
	return u >= 0 && uint64(u) < uint64(g.NumNodes)
}

// HasCoords reports whether the graph carries node coordinates.
func (g *Graph) HasCoords() bool {
	return g.NumNodes > 0 && len(g.NodeLat) == int(g.NumNodes) && len(g.NodeLon) == int(g.NumNodes)
}
