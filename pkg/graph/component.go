package graph

// UnionFind is a disjoint-set forest with path halving and union by rank.
type UnionFind struct {
	parent []uint32
	rank   []byte
	size   []uint32
	sets   uint32
}

// NewUnionFind creates a UnionFind over n singleton sets.
func NewUnionFind(n uint32) *UnionFind {
	parent := make([]uint32, n)
	size := make([]uint32, n)
	for i := range n {
		parent[i] = i
		size[i] = 1
	}
	return &UnionFind{
		parent: parent,
		rank:   make([]byte, n),
		size:   size,
		sets:   n,
	}
}

// Find returns the representative of the set containing x.
func (uf *UnionFind) Find(x uint32) uint32 {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

// Union merges the sets containing x and y. Returns false if already same set.
func (uf *UnionFind) Union(x, y uint32) bool {
	rx, ry := uf.Find(x), uf.Find(y)
	if rx == ry {
		return false
	}
	if uf.rank[rx] < uf.rank[ry] {
		rx, ry = ry, rx
	}
	uf.parent[ry] = rx
	uf.size[rx] += uf.size[ry]
	if uf.rank[rx] == uf.rank[ry] {
		uf.rank[rx]++
	}
	uf.sets--
	return true
}

// Sets returns the current number of disjoint sets.
func (uf *UnionFind) Sets() uint32 { return uf.sets }

// Size returns the size of the set containing x.
func (uf *UnionFind) Size(x uint32) uint32 { return uf.size[uf.Find(x)] }

func weakUnion(g *Graph) *UnionFind {
	uf := NewUnionFind(g.NumNodes)
	for u := uint32(0); u < g.NumNodes; u++ {
		head, _ := g.Neighbors(u)
		for _, v := range head {
			uf.Union(u, v)
		}
	}
	return uf
}

// ComponentCount returns the number of weakly connected components,
// treating every directed edge as undirected. Isolated nodes count as one each.
func ComponentCount(g *Graph) uint32 {
	if g.NumNodes == 0 {
		return 0
	}
	return weakUnion(g).Sets()
}

// LargestComponent returns the node indices, in ascending order, of the
// largest weakly connected component.
func LargestComponent(g *Graph) []uint32 {
	if g.NumNodes == 0 {
		return nil
	}

	uf := weakUnion(g)

	bestRoot := uint32(0)
	bestSize := uint32(0)
	for i := uint32(0); i < g.NumNodes; i++ {
		if size := uf.Size(i); size > bestSize {
			bestRoot = uf.Find(i)
			bestSize = size
		}
	}

	nodes := make([]uint32, 0, bestSize)
	for i := uint32(0); i < g.NumNodes; i++ {
		if uf.Find(i) == bestRoot {
			nodes = append(nodes, i)
		}
	}
	return nodes
}

// FilterToComponent creates a new graph induced by nodes. Node i of the new
// graph is nodes[i] of g; edges keep their relative order. Coordinates are
// carried over when present.
func FilterToComponent(g *Graph, nodes []uint32) *Graph {
	if len(nodes) == 0 {
		return &Graph{FirstOut: []uint32{0}}
	}

	const absent = ^uint32(0)
	oldToNew := make([]uint32, g.NumNodes)
	for i := range oldToNew {
		oldToNew[i] = absent
	}
	for newIdx, oldIdx := range nodes {
		oldToNew[oldIdx] = uint32(newIdx)
	}

	numNodes := uint32(len(nodes))
	firstOut := make([]uint32, numNodes+1)

	// Count surviving edges per node. Nodes are visited in new-index order,
	// so a single pass fills both the offsets and the edge arrays.
	for newU, oldU := range nodes {
		head, _ := g.Neighbors(oldU)
		kept := uint32(0)
		for _, oldV := range head {
			if oldToNew[oldV] != absent {
				kept++
			}
		}
		firstOut[newU+1] = firstOut[newU] + kept
	}

	numEdges := firstOut[numNodes]
	head := make([]uint32, 0, numEdges)
	weight := make([]uint32, 0, numEdges)
	for _, oldU := range nodes {
		h, w := g.Neighbors(oldU)
		for i, oldV := range h {
			if newV := oldToNew[oldV]; newV != absent {
				head = append(head, newV)
				weight = append(weight, w[i])
			}
		}
	}

	out := &Graph{
		NumNodes: numNodes,
		NumEdges: numEdges,
		FirstOut: firstOut,
		Head:     head,
		Weight:   weight,
	}
	if g.HasCoords() {
		out.NodeLat = make([]float64, numNodes)
		out.NodeLon = make([]float64, numNodes)
		for newIdx, oldIdx := range nodes {
			out.NodeLat[newIdx] = g.NodeLat[oldIdx]
			out.NodeLon[newIdx] = g.NodeLon[oldIdx]
		}
	}
	return out
}
