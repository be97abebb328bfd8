// Package locate maps geographic points to the nearest graph node using an
// R-tree over node coordinates.
package locate

import (
	"errors"
	"math"

	"github.com/tidwall/rtree"

	"github.com/azybler/mssp/pkg/geo"
	"github.com/azybler/mssp/pkg/graph"
)

// DefaultMaxDistance is the snap radius used when none is configured.
const DefaultMaxDistance = 500.0

var (
	// ErrNoCoordinates is returned when the graph has no node coordinates.
	ErrNoCoordinates = errors.New("graph has no node coordinates")
	// ErrPointTooFar is returned when no node lies within the snap radius.
	ErrPointTooFar = errors.New("point too far from any node")
	// ErrInvalidPoint is returned for coordinates outside WGS84 ranges.
	ErrInvalidPoint = errors.New("invalid coordinate")
)

// Match is the result of a lookup.
type Match struct {
	Node     uint32
	Distance float64 // meters
}

// Index answers nearest-node queries. It is safe for concurrent readers.
type Index struct {
	tree    rtree.RTreeG[uint32]
	coords  []geo.Point
	maxDist float64
}

// Option configures an Index.
type Option func(*Index)

// WithMaxDistance sets the snap radius in meters.
func WithMaxDistance(meters float64) Option {
	return func(ix *Index) { ix.maxDist = meters }
}

// NewIndex indexes every node of g.
func NewIndex(g *graph.Graph, opts ...Option) (*Index, error) {
	if !g.HasCoords() {
		return nil, ErrNoCoordinates
	}
	ix := &Index{
		coords:  make([]geo.Point, g.NumNodes),
		maxDist: DefaultMaxDistance,
	}
	for _, o := range opts {
		o(ix)
	}
	for u := range ix.coords {
		p := geo.Point{Lat: g.NodeLat[u], Lng: g.NodeLon[u]}
		ix.coords[u] = p
		xy := [2]float64{p.Lng, p.Lat}
		ix.tree.Insert(xy, xy, uint32(u))
	}
	return ix, nil
}

// Len returns the number of indexed nodes.
func (ix *Index) Len() int { return ix.tree.Len() }

// MaxDistance returns the snap radius in meters.
func (ix *Index) MaxDistance() float64 { return ix.maxDist }

// Nearest returns the node closest to p. Ties go to whichever node the tree
// visits first.
func (ix *Index) Nearest(p geo.Point) (Match, error) {
	if !p.Valid() {
		return Match{}, ErrInvalidPoint
	}

	best := Match{Distance: math.Inf(1)}
	ix.tree.Nearby(ix.metersFrom(p), func(_, _ [2]float64, node uint32, dist float64) bool {
		best = Match{Node: node, Distance: dist}
		return false
	})
	if best.Distance > ix.maxDist {
		return Match{}, ErrPointTooFar
	}
	return best, nil
}

// metersFrom returns the ranking function for Nearby. Items are scored with
// geo.Equirectangular; boxes get a lower bound on that score for any point
// inside them, so the first item yielded is the nearest.
func (ix *Index) metersFrom(p geo.Point) func(min, max [2]float64, node uint32, item bool) float64 {
	return func(min, max [2]float64, node uint32, item bool) float64 {
		if item {
			return geo.Equirectangular(p, ix.coords[node])
		}
		dLng := gap(p.Lng, min[0], max[0])
		dLat := gap(p.Lat, min[1], max[1])
		widest := math.Max(math.Abs(p.Lat), math.Max(math.Abs(min[1]), math.Abs(max[1])))
		x := dLng * math.Cos(math.Min(widest, 90)*math.Pi/180)
		return math.Sqrt(x*x+dLat*dLat) * geo.MetersPerDegree
	}
}

// gap is the distance from v to the interval [lo, hi].
func gap(v, lo, hi float64) float64 {
	switch {
	case v < lo:
		return lo - v
	case v > hi:
		return v - hi
	}
	return 0
}
