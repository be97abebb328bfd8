// Package osm imports a road network from an OpenStreetMap PBF extract and
// turns it into a dense edge list for graph.Build.
package osm

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"

	"github.com/azybler/mssp/pkg/geo"
	"github.com/azybler/mssp/pkg/graph"
)

// BBox is a geographic bounding box. The zero value means no filtering.
type BBox struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

// IsZero reports whether the box is unset.
func (b BBox) IsZero() bool {
	return b == BBox{}
}

// Contains reports whether p lies inside the box, edges included.
func (b BBox) Contains(p geo.Point) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat && p.Lng >= b.MinLng && p.Lng <= b.MaxLng
}

// Options configures Import.
type Options struct {
	// BBox keeps only segments with both endpoints inside the box.
	BBox BBox
	// Procs is the number of PBF decoder goroutines. Zero means 1.
	Procs int
}

// Network is an imported road network with nodes renumbered densely in the
// order they were first referenced by a kept segment.
type Network struct {
	NodeIDs []osm.NodeID // dense index -> OSM node ID
	Coords  []geo.Point  // dense index -> coordinate
	Edges   []graph.Edge // weights in millimeters
}

// NumNodes returns the number of dense nodes.
func (n *Network) NumNodes() int { return len(n.NodeIDs) }

// Graph builds the CSR graph and attaches node coordinates.
func (n *Network) Graph() (*graph.Graph, error) {
	g, err := graph.Build(n.NumNodes(), n.Edges)
	if err != nil {
		return nil, err
	}
	g.NodeLat = make([]float64, len(n.Coords))
	g.NodeLon = make([]float64, len(n.Coords))
	for i, p := range n.Coords {
		g.NodeLat[i] = p.Lat
		g.NodeLon[i] = p.Lng
	}
	return g, nil
}

type way struct {
	nodes    []osm.NodeID
	forward  bool
	backward bool
}

// Import reads rs in two passes: ways first, to learn which nodes matter,
// then nodes, to collect their coordinates. rs is rewound between passes.
func Import(ctx context.Context, rs io.ReadSeeker, opts Options) (*Network, error) {
	procs := opts.Procs
	if procs < 1 {
		procs = 1
	}

	ways, refs, err := scanWays(ctx, rs, procs)
	if err != nil {
		return nil, fmt.Errorf("pass 1 (ways): %w", err)
	}
	log.Printf("Pass 1 complete: %d ways, %d referenced nodes", len(ways), len(refs))

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek for pass 2: %w", err)
	}
	coords, err := scanNodes(ctx, rs, procs, refs)
	if err != nil {
		return nil, fmt.Errorf("pass 2 (nodes): %w", err)
	}
	log.Printf("Pass 2 complete: %d node coordinates collected", len(coords))

	net := assemble(ways, coords, opts.BBox)
	log.Printf("Built %d directed edges over %d nodes", len(net.Edges), net.NumNodes())
	return net, nil
}

func scanWays(ctx context.Context, r io.Reader, procs int) ([]way, map[osm.NodeID]struct{}, error) {
	scanner := osmpbf.New(ctx, r, procs)
	defer scanner.Close()
	scanner.SkipNodes = true
	scanner.SkipRelations = true

	refs := make(map[osm.NodeID]struct{})
	var ways []way
	for scanner.Scan() {
		w, ok := scanner.Object().(*osm.Way)
		if !ok || len(w.Nodes) < 2 || !accessible(w.Tags) {
			continue
		}
		fwd, bwd := direction(w.Tags)
		if !fwd && !bwd {
			continue
		}

		ids := make([]osm.NodeID, len(w.Nodes))
		for i, wn := range w.Nodes {
			ids[i] = wn.ID
			refs[wn.ID] = struct{}{}
		}
		ways = append(ways, way{nodes: ids, forward: fwd, backward: bwd})
	}
	return ways, refs, scanner.Err()
}

func scanNodes(ctx context.Context, r io.Reader, procs int, refs map[osm.NodeID]struct{}) (map[osm.NodeID]geo.Point, error) {
	scanner := osmpbf.New(ctx, r, procs)
	defer scanner.Close()
	scanner.SkipWays = true
	scanner.SkipRelations = true

	coords := make(map[osm.NodeID]geo.Point, len(refs))
	for scanner.Scan() {
		n, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		if _, needed := refs[n.ID]; needed {
			coords[n.ID] = geo.Point{Lat: n.Lat, Lng: n.Lon}
		}
	}
	return coords, scanner.Err()
}

// assemble turns consecutive way nodes into weighted directed edges.
// Segments with a missing coordinate or an endpoint outside box are dropped.
func assemble(ways []way, coords map[osm.NodeID]geo.Point, box BBox) *Network {
	net := &Network{}
	index := make(map[osm.NodeID]int)
	dense := func(id osm.NodeID, p geo.Point) int {
		if i, ok := index[id]; ok {
			return i
		}
		i := len(net.NodeIDs)
		index[id] = i
		net.NodeIDs = append(net.NodeIDs, id)
		net.Coords = append(net.Coords, p)
		return i
	}

	var missing, outside int
	for _, w := range ways {
		for i := 0; i+1 < len(w.nodes); i++ {
			a, aok := coords[w.nodes[i]]
			b, bok := coords[w.nodes[i+1]]
			if !aok || !bok {
				missing++
				continue
			}
			if !box.IsZero() && (!box.Contains(a) || !box.Contains(b)) {
				outside++
				continue
			}

			from := dense(w.nodes[i], a)
			to := dense(w.nodes[i+1], b)
			weight := geo.WeightMillimeters(a, b)
			if w.forward {
				net.Edges = append(net.Edges, graph.Edge{From: from, To: to, Weight: weight})
			}
			if w.backward {
				net.Edges = append(net.Edges, graph.Edge{From: to, To: from, Weight: weight})
			}
		}
	}

	if missing > 0 {
		log.Printf("Warning: skipped %d segments due to missing node coordinates", missing)
	}
	if outside > 0 {
		log.Printf("Filtered %d segments outside bounding box", outside)
	}
	return net
}
