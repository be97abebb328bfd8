package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/azybler/mssp/pkg/graph"
	osmimport "github.com/azybler/mssp/pkg/osm"
	"github.com/azybler/mssp/pkg/problem"
)

func main() {
	input := flag.String("input", "", "Path to a .osm.pbf extract or a text problem file")
	output := flag.String("output", "graph.bin", "Output binary graph file path")
	bbox := flag.String("bbox", "", "OSM bounding box filter: minLat,minLng,maxLat,maxLng (e.g. 1.15,103.6,1.48,104.1)")
	oneBased := flag.Bool("one-based", false, "Text input uses 1-based node indices")
	largest := flag.Bool("largest", false, "Keep only the largest weakly connected component (always on for OSM input)")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Usage: preprocess --input <file.osm.pbf | problem.txt> [--output graph.bin] [--bbox minLat,minLng,maxLat,maxLng] [--one-based] [--largest]")
		os.Exit(1)
	}

	start := time.Now()

	f, err := os.Open(*input)
	if err != nil {
		log.Fatalf("Failed to open input file: %v", err)
	}
	defer f.Close()

	var g *graph.Graph
	if strings.HasSuffix(*input, ".pbf") {
		var opts osmimport.Options
		if *bbox != "" {
			b, err := parseBBox(*bbox)
			if err != nil {
				log.Fatalf("Invalid bbox: %v", err)
			}
			opts.BBox = b
			log.Printf("Using bounding box filter: lat [%.4f, %.4f], lng [%.4f, %.4f]", b.MinLat, b.MaxLat, b.MinLng, b.MaxLng)
		}

		log.Println("Parsing OSM data...")
		net, err := osmimport.Import(context.Background(), f, opts)
		if err != nil {
			log.Fatalf("Failed to parse OSM data: %v", err)
		}
		g, err = net.Graph()
		if err != nil {
			log.Fatalf("Failed to build graph: %v", err)
		}
		*largest = true
	} else {
		log.Println("Reading text problem...")
		p, err := problem.Read(f, problem.ReadOptions{OneBased: *oneBased})
		if err != nil {
			log.Fatalf("Failed to read problem: %v", err)
		}
		if len(p.Sources) > 0 {
			log.Printf("Ignoring %d sources; preprocess stores the graph only", len(p.Sources))
		}
		g, err = p.Graph()
		if err != nil {
			log.Fatalf("Failed to build graph: %v", err)
		}
	}
	log.Printf("Graph: %d nodes, %d edges, %d components", g.NumNodes, g.NumEdges, graph.ComponentCount(g))

	if *largest && g.NumNodes > 0 {
		log.Println("Extracting largest connected component...")
		nodes := graph.LargestComponent(g)
		log.Printf("Largest component: %d nodes (%.1f%%)", len(nodes), float64(len(nodes))/float64(g.NumNodes)*100)
		g = graph.FilterToComponent(g, nodes)
		log.Printf("Filtered graph: %d nodes, %d edges", g.NumNodes, g.NumEdges)
	}

	log.Printf("Writing binary to %s...", *output)
	if err := graph.WriteBinary(*output, g); err != nil {
		log.Fatalf("Failed to write binary: %v", err)
	}

	info, err := os.Stat(*output)
	if err != nil {
		log.Fatalf("Failed to stat output: %v", err)
	}
	log.Printf("Done in %s. Output: %s (%.1f MB)", time.Since(start).Round(time.Millisecond), *output, float64(info.Size())/(1024*1024))
}

// parseBBox parses "minLat,minLng,maxLat,maxLng".
func parseBBox(s string) (osmimport.BBox, error) {
	var b osmimport.BBox
	if _, err := fmt.Sscanf(s, "%f,%f,%f,%f", &b.MinLat, &b.MinLng, &b.MaxLat, &b.MaxLng); err != nil {
		return osmimport.BBox{}, fmt.Errorf("expected minLat,minLng,maxLat,maxLng: %w", err)
	}
	if b.MinLat > b.MaxLat || b.MinLng > b.MaxLng {
		return osmimport.BBox{}, fmt.Errorf("min corner (%g,%g) is above max corner (%g,%g)", b.MinLat, b.MinLng, b.MaxLat, b.MaxLng)
	}
	return b, nil
}
