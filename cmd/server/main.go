package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/azybler/mssp/pkg/api"
	"github.com/azybler/mssp/pkg/graph"
	"github.com/azybler/mssp/pkg/locate"
	"github.com/azybler/mssp/pkg/metrics"
	"github.com/azybler/mssp/pkg/sssp"
)

func main() {
	graphPath := flag.String("graph", "graph.bin", "Path to preprocessed graph binary")
	configPath := flag.String("config", "", "Optional YAML server config")
	addr := flag.String("addr", ":8080", "HTTP listen address")
	corsOrigin := flag.String("cors-origin", "", "CORS allowed origin (empty = same-origin)")
	maxSources := flag.Int("max-sources", 0, "Maximum sources per request (0 = config value)")
	flag.Parse()

	cfg, err := api.LoadConfig(*configPath, *addr)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	// Explicit flags win over the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.Addr = *addr
		case "cors-origin":
			cfg.CORSOrigin = *corsOrigin
		case "max-sources":
			cfg.MaxSources = *maxSources
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	start := time.Now()

	log.Printf("Loading graph from %s...", *graphPath)
	g, err := graph.ReadBinary(*graphPath)
	if err != nil {
		log.Fatalf("Failed to load graph: %v", err)
	}
	components := graph.ComponentCount(g)
	log.Printf("Loaded: %d nodes, %d edges, %d components", g.NumNodes, g.NumEdges, components)
	metrics.SetGraphSize(g.NumNodes, g.NumEdges)

	var locator api.Locator
	var snapRadius float64
	if g.HasCoords() {
		log.Println("Building R-tree spatial index...")
		ix, err := locate.NewIndex(g, locate.WithMaxDistance(cfg.SnapRadius))
		if err != nil {
			log.Fatalf("Failed to build spatial index: %v", err)
		}
		locator = ix
		snapRadius = ix.MaxDistance()
	} else {
		log.Println("Graph has no coordinates; nearest-node queries disabled")
	}

	pool := sssp.NewPool(g, metrics.Recorder{})
	log.Printf("Ready in %s", time.Since(start).Round(time.Millisecond))

	stats := api.StatsResponse{
		NumNodes:       g.NumNodes,
		NumEdges:       g.NumEdges,
		NumComponents:  components,
		HasCoordinates: g.HasCoords(),
		SnapRadius:     snapRadius,
	}
	handlers := api.NewHandlers(pool, locator, stats, cfg)
	srv := api.NewServer(cfg, handlers)

	if err := api.ListenAndServe(srv); err != nil {
		log.Printf("Server stopped: %v", err)
		os.Exit(1)
	}
}
