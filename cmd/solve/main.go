package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/azybler/mssp/pkg/graph"
	"github.com/azybler/mssp/pkg/problem"
	"github.com/azybler/mssp/pkg/sssp"
)

// totals sums per-query statistics for the summary log line.
type totals struct {
	queries int
	stats   sssp.QueryStats
	slowest time.Duration
}

func (t *totals) ObserveQuery(st sssp.QueryStats, elapsed time.Duration) {
	t.queries++
	t.stats.Settled += st.Settled
	t.stats.Stale += st.Stale
	t.stats.Relaxed += st.Relaxed
	t.stats.Pushed += st.Pushed
	t.slowest = max(t.slowest, elapsed)
}

func main() {
	oneBased := flag.Bool("one-based", false, "Input and -sources use 1-based node indices")
	mock := flag.String("mock", "", "Generate a mock instance n,m,k instead of reading input")
	graphPath := flag.String("graph", "", "Load a preprocessed binary graph instead of building one from input")
	sourcesFlag := flag.String("sources", "", "Comma-separated source nodes for -graph (default: read them from the input)")
	graphOut := flag.String("graph-out", "", "Also write the built graph to this binary file")
	output := flag.String("o", "", "Write the distance matrix here instead of stdout")
	quiet := flag.Bool("quiet", false, "Skip writing the distance matrix")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: solve [flags] [input.txt | -]")
		flag.PrintDefaults()
	}
	flag.Parse()

	runID := uuid.NewString()
	log.SetPrefix("[" + runID[:8] + "] ")
	start := time.Now()

	g, sources, err := load(*graphPath, *mock, *sourcesFlag, flag.Arg(0), *oneBased)
	if err != nil {
		log.Fatalf("Failed to load instance: %v", err)
	}
	log.Printf("Run %s: %d nodes, %d edges, %d components, %d sources (loaded in %s)",
		runID, g.NumNodes, g.NumEdges, graph.ComponentCount(g), len(sources), time.Since(start).Round(time.Millisecond))

	if *graphOut != "" {
		if err := graph.WriteBinary(*graphOut, g); err != nil {
			log.Fatalf("Failed to write graph: %v", err)
		}
		log.Printf("Wrote graph to %s", *graphOut)
	}

	tot := &totals{}
	solveStart := time.Now()
	m, err := sssp.NewSolver(g, sssp.WithObserver(tot)).Solve(sources)
	if err != nil {
		log.Fatalf("Solve failed: %v", err)
	}
	elapsed := time.Since(solveStart)
	log.Printf("Solved %d queries in %s (slowest %s): settled %d, stale %d, relaxed %d, pushed %d",
		tot.queries, elapsed.Round(time.Microsecond), tot.slowest.Round(time.Microsecond),
		tot.stats.Settled, tot.stats.Stale, tot.stats.Relaxed, tot.stats.Pushed)

	if *quiet {
		return
	}
	if *output == "" {
		err = problem.WriteMatrix(os.Stdout, m)
	} else {
		err = writeFile(*output, m)
	}
	if err != nil {
		log.Fatalf("Failed to write matrix: %v", err)
	}
}

// writeFile writes m to path. The Close error is returned because buffered
// data may only fail to reach the disk at that point.
func writeFile(path string, m sssp.Matrix) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := problem.WriteMatrix(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// openInput returns stdin for "" or "-", otherwise the named file.
func openInput(input string) (io.ReadCloser, error) {
	if input == "" || input == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(input)
}

// load resolves the instance from exactly one of: a binary graph plus sources
// from -sources or the input, a -mock n,m,k triple, or a text problem file.
// The input is stdin for "" or "-".
func load(graphPath, mock, sourcesFlag, input string, oneBased bool) (*graph.Graph, []int, error) {
	switch {
	case graphPath != "":
		g, err := graph.ReadBinary(graphPath)
		if err != nil {
			return nil, nil, err
		}
		var sources []int
		if sourcesFlag != "" {
			sources, err = parseSources(sourcesFlag, oneBased)
		} else {
			sources, err = readSourcesFrom(input, oneBased)
		}
		if err != nil {
			return nil, nil, err
		}
		return g, sources, nil

	case mock != "":
		var n, m, k int
		if _, err := fmt.Sscanf(mock, "%d,%d,%d", &n, &m, &k); err != nil {
			return nil, nil, fmt.Errorf("invalid -mock %q (expected n,m,k): %w", mock, err)
		}
		p := problem.Mock(n, m, k)
		g, err := p.Graph()
		return g, p.Sources, err

	default:
		r, err := openInput(input)
		if err != nil {
			return nil, nil, err
		}
		defer r.Close()
		p, err := problem.Read(r, problem.ReadOptions{OneBased: oneBased})
		if err != nil {
			return nil, nil, err
		}
		g, err := p.Graph()
		return g, p.Sources, err
	}
}

func readSourcesFrom(input string, oneBased bool) ([]int, error) {
	r, err := openInput(input)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	sources, err := problem.ReadSources(r, problem.ReadOptions{OneBased: oneBased})
	if err != nil {
		return nil, fmt.Errorf("read sources for -graph: %w", err)
	}
	return sources, nil
}

func parseSources(s string, oneBased bool) ([]int, error) {
	fields := strings.Split(s, ",")
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("invalid source %q: %w", f, err)
		}
		if oneBased {
			v--
		}
		out = append(out, v)
	}
	return out, nil
}
