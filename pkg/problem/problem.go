// Package problem reads and writes the plain-text batch format:
//
//	n m k
//	u v w      (m lines)
//	s1 ... sk
//
// and prints one line of n distances per source, with -1 for unreachable.
package problem

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/azybler/mssp/pkg/graph"
	"github.com/azybler/mssp/pkg/sssp"
)

// ErrMalformedInput is returned when the input does not follow the format.
var ErrMalformedInput = errors.New("malformed input")

// preallocLimit caps slice preallocation from header counts; larger inputs
// grow by append as tokens actually arrive.
const preallocLimit = 1 << 20

// ReadOptions configures Read.
type ReadOptions struct {
	// OneBased treats node indices in the input as 1-based.
	OneBased bool
}

// Problem is one batch instance.
type Problem struct {
	NumNodes int
	Edges    []graph.Edge
	Sources  []int
}

// Graph builds the CSR graph for the instance.
func (p *Problem) Graph() (*graph.Graph, error) {
	return graph.Build(p.NumNodes, p.Edges)
}

type tokenReader struct {
	sc  *bufio.Scanner
	pos int
}

func (t *tokenReader) int(what string) (int64, error) {
	if !t.sc.Scan() {
		if err := t.sc.Err(); err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("%w: unexpected end of input reading %s", ErrMalformedInput, what)
	}
	t.pos++
	v, err := strconv.ParseInt(t.sc.Text(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: token %d (%s): %q is not an integer", ErrMalformedInput, t.pos, what, t.sc.Text())
	}
	return v, nil
}

func (t *tokenReader) count(what string) (int, error) {
	v, err := t.int(what)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %s = %d out of range", ErrMalformedInput, what, v)
	}
	return int(v), nil
}

// Read parses a problem. Line breaks are not significant; the token count
// must match the header exactly.
func Read(r io.Reader, opts ...ReadOptions) (*Problem, error) {
	var opt ReadOptions
	if len(opts) > 0 {
		opt = opts[0]
	}
	var base int64
	if opt.OneBased {
		base = 1
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)
	t := &tokenReader{sc: sc}

	n, err := t.count("node count")
	if err != nil {
		return nil, err
	}
	m, err := t.count("edge count")
	if err != nil {
		return nil, err
	}
	k, err := t.count("source count")
	if err != nil {
		return nil, err
	}

	p := &Problem{
		NumNodes: n,
		Edges:    make([]graph.Edge, 0, min(m, preallocLimit)),
		Sources:  make([]int, 0, min(k, preallocLimit)),
	}
	for range m {
		u, err := t.int("edge source")
		if err != nil {
			return nil, err
		}
		v, err := t.int("edge target")
		if err != nil {
			return nil, err
		}
		w, err := t.int("edge weight")
		if err != nil {
			return nil, err
		}
		p.Edges = append(p.Edges, graph.Edge{From: int(u - base), To: int(v - base), Weight: w})
	}
	for range k {
		s, err := t.int("source")
		if err != nil {
			return nil, err
		}
		p.Sources = append(p.Sources, int(s-base))
	}

	if sc.Scan() {
		return nil, fmt.Errorf("%w: unexpected token %q after %d sources", ErrMalformedInput, sc.Text(), k)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return p, nil
}

// ReadSources parses a whitespace-separated list of source indices, the
// last line of the full format on its own. At least one source is required.
func ReadSources(r io.Reader, opts ...ReadOptions) ([]int, error) {
	var base int
	if len(opts) > 0 && opts[0].OneBased {
		base = 1
	}

	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	var sources []int
	for sc.Scan() {
		v, err := strconv.Atoi(sc.Text())
		if err != nil {
			return nil, fmt.Errorf("%w: source %d: %q is not an integer", ErrMalformedInput, len(sources), sc.Text())
		}
		sources = append(sources, v-base)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w: no sources", ErrMalformedInput)
	}
	return sources, nil
}

// WriteMatrix prints one line per row with space-separated distances.
// Unreachable entries are written as -1.
func WriteMatrix(w io.Writer, m sssp.Matrix) error {
	bw := bufio.NewWriterSize(w, 64*1024)
	var buf []byte
	for _, row := range m {
		buf = buf[:0]
		for j, d := range row {
			if j > 0 {
				buf = append(buf, ' ')
			}
			if d == sssp.Unreachable {
				buf = append(buf, '-', '1')
			} else {
				buf = strconv.AppendUint(buf, uint64(d), 10)
			}
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}
