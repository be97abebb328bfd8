package problem

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azybler/mssp/pkg/graph"
	"github.com/azybler/mssp/pkg/sssp"
)

const scenario = `5 5 2
0 1 4
0 2 1
2 1 1
1 3 1
2 3 5
0 2
`

func TestReadScenario(t *testing.T) {
	p, err := Read(strings.NewReader(scenario))
	require.NoError(t, err)

	assert.Equal(t, 5, p.NumNodes)
	assert.Equal(t, []int{0, 2}, p.Sources)
	require.Len(t, p.Edges, 5)
	assert.Equal(t, graph.Edge{From: 2, To: 1, Weight: 1}, p.Edges[2])
}

func TestReadOneBased(t *testing.T) {
	in := "3 2 1\n1 2 7\n2 3 8\n1\n"
	p, err := Read(strings.NewReader(in), ReadOptions{OneBased: true})
	require.NoError(t, err)

	assert.Equal(t, []graph.Edge{{From: 0, To: 1, Weight: 7}, {From: 1, To: 2, Weight: 8}}, p.Edges)
	assert.Equal(t, []int{0}, p.Sources)
}

func TestReadIgnoresLineBreaks(t *testing.T) {
	in := "2 1 2 0 1\n3 0\n\n 1"
	p, err := Read(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []graph.Edge{{From: 0, To: 1, Weight: 3}}, p.Edges)
	assert.Equal(t, []int{0, 1}, p.Sources)
}

func TestReadEmptyBatch(t *testing.T) {
	p, err := Read(strings.NewReader("4 0 0\n"))
	require.NoError(t, err)
	assert.Equal(t, 4, p.NumNodes)
	assert.Empty(t, p.Edges)
	assert.Empty(t, p.Sources)
}

func TestReadMalformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"short header", "3 2"},
		{"non-integer header", "3 x 1"},
		{"negative count", "3 -1 0"},
		{"missing edge", "3 2 1\n0 1 1\n0"},
		{"non-integer weight", "2 1 1\n0 1 abc\n0"},
		{"missing source", "2 1 2\n0 1 1\n0"},
		{"trailing token", "2 1 1\n0 1 1\n0 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.in))
			require.ErrorIs(t, err, ErrMalformedInput)
		})
	}
}

func TestReadThenBuildRejectsBadIndex(t *testing.T) {
	p, err := Read(strings.NewReader("2 1 1\n0 5 1\n0"))
	require.NoError(t, err)

	_, err = p.Graph()
	require.ErrorIs(t, err, graph.ErrInvalidNodeIndex)
}

func TestReadThenBuildRejectsNegativeWeight(t *testing.T) {
	p, err := Read(strings.NewReader("2 1 1\n0 1 -4\n0"))
	require.NoError(t, err)

	_, err = p.Graph()
	require.ErrorIs(t, err, graph.ErrNegativeWeight)
}

func TestReadSources(t *testing.T) {
	got, err := ReadSources(strings.NewReader("0 2\n 7\n"))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 7}, got)

	got, err = ReadSources(strings.NewReader("1 3"), ReadOptions{OneBased: true})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, got)
}

func TestReadSourcesMalformed(t *testing.T) {
	for _, in := range []string{"", "  \n", "0 x 2"} {
		_, err := ReadSources(strings.NewReader(in))
		require.ErrorIs(t, err, ErrMalformedInput, "input %q", in)
	}
}

func TestWriteMatrix(t *testing.T) {
	const U = sssp.Unreachable
	m := sssp.Matrix{
		{0, 2, 1, 3, U},
		{U, 1, 0, 2, U},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteMatrix(&buf, m))
	assert.Equal(t, "0 2 1 3 -1\n-1 1 0 2 -1\n", buf.String())
}

func TestWriteMatrixEmptyRow(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMatrix(&buf, sssp.Matrix{{}, {}}))
	assert.Equal(t, "\n\n", buf.String())
}

func TestEndToEnd(t *testing.T) {
	p, err := Read(strings.NewReader(scenario))
	require.NoError(t, err)
	g, err := p.Graph()
	require.NoError(t, err)

	m, err := sssp.Solve(g, p.Sources)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteMatrix(&buf, m))
	assert.Equal(t, "0 2 1 3 -1\n-1 1 0 2 -1\n", buf.String())
}
