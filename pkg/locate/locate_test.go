package locate

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azybler/mssp/pkg/geo"
	"github.com/azybler/mssp/pkg/graph"
)

func coordGraph(t testing.TB, pts []geo.Point) *graph.Graph {
	t.Helper()
	g, err := graph.Build(len(pts), nil)
	require.NoError(t, err)
	g.NodeLat = make([]float64, len(pts))
	g.NodeLon = make([]float64, len(pts))
	for i, p := range pts {
		g.NodeLat[i] = p.Lat
		g.NodeLon[i] = p.Lng
	}
	return g
}

var grid = []geo.Point{
	{Lat: 1.3500, Lng: 103.8200},
	{Lat: 1.3510, Lng: 103.8200},
	{Lat: 1.3500, Lng: 103.8210},
	{Lat: 1.3600, Lng: 103.8300},
}

func TestNewIndexRequiresCoordinates(t *testing.T) {
	g, err := graph.Build(3, nil)
	require.NoError(t, err)

	_, err = NewIndex(g)
	require.ErrorIs(t, err, ErrNoCoordinates)
}

func TestNearestExactNode(t *testing.T) {
	ix, err := NewIndex(coordGraph(t, grid))
	require.NoError(t, err)
	assert.Equal(t, 4, ix.Len())

	for i, p := range grid {
		m, err := ix.Nearest(p)
		require.NoError(t, err)
		assert.Equal(t, uint32(i), m.Node)
		assert.InDelta(t, 0, m.Distance, 1e-9)
	}
}

func TestNearestBetweenNodes(t *testing.T) {
	ix, err := NewIndex(coordGraph(t, grid))
	require.NoError(t, err)

	m, err := ix.Nearest(geo.Point{Lat: 1.3508, Lng: 103.8201})
	require.NoError(t, err)
	assert.Equal(t, uint32(1), m.Node)
	assert.Less(t, m.Distance, 30.0)
}

func TestNearestTooFar(t *testing.T) {
	ix, err := NewIndex(coordGraph(t, grid), WithMaxDistance(100))
	require.NoError(t, err)
	assert.Equal(t, 100.0, ix.MaxDistance())

	// About 1.1 km north of node 0.
	_, err = ix.Nearest(geo.Point{Lat: 1.3400, Lng: 103.8200})
	require.ErrorIs(t, err, ErrPointTooFar)
}

func TestNearestInvalidPoint(t *testing.T) {
	ix, err := NewIndex(coordGraph(t, grid))
	require.NoError(t, err)

	_, err = ix.Nearest(geo.Point{Lat: 91, Lng: 0})
	require.ErrorIs(t, err, ErrInvalidPoint)
}

func TestNearestMatchesBruteForce(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 6))
	pts := make([]geo.Point, 2000)
	for i := range pts {
		pts[i] = geo.Point{Lat: 51.4 + r.Float64()*0.2, Lng: -0.3 + r.Float64()*0.4}
	}
	ix, err := NewIndex(coordGraph(t, pts), WithMaxDistance(1e9))
	require.NoError(t, err)

	for q := 0; q < 200; q++ {
		p := geo.Point{Lat: 51.4 + r.Float64()*0.2, Lng: -0.3 + r.Float64()*0.4}
		m, err := ix.Nearest(p)
		require.NoError(t, err)

		want := geo.Equirectangular(p, pts[0])
		for _, c := range pts[1:] {
			want = min(want, geo.Equirectangular(p, c))
		}
		require.InDelta(t, want, m.Distance, 1e-6, "query %d at %+v", q, p)
	}
}

func TestGap(t *testing.T) {
	assert.Equal(t, 2.0, gap(1, 3, 5))
	assert.Equal(t, 0.0, gap(4, 3, 5))
	assert.Equal(t, 1.0, gap(6, 3, 5))
}

func BenchmarkNearest(b *testing.B) {
	r := rand.New(rand.NewPCG(7, 8))
	pts := make([]geo.Point, 100_000)
	for i := range pts {
		pts[i] = geo.Point{Lat: 1.2 + r.Float64()*0.3, Lng: 103.6 + r.Float64()*0.4}
	}
	ix, err := NewIndex(coordGraph(b, pts))
	if err != nil {
		b.Fatal(err)
	}
	p := geo.Point{Lat: 1.3521, Lng: 103.8198}

	b.ResetTimer()
	for b.Loop() {
		if _, err := ix.Nearest(p); err != nil {
			b.Fatal(err)
		}
	}
}
