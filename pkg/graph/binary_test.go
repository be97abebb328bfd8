package graph_test

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/azybler/mssp/pkg/graph"
)

func buildTestGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.Build(4, []graph.Edge{
		{From: 0, To: 1, Weight: 100},
		{From: 1, To: 0, Weight: 100},
		{From: 1, To: 2, Weight: 200},
		{From: 2, To: 1, Weight: 200},
		{From: 0, To: 3, Weight: 300},
		{From: 3, To: 0, Weight: 300},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return g
}

func TestBinaryRoundTrip(t *testing.T) {
	original := buildTestGraph(t)

	path := filepath.Join(t.TempDir(), "test.graph.bin")
	if err := graph.WriteBinary(path, original); err != nil {
		t.Fatalf("WriteBinary: %v", err)
	}

	loaded, err := graph.ReadBinary(path)
	if err != nil {
		t.Fatalf("ReadBinary: %v", err)
	}

	if loaded.NumNodes != original.NumNodes {
		t.Errorf("NumNodes: got %d, want %d", loaded.NumNodes, original.NumNodes)
	}
	if loaded.NumEdges != original.NumEdges {
		t.Errorf("NumEdges: got %d, want %d", loaded.NumEdges, original.NumEdges)
	}
	if !slices.Equal(loaded.FirstOut, original.FirstOut) {
		t.Errorf("FirstOut: got %v, want %v", loaded.FirstOut, original.FirstOut)
	}
	if !slices.Equal(loaded.Head, original.Head) {
		t.Errorf("Head: got %v, want %v", loaded.Head, original.Head)
	}
	if !slices.Equal(loaded.Weight, original.Weight) {
		t.Errorf("Weight: got %v, want %v", loaded.Weight, original.Weight)
	}
	if loaded.HasCoords() {
		t.Error("HasCoords = true, want false for graph written without coordinates")
	}

	// No temp file left behind.
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file still present: %v", err)
	}
}

func TestBinaryRoundTripWithCoords(t *testing.T) {
	original := buildTestGraph(t)
	original.NodeLat = []float64{1.0, 1.1, 1.2, 1.3}
	original.NodeLon = []float64{103.0, 103.1, 103.2, 103.3}

	path := filepath.Join(t.TempDir(), "coords.graph.bin")
	if err := graph.WriteBinary(path, original); err != nil {
		t.Fatalf("WriteBinary: %v", err)
	}
	loaded, err := graph.ReadBinary(path)
	if err != nil {
		t.Fatalf("ReadBinary: %v", err)
	}
	if !loaded.HasCoords() {
		t.Fatal("HasCoords = false, want true")
	}
	if !slices.Equal(loaded.NodeLat, original.NodeLat) || !slices.Equal(loaded.NodeLon, original.NodeLon) {
		t.Errorf("coords: got %v/%v, want %v/%v", loaded.NodeLat, loaded.NodeLon, original.NodeLat, original.NodeLon)
	}
}

func TestBinaryEmptyGraph(t *testing.T) {
	g, err := graph.Build(0, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	path := filepath.Join(t.TempDir(), "empty.graph.bin")
	if err := graph.WriteBinary(path, g); err != nil {
		t.Fatalf("WriteBinary: %v", err)
	}
	loaded, err := graph.ReadBinary(path)
	if err != nil {
		t.Fatalf("ReadBinary: %v", err)
	}
	if loaded.NumNodes != 0 || loaded.NumEdges != 0 {
		t.Errorf("got %d nodes, %d edges, want 0, 0", loaded.NumNodes, loaded.NumEdges)
	}
}

func TestBinaryInvalidMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.graph.bin")
	os.WriteFile(path, []byte("NOT_A_GRAPH_HEADER_BLAH_BLAH_BLAH_MORE_DATA"), 0644)

	if _, err := graph.ReadBinary(path); err == nil {
		t.Fatal("expected error for invalid magic bytes")
	}
}

func TestBinaryTruncatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "truncated.graph.bin")
	os.WriteFile(path, []byte("MSSPGRPH"), 0644)

	if _, err := graph.ReadBinary(path); err == nil {
		t.Fatal("expected error for truncated file")
	}
}

func TestBinaryCorruptedPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.graph.bin")
	if err := graph.WriteBinary(path, buildTestGraph(t)); err != nil {
		t.Fatalf("WriteBinary: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	// Flip a byte inside the Weight array, just before the CRC trailer.
	data[len(data)-5] ^= 0xFF
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := graph.ReadBinary(path); err == nil {
		t.Fatal("expected CRC32 mismatch error")
	}
}

func TestWriteBinaryRejectsOversizedGraph(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.bin")

	// Only the header counts are inspected, so no arrays are needed.
	for _, g := range []*graph.Graph{
		{NumNodes: 50_000_001},
		{NumNodes: 1, NumEdges: 500_000_001},
	} {
		err := graph.WriteBinary(path, g)
		if !errors.Is(err, graph.ErrGraphTooLarge) {
			t.Errorf("WriteBinary(%d nodes, %d edges) err = %v, want ErrGraphTooLarge", g.NumNodes, g.NumEdges, err)
		}
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("output file exists after rejected write: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file exists after rejected write: %v", err)
	}
}
