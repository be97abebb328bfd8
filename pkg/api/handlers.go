package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"mime"
	"net/http"

	"github.com/google/uuid"

	"github.com/azybler/mssp/pkg/geo"
	"github.com/azybler/mssp/pkg/graph"
	"github.com/azybler/mssp/pkg/locate"
	"github.com/azybler/mssp/pkg/sssp"
)

// DistanceSolver runs a batch of shortest-path queries. *sssp.Pool
// implements it.
type DistanceSolver interface {
	SolveContext(ctx context.Context, sources []int) (sssp.Matrix, error)
}

// Locator maps a coordinate to a graph node. *locate.Index implements it.
type Locator interface {
	Nearest(p geo.Point) (locate.Match, error)
}

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	solver     DistanceSolver
	locator    Locator
	stats      StatsResponse
	maxSources int
	maxCells   int64
	maxBody    int64
}

// NewHandlers creates handlers. locator may be nil when the graph has no
// coordinates; the nearest endpoint then answers 404.
func NewHandlers(solver DistanceSolver, locator Locator, stats StatsResponse, cfg ServerConfig) *Handlers {
	stats.MaxSources = cfg.MaxSources
	stats.MaxCells = cfg.MaxCells
	return &Handlers{
		solver:     solver,
		locator:    locator,
		stats:      stats,
		maxSources: cfg.MaxSources,
		maxCells:   cfg.MaxCells,
		maxBody:    cfg.MaxBodyBytes,
	}
}

// HandleDistances handles POST /api/v1/distances.
func (h *Handlers) HandleDistances(w http.ResponseWriter, r *http.Request) {
	var req DistancesRequest
	if !h.decode(w, r, &req) {
		return
	}
	if len(req.Sources) == 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "sources")
		return
	}
	if !h.withinLimits(len(req.Sources)) {
		writeError(w, http.StatusRequestEntityTooLarge, "too_many_sources", "sources")
		return
	}

	h.solve(w, r, req.Sources, nil)
}

// HandleNearest handles POST /api/v1/distances/nearest.
func (h *Handlers) HandleNearest(w http.ResponseWriter, r *http.Request) {
	if h.locator == nil {
		writeError(w, http.StatusNotFound, "no_coordinates", "")
		return
	}

	var req NearestRequest
	if !h.decode(w, r, &req) {
		return
	}
	if len(req.Points) == 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "points")
		return
	}
	if !h.withinLimits(len(req.Points)) {
		writeError(w, http.StatusRequestEntityTooLarge, "too_many_sources", "points")
		return
	}

	sources := make([]int, len(req.Points))
	snapped := make([]SnappedSource, len(req.Points))
	for i, pt := range req.Points {
		field := fmt.Sprintf("points[%d]", i)
		if err := validateCoord(pt); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_coordinates", field)
			return
		}
		m, err := h.locator.Nearest(geo.Point{Lat: pt.Lat, Lng: pt.Lng})
		if err != nil {
			if errors.Is(err, locate.ErrPointTooFar) {
				writeError(w, http.StatusUnprocessableEntity, "point_too_far", field)
				return
			}
			writeError(w, http.StatusBadRequest, "invalid_coordinates", field)
			return
		}
		sources[i] = int(m.Node)
		snapped[i] = SnappedSource{Node: m.Node, DistanceMeters: m.Distance}
	}

	h.solve(w, r, sources, snapped)
}

// HandleHealth handles GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// HandleStats handles GET /api/v1/stats.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.stats)
}

// withinLimits reports whether a batch of k sources fits both the source cap
// and the cap on result cells (k rows of NumNodes distances).
func (h *Handlers) withinLimits(k int) bool {
	return k <= h.maxSources && int64(k)*int64(h.stats.NumNodes) <= h.maxCells
}

func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return false
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return false
	}
	return true
}

func (h *Handlers) solve(w http.ResponseWriter, r *http.Request, sources []int, snapped []SnappedSource) {
	runID := uuid.NewString()
	m, err := h.solver.SolveContext(r.Context(), sources)
	if err != nil {
		switch {
		case errors.Is(err, graph.ErrInvalidNodeIndex):
			writeError(w, http.StatusBadRequest, "invalid_source", "sources")
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			writeError(w, http.StatusServiceUnavailable, "request_timeout", "")
		default:
			log.Printf("run %s: %v", runID, err)
			writeError(w, http.StatusInternalServerError, "internal_error", "")
		}
		return
	}

	writeJSON(w, http.StatusOK, DistancesResponse{
		RunID:     runID,
		Sources:   sources,
		Snapped:   snapped,
		Distances: toJSONMatrix(m),
	})
}

// toJSONMatrix widens distances so that unreachable can be written as -1.
func toJSONMatrix(m sssp.Matrix) [][]int64 {
	if len(m) == 0 {
		return [][]int64{}
	}
	n := len(m[0])
	backing := make([]int64, len(m)*n)
	out := make([][]int64, len(m))
	for i, row := range m {
		dst := backing[i*n : (i+1)*n : (i+1)*n]
		for v, d := range row {
			if d == sssp.Unreachable {
				dst[v] = -1
			} else {
				dst[v] = int64(d)
			}
		}
		out[i] = dst
	}
	return out
}

func validateCoord(ll LatLngJSON) error {
	if math.IsNaN(ll.Lat) || math.IsNaN(ll.Lng) || math.IsInf(ll.Lat, 0) || math.IsInf(ll.Lng, 0) {
		return errors.New("coordinates must be finite numbers")
	}
	if ll.Lat < -90 || ll.Lat > 90 || ll.Lng < -180 || ll.Lng > 180 {
		return errors.New("coordinates out of range")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, field string) {
	writeJSON(w, status, ErrorResponse{Error: code, Field: field})
}
