package api

// DistancesRequest is the JSON body for POST /api/v1/distances.
type DistancesRequest struct {
	Sources []int `json:"sources"`
}

// NearestRequest is the JSON body for POST /api/v1/distances/nearest.
type NearestRequest struct {
	Points []LatLngJSON `json:"points"`
}

// LatLngJSON represents a lat/lng pair in JSON.
type LatLngJSON struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// SnappedSource reports which node a request point was mapped to.
type SnappedSource struct {
	Node           uint32  `json:"node"`
	DistanceMeters float64 `json:"distance_meters"`
}

// DistancesResponse is the JSON response for a successful batch.
// Distances[i][v] is the cost from the i-th source to node v, or -1.
type DistancesResponse struct {
	RunID     string          `json:"run_id"`
	Sources   []int           `json:"sources"`
	Snapped   []SnappedSource `json:"snapped,omitempty"`
	Distances [][]int64       `json:"distances"`
}

// ErrorResponse is the JSON response for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// StatsResponse is the JSON response for GET /api/v1/stats.
type StatsResponse struct {
	NumNodes       uint32  `json:"num_nodes"`
	NumEdges       uint32  `json:"num_edges"`
	NumComponents  uint32  `json:"num_components"`
	HasCoordinates bool    `json:"has_coordinates"`
	MaxSources     int     `json:"max_sources"`
	MaxCells       int64   `json:"max_cells"`
	SnapRadius     float64 `json:"snap_radius_meters,omitempty"`
}

// HealthResponse is the JSON response for GET /api/v1/health.
type HealthResponse struct {
	Status string `json:"status"`
}
