package api

// SearchRequest is the JSON body for POST /api/v1/search.
type SearchRequest struct {
	Start       *PointJSON `json:"start"`
	Destination *PointJSON `json:"destination"`
	Strategy    string     `json:"strategy,omitempty"`
}

// PointJSON is an integer coordinate pair in JSON.
type PointJSON struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// SearchResponse is the JSON response for a finished search. Found false is a
// normal outcome, not an error.
type SearchResponse struct {
	Strategy    string      `json:"strategy"`
	Start       PointJSON   `json:"start"`
	Destination PointJSON   `json:"destination"`
	Found       bool        `json:"found"`
	Expanded    int         `json:"expanded"`
	Travelled   float64     `json:"travelled"`
	Visited     []PointJSON `json:"visited"`
}

// ErrorResponse is the JSON response for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// StatsResponse is the JSON response for GET /api/v1/stats.
type StatsResponse struct {
	Width            int    `json:"width"`
	Height           int    `json:"height"`
	NumPoints        int    `json:"num_points"`
	NumEdges         int    `json:"num_edges"`
	Neighbours       int    `json:"neighbours"`
	Seed             uint64 `json:"seed,omitempty"`
	Components       int    `json:"components"`
	LargestComponent int    `json:"largest_component"`
}

// HealthResponse is the JSON response for GET /api/v1/health.
type HealthResponse struct {
	Status string `json:"status"`
}
