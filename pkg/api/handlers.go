package api

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"knn_search/pkg/export"
	"knn_search/pkg/geo"
	"knn_search/pkg/graph"
	"knn_search/pkg/search"
)

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	searcher search.Searcher
	graph    *graph.Graph
	stats    StatsResponse
}

// NewHandlers creates handlers over a searcher and the graph it searches.
// g is only read, for GeoJSON rendering.
func NewHandlers(searcher search.Searcher, g *graph.Graph, stats StatsResponse) *Handlers {
	return &Handlers{
		searcher: searcher,
		graph:    g,
		stats:    stats,
	}
}

// NewStats summarises g for GET /api/v1/stats.
func NewStats(g *graph.Graph, neighbours int, seed uint64) StatsResponse {
	space := g.Space()
	uf := graph.Components(g)
	components := 0
	for i := 0; i < g.NumPoints(); i++ {
		if uf.Find(i) == i {
			components++
		}
	}
	return StatsResponse{
		Width:            space.Width,
		Height:           space.Height,
		NumPoints:        g.NumPoints(),
		NumEdges:         g.NumEdges(),
		Neighbours:       neighbours,
		Seed:             seed,
		Components:       components,
		LargestComponent: len(graph.LargestComponent(g)),
	}
}

// HandleSearch handles POST /api/v1/search. With ?format=geojson the result is
// rendered as a FeatureCollection over the graph.
func (h *Handlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	// Enforce Content-Type.
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}

	var req SearchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1024)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}
	if req.Start == nil {
		writeError(w, http.StatusBadRequest, "missing_point", "start")
		return
	}
	if req.Destination == nil {
		writeError(w, http.StatusBadRequest, "missing_point", "destination")
		return
	}

	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "geojson" {
		writeError(w, http.StatusBadRequest, "invalid_format", "format")
		return
	}

	result, err := h.searcher.Search(r.Context(), search.Request{
		Start:       geo.Point{X: req.Start.X, Y: req.Start.Y},
		Destination: geo.Point{X: req.Destination.X, Y: req.Destination.Y},
		Strategy:    req.Strategy,
	})
	if err != nil {
		writeSearchError(w, err)
		return
	}

	if format == "geojson" {
		if h.graph == nil {
			writeError(w, http.StatusNotFound, "graph_unavailable", "")
			return
		}
		writeJSON(w, export.WithTrace(h.graph, export.Trace{
			Strategy:    result.Strategy,
			Start:       result.Start,
			Destination: result.Destination,
			Found:       result.Found,
			Visited:     result.Visited,
		}))
		return
	}

	resp := SearchResponse{
		Strategy:    result.Strategy,
		Start:       toJSON(result.Start),
		Destination: toJSON(result.Destination),
		Found:       result.Found,
		Expanded:    len(result.Visited),
		Travelled:   result.Travelled,
		Visited:     make([]PointJSON, len(result.Visited)),
	}
	for i, p := range result.Visited {
		resp.Visited[i] = toJSON(p)
	}
	writeJSON(w, resp)
}

// HandleGraph handles GET /api/v1/graph.
func (h *Handlers) HandleGraph(w http.ResponseWriter, r *http.Request) {
	if h.graph == nil {
		writeError(w, http.StatusNotFound, "graph_unavailable", "")
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	json.NewEncoder(w).Encode(export.Graph(h.graph))
}

// HandleHealth handles GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, HealthResponse{Status: "ok"})
}

// HandleStats handles GET /api/v1/stats.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.stats)
}

func writeSearchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, search.ErrUnknownStrategy):
		writeError(w, http.StatusBadRequest, "unknown_strategy", "strategy")
	case errors.Is(err, geo.ErrOutOfBounds):
		writeError(w, http.StatusUnprocessableEntity, "out_of_bounds", "")
	case errors.Is(err, graph.ErrEmptyGraph):
		writeError(w, http.StatusUnprocessableEntity, "empty_graph", "")
	case errors.Is(err, search.ErrExpansionLimit):
		writeError(w, http.StatusUnprocessableEntity, "expansion_limit_reached", "")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "request_timeout", "")
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "")
	}
}

func toJSON(p geo.Point) PointJSON { return PointJSON{X: p.X, Y: p.Y} }

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, field string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: code, Field: field})
}
