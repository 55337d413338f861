package search

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"knn_search/pkg/geo"
	"knn_search/pkg/graph"
)

// Request asks for a search between two coordinates. Both are snapped to the
// nearest graph point before searching.
type Request struct {
	Start       geo.Point
	Destination geo.Point
	Strategy    string
}

// Result is the outcome of a search.
type Result struct {
	Strategy    string
	Start       geo.Point // snapped
	Destination geo.Point // snapped
	Found       bool
	Visited     []geo.Point
	Travelled   float64
}

// Searcher is the interface for search queries.
type Searcher interface {
	Search(ctx context.Context, req Request) (*Result, error)
}

// Service implements Searcher over a built graph. The graph must not be
// mutated once handed over; each query runs on its own Engine.
type Service struct {
	g               *graph.Graph
	defaultStrategy Strategy
	maxExpansions   int
	logger          zerolog.Logger
}

// NewService creates a search service. defaultStrategy is used when a request
// names none.
func NewService(g *graph.Graph, defaultStrategy Strategy, maxExpansions int, logger zerolog.Logger) *Service {
	return &Service{
		g:               g,
		defaultStrategy: defaultStrategy,
		maxExpansions:   maxExpansions,
		logger:          logger,
	}
}

// Graph returns the searched graph.
func (s *Service) Graph() *graph.Graph { return s.g }

// Search snaps both request points and runs one search.
func (s *Service) Search(ctx context.Context, req Request) (*Result, error) {
	strategy := s.defaultStrategy
	if req.Strategy != "" {
		var err error
		strategy, err = ParseStrategy(req.Strategy)
		if err != nil {
			return nil, err
		}
	}

	start, err := s.g.Locate(req.Start)
	if err != nil {
		return nil, fmt.Errorf("snap start: %w", err)
	}
	dest, err := s.g.Locate(req.Destination)
	if err != nil {
		return nil, fmt.Errorf("snap destination: %w", err)
	}

	eng := NewEngine(strategy, dest, WithMaxExpansions(s.maxExpansions), WithLogger(s.logger))
	found, err := eng.Search(ctx, start, s.g)
	if err != nil {
		return nil, err
	}

	return &Result{
		Strategy:    strategy.Name(),
		Start:       start,
		Destination: dest,
		Found:       found,
		Visited:     eng.Visited(),
		Travelled:   eng.Travelled(),
	}, nil
}
