package search

import (
	"errors"
	"fmt"

	"knn_search/pkg/geo"
	"knn_search/pkg/graph"
)

// ErrUnknownStrategy is returned by ParseStrategy for an unsupported name.
var ErrUnknownStrategy = errors.New("search: unknown strategy")

// Frame is the per-run state a strategy may read when pricing a point.
type Frame struct {
	Destination geo.Point
	Current     geo.Point // node being expanded, valid when HasCurrent
	HasCurrent  bool
	Travelled   float64 // distance accumulated across expansions
}

// Strategy prices frontier points; lower priorities are expanded first.
type Strategy interface {
	Name() string
	Priority(p geo.Point, f Frame, g *graph.Graph) (float64, error)
}

// BestFirst is greedy descent: the straight-line distance to the destination.
type BestFirst struct{}

func (BestFirst) Name() string { return "best_first" }

func (BestFirst) Priority(p geo.Point, f Frame, g *graph.Graph) (float64, error) {
	return g.Distance(p, f.Destination)
}

// AStar adds the step from the expanded node and the run's travelled scalar to
// the straight-line estimate. Travelled is one value for the whole run, not a
// per-node path cost, so expansions are not guaranteed optimal.
type AStar struct{}

func (AStar) Name() string { return "astar" }

func (AStar) Priority(p geo.Point, f Frame, g *graph.Graph) (float64, error) {
	h, err := g.Distance(p, f.Destination)
	if err != nil {
		return 0, err
	}
	if !f.HasCurrent {
		return h + f.Travelled, nil
	}
	step, err := g.Distance(f.Current, p)
	if err != nil {
		return 0, err
	}
	return h + step + f.Travelled, nil
}

// ParseStrategy resolves a strategy by name.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "best_first", "bestfirst", "best-first":
		return BestFirst{}, nil
	case "astar", "a*", "a_star":
		return AStar{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}
