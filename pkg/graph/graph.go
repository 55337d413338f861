// Package graph holds the undirected point graph over a bounded space, its
// k-nearest-neighbour builder and connectivity helpers.
package graph

import (
	"errors"
	"fmt"

	"knn_search/pkg/geo"
)

var (
	ErrDuplicatePoint   = errors.New("graph: duplicate point")
	ErrDuplicateEdge    = errors.New("graph: duplicate edge")
	ErrMissingEndpoint  = errors.New("graph: edge endpoint not in graph")
	ErrEmptyGraph       = errors.New("graph: empty graph")
	ErrNoNeighbour      = errors.New("graph: no neighbour beyond distance")
	ErrSpaceSaturated   = errors.New("graph: no free coordinate left in space")
	ErrTooFewPoints     = errors.New("graph: more neighbours requested than points")
	ErrInvalidParameter = errors.New("graph: invalid parameter")
)

// Graph is an undirected graph of distinct points.
// Points keep their insertion order, which callers use as node identity.
type Graph struct {
	space geo.BoundedSpace

	points  []geo.Point
	pointID map[geo.Point]int

	edges   []geo.Edge
	edgeSet map[geo.Edge]struct{} // keyed by Canonical()
	adj     map[geo.Point][]geo.Point

	index *pointIndex
}

// New creates an empty graph over space.
func New(space geo.BoundedSpace) *Graph {
	return &Graph{
		space:   space,
		pointID: make(map[geo.Point]int),
		edgeSet: make(map[geo.Edge]struct{}),
		adj:     make(map[geo.Point][]geo.Point),
		index:   newPointIndex(),
	}
}

// Space returns the bounded space the graph lives in.
func (g *Graph) Space() geo.BoundedSpace { return g.space }

func (g *Graph) NumPoints() int { return len(g.points) }

func (g *Graph) NumEdges() int { return len(g.edges) }

// HasPoint reports whether p is a node of g.
func (g *Graph) HasPoint(p geo.Point) bool {
	_, ok := g.pointID[p]
	return ok
}

// Index returns the insertion index of p.
func (g *Graph) Index(p geo.Point) (int, bool) {
	i, ok := g.pointID[p]
	return i, ok
}

// Point returns the i-th inserted point.
func (g *Graph) Point(i int) geo.Point { return g.points[i] }

// Points returns a copy of the points in insertion order.
func (g *Graph) Points() []geo.Point {
	out := make([]geo.Point, len(g.points))
	copy(out, g.points)
	return out
}

// Edges returns a copy of the edges in insertion order.
func (g *Graph) Edges() []geo.Edge {
	out := make([]geo.Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// AddPoint inserts p. A coordinate duplicate is rejected with
// ErrDuplicatePoint and leaves the graph unchanged.
func (g *Graph) AddPoint(p geo.Point) error {
	if !g.space.Contains(p) {
		return fmt.Errorf("add point %v: %w", p, geo.ErrOutOfBounds)
	}
	if g.HasPoint(p) {
		return fmt.Errorf("add point %v: %w", p, ErrDuplicatePoint)
	}
	id := len(g.points)
	g.points = append(g.points, p)
	g.pointID[p] = id
	g.index.insert(p, id)
	return nil
}

// AddEdge connects two existing points.
func (g *Graph) AddEdge(e geo.Edge) error {
	if !g.HasPoint(e.P1) {
		return fmt.Errorf("add edge %v-%v: %w: %v", e.P1, e.P2, ErrMissingEndpoint, e.P1)
	}
	if !g.HasPoint(e.P2) {
		return fmt.Errorf("add edge %v-%v: %w: %v", e.P1, e.P2, ErrMissingEndpoint, e.P2)
	}
	key := e.Canonical()
	if _, ok := g.edgeSet[key]; ok {
		return fmt.Errorf("add edge %v-%v: %w", e.P1, e.P2, ErrDuplicateEdge)
	}
	g.edgeSet[key] = struct{}{}
	g.edges = append(g.edges, e)
	g.adj[e.P1] = append(g.adj[e.P1], e.P2)
	if e.P1 != e.P2 {
		g.adj[e.P2] = append(g.adj[e.P2], e.P1)
	}
	return nil
}

// HasEdge reports whether a and b are directly connected.
func (g *Graph) HasEdge(a, b geo.Point) bool {
	_, ok := g.edgeSet[geo.Edge{P1: a, P2: b}.Canonical()]
	return ok
}

// Neighbours returns the points sharing an edge with p, in edge insertion order.
func (g *Graph) Neighbours(p geo.Point) []geo.Point {
	adj := g.adj[p]
	out := make([]geo.Point, len(adj))
	copy(out, adj)
	return out
}

// Distance is geo.Distance within the graph's space.
func (g *Graph) Distance(a, b geo.Point) (float64, error) {
	return geo.Distance(g.space, a, b)
}

// FarthestPoint returns the graph point at maximum distance from p, and that
// distance. Ties go to the earliest inserted point.
func (g *Graph) FarthestPoint(p geo.Point) (float64, geo.Point, error) {
	if len(g.points) == 0 {
		return 0, geo.Point{}, ErrEmptyGraph
	}
	best := -1.0
	var far geo.Point
	for _, q := range g.points {
		d, err := g.Distance(p, q)
		if err != nil {
			return 0, geo.Point{}, err
		}
		if d > best {
			best, far = d, q
		}
	}
	return best, far, nil
}

// NearestNeighbour returns the closest point whose distance from p is strictly
// greater than minimalDistance. A point exactly at the threshold is excluded.
// Ties go to the earliest inserted point.
func (g *Graph) NearestNeighbour(p geo.Point, minimalDistance float64) (geo.Point, float64, error) {
	if !g.space.Contains(p) {
		return geo.Point{}, 0, fmt.Errorf("nearest neighbour of %v: %w", p, geo.ErrOutOfBounds)
	}
	id, d, ok := g.index.nearestBeyond(p, minimalDistance, g.points)
	if !ok {
		return geo.Point{}, 0, fmt.Errorf("nearest neighbour of %v beyond %g: %w", p, minimalDistance, ErrNoNeighbour)
	}
	return g.points[id], d, nil
}

// Locate snaps an arbitrary coordinate to the nearest graph point.
func (g *Graph) Locate(p geo.Point) (geo.Point, error) {
	if len(g.points) == 0 {
		return geo.Point{}, ErrEmptyGraph
	}
	q, _, err := g.NearestNeighbour(p, -1)
	return q, err
}
