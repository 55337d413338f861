package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"knn_search/pkg/geo"
)

// newTestGraph adds pts in order to a 10x10 graph.
func newTestGraph(t *testing.T, pts ...geo.Point) *Graph {
	t.Helper()
	g := New(geo.BoundedSpace{Width: 10, Height: 10})
	for _, p := range pts {
		require.NoError(t, g.AddPoint(p))
	}
	return g
}

func TestAddPointDuplicate(t *testing.T) {
	g := newTestGraph(t, geo.Point{X: 1, Y: 2}, geo.Point{X: 3, Y: 4})

	err := g.AddPoint(geo.Point{X: 1, Y: 2})
	require.ErrorIs(t, err, ErrDuplicatePoint)

	assert.Equal(t, []geo.Point{{1, 2}, {3, 4}}, g.Points(), "point set must be unchanged")
	assert.Equal(t, 2, g.index.size())
}

func TestAddPointOutOfBounds(t *testing.T) {
	g := newTestGraph(t)
	assert.ErrorIs(t, g.AddPoint(geo.Point{X: 11, Y: 0}), geo.ErrOutOfBounds)
	assert.Zero(t, g.NumPoints())
}

func TestAddEdge(t *testing.T) {
	a, b, c := geo.Point{X: 0, Y: 0}, geo.Point{X: 1, Y: 1}, geo.Point{X: 2, Y: 2}
	g := newTestGraph(t, a, b)

	require.NoError(t, g.AddEdge(geo.Edge{P1: a, P2: b}))

	assert.ErrorIs(t, g.AddEdge(geo.Edge{P1: a, P2: b}), ErrDuplicateEdge)
	assert.ErrorIs(t, g.AddEdge(geo.Edge{P1: b, P2: a}), ErrDuplicateEdge, "reversed edge is the same edge")
	assert.ErrorIs(t, g.AddEdge(geo.Edge{P1: a, P2: c}), ErrMissingEndpoint)
	assert.ErrorIs(t, g.AddEdge(geo.Edge{P1: c, P2: b}), ErrMissingEndpoint)

	assert.Equal(t, 1, g.NumEdges())
	assert.True(t, g.HasEdge(b, a))
}

func TestNeighboursSymmetric(t *testing.T) {
	pts := []geo.Point{{0, 0}, {1, 1}, {2, 2}, {5, 5}, {9, 0}}
	g := newTestGraph(t, pts...)
	edges := []geo.Edge{
		{P1: pts[0], P2: pts[1]},
		{P1: pts[1], P2: pts[2]},
		{P1: pts[3], P2: pts[1]},
		{P1: pts[4], P2: pts[0]},
	}
	for _, e := range edges {
		require.NoError(t, g.AddEdge(e))
	}

	for _, a := range pts {
		for _, b := range g.Neighbours(a) {
			assert.Contains(t, g.Neighbours(b), a, "%v in neighbours(%v) but not the reverse", b, a)
		}
	}
	assert.Equal(t, []geo.Point{pts[0], pts[2], pts[3]}, g.Neighbours(pts[1]), "edge insertion order")
	assert.Empty(t, g.Neighbours(geo.Point{X: 7, Y: 7}))
}

func TestFarthestPoint(t *testing.T) {
	g := newTestGraph(t, geo.Point{X: 0, Y: 0}, geo.Point{X: 3, Y: 4}, geo.Point{X: 10, Y: 10}, geo.Point{X: 6, Y: 8})

	d, p, err := g.FarthestPoint(geo.Point{X: 0, Y: 0})
	require.NoError(t, err)
	assert.Equal(t, geo.Point{X: 10, Y: 10}, p)
	assert.InDelta(t, 14.142135, d, 1e-6)

	d, p, err = g.FarthestPoint(geo.Point{X: 3, Y: 4})
	require.NoError(t, err)
	assert.Equal(t, geo.Point{X: 10, Y: 10}, p)
	assert.InDelta(t, 9.219544, d, 1e-6)

	_, _, err = New(geo.BoundedSpace{Width: 1, Height: 1}).FarthestPoint(geo.Point{X: 0, Y: 0})
	assert.ErrorIs(t, err, ErrEmptyGraph)
}

func TestNearestNeighbourThreshold(t *testing.T) {
	p := geo.Point{X: 0, Y: 0}
	g := newTestGraph(t, p, geo.Point{X: 0, Y: 1}, geo.Point{X: 0, Y: 2}, geo.Point{X: 3, Y: 0}, geo.Point{X: 4, Y: 4})

	n, d, err := g.NearestNeighbour(p, 0)
	require.NoError(t, err)
	assert.Equal(t, geo.Point{X: 0, Y: 1}, n, "the point itself sits at distance 0 and is excluded")
	assert.Equal(t, 1.0, d)

	n, d, err = g.NearestNeighbour(p, 1)
	require.NoError(t, err)
	assert.Equal(t, geo.Point{X: 0, Y: 2}, n, "threshold is a strict lower bound")
	assert.Equal(t, 2.0, d)

	n, _, err = g.NearestNeighbour(p, 2.5)
	require.NoError(t, err)
	assert.Equal(t, geo.Point{X: 3, Y: 0}, n)

	_, _, err = g.NearestNeighbour(p, 6)
	assert.ErrorIs(t, err, ErrNoNeighbour)

	_, _, err = g.NearestNeighbour(geo.Point{X: -1, Y: 0}, 0)
	assert.ErrorIs(t, err, geo.ErrOutOfBounds)
}

func TestNearestNeighbourTiesUseInsertionOrder(t *testing.T) {
	center := geo.Point{X: 5, Y: 5}
	g := newTestGraph(t, geo.Point{X: 5, Y: 7}, geo.Point{X: 3, Y: 5}, center, geo.Point{X: 7, Y: 5}, geo.Point{X: 5, Y: 3})

	n, d, err := g.NearestNeighbour(center, 0)
	require.NoError(t, err)
	assert.Equal(t, geo.Point{X: 5, Y: 7}, n)
	assert.Equal(t, 2.0, d)

	// All four candidates share the distance, so stepping past it leaves none.
	_, _, err = g.NearestNeighbour(center, d)
	assert.ErrorIs(t, err, ErrNoNeighbour)
}

func TestNearestNeighbourMatchesLinearScan(t *testing.T) {
	g, err := Build(geo.BoundedSpace{Width: 60, Height: 40}, 150, 0, WithSeed(7))
	require.NoError(t, err)

	scan := func(p geo.Point, minDist float64) (geo.Point, float64, bool) {
		found := false
		var best geo.Point
		var bestD float64
		for _, q := range g.Points() {
			d, err := g.Distance(p, q)
			require.NoError(t, err)
			if d > minDist && (!found || d < bestD) {
				found, best, bestD = true, q, d
			}
		}
		return best, bestD, found
	}

	for _, p := range g.Points() {
		minDist := 0.0
		for round := 0; round < 4; round++ {
			want, wantD, ok := scan(p, minDist)
			got, gotD, err := g.NearestNeighbour(p, minDist)
			if !ok {
				assert.ErrorIs(t, err, ErrNoNeighbour)
				break
			}
			require.NoError(t, err)
			assert.Equal(t, want, got, "point %v round %d", p, round)
			assert.Equal(t, wantD, gotD)
			minDist = gotD
		}
	}
}

func TestLocate(t *testing.T) {
	g := newTestGraph(t, geo.Point{X: 0, Y: 0}, geo.Point{X: 8, Y: 8})

	p, err := g.Locate(geo.Point{X: 8, Y: 8})
	require.NoError(t, err)
	assert.Equal(t, geo.Point{X: 8, Y: 8}, p, "a graph point snaps to itself")

	p, err = g.Locate(geo.Point{X: 2, Y: 3})
	require.NoError(t, err)
	assert.Equal(t, geo.Point{X: 0, Y: 0}, p)

	_, err = newTestGraph(t).Locate(geo.Point{X: 1, Y: 1})
	assert.ErrorIs(t, err, ErrEmptyGraph)
}

func TestViewsAreCopies(t *testing.T) {
	a, b := geo.Point{X: 0, Y: 0}, geo.Point{X: 1, Y: 0}
	g := newTestGraph(t, a, b)
	require.NoError(t, g.AddEdge(geo.Edge{P1: a, P2: b}))

	pts := g.Points()
	pts[0] = geo.Point{X: 9, Y: 9}
	edges := g.Edges()
	edges[0] = geo.Edge{}
	nb := g.Neighbours(a)
	nb[0] = geo.Point{X: 9, Y: 9}

	assert.Equal(t, a, g.Point(0))
	assert.Equal(t, geo.Edge{P1: a, P2: b}, g.Edges()[0])
	assert.Equal(t, []geo.Point{b}, g.Neighbours(a))
}
