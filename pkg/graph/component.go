package graph

import "knn_search/pkg/geo"

// UnionFind implements a disjoint-set data structure with path compression
// and union by rank.
type UnionFind struct {
	parent []int
	rank   []byte
	size   []int
}

// NewUnionFind creates a UnionFind for n elements.
func NewUnionFind(n int) *UnionFind {
	parent := make([]int, n)
	size := make([]int, n)
	for i := range n {
		parent[i] = i
		size[i] = 1
	}
	return &UnionFind{
		parent: parent,
		rank:   make([]byte, n),
		size:   size,
	}
}

// Find returns the representative of the set containing x, with path halving.
func (uf *UnionFind) Find(x int) int {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

// Union merges the sets containing x and y. Returns false if already same set.
func (uf *UnionFind) Union(x, y int) bool {
	rx := uf.Find(x)
	ry := uf.Find(y)
	if rx == ry {
		return false
	}

	if uf.rank[rx] < uf.rank[ry] {
		rx, ry = ry, rx
	}
	uf.parent[ry] = rx
	uf.size[rx] += uf.size[ry]
	if uf.rank[rx] == uf.rank[ry] {
		uf.rank[rx]++
	}
	return true
}

// Size returns the number of elements in x's set.
func (uf *UnionFind) Size(x int) int {
	return uf.size[uf.Find(x)]
}

// Components groups the graph points by connected component, keyed by
// insertion index.
func Components(g *Graph) *UnionFind {
	uf := NewUnionFind(g.NumPoints())
	for _, e := range g.edges {
		uf.Union(g.pointID[e.P1], g.pointID[e.P2])
	}
	return uf
}

// Connected reports whether a path links a and b. Points outside the graph
// are never connected.
func Connected(g *Graph, a, b geo.Point) bool {
	ia, ok := g.Index(a)
	if !ok {
		return false
	}
	ib, ok := g.Index(b)
	if !ok {
		return false
	}
	uf := Components(g)
	return uf.Find(ia) == uf.Find(ib)
}

// LargestComponent returns the points of the largest connected component in
// insertion order. Size ties go to the component seen first.
func LargestComponent(g *Graph) []geo.Point {
	if g.NumPoints() == 0 {
		return nil
	}

	uf := Components(g)

	bestRoot, bestSize := 0, 0
	for i := 0; i < g.NumPoints(); i++ {
		root := uf.Find(i)
		if uf.size[root] > bestSize {
			bestRoot = root
			bestSize = uf.size[root]
		}
	}

	points := make([]geo.Point, 0, bestSize)
	for i, p := range g.points {
		if uf.Find(i) == bestRoot {
			points = append(points, p)
		}
	}
	return points
}
