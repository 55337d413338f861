package graph

import (
	"math"

	"github.com/paulmach/orb/planar"
	"github.com/tidwall/rtree"

	"knn_search/pkg/geo"
)

// pointIndex is an R-tree over graph points, keyed by insertion index.
// Points are stored as degenerate boxes (min == max).
type pointIndex struct {
	tree rtree.RTreeG[int]
}

func newPointIndex() *pointIndex {
	return &pointIndex{}
}

func (ix *pointIndex) insert(p geo.Point, id int) {
	c := [2]float64{float64(p.X), float64(p.Y)}
	ix.tree.Insert(c, c, id)
}

func (ix *pointIndex) size() int { return ix.tree.Len() }

// boxDistSq returns the squared distance from target to the box [min, max].
// Integer coordinates keep it exact in float64.
func boxDistSq(target [2]float64) func(min, max [2]float64, data int, item bool) float64 {
	return func(min, max [2]float64, _ int, _ bool) float64 {
		var sq float64
		for i := 0; i < 2; i++ {
			var d float64
			if target[i] < min[i] {
				d = min[i] - target[i]
			} else if target[i] > max[i] {
				d = target[i] - max[i]
			}
			sq += d * d
		}
		return sq
	}
}

// nearestBeyond walks points in ascending distance from p and returns the
// first one strictly farther than minDist. Among equidistant candidates the
// lowest insertion index wins.
func (ix *pointIndex) nearestBeyond(p geo.Point, minDist float64, points []geo.Point) (int, float64, bool) {
	target := [2]float64{float64(p.X), float64(p.Y)}
	best := -1
	bestDist := math.Inf(1)

	ix.tree.Nearby(boxDistSq(target), func(_, _ [2]float64, id int, _ float64) bool {
		d := planar.Distance(p.Orb(), points[id].Orb())
		if d <= minDist {
			return true
		}
		if best >= 0 && d > bestDist {
			return false
		}
		if best < 0 || id < best {
			best, bestDist = id, d
		}
		return true
	})

	if best < 0 {
		return 0, 0, false
	}
	return best, bestDist, true
}
