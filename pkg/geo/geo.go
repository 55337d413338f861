// Package geo holds the integer plane primitives the graph is built on.
package geo

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

var (
	// ErrOutOfBounds is returned when a point lies outside the bounded space.
	ErrOutOfBounds = errors.New("geo: point out of bounds")

	// ErrInvalidSpace is returned for a space with a non-positive dimension.
	ErrInvalidSpace = errors.New("geo: invalid space")
)

// Point is a node position. Two points are equal iff both coordinates match.
type Point struct {
	X int
	Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Orb converts p to an orb point for planar math and GeoJSON output.
func (p Point) Orb() orb.Point {
	return orb.Point{float64(p.X), float64(p.Y)}
}

// Edge is an unordered pair of points.
type Edge struct {
	P1 Point
	P2 Point
}

// Equal reports whether e and o connect the same two points, in either order.
func (e Edge) Equal(o Edge) bool {
	return (e.P1 == o.P1 && e.P2 == o.P2) || (e.P1 == o.P2 && e.P2 == o.P1)
}

// Canonical returns e with its endpoints ordered by (X, Y), so that equal
// edges compare equal with ==.
func (e Edge) Canonical() Edge {
	if e.P2.X < e.P1.X || (e.P2.X == e.P1.X && e.P2.Y < e.P1.Y) {
		return Edge{P1: e.P2, P2: e.P1}
	}
	return e
}

// Other returns the endpoint opposite to p and whether p is an endpoint at all.
func (e Edge) Other(p Point) (Point, bool) {
	switch p {
	case e.P1:
		return e.P2, true
	case e.P2:
		return e.P1, true
	}
	return Point{}, false
}

// BoundedSpace is the rectangle [0, Width] x [0, Height].
type BoundedSpace struct {
	Width  int
	Height int
}

// NewBoundedSpace validates that both dimensions are positive. A dimension of
// math.MaxInt is rejected so that Width+1 and Height+1 stay representable.
func NewBoundedSpace(width, height int) (BoundedSpace, error) {
	if width <= 0 || height <= 0 || width == math.MaxInt || height == math.MaxInt {
		return BoundedSpace{}, fmt.Errorf("%w: %dx%d", ErrInvalidSpace, width, height)
	}
	return BoundedSpace{Width: width, Height: height}, nil
}

// Contains reports whether p lies inside the space, borders included.
func (s BoundedSpace) Contains(p Point) bool {
	return p.X >= 0 && p.X <= s.Width && p.Y >= 0 && p.Y <= s.Height
}

// Capacity is the number of distinct integer points in the space, saturated
// at math.MaxInt.
func (s BoundedSpace) Capacity() int {
	if s.Width < 0 || s.Height < 0 {
		return 0
	}
	hi, lo := bits.Mul64(uint64(s.Width)+1, uint64(s.Height)+1)
	if hi != 0 || lo > math.MaxInt {
		return math.MaxInt
	}
	return int(lo)
}

// InSpace reports whether p lies inside space.
func InSpace(space BoundedSpace, p Point) bool {
	return space.Contains(p)
}

// Distance returns the Euclidean distance between p1 and p2.
// Both points must lie inside space.
func Distance(space BoundedSpace, p1, p2 Point) (float64, error) {
	if !space.Contains(p1) {
		return 0, fmt.Errorf("%w: %v", ErrOutOfBounds, p1)
	}
	if !space.Contains(p2) {
		return 0, fmt.Errorf("%w: %v", ErrOutOfBounds, p2)
	}
	return planar.Distance(p1.Orb(), p2.Orb()), nil
}
