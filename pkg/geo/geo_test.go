package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	space := BoundedSpace{Width: 10, Height: 10}

	tests := []struct {
		name string
		p1   Point
		p2   Point
		want float64
	}{
		{name: "Same point", p1: Point{X: 3, Y: 4}, p2: Point{X: 3, Y: 4}, want: 0},
		{name: "3-4-5 triangle", p1: Point{X: 0, Y: 0}, p2: Point{X: 3, Y: 4}, want: 5},
		{name: "Horizontal", p1: Point{X: 1, Y: 7}, p2: Point{X: 9, Y: 7}, want: 8},
		{name: "Opposite corners", p1: Point{X: 0, Y: 0}, p2: Point{X: 10, Y: 10}, want: math.Sqrt(200)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Distance(space, tt.p1, tt.p2)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)

			back, err := Distance(space, tt.p2, tt.p1)
			require.NoError(t, err)
			assert.Equal(t, got, back, "distance must be symmetric")
		})
	}
}

func TestDistanceOutOfBounds(t *testing.T) {
	space := BoundedSpace{Width: 10, Height: 5}
	inside := Point{X: 1, Y: 1}

	for _, p := range []Point{{11, 0}, {0, 6}, {-1, 2}, {3, -4}, {11, 6}} {
		_, err := Distance(space, inside, p)
		assert.ErrorIs(t, err, ErrOutOfBounds, "second point %v", p)

		_, err = Distance(space, p, inside)
		assert.ErrorIs(t, err, ErrOutOfBounds, "first point %v", p)
	}
}

func TestInSpace(t *testing.T) {
	space := BoundedSpace{Width: 4, Height: 2}

	assert.True(t, InSpace(space, Point{X: 0, Y: 0}))
	assert.True(t, InSpace(space, Point{X: 4, Y: 2}), "borders are inside")
	assert.False(t, InSpace(space, Point{X: 5, Y: 2}))
	assert.False(t, InSpace(space, Point{X: 4, Y: 3}))
	assert.False(t, InSpace(space, Point{X: -1, Y: 0}))
}

func TestNewBoundedSpace(t *testing.T) {
	s, err := NewBoundedSpace(3, 7)
	require.NoError(t, err)
	assert.Equal(t, 32, s.Capacity())

	_, err = NewBoundedSpace(0, 7)
	assert.ErrorIs(t, err, ErrInvalidSpace)
	_, err = NewBoundedSpace(5, -1)
	assert.ErrorIs(t, err, ErrInvalidSpace)
	_, err = NewBoundedSpace(math.MaxInt, 1)
	assert.ErrorIs(t, err, ErrInvalidSpace)
	_, err = NewBoundedSpace(1, math.MaxInt)
	assert.ErrorIs(t, err, ErrInvalidSpace)
}

func TestCapacitySaturates(t *testing.T) {
	huge, err := NewBoundedSpace(1<<62, 1<<62)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, huge.Capacity())

	wide, err := NewBoundedSpace(math.MaxInt-1, 1)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, wide.Capacity())

	exact := BoundedSpace{Width: 1<<31 - 1, Height: 1<<31 - 1}
	assert.Equal(t, 1<<62, exact.Capacity())

	assert.Zero(t, BoundedSpace{Width: -3, Height: 4}.Capacity())
}

func TestEdgeEquality(t *testing.T) {
	a, b, c := Point{X: 0, Y: 0}, Point{X: 1, Y: 1}, Point{X: 2, Y: 2}

	assert.True(t, Edge{a, b}.Equal(Edge{b, a}))
	assert.True(t, Edge{a, b}.Equal(Edge{a, b}))
	assert.False(t, Edge{a, b}.Equal(Edge{a, c}))
	assert.Equal(t, Edge{a, b}.Canonical(), Edge{b, a}.Canonical())

	other, ok := Edge{a, b}.Other(b)
	assert.True(t, ok)
	assert.Equal(t, a, other)
	_, ok = Edge{a, b}.Other(c)
	assert.False(t, ok)
}

func BenchmarkDistance(b *testing.B) {
	space := BoundedSpace{Width: 500, Height: 500}
	for b.Loop() {
		_, _ = Distance(space, Point{X: 12, Y: 400}, Point{X: 377, Y: 31})
	}
}
