package graph

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"

	"knn_search/pkg/geo"
)

// DefaultMaxAttempts bounds the random draws spent on a single point.
const DefaultMaxAttempts = 1000

// BuildStats summarises a Build run.
type BuildStats struct {
	Points          int
	Edges           int
	Collisions      int // random draws rejected as duplicate points
	DuplicateEdges  int // neighbour edges already present from the other side
	ShortNeighbours int // points that ran out of strictly farther candidates
	Elapsed         time.Duration
}

// Builder populates a graph with random points and greedy nearest-neighbour edges.
type Builder struct {
	rng         *rand.Rand
	maxAttempts int
	logger      zerolog.Logger

	stats BuildStats
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithSeed makes point generation deterministic.
func WithSeed(seed uint64) BuilderOption {
	return func(b *Builder) { b.rng = rand.New(rand.NewPCG(seed, seed)) }
}

// WithRand uses r as the source of coordinates.
func WithRand(r *rand.Rand) BuilderOption {
	return func(b *Builder) { b.rng = r }
}

// WithMaxAttempts caps the draws per point before ErrSpaceSaturated.
func WithMaxAttempts(n int) BuilderOption {
	return func(b *Builder) { b.maxAttempts = n }
}

// WithLogger sets the build progress logger.
func WithLogger(l zerolog.Logger) BuilderOption {
	return func(b *Builder) { b.logger = l }
}

// NewBuilder creates a builder. Without WithSeed or WithRand the generator is
// seeded from the clock.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		maxAttempts: DefaultMaxAttempts,
		logger:      zerolog.Nop(),
	}
	for _, o := range opts {
		o(b)
	}
	if b.rng == nil {
		seed := uint64(time.Now().UnixNano())
		b.rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if b.maxAttempts <= 0 {
		b.maxAttempts = DefaultMaxAttempts
	}
	return b
}

// Stats returns the statistics of the last Build.
func (b *Builder) Stats() BuildStats { return b.stats }

// Build is a shorthand for NewBuilder(opts...).Build(space, v, k).
func Build(space geo.BoundedSpace, v, k int, opts ...BuilderOption) (*Graph, error) {
	return NewBuilder(opts...).Build(space, v, k)
}

// Build creates a graph with v random points, each connected to up to k
// successively farther nearest neighbours.
func (b *Builder) Build(space geo.BoundedSpace, v, k int) (*Graph, error) {
	if _, err := geo.NewBoundedSpace(space.Width, space.Height); err != nil {
		return nil, err
	}
	if v < 0 || k < 0 {
		return nil, fmt.Errorf("%w: v=%d k=%d", ErrInvalidParameter, v, k)
	}
	if v > space.Capacity() {
		return nil, fmt.Errorf("%w: %d points requested, space holds %d", ErrSpaceSaturated, v, space.Capacity())
	}
	if v > 0 && k > v-1 {
		return nil, fmt.Errorf("%w: k=%d with %d points", ErrTooFewPoints, k, v)
	}

	start := time.Now()
	b.stats = BuildStats{}
	b.logger.Info().Int("points", v).Int("k", k).
		Int("width", space.Width).Int("height", space.Height).
		Msg("building knn graph")

	g := New(space)

	// Step 1: random points.
	for i := 0; i < v; i++ {
		if err := b.addRandomPoint(g); err != nil {
			return nil, err
		}
	}

	// Step 2: k greedy rounds per point, in insertion order.
	for i := 0; i < g.NumPoints(); i++ {
		if err := b.connect(g, g.Point(i), k); err != nil {
			return nil, err
		}
	}

	b.stats.Points = g.NumPoints()
	b.stats.Edges = g.NumEdges()
	b.stats.Elapsed = time.Since(start)
	b.logger.Info().Int("points", b.stats.Points).Int("edges", b.stats.Edges).
		Int("collisions", b.stats.Collisions).Int("duplicate_edges", b.stats.DuplicateEdges).
		Dur("elapsed", b.stats.Elapsed).
		Msg("knn graph built")
	return g, nil
}

func (b *Builder) addRandomPoint(g *Graph) error {
	space := g.Space()
	for attempt := 0; attempt < b.maxAttempts; attempt++ {
		p := geo.Point{X: b.rng.IntN(space.Width + 1), Y: b.rng.IntN(space.Height + 1)}
		err := g.AddPoint(p)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrDuplicatePoint) {
			return err
		}
		b.stats.Collisions++
	}
	return fmt.Errorf("%w: gave up after %d draws with %d points placed", ErrSpaceSaturated, b.maxAttempts, g.NumPoints())
}

func (b *Builder) connect(g *Graph, p geo.Point, k int) error {
	minDist := 0.0
	for round := 0; round < k; round++ {
		n, d, err := g.NearestNeighbour(p, minDist)
		if errors.Is(err, ErrNoNeighbour) {
			b.stats.ShortNeighbours++
			b.logger.Debug().Stringer("point", p).Int("round", round).Msg("no farther neighbour left")
			return nil
		}
		if err != nil {
			return err
		}
		minDist = d

		err = g.AddEdge(geo.Edge{P1: p, P2: n})
		if errors.Is(err, ErrDuplicateEdge) {
			b.stats.DuplicateEdges++
			b.logger.Debug().Stringer("point", p).Stringer("neighbour", n).Msg("edge already present")
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}
