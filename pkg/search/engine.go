// Package search runs best-first traversals over a knn graph. The goal test
// happens when a neighbour is generated, not when it is dequeued, and the
// output is the expansion trace rather than a reconstructed path.
package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"knn_search/pkg/geo"
	"knn_search/pkg/graph"
)

// ErrExpansionLimit is returned when a search expands more nodes than allowed.
var ErrExpansionLimit = errors.New("search: expansion limit reached")

// State is the engine's position in its run.
type State int

const (
	Ready State = iota
	Running
	Found
	Exhausted
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Running:
		return "running"
	case Found:
		return "found"
	case Exhausted:
		return "exhausted"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Engine is a best-first search toward a fixed destination, parameterised by
// a Strategy. An Engine is not safe for concurrent use.
type Engine struct {
	strategy    Strategy
	destination geo.Point

	maxExpansions int
	logger        zerolog.Logger

	queue      *Queue
	visited    []geo.Point
	visitedSet map[geo.Point]struct{}
	frame      Frame
	state      State
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxExpansions stops a search after n expansions with ErrExpansionLimit.
// Zero means unlimited.
func WithMaxExpansions(n int) Option {
	return func(e *Engine) { e.maxExpansions = n }
}

// WithLogger logs expansions at debug level.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates an engine searching for destination.
func NewEngine(strategy Strategy, destination geo.Point, opts ...Option) *Engine {
	e := &Engine{
		strategy:    strategy,
		destination: destination,
		logger:      zerolog.Nop(),
		queue:       NewQueue(),
		visitedSet:  make(map[geo.Point]struct{}),
		frame:       Frame{Destination: destination},
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

func (e *Engine) Strategy() Strategy { return e.strategy }

func (e *Engine) Destination() geo.Point { return e.destination }

func (e *Engine) State() State { return e.state }

// Found reports whether the last search reached the destination.
func (e *Engine) Found() bool { return e.state == Found }

// Visited returns the expanded points in expansion order.
func (e *Engine) Visited() []geo.Point {
	out := make([]geo.Point, len(e.visited))
	copy(out, e.visited)
	return out
}

// Expanded is the number of points expanded so far.
func (e *Engine) Expanded() int { return len(e.visited) }

// Travelled is the distance accumulated across expansions.
func (e *Engine) Travelled() float64 { return e.frame.Travelled }

func (e *Engine) reset() {
	e.queue.Reset()
	e.visited = e.visited[:0]
	clear(e.visitedSet)
	e.frame = Frame{Destination: e.destination}
	e.state = Ready
}

// Search runs from start until the destination is generated as a neighbour
// (true) or the frontier runs dry (false). Each call starts a fresh run.
func (e *Engine) Search(ctx context.Context, start geo.Point, g *graph.Graph) (bool, error) {
	e.reset()

	priority, err := e.strategy.Priority(start, e.frame, g)
	if err != nil {
		return false, fmt.Errorf("price start %v: %w", start, err)
	}
	e.queue.Insert(Entry{X: start.X, Y: start.Y, Priority: priority})
	e.state = Running
	e.logger.Debug().Str("strategy", e.strategy.Name()).
		Stringer("start", start).Stringer("destination", e.destination).
		Msg("search started")

	iterations := 0
	for {
		// Check context cancellation periodically.
		iterations++
		if iterations%100 == 0 {
			if err := ctx.Err(); err != nil {
				return false, err
			}
		}

		entry, err := e.queue.Remove()
		if errors.Is(err, ErrEmptyQueue) {
			e.state = Exhausted
			e.logger.Debug().Int("expanded", len(e.visited)).Msg("search exhausted")
			return false, nil
		}
		current := geo.Point{X: entry.X, Y: entry.Y}

		before := len(e.visited)
		found, err := e.Step(current, g)
		if err != nil {
			return false, err
		}
		if found {
			return true, nil
		}

		if len(e.visited) > before {
			next, ok := e.queue.Peek()
			if !ok {
				continue
			}
			// A drained frontier exhausts normally on the next iteration.
			if e.maxExpansions > 0 && len(e.visited) >= e.maxExpansions {
				return false, fmt.Errorf("%w: %d", ErrExpansionLimit, e.maxExpansions)
			}
			d, err := g.Distance(current, geo.Point{X: next.X, Y: next.Y})
			if err != nil {
				return false, err
			}
			e.frame.Travelled += d
		}
	}
}

// Step expands current: it is recorded as visited and its unseen neighbours
// are queued. It returns true as soon as the destination is among them.
// Stepping an already visited point is a no-op.
func (e *Engine) Step(current geo.Point, g *graph.Graph) (bool, error) {
	if _, seen := e.visitedSet[current]; seen {
		return false, nil
	}
	e.state = Running
	e.visited = append(e.visited, current)
	e.visitedSet[current] = struct{}{}
	e.frame.Current = current
	e.frame.HasCurrent = true
	e.logger.Debug().Stringer("point", current).Int("expanded", len(e.visited)).Msg("expanding")

	for _, n := range g.Neighbours(current) {
		if n == e.destination {
			e.state = Found
			e.logger.Debug().Stringer("via", current).Int("expanded", len(e.visited)).Msg("destination found")
			return true, nil
		}
		if _, seen := e.visitedSet[n]; seen {
			continue
		}
		priority, err := e.strategy.Priority(n, e.frame, g)
		if err != nil {
			return false, fmt.Errorf("price %v: %w", n, err)
		}
		if e.queue.Contains(n.X, n.Y, priority) {
			continue
		}
		e.queue.Insert(Entry{X: n.X, Y: n.Y, Priority: priority})
	}
	return false, nil
}
