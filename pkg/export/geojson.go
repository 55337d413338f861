// Package export renders graphs and search traces as GeoJSON for external
// plotting tools. Coordinates are emitted as planar (x, y) pairs.
package export

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"knn_search/pkg/geo"
	"knn_search/pkg/graph"
)

// Feature kinds, stored in the "kind" property.
const (
	KindPoint       = "point"
	KindEdge        = "edge"
	KindTrace       = "trace"
	KindStart       = "start"
	KindDestination = "destination"
)

// Trace is a finished search to overlay on the graph.
type Trace struct {
	Strategy    string
	Start       geo.Point
	Destination geo.Point
	Found       bool
	Visited     []geo.Point
}

// Graph renders every point and edge of g, points first, each in insertion
// order.
func Graph(g *graph.Graph) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i, p := range g.Points() {
		f := geojson.NewFeature(p.Orb())
		f.Properties["kind"] = KindPoint
		f.Properties["index"] = i
		fc.Append(f)
	}
	for _, e := range g.Edges() {
		f := geojson.NewFeature(orb.LineString{e.P1.Orb(), e.P2.Orb()})
		f.Properties["kind"] = KindEdge
		fc.Append(f)
	}
	return fc
}

// WithTrace renders g plus the start and destination markers and the visited
// sequence as a line string. Traces too short for a line string are emitted
// as a point (one expansion) or an empty multi point (none).
func WithTrace(g *graph.Graph, t Trace) *geojson.FeatureCollection {
	fc := Graph(g)

	start := geojson.NewFeature(t.Start.Orb())
	start.Properties["kind"] = KindStart
	fc.Append(start)

	dest := geojson.NewFeature(t.Destination.Orb())
	dest.Properties["kind"] = KindDestination
	fc.Append(dest)

	trace := geojson.NewFeature(traceGeometry(t.Visited))
	trace.Properties["kind"] = KindTrace
	trace.Properties["strategy"] = t.Strategy
	trace.Properties["found"] = t.Found
	trace.Properties["expanded"] = len(t.Visited)
	fc.Append(trace)

	return fc
}

func traceGeometry(visited []geo.Point) orb.Geometry {
	switch len(visited) {
	case 0:
		return orb.MultiPoint{}
	case 1:
		return visited[0].Orb()
	}
	ls := make(orb.LineString, 0, len(visited))
	for _, p := range visited {
		ls = append(ls, p.Orb())
	}
	return ls
}
