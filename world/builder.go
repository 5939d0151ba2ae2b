// Package world collects classified points, ways and relations of one
// import run and materializes them into an element.World.
package world

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/omniscale/osmworld/element"
	"github.com/omniscale/osmworld/logging"
	"github.com/omniscale/osmworld/mapping"
	"github.com/omniscale/osmworld/stats"
)

var log = logging.NewLogger("world")

// Builder holds the parse state of one import run. Parsers call AddPoint,
// AddWay and AddRelation in stream order and Materialize at the end.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	mapping   *mapping.Mapping
	metrics   *stats.Metrics
	names     *element.NameTable
	points    map[int64]element.Point
	ways      map[int64]element.Way
	relations []element.Relation
}

// NewBuilder returns a Builder that classifies with m. metrics may be
// nil.
func NewBuilder(m *mapping.Mapping, metrics *stats.Metrics) *Builder {
	if m == nil {
		m = mapping.Default()
	}
	b := &Builder{
		mapping: m,
		metrics: metrics,
	}
	b.reset()
	return b
}

func (b *Builder) reset() {
	b.names = element.NewNameTable()
	b.points = make(map[int64]element.Point)
	b.ways = make(map[int64]element.Way)
	b.relations = nil
}

// Metrics returns the metrics passed to NewBuilder.
func (b *Builder) Metrics() *stats.Metrics {
	return b.metrics
}

// ResetNames restarts the name id sequence at 1, unless names were
// interned already.
func (b *Builder) ResetNames() {
	b.names.ResetCounter()
}

func (b *Builder) intern(tags element.Tags) uint32 {
	name, ok := tags["name"]
	if !ok {
		return 0
	}
	return b.names.Intern(name)
}

// AddPoint classifies p by its tags and adds it. Points with an id <= 0
// are ignored. Only the first point with an id is kept.
func (b *Builder) AddPoint(p element.Point, tags element.Tags) bool {
	p.Class = b.mapping.PointClass(tags)
	p.Data = 0
	p.NameId = b.intern(tags)
	if p.Id <= 0 {
		b.metrics.Dropped("point", "id")
		return false
	}
	if _, ok := b.points[p.Id]; ok {
		log.Warnf("double use of node %d", p.Id)
		b.metrics.Warn("world", stats.ReasonDuplicateId)
		b.metrics.Dropped("point", stats.ReasonDuplicateId)
		return false
	}
	b.points[p.Id] = p
	b.metrics.AddPoints(1)
	return true
}

// AddWay classifies w by its tags and adds it. The builder takes
// ownership of w.Refs. Ways with an id <= 0 are ignored. Only the first
// way with an id is kept.
func (b *Builder) AddWay(w element.Way, tags element.Tags) bool {
	w.Class = b.mapping.WayClass(tags)
	w.Lanes = mapping.LanesFromTags(tags)
	w.Parking = mapping.ParkingFromTags(tags)
	w.Width = 0
	if v, ok := tags["width"]; ok {
		w.Width = mapping.WidthFromTag(v)
	}
	w.NameId = b.intern(tags)
	if w.Id <= 0 {
		b.metrics.Dropped("way", "id")
		return false
	}
	if _, ok := b.ways[w.Id]; ok {
		log.Warnf("double use of way %d", w.Id)
		b.metrics.Warn("world", stats.ReasonDuplicateId)
		b.metrics.Dropped("way", stats.ReasonDuplicateId)
		return false
	}
	b.ways[w.Id] = w
	b.metrics.AddWays(1)
	return true
}

// Materialize moves all points, ways and kept relations into a new World.
// Points and ways are sorted by id. The Builder is empty afterwards and
// can be reused for another run.
func (b *Builder) Materialize() *element.World {
	pointIds := maps.Keys(b.points)
	slices.Sort(pointIds)
	points := make([]element.Point, 0, len(pointIds))
	for _, id := range pointIds {
		points = append(points, b.points[id])
	}

	wayIds := maps.Keys(b.ways)
	slices.Sort(wayIds)
	ways := make([]element.Way, 0, len(wayIds))
	for _, id := range wayIds {
		ways = append(ways, b.ways[id])
	}

	b.metrics.SetNames(b.names.Len())
	w := element.NewWorld(points, ways, b.relations, b.names)
	log.Printf("points: %d ways: %d relations: %d names: %d",
		w.PointCount(), w.WayCount(), len(w.Relations()), b.names.Len())

	b.reset()
	return w
}
