package element

import "sort"

// World is the result of one import run. Points and ways are sorted by
// id. A World is not modified after it was created and is safe for
// concurrent reads.
type World struct {
	points    []Point
	ways      []Way
	relations []Relation
	names     *NameTable
}

// NewWorld takes ownership of the slices and the name table. points and
// ways need to be sorted by id.
func NewWorld(points []Point, ways []Way, relations []Relation, names *NameTable) *World {
	if names == nil {
		names = NewNameTable()
	}
	return &World{
		points:    points,
		ways:      ways,
		relations: relations,
		names:     names,
	}
}

func (w *World) Points() []Point       { return w.points }
func (w *World) Ways() []Way           { return w.ways }
func (w *World) Relations() []Relation { return w.relations }
func (w *World) PointCount() int       { return len(w.points) }
func (w *World) WayCount() int         { return len(w.ways) }

// Point returns the point with id.
func (w *World) Point(id int64) (Point, bool) {
	i := sort.Search(len(w.points), func(i int) bool {
		return w.points[i].Id >= id
	})
	if i < len(w.points) && w.points[i].Id == id {
		return w.points[i], true
	}
	return Point{}, false
}

// Way returns the way with id.
func (w *World) Way(id int64) (Way, bool) {
	i := sort.Search(len(w.ways), func(i int) bool {
		return w.ways[i].Id >= id
	})
	if i < len(w.ways) && w.ways[i].Id == id {
		return w.ways[i], true
	}
	return Way{}, false
}

// Name returns the name for a NameId of a point or way.
func (w *World) Name(id uint32) (string, bool) {
	return w.names.Name(id)
}

// NameEntry returns the id and usage count of name.
func (w *World) NameEntry(name string) (NameEntry, bool) {
	return w.names.Entry(name)
}

// Names calls fn for all interned names.
func (w *World) Names(fn func(name string, e NameEntry)) {
	w.names.Each(fn)
}
