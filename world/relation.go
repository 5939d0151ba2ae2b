package world

import (
	"github.com/omniscale/osmworld/element"
	"github.com/omniscale/osmworld/mapping"
)

// Results of AddRelation, as counted in the metrics.
const (
	Kept        = "kept"
	SingleOuter = "single_outer"
	Rejected    = "rejected"
	RouteOnly   = "route"
	Ignored     = "ignored"
)

// AddRelation resolves a relation against the ways added so far. members
// only contain way members. Multipolygons copy their class to all member
// ways, if it has a category; they are kept only if they have at least
// two outer rings.
func (b *Builder) AddRelation(members []element.Member, tags element.Tags) string {
	flags := element.RelationFlagsOf(tags["type"])
	result := Ignored
	switch {
	case flags&element.Multipolygon != 0:
		result = b.resolveMultipolygon(members, tags)
	case flags&element.Route != 0:
		result = RouteOnly
	}
	b.metrics.Resolved(result)
	return result
}

func (b *Builder) resolveMultipolygon(members []element.Member, tags element.Tags) string {
	class, ok := b.mapping.MultipolygonClass(tags)
	if !ok {
		return Rejected
	}
	if class.Category != mapping.CategoryNone {
		b.retagMembers(members, class)
	}

	rel := element.Relation{
		Flags:   element.Multipolygon,
		Class:   class,
		Members: members,
	}
	if rel.OuterCount() < 2 {
		return SingleOuter
	}

	// the relation is the area, not the single rings
	for _, m := range members {
		if m.Role != element.RoleOuter {
			continue
		}
		if w, ok := b.ways[m.Id]; ok {
			w.Class.Flags &^= mapping.FlagArea
			b.ways[m.Id] = w
		}
	}
	rel.Id = int64(len(b.relations) + 1)
	b.relations = append(b.relations, rel)
	b.metrics.AddRelations(1)
	return Kept
}

func (b *Builder) retagMembers(members []element.Member, class mapping.Class) {
	for _, m := range members {
		w, ok := b.ways[m.Id]
		if !ok {
			continue
		}
		prev := w.Class
		w.Class = class
		if m.Role == element.RoleInner {
			w.Class.Subclass = innerSubclass(class.Category, prev)
		}
		b.ways[m.Id] = w
	}
}

// innerSubclass returns the subclass of an inner ring. Building holes
// have their own subclass, natural and landuse rings keep the subclass
// the way had before.
func innerSubclass(cat mapping.Category, prev mapping.Class) uint8 {
	if cat == mapping.CategoryBuilding {
		return mapping.BuildingHole
	}
	if prev.Subclass != 0 {
		return prev.Subclass
	}
	return mapping.NaturalInner
}
