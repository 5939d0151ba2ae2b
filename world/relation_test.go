package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omniscale/osmworld/element"
	"github.com/omniscale/osmworld/mapping"
)

func addWays(b *Builder, tags element.Tags, ids ...int64) {
	for _, id := range ids {
		b.AddWay(element.Way{Id: id, Refs: []int64{1, 2, 3, 1}}, tags)
	}
}

func TestMultipolygonSingleOuter(t *testing.T) {
	b := NewBuilder(nil, nil)
	addWays(b, element.Tags{}, 1, 2)

	result := b.AddRelation([]element.Member{
		{Id: 1, Role: element.RoleOuter},
		{Id: 2, Role: element.RoleInner},
		{Id: 99, Role: element.RoleOuter}, // not in way map
	}, element.Tags{"type": "multipolygon", "building": "house"})
	assert.Equal(t, SingleOuter, result)

	w := b.Materialize()
	assert.Empty(t, w.Relations())

	house := mapping.Class{
		Category: mapping.CategoryBuilding,
		Subclass: mapping.BuildingHouse,
		Flags:    mapping.FlagArea | mapping.FlagMultipolygon,
	}
	outer, _ := w.Way(1)
	assert.Equal(t, house, outer.Class)
	inner, _ := w.Way(2)
	hole := house
	hole.Subclass = mapping.BuildingHole
	assert.Equal(t, hole, inner.Class)
}

func TestMultipolygonMultipleOuter(t *testing.T) {
	b := NewBuilder(nil, nil)
	addWays(b, element.Tags{"building": "yes"}, 1, 2, 3)

	result := b.AddRelation([]element.Member{
		{Id: 1, Role: element.RoleOuter},
		{Id: 2, Role: element.RoleOuter},
		{Id: 3, Role: element.RoleInner},
	}, element.Tags{"type": "multipolygon", "building": "house"})
	assert.Equal(t, Kept, result)

	w := b.Materialize()
	require.Len(t, w.Relations(), 1)
	rel := w.Relations()[0]
	assert.Equal(t, int64(1), rel.Id)
	assert.Equal(t, element.Multipolygon, rel.Flags)
	assert.Equal(t, mapping.CategoryBuilding, rel.Class.Category)
	assert.Len(t, rel.Members, 3)

	for _, id := range []int64{1, 2} {
		way, _ := w.Way(id)
		assert.Equal(t, mapping.CategoryBuilding, way.Class.Category)
		assert.Equal(t, uint8(mapping.BuildingHouse), way.Class.Subclass)
		assert.True(t, way.Class.Has(mapping.FlagMultipolygon))
		// the relation carries the area
		assert.False(t, way.Class.Has(mapping.FlagArea))
	}
	inner, _ := w.Way(3)
	assert.Equal(t, uint8(mapping.BuildingHole), inner.Class.Subclass)
	assert.True(t, inner.Class.Has(mapping.FlagArea))
}

func TestMultipolygonNaturalInner(t *testing.T) {
	b := NewBuilder(nil, nil)
	addWays(b, element.Tags{}, 1)
	addWays(b, element.Tags{"natural": "water"}, 2)
	addWays(b, element.Tags{}, 3)

	b.AddRelation([]element.Member{
		{Id: 1, Role: element.RoleOuter},
		{Id: 2, Role: element.RoleInner},
		{Id: 3, Role: element.RoleInner},
	}, element.Tags{"type": "multipolygon", "natural": "wood"})
	w := b.Materialize()

	outer, _ := w.Way(1)
	assert.Equal(t, uint8(mapping.NaturalWood), outer.Class.Subclass)
	water, _ := w.Way(2)
	assert.Equal(t, mapping.CategoryNatural, water.Class.Category)
	assert.Equal(t, uint8(mapping.NaturalWater), water.Class.Subclass)
	plain, _ := w.Way(3)
	assert.Equal(t, uint8(mapping.NaturalInner), plain.Class.Subclass)
}

func TestMultipolygonRejectedAndIgnored(t *testing.T) {
	b := NewBuilder(nil, nil)
	addWays(b, element.Tags{"highway": "footway"}, 1, 2)
	members := []element.Member{
		{Id: 1, Role: element.RoleOuter},
		{Id: 2, Role: element.RoleOuter},
	}

	assert.Equal(t, Rejected, b.AddRelation(members,
		element.Tags{"type": "multipolygon", "highway": "pedestrian", "building": "yes"}))
	assert.Equal(t, RouteOnly, b.AddRelation(members,
		element.Tags{"type": "route", "route": "bus"}))
	assert.Equal(t, Ignored, b.AddRelation(members,
		element.Tags{"type": "boundary"}))

	w := b.Materialize()
	assert.Empty(t, w.Relations())
	for _, way := range w.Ways() {
		assert.Equal(t, mapping.Class{Category: mapping.CategoryRoad, Subclass: mapping.RoadFootway}, way.Class)
	}
}

func TestMultipolygonWithoutKnownClass(t *testing.T) {
	for _, tc := range []struct {
		tags     element.Tags
		expected mapping.Class
	}{
		// no category, members are unchanged
		{element.Tags{"type": "multipolygon", "amenity": "parking"},
			mapping.Class{Category: mapping.CategoryRoad, Subclass: mapping.RoadFootway}},
		{element.Tags{"type": "multipolygon", "natural": "heath"},
			mapping.Class{Category: mapping.CategoryNatural, Flags: mapping.FlagMultipolygon}},
		{element.Tags{"type": "multipolygon", "landuse": "quarry"},
			mapping.Class{Category: mapping.CategoryLanduse, Flags: mapping.FlagMultipolygon}},
	} {
		b := NewBuilder(nil, nil)
		addWays(b, element.Tags{"highway": "footway"}, 1, 2)
		result := b.AddRelation([]element.Member{
			{Id: 1, Role: element.RoleOuter},
			{Id: 2, Role: element.RoleOuter},
		}, tc.tags)
		assert.Equal(t, Kept, result, "%v", tc.tags)

		w := b.Materialize()
		require.Len(t, w.Relations(), 1, "%v", tc.tags)
		rel := w.Relations()[0]
		assert.Equal(t, 2, rel.OuterCount())
		if tc.expected.Category == mapping.CategoryNone {
			assert.Equal(t, mapping.Class{Flags: mapping.FlagMultipolygon}, rel.Class)
		} else {
			assert.Equal(t, tc.expected.Category, rel.Class.Category, "%v", tc.tags)
		}

		// outer rings lose their area flag to the relation
		for _, id := range []int64{1, 2} {
			way, _ := w.Way(id)
			assert.Equal(t, tc.expected, way.Class, "%v way %d", tc.tags, id)
		}
	}
}

func TestKeptRelationIds(t *testing.T) {
	b := NewBuilder(nil, nil)
	addWays(b, element.Tags{}, 1, 2, 3, 4)
	for _, ids := range [][2]int64{{1, 2}, {3, 4}} {
		b.AddRelation([]element.Member{
			{Id: ids[0], Role: element.RoleOuter},
			{Id: ids[1], Role: element.RoleOuter},
		}, element.Tags{"type": "multipolygon", "landuse": "forest"})
	}
	w := b.Materialize()
	require.Len(t, w.Relations(), 2)
	assert.Equal(t, int64(1), w.Relations()[0].Id)
	assert.Equal(t, int64(2), w.Relations()[1].Id)
}
