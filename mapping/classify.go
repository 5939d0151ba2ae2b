package mapping

type rule struct {
	key    string
	family Family
}

// Tags are applied in this order, a later match replaces the class of an
// earlier one.
var (
	pointRules = []rule{
		{"highway", HighwayPoint},
		{"railway", RailwayPoint},
		{"barrier", Barrier},
		{"natural", Natural},
		{"amenity", Amenity},
		{"shop", Shop},
	}
	wayRules = []rule{
		{"highway", Highway},
		{"railway", Railway},
		{"barrier", barrierWay},
		{"building", Building},
		{"landuse", Landuse},
		{"waterway", Waterway},
		{"natural", Natural},
	}
	multipolygonRules = []rule{
		{"building", Building},
		{"natural", Natural},
		{"landuse", Landuse},
	}
)

// multipolygonCategory is the category of a multipolygon with a known key
// but an unknown value.
var multipolygonCategory = map[Family]Category{
	Building: CategoryBuilding,
	Natural:  CategoryNatural,
	Landuse:  CategoryLanduse,
}

func (m *Mapping) apply(rules []rule, tags map[string]string) Class {
	c := Class{}
	for _, r := range rules {
		v, ok := tags[r.key]
		if !ok {
			continue
		}
		if rc := m.Classify(r.family, v); !rc.IsZero() {
			c = rc
		}
	}
	return c
}

// PointClass returns the class of a node.
func (m *Mapping) PointClass(tags map[string]string) Class {
	return m.apply(pointRules, tags)
}

// WayClass returns the class of a way, including its direction. The
// direction of oneway is used before the one of junction.
func (m *Mapping) WayClass(tags map[string]string) Class {
	c := m.apply(wayRules, tags)
	for _, key := range []string{"oneway", "junction"} {
		v, ok := tags[key]
		if !ok {
			continue
		}
		if c.Direction == Bidirectional {
			c.Direction = DirectionOf(v)
		}
	}
	return c
}

// MultipolygonClass returns the class of a multipolygon relation that is
// copied to its member ways. A building, natural or landuse key sets the
// category even if the value is unknown, the subclass is 0 then. ok is
// false for relations that are not classified at all, like pedestrian
// areas.
func (m *Mapping) MultipolygonClass(tags map[string]string) (c Class, ok bool) {
	if tags["highway"] == "pedestrian" {
		return Class{}, false
	}
	for _, r := range multipolygonRules {
		v, ok := tags[r.key]
		if !ok {
			continue
		}
		rc := m.Classify(r.family, v)
		if rc.IsZero() {
			rc = area(multipolygonCategory[r.family], 0)
		}
		c = rc
	}
	c.Flags |= FlagMultipolygon
	return c, true
}
