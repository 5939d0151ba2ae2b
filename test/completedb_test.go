package test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/omniscale/osmworld/element"
	"github.com/omniscale/osmworld/mapping"
)

var ts importTestSuite

func TestComplete_Prepare(t *testing.T) {
	var err error
	ts.dir, err = os.MkdirTemp("", "osmworldtest")
	if err != nil {
		t.Fatal(err)
	}
	ts.config = importConfig{
		cacheDir:        filepath.Join(ts.dir, "cache"),
		osmFileName:     "complete_db.osm",
		mappingFileName: "complete_db_mapping.yml",
	}
}

func TestComplete_Import(t *testing.T) {
	ts.importOsm(t)
	ts.readCache(t)

	if ts.stored.PointCount() != 17 {
		t.Error("unexpected point count", ts.stored.PointCount())
	}
	if ts.stored.WayCount() != 10 {
		t.Error("unexpected way count", ts.stored.WayCount())
	}
	if len(ts.stored.Relations()) != 1 {
		t.Error("unexpected relations", ts.stored.Relations())
	}
}

func TestComplete_StoredEqualsImported(t *testing.T) {
	for _, p := range ts.world.Points() {
		if sp := ts.point(t, p.Id); sp != p {
			t.Errorf("point %d: %v != %v", p.Id, sp, p)
		}
	}
	for _, w := range ts.world.Ways() {
		sw := ts.way(t, w.Id)
		if sw.Class != w.Class || len(sw.Refs) != len(w.Refs) {
			t.Errorf("way %d: %v != %v", w.Id, sw, w)
		}
	}
}

func TestComplete_Points(t *testing.T) {
	for _, tc := range []struct {
		id    int64
		class mapping.Class
	}{
		{1, mapping.Class{}},
		{20, mapping.Class{Category: mapping.CategoryPublic, Subclass: mapping.PointFood, Flags: mapping.FlagNode}},
		// first node with the id wins
		{21, mapping.Class{Category: mapping.CategoryRoad, Subclass: mapping.PointSignal, Flags: mapping.FlagNode}},
		// shop after amenity
		{22, mapping.Class{Category: mapping.CategoryPublic, Subclass: mapping.ShopClothes, Flags: mapping.FlagNode}},
		{23, mapping.Class{Category: mapping.CategoryRail, Subclass: mapping.PointStop, Flags: mapping.FlagNode}},
		// from mapping file
		{24, mapping.Class{Category: mapping.CategoryPublic, Subclass: 7, Flags: mapping.FlagNode}},
	} {
		if p := ts.point(t, tc.id); p.Class != tc.class {
			t.Errorf("point %d: %v != %v", tc.id, p.Class, tc.class)
		}
	}

	p := ts.point(t, 20)
	if p.X != 85000000 || p.Y != 535000000 {
		t.Error("unexpected coords", p)
	}
	if ts.name(t, p.NameId) != "Café Central" {
		t.Error("unexpected name", p.NameId)
	}
}

func TestComplete_Ways(t *testing.T) {
	building := mapping.CategoryBuilding
	for _, tc := range []struct {
		id    int64
		class mapping.Class
	}{
		{100, mapping.Class{Category: mapping.CategoryRoad, Subclass: mapping.RoadPrimary, Direction: mapping.Forward}},
		// oneway=no does not stop junction=roundabout
		{101, mapping.Class{Category: mapping.CategoryRoad, Subclass: mapping.RoadResidential, Direction: mapping.Forward}},
		{102, mapping.Class{Category: mapping.CategoryRoad, Subclass: mapping.RoadMotorway, Flags: mapping.FlagRamp}},
		{103, mapping.Class{Category: building, Subclass: mapping.BuildingCar, Flags: mapping.FlagArea}},
		// from mapping file
		{104, mapping.Class{Category: mapping.CategoryRoad, Subclass: mapping.RoadService}},
		// outer rings of the kept multipolygon
		{110, mapping.Class{Category: building, Subclass: mapping.BuildingHouse, Flags: mapping.FlagMultipolygon}},
		{111, mapping.Class{Category: building, Subclass: mapping.BuildingHouse, Flags: mapping.FlagMultipolygon}},
		{112, mapping.Class{Category: building, Subclass: mapping.BuildingHole, Flags: mapping.FlagArea | mapping.FlagMultipolygon}},
		// single outer, retagged but not kept
		{113, mapping.Class{Category: mapping.CategoryLanduse, Subclass: mapping.LanduseWood, Flags: mapping.FlagArea | mapping.FlagMultipolygon}},
		// pedestrian area, unchanged
		{114, mapping.Class{Category: mapping.CategoryRoad, Subclass: mapping.RoadFootway}},
	} {
		if w := ts.way(t, tc.id); w.Class != tc.class {
			t.Errorf("way %d: %v != %v", tc.id, w.Class, tc.class)
		}
	}
}

func TestComplete_WayAttributes(t *testing.T) {
	w := ts.way(t, 100)
	if w.Lanes != (mapping.Lanes{Total: 3, Forward: 2}) {
		t.Error("unexpected lanes", w.Lanes)
	}
	if w.Width != 7500 {
		t.Error("unexpected width", w.Width)
	}
	if len(w.Refs) != 2 || w.Refs[0] != 1 || w.Refs[1] != 2 {
		t.Error("unexpected refs", w.Refs)
	}

	w = ts.way(t, 101)
	expected := mapping.ParkingDiagonalRight | mapping.ParkingMarkingRight | mapping.ParkingNoLeft
	if w.Parking != expected {
		t.Errorf("unexpected parking %b != %b", w.Parking, expected)
	}
}

func TestComplete_Names(t *testing.T) {
	e, ok := ts.stored.NameEntry("Hauptstraße")
	if !ok {
		t.Fatal("name not found")
	}
	if e.Count != 3 {
		t.Error("unexpected count", e)
	}
	for _, id := range []int64{100, 101} {
		if w := ts.way(t, id); w.NameId != e.Id {
			t.Errorf("way %d: name id %d != %d", id, w.NameId, e.Id)
		}
	}
	if p := ts.point(t, 23); p.NameId != e.Id {
		t.Errorf("point 23: name id %d != %d", p.NameId, e.Id)
	}
}

func TestComplete_Relations(t *testing.T) {
	rels := ts.stored.Relations()
	if len(rels) != 1 {
		t.Fatal(rels)
	}
	rel := rels[0]
	if rel.Id != 1 || rel.Flags != element.Multipolygon {
		t.Error("unexpected relation", rel)
	}
	if rel.Class.Category != mapping.CategoryBuilding || !rel.Class.Has(mapping.FlagMultipolygon) {
		t.Error("unexpected class", rel.Class)
	}
	// node member is not kept
	if len(rel.Members) != 3 || rel.OuterCount() != 2 {
		t.Error("unexpected members", rel.Members)
	}
}

func TestComplete_Cleanup(t *testing.T) {
	if err := os.RemoveAll(ts.dir); err != nil {
		t.Error(err)
	}
}
