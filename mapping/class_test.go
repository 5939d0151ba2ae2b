package mapping

import (
	"testing"

	"github.com/pkg/errors"
)

func TestEncodeDecodeClass(t *testing.T) {
	for _, c := range []Class{
		{},
		{Category: CategoryRoad, Subclass: RoadMotorway, Flags: FlagRamp, Direction: Forward},
		{Category: CategoryBuilding, Subclass: BuildingHole, Flags: FlagArea | FlagMultipolygon},
		{Category: CategoryPublic, Subclass: PointFood, Flags: FlagNode},
		{Category: CategoryNone, Subclass: PointStreetLamp},
		{Category: CategoryWater, Subclass: WaterStream, Direction: Backward},
	} {
		got, err := DecodeClass(c.Encode())
		if err != nil {
			t.Errorf("%v: %s", c, err)
			continue
		}
		if got != c {
			t.Errorf("%v != %v", got, c)
		}
	}
}

func TestEncodeCategoriesExclusive(t *testing.T) {
	seen := uint64(0)
	for cat := CategoryRoad; cat < numCategories; cat++ {
		w := Class{Category: cat}.Encode()
		if w&seen != 0 {
			t.Errorf("category %s overlaps with previous categories %#x", cat, w)
		}
		seen |= w
	}
}

func TestDecodeInvalidClass(t *testing.T) {
	for _, w := range []uint64{
		1 << 8,                           // unused bits
		(1 << 16) | (1 << 17),            // road and rail
		3 << 32,                          // direction
		1 << 40,                          // beyond direction
		uint64(1) << (categoryShift + 7), // category bit of numCategories
	} {
		_, err := DecodeClass(w)
		if errors.Cause(err) != ErrInvalidClass {
			t.Errorf("%#x: expected ErrInvalidClass, got %v", w, err)
		}
	}
}

func TestClassString(t *testing.T) {
	c := Class{Category: CategoryRoad, Subclass: 3, Flags: FlagRamp, Direction: Forward}
	if s := c.String(); s != "road/3+ramp forward" {
		t.Error(s)
	}
	if s := (Class{}).String(); s != "none/0" {
		t.Error(s)
	}
}
