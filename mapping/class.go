package mapping

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidClass is returned by DecodeClass for words with unknown or
// conflicting bits.
var ErrInvalidClass = errors.New("invalid class word")

// Category is the feature family of a classified element. Categories of
// different tag families are mutually exclusive.
type Category uint8

const (
	CategoryNone Category = iota
	CategoryRoad
	CategoryRail
	CategoryBuilding
	CategoryLanduse
	CategoryNatural
	CategoryWater
	CategoryPublic

	numCategories = iota
)

var categoryNames = [...]string{
	CategoryNone:     "none",
	CategoryRoad:     "road",
	CategoryRail:     "rail",
	CategoryBuilding: "building",
	CategoryLanduse:  "landuse",
	CategoryNatural:  "natural",
	CategoryWater:    "water",
	CategoryPublic:   "public",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("category(%d)", uint8(c))
}

func parseCategory(s string) (Category, error) {
	for i, name := range categoryNames {
		if name == s {
			return Category(i), nil
		}
	}
	return CategoryNone, errors.Errorf("unknown category '%s'", s)
}

// Flags are modifiers independent of the category.
type Flags uint8

const (
	// FlagNode marks point features.
	FlagNode Flags = 1 << iota
	// FlagArea marks area features.
	FlagArea
	// FlagRamp marks _link road segments.
	FlagRamp
	// FlagMultipolygon marks elements classified through a multipolygon relation.
	FlagMultipolygon

	allFlags = FlagNode | FlagArea | FlagRamp | FlagMultipolygon
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{FlagNode, "node"},
	{FlagArea, "area"},
	{FlagRamp, "ramp"},
	{FlagMultipolygon, "multipolygon"},
}

func (f Flags) String() string {
	names := []string{}
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			names = append(names, fn.name)
		}
	}
	return strings.Join(names, "|")
}

func parseFlag(s string) (Flags, error) {
	for _, fn := range flagNames {
		if fn.name == s {
			return fn.flag, nil
		}
	}
	return 0, errors.Errorf("unknown flag '%s'", s)
}

// Direction of travel on a way.
type Direction uint8

const (
	Bidirectional Direction = iota
	Forward
	Backward
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	}
	return "both"
}

// MaxSubclass is the highest subclass ordinal.
const MaxSubclass = 0x0f

// Class is the classification of a point, way or relation.
type Class struct {
	Category  Category
	Subclass  uint8
	Flags     Flags
	Direction Direction
}

// IsZero reports whether c carries no classification at all.
func (c Class) IsZero() bool {
	return c == Class{}
}

// Has reports whether all of f are set.
func (c Class) Has(f Flags) bool {
	return c.Flags&f == f
}

func (c Class) String() string {
	s := fmt.Sprintf("%s/%d", c.Category, c.Subclass)
	if c.Flags != 0 {
		s += "+" + c.Flags.String()
	}
	if c.Direction != Bidirectional {
		s += " " + c.Direction.String()
	}
	return s
}

// Layout of the encoded class word:
//
//	bits  0-3   subclass ordinal
//	bits 16-22  category, one bit per category
//	bits 24-27  flags
//	bits 32-33  direction
const (
	subclassMask   = 0x0f
	categoryShift  = 16
	categoryMask   = 0x7f << categoryShift
	flagsShift     = 24
	flagsMask      = uint64(allFlags) << flagsShift
	directionShift = 32
	directionMask  = 0x03 << directionShift
)

// Encode packs c into a fixed-width word for storage.
func (c Class) Encode() uint64 {
	w := uint64(c.Subclass & subclassMask)
	if c.Category != CategoryNone {
		w |= 1 << (categoryShift + uint(c.Category) - 1)
	}
	w |= uint64(c.Flags&allFlags) << flagsShift
	w |= uint64(c.Direction&0x03) << directionShift
	return w
}

// DecodeClass unpacks a word created by Class.Encode.
func DecodeClass(w uint64) (Class, error) {
	if w&^(subclassMask|categoryMask|flagsMask|directionMask) != 0 {
		return Class{}, errors.Wrapf(ErrInvalidClass, "unknown bits in %#x", w)
	}
	c := Class{
		Subclass:  uint8(w & subclassMask),
		Flags:     Flags((w & flagsMask) >> flagsShift),
		Direction: Direction((w & directionMask) >> directionShift),
	}
	if c.Direction > Backward {
		return Class{}, errors.Wrapf(ErrInvalidClass, "direction in %#x", w)
	}
	cat := (w & categoryMask) >> categoryShift
	switch bits.OnesCount64(cat) {
	case 0:
	case 1:
		c.Category = Category(bits.TrailingZeros64(cat) + 1)
		if c.Category >= numCategories {
			return Class{}, errors.Wrapf(ErrInvalidClass, "category in %#x", w)
		}
	default:
		return Class{}, errors.Wrapf(ErrInvalidClass, "multiple categories in %#x", w)
	}
	return c, nil
}
