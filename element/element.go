package element

import (
	"fmt"

	"github.com/omniscale/osmworld/mapping"
)

// Tags collects the tags of one element. The first value of a key is
// kept.
type Tags map[string]string

func (t *Tags) String() string {
	return fmt.Sprintf("%v", (map[string]string)(*t))
}

// Add sets k to v. It returns false and keeps the current value if k is
// already set.
func (t Tags) Add(k, v string) bool {
	if _, ok := t[k]; ok {
		return false
	}
	t[k] = v
	return true
}

// Reset removes all tags, keeping the allocated map.
func (t Tags) Reset() {
	clear(t)
}

// CoordFactor scales degrees to the fixed point coordinates of Point.
const CoordFactor = 1e7

type Point struct {
	Id     int64         `json:"id"`
	X      int32         `json:"x"`
	Y      int32         `json:"y"`
	Class  mapping.Class `json:"class"`
	Data   uint32        `json:"data,omitempty"`
	NameId uint32        `json:"name_id,omitempty"`
}

// Lon returns the longitude in degrees.
func (p *Point) Lon() float64 {
	return float64(p.X) / CoordFactor
}

// Lat returns the latitude in degrees.
func (p *Point) Lat() float64 {
	return float64(p.Y) / CoordFactor
}

type Way struct {
	Id      int64           `json:"id"`
	Class   mapping.Class   `json:"class"`
	Lanes   mapping.Lanes   `json:"lanes"`
	Parking mapping.Parking `json:"parking,omitempty"`
	// Width in millimeters.
	Width  uint32  `json:"width,omitempty"`
	NameId uint32  `json:"name_id,omitempty"`
	Refs   []int64 `json:"refs"`
}

func (w *Way) IsClosed() bool {
	return len(w.Refs) >= 4 && w.Refs[0] == w.Refs[len(w.Refs)-1]
}

type Role uint8

const (
	RoleNone Role = iota
	RoleOuter
	RoleInner
)

// ParseRole returns the role of a member role attribute. Roles other
// than outer and inner are RoleNone.
func ParseRole(s string) Role {
	switch s {
	case "outer":
		return RoleOuter
	case "inner":
		return RoleInner
	}
	return RoleNone
}

func (r Role) String() string {
	switch r {
	case RoleOuter:
		return "outer"
	case RoleInner:
		return "inner"
	}
	return ""
}

// Member is a way member of a relation. Members of other types are not
// kept.
type Member struct {
	Id   int64 `json:"id"`
	Role Role  `json:"role"`
}

type RelationFlags uint8

const (
	Multipolygon RelationFlags = 1 << iota
	Route
)

// RelationFlagsOf returns the flags for the type tag of a relation.
func RelationFlagsOf(typ string) RelationFlags {
	switch typ {
	case "multipolygon":
		return Multipolygon
	case "route":
		return Route
	}
	return 0
}

type Relation struct {
	// Id is assigned in the order relations are kept, starting with 1.
	Id      int64         `json:"id"`
	Flags   RelationFlags `json:"flags"`
	Class   mapping.Class `json:"class"`
	Members []Member      `json:"members"`
}

// OuterCount returns the number of outer members.
func (r *Relation) OuterCount() int {
	n := 0
	for _, m := range r.Members {
		if m.Role == RoleOuter {
			n++
		}
	}
	return n
}
