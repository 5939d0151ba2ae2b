package mapping

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Family is the tag key (or key and element kind) a classifier table
// is used for.
type Family string

const (
	Highway  Family = "highway"
	Railway  Family = "railway"
	Barrier  Family = "barrier"
	Building Family = "building"
	Landuse  Family = "landuse"
	Natural  Family = "natural"
	Waterway Family = "waterway"

	// HighwayPoint and RailwayPoint classify highway and railway tags of
	// nodes.
	HighwayPoint Family = "highway_point"
	RailwayPoint Family = "railway_point"
	Amenity      Family = "amenity"
	Shop         Family = "shop"

	// barrierWay classifies barriers on ways. All known barriers share
	// one road subclass.
	barrierWay Family = "barrier_way"
)

var families = []Family{
	Highway, Railway, Barrier, Building, Landuse, Natural, Waterway,
	HighwayPoint, RailwayPoint, Amenity, Shop,
}

// Table maps tag values to classes.
type Table map[string]Class

// Mapping holds the classifier tables of one import run. It is not
// modified after NewMapping or Default returned.
type Mapping struct {
	tables map[Family]Table
}

// Default returns a mapping with the built-in tables.
func Default() *Mapping {
	return &Mapping{tables: defaultTables()}
}

// Classify returns the class for a single tag value of family f. Unknown
// values return the zero Class, except for buildings which fall back to a
// generic building area.
func (m *Mapping) Classify(f Family, value string) Class {
	if c, ok := m.tables[f][value]; ok {
		return c
	}
	switch f {
	case barrierWay:
		if _, ok := m.tables[Barrier][value]; ok {
			return plain(CategoryRoad, RoadBarrier)
		}
		return Class{}
	case Highway:
		return classifyRoad(value)
	case Building:
		return genericBuilding
	}
	return Class{}
}

func classifyRoad(value string) Class {
	c := Class{}
	if strings.HasSuffix(value, "_link") {
		c.Flags |= FlagRamp
	}
	for _, p := range roadPrefixes {
		if strings.HasPrefix(value, p.prefix) {
			c.Category = CategoryRoad
			c.Subclass = p.subclass
			return c
		}
	}
	return Class{}
}

type classConfig struct {
	Category string   `yaml:"category"`
	Subclass uint8    `yaml:"subclass"`
	Flags    []string `yaml:"flags"`
}

type mappingConfig struct {
	Classes map[Family]map[string]classConfig `yaml:"classes"`
}

// NewMapping returns the built-in tables merged with the classes of the
// YAML file. Entries of the file replace built-in entries with the same
// family and value.
//
//	classes:
//	  highway:
//	    busway: {category: road, subclass: 9}
//	  building:
//	    shed: {category: building, subclass: 1, flags: [area]}
func NewMapping(filename string) (*Mapping, error) {
	f, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "reading mapping")
	}
	m, err := New(f)
	if err != nil {
		return nil, errors.Wrapf(err, "mapping %s", filename)
	}
	return m, nil
}

// New returns the built-in tables merged with the classes of the YAML
// document.
func New(b []byte) (*Mapping, error) {
	m := Default()
	if err := m.merge(b); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Mapping) merge(data []byte) error {
	conf := mappingConfig{}
	if err := yaml.UnmarshalStrict(data, &conf); err != nil {
		return err
	}
	for family, values := range conf.Classes {
		if !knownFamily(family) {
			return errors.Errorf("unknown family '%s'", family)
		}
		for value, cc := range values {
			c, err := cc.class()
			if err != nil {
				return errors.Wrapf(err, "%s=%s", family, value)
			}
			m.tables[family][value] = c
		}
	}
	return nil
}

func (cc classConfig) class() (Class, error) {
	cat, err := parseCategory(cc.Category)
	if err != nil {
		return Class{}, err
	}
	if cc.Subclass > MaxSubclass {
		return Class{}, errors.Errorf("subclass %d out of range", cc.Subclass)
	}
	c := Class{Category: cat, Subclass: cc.Subclass}
	for _, name := range cc.Flags {
		f, err := parseFlag(name)
		if err != nil {
			return Class{}, err
		}
		c.Flags |= f
	}
	if c.IsZero() {
		return Class{}, errors.New("empty class")
	}
	return c, nil
}

func knownFamily(f Family) bool {
	for _, known := range families {
		if f == known {
			return true
		}
	}
	return false
}
