/*
Package mapping classifies OSM elements by their tags.

The classification of an element is a Class: one category, a subclass
ordinal within the category, modifier flags and a direction of travel.
Classes are stored as a single word with Class.Encode and DecodeClass.

A Mapping holds one lookup table per tag family (highway, building,
amenity, ...). PointClass, WayClass and MultipolygonClass apply the
families in a fixed order for each element kind, later matches replace
earlier ones. The built-in tables can be extended or changed with a
YAML file, see NewMapping.

The attribute helpers read lane counts, parking and width from way tags.
*/
package mapping
