package osmxml

import (
	"encoding/xml"
	"math"
	"strconv"

	"github.com/omniscale/osmworld/element"
	"github.com/omniscale/osmworld/stats"
)

type state uint8

const (
	stateStart state = iota
	stateIdle
	stateInPoint
	stateInWay
	stateInRelation
	stateInTag
	stateInRef
	stateInMember
	stateSkip
	stateDone
)

var stateNames = [...]string{
	stateStart:      "document",
	stateIdle:       "osm",
	stateInPoint:    "node",
	stateInWay:      "way",
	stateInRelation: "relation",
	stateInTag:      "tag",
	stateInRef:      "nd",
	stateInMember:   "member",
	stateSkip:       "skipped element",
	stateDone:       "end of document",
}

func (s state) String() string {
	return stateNames[s]
}

type (
	startFunc func(w *walker, se xml.StartElement) state
	closeFunc func(w *walker)
)

// startTransitions lists the allowed child elements of each state. tag,
// nd and member elements have no children.
var startTransitions = map[state]map[string]startFunc{
	stateStart: {
		"osm": (*walker).startRoot,
	},
	stateIdle: {
		"node":     (*walker).startPoint,
		"way":      (*walker).startWay,
		"relation": (*walker).startRelation,
	},
	stateInPoint: {
		"tag": (*walker).startTag,
	},
	stateInWay: {
		"tag": (*walker).startTag,
		"nd":  (*walker).startRef,
	},
	stateInRelation: {
		"tag":    (*walker).startRelationTag,
		"member": (*walker).startMember,
	},
}

var closeTransitions = map[state]closeFunc{
	stateInPoint:    (*walker).closePoint,
	stateInWay:      (*walker).closeWay,
	stateInRelation: (*walker).closeRelation,
}

// quietSkip are elements of OSM files that are skipped without warning.
var quietSkip = map[string]bool{
	"bounds": true,
	"bound":  true,
	"note":   true,
	"meta":   true,
}

// reject logs an element without a transition in state cur.
func (w *walker) reject(cur state, name string) {
	switch {
	case cur == stateInRelation && name == "relation":
		w.warn(stats.ReasonNested, "relation inside relation %d not allowed", w.rel.id)
	case cur == stateIdle && quietSkip[name]:
	default:
		w.warn(stats.ReasonElement, "unexpected element <%s> in <%s>", name, cur)
	}
}

func (w *walker) startRoot(se xml.StartElement) state {
	w.builder.ResetNames()
	return stateIdle
}

func (w *walker) startPoint(se xml.StartElement) state {
	w.tags.Reset()
	w.id, w.x, w.y = 0, 0, 0
	for _, attr := range se.Attr {
		switch attr.Name.Local {
		case "id":
			w.id = w.parseId(attr.Value)
		case "lon":
			w.x = w.parseCoord(attr.Value)
		case "lat":
			w.y = w.parseCoord(attr.Value)
		}
	}
	return stateInPoint
}

func (w *walker) closePoint() {
	p := element.Point{
		Id: w.id,
		X:  int32(w.x * 100),
		Y:  int32(w.y * 100),
	}
	w.builder.AddPoint(p, w.tags)
	w.id, w.x, w.y = 0, 0, 0
	w.tags.Reset()
}

func (w *walker) startWay(se xml.StartElement) state {
	w.tags.Reset()
	w.refs = nil
	w.id = 0
	for _, attr := range se.Attr {
		if attr.Name.Local == "id" {
			w.id = w.parseId(attr.Value)
		}
	}
	return stateInWay
}

func (w *walker) closeWay() {
	way := element.Way{
		Id:   w.id,
		Refs: w.refs,
	}
	w.builder.AddWay(way, w.tags)
	// refs are owned by the builder now
	w.refs = nil
	w.id = 0
	w.tags.Reset()
}

func (w *walker) startTag(se xml.StartElement) state {
	w.addTag(w.tags, se)
	return stateInTag
}

func (w *walker) addTag(tags element.Tags, se xml.StartElement) {
	var k, v string
	for _, attr := range se.Attr {
		switch attr.Name.Local {
		case "k":
			k = attr.Value
		case "v":
			v = attr.Value
		}
	}
	if !tags.Add(k, v) {
		w.warn(stats.ReasonDuplicateTag, "double use of tag %s=%s", k, v)
	}
}

// startRef adds the node reference of an nd element. Refs that are no
// positive integers are skipped.
func (w *walker) startRef(se xml.StartElement) state {
	for _, attr := range se.Attr {
		if attr.Name.Local != "ref" {
			continue
		}
		ref, err := strconv.ParseInt(attr.Value, 10, 64)
		if err == nil && ref > 0 {
			w.refs = append(w.refs, ref)
		}
	}
	return stateInRef
}

func (w *walker) parseId(v string) int64 {
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		w.warn(stats.ReasonNumber, "invalid id '%s'", v)
		return 0
	}
	return id
}

func (w *walker) parseCoord(v string) float64 {
	c, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(c) || c < -180 || c > 180 {
		w.warn(stats.ReasonNumber, "invalid coordinate '%s'", v)
		return 0
	}
	return c * coordScale
}
