package osmxml

import (
	"encoding/xml"
	"strconv"

	"github.com/omniscale/osmworld/element"
	"github.com/omniscale/osmworld/stats"
)

// relationParser is the scratch state of an open relation. It has its
// own tags so that relation tags never mix with point or way tags.
type relationParser struct {
	id      int64
	tags    element.Tags
	members []element.Member
}

func newRelationParser() *relationParser {
	return &relationParser{tags: element.Tags{}}
}

func (rp *relationParser) reset() {
	rp.id = 0
	rp.tags.Reset()
	rp.members = nil
}

func (w *walker) startRelation(se xml.StartElement) state {
	w.rel.reset()
	for _, attr := range se.Attr {
		if attr.Name.Local == "id" {
			// relations get new ids when they are kept, the source id is
			// only used for logging
			w.rel.id = w.parseId(attr.Value)
		}
	}
	return stateInRelation
}

func (w *walker) startRelationTag(se xml.StartElement) state {
	w.addTag(w.rel.tags, se)
	return stateInTag
}

// startMember adds way members. Members of other types and members
// with invalid refs are dropped.
func (w *walker) startMember(se xml.StartElement) state {
	var typ, ref, role string
	for _, attr := range se.Attr {
		switch attr.Name.Local {
		case "type":
			typ = attr.Value
		case "ref":
			ref = attr.Value
		case "role":
			role = attr.Value
		}
	}
	if typ != "way" {
		log.Debugf("relation %d: %s member %s ignored", w.rel.id, typ, ref)
		w.builder.Metrics().Warn("osmxml", stats.ReasonMemberType)
		return stateInMember
	}
	id, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		w.warn(stats.ReasonNumber, "relation %d: invalid member ref '%s'", w.rel.id, ref)
		return stateInMember
	}
	w.rel.members = append(w.rel.members, element.Member{
		Id:   id,
		Role: element.ParseRole(role),
	})
	return stateInMember
}

func (w *walker) closeRelation() {
	w.builder.AddRelation(w.rel.members, w.rel.tags)
	// members are owned by the builder now
	w.rel.reset()
}
