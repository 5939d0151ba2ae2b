package cache

import (
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/omniscale/osmworld/element"
	"github.com/omniscale/osmworld/mapping"
)

// Values are stored with msgpack. Classes are stored as packed class
// words, the id is part of the key.

type pointRecord struct {
	X      int32  `msgpack:"x"`
	Y      int32  `msgpack:"y"`
	Class  uint64 `msgpack:"c"`
	Data   uint32 `msgpack:"d,omitempty"`
	NameId uint32 `msgpack:"n,omitempty"`
}

type wayRecord struct {
	Class   uint64  `msgpack:"c"`
	Lanes   uint32  `msgpack:"l,omitempty"`
	Parking uint16  `msgpack:"p,omitempty"`
	Width   uint32  `msgpack:"w,omitempty"`
	NameId  uint32  `msgpack:"n,omitempty"`
	Refs    []int64 `msgpack:"r"`
}

type memberRecord struct {
	Id   int64 `msgpack:"i"`
	Role uint8 `msgpack:"r"`
}

type relationRecord struct {
	Flags   uint8          `msgpack:"f"`
	Class   uint64         `msgpack:"c"`
	Members []memberRecord `msgpack:"m"`
}

type metaRecord struct {
	Points    int `msgpack:"points"`
	Ways      int `msgpack:"ways"`
	Relations int `msgpack:"relations"`
	Names     int `msgpack:"names"`
}

func marshalPoint(p *element.Point) ([]byte, error) {
	return msgpack.Marshal(&pointRecord{
		X:      p.X,
		Y:      p.Y,
		Class:  p.Class.Encode(),
		Data:   p.Data,
		NameId: p.NameId,
	})
}

func unmarshalPoint(id int64, data []byte) (element.Point, error) {
	var rec pointRecord
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return element.Point{}, errors.Wrapf(err, "point %d", id)
	}
	class, err := mapping.DecodeClass(rec.Class)
	if err != nil {
		return element.Point{}, errors.Wrapf(err, "point %d", id)
	}
	return element.Point{
		Id:     id,
		X:      rec.X,
		Y:      rec.Y,
		Class:  class,
		Data:   rec.Data,
		NameId: rec.NameId,
	}, nil
}

func marshalWay(w *element.Way) ([]byte, error) {
	return msgpack.Marshal(&wayRecord{
		Class:   w.Class.Encode(),
		Lanes:   w.Lanes.Pack(),
		Parking: uint16(w.Parking),
		Width:   w.Width,
		NameId:  w.NameId,
		Refs:    w.Refs,
	})
}

func unmarshalWay(id int64, data []byte) (element.Way, error) {
	var rec wayRecord
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return element.Way{}, errors.Wrapf(err, "way %d", id)
	}
	class, err := mapping.DecodeClass(rec.Class)
	if err != nil {
		return element.Way{}, errors.Wrapf(err, "way %d", id)
	}
	return element.Way{
		Id:      id,
		Class:   class,
		Lanes:   mapping.UnpackLanes(rec.Lanes),
		Parking: mapping.Parking(rec.Parking),
		Width:   rec.Width,
		NameId:  rec.NameId,
		Refs:    rec.Refs,
	}, nil
}

func marshalRelation(r *element.Relation) ([]byte, error) {
	rec := relationRecord{
		Flags:   uint8(r.Flags),
		Class:   r.Class.Encode(),
		Members: make([]memberRecord, len(r.Members)),
	}
	for i, m := range r.Members {
		rec.Members[i] = memberRecord{Id: m.Id, Role: uint8(m.Role)}
	}
	return msgpack.Marshal(&rec)
}

func unmarshalRelation(id int64, data []byte) (element.Relation, error) {
	var rec relationRecord
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return element.Relation{}, errors.Wrapf(err, "relation %d", id)
	}
	class, err := mapping.DecodeClass(rec.Class)
	if err != nil {
		return element.Relation{}, errors.Wrapf(err, "relation %d", id)
	}
	rel := element.Relation{
		Id:      id,
		Flags:   element.RelationFlags(rec.Flags),
		Class:   class,
		Members: make([]element.Member, len(rec.Members)),
	}
	for i, m := range rec.Members {
		rel.Members[i] = element.Member{Id: m.Id, Role: element.Role(m.Role)}
	}
	return rel, nil
}
