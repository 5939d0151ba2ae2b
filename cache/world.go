package cache

import (
	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/omniscale/osmworld/element"
)

// WriteWorld replaces the stored world with w.
func (s *Store) WriteWorld(w *element.World) error {
	if err := s.db.DropAll(); err != nil {
		return errors.Wrap(err, "clearing cache")
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	points := w.Points()
	for i := range points {
		data, err := marshalPoint(&points[i])
		if err != nil {
			return err
		}
		if err := wb.Set(idToKeyBuf(pointPrefix, points[i].Id), data); err != nil {
			return errors.Wrapf(err, "writing point %d", points[i].Id)
		}
	}
	ways := w.Ways()
	for i := range ways {
		data, err := marshalWay(&ways[i])
		if err != nil {
			return err
		}
		if err := wb.Set(idToKeyBuf(wayPrefix, ways[i].Id), data); err != nil {
			return errors.Wrapf(err, "writing way %d", ways[i].Id)
		}
	}
	rels := w.Relations()
	for i := range rels {
		data, err := marshalRelation(&rels[i])
		if err != nil {
			return err
		}
		if err := wb.Set(idToKeyBuf(relationPrefix, rels[i].Id), data); err != nil {
			return errors.Wrapf(err, "writing relation %d", rels[i].Id)
		}
	}

	var nameErr error
	names := 0
	w.Names(func(name string, e element.NameEntry) {
		if nameErr != nil {
			return
		}
		data, err := msgpack.Marshal(&e)
		if err == nil {
			err = wb.Set(nameKey(name), data)
		}
		nameErr = errors.Wrapf(err, "writing name %q", name)
		names++
	})
	if nameErr != nil {
		return nameErr
	}

	meta, err := msgpack.Marshal(&metaRecord{
		Points:    len(points),
		Ways:      len(ways),
		Relations: len(rels),
		Names:     names,
	})
	if err != nil {
		return err
	}
	if err := wb.Set(metaKey, meta); err != nil {
		return err
	}
	if err := wb.Flush(); err != nil {
		return errors.Wrap(err, "flushing cache")
	}
	log.Printf("stored %d points, %d ways, %d relations and %d names", len(points), len(ways), len(rels), names)
	return nil
}

// ReadWorld returns the stored world. It returns ErrNotFound if no world
// was written.
func (s *Store) ReadWorld() (*element.World, error) {
	meta, err := s.meta()
	if err != nil {
		return nil, err
	}

	points := make([]element.Point, 0, meta.Points)
	err = s.scan(pointPrefix, func(key, val []byte) error {
		p, err := unmarshalPoint(idFromKeyBuf(key), val)
		points = append(points, p)
		return err
	})
	if err != nil {
		return nil, err
	}

	ways := make([]element.Way, 0, meta.Ways)
	err = s.scan(wayPrefix, func(key, val []byte) error {
		w, err := unmarshalWay(idFromKeyBuf(key), val)
		ways = append(ways, w)
		return err
	})
	if err != nil {
		return nil, err
	}

	rels, err := s.Relations()
	if err != nil {
		return nil, err
	}

	names := element.NewNameTable()
	err = s.scan(namePrefix, func(key, val []byte) error {
		var e element.NameEntry
		if err := msgpack.Unmarshal(val, &e); err != nil {
			return errors.Wrapf(err, "name %q", key[1:])
		}
		names.Set(string(key[1:]), e)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return element.NewWorld(points, ways, rels, names), nil
}

// Point returns a single stored point.
func (s *Store) Point(id int64) (element.Point, error) {
	var p element.Point
	err := s.get(idToKeyBuf(pointPrefix, id), func(val []byte) (err error) {
		p, err = unmarshalPoint(id, val)
		return err
	})
	return p, err
}

// Way returns a single stored way.
func (s *Store) Way(id int64) (element.Way, error) {
	var w element.Way
	err := s.get(idToKeyBuf(wayPrefix, id), func(val []byte) (err error) {
		w, err = unmarshalWay(id, val)
		return err
	})
	return w, err
}

// Relations returns all stored relations ordered by id.
func (s *Store) Relations() ([]element.Relation, error) {
	var rels []element.Relation
	err := s.scan(relationPrefix, func(key, val []byte) error {
		r, err := unmarshalRelation(idFromKeyBuf(key), val)
		rels = append(rels, r)
		return err
	})
	return rels, err
}

func (s *Store) meta() (metaRecord, error) {
	var m metaRecord
	err := s.get(metaKey, func(val []byte) error {
		return msgpack.Unmarshal(val, &m)
	})
	return m, err
}

func (s *Store) get(key []byte, fn func(val []byte) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		return item.Value(fn)
	})
}

// scan calls fn for all keys with prefix in key order. Keys and values
// are only valid during fn.
func (s *Store) scan(prefix byte, fn func(key, val []byte) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte{prefix}
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.ValidForPrefix(opts.Prefix); it.Next() {
			item := it.Item()
			key := item.Key()
			err := item.Value(func(val []byte) error {
				return fn(key, val)
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}
