// Package cache stores materialized worlds in a badger database, so
// that an import can be inspected or reused without parsing the input
// again.
package cache

import (
	bin "encoding/binary"
	"os"
	"path/filepath"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"

	"github.com/omniscale/osmworld/logging"
)

var log = logging.NewLogger("cache")

var ErrNotFound = errors.New("not found")

// key prefixes
const (
	pointPrefix    byte = 'p'
	wayPrefix      byte = 'w'
	relationPrefix byte = 'r'
	namePrefix     byte = 'n'
)

var metaKey = []byte("meta")

// Store is a snapshot of one World on disk.
type Store struct {
	dir string
	db  *badger.DB
}

// Open opens or creates the store in dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "creating cache dir %s", dir)
	}
	opts := badger.DefaultOptions(dir).WithLogger(badgerLogger{log})
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "opening cache %s", dir)
	}
	return &Store{dir: dir, db: db}, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Exists returns whether dir contains a stored world.
func Exists(dir string) bool {
	if _, err := os.Stat(filepath.Join(dir, "MANIFEST")); err != nil {
		return false
	}
	s, err := Open(dir)
	if err != nil {
		return false
	}
	defer s.Close()
	_, err = s.meta()
	return err == nil
}

// Remove closes the store and removes all files.
func (s *Store) Remove() error {
	if err := s.Close(); err != nil {
		return err
	}
	return os.RemoveAll(s.dir)
}

func idToKeyBuf(prefix byte, id int64) []byte {
	b := make([]byte, 9)
	b[0] = prefix
	bin.BigEndian.PutUint64(b[1:], uint64(id))
	return b
}

func idFromKeyBuf(b []byte) int64 {
	return int64(bin.BigEndian.Uint64(b[1:]))
}

func nameKey(name string) []byte {
	return append([]byte{namePrefix}, name...)
}

// badgerLogger sends the badger log output to the cache logger. Info
// output of badger is only logged at debug level.
type badgerLogger struct {
	l *logging.Logger
}

func (b badgerLogger) Errorf(msg string, args ...interface{})   { b.l.Errorf(msg, args...) }
func (b badgerLogger) Warningf(msg string, args ...interface{}) { b.l.Warnf(msg, args...) }
func (b badgerLogger) Infof(msg string, args ...interface{})    { b.l.Debugf(msg, args...) }
func (b badgerLogger) Debugf(msg string, args ...interface{})   { b.l.Debugf(msg, args...) }
