package test

import (
	"context"
	"testing"

	"github.com/omniscale/osmworld/cache"
	"github.com/omniscale/osmworld/config"
	"github.com/omniscale/osmworld/element"
	"github.com/omniscale/osmworld/import_"
)

type importConfig struct {
	osmFileName     string
	mappingFileName string
	cacheDir        string
}

type importTestSuite struct {
	dir    string
	config importConfig
	world  *element.World
	stored *element.World
}

func (s *importTestSuite) importOsm(t *testing.T) {
	importArgs := []string{
		"-read", s.config.osmFileName,
		"-write",
		"-cachedir", s.config.cacheDir,
		"-overwritecache",
		"-mapping", s.config.mappingFileName,
		"-loglevel", "error",
		"-quiet",
	}

	opts, err := config.ParseImport(importArgs)
	if err != nil {
		t.Fatal(err)
	}
	s.world, err = import_.Import(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
}

func (s *importTestSuite) readCache(t *testing.T) {
	store, err := cache.Open(s.config.cacheDir)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	s.stored, err = store.ReadWorld()
	if err != nil {
		t.Fatal(err)
	}
}

func (s *importTestSuite) way(t *testing.T, id int64) element.Way {
	w, ok := s.stored.Way(id)
	if !ok {
		t.Fatalf("way %d not found", id)
	}
	return w
}

func (s *importTestSuite) point(t *testing.T, id int64) element.Point {
	p, ok := s.stored.Point(id)
	if !ok {
		t.Fatalf("point %d not found", id)
	}
	return p
}

func (s *importTestSuite) name(t *testing.T, id uint32) string {
	n, ok := s.stored.Name(id)
	if !ok {
		t.Fatalf("name %d not found", id)
	}
	return n
}
