// Package query implements the query-cache command to inspect stored
// worlds.
package query

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"

	"github.com/omniscale/osmworld/cache"
	"github.com/omniscale/osmworld/element"
	"github.com/omniscale/osmworld/logging"
)

var log = logging.NewLogger("query")

var flags = flag.NewFlagSet("query-cache", flag.ExitOnError)

var (
	pointId  = flags.Int64("point", -1, "point")
	wayId    = flags.Int64("way", -1, "way")
	relId    = flags.Int64("rel", -1, "relation, 0 for all")
	full     = flags.Bool("full", false, "recurse into relations/ways")
	cachedir = flags.String("cachedir", "/tmp/osmworld", "cache directory")
)

type points map[string]*element.Point
type ways map[string]*way
type relations map[string]*relation

type way struct {
	element.Way
	Points points `json:"points,omitempty"`
}

type relation struct {
	element.Relation
	Ways ways `json:"ways,omitempty"`
}

type result struct {
	Points    points    `json:"points,omitempty"`
	Ways      ways      `json:"ways,omitempty"`
	Relations relations `json:"relations,omitempty"`
}

// store is the part of cache.Store used for queries.
type store interface {
	Point(id int64) (element.Point, error)
	Way(id int64) (element.Way, error)
	Relations() ([]element.Relation, error)
}

func collectRelations(s store, id int64, recurse bool) (relations, error) {
	all, err := s.Relations()
	if err != nil {
		return nil, err
	}
	rels := make(relations)
	for i := range all {
		rel := all[i]
		if id != 0 && rel.Id != id {
			continue
		}
		r := &relation{Relation: rel}
		if recurse {
			ids := make([]int64, len(rel.Members))
			for j, m := range rel.Members {
				ids[j] = m.Id
			}
			if r.Ways, err = collectWays(s, ids, true); err != nil {
				return nil, err
			}
		}
		rels[strconv.FormatInt(rel.Id, 10)] = r
	}
	if id != 0 && len(rels) == 0 {
		rels[strconv.FormatInt(id, 10)] = nil
	}
	return rels, nil
}

func collectWays(s store, ids []int64, recurse bool) (ways, error) {
	ws := make(ways)
	for _, id := range ids {
		sid := strconv.FormatInt(id, 10)
		w, err := s.Way(id)
		if err == cache.ErrNotFound {
			ws[sid] = nil
			continue
		} else if err != nil {
			return nil, err
		}
		ws[sid] = &way{Way: w}
		if recurse {
			if ws[sid].Points, err = collectPoints(s, w.Refs); err != nil {
				return nil, err
			}
		}
	}
	return ws, nil
}

func collectPoints(s store, ids []int64) (points, error) {
	ps := make(points)
	for _, id := range ids {
		sid := strconv.FormatInt(id, 10)
		p, err := s.Point(id)
		if err == cache.ErrNotFound {
			ps[sid] = nil
			continue
		} else if err != nil {
			return nil, err
		}
		ps[sid] = &p
	}
	return ps, nil
}

func collect(s store, point, way, rel int64, recurse bool) (*result, error) {
	var err error
	res := &result{}
	if rel != -1 {
		if res.Relations, err = collectRelations(s, rel, recurse); err != nil {
			return nil, err
		}
	}
	if way != -1 {
		if res.Ways, err = collectWays(s, []int64{way}, recurse); err != nil {
			return nil, err
		}
	}
	if point != -1 {
		if res.Points, err = collectPoints(s, []int64{point}); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// openStore opens the existing cache in dir. Unlike cache.Open it never
// creates a new cache.
func openStore(dir string) (*cache.Store, error) {
	if !cache.Exists(dir) {
		return nil, errors.Errorf("no cache found in %s", dir)
	}
	return cache.Open(dir)
}

func Usage() {
	fmt.Fprintf(os.Stderr, "Usage of %s %s:\n\n", os.Args[0], os.Args[1])
	flags.PrintDefaults()
	fmt.Fprintln(os.Stderr, "\nQuery cache for points/ways/relations.")
	os.Exit(1)
}

func printJson(w io.Writer, obj interface{}) error {
	bytes, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(bytes))
	return err
}

func Query(args []string) {
	flags.Usage = Usage

	if len(args) == 0 {
		Usage()
	}

	if err := flags.Parse(args); err != nil {
		log.Fatal(err)
	}

	s, err := openStore(*cachedir)
	if err != nil {
		log.Fatal(err)
	}
	defer s.Close()

	res, err := collect(s, *pointId, *wayId, *relId, *full)
	if err != nil {
		log.Fatal(err)
	}
	if err := printJson(os.Stdout, res); err != nil {
		log.Fatal(err)
	}
}
