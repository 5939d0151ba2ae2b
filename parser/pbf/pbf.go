// Package pbf reads OSM PBF files into a world.Builder.
package pbf

import (
	"bufio"
	"context"
	"encoding/binary"
	"io"
	"runtime"

	osm "github.com/omniscale/go-osm"
	osmpbf "github.com/omniscale/go-osm/parser/pbf"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/omniscale/osmworld/element"
	"github.com/omniscale/osmworld/logging"
	"github.com/omniscale/osmworld/world"
)

var log = logging.NewLogger("pbf")

// maxBlobHeaderSize is the limit of the PBF format for a blob header.
const maxBlobHeaderSize = 64 * 1024

var ErrNoPBF = errors.New("not a PBF file")

// Parse reads a PBF file from r and returns the materialized world of b.
//
// Blocks are decoded concurrently, but all elements are passed to the
// builder from a single goroutine. Relations are only resolved after all
// ways were added, this requires files that are sorted by type.
func Parse(ctx context.Context, r io.Reader, b *world.Builder) (*element.World, error) {
	br := bufio.NewReader(r)
	if err := checkBlobHeaderSize(br); err != nil {
		return nil, err
	}

	c := newChannels()
	parser := osmpbf.New(br, osmpbf.Config{
		Nodes:           c.nodes,
		Ways:            c.ways,
		Relations:       c.relations,
		OnFirstRelation: c.waitForWays,
		Concurrency:     runtime.NumCPU(),
	})

	header, err := parser.Header()
	if err != nil {
		return nil, errors.Wrap(err, "reading PBF header")
	}
	if header.Time.Unix() > 0 {
		log.Printf("reading file with data till %v", header.Time.Local())
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(c.parsed)
		return errors.Wrap(parser.Parse(gctx), "parsing PBF")
	})
	g.Go(func() error {
		return c.consume(gctx, b)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return b.Materialize(), nil
}

// checkBlobHeaderSize rejects input that does not start with a valid
// blob header size, before the parser allocates a buffer of that size.
func checkBlobHeaderSize(br *bufio.Reader) error {
	buf, err := br.Peek(4)
	if err != nil {
		return errors.Wrap(ErrNoPBF, "reading PBF header")
	}
	if size := binary.BigEndian.Uint32(buf); size == 0 || size > maxBlobHeaderSize {
		return errors.Wrapf(ErrNoPBF, "blob header size %d", size)
	}
	return nil
}

type channels struct {
	nodes      chan []osm.Node
	ways       chan []osm.Way
	relations  chan []osm.Relation
	waysSynced chan struct{}
	// parsed is closed when the parser returned.
	parsed chan struct{}
}

func newChannels() *channels {
	return &channels{
		nodes:      make(chan []osm.Node),
		ways:       make(chan []osm.Way),
		relations:  make(chan []osm.Relation),
		waysSynced: make(chan struct{}),
		parsed:     make(chan struct{}),
	}
}

// waitForWays blocks until consume added all ways that were sent before.
// A nil batch marks the end of the ways.
func (c *channels) waitForWays() {
	c.ways <- nil
	<-c.waysSynced
}

// consume adds all elements to b until all channels are closed. After ctx
// is done, the remaining elements are discarded and ctx.Err is returned.
func (c *channels) consume(ctx context.Context, b *world.Builder) error {
	b.ResetNames()
	nodes, ways, relations := c.nodes, c.ways, c.relations
	for nodes != nil || ways != nil || relations != nil {
		select {
		case <-ctx.Done():
			c.drain(nodes, ways, relations)
			return ctx.Err()
		case nds, ok := <-nodes:
			if !ok {
				nodes = nil
				continue
			}
			for i := range nds {
				b.AddPoint(point(&nds[i]), element.Tags(nds[i].Tags))
			}
		case ws, ok := <-ways:
			if !ok {
				ways = nil
				continue
			}
			if ws == nil {
				c.waysSynced <- struct{}{}
				continue
			}
			for i := range ws {
				b.AddWay(element.Way{Id: ws[i].ID, Refs: ws[i].Refs}, element.Tags(ws[i].Tags))
			}
		case rels, ok := <-relations:
			if !ok {
				relations = nil
				continue
			}
			for i := range rels {
				b.AddRelation(members(rels[i].Members), element.Tags(rels[i].Tags))
			}
		}
	}
	return nil
}

// drain discards elements until the channels are closed or the parser
// returned. The parser workers block on sends and only stop after all
// blocks they got were sent.
func (c *channels) drain(nodes chan []osm.Node, ways chan []osm.Way, relations chan []osm.Relation) {
	for nodes != nil || ways != nil || relations != nil {
		select {
		case <-c.parsed:
			return
		case _, ok := <-nodes:
			if !ok {
				nodes = nil
			}
		case ws, ok := <-ways:
			if !ok {
				ways = nil
				continue
			}
			if ws == nil {
				c.waysSynced <- struct{}{}
			}
		case _, ok := <-relations:
			if !ok {
				relations = nil
			}
		}
	}
}

func point(n *osm.Node) element.Point {
	return element.Point{
		Id: n.ID,
		X:  int32(n.Long * element.CoordFactor),
		Y:  int32(n.Lat * element.CoordFactor),
	}
}

// members returns the way members.
func members(ms []osm.Member) []element.Member {
	result := make([]element.Member, 0, len(ms))
	for _, m := range ms {
		if m.Type != osm.WayMember {
			continue
		}
		result = append(result, element.Member{Id: m.ID, Role: element.ParseRole(m.Role)})
	}
	return result
}
