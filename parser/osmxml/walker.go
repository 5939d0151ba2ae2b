// Package osmxml reads OSM XML files (.osm) into a world.Builder.
//
// The file is read in a single forward pass. Recoverable problems like
// invalid numbers, duplicate tags or unexpected elements are logged and
// counted, only XML syntax errors abort the import.
package osmxml

import (
	"context"
	"encoding/xml"
	"io"

	"github.com/pkg/errors"

	"github.com/omniscale/osmworld/element"
	"github.com/omniscale/osmworld/logging"
	"github.com/omniscale/osmworld/world"
)

var log = logging.NewLogger("osmxml")

var (
	// ErrNoRoot is returned for input without an osm root element.
	ErrNoRoot = errors.New("no osm root element")
	// ErrUnexpectedEOF is returned if the input ends before the osm root
	// element is closed.
	ErrUnexpectedEOF = errors.New("unexpected end of osm file")
)

// coordScale converts degrees to the working precision of the parser.
// Coordinates are multiplied by another 100 when a point is closed, see
// element.CoordFactor.
const coordScale = element.CoordFactor / 100

// ctx is checked every ctxCheckInterval tokens.
const ctxCheckInterval = 1 << 12

// Parse reads an OSM XML document from r and returns the materialized
// world of b. No world is returned on errors.
func Parse(ctx context.Context, r io.Reader, b *world.Builder) (*element.World, error) {
	w := newWalker(xml.NewDecoder(r), b)
	if err := w.run(ctx); err != nil {
		return nil, err
	}
	return b.Materialize(), nil
}

// walker is the state of the top level parse loop. The current state is
// the last entry of stack.
type walker struct {
	dec     *xml.Decoder
	builder *world.Builder
	stack   []state
	tokens  int

	// scratch state of the open point or way
	tags element.Tags
	id   int64
	x, y float64
	refs []int64

	rel *relationParser
}

func newWalker(dec *xml.Decoder, b *world.Builder) *walker {
	return &walker{
		dec:     dec,
		builder: b,
		stack:   []state{stateStart},
		tags:    element.Tags{},
		rel:     newRelationParser(),
	}
}

func (w *walker) current() state {
	return w.stack[len(w.stack)-1]
}

func (w *walker) push(s state) {
	w.stack = append(w.stack, s)
}

func (w *walker) pop() state {
	s := w.current()
	w.stack = w.stack[:len(w.stack)-1]
	return s
}

func (w *walker) run(ctx context.Context) error {
	for {
		tok, err := w.nextToken(ctx)
		if err != nil {
			return err
		}
		switch tok := tok.(type) {
		case xml.StartElement:
			w.start(tok)
		case xml.EndElement:
			if w.end() == stateDone {
				return nil
			}
		}
	}
}

// nextToken returns the next token of the decoder and translates the
// end of the input into ErrNoRoot or ErrUnexpectedEOF.
func (w *walker) nextToken(ctx context.Context) (xml.Token, error) {
	if w.tokens%ctxCheckInterval == 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	w.tokens++
	tok, err := w.dec.Token()
	if err == nil {
		return tok, nil
	}
	if err == io.EOF {
		if w.current() == stateStart {
			return nil, ErrNoRoot
		}
		return nil, ErrUnexpectedEOF
	}
	if serr, ok := err.(*xml.SyntaxError); ok && serr.Msg == "unexpected EOF" {
		return nil, errors.Wrapf(ErrUnexpectedEOF, "line %d", serr.Line)
	}
	return nil, errors.Wrap(err, "decoding next XML token")
}

// start dispatches a start element on the transition table of the
// current state. Elements without a transition are skipped with all
// their children.
func (w *walker) start(se xml.StartElement) {
	cur := w.current()
	if cur == stateSkip {
		w.push(stateSkip)
		return
	}
	if fn, ok := startTransitions[cur][se.Name.Local]; ok {
		w.push(fn(w, se))
		return
	}
	w.reject(cur, se.Name.Local)
	w.push(stateSkip)
}

// end closes the current state and returns the state that was closed,
// or stateDone after the root element.
func (w *walker) end() state {
	s := w.pop()
	if fn, ok := closeTransitions[s]; ok {
		fn(w)
	}
	if s == stateIdle {
		return stateDone
	}
	return s
}

func (w *walker) warn(reason string, msg string, args ...interface{}) {
	log.Warnf(msg, args...)
	w.builder.Metrics().Warn("osmxml", reason)
}
