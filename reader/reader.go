// Package reader opens OSM input files and runs the parser for their
// format.
package reader

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"

	"github.com/omniscale/osmworld/element"
	"github.com/omniscale/osmworld/logging"
	"github.com/omniscale/osmworld/parser/osmxml"
	"github.com/omniscale/osmworld/parser/pbf"
	"github.com/omniscale/osmworld/world"
)

var log = logging.NewLogger("reader")

const (
	FormatAuto = "auto"
	FormatXML  = "xml"
	FormatPBF  = "pbf"
)

const sniffSize = 512

var gzipMagic = []byte{0x1f, 0x8b}

// Read parses filename into b and returns the materialized World.
// format is FormatAuto, FormatXML or FormatPBF. Gzip compressed input
// is detected by its content. progress enables a progress bar on
// stderr.
func Read(ctx context.Context, filename, format string, b *world.Builder, progress bool) (*element.World, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "opening input")
	}
	defer f.Close()

	var r io.Reader = f
	if progress {
		fi, err := f.Stat()
		if err != nil {
			return nil, errors.Wrap(err, "opening input")
		}
		bar := newProgressBar(fi.Size(), filepath.Base(filename))
		defer bar.Finish()
		r = io.TeeReader(f, bar)
	}

	br := bufio.NewReader(r)
	if isGzip(br) {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, errors.Wrap(err, "reading gzip header")
		}
		defer zr.Close()
		br = bufio.NewReader(zr)
	}

	if format == FormatAuto || format == "" {
		format = detectFormat(filename, br)
		log.Debugf("reading %s as %s", filename, format)
	}

	switch format {
	case FormatXML:
		return osmxml.Parse(ctx, br, b)
	case FormatPBF:
		return pbf.Parse(ctx, br, b)
	}
	return nil, errors.Errorf("unknown format %q", format)
}

func newProgressBar(size int64, desc string) *progressbar.ProgressBar {
	return progressbar.NewOptions64(size,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(15),
		progressbar.OptionSetDescription(desc),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

func isGzip(br *bufio.Reader) bool {
	magic, err := br.Peek(len(gzipMagic))
	return err == nil && bytes.Equal(magic, gzipMagic)
}

// detectFormat uses the file extension and falls back to the content
// of the (uncompressed) stream. Everything that does not start with an
// XML tag is read as PBF.
func detectFormat(filename string, br *bufio.Reader) string {
	name := strings.TrimSuffix(strings.ToLower(filename), ".gz")
	switch filepath.Ext(name) {
	case ".pbf":
		return FormatPBF
	case ".osm", ".xml":
		return FormatXML
	}

	head, _ := br.Peek(sniffSize)
	head = bytes.TrimPrefix(head, []byte("\xef\xbb\xbf"))
	head = bytes.TrimLeft(head, " \t\r\n")
	if len(head) > 0 && head[0] == '<' {
		return FormatXML
	}
	return FormatPBF
}
