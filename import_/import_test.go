package import_

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omniscale/osmworld/cache"
	"github.com/omniscale/osmworld/config"
	"github.com/omniscale/osmworld/mapping"
)

const courtyard = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6">
 <node id="1" lat="53.0" lon="8.8"/>
 <node id="2" lat="53.0" lon="8.9"/>
 <node id="3" lat="53.1" lon="8.9"/>
 <node id="4" lat="53.1" lon="8.8"/>
 <way id="10"><nd ref="1"/><nd ref="2"/><nd ref="3"/><nd ref="1"/></way>
 <way id="11"><nd ref="1"/><nd ref="3"/><nd ref="4"/><nd ref="1"/></way>
 <way id="12"><nd ref="2"/><nd ref="3"/><nd ref="4"/><nd ref="2"/></way>
 <relation id="100">
  <member type="way" ref="10" role="outer"/>
  <member type="way" ref="11" role="outer"/>
  <member type="way" ref="12" role="inner"/>
  <tag k="type" v="multipolygon"/>
  <tag k="building" v="yes"/>
 </relation>
</osm>
`

func testOptions(t *testing.T) *config.Import {
	dir := t.TempDir()
	fname := filepath.Join(dir, "courtyard.osm")
	require.NoError(t, os.WriteFile(fname, []byte(courtyard), 0644))
	return &config.Import{
		Read:           fname,
		Format:         "auto",
		CacheDir:       filepath.Join(dir, "cache"),
		LogLevel:       "warn",
		Quiet:          true,
		ReportInterval: time.Second,
	}
}

func TestImport(t *testing.T) {
	opts := testOptions(t)
	w, err := Import(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 4, w.PointCount())
	assert.Equal(t, 3, w.WayCount())
	require.Len(t, w.Relations(), 1)
	assert.Equal(t, mapping.CategoryBuilding, w.Relations()[0].Class.Category)
	assert.False(t, cache.Exists(opts.CacheDir))
}

func TestImportWrite(t *testing.T) {
	opts := testOptions(t)
	opts.Write = true
	w, err := Import(context.Background(), opts)
	require.NoError(t, err)

	s, err := cache.Open(opts.CacheDir)
	require.NoError(t, err)
	stored, err := s.ReadWorld()
	require.NoError(t, err)
	assert.Equal(t, w.Ways(), stored.Ways())
	assert.Equal(t, w.Relations(), stored.Relations())
	require.NoError(t, s.Close())

	// existing cache
	_, err = Import(context.Background(), opts)
	assert.Error(t, err)

	opts.Overwritecache = true
	_, err = Import(context.Background(), opts)
	assert.NoError(t, err)
}

func TestImportErrors(t *testing.T) {
	opts := testOptions(t)
	opts.MappingFile = filepath.Join(t.TempDir(), "missing.yml")
	_, err := Import(context.Background(), opts)
	assert.Error(t, err)

	opts = testOptions(t)
	opts.Read = filepath.Join(t.TempDir(), "missing.osm")
	_, err = Import(context.Background(), opts)
	assert.Error(t, err)

	opts = testOptions(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Import(ctx, opts)
	assert.Error(t, err)
}
