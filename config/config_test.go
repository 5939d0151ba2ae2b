package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	fname := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(fname, []byte(content), 0644))
	return fname
}

func TestParseImportDefaults(t *testing.T) {
	o, err := ParseImport([]string{"-read", "bremen.osm.pbf"})
	require.NoError(t, err)
	assert.Equal(t, &Import{
		Read:           "bremen.osm.pbf",
		Format:         "auto",
		CacheDir:       "/tmp/osmworld",
		LogLevel:       "info",
		ReportInterval: 10 * time.Second,
	}, o)
}

func TestParseImportConfigFile(t *testing.T) {
	fname := writeConfig(t, `
cachedir: /var/cache/osmworld
mapping: classes.yml
format: xml
loglevel: debug
report_interval: 2s
`)

	o, err := ParseImport([]string{"-read", "in.osm", "-config", fname})
	require.NoError(t, err)
	assert.Equal(t, "/var/cache/osmworld", o.CacheDir)
	assert.Equal(t, "classes.yml", o.MappingFile)
	assert.Equal(t, "xml", o.Format)
	assert.Equal(t, "debug", o.LogLevel)
	assert.Equal(t, 2*time.Second, o.ReportInterval)

	// flags win
	o, err = ParseImport([]string{"-read", "in.osm", "-config", fname, "-cachedir", "/data", "-mapping", "other.yml", "-format", "pbf"})
	require.NoError(t, err)
	assert.Equal(t, "/data", o.CacheDir)
	assert.Equal(t, "other.yml", o.MappingFile)
	assert.Equal(t, "pbf", o.Format)
}

func TestParseImportErrors(t *testing.T) {
	_, err := ParseImport([]string{"-format", "shp", "-loglevel", "verbose", "-write", "-cachedir", ""})
	require.Error(t, err)
	errs, ok := err.(CheckError)
	require.True(t, ok, err)
	assert.Len(t, errs, 4)

	_, err = ParseImport([]string{"-unknown"})
	assert.Error(t, err)

	_, err = ParseImport([]string{"-read", "in.osm", "-config", "/does/not/exist.yml"})
	assert.Error(t, err)

	_, err = ParseImport([]string{"-read", "in.osm", "-config", writeConfig(t, "connection: postgis://\n")})
	assert.Error(t, err)
}
