/*
Package import_ provides the import sub command.
*/
package import_

import (
	"context"

	"github.com/pkg/errors"

	"github.com/omniscale/osmworld/cache"
	"github.com/omniscale/osmworld/config"
	"github.com/omniscale/osmworld/element"
	"github.com/omniscale/osmworld/logging"
	"github.com/omniscale/osmworld/mapping"
	"github.com/omniscale/osmworld/reader"
	"github.com/omniscale/osmworld/stats"
	"github.com/omniscale/osmworld/world"
)

var log = logging.NewLogger("")

// Import reads the input of opts into a World and stores it in the
// cache if opts.Write is set.
func Import(ctx context.Context, opts *config.Import) (*element.World, error) {
	logging.SetLevel(opts.LogLevel)
	if opts.Quiet {
		logging.SetQuiet(true)
	}

	m := mapping.Default()
	if opts.MappingFile != "" {
		var err error
		m, err = mapping.NewMapping(opts.MappingFile)
		if err != nil {
			return nil, errors.Wrap(err, "mapping file")
		}
	}

	if opts.Write && cache.Exists(opts.CacheDir) {
		if !opts.Overwritecache {
			return nil, errors.Errorf("cache %s already exists, use -overwritecache", opts.CacheDir)
		}
		log.Printf("removing existing cache %s", opts.CacheDir)
		if err := removeCache(opts.CacheDir); err != nil {
			return nil, errors.Wrap(err, "unable to remove cache")
		}
	}

	metrics := stats.NewMetrics()
	if opts.Httpprofile != "" {
		stats.StartHttpPProf(opts.Httpprofile, metrics)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	metrics.StartReporter(ctx, opts.ReportInterval)

	step := log.StartStep("Reading OSM data")
	w, err := reader.Read(ctx, opts.Read, opts.Format, world.NewBuilder(m, metrics), !opts.Quiet)
	if err != nil {
		return nil, err
	}
	log.StopStep(step)
	log.Printf("read %s", metrics.Summary())

	if opts.Write {
		step := log.StartStep("Writing cache")
		if err := writeCache(opts.CacheDir, w); err != nil {
			return nil, err
		}
		log.StopStep(step)
	}
	return w, nil
}

func removeCache(dir string) error {
	s, err := cache.Open(dir)
	if err != nil {
		return err
	}
	return s.Remove()
}

func writeCache(dir string, w *element.World) error {
	s, err := cache.Open(dir)
	if err != nil {
		return err
	}
	if err := s.WriteWorld(w); err != nil {
		s.Close()
		return err
	}
	return s.Close()
}
