package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Config is the content of a -config file. Options given on the command
// line take precedence.
type Config struct {
	CacheDir       string        `yaml:"cachedir"`
	MappingFile    string        `yaml:"mapping"`
	Format         string        `yaml:"format"`
	LogLevel       string        `yaml:"loglevel"`
	Httpprofile    string        `yaml:"httpprofile"`
	ReportInterval time.Duration `yaml:"report_interval"`
}

const (
	defaultCacheDir       = "/tmp/osmworld"
	defaultFormat         = "auto"
	defaultLogLevel       = "info"
	defaultReportInterval = 10 * time.Second
)

// Formats are the accepted values of -format.
var Formats = []string{"auto", "xml", "pbf"}

type Import struct {
	Read           string
	Format         string
	MappingFile    string
	CacheDir       string
	Write          bool
	Overwritecache bool
	LogLevel       string
	Quiet          bool
	Httpprofile    string
	ConfigFile     string
	ReportInterval time.Duration
}

func addImportFlags(flags *flag.FlagSet, o *Import) {
	flags.StringVar(&o.Read, "read", "", "read OSM file (.osm, .osm.gz, .osm.pbf)")
	flags.StringVar(&o.Format, "format", defaultFormat, "input format (auto, xml or pbf)")
	flags.StringVar(&o.MappingFile, "mapping", "", "class mapping overrides (yaml)")
	flags.StringVar(&o.CacheDir, "cachedir", defaultCacheDir, "cache directory")
	flags.BoolVar(&o.Write, "write", false, "store the imported world in the cache")
	flags.BoolVar(&o.Overwritecache, "overwritecache", false, "overwrite existing cache")
	flags.StringVar(&o.LogLevel, "loglevel", defaultLogLevel, "log level (debug, info, warn, error)")
	flags.BoolVar(&o.Quiet, "quiet", false, "quiet log output")
	flags.StringVar(&o.Httpprofile, "httpprofile", "", "bind address for profile and metrics server")
	flags.StringVar(&o.ConfigFile, "config", "", "config (yaml)")
	flags.DurationVar(&o.ReportInterval, "report-interval", defaultReportInterval, "interval of progress reports")
}

func (o *Import) updateFromConfig() error {
	conf := &Config{}
	if o.ConfigFile != "" {
		b, err := os.ReadFile(o.ConfigFile)
		if err != nil {
			return errors.Wrap(err, "reading config")
		}
		if err := yaml.UnmarshalStrict(b, conf); err != nil {
			return errors.Wrapf(err, "parsing config %s", o.ConfigFile)
		}
	}

	if o.CacheDir == defaultCacheDir && conf.CacheDir != "" {
		o.CacheDir = conf.CacheDir
	}
	if o.MappingFile == "" {
		o.MappingFile = conf.MappingFile
	}
	if o.Format == defaultFormat && conf.Format != "" {
		o.Format = conf.Format
	}
	if o.LogLevel == defaultLogLevel && conf.LogLevel != "" {
		o.LogLevel = conf.LogLevel
	}
	if o.Httpprofile == "" {
		o.Httpprofile = conf.Httpprofile
	}
	if o.ReportInterval == defaultReportInterval && conf.ReportInterval != 0 {
		o.ReportInterval = conf.ReportInterval
	}
	return nil
}

func (o *Import) check() []error {
	errs := []error{}
	if o.Read == "" {
		errs = append(errs, errors.New("missing -read"))
	}
	if !contains(Formats, o.Format) {
		errs = append(errs, errors.Errorf("unknown -format %q", o.Format))
	}
	switch o.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, errors.Errorf("unknown -loglevel %q", o.LogLevel))
	}
	if (o.Write || o.Overwritecache) && o.CacheDir == "" {
		errs = append(errs, errors.New("-write requires -cachedir"))
	}
	if o.ReportInterval <= 0 {
		errs = append(errs, errors.New("-report-interval needs to be positive"))
	}
	return errs
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

// CheckError collects all errors of the import options.
type CheckError []error

func (e CheckError) Error() string {
	return fmt.Sprintf("%d errors in config/options, first: %s", len(e), e[0])
}

// ParseImport parses the arguments of the import command. Validation
// errors are returned as CheckError.
func ParseImport(args []string) (*Import, error) {
	o := &Import{}
	flags := flag.NewFlagSet("import", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	addImportFlags(flags, o)

	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if err := o.updateFromConfig(); err != nil {
		return nil, err
	}
	if errs := o.check(); len(errs) != 0 {
		return nil, CheckError(errs)
	}
	return o, nil
}

// UsageImport prints the import flags to w.
func UsageImport(w io.Writer) {
	fmt.Fprintf(w, "Usage: %s import [args]\n\n", os.Args[0])
	flags := flag.NewFlagSet("import", flag.ContinueOnError)
	flags.SetOutput(w)
	addImportFlags(flags, &Import{})
	flags.PrintDefaults()
}

// ReportErrors prints err, one line per error of a CheckError.
func ReportErrors(w io.Writer, err error) {
	errs, ok := err.(CheckError)
	if !ok {
		fmt.Fprintln(w, err)
		return
	}
	fmt.Fprintln(w, "errors in config/options:")
	for _, err := range errs {
		fmt.Fprintf(w, "\t%s\n", err)
	}
}
