package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/omniscale/osmworld"
	"github.com/omniscale/osmworld/cache/query"
	"github.com/omniscale/osmworld/config"
	"github.com/omniscale/osmworld/import_"
	"github.com/omniscale/osmworld/logging"
)

var log = logging.NewLogger("")

func PrintCmds() {
	fmt.Fprintf(os.Stderr, "Usage: %s COMMAND [args]\n\n", os.Args[0])
	fmt.Println("Available commands:")
	fmt.Println("\timport")
	fmt.Println("\tquery-cache")
	fmt.Println("\tversion")
}

func Main(usage func()) {
	if len(os.Args) <= 1 {
		usage()
		logging.Shutdown()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch os.Args[1] {
	case "import":
		opts, err := config.ParseImport(os.Args[2:])
		if err != nil {
			config.ReportErrors(os.Stderr, err)
			config.UsageImport(os.Stderr)
			logging.Shutdown()
			os.Exit(2)
		}
		if _, err := import_.Import(ctx, opts); err != nil {
			log.Fatal(err)
		}
	case "query-cache":
		query.Query(os.Args[2:])
	case "version":
		fmt.Println(osmworld.Version)
		os.Exit(0)
	default:
		usage()
		log.Fatalf("invalid command: '%s'", os.Args[1])
	}
	logging.Shutdown()
	os.Exit(0)
}

func main() {
	Main(PrintCmds)
}
