package stats

import (
	"net/http"
	"net/http/pprof"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/omniscale/osmworld/logging"
)

var log = logging.NewLogger("stats")

// Handler serves the pprof endpoints under /debug/pprof/ and the
// metrics of m under /metrics.
func Handler(m *Metrics) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	if m != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
	}
	return mux
}

func StartHttpPProf(bind string, m *Metrics) {
	go func() {
		log.Printf("listening on %s", bind)
		if err := http.ListenAndServe(bind, Handler(m)); err != nil {
			log.Errorf("http: %s", err)
		}
	}()
}
