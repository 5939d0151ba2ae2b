package stats

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Reasons for recoverable import problems.
const (
	ReasonNumber       = "number"
	ReasonDuplicateTag = "duplicate_tag"
	ReasonDuplicateId  = "duplicate_id"
	ReasonElement      = "unexpected_element"
	ReasonMemberType   = "member_type"
	ReasonNested       = "nested_relation"
)

// Metrics of one import run. All methods are safe to call on a nil
// *Metrics.
type Metrics struct {
	Registry *prometheus.Registry

	elements  *prometheus.CounterVec
	dropped   *prometheus.CounterVec
	warnings  *prometheus.CounterVec
	names     prometheus.Gauge
	relations *prometheus.CounterVec

	points RpsCounter
	ways   RpsCounter
	rels   RpsCounter
}

// NewMetrics registers all collectors in a new registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		elements: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "osmworld_elements_total",
				Help: "Number of points, ways and relations added to the world",
			},
			[]string{"kind"},
		),
		dropped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "osmworld_elements_dropped_total",
				Help: "Number of elements that were parsed but not added",
			},
			[]string{"kind", "reason"},
		),
		warnings: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "osmworld_warnings_total",
				Help: "Number of recoverable problems in the input",
			},
			[]string{"component", "reason"},
		),
		names: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "osmworld_names",
				Help: "Number of distinct interned names",
			},
		),
		relations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "osmworld_relations_resolved_total",
				Help: "Number of resolved relations by result",
			},
			[]string{"result"},
		),
	}
}

func (m *Metrics) AddPoints(n int) {
	if m == nil {
		return
	}
	m.elements.WithLabelValues("point").Add(float64(n))
	m.points.Add(n)
}

func (m *Metrics) AddWays(n int) {
	if m == nil {
		return
	}
	m.elements.WithLabelValues("way").Add(float64(n))
	m.ways.Add(n)
}

func (m *Metrics) AddRelations(n int) {
	if m == nil {
		return
	}
	m.elements.WithLabelValues("relation").Add(float64(n))
	m.rels.Add(n)
}

// Dropped counts an element of kind that was not added.
func (m *Metrics) Dropped(kind, reason string) {
	if m == nil {
		return
	}
	m.dropped.WithLabelValues(kind, reason).Inc()
}

// Warn counts a recoverable problem found by component.
func (m *Metrics) Warn(component, reason string) {
	if m == nil {
		return
	}
	m.warnings.WithLabelValues(component, reason).Inc()
}

// Resolved counts a relation with result kept, dropped or skipped.
func (m *Metrics) Resolved(result string) {
	if m == nil {
		return
	}
	m.relations.WithLabelValues(result).Inc()
}

func (m *Metrics) SetNames(n int) {
	if m == nil {
		return
	}
	m.names.Set(float64(n))
}
