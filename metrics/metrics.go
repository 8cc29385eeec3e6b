// Package metrics exports layout progress as Prometheus collectors.
//
// All series carry a "graph" label naming the hierarchy (the CLI uses the
// input file name); per-level series add a "level" label holding the depth,
// 0 being the root.
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/fourd/layout"
)

// Collector owns the fourd series of one registry.
type Collector struct {
	ticks       *prometheus.CounterVec
	tickSeconds *prometheus.HistogramVec
	vertices    *prometheus.GaugeVec
	edges       *prometheus.GaugeVec
	matched     *prometheus.GaugeVec
	flips       *flipCounts
}

type levelKey struct {
	graph string
	depth int
}

// New registers the fourd collectors with reg. A nil reg yields working but
// unregistered collectors.
func New(reg prometheus.Registerer) *Collector {
	f := promauto.With(reg)
	graph := []string{"graph"}
	level := []string{"graph", "level"}

	return &Collector{
		ticks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "fourd_ticks_total",
			Help: "Layout ticks completed.",
		}, graph),
		tickSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fourd_tick_seconds",
			Help:    "Wall time of one hierarchy tick.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, graph),
		vertices: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "fourd_level_vertices",
			Help: "Live vertices per hierarchy level.",
		}, level),
		edges: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "fourd_level_edges",
			Help: "Live edges per hierarchy level.",
		}, level),
		matched: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "fourd_level_matched",
			Help: "Matched edges per hierarchy level.",
		}, level),
		flips: newFlipCounts(reg),
	}
}

// Observe records one tick of g that took dur.
func (c *Collector) Observe(graph string, g *layout.Graph, dur time.Duration) {
	c.ticks.WithLabelValues(graph).Inc()
	c.tickSeconds.WithLabelValues(graph).Observe(dur.Seconds())
	c.ObserveLevels(graph, g)
}

// ObserveLevels refreshes the per-level series of g without counting a tick.
func (c *Collector) ObserveLevels(graph string, g *layout.Graph) {
	for _, st := range g.Stats() {
		lvl := strconv.Itoa(st.Depth)
		c.vertices.WithLabelValues(graph, lvl).Set(float64(st.Vertices))
		c.edges.WithLabelValues(graph, lvl).Set(float64(st.Edges))
		c.matched.WithLabelValues(graph, lvl).Set(float64(st.Matched))
		c.flips.set(levelKey{graph: graph, depth: st.Depth}, st.Flips)
	}
}

var flipsDesc = prometheus.NewDesc(
	"fourd_matching_flips_total",
	"Matched/unmatched transitions per hierarchy level.",
	[]string{"graph", "level"}, nil,
)

// flipCounts mirrors the flip counters kept by each level's matching. They
// restart at zero after Graph.Clear, which scrapers read as a counter reset.
type flipCounts struct {
	mu sync.Mutex
	m  map[levelKey]uint64
}

func newFlipCounts(reg prometheus.Registerer) *flipCounts {
	fc := &flipCounts{m: make(map[levelKey]uint64)}
	if reg != nil {
		reg.MustRegister(fc)
	}
	return fc
}

func (fc *flipCounts) set(k levelKey, v uint64) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.m[k] = v
}

// Describe implements prometheus.Collector.
func (fc *flipCounts) Describe(ch chan<- *prometheus.Desc) { ch <- flipsDesc }

// Collect implements prometheus.Collector.
func (fc *flipCounts) Collect(ch chan<- prometheus.Metric) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	for k, v := range fc.m {
		ch <- prometheus.MustNewConstMetric(flipsDesc, prometheus.CounterValue, float64(v), k.graph, strconv.Itoa(k.depth))
	}
}
