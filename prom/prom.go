// Package prom exposes a cache's counters as Prometheus metrics.
//
// The collector is stateless: every scrape reads the live counters, so
// one cache can back any number of registries and nothing is buffered.
package prom

import "github.com/prometheus/client_golang/prometheus"

type (
	// Source is the read-only face of a cache. Every
	// *pseudolru.Cache instantiation satisfies it.
	Source interface {
		Hits() uint64
		Misses() uint64
		Evictions() uint64
		Len() int
		Cap() int
	}
	// Collector implements [prometheus.Collector] over a [Source].
	Collector struct {
		source Source
		hits, misses, evictions,
		entries, capacity *prometheus.Desc
	}
)

// NewCollector describes source's metrics under namespace, as
// <namespace>_cache_<name>.
func NewCollector(source Source, namespace string) *Collector {
	describe := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", name),
			help, nil, nil)
	}
	return &Collector{
		source:    source,
		hits:      describe("hits_total", "Loads served from cache."),
		misses:    describe("misses_total", "Loads that ran their fetch function."),
		evictions: describe("evictions_total", "Live payloads dropped by the cache."),
		entries:   describe("entries", "Occupied cache slots."),
		capacity:  describe("capacity", "Total cache slots."),
	}
}

// Describe implements [prometheus.Collector].
func (c *Collector) Describe(descs chan<- *prometheus.Desc) {
	descs <- c.hits
	descs <- c.misses
	descs <- c.evictions
	descs <- c.entries
	descs <- c.capacity
}

// Collect implements [prometheus.Collector].
func (c *Collector) Collect(metrics chan<- prometheus.Metric) {
	counter := func(desc *prometheus.Desc, value uint64) prometheus.Metric {
		return prometheus.MustNewConstMetric(
			desc, prometheus.CounterValue, float64(value))
	}
	gauge := func(desc *prometheus.Desc, value int) prometheus.Metric {
		return prometheus.MustNewConstMetric(
			desc, prometheus.GaugeValue, float64(value))
	}
	metrics <- counter(c.hits, c.source.Hits())
	metrics <- counter(c.misses, c.source.Misses())
	metrics <- counter(c.evictions, c.source.Evictions())
	metrics <- gauge(c.entries, c.source.Len())
	metrics <- gauge(c.capacity, c.source.Cap())
}
