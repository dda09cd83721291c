package fusionstats

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector exports a Set as prometheus gauges named <namespace>_<counter>.
// Counters can go down (reference counts, in-flight requests), so they are
// reported as gauges rather than prometheus counters.
type Collector struct {
	set   *Set
	descs []*prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector describes every counter of set up front.
func NewCollector(namespace string, set *Set) *Collector {
	c := &Collector{set: set, descs: make([]*prometheus.Desc, set.Len())}
	for i, n := range set.names {
		c.descs[i] = prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", n),
			"Driver atomic counter "+n+".",
			nil, nil,
		)
	}
	return c
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range c.descs {
		ch <- d
	}
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for i := range c.set.slots {
		ch <- prometheus.MustNewConstMetric(c.descs[i], prometheus.GaugeValue, float64(c.set.slots[i].c.Read()))
	}
}
