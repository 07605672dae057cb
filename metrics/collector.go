// Package metrics exports dynarray statistics to Prometheus.
package metrics

import (
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/limpo1989/dynarray"
)

const namespace = "dynarray"

// Source is anything that reports array statistics, *dynarray.Array and
// *dynarray.Vector both do.
type Source interface {
	Stats() dynarray.Stats
}

// Collector is a prometheus.Collector reporting the size of tracked arrays,
// labelled by the name they were tracked under.
//
// Arrays are not safe for concurrent use: scrape only while the tracked
// arrays are not being mutated, or track arrays guarded by the caller.
type Collector struct {
	mtx     sync.Mutex
	sources map[string]Source

	length        *prometheus.Desc
	capacity      *prometheus.Desc
	bytes         *prometheus.Desc
	reallocations *prometheus.Desc
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	labels := []string{"array"}
	return &Collector{
		sources:       make(map[string]Source),
		length:        prometheus.NewDesc(prometheus.BuildFQName(namespace, "", "length"), "Number of elements stored in the array.", labels, nil),
		capacity:      prometheus.NewDesc(prometheus.BuildFQName(namespace, "", "capacity"), "Number of elements the array holds without reallocating.", labels, nil),
		bytes:         prometheus.NewDesc(prometheus.BuildFQName(namespace, "", "bytes"), "Size of the array buffer in bytes.", labels, nil),
		reallocations: prometheus.NewDesc(prometheus.BuildFQName(namespace, "", "reallocations_total"), "Total number of buffer reallocations.", labels, nil),
	}
}

// Track starts reporting s under name, replacing any source of the same name.
func (c *Collector) Track(name string, s Source) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.sources[name] = s
}

// Untrack stops reporting the source named name.
func (c *Collector) Untrack(name string) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	delete(c.sources, name)
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.length
	ch <- c.capacity
	ch <- c.bytes
	ch <- c.reallocations
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	names := make([]string, 0, len(c.sources))
	for name := range c.sources {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		st := c.sources[name].Stats()
		ch <- prometheus.MustNewConstMetric(c.length, prometheus.GaugeValue, float64(st.Length), name)
		ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(st.Capacity), name)
		ch <- prometheus.MustNewConstMetric(c.bytes, prometheus.GaugeValue, float64(st.Bytes), name)
		ch <- prometheus.MustNewConstMetric(c.reallocations, prometheus.CounterValue, float64(st.Reallocations), name)
	}
}
