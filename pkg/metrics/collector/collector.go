package collector

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/iotaledger/hive.go/runtime/syncutils"
)

// Collector owns a prometheus registry and the collections of metrics registered to it.
type Collector struct {
	Registry *prometheus.Registry

	collections      map[string]*Collection
	collectionsMutex syncutils.RWMutex
}

// New creates a new Collector with an empty prometheus registry.
func New() *Collector {
	return &Collector{
		Registry:    prometheus.NewRegistry(),
		collections: make(map[string]*Collection),
	}
}

// RegisterCollection registers all metrics of the collection and runs their init functions.
func (c *Collector) RegisterCollection(collection *Collection) {
	c.collectionsMutex.Lock()
	defer c.collectionsMutex.Unlock()

	c.collections[collection.CollectionName] = collection
	for _, m := range collection.metrics {
		c.Registry.MustRegister(m.promMetric)
		if m.initValueFunc != nil {
			metricValue, labelValues := m.initValueFunc()
			m.update(metricValue, labelValues...)
		}
		if m.initFunc != nil {
			m.shutdownFunc = m.initFunc()
		}
	}
}

// Collect runs the collect functions of all registered metrics.
func (c *Collector) Collect() {
	c.collectionsMutex.RLock()
	defer c.collectionsMutex.RUnlock()

	for _, collection := range c.collections {
		for _, metric := range collection.metrics {
			metric.collect()
		}
	}
}

// Update updates the value of the existing metric defined by the subsystem and metricName.
// Note that the label values must be passed in the same order as they were defined in the metric, and must match the
// number of labels defined in the metric.
func (c *Collector) Update(subsystem string, metricName string, metricValue float64, labelValues ...string) {
	if m := c.getMetric(subsystem, metricName); m != nil {
		m.update(metricValue, labelValues...)
	}
}

// Increment increments the value of the existing metric defined by the subsystem and metricName.
func (c *Collector) Increment(subsystem string, metricName string, labelValues ...string) {
	if m := c.getMetric(subsystem, metricName); m != nil {
		m.increment(labelValues...)
	}
}

// ResetMetric resets the metric with the given name.
func (c *Collector) ResetMetric(subsystem string, metricName string) {
	if m := c.getMetric(subsystem, metricName); m != nil {
		m.reset()
	}
}

// Shutdown detaches all metrics from their sources.
func (c *Collector) Shutdown() {
	c.collectionsMutex.RLock()
	defer c.collectionsMutex.RUnlock()

	for _, collection := range c.collections {
		for _, metric := range collection.metrics {
			metric.shutdown()
		}
	}
}

func (c *Collector) getMetric(subsystem string, metricName string) *Metric {
	c.collectionsMutex.RLock()
	defer c.collectionsMutex.RUnlock()

	if collection, exists := c.collections[subsystem]; exists {
		return collection.GetMetric(metricName)
	}

	return nil
}
