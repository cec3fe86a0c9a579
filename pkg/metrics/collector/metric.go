package collector

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/iotaledger/hive.go/runtime/options"
)

type MetricType uint8

const (
	// Gauge is a metric that represents a single numerical value that can arbitrarily go up and down.
	// During metric Update the collected value is set, thus previous value is overwritten.
	Gauge MetricType = iota
	// Counter is a cumulative metric that represents a single numerical value that only ever goes up.
	// During metric Update the collected value is added to its current value.
	Counter
)

// Metric is a single metric that is registered to the prometheus registry. Its value is either pulled with the
// collect function or pushed by the hooks installed in its init function.
type Metric struct {
	Name          string
	Type          MetricType
	Namespace     string
	help          string
	labels        []string
	collectFunc   func() (value float64, labelValues []string)
	initValueFunc func() (value float64, labelValues []string)
	initFunc      func() (shutdown func())
	shutdownFunc  func()

	promMetric prometheus.Collector

	once sync.Once
}

// NewMetric creates a new metric with given name and options.
func NewMetric(name string, opts ...options.Option[Metric]) *Metric {
	return options.Apply(&Metric{
		Name: name,
	}, opts)
}

func (m *Metric) initPromMetric() {
	m.once.Do(func() {
		switch m.Type {
		case Gauge:
			opts := prometheus.GaugeOpts{Name: m.Name, Namespace: m.Namespace, Help: m.help}
			if len(m.labels) > 0 {
				m.promMetric = prometheus.NewGaugeVec(opts, m.labels)

				return
			}
			m.promMetric = prometheus.NewGauge(opts)
		case Counter:
			opts := prometheus.CounterOpts{Name: m.Name, Namespace: m.Namespace, Help: m.help}
			if len(m.labels) > 0 {
				m.promMetric = prometheus.NewCounterVec(opts, m.labels)

				return
			}
			m.promMetric = prometheus.NewCounter(opts)
		}
	})
}

func (m *Metric) collect() {
	if m.collectFunc != nil {
		value, labelValues := m.collectFunc()
		m.update(value, labelValues...)
	}
}

func (m *Metric) update(metricValue float64, labelValues ...string) {
	if len(labelValues) != len(m.labels) {
		return
	}

	switch metric := m.promMetric.(type) {
	case prometheus.Gauge:
		metric.Set(metricValue)
	case *prometheus.GaugeVec:
		metric.WithLabelValues(labelValues...).Set(metricValue)
	case prometheus.Counter:
		metric.Add(metricValue)
	case *prometheus.CounterVec:
		metric.WithLabelValues(labelValues...).Add(metricValue)
	}
}

func (m *Metric) increment(labelValues ...string) {
	if len(labelValues) != len(m.labels) {
		return
	}

	switch metric := m.promMetric.(type) {
	case prometheus.Gauge:
		metric.Inc()
	case *prometheus.GaugeVec:
		metric.WithLabelValues(labelValues...).Inc()
	case prometheus.Counter:
		metric.Inc()
	case *prometheus.CounterVec:
		metric.WithLabelValues(labelValues...).Inc()
	}
}

func (m *Metric) reset() {
	switch metric := m.promMetric.(type) {
	case prometheus.Gauge:
		metric.Set(0)
	case *prometheus.GaugeVec:
		metric.Reset()
	case *prometheus.CounterVec:
		metric.Reset()
	}
}

func (m *Metric) shutdown() {
	if m.shutdownFunc != nil {
		m.shutdownFunc()
		m.shutdownFunc = nil
	}
}

// WithType sets the metric type: Gauge or Counter.
func WithType(t MetricType) options.Option[Metric] {
	return func(m *Metric) {
		m.Type = t
	}
}

// WithHelp sets the help text for the metric.
func WithHelp(help string) options.Option[Metric] {
	return func(m *Metric) {
		m.help = help
	}
}

// WithLabels allows to define labels for the metric, they will need to be passed in the same order to the Update.
func WithLabels(labels ...string) options.Option[Metric] {
	return func(m *Metric) {
		m.labels = labels
	}
}

// WithCollectFunc allows to define a function that will be called on each Collect.
// Should be used when metric value can be read at any time and we don't need to attach to an event.
func WithCollectFunc(collectFunc func() (metricValue float64, labelValues []string)) options.Option[Metric] {
	return func(m *Metric) {
		m.collectFunc = collectFunc
	}
}

// WithInitValueFunc allows to set function that sets an initial value for a metric.
func WithInitValueFunc(initValueFunc func() (metricValue float64, labelValues []string)) options.Option[Metric] {
	return func(m *Metric) {
		m.initValueFunc = initValueFunc
	}
}

// WithInitFunc allows to define a function that will be called once when the metric is registered. It should hook
// the metric to the events it is updated on and return a function that removes the hooks again.
func WithInitFunc(initFunc func() (shutdown func())) options.Option[Metric] {
	return func(m *Metric) {
		m.initFunc = initFunc
	}
}
