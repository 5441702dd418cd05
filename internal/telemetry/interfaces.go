package telemetry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/pythonsnake602/MiniBit"

// Logger exposes the logging capabilities required by server components.
type Logger interface {
	Printf(format string, args ...any)
}

// LoggerFunc adapts functions into the Logger interface.
type LoggerFunc func(format string, args ...any)

// Printf implements Logger for LoggerFunc.
func (f LoggerFunc) Printf(format string, args ...any) {
	if f == nil {
		return
	}
	f(format, args...)
}

// WrapLogger adapts a zerolog logger to the Logger interface. Every line is
// written at info level.
func WrapLogger(logger zerolog.Logger) Logger {
	return &loggerAdapter{logger: logger}
}

type loggerAdapter struct {
	logger zerolog.Logger
}

func (l *loggerAdapter) Printf(format string, args ...any) {
	if l == nil {
		return
	}
	l.logger.Info().Msg(fmt.Sprintf(format, args...))
}

// Metrics exposes the telemetry methods required by server components.
type Metrics interface {
	Add(key string, delta uint64)
	Store(key string, value uint64)
	Observe(key string, value float64)
}

// NopMetrics discards every measurement.
type NopMetrics struct{}

func (NopMetrics) Add(string, uint64)      {}
func (NopMetrics) Store(string, uint64)    {}
func (NopMetrics) Observe(string, float64) {}

// Counters keeps the latest value of every key in memory. Observations keep
// the last value seen.
type Counters struct {
	mu     sync.Mutex
	values map[string]uint64
	gauges map[string]float64
}

func NewCounters() *Counters {
	return &Counters{values: make(map[string]uint64), gauges: make(map[string]float64)}
}

func (c *Counters) Add(key string, delta uint64) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.values[key] += delta
	c.mu.Unlock()
}

func (c *Counters) Store(key string, value uint64) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.values[key] = value
	c.mu.Unlock()
}

func (c *Counters) Observe(key string, value float64) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.gauges[key] = value
	c.mu.Unlock()
}

// Snapshot copies the integer values.
func (c *Counters) Snapshot() map[string]uint64 {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]uint64, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}

// Keys lists every integer key in sorted order.
func (c *Counters) Keys() []string {
	snapshot := c.Snapshot()
	keys := make([]string, 0, len(snapshot))
	for k := range snapshot {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Multi forwards every measurement to each target.
func Multi(targets ...Metrics) Metrics {
	filtered := make(multiMetrics, 0, len(targets))
	for _, target := range targets {
		if target != nil {
			filtered = append(filtered, target)
		}
	}
	return filtered
}

type multiMetrics []Metrics

func (m multiMetrics) Add(key string, delta uint64) {
	for _, target := range m {
		target.Add(key, delta)
	}
}

func (m multiMetrics) Store(key string, value uint64) {
	for _, target := range m {
		target.Store(key, value)
	}
}

func (m multiMetrics) Observe(key string, value float64) {
	for _, target := range m {
		target.Observe(key, value)
	}
}

// NewOtelMetrics records measurements on the global meter. Instruments are
// created on first use; keys become instrument names. Instrument creation
// errors disable the key instead of failing the caller.
func NewOtelMetrics(mode string) Metrics {
	return &otelMetrics{
		meter:      otel.Meter(instrumentationName),
		mode:       mode,
		counters:   make(map[string]metric.Int64Counter),
		gauges:     make(map[string]metric.Int64Gauge),
		histograms: make(map[string]metric.Float64Histogram),
	}
}

type otelMetrics struct {
	meter metric.Meter
	mode  string

	mu         sync.Mutex
	counters   map[string]metric.Int64Counter
	gauges     map[string]metric.Int64Gauge
	histograms map[string]metric.Float64Histogram
}

func (m *otelMetrics) attrs() metric.MeasurementOption {
	return metric.WithAttributes(modeAttribute(m.mode))
}

func (m *otelMetrics) Add(key string, delta uint64) {
	m.mu.Lock()
	counter, ok := m.counters[key]
	if !ok {
		var err error
		if counter, err = m.meter.Int64Counter(key); err != nil {
			counter = nil
		}
		m.counters[key] = counter
	}
	m.mu.Unlock()
	if counter == nil {
		return
	}
	counter.Add(context.Background(), int64(delta), m.attrs())
}

func (m *otelMetrics) Store(key string, value uint64) {
	m.mu.Lock()
	gauge, ok := m.gauges[key]
	if !ok {
		var err error
		if gauge, err = m.meter.Int64Gauge(key); err != nil {
			gauge = nil
		}
		m.gauges[key] = gauge
	}
	m.mu.Unlock()
	if gauge == nil {
		return
	}
	gauge.Record(context.Background(), int64(value), m.attrs())
}

func (m *otelMetrics) Observe(key string, value float64) {
	m.mu.Lock()
	histogram, ok := m.histograms[key]
	if !ok {
		var err error
		if histogram, err = m.meter.Float64Histogram(key, metric.WithUnit("ms")); err != nil {
			histogram = nil
		}
		m.histograms[key] = histogram
	}
	m.mu.Unlock()
	if histogram == nil {
		return
	}
	histogram.Record(context.Background(), value, m.attrs())
}
