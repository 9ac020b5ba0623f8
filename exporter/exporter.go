// Package exporter exposes interface addresses and host facts as
// Prometheus metrics. Everything is gathered afresh on every scrape.
package exporter

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/scitags/sysinfo-go/hostinfo"
	"github.com/scitags/sysinfo-go/netlink"
	"github.com/scitags/sysinfo-go/types"
)

var logger *slog.Logger

// Enumerator is satisfied by every interface enumeration backend.
type Enumerator interface {
	Enumerate() (*types.Registry, error)
	String() string
}

// statsEnumerator is implemented by the netlink backend.
type statsEnumerator interface {
	EnumerateWithStats() (*types.Registry, netlink.Stats, error)
}

type Exporter struct {
	Config

	enumerator Enumerator
	host       func() (*types.HostReport, error)

	// Serialises scrapes: the gauges are reset and refilled on each one.
	mu         sync.Mutex
	m          *metrics
	collectors []prometheus.Collector

	reg *prometheus.Registry
}

func (e *Exporter) String() string {
	return "Prometheus"
}

func NewExporter(c *Config, enumerator Enumerator) (*Exporter, error) {
	if c == nil {
		c = &DefaultConfig
	}

	if c.Log {
		logger = slog.Default().With("t", "prometheus")
	} else {
		logger = slog.New(slog.DiscardHandler)
	}

	logger.Debug("initialising the prometheus exporter", "backend", enumerator)

	e := &Exporter{
		Config:     *c,
		enumerator: enumerator,
		host:       hostinfo.Collect,
		m:          newMetrics(c.Namespace),
	}

	cs, err := e.m.collectors()
	if err != nil {
		return nil, fmt.Errorf("couldn't gather the metrics: %w", err)
	}
	e.collectors = cs

	// Create a non-global registry.
	e.reg = prometheus.NewRegistry()
	if err := e.reg.Register(e); err != nil {
		return nil, fmt.Errorf("error registering the metrics: %w", err)
	}

	return e, nil
}

// Handler serves the metrics in the Prometheus exposition format.
func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.reg, promhttp.HandlerOpts{Registry: e.reg})
}

func (e *Exporter) Registry() *prometheus.Registry {
	return e.reg
}

func (e *Exporter) Describe(ch chan<- *prometheus.Desc) {
	for _, c := range e.collectors {
		c.Describe(ch)
	}
}

func (e *Exporter) Collect(ch chan<- prometheus.Metric) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.refresh()

	for _, c := range e.collectors {
		c.Collect(ch)
	}
}

func (e *Exporter) refresh() {
	backend := e.enumerator.String()

	start := time.Now()
	reg, err := e.enumerate(backend)
	e.m.EnumerationDuration.WithLabelValues(backend).Observe(time.Since(start).Seconds())

	if err != nil {
		logger.Warn("couldn't enumerate the interfaces", "backend", backend, "err", err)
		e.m.Enumerations.WithLabelValues(backend, "error").Inc()
		e.m.clearRegistry()
	} else {
		e.m.Enumerations.WithLabelValues(backend, "ok").Inc()
		e.m.updateRegistry(reg)
	}

	host, err := e.host()
	if err != nil {
		logger.Warn("couldn't collect every host fact", "err", err)
	}
	if host != nil {
		e.m.updateHost(host)
	}
}

func (e *Exporter) enumerate(backend string) (*types.Registry, error) {
	se, ok := e.enumerator.(statsEnumerator)
	if !ok {
		return e.enumerator.Enumerate()
	}

	reg, stats, err := se.EnumerateWithStats()
	e.m.updateStats(backend, stats)
	return reg, err
}
