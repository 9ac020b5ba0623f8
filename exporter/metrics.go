package exporter

import (
	"context"
	"fmt"
	"reflect"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/scitags/sysinfo-go/netlink"
	"github.com/scitags/sysinfo-go/types"
)

// Metric labels (note these are **always** strings):
//
//	interface: the interface name
//	family: either ipv4 or ipv6
//	address: the address in the same notation the CLI uses
//	prefix: the prefix length
//	class: the special-purpose class of the address, if any
var (
	ifaceLabels   = []string{"interface", "family"}
	addressLabels = []string{"interface", "family", "address", "prefix", "class"}
)

type metrics struct {
	Interfaces  prometheus.Gauge
	Addresses   *prometheus.GaugeVec
	AddressInfo *prometheus.GaugeVec

	MemoryTotal prometheus.Gauge
	MemoryAvail prometheus.Gauge
	CPUs        prometheus.Gauge
	CgroupInfo  *prometheus.GaugeVec

	Enumerations        *prometheus.CounterVec
	EnumerationDuration *prometheus.HistogramVec
	Datagrams           *prometheus.CounterVec
	Malformed           *prometheus.CounterVec
}

func newMetrics(namespace string) *metrics {
	m := &metrics{
		Interfaces: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "interfaces",
			Help:      "Interfaces with at least one address",
		}),
		Addresses: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "interface_addresses",
			Help:      "Addresses assigned to an interface",
		}, ifaceLabels),
		AddressInfo: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "interface_address_info",
			Help:      "Address assigned to an interface, always 1",
		}, addressLabels),

		MemoryTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "memory_total_bytes",
			Help:      "Physical memory [B]",
		}),
		MemoryAvail: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "memory_available_bytes",
			Help:      "Available physical memory [B]",
		}),
		CPUs: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cpus",
			Help:      "CPUs the process may run on",
		}),
		CgroupInfo: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cgroup_info",
			Help:      "Cgroup hierarchy mode, always 1",
		}, []string{"mode"}),

		Enumerations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enumerations_total",
			Help:      "Interface enumerations by outcome",
		}, []string{"backend", "result"}),
		EnumerationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "enumeration_duration_seconds",
			Help:      "Time taken by an interface enumeration [s]",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"backend"}),
		Datagrams: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "netlink_datagrams_total",
			Help:      "Netlink datagrams walked while dumping addresses",
		}, []string{"backend"}),
		Malformed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "netlink_malformed_total",
			Help:      "Malformed netlink messages or attributes that stopped a walk",
		}, []string{"backend", "kind"}),
	}

	return m
}

// (Nastily) use reflection to avoid having to manually list every metric.
func (m *metrics) collectors() ([]prometheus.Collector, error) {
	v := reflect.ValueOf(*m)

	cs := make([]prometheus.Collector, 0, v.NumField())
	for i := 0; i < v.NumField(); i++ {
		c, ok := v.Field(i).Interface().(prometheus.Collector)
		if !ok {
			return nil, fmt.Errorf("error casting the interface for index %d", i)
		}
		cs = append(cs, c)
	}
	logger.Log(context.Background(), types.LevelTrace, "gathered collectors", "n", len(cs))

	return cs, nil
}

func (m *metrics) updateRegistry(reg *types.Registry) {
	m.Addresses.Reset()
	m.AddressInfo.Reset()
	m.Interfaces.Set(float64(reg.Len()))

	for iface := range reg.All() {
		name := iface.Name().String()
		for addr := range iface.Addresses() {
			family := addr.IP.Family().String()
			class, _ := types.Classify(addr.IP.Addr())

			m.Addresses.WithLabelValues(name, family).Inc()
			m.AddressInfo.WithLabelValues(name, family, addr.IP.String(),
				strconv.Itoa(int(addr.Prefix)), class).Set(1)
		}
	}
}

func (m *metrics) clearRegistry() {
	m.Addresses.Reset()
	m.AddressInfo.Reset()
	m.Interfaces.Set(0)
}

func (m *metrics) updateStats(backend string, stats netlink.Stats) {
	m.Datagrams.WithLabelValues(backend).Add(float64(stats.Datagrams))
	m.Malformed.WithLabelValues(backend, "message").Add(float64(stats.MalformedMessages))
	m.Malformed.WithLabelValues(backend, "attribute").Add(float64(stats.MalformedAttributes))
}

func (m *metrics) updateHost(r *types.HostReport) {
	m.MemoryTotal.Set(float64(r.Memory.Total))
	m.MemoryAvail.Set(float64(r.Memory.Avail))
	m.CPUs.Set(float64(r.CPUCount))

	m.CgroupInfo.Reset()
	if r.Cgroup.Mode != "" {
		m.CgroupInfo.WithLabelValues(r.Cgroup.Mode).Set(1)
	}
}
