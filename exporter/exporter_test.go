package exporter

import (
	"errors"
	"io"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/scitags/sysinfo-go/netlink"
	"github.com/scitags/sysinfo-go/types"
)

type fakeEnumerator struct {
	reg   *types.Registry
	err   error
	calls int
}

func (f *fakeEnumerator) Enumerate() (*types.Registry, error) {
	f.calls++
	return f.reg, f.err
}

func (f *fakeEnumerator) String() string {
	return "fake"
}

type fakeStatsEnumerator struct {
	fakeEnumerator
	stats netlink.Stats
}

func (f *fakeStatsEnumerator) EnumerateWithStats() (*types.Registry, netlink.Stats, error) {
	f.calls++
	return f.reg, f.stats, f.err
}

func testRegistry() *types.Registry {
	var b types.Builder
	b.Add(types.NewInterfaceName("lo"), types.Address{IP: types.IPv4([4]byte{127, 0, 0, 1}), Prefix: 8})
	b.Add(types.NewInterfaceName("lo"), types.Address{IP: types.IPv6([8]uint16{7: 1}), Prefix: 128})
	b.Add(types.NewInterfaceName("eth0"), types.Address{IP: types.IPv4([4]byte{10, 0, 2, 15}), Prefix: 24})
	b.Add(types.NewInterfaceName("eth0"), types.Address{IP: types.IPv4([4]byte{10, 0, 2, 16}), Prefix: 24})
	return b.Freeze()
}

func testHost() (*types.HostReport, error) {
	r := types.NewHostReport(types.NewHostName("node01"), types.SystemMemory{Total: 2048, Avail: 1024}, 4)
	r.Cgroup = types.CgroupInfo{Mode: "unified", Path: "/system.slice"}
	return r, nil
}

func newTestExporter(t *testing.T, e Enumerator) *Exporter {
	t.Helper()

	conf := DefaultConfig
	conf.Log = false

	exp, err := NewExporter(&conf, e)
	if err != nil {
		t.Fatalf("couldn't create the exporter: %v", err)
	}
	exp.host = testHost
	return exp
}

func TestReflection(t *testing.T) {
	x := newMetrics("test")

	v := reflect.ValueOf(*x)

	for i := 0; i < v.NumField(); i++ {
		vv := v.Field(i).Interface()
		_, ok := vv.(prometheus.Collector)
		if !ok {
			t.Errorf("error casting the interface for %d", i)
		}
	}
}

func TestCollect(t *testing.T) {
	fe := &fakeEnumerator{reg: testRegistry()}
	exp := newTestExporter(t, fe)

	expected := `
# HELP sysinfo_interfaces Interfaces with at least one address
# TYPE sysinfo_interfaces gauge
sysinfo_interfaces 2
# HELP sysinfo_interface_addresses Addresses assigned to an interface
# TYPE sysinfo_interface_addresses gauge
sysinfo_interface_addresses{family="ipv4",interface="eth0"} 2
sysinfo_interface_addresses{family="ipv4",interface="lo"} 1
sysinfo_interface_addresses{family="ipv6",interface="lo"} 1
# HELP sysinfo_memory_total_bytes Physical memory [B]
# TYPE sysinfo_memory_total_bytes gauge
sysinfo_memory_total_bytes 2048
# HELP sysinfo_memory_available_bytes Available physical memory [B]
# TYPE sysinfo_memory_available_bytes gauge
sysinfo_memory_available_bytes 1024
# HELP sysinfo_cpus CPUs the process may run on
# TYPE sysinfo_cpus gauge
sysinfo_cpus 4
# HELP sysinfo_cgroup_info Cgroup hierarchy mode, always 1
# TYPE sysinfo_cgroup_info gauge
sysinfo_cgroup_info{mode="unified"} 1
# HELP sysinfo_enumerations_total Interface enumerations by outcome
# TYPE sysinfo_enumerations_total counter
sysinfo_enumerations_total{backend="fake",result="ok"} 1
`

	err := testutil.GatherAndCompare(exp.Registry(), strings.NewReader(expected),
		"sysinfo_interfaces",
		"sysinfo_interface_addresses",
		"sysinfo_memory_total_bytes",
		"sysinfo_memory_available_bytes",
		"sysinfo_cpus",
		"sysinfo_cgroup_info",
		"sysinfo_enumerations_total",
	)
	if err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}

	if n := testutil.CollectAndCount(exp, "sysinfo_interface_address_info"); n != 4 {
		t.Errorf("got %d address series, want 4", n)
	}

	if fe.calls != 2 {
		t.Errorf("got %d enumerations, want one per scrape (2)", fe.calls)
	}
}

func TestCollectEnumerationError(t *testing.T) {
	fe := &fakeEnumerator{reg: testRegistry()}
	exp := newTestExporter(t, fe)

	if n := testutil.CollectAndCount(exp, "sysinfo_interface_address_info"); n != 4 {
		t.Fatalf("got %d address series, want 4", n)
	}

	// A failed enumeration mustn't leave stale addresses behind.
	fe.reg, fe.err = nil, netlink.ErrTransport
	if n := testutil.CollectAndCount(exp, "sysinfo_interface_address_info"); n != 0 {
		t.Errorf("got %d address series after a failure, want 0", n)
	}

	if got := testutil.ToFloat64(exp.m.Enumerations.WithLabelValues("fake", "error")); got != 1 {
		t.Errorf("got %v failed enumerations, want 1", got)
	}
	if got := testutil.ToFloat64(exp.m.Interfaces); got != 0 {
		t.Errorf("got %v interfaces, want 0", got)
	}
	if got := testutil.ToFloat64(exp.m.CPUs); got != 4 {
		t.Errorf("host facts weren't updated: got %v CPUs, want 4", got)
	}
}

func TestCollectHostError(t *testing.T) {
	exp := newTestExporter(t, &fakeEnumerator{reg: testRegistry()})
	exp.host = func() (*types.HostReport, error) {
		return types.NewHostReport(types.NewHostName("node01"), types.SystemMemory{}, 2), errors.New("no meminfo")
	}

	testutil.CollectAndCount(exp)

	if got := testutil.ToFloat64(exp.m.CPUs); got != 2 {
		t.Errorf("got %v CPUs, want 2", got)
	}
	if got := testutil.ToFloat64(exp.m.MemoryTotal); got != 0 {
		t.Errorf("got %v bytes of memory, want 0", got)
	}
}

func TestCollectStats(t *testing.T) {
	fe := &fakeStatsEnumerator{
		fakeEnumerator: fakeEnumerator{reg: testRegistry()},
		stats:          netlink.Stats{Datagrams: 3, MalformedAttributes: 1},
	}
	exp := newTestExporter(t, fe)

	testutil.CollectAndCount(exp)
	testutil.CollectAndCount(exp)

	if got := testutil.ToFloat64(exp.m.Datagrams.WithLabelValues("fake")); got != 6 {
		t.Errorf("got %v datagrams, want 6", got)
	}
	if got := testutil.ToFloat64(exp.m.Malformed.WithLabelValues("fake", "attribute")); got != 2 {
		t.Errorf("got %v malformed attributes, want 2", got)
	}
}

func TestHandler(t *testing.T) {
	exp := newTestExporter(t, &fakeEnumerator{reg: testRegistry()})

	rec := httptest.NewRecorder()
	exp.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	if rec.Code != 200 {
		t.Fatalf("got status %d, want 200", rec.Code)
	}

	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{
		`sysinfo_interface_addresses{family="ipv4",interface="eth0"} 2`,
		`sysinfo_cpus 4`,
		`sysinfo_enumeration_duration_seconds_count{backend="fake"} 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("%q is missing from the exposition", want)
		}
	}
}

func TestConfigDefaults(t *testing.T) {
	var c Config
	if err := c.UnmarshalYAML([]byte("log: false")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Log || c.Namespace != DefaultConfig.Namespace {
		t.Errorf("got %+v, want the default namespace with logging off", c)
	}
}
