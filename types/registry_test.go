package types

import (
	"bytes"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func addrsOf(iface *Interface) []string {
	var addrs []string
	for addr := range iface.Addresses() {
		addrs = append(addrs, addr.String())
	}
	return addrs
}

func TestBuilderOrdering(t *testing.T) {
	var b Builder
	for _, name := range []string{"wlan0", "lo", "eth0", "docker0", "eth0", "lo"} {
		b.GetOrCreate(NewInterfaceName(name))
	}

	reg := b.Freeze()

	want := []string{"docker0", "eth0", "lo", "wlan0"}
	if diff := cmp.Diff(want, reg.Names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}

	for i, iface := range slices.Collect(reg.All()) {
		if i == 0 {
			continue
		}
		prev, _ := reg.Lookup(want[i-1])
		if bytes.Compare(prev.Name().Bytes(), iface.Name().Bytes()) >= 0 {
			t.Errorf("%q isn't sorted after %q", iface.Name(), prev.Name())
		}
	}
}

func TestBuilderKeepsArrivalOrder(t *testing.T) {
	var b Builder
	lo := NewInterfaceName("lo")
	eth := NewInterfaceName("eth0")

	b.Add(lo, Address{IPv4([4]byte{127, 0, 0, 1}), 8})
	b.Add(eth, Address{IPv4([4]byte{10, 0, 2, 15}), 24})
	b.Add(lo, Address{IPv6([8]uint16{7: 1}), 128})
	b.Add(lo, Address{IPv4([4]byte{127, 0, 0, 1}), 8})

	reg := b.Freeze()

	iface, ok := reg.Lookup("lo")
	if !ok {
		t.Fatalf("lo is missing")
	}

	want := []string{"127.0.0.1", "::1", "127.0.0.1"}
	if diff := cmp.Diff(want, addrsOf(iface)); diff != "" {
		t.Errorf("addresses mismatch (-want +got):\n%s", diff)
	}

	if reg.NumAddresses() != 4 {
		t.Errorf("got %d addresses, want 4", reg.NumAddresses())
	}
}

func TestBuilderFreezeDetaches(t *testing.T) {
	var b Builder
	b.Add(NewInterfaceName("lo"), Address{IPv4([4]byte{127, 0, 0, 1}), 8})

	reg := b.Freeze()
	if b.Len() != 0 {
		t.Errorf("builder still holds %d interfaces", b.Len())
	}

	b.Add(NewInterfaceName("eth0"), Address{IPv4([4]byte{10, 0, 2, 15}), 24})
	if reg.Len() != 1 {
		t.Errorf("frozen registry changed: %v", reg.Names())
	}
}

func TestRegistrySequencesRestart(t *testing.T) {
	var b Builder
	b.Add(NewInterfaceName("lo"), Address{IPv4([4]byte{127, 0, 0, 1}), 8})
	b.Add(NewInterfaceName("eth0"), Address{IPv4([4]byte{10, 0, 2, 15}), 24})
	reg := b.Freeze()

	first := slices.Collect(reg.All())
	second := slices.Collect(reg.All())
	if len(first) != 2 || len(second) != 2 {
		t.Errorf("sequences differ between runs: %d vs %d", len(first), len(second))
	}

	// Breaking out early must be honoured.
	n := 0
	for range reg.All() {
		n++
		break
	}
	if n != 1 {
		t.Errorf("got %d iterations, want 1", n)
	}
}

func TestNilRegistry(t *testing.T) {
	var reg *Registry

	if reg.Len() != 0 {
		t.Errorf("nil registry has length %d", reg.Len())
	}
	if _, ok := reg.Lookup("lo"); ok {
		t.Errorf("nil registry has lo")
	}
	for range reg.All() {
		t.Errorf("nil registry yielded an interface")
	}
}

func TestRegistryLookupMissing(t *testing.T) {
	var b Builder
	b.GetOrCreate(NewInterfaceName("lo"))
	reg := b.Freeze()

	if _, ok := reg.Lookup("eth0"); ok {
		t.Errorf("found an interface that was never added")
	}
}

func TestBuilderLongLabels(t *testing.T) {
	var b Builder
	b.AddLabel("Local Area Connection* 1", Address{IPv4([4]byte{169, 254, 1, 1}), 16})
	b.AddLabel("Local Area Connection* 2", Address{IPv4([4]byte{169, 254, 2, 2}), 16})
	b.Add(NewInterfaceName("lo"), Address{IPv4([4]byte{127, 0, 0, 1}), 8})
	b.AddLabel("lo", Address{IPv6([8]uint16{7: 1}), 128})

	reg := b.Freeze()

	want := []string{"Local Area Connection* 1", "Local Area Connection* 2", "lo"}
	if diff := cmp.Diff(want, reg.Names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}

	iface, ok := reg.Lookup("Local Area Connection* 2")
	if !ok {
		t.Fatalf("the second adapter is missing")
	}
	if diff := cmp.Diff([]string{"169.254.2.2"}, addrsOf(iface)); diff != "" {
		t.Errorf("addresses mismatch (-want +got):\n%s", diff)
	}

	// Bounded and unbounded names of the same interface meet.
	lo, _ := reg.Lookup("lo")
	if lo.NumAddresses() != 2 {
		t.Errorf("got %d addresses on lo, want 2", lo.NumAddresses())
	}
}
