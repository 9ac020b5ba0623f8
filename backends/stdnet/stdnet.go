// Package stdnet enumerates interface addresses through the net package,
// which is backed by getifaddrs(3) on the BSDs and macOS and by
// GetAdaptersAddresses on Windows. It works everywhere Go does.
package stdnet

import (
	"fmt"
	"log/slog"
	"net"

	"github.com/scitags/sysinfo-go/types"
)

type Enumerator struct {
	// Mostly here so that tests can feed their own interfaces.
	interfaces func() ([]net.Interface, error)
	addrs      func(iface *net.Interface) ([]net.Addr, error)
}

func New() *Enumerator {
	return &Enumerator{
		interfaces: net.Interfaces,
		addrs:      (*net.Interface).Addrs,
	}
}

func (e *Enumerator) String() string {
	return "stdnet"
}

func (e *Enumerator) Enumerate() (*types.Registry, error) {
	iFaces, err := e.interfaces()
	if err != nil {
		return nil, fmt.Errorf("error getting the system's interfaces: %w", err)
	}

	var b types.Builder
	for i := range iFaces {
		iFace := &iFaces[i]

		addrs, err := e.addrs(iFace)
		if err != nil {
			return nil, fmt.Errorf("couldn't get the addresses of %s: %w", iFace.Name, err)
		}

		for _, addr := range addrs {
			ipNet, ok := addr.(*net.IPNet)
			if !ok {
				slog.Debug("skipping non-IP address", "interface", iFace.Name, "addr", addr)
				continue
			}

			a, ok := types.AddressFromIPNet(ipNet)
			if !ok {
				slog.Warn("skipping unexpected address", "interface", iFace.Name, "addr", addr)
				continue
			}

			slog.Debug("interface addr", "interface", iFace.Name, "addr", a, "prefix", a.Prefix)
			// Adapter names aren't bounded by IFNAMSIZ everywhere.
			b.AddLabel(types.Label(iFace.Name), a)
		}
	}

	return b.Freeze(), nil
}
