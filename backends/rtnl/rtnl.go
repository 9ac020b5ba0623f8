//go:build linux

// Package rtnl enumerates interface addresses through the high level rtnl
// wrapper of github.com/jsimonetti/rtnetlink.
package rtnl

import (
	"fmt"
	"log/slog"
	"net"

	"github.com/jsimonetti/rtnetlink/v2/rtnl"
	"golang.org/x/sys/unix"

	"github.com/scitags/sysinfo-go/types"
)

// Enumerator behaves as the netlink one, but leaves the socket handling
// and message parsing to the rtnetlink library. Note the library reports
// IFA_ADDRESS for IPv4 too, which carries the peer on point-to-point
// links.
type Enumerator struct{}

func New() *Enumerator {
	return &Enumerator{}
}

func (e *Enumerator) String() string {
	return "rtnl"
}

func (e *Enumerator) Enumerate() (*types.Registry, error) {
	conn, err := rtnl.Dial(nil)
	if err != nil {
		return nil, fmt.Errorf("couldn't open a rtnl connection: %w", err)
	}
	defer conn.Close()

	links, err := conn.Links()
	if err != nil {
		return nil, fmt.Errorf("error retrieving links: %w", err)
	}

	var b types.Builder
	for _, link := range links {
		for _, family := range []int{unix.AF_INET, unix.AF_INET6} {
			addrs, err := conn.Addrs(link, family)
			if err != nil {
				return nil, fmt.Errorf("error retrieving addresses of %s: %w", link.Name, err)
			}
			push(&b, link, addrs)
		}
	}

	return b.Freeze(), nil
}

func push(b *types.Builder, link *net.Interface, addrs []*net.IPNet) {
	if len(addrs) == 0 {
		return
	}

	iface := b.GetOrCreate(types.NewInterfaceName(link.Name))
	for _, a := range addrs {
		addr, ok := types.AddressFromIPNet(a)
		if !ok {
			slog.Warn("skipping unexpected address", "interface", link.Name, "addr", a)
			continue
		}
		b.Push(iface, addr)
	}
}
