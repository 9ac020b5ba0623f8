package types

import (
	"fmt"
	"net/netip"
)

// specialNetwork is an entry of the IANA special-purpose address registries.
type specialNetwork struct {
	prefix netip.Prefix
	class  string
}

func special(network string, class string) specialNetwork {
	prefix, err := netip.ParsePrefix(network)
	if err != nil {
		panic(fmt.Sprintf("error parsing %s (%s): %v", network, class, err))
	}
	return specialNetwork{prefix: prefix, class: class}
}

var (
	linkLocalNets = []specialNetwork{
		special("169.254.0.0/16", "link-local"),
		special("fe80::/10", "link-local"),
	}

	// Entries are checked in order, so the more specific ones go first.
	//   https://www.iana.org/assignments/iana-ipv4-special-registry
	//   https://www.iana.org/assignments/iana-ipv6-special-registry
	specialNetworks = []specialNetwork{
		special("0.0.0.0/32", "this-host"),
		special("0.0.0.0/8", "this-network"),
		special("10.0.0.0/8", "private-use"),
		special("100.64.0.0/10", "shared-address-space"),
		special("127.0.0.0/8", "loopback"),
		linkLocalNets[0],
		special("172.16.0.0/12", "private-use"),
		special("192.0.0.0/24", "protocol-assignments"),
		special("192.0.2.0/24", "documentation"),
		special("192.88.99.0/24", "6to4-relay-anycast"),
		special("192.168.0.0/16", "private-use"),
		special("198.18.0.0/15", "benchmarking"),
		special("198.51.100.0/24", "documentation"),
		special("203.0.113.0/24", "documentation"),
		special("224.0.0.0/4", "multicast"),
		special("255.255.255.255/32", "limited-broadcast"),
		special("240.0.0.0/4", "reserved"),

		special("::/128", "unspecified"),
		special("::1/128", "loopback"),
		special("64:ff9b::/96", "ipv4-ipv6-translation"),
		special("64:ff9b:1::/48", "ipv4-ipv6-translation"),
		special("100::/64", "discard-only"),
		special("2001::/32", "teredo"),
		special("2001:2::/48", "benchmarking"),
		special("2001::/23", "protocol-assignments"),
		special("2001:db8::/32", "documentation"),
		special("2002::/16", "6to4"),
		special("3fff::/20", "documentation"),
		special("fc00::/7", "unique-local"),
		linkLocalNets[1],
		special("ff00::/8", "multicast"),
	}
)

// Classify returns the special-purpose class ip belongs to. Globally
// routable unicast addresses have no class.
func Classify(ip netip.Addr) (string, bool) {
	ip = ip.Unmap()
	for _, n := range specialNetworks {
		if n.prefix.Contains(ip) {
			return n.class, true
		}
	}
	return "", false
}

// IsIPPrivate reports whether ip falls within any special-purpose range,
// that is, whether it isn't a globally routable unicast address.
func IsIPPrivate(ip netip.Addr) bool {
	_, ok := Classify(ip)
	return ok
}

func IsIPLinkLocal(ip netip.Addr) bool {
	ip = ip.Unmap()
	for _, n := range linkLocalNets {
		if n.prefix.Contains(ip) {
			return true
		}
	}
	return false
}
