package types

import (
	"bytes"
	"encoding/binary"
	"math/bits"
	"net"
	"net/netip"
	"strconv"
)

// IP is either an IPv4 address (4 bytes) or an IPv6 address (8 groups of
// 16 bits). The raw bytes are always kept in network order, so equality,
// ordering and hashing work directly on them: IP values are comparable and
// can be used as map keys.
type IP struct {
	family Family
	raw    [16]byte
}

// IPv4 builds an IPv4 address out of its four octets.
func IPv4(octets [4]byte) IP {
	ip := IP{family: IPv4Family}
	copy(ip.raw[:4], octets[:])
	return ip
}

// IPv6 builds an IPv6 address out of its eight 16-bit groups.
func IPv6(groups [8]uint16) IP {
	ip := IP{family: IPv6Family}
	for i, g := range groups {
		binary.BigEndian.PutUint16(ip.raw[2*i:], g)
	}
	return ip
}

// IPv6FromBytes builds an IPv6 address out of its 16 network-order bytes.
func IPv6FromBytes(b [16]byte) IP {
	return IP{family: IPv6Family, raw: b}
}

// IPFromAddr converts a netip.Addr. IPv4-mapped IPv6 addresses are
// unmapped first. It returns false for the zero netip.Addr.
func IPFromAddr(addr netip.Addr) (IP, bool) {
	addr = addr.Unmap()
	switch {
	case addr.Is4():
		return IPv4(addr.As4()), true
	case addr.Is6():
		return IPv6FromBytes(addr.As16()), true
	}
	return IP{}, false
}

func (ip IP) Family() Family { return ip.family }
func (ip IP) Is4() bool      { return ip.family == IPv4Family }
func (ip IP) Is6() bool      { return ip.family == IPv6Family }
func (ip IP) IsValid() bool  { return ip.Is4() || ip.Is6() }

// Len is the address width in bits.
func (ip IP) Len() int {
	switch ip.family {
	case IPv4Family:
		return 32
	case IPv6Family:
		return 128
	}
	return 0
}

func (ip IP) As4() (o [4]byte) {
	copy(o[:], ip.raw[:4])
	return
}

func (ip IP) As16() [16]byte {
	return ip.raw
}

// Groups returns the eight 16-bit groups of an IPv6 address.
func (ip IP) Groups() (g [8]uint16) {
	for i := range g {
		g[i] = binary.BigEndian.Uint16(ip.raw[2*i:])
	}
	return
}

// Addr converts the address into the standard library representation.
func (ip IP) Addr() netip.Addr {
	switch ip.family {
	case IPv4Family:
		return netip.AddrFrom4(ip.As4())
	case IPv6Family:
		return netip.AddrFrom16(ip.raw)
	}
	return netip.Addr{}
}

// IsUnspecified reports whether ip is the all-zero address of its family.
func (ip IP) IsUnspecified() bool {
	return ip.IsValid() && ip.raw == [16]byte{}
}

// IsLoopback reports whether ip is 127.0.0.0/8 or ::1.
func (ip IP) IsLoopback() bool {
	switch ip.family {
	case IPv4Family:
		return ip.raw[0] == 127
	case IPv6Family:
		return ip.raw == [16]byte{15: 1}
	}
	return false
}

func (ip IP) IsPrivate() bool   { return IsIPPrivate(ip.Addr()) }
func (ip IP) IsLinkLocal() bool { return IsIPLinkLocal(ip.Addr()) }

// Compare orders by family first (IPv4 before IPv6) and then by raw bytes.
func (ip IP) Compare(o IP) int {
	if ip.family != o.family {
		if ip.family < o.family {
			return -1
		}
		return 1
	}
	return bytes.Compare(ip.raw[:], o.raw[:])
}

// String renders IPv4 addresses in dotted-decimal notation. IPv6 addresses
// are rendered as "::", "::1" or as eight colon-separated hex groups: runs
// of zeros are never compressed.
func (ip IP) String() string {
	switch ip.family {
	case IPv4Family:
		b := make([]byte, 0, len("255.255.255.255"))
		for i := 0; i < 4; i++ {
			if i > 0 {
				b = append(b, '.')
			}
			b = strconv.AppendUint(b, uint64(ip.raw[i]), 10)
		}
		return string(b)
	case IPv6Family:
		if ip.IsUnspecified() {
			return "::"
		}
		if ip.IsLoopback() {
			return "::1"
		}
		b := make([]byte, 0, len("ffff:ffff:ffff:ffff:ffff:ffff:ffff:ffff"))
		for i, g := range ip.Groups() {
			if i > 0 {
				b = append(b, ':')
			}
			b = strconv.AppendUint(b, uint64(g), 16)
		}
		return string(b)
	}
	return "invalid IP"
}

// Address is an IP address together with its network prefix length.
type Address struct {
	IP     IP
	Prefix uint8
}

// NetMask computes the network mask implied by the prefix length. A zero
// prefix yields the all-zero mask. Prefixes wider than the address are a
// caller error and saturate to the all-ones mask.
func (a Address) NetMask() IP {
	mask := IP{family: a.IP.family}
	width := a.IP.Len() / 8
	bits := min(int(a.Prefix), a.IP.Len())
	for i := 0; i < width && bits > 0; i++ {
		if bits >= 8 {
			mask.raw[i] = 0xFF
			bits -= 8
			continue
		}
		mask.raw[i] = ^byte(0) << (8 - bits)
		bits = 0
	}
	return mask
}

// CIDR returns the address as a netip.Prefix. Host bits are kept.
func (a Address) CIDR() netip.Prefix {
	return netip.PrefixFrom(a.IP.Addr(), min(int(a.Prefix), a.IP.Len()))
}

func (a Address) String() string {
	return a.IP.String()
}

// AddressFromIPNet converts the addresses handed out by the net package
// and netlink libraries. The prefix length is the number of bits set in
// the mask, so non-contiguous masks are still accounted for.
func AddressFromIPNet(n *net.IPNet) (Address, bool) {
	if n == nil {
		return Address{}, false
	}

	addr, ok := netip.AddrFromSlice(n.IP)
	if !ok {
		return Address{}, false
	}

	ip, ok := IPFromAddr(addr)
	if !ok {
		return Address{}, false
	}

	ones := 0
	for _, b := range n.Mask {
		ones += bits.OnesCount8(b)
	}

	return Address{IP: ip, Prefix: uint8(min(ones, ip.Len()))}, true
}
