package netlink

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"syscall"

	ne "github.com/josharian/native"

	"github.com/scitags/sysinfo-go/types"
)

// Netlink speaks the host's byte order.
var nativeEndian = ne.Endian

// cursor walks a byte slice without ever reading past its end. Callers
// check remaining() before using the fixed-size readers.
type cursor struct {
	b   []byte
	pos int
}

func (c *cursor) remaining() int {
	return len(c.b) - c.pos
}

func (c *cursor) read() byte {
	v := c.b[c.pos]
	c.pos++
	return v
}

func (c *cursor) uint16() uint16 {
	v := nativeEndian.Uint16(c.b[c.pos:])
	c.pos += 2
	return v
}

func (c *cursor) uint32() uint32 {
	v := nativeEndian.Uint32(c.b[c.pos:])
	c.pos += 4
	return v
}

// next consumes n bytes. The returned slice can't be grown into the rest
// of the buffer.
func (c *cursor) next(n int) ([]byte, bool) {
	if n < 0 || n > c.remaining() {
		return nil, false
	}
	s := c.b[c.pos : c.pos+n : c.pos+n]
	c.pos += n
	return s, true
}

// align skips the padding up to the next 4-byte boundary, stopping at the
// end of the buffer. Padding is never read.
func (c *cursor) align() {
	c.pos = min(align(c.pos), len(c.b))
}

func (c *cursor) rest() []byte {
	return c.b[c.pos:]
}

// header mirrors struct nlmsghdr.
type header struct {
	Length uint32
	Type   uint16
	Flags  uint16
	Seq    uint32
	PID    uint32
}

func (c *cursor) header() header {
	return header{
		Length: c.uint32(),
		Type:   c.uint16(),
		Flags:  c.uint16(),
		Seq:    c.uint32(),
		PID:    c.uint32(),
	}
}

// ifAddrMsg mirrors struct ifaddrmsg.
type ifAddrMsg struct {
	Family    uint8
	PrefixLen uint8
	Flags     uint8
	Scope     uint8
	Index     uint32
}

func (c *cursor) ifAddrMsg() ifAddrMsg {
	return ifAddrMsg{
		Family:    c.read(),
		PrefixLen: c.read(),
		Flags:     c.read(),
		Scope:     c.read(),
		Index:     c.uint32(),
	}
}

// attribute mirrors struct rtattr. Its payload is copied into a fixed
// scratch area: longer payloads are cut and shorter ones zero-padded.
type attribute struct {
	Length uint16
	Type   uint16
	Data   [sizeofAttrData]byte
}

// walkMessages calls fn with the header and payload of every complete
// message in b until fn returns false. A message whose length field is
// out of bounds stops the walk and is reported as errTruncated.
func walkMessages(b []byte, fn func(hdr header, payload []byte) bool) error {
	c := cursor{b: b}
	for c.remaining() >= sizeofHeader {
		start := c.pos
		hdr := c.header()
		if hdr.Length < sizeofHeader || int(hdr.Length) > c.remaining()+sizeofHeader {
			return fmt.Errorf("%w message: length %d with %d bytes left", errTruncated, hdr.Length, len(b)-start)
		}
		payload, _ := c.next(int(hdr.Length) - sizeofHeader)
		c.align()
		if !fn(hdr, payload) {
			return nil
		}
	}
	if c.remaining() != 0 {
		return fmt.Errorf("%w message: %d trailing bytes", errTruncated, c.remaining())
	}
	return nil
}

// walkAttributes behaves as walkMessages for a run of rtattrs.
func walkAttributes(b []byte, fn func(attr attribute) bool) error {
	c := cursor{b: b}
	for c.remaining() >= sizeofAttrHeader {
		start := c.pos
		attr := attribute{Length: c.uint16(), Type: c.uint16()}
		if attr.Length < sizeofAttrHeader || int(attr.Length) > c.remaining()+sizeofAttrHeader {
			return fmt.Errorf("%w attribute: length %d with %d bytes left", errTruncated, attr.Length, len(b)-start)
		}
		data, _ := c.next(int(attr.Length) - sizeofAttrHeader)
		copy(attr.Data[:], data)
		c.align()
		if !fn(attr) {
			return nil
		}
	}
	if c.remaining() != 0 {
		return fmt.Errorf("%w attribute: %d trailing bytes", errTruncated, c.remaining())
	}
	return nil
}

// decodeAddress only honours IFA_LOCAL for IPv4 and IFA_ADDRESS for IPv6.
// On point-to-point links IFA_ADDRESS carries the peer's IPv4 address.
func decodeAddress(family uint8, attr attribute) (types.IP, bool) {
	switch {
	case family == AF_INET && attr.Type == IFA_LOCAL:
		return types.IPv4([4]byte(attr.Data[:4])), true
	case family == AF_INET6 && attr.Type == IFA_ADDRESS:
		return types.IPv6FromBytes(attr.Data), true
	}
	return types.IP{}, false
}

// kernelError decodes the errno carried by an NLMSG_ERROR payload (struct
// nlmsgerr). The kernel stores it negated.
func kernelError(payload []byte) error {
	if len(payload) < 4 {
		return ErrKernel
	}
	c := cursor{b: payload}
	errno := int32(c.uint32())
	if errno == 0 {
		return ErrKernel
	}
	if errno < 0 {
		errno = -errno
	}
	return fmt.Errorf("%w: %w", ErrKernel, syscall.Errno(errno))
}

// Stats counts what a dump walk went through.
type Stats struct {
	Datagrams           int
	Messages            int
	Addresses           int
	MalformedMessages   int
	MalformedAttributes int
}

type resolveFunc func(index uint32) (types.InterfaceName, error)

// parser turns a stream of datagrams into a registry. It holds the only
// mutable state of an enumeration.
type parser struct {
	strict  bool
	resolve resolveFunc
	builder types.Builder
	stats   Stats
}

func newParser(strict bool, resolve resolveFunc) *parser {
	return &parser{strict: strict, resolve: resolve}
}

// feed walks a single datagram and reports whether NLMSG_DONE was reached.
func (p *parser) feed(b []byte) (bool, error) {
	p.stats.Datagrams++

	var (
		done bool
		ferr error
	)

	err := walkMessages(b, func(hdr header, payload []byte) bool {
		p.stats.Messages++
		slog.Log(context.Background(), types.LevelTrace, "walking message", "type", msgTypeName[hdr.Type], "len", hdr.Length, "seq", hdr.Seq)

		switch hdr.Type {
		case NLMSG_DONE:
			done = true
			return false
		case NLMSG_ERROR:
			ferr = kernelError(payload)
			return false
		case RTM_NEWADDR:
			ferr = p.newAddr(payload)
			return ferr == nil
		}
		return true
	})

	if ferr != nil {
		return false, ferr
	}
	if done {
		return true, nil
	}
	if err != nil {
		p.stats.MalformedMessages++
		return false, p.malformed("stopped walking a malformed datagram", err)
	}
	return false, nil
}

func (p *parser) newAddr(payload []byte) error {
	c := cursor{b: payload}
	if c.remaining() < sizeofIfAddrMsg {
		p.stats.MalformedMessages++
		return p.malformed("skipping short address message",
			fmt.Errorf("%w message: %d bytes of ifaddrmsg", errTruncated, len(payload)))
	}
	msg := c.ifAddrMsg()

	var ferr error
	err := walkAttributes(c.rest(), func(attr attribute) bool {
		ip, ok := decodeAddress(msg.Family, attr)
		if !ok {
			return true
		}

		// Resolve before storing anything: no address lives in the
		// registry without a name.
		name, err := p.resolve(msg.Index)
		if err == nil && name.IsEmpty() {
			err = errEmptyName
		}
		if err != nil {
			ferr = fmt.Errorf("%w: index %d: %w", ErrNameResolution, msg.Index, err)
			return false
		}

		p.builder.Add(name, types.Address{IP: ip, Prefix: msg.PrefixLen})
		p.stats.Addresses++
		return true
	})

	if ferr != nil {
		return ferr
	}
	if err != nil {
		p.stats.MalformedAttributes++
		return p.malformed("stopped walking malformed attributes", err, "index", msg.Index)
	}
	return nil
}

func (p *parser) malformed(msg string, err error, args ...any) error {
	if p.strict {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	slog.Warn(msg, append([]any{"err", err}, args...)...)
	return nil
}

// ParseDump runs the parsing pipeline over already captured datagrams, as
// they'd be read off a NETLINK_ROUTE socket after an RTM_GETADDR dump
// request. Malformed input is tolerated. It fails with ErrIncomplete if no
// datagram carries NLMSG_DONE.
func ParseDump(buffers [][]byte, resolve func(index uint32) (types.InterfaceName, error)) (*types.Registry, Stats, error) {
	p := newParser(false, resolve)
	for _, b := range buffers {
		done, err := p.feed(b)
		if err != nil {
			return nil, p.stats, err
		}
		if done {
			return p.builder.Freeze(), p.stats, nil
		}
	}
	return nil, p.stats, ErrIncomplete
}

func isResolutionError(err error) bool {
	return errors.Is(err, ErrNameResolution)
}
