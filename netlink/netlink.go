package netlink

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/mdlayher/netlink"

	"github.com/scitags/sysinfo-go/types"
)

// transport is a NETLINK_ROUTE socket as far as an enumeration cares.
type transport interface {
	Send(req netlink.Message) error
	Receive(b []byte) (int, error)
	Close() error
}

// resolver maps interface indices onto names.
type resolver interface {
	Resolve(index uint32) (types.InterfaceName, error)
	Close() error
}

// Enumerator dumps interface addresses from the kernel. It only carries
// configuration: every call to Enumerate opens and closes its own sockets,
// so an Enumerator can be shared between goroutines.
type Enumerator struct {
	Config

	dial        func(conf *Config) (transport, error)
	newResolver func() (resolver, error)
}

func New(conf *Config) *Enumerator {
	if conf == nil {
		conf = &DefaultConfig
	}

	return &Enumerator{
		Config:      *conf,
		dial:        dialSocket,
		newResolver: newIfreqResolver,
	}
}

func (e *Enumerator) String() string {
	return "netlink"
}

// Enumerate dumps the addresses of every interface with the default
// configuration.
func Enumerate() (*types.Registry, error) {
	return New(nil).Enumerate()
}

func (e *Enumerator) Enumerate() (*types.Registry, error) {
	reg, _, err := e.EnumerateWithStats()
	return reg, err
}

type enumeration struct {
	state state
}

func (en *enumeration) transition(to state, args ...any) {
	slog.Debug("enumeration state change", append([]any{"from", en.state, "to", to}, args...)...)
	en.state = to
}

// EnumerateWithStats behaves as Enumerate, but also returns what the walk
// over the dump went through. Either the whole registry is returned or an
// error is: nothing is handed out on failure.
func (e *Enumerator) EnumerateWithStats() (*types.Registry, Stats, error) {
	en := enumeration{state: stateInit}

	conn, err := e.dial(&e.Config)
	if err != nil {
		en.transition(stateTransportFailure, "err", err)
		return nil, Stats{}, err
	}
	defer func() {
		if err := conn.Close(); err != nil {
			slog.Warn("couldn't close the netlink socket", "err", err)
		}
	}()

	names, err := e.newResolver()
	if err != nil {
		en.transition(stateTransportFailure, "err", err)
		return nil, Stats{}, err
	}
	defer names.Close()

	if err := conn.Send(dumpRequest()); err != nil {
		en.transition(stateTransportFailure, "err", err)
		return nil, Stats{}, fmt.Errorf("%w: couldn't send the dump request: %w", ErrTransport, err)
	}
	en.transition(stateRequestSent)

	p := newParser(e.Strict, names.Resolve)
	buf := make([]byte, e.bufferSize())

	// Every way out of the loop goes through a terminal state.
	var reg *types.Registry
	en.transition(stateReceiving)
	for !en.state.terminal() {
		n, rerr := conn.Receive(buf)
		if rerr == nil && n == 0 {
			rerr = errors.New("empty datagram")
		}
		if rerr != nil {
			en.transition(stateTransportFailure, "err", rerr, "datagrams", p.stats.Datagrams)
			err = fmt.Errorf("%w: couldn't receive: %w", ErrTransport, rerr)
			continue
		}

		done, ferr := p.feed(buf[:n])
		switch {
		case ferr != nil && isResolutionError(ferr):
			en.transition(stateNameResolutionFailure, "err", ferr)
			err = ferr
		case ferr != nil:
			en.transition(stateError, "err", ferr)
			err = ferr
		case done:
			reg = p.builder.Freeze()
			en.transition(stateDone, "interfaces", reg.Len(), "addresses", p.stats.Addresses,
				"datagrams", p.stats.Datagrams, "malformed", p.stats.MalformedMessages+p.stats.MalformedAttributes)
		}
	}

	if en.state != stateDone {
		return nil, p.stats, err
	}
	return reg, p.stats, nil
}

// dumpRequest asks for the addresses of every family on every interface.
func dumpRequest() netlink.Message {
	body := make([]byte, sizeofIfAddrMsg)
	body[0] = AF_UNSPEC
	// Prefix length, flags, scope and index (all interfaces) stay zeroed.

	return netlink.Message{
		Header: netlink.Header{
			Length: sizeofHeader + sizeofIfAddrMsg,
			Type:   RTM_GETADDR,
			Flags:  netlink.Request | netlink.Dump,
		},
		Data: body,
	}
}
