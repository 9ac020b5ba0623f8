package netlink

import "errors"

var (
	// ErrTransport signals the netlink socket couldn't be opened, written
	// to or read from.
	ErrTransport = errors.New("netlink transport failure")

	// ErrKernel signals the kernel answered with an NLMSG_ERROR message.
	// The kernel's errno is wrapped too whenever it could be decoded.
	ErrKernel = errors.New("kernel reported an error")

	// ErrNameResolution signals an interface index couldn't be mapped
	// onto its name.
	ErrNameResolution = errors.New("couldn't resolve interface name")

	// ErrMalformed is only ever returned in strict mode. Otherwise
	// malformed input just stops the walk over the offending datagram
	// or message.
	ErrMalformed = errors.New("malformed netlink data")

	// ErrIncomplete signals a captured dump ran out of datagrams before
	// reaching NLMSG_DONE.
	ErrIncomplete = errors.New("dump ended before NLMSG_DONE")

	errTruncated = errors.New("truncated")
	errEmptyName = errors.New("empty interface name")
)
