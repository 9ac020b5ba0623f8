//go:build linux

package netlink

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/scitags/sysinfo-go/types"
)

// ifreqResolver does what if_indextoname(3) does: a SIOCGIFNAME ioctl over
// a throwaway datagram socket.
type ifreqResolver struct {
	fd int
}

func newIfreqResolver() (resolver, error) {
	var errs error
	for _, family := range []int{unix.AF_INET, unix.AF_UNIX, unix.AF_INET6} {
		fd, err := unix.Socket(family, unix.SOCK_DGRAM|unix.SOCK_CLOEXEC, 0)
		if err == nil {
			return &ifreqResolver{fd: fd}, nil
		}
		errs = errors.Join(errs, err)
	}
	return nil, fmt.Errorf("%w: couldn't open a control socket: %w", ErrTransport, errs)
}

func (r *ifreqResolver) Resolve(index uint32) (types.InterfaceName, error) {
	ifr, err := unix.NewIfreq("")
	if err != nil {
		return types.InterfaceName{}, err
	}
	ifr.SetUint32(index)

	if err := unix.IoctlIfreq(r.fd, unix.SIOCGIFNAME, ifr); err != nil {
		return types.InterfaceName{}, err
	}

	return types.NewInterfaceName(ifr.Name()), nil
}

func (r *ifreqResolver) Close() error {
	return unix.Close(r.fd)
}

// IndexToName resolves a single interface index.
func IndexToName(index uint32) (types.InterfaceName, error) {
	r, err := newIfreqResolver()
	if err != nil {
		return types.InterfaceName{}, err
	}
	defer r.Close()

	name, err := r.Resolve(index)
	if err != nil {
		return types.InterfaceName{}, fmt.Errorf("%w: index %d: %w", ErrNameResolution, index, err)
	}
	return name, nil
}
