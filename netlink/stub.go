//go:build !linux

package netlink

import (
	"errors"
	"fmt"

	"github.com/scitags/sysinfo-go/types"
)

func dialSocket(*Config) (transport, error) {
	return nil, fmt.Errorf("%w: %w", ErrTransport, errors.ErrUnsupported)
}

func newIfreqResolver() (resolver, error) {
	return nil, fmt.Errorf("%w: %w", ErrTransport, errors.ErrUnsupported)
}

func IndexToName(index uint32) (types.InterfaceName, error) {
	return types.InterfaceName{}, fmt.Errorf("%w: %w", ErrNameResolution, errors.ErrUnsupported)
}
