// Package sysinfo queries host characteristics through OS-specific
// mechanisms and hands them out through simple value types. Interface
// addresses can be enumerated through several interchangeable backends,
// all of them yielding a *types.Registry.
package sysinfo

import (
	"fmt"
	"runtime"
	"slices"
	"strings"

	"github.com/scitags/sysinfo-go/backends/rtnl"
	"github.com/scitags/sysinfo-go/backends/stdnet"
	"github.com/scitags/sysinfo-go/netlink"
	"github.com/scitags/sysinfo-go/types"
)

// Enumerator lists the host's interfaces together with their addresses.
type Enumerator interface {
	Enumerate() (*types.Registry, error)
	String() string
}

const (
	BackendNetlink = "netlink"
	BackendRtnl    = "rtnl"
	BackendStdnet  = "stdnet"
)

// Backends lists the backends available on this platform, the default
// one first.
func Backends() []string {
	if runtime.GOOS == "linux" {
		return []string{BackendNetlink, BackendRtnl, BackendStdnet}
	}
	return []string{BackendStdnet}
}

func DefaultBackend() string {
	return Backends()[0]
}

// NewEnumerator builds the enumerator for backend. An empty backend picks
// the platform's default. The netlink configuration is only looked at by
// the netlink backend and can be nil.
func NewEnumerator(backend string, conf *netlink.Config) (Enumerator, error) {
	backend = strings.ToLower(backend)
	if backend == "" {
		backend = DefaultBackend()
	}

	if !slices.Contains(Backends(), backend) {
		return nil, fmt.Errorf("unknown backend %q for %s, choose one of %v", backend, runtime.GOOS, Backends())
	}

	switch backend {
	case BackendNetlink:
		return netlink.New(conf), nil
	case BackendRtnl:
		return rtnl.New(), nil
	default:
		return stdnet.New(), nil
	}
}

// Interfaces enumerates the interfaces through the default backend.
func Interfaces() (*types.Registry, error) {
	e, err := NewEnumerator("", nil)
	if err != nil {
		return nil, err
	}
	return e.Enumerate()
}
