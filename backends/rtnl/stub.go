//go:build !linux

package rtnl

import (
	"errors"

	"github.com/scitags/sysinfo-go/types"
)

type Enumerator struct{}

func New() *Enumerator {
	return &Enumerator{}
}

func (e *Enumerator) String() string {
	return "rtnl"
}

func (e *Enumerator) Enumerate() (*types.Registry, error) {
	return nil, errors.ErrUnsupported
}
