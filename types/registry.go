package types

import (
	"iter"
	"slices"
)

// Interface is a named interface together with its addresses in the order
// they were reported.
type Interface struct {
	name  Label
	addrs []Address
}

func (i *Interface) Name() Label {
	return i.name
}

// Addresses yields every address of the interface. The sequence can be
// ranged over more than once.
func (i *Interface) Addresses() iter.Seq[Address] {
	return func(yield func(Address) bool) {
		for _, addr := range i.addrs {
			if !yield(addr) {
				return
			}
		}
	}
}

func (i *Interface) NumAddresses() int {
	return len(i.addrs)
}

func (i *Interface) String() string {
	return i.name.String()
}

// Registry is an immutable, name-sorted collection of interfaces. A nil
// *Registry behaves as an empty one.
type Registry struct {
	ifaces []*Interface
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.ifaces)
}

// All yields the interfaces in ascending byte order of their names.
func (r *Registry) All() iter.Seq[*Interface] {
	return func(yield func(*Interface) bool) {
		if r == nil {
			return
		}
		for _, iface := range r.ifaces {
			if !yield(iface) {
				return
			}
		}
	}
}

func (r *Registry) Lookup(name string) (*Interface, bool) {
	if r == nil {
		return nil, false
	}
	i, found := search(r.ifaces, Label(name))
	if !found {
		return nil, false
	}
	return r.ifaces[i], true
}

func (r *Registry) Names() []string {
	names := make([]string, 0, r.Len())
	for iface := range r.All() {
		names = append(names, iface.name.String())
	}
	return names
}

// NumAddresses counts the addresses over all interfaces.
func (r *Registry) NumAddresses() int {
	n := 0
	for iface := range r.All() {
		n += len(iface.addrs)
	}
	return n
}

// Builder accumulates interfaces and addresses while an enumeration is in
// progress. Nothing it holds is visible to callers until Freeze is called,
// so an aborted enumeration simply drops the builder.
type Builder struct {
	ifaces []*Interface
}

// GetOrCreate returns the interface named name, inserting an empty one at
// its sorted position if it isn't known yet.
func (b *Builder) GetOrCreate(name InterfaceName) *Interface {
	return b.GetOrCreateLabel(name.Label())
}

// GetOrCreateLabel behaves as GetOrCreate for names that may not fit an
// InterfaceName.
func (b *Builder) GetOrCreateLabel(name Label) *Interface {
	i, found := search(b.ifaces, name)
	if found {
		return b.ifaces[i]
	}
	iface := &Interface{name: name}
	b.ifaces = slices.Insert(b.ifaces, i, iface)
	return iface
}

// Push appends addr to iface. Duplicates are kept.
func (b *Builder) Push(iface *Interface, addr Address) {
	iface.addrs = append(iface.addrs, addr)
}

// Add is shorthand for GetOrCreate followed by Push.
func (b *Builder) Add(name InterfaceName, addr Address) {
	b.Push(b.GetOrCreate(name), addr)
}

func (b *Builder) AddLabel(name Label, addr Address) {
	b.Push(b.GetOrCreateLabel(name), addr)
}

func (b *Builder) Len() int {
	return len(b.ifaces)
}

// Freeze hands the accumulated interfaces over to a Registry and resets
// the builder.
func (b *Builder) Freeze() *Registry {
	r := &Registry{ifaces: b.ifaces}
	b.ifaces = nil
	return r
}

func search(ifaces []*Interface, name Label) (int, bool) {
	return slices.BinarySearchFunc(ifaces, name, func(iface *Interface, target Label) int {
		return iface.name.Compare(target)
	})
}
