package types

import (
	"encoding/json"

	"github.com/fatih/structs"
)

// validTags lists the struct tags a report can be marshalled with besides
// the default structs tag. The lean tag drops everything but the bare
// address list.
var validTags = map[Verbosity]struct{}{
	VerbosityLean: {},
}

type AddressReport struct {
	IP        string `structs:"ip" lean:"ip"`
	Prefix    uint8  `structs:"prefix" lean:"prefix"`
	NetMask   string `structs:"netMask" lean:"-"`
	CIDR      string `structs:"cidr" lean:"-"`
	Family    string `structs:"family" lean:"-"`
	Loopback  bool   `structs:"loopback" lean:"-"`
	LinkLocal bool   `structs:"linkLocal" lean:"-"`
	Private   bool   `structs:"private" lean:"-"`
	Class     string `structs:"class,omitempty" lean:"-"`
}

type InterfaceReport struct {
	Verbosity Verbosity       `structs:"-" lean:"-"`
	Name      string          `structs:"name" lean:"name"`
	RawName   []byte          `structs:"rawName,omitempty" lean:"-"`
	Addresses []AddressReport `structs:"addresses" lean:"addresses"`
}

// RegistryReport is the JSON face of a Registry.
type RegistryReport struct {
	Verbosity  Verbosity         `structs:"-" lean:"-"`
	Backend    string            `structs:"backend,omitempty" lean:"-"`
	Interfaces []InterfaceReport `structs:"interfaces" lean:"interfaces"`
}

func NewAddressReport(addr Address) AddressReport {
	class, _ := Classify(addr.IP.Addr())
	return AddressReport{
		IP:        addr.IP.String(),
		Prefix:    addr.Prefix,
		NetMask:   addr.NetMask().String(),
		CIDR:      addr.CIDR().String(),
		Family:    addr.IP.Family().String(),
		Loopback:  addr.IP.IsLoopback(),
		LinkLocal: addr.IP.IsLinkLocal(),
		Private:   addr.IP.IsPrivate(),
		Class:     class,
	}
}

func NewInterfaceReport(iface *Interface, verbosity Verbosity) *InterfaceReport {
	r := &InterfaceReport{
		Verbosity: verbosity,
		Name:      iface.Name().String(),
		Addresses: make([]AddressReport, 0, iface.NumAddresses()),
	}
	if _, ok := iface.Name().Text(); !ok {
		r.RawName = iface.Name().Bytes()
	}
	for addr := range iface.Addresses() {
		r.Addresses = append(r.Addresses, NewAddressReport(addr))
	}
	return r
}

func NewRegistryReport(reg *Registry, backend string, verbosity Verbosity) *RegistryReport {
	r := &RegistryReport{
		Verbosity:  verbosity,
		Backend:    backend,
		Interfaces: make([]InterfaceReport, 0, reg.Len()),
	}
	for iface := range reg.All() {
		r.Interfaces = append(r.Interfaces, *NewInterfaceReport(iface, verbosity))
	}
	return r
}

// MarshalJSON picks the struct tag driving the output based on the report's
// verbosity. Unknown verbosities fall back to the full structs tag.
func (r *RegistryReport) MarshalJSON() ([]byte, error) {
	return marshalWithVerbosity(r, r.Verbosity)
}

func (r *InterfaceReport) MarshalJSON() ([]byte, error) {
	return marshalWithVerbosity(r, r.Verbosity)
}

func marshalWithVerbosity(v any, verbosity Verbosity) ([]byte, error) {
	s := structs.New(v)

	if _, ok := validTags[verbosity]; ok {
		s.TagName = string(verbosity)
	}

	return json.Marshal(s.Map())
}
