package types

import (
	"strings"
)

type Family uint8

// Verbosity selects which fields of a report end up in its JSON rendering.
type Verbosity string

const (
	UnknownFamily Family = iota
	IPv4Family
	IPv6Family

	VerbosityFull Verbosity = "full"
	VerbosityLean Verbosity = "lean"
)

var (
	ylimafMap = map[Family]string{
		UnknownFamily: "unknown",
		IPv4Family:    "ipv4",
		IPv6Family:    "ipv6",
	}

	verbosityMap = map[string]Verbosity{
		"":     VerbosityFull,
		"FULL": VerbosityFull,
		"LEAN": VerbosityLean,
	}
)

func (f Family) String() string {
	if s, ok := ylimafMap[f]; ok {
		return s
	}
	return ylimafMap[UnknownFamily]
}

func ParseVerbosity(v string) (Verbosity, bool) {
	verb, ok := verbosityMap[strings.ToUpper(v)]
	return verb, ok
}
