package types

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// InterfaceNameSize matches the kernel's IFNAMSIZ, terminating NUL included.
	InterfaceNameSize = 16

	// HostNameSize is the largest hostname we keep, as with HOST_NAME_MAX.
	HostNameSize = 255
)

// InterfaceName holds a kernel interface name. Only the bytes before the
// first NUL are meaningful. Names are not guaranteed to be valid UTF-8.
type InterfaceName [InterfaceNameSize]byte

// NewInterfaceName copies name, silently truncating it to InterfaceNameSize
// bytes.
func NewInterfaceName(name string) InterfaceName {
	var n InterfaceName
	copy(n[:], name)
	return n
}

// Bytes returns the raw name without the trailing NULs.
func (n InterfaceName) Bytes() []byte {
	return trimNUL(n[:])
}

// Text returns the name as a string and whether it is valid UTF-8.
func (n InterfaceName) Text() (string, bool) {
	return textOf(n[:])
}

func (n InterfaceName) String() string {
	return displayOf(n[:])
}

func (n InterfaceName) IsEmpty() bool {
	return n[0] == 0
}

func (n InterfaceName) Label() Label {
	return Label(trimNUL(n[:]))
}

// Label is an interface name of any length. Names coming from the kernel
// always fit an InterfaceName, but adapter names on other platforms (say
// "Local Area Connection* 12") don't and must be kept whole.
type Label string

func (l Label) Bytes() []byte {
	return []byte(l)
}

func (l Label) Text() (string, bool) {
	if !utf8.ValidString(string(l)) {
		return "", false
	}
	return string(l), true
}

func (l Label) String() string {
	return displayOf([]byte(l))
}

func (l Label) Compare(o Label) int {
	return strings.Compare(string(l), string(o))
}

// HostName holds the node name reported by the kernel.
type HostName [HostNameSize]byte

func NewHostName(name string) HostName {
	var h HostName
	copy(h[:], name)
	return h
}

func (h HostName) Bytes() []byte {
	return trimNUL(h[:])
}

func (h HostName) Text() (string, bool) {
	return textOf(h[:])
}

func (h HostName) String() string {
	return displayOf(h[:])
}

func (h HostName) Equal(name string) bool {
	return string(trimNUL(h[:])) == name
}

func trimNUL(b []byte) []byte {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return b[:i]
	}
	return b
}

func textOf(b []byte) (string, bool) {
	b = trimNUL(b)
	if !utf8.Valid(b) {
		return "", false
	}
	return string(b), true
}

// displayOf falls back to the %v rendering of the bytes for names that
// aren't valid UTF-8.
func displayOf(b []byte) string {
	if s, ok := textOf(b); ok {
		return s
	}
	return fmt.Sprintf("%v", trimNUL(b))
}
