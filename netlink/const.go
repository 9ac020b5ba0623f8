package netlink

// All of these constants' names make the linter complain, but they mirror
// the ones in the kernel's uapi headers, so we will keep them as they are.
// They're defined here rather than pulled from x/sys/unix so that the
// parsing machinery builds on every platform.
const (
	NLMSG_ERROR = 0x2
	NLMSG_DONE  = 0x3

	RTM_NEWADDR = 0x14
	RTM_GETADDR = 0x16

	IFA_ADDRESS = 0x1
	IFA_LOCAL   = 0x2

	AF_UNSPEC = 0x0
	AF_INET   = 0x2
	AF_INET6  = 0xa
)

const (
	sizeofHeader     = 16
	sizeofIfAddrMsg  = 8
	sizeofAttrHeader = 4
	sizeofAttrData   = 16

	nlmsgAlignTo = 4

	DefaultReceiveBufferSize = 65536
)

var msgTypeName = map[uint16]string{
	NLMSG_ERROR: "NLMSG_ERROR",
	NLMSG_DONE:  "NLMSG_DONE",
	RTM_NEWADDR: "RTM_NEWADDR",
	RTM_GETADDR: "RTM_GETADDR",
}

func align(n int) int {
	return (n + nlmsgAlignTo - 1) & ^(nlmsgAlignTo - 1)
}
