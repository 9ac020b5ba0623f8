// Package netlink enumerates the host's interface addresses by dumping them
// straight from the kernel's rtnetlink(7) subsystem.
//
// A single RTM_GETADDR request flagged with NLM_F_DUMP is sent over a
// NETLINK_ROUTE socket. The kernel answers with as many datagrams as it
// needs, each carrying a run of 4-byte aligned RTM_NEWADDR messages, and
// closes the dump with an NLMSG_DONE message. Be sure to check netlink(7)
// and rtnetlink(7) for the details on the wire format.
//
// Datagrams are walked by hand rather than through a generic netlink
// client: every length found on the wire is checked against the bytes
// actually received before anything is read, so truncated or hostile
// input can only ever stop a walk early.
//
// The kernel side of address dumps lives in [0].
//
// 0: https://elixir.bootlin.com/linux/v6.12.4/source/net/ipv4/devinet.c#L1887
package netlink
