//go:build linux

package netlink

import (
	"fmt"
	"syscall"
	"time"

	"github.com/mdlayher/netlink"
	"golang.org/x/sys/unix"
)

// socket sends through the netlink.Conn but reads raw datagrams off its
// file descriptor so that we can walk them ourselves.
type socket struct {
	conn *netlink.Conn
	rc   syscall.RawConn
}

func dialSocket(conf *Config) (transport, error) {
	conn, err := netlink.Dial(unix.NETLINK_ROUTE, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: couldn't dial: %w", ErrTransport, err)
	}

	rc, err := conn.SyscallConn()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: couldn't get the raw connection: %w", ErrTransport, err)
	}

	if d := conf.readTimeout(); d > 0 {
		if err := conn.SetReadDeadline(time.Now().Add(d)); err != nil {
			conn.Close()
			return nil, fmt.Errorf("%w: couldn't set the read deadline: %w", ErrTransport, err)
		}
	}

	return &socket{conn: conn, rc: rc}, nil
}

func (s *socket) Send(req netlink.Message) error {
	_, err := s.conn.Send(req)
	return err
}

// Receive blocks until a whole datagram is read into b or the read
// deadline expires.
func (s *socket) Receive(b []byte) (int, error) {
	var (
		n    int
		rerr error
	)

	err := s.rc.Read(func(fd uintptr) bool {
		n, _, rerr = unix.Recvfrom(int(fd), b, 0)
		// Returning false waits for the descriptor to become readable.
		return rerr != unix.EAGAIN && rerr != unix.EINTR
	})
	if err != nil {
		return 0, err
	}
	if rerr != nil {
		return 0, rerr
	}

	return n, nil
}

func (s *socket) Close() error {
	return s.conn.Close()
}
