//go:build linux

package givenergy

import (
	"net"

	"golang.org/x/sys/unix"
)

// enableKeepalive turns on TCP keepalive and tunes the idle time before
// the first probe via TCP_KEEPIDLE, so a dead data-adapter link surfaces
// as a socket error well before the kernel's multi-hour default (spec
// §7's FramingError/connection-level failures need a live socket error
// to ever reach the framer).
func enableKeepalive(conn *net.TCPConn, idleSeconds int) error {
	if err := conn.SetKeepAlive(true); err != nil {
		return err
	}

	raw, err := conn.SyscallConn()
	if err != nil {
		return err
	}

	var sockErr error
	if ctrlErr := raw.Control(func(fd uintptr) {
		sockErr = unix.SetsockoptInt(int(fd), unix.IPPROTO_TCP, unix.TCP_KEEPIDLE, idleSeconds)
	}); ctrlErr != nil {
		return ctrlErr
	}
	return sockErr
}
