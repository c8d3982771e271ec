//go:build !linux

package givenergy

import (
	"net"
	"time"
)

// enableKeepalive falls back to the portable net.TCPConn keepalive knobs
// on platforms where golang.org/x/sys/unix's TCP_KEEPIDLE isn't wired up
// here; the idle interval is approximate on these platforms.
func enableKeepalive(conn *net.TCPConn, idleSeconds int) error {
	if err := conn.SetKeepAlive(true); err != nil {
		return err
	}
	return conn.SetKeepAlivePeriod(time.Duration(idleSeconds) * time.Second)
}
