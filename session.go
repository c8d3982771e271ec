package givenergy

import (
	"fmt"
	"net"
	"time"
)

// DialConfig configures Dial. It deliberately does not offer automatic
// reconnection or a connection pool: the TCP connection manager and its
// reconnect policy are named out of scope (spec §1) - callers that want
// retry/backoff wrap Dial themselves.
type DialConfig struct {
	// Address is host:port; DefaultPort is assumed if no port is given.
	Address string
	// DialTimeout bounds the initial TCP handshake.
	DialTimeout time.Duration
	// IOTimeout bounds each Send call and each socket read made by Next.
	// Zero means no deadline.
	IOTimeout time.Duration
	// KeepAliveIdle is how long the connection may sit idle before the
	// kernel starts probing it (0 disables the platform tuning and
	// leaves the keepalive settings net.DialTimeout applies in place).
	KeepAliveIdle time.Duration
	// Logger receives framing/decode diagnostics. Nil uses the default.
	Logger LeveledLogger
}

// Session is a single open TCP connection to a GivEnergy data adapter. It
// is the transport primitive the rest of this package assumes (spec
// §4.1/§5): a byte stream in, a stream of decoded PDUs out. Matching a
// response to the request that triggered it, and recovering from a
// dropped connection, are both the request/response correlation layer
// and the connection manager named out of scope in spec §1 - neither is
// implemented here.
type Session struct {
	conn    net.Conn
	framer  *Framer
	logger  LeveledLogger
	ioRead  []byte
	timeout time.Duration
}

// Dial opens a TCP connection to a data adapter and returns a Session
// ready to Send/Next against it.
func Dial(conf DialConfig) (*Session, error) {
	addr := conf.Address
	if _, _, err := net.SplitHostPort(addr); err != nil {
		addr = fmt.Sprintf("%s:%d", addr, DefaultPort)
	}

	dialTimeout := conf.DialTimeout
	if dialTimeout == 0 {
		dialTimeout = 5 * time.Second
	}

	logger := conf.Logger
	if logger == nil {
		logger = defaultLogger(fmt.Sprintf("session(%s)", addr))
	}

	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		return nil, err
	}

	if tc, ok := conn.(*net.TCPConn); ok && conf.KeepAliveIdle > 0 {
		if err := enableKeepalive(tc, int(conf.KeepAliveIdle.Seconds())); err != nil {
			logger.Warningf("could not configure tcp keepalive: %v", err)
		}
	}

	return &Session{
		conn:    conn,
		framer:  NewFramer(clientIncomingDecoders, logger),
		logger:  logger,
		ioRead:  make([]byte, 4096),
		timeout: conf.IOTimeout,
	}, nil
}

// Close closes the underlying socket.
func (s *Session) Close() error {
	return s.conn.Close()
}

// Send encodes p as a request addressed to slaveAddress and writes it to
// the socket. inverterSerial/dataAdapterSerial are normally the values
// last observed from Inverter()/Plant, since the device doesn't require
// a live/confirmed pair to accept a request.
func (s *Session) Send(p PDU, inverterSerial, dataAdapterSerial string, slaveAddress uint8) error {
	if s.timeout > 0 {
		if err := s.conn.SetWriteDeadline(time.Now().Add(s.timeout)); err != nil {
			return err
		}
	}
	_, err := s.conn.Write(EncodeFrame(p, inverterSerial, dataAdapterSerial, slaveAddress))
	return err
}

// Next returns the next decoded PDU from the stream, reading more bytes
// from the socket as needed. A framing or decode error is returned once
// for the offending frame; the connection and the underlying Framer
// remain usable for the next call (spec §4.1's "drop frame, continue
// stream" policy).
func (s *Session) Next() (PDU, error) {
	for {
		pdu, err := s.framer.Next()
		if err != errNeedMoreData {
			return pdu, err
		}

		if s.timeout > 0 {
			if err := s.conn.SetReadDeadline(time.Now().Add(s.timeout)); err != nil {
				return nil, err
			}
		}
		n, err := s.conn.Read(s.ioRead)
		if n > 0 {
			s.framer.Feed(s.ioRead[:n])
		}
		if err != nil {
			return nil, err
		}
	}
}
