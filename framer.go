package givenergy

import (
	"encoding/binary"
	"errors"
)

// errNeedMoreData is returned internally (never to callers of Next) when
// the buffer doesn't yet hold a complete frame.
var errNeedMoreData = errors.New("givenergy: need more data")

// ErrNeedMoreData is the exported form of errNeedMoreData, for callers
// outside this package driving a Framer directly (e.g. a replay tool
// reading a capture file in chunks).
var ErrNeedMoreData = errNeedMoreData

// frameDecoder is looked up by inner function code to turn the envelope
// plus the inner payload (the bytes strictly between the function code and
// the trailing adapter-serial/CRC footer) into a concrete PDU.
type frameDecoder func(envelope transparentEnvelope, body []byte) (PDU, error)

// clientIncomingDecoders dispatches responses - what a client (this
// library) expects to read back from an inverter.
var clientIncomingDecoders = map[uint8]frameDecoder{
	fnHeartbeat:            decodeHeartbeatResponse,
	fnNull:                 decodeNullResponse,
	FnReadHoldingRegisters: decodeReadHoldingRegistersResponse,
	FnReadInputRegisters:   decodeReadInputRegistersResponse,
	FnWriteHoldingRegister: decodeWriteHoldingRegisterResponse,
}

// serverIncomingDecoders dispatches requests - what a server (a real
// inverter, or a test fixture emulating one) expects to read.
var serverIncomingDecoders = map[uint8]frameDecoder{
	fnHeartbeat:            decodeHeartbeatRequest,
	FnReadHoldingRegisters: decodeReadHoldingRegistersRequest,
	FnReadInputRegisters:   decodeReadInputRegistersRequest,
	FnWriteHoldingRegister: decodeWriteHoldingRegisterRequest,
}

// snifferDecoders merges both tables for general-purpose traffic capture,
// where a single stream may contain both requests and responses. Response
// decoders take precedence where a function code is in both tables, which
// is the case for every code in serverIncomingDecoders.
var snifferDecoders = mergeDecoders(serverIncomingDecoders, clientIncomingDecoders)

func mergeDecoders(tables ...map[uint8]frameDecoder) map[uint8]frameDecoder {
	merged := make(map[uint8]frameDecoder)
	for _, t := range tables {
		for fn, d := range t {
			merged[fn] = d
		}
	}
	return merged
}

func decodeHeartbeatRequest(e transparentEnvelope, body []byte) (PDU, error) {
	return &HeartbeatRequest{envelope: e}, nil
}

func decodeHeartbeatResponse(e transparentEnvelope, body []byte) (PDU, error) {
	return &HeartbeatResponse{envelope: e}, nil
}

func decodeNullResponse(e transparentEnvelope, body []byte) (PDU, error) {
	return &NullResponse{envelope: e}, nil
}

func decodeReadHoldingRegistersRequest(e transparentEnvelope, body []byte) (PDU, error) {
	if len(body) < 4 {
		return nil, ErrFrameTooShort
	}
	return &ReadHoldingRegistersRequest{
		envelope:     e,
		BaseRegister: binary.BigEndian.Uint16(body[0:2]),
		Count:        binary.BigEndian.Uint16(body[2:4]),
	}, nil
}

func decodeReadInputRegistersRequest(e transparentEnvelope, body []byte) (PDU, error) {
	if len(body) < 4 {
		return nil, ErrFrameTooShort
	}
	return &ReadInputRegistersRequest{
		envelope:     e,
		BaseRegister: binary.BigEndian.Uint16(body[0:2]),
		Count:        binary.BigEndian.Uint16(body[2:4]),
	}, nil
}

func decodeReadHoldingRegistersResponse(e transparentEnvelope, body []byte) (PDU, error) {
	base, values, err := decodeReadRegistersResponse(body)
	if err != nil {
		return nil, err
	}
	return &ReadHoldingRegistersResponse{envelope: e, BaseRegister: base, Values: values}, nil
}

func decodeReadInputRegistersResponse(e transparentEnvelope, body []byte) (PDU, error) {
	base, values, err := decodeReadRegistersResponse(body)
	if err != nil {
		return nil, err
	}
	return &ReadInputRegistersResponse{envelope: e, BaseRegister: base, Values: values}, nil
}

func decodeWriteHoldingRegisterRequest(e transparentEnvelope, body []byte) (PDU, error) {
	reg, val, err := decodeWriteHoldingRegisterBody(body)
	if err != nil {
		return nil, err
	}
	return &WriteHoldingRegisterRequest{envelope: e, Register: reg, Value: val}, nil
}

func decodeWriteHoldingRegisterResponse(e transparentEnvelope, body []byte) (PDU, error) {
	reg, val, err := decodeWriteHoldingRegisterBody(body)
	if err != nil {
		return nil, err
	}
	return &WriteHoldingRegisterResponse{envelope: e, Register: reg, Value: val}, nil
}

// Framer turns a possibly-fragmented byte stream into a sequence of typed
// PDUs (spec §4.1). It is not safe for concurrent use; callers must
// serialize Feed/Next the same way the rest of the core is serialized
// (spec §5).
type Framer struct {
	buf      []byte
	decoders map[uint8]frameDecoder
	logger   LeveledLogger
}

// NewFramer returns a Framer dispatching function codes through table,
// which should be clientIncomingDecoders, serverIncomingDecoders or
// snifferDecoders depending on which half of the conversation (or both)
// the caller expects.
func NewFramer(table map[uint8]frameDecoder, logger LeveledLogger) *Framer {
	if logger == nil {
		logger = defaultLogger("framer")
	}
	return &Framer{decoders: table, logger: logger}
}

// NewSnifferFramer returns a Framer dispatching through snifferDecoders,
// for callers that expect a stream containing both requests and
// responses (a capture file, a man-in-the-middle replay). Because every
// request function code is also a response code, request frames are
// decoded with the response decoders: heartbeat and write requests come
// back as the matching response types, and read requests fail with
// ErrDecodeLengthMismatch.
func NewSnifferFramer(logger LeveledLogger) *Framer {
	return NewFramer(snifferDecoders, logger)
}

// Feed appends newly received bytes to the framer's internal buffer.
func (f *Framer) Feed(data []byte) {
	f.buf = append(f.buf, data...)
}

// Next attempts to decode one frame from the buffered stream.
//
//   - (pdu, nil): a frame was fully decoded.
//   - (nil, errNeedMoreData): the buffer holds no complete frame; Feed more
//     bytes and call Next again.
//   - (nil, err): a complete frame was present but failed to decode (bad
//     CRC, unknown function code, length mismatch). The bad frame has
//     already been consumed from the buffer, so the stream continues on
//     the next call - this is the "drop frame, continue stream" recovery
//     spec §4.1/§7 require.
func (f *Framer) Next() (PDU, error) {
	if len(f.buf) < headerLen {
		return nil, errNeedMoreData
	}

	declaredLen := binary.BigEndian.Uint16(f.buf[0:2])
	total := int(declaredLen) + 2
	if len(f.buf) < total {
		return nil, errNeedMoreData
	}

	frame := f.buf[:total]
	f.buf = f.buf[total:]
	return f.decodeFrame(frame)
}

// minFrameLen is the smallest possible complete frame: header + inverter
// serial + slave address + function code + adapter serial + CRC, with a
// zero-length body.
const minFrameLen = headerLen + serialNumberLen + 1 /* slave */ + 1 /* fn */ + serialNumberLen + 2 /* crc */

func (f *Framer) decodeFrame(frame []byte) (PDU, error) {
	if len(frame) < 20 {
		f.logger.Errorf("frame too short to contain a function code: %d bytes", len(frame))
		return nil, ErrFrameTooShort
	}
	if len(frame) < minFrameLen {
		f.logger.Errorf("frame too short for envelope footer: %d bytes", len(frame))
		return nil, ErrFrameTooShort
	}

	crcBody := frame[:len(frame)-2]
	c := newCRC()
	c.add(crcBody)
	if !c.matches(frame[len(frame)-2], frame[len(frame)-1]) {
		f.logger.Error("bad crc")
		return nil, ErrBadCRC
	}

	envelope := transparentEnvelope{
		InverterSerialNumber:    trimSerial(frame[8:18]),
		SlaveAddress:            frame[18],
		Error:                   frame[6] != 0,
		DataAdapterSerialNumber: trimSerial(frame[len(frame)-2-serialNumberLen : len(frame)-2]),
	}

	fn := frame[19]
	body := frame[20 : len(frame)-2-serialNumberLen]

	if fn&exceptionBit != 0 {
		if len(body) < 1 {
			return nil, ErrFrameTooShort
		}
		return &ExceptionResponse{
			envelope:         envelope,
			OriginalFunction: fn &^ exceptionBit,
			ExceptionCode:    body[0],
		}, nil
	}

	decode, ok := f.decoders[fn]
	if !ok {
		f.logger.Errorf("no decoder for function code 0x%02x", fn)
		return nil, ErrUnknownFunctionCode
	}
	pdu, err := decode(envelope, body)
	if err != nil {
		f.logger.Errorf("decoding function code 0x%02x: %v", fn, err)
	}
	return pdu, err
}

// trimSerial strips trailing NUL padding from a fixed-width ASCII field.
func trimSerial(b []byte) string {
	i := len(b)
	for i > 0 && b[i-1] == 0 {
		i--
	}
	return string(b[:i])
}

// --- send path ---------------------------------------------------------------

// EncodeFrame serializes pdu into a complete wire frame addressed to
// slaveAddress, stamped with the given serial numbers.
func EncodeFrame(p PDU, inverterSerial, adapterSerial string, slaveAddress uint8) []byte {
	body := encodeBody(p)

	inner := make([]byte, 0, serialNumberLen+1+1+len(body))
	inner = append(inner, padSerial(inverterSerial)...)
	inner = append(inner, slaveAddress)
	inner = append(inner, p.FunctionCode())
	inner = append(inner, body...)
	inner = append(inner, padSerial(adapterSerial)...)

	frameLen := 6 /* header bytes after the length field */ + len(inner) + 2 /* crc */
	frame := make([]byte, 8, 8+len(inner)+2)
	binary.BigEndian.PutUint16(frame[0:2], uint16(frameLen))
	binary.BigEndian.PutUint16(frame[2:4], 0) // protocol id, unused
	frame[4] = transparentUnitID
	frame[5] = transparentFunction
	if p.Envelope().Error {
		frame[6] = 1
	}
	frame[7] = 0
	frame = append(frame, inner...)

	c := newCRC()
	c.add(frame)
	crc := c.bytes()
	frame = append(frame, crc[0], crc[1])
	return frame
}

func padSerial(s string) []byte {
	b := make([]byte, serialNumberLen)
	copy(b, s)
	return b
}

func encodeBody(p PDU) []byte {
	switch v := p.(type) {
	case *HeartbeatRequest, *HeartbeatResponse, *NullResponse:
		return nil
	case *ReadHoldingRegistersRequest:
		return encodeReadRegistersRequest(v.BaseRegister, v.Count)
	case *ReadInputRegistersRequest:
		return encodeReadRegistersRequest(v.BaseRegister, v.Count)
	case *WriteHoldingRegisterRequest:
		return encodeWriteHoldingRegisterBody(v.Register, v.Value)
	case *WriteHoldingRegisterResponse:
		return encodeWriteHoldingRegisterBody(v.Register, v.Value)
	case *ReadHoldingRegistersResponse:
		return encodeReadRegistersResponseBody(v.BaseRegister, v.Values)
	case *ReadInputRegistersResponse:
		return encodeReadRegistersResponseBody(v.BaseRegister, v.Values)
	case *ExceptionResponse:
		return []byte{v.ExceptionCode}
	default:
		return nil
	}
}

func encodeReadRegistersResponseBody(base uint16, values []uint16) []byte {
	buf := make([]byte, 3+len(values)*2)
	binary.BigEndian.PutUint16(buf[0:2], base)
	buf[2] = byte(len(values) * 2)
	for i, v := range values {
		binary.BigEndian.PutUint16(buf[3+i*2:5+i*2], v)
	}
	return buf
}
