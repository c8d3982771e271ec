package givenergy

import (
	"encoding/binary"
)

// Envelope layout.
//
// Every frame on the wire is an 8-byte header followed by a variable-length
// inner payload:
//
//	offset 0:2   total length of everything after this field
//	offset 2:4   protocol identifier (constant, unused by this client)
//	offset 4     outer (transparent-wrapper) unit id, always transparentUnitID
//	offset 5     outer function code, always transparentFunction
//	offset 6     transparency-specific error flag (0 or 1)
//	offset 7     reserved, always zero
//	offset 8:18  inverter_serial_number, 10 bytes packed ASCII
//	offset 18    slave_address
//	offset 19    inner function code (spec §4.1: "offset 19 from the start
//	             of the PDU" is exactly this byte - this is the one fixed
//	             point the original decoder.py nails down byte-for-byte;
//	             every other field's position here fills in around it)
//	offset 20:   function-specific body
//	...          data_adapter_serial_number, 10 bytes packed ASCII (trailer)
//	...          2-byte CRC-16/MODBUS over everything preceding it
const (
	headerLen            = 8
	serialNumberLen      = 10
	envelopeFixedOverhead = headerLen + serialNumberLen /* inverter serial */ + 1 /* slave addr */ + 1 /* fn code */
	transparentUnitID    uint8 = 0x01
	transparentFunction  uint8 = 0x02
)

// transparentEnvelope carries the fields common to every decoded PDU: the
// identifying serial numbers, the slave address the inner message targets,
// and whether the device flagged this response as erroneous.
type transparentEnvelope struct {
	InverterSerialNumber    string
	DataAdapterSerialNumber string
	SlaveAddress            uint8
	Error                   bool
}

// PDU is implemented by every decodable/encodable message variant.
type PDU interface {
	// FunctionCode is the inner Modbus-style function code this variant
	// decodes/encodes, or exceptionBit|fn for an exception response.
	FunctionCode() uint8
	// Envelope returns the transparency fields carried by this PDU.
	Envelope() transparentEnvelope
}

// --- Heartbeat -------------------------------------------------------------

// HeartbeatRequest and HeartbeatResponse are liveness frames; their body is
// empty and carries no register data.
type HeartbeatRequest struct{ envelope transparentEnvelope }
type HeartbeatResponse struct{ envelope transparentEnvelope }

func (p *HeartbeatRequest) FunctionCode() uint8              { return fnHeartbeat }
func (p *HeartbeatRequest) Envelope() transparentEnvelope    { return p.envelope }
func (p *HeartbeatResponse) FunctionCode() uint8             { return fnHeartbeat }
func (p *HeartbeatResponse) Envelope() transparentEnvelope   { return p.envelope }

// fnHeartbeat is a vendor-reserved function code outside the Modbus
// read/write range used for this specific idle frame.
const fnHeartbeat uint8 = 0x01

// --- Null response -----------------------------------------------------------

// NullResponse is a placeholder/no-op response the plant update engine
// drops unconditionally (spec §4.3).
type NullResponse struct{ envelope transparentEnvelope }

func (p *NullResponse) FunctionCode() uint8           { return fnNull }
func (p *NullResponse) Envelope() transparentEnvelope { return p.envelope }

const fnNull uint8 = 0x00

// --- Exception response ------------------------------------------------------

// ExceptionResponse is the decoded form of any frame whose function code has
// the high bit set: the device is rejecting OriginalFunction with
// ExceptionCode. The plant update engine never mutates a cache from one of
// these (spec §7).
type ExceptionResponse struct {
	envelope         transparentEnvelope
	OriginalFunction uint8
	ExceptionCode    uint8
}

func (p *ExceptionResponse) FunctionCode() uint8           { return exceptionBit | p.OriginalFunction }
func (p *ExceptionResponse) Envelope() transparentEnvelope { return p.envelope }

// --- Read registers ----------------------------------------------------------

// ReadHoldingRegistersRequest/Response and ReadInputRegistersRequest/Response
// cover range reads of the two register kinds. Request carries the range to
// read; Response carries the range plus the values returned.
type ReadHoldingRegistersRequest struct {
	envelope     transparentEnvelope
	BaseRegister uint16
	Count        uint16
}

type ReadHoldingRegistersResponse struct {
	envelope     transparentEnvelope
	BaseRegister uint16
	Values       []uint16
}

type ReadInputRegistersRequest struct {
	envelope     transparentEnvelope
	BaseRegister uint16
	Count        uint16
}

type ReadInputRegistersResponse struct {
	envelope     transparentEnvelope
	BaseRegister uint16
	Values       []uint16
}

func (p *ReadHoldingRegistersRequest) FunctionCode() uint8           { return FnReadHoldingRegisters }
func (p *ReadHoldingRegistersRequest) Envelope() transparentEnvelope { return p.envelope }
func (p *ReadHoldingRegistersResponse) FunctionCode() uint8          { return FnReadHoldingRegisters }
func (p *ReadHoldingRegistersResponse) Envelope() transparentEnvelope { return p.envelope }
func (p *ReadInputRegistersRequest) FunctionCode() uint8             { return FnReadInputRegisters }
func (p *ReadInputRegistersRequest) Envelope() transparentEnvelope   { return p.envelope }
func (p *ReadInputRegistersResponse) FunctionCode() uint8            { return FnReadInputRegisters }
func (p *ReadInputRegistersResponse) Envelope() transparentEnvelope  { return p.envelope }

// --- Write holding register --------------------------------------------------

// WriteHoldingRegisterRequest/Response cover a single-register write;
// Response echoes the written register/value (or, for a corrupt write,
// register 0 - see spec §3's invariant on that).
type WriteHoldingRegisterRequest struct {
	envelope transparentEnvelope
	Register uint16
	Value    uint16
}

type WriteHoldingRegisterResponse struct {
	envelope transparentEnvelope
	Register uint16
	Value    uint16
}

func (p *WriteHoldingRegisterRequest) FunctionCode() uint8           { return FnWriteHoldingRegister }
func (p *WriteHoldingRegisterRequest) Envelope() transparentEnvelope { return p.envelope }
func (p *WriteHoldingRegisterResponse) FunctionCode() uint8          { return FnWriteHoldingRegister }
func (p *WriteHoldingRegisterResponse) Envelope() transparentEnvelope { return p.envelope }

// --- encode/decode helpers ----------------------------------------------------

// decodeReadRegistersResponse parses the common "byte count + values" body
// shared by ReadHoldingRegistersResponse and ReadInputRegistersResponse.
// body begins immediately after the function code byte: base register (2
// bytes), byte count (1 byte), then byte_count/2 big-endian u16 values.
func decodeReadRegistersResponse(body []byte) (base uint16, values []uint16, err error) {
	if len(body) < 3 {
		return 0, nil, ErrFrameTooShort
	}
	base = binary.BigEndian.Uint16(body[0:2])
	byteCount := int(body[2])
	rest := body[3:]
	if byteCount%2 != 0 || len(rest) != byteCount {
		return 0, nil, ErrDecodeLengthMismatch
	}
	values = make([]uint16, byteCount/2)
	for i := range values {
		values[i] = binary.BigEndian.Uint16(rest[i*2 : i*2+2])
	}
	return base, values, nil
}

// encodeReadRegistersRequest renders the "base register + count" request
// body shared by both read variants.
func encodeReadRegistersRequest(base, count uint16) []byte {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint16(buf[0:2], base)
	binary.BigEndian.PutUint16(buf[2:4], count)
	return buf
}

// decodeWriteHoldingRegisterBody parses the "register + value" body shared
// by the write request and its echoed response.
func decodeWriteHoldingRegisterBody(body []byte) (register, value uint16, err error) {
	if len(body) < 4 {
		return 0, 0, ErrFrameTooShort
	}
	return binary.BigEndian.Uint16(body[0:2]), binary.BigEndian.Uint16(body[2:4]), nil
}

func encodeWriteHoldingRegisterBody(register, value uint16) []byte {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint16(buf[0:2], register)
	binary.BigEndian.PutUint16(buf[2:4], value)
	return buf
}
