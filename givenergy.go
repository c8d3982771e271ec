// Package givenergy implements a client for the "Transparent Modbus over
// TCP" wire protocol used by GivEnergy solar inverters and their attached
// battery modules.
//
// It is not a general purpose Modbus stack: it understands exactly the
// vendor envelope and the subset of function codes (read holding/input
// registers, write single holding register) that GivEnergy hardware
// speaks, and layers a declarative, named-attribute register model on top
// so callers read/write things like "battery_soc_reserve" instead of
// poking HR(110) directly.
package givenergy

import "errors"

// Well-known slave (unit) addresses.
const (
	// InverterAddress is the canonical slave address of the inverter.
	// Batteries are discovered at InverterAddress+1, +2, ... (spec §6).
	InverterAddress uint8 = 0x32

	// cloud/mobile-app aliases that must be remapped to InverterAddress.
	aliasAddrA uint8 = 0x11
	aliasAddrB uint8 = 0x30
	aliasAddrC uint8 = 0x31
)

// DefaultPort is the TCP port GivEnergy data-loggers listen on.
const DefaultPort = 8899

// Modbus function codes used by the transparent envelope.
const (
	FnReadHoldingRegisters uint8 = 0x03
	FnReadInputRegisters   uint8 = 0x04
	FnWriteHoldingRegister uint8 = 0x06

	// exceptionBit marks a response as a Modbus exception: the function
	// code byte has this bit set, and the low 7 bits name the function
	// that failed.
	exceptionBit uint8 = 0x80
)

// Sentinel errors. Framing/decode errors are recoverable per-frame;
// validation errors are fatal to a single command constructor call but
// never to the session.
var (
	// ErrFrameTooShort means a frame, or the body within it, is shorter
	// than its layout needs: fewer than 20 bytes to find the function code
	// (spec §4.1), too few for the envelope trailer, or a body too short
	// for its function code.
	ErrFrameTooShort = errors.New("givenergy: frame too short")

	// ErrBadCRC means the envelope checksum did not validate.
	ErrBadCRC = errors.New("givenergy: bad crc")

	// ErrUnknownFunctionCode means no decoder is registered for the
	// function code found in the frame.
	ErrUnknownFunctionCode = errors.New("givenergy: unknown function code")

	// ErrDecodeLengthMismatch means a response's declared register/byte
	// count didn't match the bytes actually present.
	ErrDecodeLengthMismatch = errors.New("givenergy: response length does not match declared count")

	// ErrUnknownRegisterName means a command constructor was asked to
	// resolve a named attribute that isn't in the register table.
	ErrUnknownRegisterName = errors.New("givenergy: unknown register name")

	// ErrNotWritable means the named attribute has no valid range, i.e.
	// it backs a read-only (input) register or a holding register the
	// table has not declared writable.
	ErrNotWritable = errors.New("givenergy: register is not writable")

	// ErrOutOfRange means a write's value falls outside the attribute's
	// declared valid range.
	ErrOutOfRange = errors.New("givenergy: value out of range")
)

// ValidationError is returned by command constructors when a requested
// write cannot be resolved to a request PDU. It wraps one of
// ErrUnknownRegisterName, ErrNotWritable or ErrOutOfRange so callers can
// use errors.Is/errors.As while still getting the offending name/value in
// the message.
type ValidationError struct {
	Name  string
	Value int
	Err   error
}

func (e *ValidationError) Error() string {
	return e.Name + ": " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }
