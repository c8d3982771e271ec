package givenergy

import (
	"fmt"
	"strings"
	"time"
)

// The functions below are the pre- and post-conversions a RegisterDefinition
// names (spec §4.2). pre-conversions turn one or more raw register words
// into an intermediate Go value; post-conversions turn that intermediate
// into the attribute's final typed representation.

func convUint16(regs []uint16) uint16 { return regs[0] }

func convInt16(regs []uint16) int16 { return int16(regs[0]) }

// convDUint8 splits a single register into its high and low bytes and
// returns the one selected by idx (0 = high byte, 1 = low byte).
func convDUint8(idx int) func([]uint16) uint8 {
	return func(regs []uint16) uint8 {
		if idx == 0 {
			return uint8(regs[0] >> 8)
		}
		return uint8(regs[0] & 0xff)
	}
}

// convUint32 composes two registers (high word first) into an unsigned
// 32-bit integer.
func convUint32(regs []uint16) uint32 {
	return uint32(regs[0])<<16 | uint32(regs[1])
}

// convTimeslot interprets two HHMM-encoded registers as a TimeSlot.
func convTimeslot(regs []uint16) TimeSlot {
	return timeSlotFromHHMM(regs[0], regs[1])
}

func convBool(regs []uint16) bool { return regs[0] != 0 }

// convString concatenates one or more registers as big-endian byte pairs,
// decodes as latin-1, strips embedded NULs and upper-cases the result -
// GivEnergy serial numbers and model names are packed ASCII.
func convString(regs []uint16) string {
	var b strings.Builder
	for _, r := range regs {
		hi := byte(r >> 8)
		lo := byte(r & 0xff)
		if hi != 0 {
			b.WriteRune(rune(hi))
		}
		if lo != 0 {
			b.WriteRune(rune(lo))
		}
	}
	return strings.ToUpper(b.String())
}

// convDatetime composes six registers (year offset from 2000, month, day,
// hour, minute, second) into a time.Time.
func convDatetime(regs []uint16) time.Time {
	year, month, day, hour, minute, second := regs[0], regs[1], regs[2], regs[3], regs[4], regs[5]
	return time.Date(2000+int(year), time.Month(month), int(day), int(hour), int(minute), int(second), 0, time.UTC)
}

// Post-conversions.

func postMilli(v int) float64 { return float64(v) / 1000 }
func postCenti(v int) float64 { return float64(v) / 100 }
func postDeci(v int) float64  { return float64(v) / 10 }

// postHex renders v as a fixed-width lowercase hex string.
func postHex(width int) func(int) string {
	return func(v int) string {
		return fmt.Sprintf("%0*x", width, v)
	}
}

// postFstr renders v using a Go fmt verb, e.g. "%d" or "%05d".
func postFstr(format string) func(int) string {
	return func(v int) string {
		return fmt.Sprintf(format, v)
	}
}

// postFirmwareVersion composes DSP and ARM firmware versions into the same
// string format the GivEnergy dashboard uses.
func postFirmwareVersion(dsp, arm int) string {
	return fmt.Sprintf("D0.%d-A0.%d", dsp, arm)
}

// inverterMaxPower maps a device type code (as a 4-digit decimal string
// derived from a hex register) to the inverter's rated max power in watts.
// Returns 0, false for an unrecognised code.
func inverterMaxPower(deviceTypeCode string) (int, bool) {
	m := map[string]int{
		"2001": 5000,
		"2002": 4600,
		"2003": 3600,
		"3001": 3000,
		"3002": 3600,
		"4001": 6000,
		"4002": 8000,
		"4003": 10000,
		"4004": 11000,
		"8001": 6000,
	}
	v, ok := m[deviceTypeCode]
	return v, ok
}
