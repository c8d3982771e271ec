package givenergy

import (
	"testing"
	"time"
)

func TestConvInt16SignExtends(t *testing.T) {
	if got := convInt16([]uint16{0xffff}); got != -1 {
		t.Errorf("expected -1, got %d", got)
	}
	if got := convInt16([]uint16{0x0001}); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
}

func TestConvDUint8(t *testing.T) {
	hi := convDUint8(0)([]uint16{0x1234})
	lo := convDUint8(1)([]uint16{0x1234})
	if hi != 0x12 {
		t.Errorf("expected high byte 0x12, got 0x%02x", hi)
	}
	if lo != 0x34 {
		t.Errorf("expected low byte 0x34, got 0x%02x", lo)
	}
}

func TestConvUint32(t *testing.T) {
	got := convUint32([]uint16{0x0001, 0x0002})
	if got != 0x00010002 {
		t.Errorf("expected 0x00010002, got 0x%08x", got)
	}
}

func TestConvString(t *testing.T) {
	// "BG1234G567" packed big-endian two chars per register.
	regs := []uint16{0x4247, 0x3132, 0x3334, 0x4735, 0x3637}
	got := convString(regs)
	if got != "BG1234G567" {
		t.Errorf("expected BG1234G567, got %q", got)
	}
}

func TestConvStringStripsNulAndUppercases(t *testing.T) {
	regs := []uint16{0x6100, 0x0062}
	got := convString(regs)
	if got != "AB" {
		t.Errorf("expected AB, got %q", got)
	}
}

func TestConvDatetime(t *testing.T) {
	got := convDatetime([]uint16{24, 6, 15, 13, 5, 9})
	want := time.Date(2024, time.June, 15, 13, 5, 9, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestConvTimeslot(t *testing.T) {
	got := convTimeslot([]uint16{30, 1730})
	if got.Start.Hour != 0 || got.Start.Minute != 30 {
		t.Errorf("unexpected start %v", got.Start)
	}
	if got.End.Hour != 17 || got.End.Minute != 30 {
		t.Errorf("unexpected end %v", got.End)
	}
}

func TestPostScaling(t *testing.T) {
	if postMilli(3221) != 3.221 {
		t.Errorf("expected 3.221, got %v", postMilli(3221))
	}
	if postCenti(4990) != 49.9 {
		t.Errorf("expected 49.9, got %v", postCenti(4990))
	}
	if postDeci(2367) != 236.7 {
		t.Errorf("expected 236.7, got %v", postDeci(2367))
	}
}

func TestPostHex(t *testing.T) {
	if got := postHex(4)(0x2b); got != "002b" {
		t.Errorf("expected 002b, got %q", got)
	}
}

func TestPostFirmwareVersion(t *testing.T) {
	if got := postFirmwareVersion(446, 1007); got != "D0.446-A0.1007" {
		t.Errorf("expected D0.446-A0.1007, got %q", got)
	}
}

func TestInverterMaxPower(t *testing.T) {
	v, ok := inverterMaxPower("4001")
	if !ok || v != 6000 {
		t.Errorf("expected (6000, true), got (%d, %v)", v, ok)
	}
	if _, ok := inverterMaxPower("9999"); ok {
		t.Errorf("expected unknown code to report false")
	}
}
