package givenergy

import "testing"

func TestInverterRegistersResolveEnableAmmeter(t *testing.T) {
	cache := NewRegisterCache()
	cache.Set(HR(7), 1)

	v, ok := inverterRegisters.Resolve(cache, "enable_ammeter")
	if !ok {
		t.Fatalf("expected enable_ammeter to resolve")
	}
	if v.(bool) != true {
		t.Errorf("expected true, got %v", v)
	}
}

func TestInverterRegistersResolveSerialNumber(t *testing.T) {
	cache := NewRegisterCache()
	cache.Update(HR(8), []uint16{0x4247, 0x3132, 0x3334, 0x4735, 0x3637})

	v, ok := inverterRegisters.Resolve(cache, "serial_number")
	if !ok {
		t.Fatalf("expected serial_number to resolve")
	}
	if v.(string) != "BG1234G567" {
		t.Errorf("expected BG1234G567, got %q", v)
	}
}

func TestInverterRegistersResolveFirmwareVersion(t *testing.T) {
	cache := NewRegisterCache()
	cache.Set(HR(14), 437)
	cache.Set(HR(15), 118)

	v, ok := inverterRegisters.Resolve(cache, "firmware_version")
	if !ok {
		t.Fatalf("expected firmware_version to resolve")
	}
	if v.(string) != "D0.437-A0.118" {
		t.Errorf("unexpected firmware string: %q", v)
	}
}

func TestInverterRegistersResolveUnobservedDefaultsZero(t *testing.T) {
	cache := NewRegisterCache()
	v, ok := inverterRegisters.Resolve(cache, "battery_soc_reserve")
	if !ok {
		t.Fatalf("expected battery_soc_reserve to resolve")
	}
	if v.(uint16) != 0 {
		t.Errorf("expected default zero, got %v", v)
	}
}

func TestInverterRegistersResolveUnknownName(t *testing.T) {
	cache := NewRegisterCache()
	if _, ok := inverterRegisters.Resolve(cache, "does_not_exist"); ok {
		t.Errorf("expected unknown attribute name to fail resolve")
	}
}

func TestChargeTargetSOCAcceptsBoundaryValues(t *testing.T) {
	for _, v := range []int{4, 100} {
		if _, err := inverterRegisters.CheckWrite("charge_target_soc", v); err != nil {
			t.Errorf("expected %d to be accepted, got %v", v, err)
		}
	}
}

func TestChargeTargetSOCRejectsOutOfRange(t *testing.T) {
	for _, v := range []int{0, 3, 101} {
		if _, err := inverterRegisters.CheckWrite("charge_target_soc", v); err == nil {
			t.Errorf("expected %d to be rejected", v)
		}
	}
}

func TestCheckWriteRejectsReadOnlyAttribute(t *testing.T) {
	_, err := inverterRegisters.CheckWrite("serial_number", 1)
	if err == nil {
		t.Fatalf("expected error writing a read-only attribute")
	}
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if ve.Err != ErrNotWritable {
		t.Errorf("expected ErrNotWritable, got %v", ve.Err)
	}
}

func TestCheckWriteRejectsUnknownAttribute(t *testing.T) {
	_, err := inverterRegisters.CheckWrite("not_a_real_attribute", 1)
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if ve.Err != ErrUnknownRegisterName {
		t.Errorf("expected ErrUnknownRegisterName, got %v", ve.Err)
	}
}

func TestBatteryRegistersResolveSerialNumber(t *testing.T) {
	cache := NewRegisterCache()
	cache.Update(IR(110), []uint16{0x4247, 0x3132, 0x3334, 0x4735, 0x3637})

	v, ok := batteryRegisters.Resolve(cache, "serial_number")
	if !ok {
		t.Fatalf("expected battery serial_number to resolve")
	}
	if v.(string) != "BG1234G567" {
		t.Errorf("expected BG1234G567, got %q", v)
	}
}

func TestBatteryRegistersResolveVCell(t *testing.T) {
	cache := NewRegisterCache()
	cache.Set(IR(60), 3221)

	v, ok := batteryRegisters.Resolve(cache, "v_cell_01")
	if !ok {
		t.Fatalf("expected v_cell_01 to resolve")
	}
	if v.(float64) != 3.221 {
		t.Errorf("expected 3.221, got %v", v)
	}
}

func TestVCellNameFormatting(t *testing.T) {
	cases := map[int]string{1: "v_cell_01", 9: "v_cell_09", 16: "v_cell_16"}
	for n, want := range cases {
		if got := vCellName(n); got != want {
			t.Errorf("vCellName(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestChargeSlotComposesTimeslot(t *testing.T) {
	cache := NewRegisterCache()
	cache.Set(HR(26), 30)
	cache.Set(HR(27), 430)

	v, ok := inverterRegisters.Resolve(cache, "charge_slot_1")
	if !ok {
		t.Fatalf("expected charge_slot_1 to resolve")
	}
	slot := v.(TimeSlot)
	if slot.Start.Hour != 0 || slot.Start.Minute != 30 {
		t.Errorf("unexpected slot start: %+v", slot.Start)
	}
	if slot.End.Hour != 4 || slot.End.Minute != 30 {
		t.Errorf("unexpected slot end: %+v", slot.End)
	}
}
