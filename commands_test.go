package givenergy

import "testing"

func registerOf(t *testing.T, reqs []*WriteHoldingRegisterRequest, i int) (register, value uint16) {
	t.Helper()
	if i >= len(reqs) {
		t.Fatalf("expected at least %d requests, got %d", i+1, len(reqs))
	}
	return reqs[i].Register, reqs[i].Value
}

// TestSetChargeTargetComposition mirrors spec §8 scenario 6.
func TestSetChargeTargetComposition(t *testing.T) {
	var c Commands

	reqs, err := c.SetChargeTarget(65)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reqs) != 3 {
		t.Fatalf("expected 3 requests, got %d", len(reqs))
	}
	wantEnableCharge, _, _ := inverterRegisters.LookupWritable("enable_charge")
	wantEnableTarget, _, _ := inverterRegisters.LookupWritable("enable_charge_target")
	wantTargetSOC, _, _ := inverterRegisters.LookupWritable("charge_target_soc")

	if reg, val := registerOf(t, reqs, 0); reg != uint16(wantEnableCharge.Index) || val != 1 {
		t.Errorf("req0: want enable_charge=1, got reg %d val %d", reg, val)
	}
	if reg, val := registerOf(t, reqs, 1); reg != uint16(wantEnableTarget.Index) || val != 1 {
		t.Errorf("req1: want enable_charge_target=1, got reg %d val %d", reg, val)
	}
	if reg, val := registerOf(t, reqs, 2); reg != uint16(wantTargetSOC.Index) || val != 65 {
		t.Errorf("req2: want charge_target_soc=65, got reg %d val %d", reg, val)
	}
}

func TestSetChargeTarget100ClearsTarget(t *testing.T) {
	var c Commands
	reqs, err := c.SetChargeTarget(100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reqs) != 3 {
		t.Fatalf("expected 3 requests, got %d", len(reqs))
	}
	if _, val := registerOf(t, reqs, 1); val != 0 {
		t.Errorf("expected enable_charge_target cleared to 0, got %d", val)
	}
	if _, val := registerOf(t, reqs, 2); val != 100 {
		t.Errorf("expected charge_target_soc == 100, got %d", val)
	}
}

func TestSetChargeTargetRejectsOutOfRange(t *testing.T) {
	var c Commands
	reqs, err := c.SetChargeTarget(3)
	if err == nil {
		t.Fatalf("expected ValidationError for target 3")
	}
	if reqs != nil {
		t.Errorf("expected no requests on validation failure, got %v", reqs)
	}
}

func TestSetModeDynamicComposition(t *testing.T) {
	var c Commands
	reqs := c.SetModeDynamic()
	if len(reqs) != 3 {
		t.Fatalf("expected 3 requests, got %d", len(reqs))
	}
	if _, val := registerOf(t, reqs, 1); val != 4 {
		t.Errorf("expected battery_soc_reserve == 4, got %d", val)
	}
	if _, val := registerOf(t, reqs, 2); val != 0 {
		t.Errorf("expected enable_discharge disabled, got %d", val)
	}
}

func TestSetModeStorageForExport(t *testing.T) {
	var c Commands
	slot1 := TimeSlot{Start: TimeOfDay{Hour: 16}, End: TimeOfDay{Hour: 7}}
	reqs, err := c.SetModeStorage(slot1, nil, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// discharge-mode write, soc-reserve write, enable-discharge write,
	// slot1 start/end, slot2(reset) start/end == 7 requests.
	if len(reqs) != 7 {
		t.Fatalf("expected 7 requests, got %d", len(reqs))
	}
	dischargeMode, _, _ := inverterRegisters.LookupWritable("battery_power_mode")
	if reg, val := registerOf(t, reqs, 0); reg != uint16(dischargeMode.Index) || val != uint16(DischargeModeMaxPower) {
		t.Errorf("expected max-power discharge mode, got reg %d val %d", reg, val)
	}
}

func TestSetTimeSlotWritesHHMM(t *testing.T) {
	var c Commands
	slot := TimeSlot{Start: TimeOfDay{Hour: 0, Minute: 30}, End: TimeOfDay{Hour: 4, Minute: 30}}
	reqs, err := c.SetChargeSlot1(slot)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, val := registerOf(t, reqs, 0); val != 30 {
		t.Errorf("expected start HHMM 30, got %d", val)
	}
	if _, val := registerOf(t, reqs, 1); val != 430 {
		t.Errorf("expected end HHMM 430, got %d", val)
	}
}

func TestResetTimeSlotWritesZero(t *testing.T) {
	var c Commands
	reqs, err := c.ResetChargeSlot1()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, val := registerOf(t, reqs, 0); val != 0 {
		t.Errorf("expected start 0, got %d", val)
	}
	if _, val := registerOf(t, reqs, 1); val != 0 {
		t.Errorf("expected end 0, got %d", val)
	}
}

func TestSetSystemDateTime(t *testing.T) {
	var c Commands
	reqs, err := c.SetSystemDateTime(SystemDateTime{Year: 2026, Month: 7, Day: 30, Hour: 12, Minute: 0, Second: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reqs) != 6 {
		t.Fatalf("expected 6 requests, got %d", len(reqs))
	}
	if _, val := registerOf(t, reqs, 0); val != 26 {
		t.Errorf("expected year offset 26, got %d", val)
	}
}

func TestSetSystemDateTimeRejectsYearOutOfRange(t *testing.T) {
	var c Commands
	if _, err := c.SetSystemDateTime(SystemDateTime{Year: 1999}); err == nil {
		t.Errorf("expected error for year before 2000")
	}
	if _, err := c.SetSystemDateTime(SystemDateTime{Year: 2256}); err == nil {
		t.Errorf("expected error for year after 2255")
	}
}

// TestWritableRangeProperty mirrors spec §8's quantified invariant: for
// every writable attribute and every value in its range, the write
// succeeds.
func TestWritableRangeProperty(t *testing.T) {
	for name, def := range inverterRegisters {
		if def.Valid == nil {
			continue
		}
		for _, v := range []int{def.Valid.Min, def.Valid.Max} {
			var c Commands
			if _, err := c.WriteNamedRegister(name, v); err != nil {
				t.Errorf("%s=%d: expected success, got %v", name, v, err)
			}
		}
		if def.Valid.Min > 0 {
			var c Commands
			if _, err := c.WriteNamedRegister(name, def.Valid.Min-1); err == nil {
				t.Errorf("%s=%d: expected out-of-range error", name, def.Valid.Min-1)
			}
		}
		var c Commands
		if _, err := c.WriteNamedRegister(name, def.Valid.Max+1); err == nil {
			t.Errorf("%s=%d: expected out-of-range error", name, def.Valid.Max+1)
		}
	}
}
