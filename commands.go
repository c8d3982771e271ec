package givenergy

// Commands is a pure, stateless command-constructor namespace: every
// method resolves named attributes through inverterRegisters and returns
// the ordered list of WriteHoldingRegisterRequest PDUs a caller must send,
// in order, to realise the requested intent. No method performs I/O (spec
// §4.4); callers that need atomicity across a returned list must serialize
// and verify each write themselves.
type Commands struct{}

// WriteNamedRegister is the single generic entry point every other
// constructor is a thin wrapper around (spec §9's "dynamic attribute
// fabrication" re-architecture: a compile-time table plus a single
// generic write path, not runtime metaprogramming).
func (Commands) WriteNamedRegister(name string, value int) (*WriteHoldingRegisterRequest, error) {
	reg, err := inverterRegisters.CheckWrite(name, value)
	if err != nil {
		return nil, err
	}
	return &WriteHoldingRegisterRequest{Register: uint16(reg.Index), Value: uint16(value)}, nil
}

// mustWrite panics on a validation failure. It is only ever called with
// literal, in-range constants from within this file, where a failure would
// mean the register table itself is wrong - a programmer error, not
// something a caller can react to.
func (c Commands) mustWrite(name string, value int) *WriteHoldingRegisterRequest {
	req, err := c.WriteNamedRegister(name, value)
	if err != nil {
		panic(err)
	}
	return req
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// SetEnableCharge enables or disables battery charging outright.
func (c Commands) SetEnableCharge(enabled bool) []*WriteHoldingRegisterRequest {
	return []*WriteHoldingRegisterRequest{c.mustWrite("enable_charge", boolToInt(enabled))}
}

// SetEnableDischarge enables or disables battery discharging outright.
func (c Commands) SetEnableDischarge(enabled bool) []*WriteHoldingRegisterRequest {
	return []*WriteHoldingRegisterRequest{c.mustWrite("enable_discharge", boolToInt(enabled))}
}

// DisableChargeTarget clears the AC SOC limit, targeting 100% charging.
func (c Commands) DisableChargeTarget() []*WriteHoldingRegisterRequest {
	return []*WriteHoldingRegisterRequest{
		c.mustWrite("enable_charge_target", 0),
		c.mustWrite("charge_target_soc", 100),
	}
}

// SetChargeTarget sets the SOC at which charging stops ("winter mode"),
// per spec §4.4's illustrative composition and §8 scenario 6.
func (c Commands) SetChargeTarget(targetSOC int) ([]*WriteHoldingRegisterRequest, error) {
	if targetSOC < 4 || targetSOC > 100 {
		_, err := inverterRegisters.CheckWrite("charge_target_soc", targetSOC)
		return nil, err
	}
	ret := c.SetEnableCharge(true)
	if targetSOC == 100 {
		ret = append(ret, c.DisableChargeTarget()...)
	} else {
		ret = append(ret, c.mustWrite("enable_charge_target", 1))
		ret = append(ret, c.mustWrite("charge_target_soc", targetSOC))
	}
	return ret, nil
}

// SetChargeTargetOnly writes charge_target_soc without touching the enable
// flags, for callers that have already arranged them separately.
func (c Commands) SetChargeTargetOnly(targetSOC int) ([]*WriteHoldingRegisterRequest, error) {
	req, err := c.WriteNamedRegister("charge_target_soc", targetSOC)
	if err != nil {
		return nil, err
	}
	return []*WriteHoldingRegisterRequest{req}, nil
}

// SetBatterySOCReserve sets the minimum level of charge the battery
// maintains.
func (c Commands) SetBatterySOCReserve(val int) ([]*WriteHoldingRegisterRequest, error) {
	req, err := c.WriteNamedRegister("battery_soc_reserve", val)
	if err != nil {
		return nil, err
	}
	return []*WriteHoldingRegisterRequest{req}, nil
}

// SetBatteryChargeLimit sets the battery charge power limit, as a
// percentage of the inverter's rated power.
func (c Commands) SetBatteryChargeLimit(val int) ([]*WriteHoldingRegisterRequest, error) {
	req, err := c.WriteNamedRegister("battery_charge_limit", val)
	if err != nil {
		return nil, err
	}
	return []*WriteHoldingRegisterRequest{req}, nil
}

// SetBatteryDischargeLimit sets the battery discharge power limit, as a
// percentage of the inverter's rated power.
func (c Commands) SetBatteryDischargeLimit(val int) ([]*WriteHoldingRegisterRequest, error) {
	req, err := c.WriteNamedRegister("battery_discharge_limit", val)
	if err != nil {
		return nil, err
	}
	return []*WriteHoldingRegisterRequest{req}, nil
}

// SetBatteryPowerReserve sets the minimum power reserve the battery
// maintains during discharge.
func (c Commands) SetBatteryPowerReserve(val int) ([]*WriteHoldingRegisterRequest, error) {
	req, err := c.WriteNamedRegister("battery_discharge_min_power_reserve", val)
	if err != nil {
		return nil, err
	}
	return []*WriteHoldingRegisterRequest{req}, nil
}

// SetBatteryPauseMode sets which of charging/discharging/both are paused.
func (c Commands) SetBatteryPauseMode(mode BatteryPauseMode) ([]*WriteHoldingRegisterRequest, error) {
	req, err := c.WriteNamedRegister("battery_pause_mode", int(mode))
	if err != nil {
		return nil, err
	}
	return []*WriteHoldingRegisterRequest{req}, nil
}

// SetDischargeModeMaxPower sets the battery to discharge at maximum power,
// exporting any surplus to the grid.
func (c Commands) SetDischargeModeMaxPower() []*WriteHoldingRegisterRequest {
	return []*WriteHoldingRegisterRequest{c.mustWrite("battery_power_mode", int(DischargeModeMaxPower))}
}

// SetDischargeModeMatchDemand sets the battery to discharge only enough to
// match load demand, without exporting to the grid.
func (c Commands) SetDischargeModeMatchDemand() []*WriteHoldingRegisterRequest {
	return []*WriteHoldingRegisterRequest{c.mustWrite("battery_power_mode", int(DischargeModeMatchDemand))}
}

// setTimeSlot writes a <name>_start/<name>_end register pair for slot, or
// zeroes both if slot is nil (spec §4.2's timeslot write convention).
func (c Commands) setTimeSlot(name string, slot *TimeSlot) ([]*WriteHoldingRegisterRequest, error) {
	startName, endName := name+"_start", name+"_end"
	var startHHMM, endHHMM int
	if slot != nil {
		start, end := slot.hhmm()
		startHHMM, endHHMM = int(start), int(end)
	}
	startReq, err := c.WriteNamedRegister(startName, startHHMM)
	if err != nil {
		return nil, err
	}
	endReq, err := c.WriteNamedRegister(endName, endHHMM)
	if err != nil {
		return nil, err
	}
	return []*WriteHoldingRegisterRequest{startReq, endReq}, nil
}

func (c Commands) SetChargeSlot1(slot TimeSlot) ([]*WriteHoldingRegisterRequest, error) {
	return c.setTimeSlot("charge_slot_1", &slot)
}

func (c Commands) ResetChargeSlot1() ([]*WriteHoldingRegisterRequest, error) {
	return c.setTimeSlot("charge_slot_1", nil)
}

func (c Commands) SetChargeSlot2(slot TimeSlot) ([]*WriteHoldingRegisterRequest, error) {
	return c.setTimeSlot("charge_slot_2", &slot)
}

func (c Commands) ResetChargeSlot2() ([]*WriteHoldingRegisterRequest, error) {
	return c.setTimeSlot("charge_slot_2", nil)
}

func (c Commands) SetDischargeSlot1(slot TimeSlot) ([]*WriteHoldingRegisterRequest, error) {
	return c.setTimeSlot("discharge_slot_1", &slot)
}

func (c Commands) ResetDischargeSlot1() ([]*WriteHoldingRegisterRequest, error) {
	return c.setTimeSlot("discharge_slot_1", nil)
}

func (c Commands) SetDischargeSlot2(slot TimeSlot) ([]*WriteHoldingRegisterRequest, error) {
	return c.setTimeSlot("discharge_slot_2", &slot)
}

func (c Commands) ResetDischargeSlot2() ([]*WriteHoldingRegisterRequest, error) {
	return c.setTimeSlot("discharge_slot_2", nil)
}

// SystemDateTime is the wall-clock value set_system_date_time writes to
// the inverter, expressed as separate fields rather than a time.Time so
// the [2000, 2255] year range (spec §8) is checked at the field it
// constrains rather than by truncating a full date.
type SystemDateTime struct {
	Year, Month, Day, Hour, Minute, Second int
}

// SetSystemDateTime sets the inverter's wall clock.
func (c Commands) SetSystemDateTime(dt SystemDateTime) ([]*WriteHoldingRegisterRequest, error) {
	if dt.Year < 2000 || dt.Year > 2255 {
		return nil, &ValidationError{Name: "system_time_year", Value: dt.Year, Err: ErrOutOfRange}
	}
	fields := []struct {
		name  string
		value int
	}{
		{"system_time_year", dt.Year - 2000},
		{"system_time_month", dt.Month},
		{"system_time_day", dt.Day},
		{"system_time_hour", dt.Hour},
		{"system_time_minute", dt.Minute},
		{"system_time_second", dt.Second},
	}
	reqs := make([]*WriteHoldingRegisterRequest, 0, len(fields))
	for _, f := range fields {
		req, err := c.WriteNamedRegister(f.name, f.value)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

// SetInverterReboot triggers an inverter restart.
func (c Commands) SetInverterReboot() []*WriteHoldingRegisterRequest {
	return []*WriteHoldingRegisterRequest{c.mustWrite("inverter_reboot", 100)}
}

// SetCalibrateBatterySOC triggers the battery SOC recalibration cycle.
func (c Commands) SetCalibrateBatterySOC() []*WriteHoldingRegisterRequest {
	return []*WriteHoldingRegisterRequest{c.mustWrite("calibrate_battery_soc", 1)}
}

// SetModeDynamic sets the system to Dynamic/Eco mode: maximise
// self-consumption of solar generation (spec §4.4).
func (c Commands) SetModeDynamic() []*WriteHoldingRegisterRequest {
	var reqs []*WriteHoldingRegisterRequest
	reqs = append(reqs, c.SetDischargeModeMatchDemand()...)
	soc, _ := c.SetBatterySOCReserve(4)
	reqs = append(reqs, soc...)
	reqs = append(reqs, c.SetEnableDischarge(false)...)
	return reqs
}

// SetModeStorage sets the system to storage mode with the given discharge
// slot(s), discharging at full power if forExport is set (spec §4.4). A
// nil discharge2 clears the second slot.
func (c Commands) SetModeStorage(discharge1 TimeSlot, discharge2 *TimeSlot, forExport bool) ([]*WriteHoldingRegisterRequest, error) {
	var reqs []*WriteHoldingRegisterRequest
	if forExport {
		reqs = append(reqs, c.SetDischargeModeMaxPower()...)
	} else {
		reqs = append(reqs, c.SetDischargeModeMatchDemand()...)
	}
	soc, _ := c.SetBatterySOCReserve(100)
	reqs = append(reqs, soc...)
	reqs = append(reqs, c.SetEnableDischarge(true)...)

	slot1, err := c.SetDischargeSlot1(discharge1)
	if err != nil {
		return nil, err
	}
	reqs = append(reqs, slot1...)

	var slot2 []*WriteHoldingRegisterRequest
	if discharge2 != nil {
		slot2, err = c.SetDischargeSlot2(*discharge2)
	} else {
		slot2, err = c.ResetDischargeSlot2()
	}
	if err != nil {
		return nil, err
	}
	return append(reqs, slot2...), nil
}
