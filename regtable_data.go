package givenergy

// inverterRegisters and batteryRegisters are the named-attribute tables for
// the Inverter and Battery typed views (spec §4.2). Exact register-number
// assignments are, per spec §1, an external data table supplied at build
// time and not part of this design; the indices below are representative
// assignments sufficient to exercise every conversion and writable-range
// shape the spec describes.

func rangeOf(lo, hi int) *ValidRange { return &ValidRange{Min: lo, Max: hi} }

var inverterRegisters = RegisterTable{
	// identity / telemetry
	"serial_number": {
		Registers: []Register{HR(8), HR(9), HR(10), HR(11), HR(12)},
		postConv:  func(v interface{}) interface{} { return convString(v.([]uint16)) },
	},
	"data_adapter_serial_number": {
		Registers: []Register{HR(250), HR(251), HR(252), HR(253), HR(254)},
		postConv:  func(v interface{}) interface{} { return convString(v.([]uint16)) },
	},
	"enable_ammeter": {
		Registers: []Register{HR(7)},
		postConv:  func(v interface{}) interface{} { return convBool(v.([]uint16)) },
	},
	"dsp_firmware_version": {
		Registers: []Register{HR(14)},
		postConv:  func(v interface{}) interface{} { return convUint16(v.([]uint16)) },
	},
	"arm_firmware_version": {
		Registers: []Register{HR(15)},
		postConv:  func(v interface{}) interface{} { return convUint16(v.([]uint16)) },
	},
	"firmware_version": {
		Registers: []Register{HR(14), HR(15)},
		postConv: func(v interface{}) interface{} {
			regs := v.([]uint16)
			return postFirmwareVersion(int(regs[0]), int(regs[1]))
		},
	},
	"inverter_status": {
		Registers: []Register{IR(0)},
		postConv:  func(v interface{}) interface{} { return newInverterStatus(v.([]uint16)[0]) },
	},
	"meter_type": {
		Registers: []Register{IR(9)},
		postConv:  func(v interface{}) interface{} { return newMeterType(v.([]uint16)[0]) },
	},
	"v_pv1": {
		Registers: []Register{IR(2)},
		postConv:  func(v interface{}) interface{} { return postDeci(int(v.([]uint16)[0])) },
	},
	"p_pv1": {
		Registers: []Register{IR(5)},
		postConv:  func(v interface{}) interface{} { return convUint16(v.([]uint16)) },
	},

	// charge/discharge control
	"enable_charge": {
		Registers: []Register{HR(16)},
		postConv:  func(v interface{}) interface{} { return convBool(v.([]uint16)) },
		Valid:     rangeOf(0, 1),
	},
	"enable_charge_target": {
		Registers: []Register{HR(17)},
		postConv:  func(v interface{}) interface{} { return convBool(v.([]uint16)) },
		Valid:     rangeOf(0, 1),
	},
	"charge_target_soc": {
		Registers: []Register{HR(18)},
		postConv:  func(v interface{}) interface{} { return convUint16(v.([]uint16)) },
		Valid:     rangeOf(4, 100),
	},
	"enable_discharge": {
		Registers: []Register{HR(19)},
		postConv:  func(v interface{}) interface{} { return convBool(v.([]uint16)) },
		Valid:     rangeOf(0, 1),
	},
	"battery_power_mode": {
		Registers: []Register{HR(20)},
		postConv:  func(v interface{}) interface{} { return newDischargeMode(v.([]uint16)[0]) },
		Valid:     rangeOf(0, 1),
	},
	"battery_soc_reserve": {
		Registers: []Register{HR(21)},
		postConv:  func(v interface{}) interface{} { return convUint16(v.([]uint16)) },
		Valid:     rangeOf(4, 100),
	},
	"battery_charge_limit": {
		Registers: []Register{HR(22)},
		postConv:  func(v interface{}) interface{} { return convUint16(v.([]uint16)) },
		Valid:     rangeOf(0, 50),
	},
	"battery_discharge_limit": {
		Registers: []Register{HR(23)},
		postConv:  func(v interface{}) interface{} { return convUint16(v.([]uint16)) },
		Valid:     rangeOf(0, 50),
	},
	"battery_discharge_min_power_reserve": {
		Registers: []Register{HR(24)},
		postConv:  func(v interface{}) interface{} { return convUint16(v.([]uint16)) },
		Valid:     rangeOf(4, 100),
	},
	"battery_pause_mode": {
		Registers: []Register{HR(25)},
		postConv:  func(v interface{}) interface{} { return newBatteryPauseMode(v.([]uint16)[0]) },
		Valid:     rangeOf(0, 3),
	},

	// charge/discharge time slots (start/end pairs, spec §4.2's timeslot convention)
	"charge_slot_1_start": {Registers: []Register{HR(26)}, postConv: identity, Valid: rangeOf(0, 2359)},
	"charge_slot_1_end":   {Registers: []Register{HR(27)}, postConv: identity, Valid: rangeOf(0, 2359)},
	"charge_slot_1": {
		Registers: []Register{HR(26), HR(27)},
		postConv:  func(v interface{}) interface{} { return convTimeslot(v.([]uint16)) },
	},
	"charge_slot_2_start": {Registers: []Register{HR(28)}, postConv: identity, Valid: rangeOf(0, 2359)},
	"charge_slot_2_end":   {Registers: []Register{HR(29)}, postConv: identity, Valid: rangeOf(0, 2359)},
	"charge_slot_2": {
		Registers: []Register{HR(28), HR(29)},
		postConv:  func(v interface{}) interface{} { return convTimeslot(v.([]uint16)) },
	},
	"discharge_slot_1_start": {Registers: []Register{HR(30)}, postConv: identity, Valid: rangeOf(0, 2359)},
	"discharge_slot_1_end":   {Registers: []Register{HR(31)}, postConv: identity, Valid: rangeOf(0, 2359)},
	"discharge_slot_1": {
		Registers: []Register{HR(30), HR(31)},
		postConv:  func(v interface{}) interface{} { return convTimeslot(v.([]uint16)) },
	},
	"discharge_slot_2_start": {Registers: []Register{HR(32)}, postConv: identity, Valid: rangeOf(0, 2359)},
	"discharge_slot_2_end":   {Registers: []Register{HR(33)}, postConv: identity, Valid: rangeOf(0, 2359)},
	"discharge_slot_2": {
		Registers: []Register{HR(32), HR(33)},
		postConv:  func(v interface{}) interface{} { return convTimeslot(v.([]uint16)) },
	},

	// system date/time (spec §6: "holding registers ... system date/time
	// at offsets 35-40 with year offset 2000")
	"system_time_year":   {Registers: []Register{HR(35)}, postConv: identity, Valid: rangeOf(0, 255)},
	"system_time_month":  {Registers: []Register{HR(36)}, postConv: identity, Valid: rangeOf(1, 12)},
	"system_time_day":    {Registers: []Register{HR(37)}, postConv: identity, Valid: rangeOf(1, 31)},
	"system_time_hour":   {Registers: []Register{HR(38)}, postConv: identity, Valid: rangeOf(0, 23)},
	"system_time_minute": {Registers: []Register{HR(39)}, postConv: identity, Valid: rangeOf(0, 59)},
	"system_time_second": {Registers: []Register{HR(40)}, postConv: identity, Valid: rangeOf(0, 59)},
	"system_time": {
		Registers: []Register{HR(35), HR(36), HR(37), HR(38), HR(39), HR(40)},
		preConv:   func(regs []uint16) interface{} { return convDatetime(regs) },
	},

	// maintenance triggers
	"inverter_reboot":      {Registers: []Register{HR(67)}, postConv: identity, Valid: rangeOf(0, 100)},
	"calibrate_battery_soc": {Registers: []Register{HR(68)}, postConv: identity, Valid: rangeOf(0, 1)},
}

// batteryRegisters describes the attributes resolved against a battery's
// cache. Every battery, including battery #0 (slave address 0x33), has a
// cache of its own, separate from the inverter's.
var batteryRegisters = RegisterTable{
	"serial_number": {
		Registers: []Register{IR(110), IR(111), IR(112), IR(113), IR(114)},
		postConv:  func(v interface{}) interface{} { return convString(v.([]uint16)) },
	},
	"calibration_stage": {
		Registers: []Register{IR(120)},
		postConv:  func(v interface{}) interface{} { return newBatteryCalibrationStage(v.([]uint16)[0]) },
	},
	"design_capacity": {
		Registers: []Register{IR(121)},
		postConv:  func(v interface{}) interface{} { return postDeci(int(v.([]uint16)[0])) },
	},
	"usb_device": {
		Registers: []Register{IR(122)},
		postConv:  func(v interface{}) interface{} { return newUSBDevice(v.([]uint16)[0]) },
	},
}

// The per-cell voltage attributes of the battery views are added to
// batteryRegisters by init below (vCellRegister gives the backing register,
// vCellName the attribute name), backed by consecutive input registers starting at
// IR(60): v_cell_01 == IR(60), v_cell_02 == IR(61), and so on (spec's
// illustrative v_cell_07 example and scenario 2's v_cell_01 == 3.221 from
// IR(60) both land on this base).
const vCellBase = 60
const vCellCount = 16

func vCellRegister(n int) Register { return IR(vCellBase + n - 1) }

func vCellName(n int) string {
	const digits = "0123456789"
	tens, ones := n/10, n%10
	return "v_cell_" + string(digits[tens]) + string(digits[ones])
}

func init() {
	for n := 1; n <= vCellCount; n++ {
		reg := vCellRegister(n)
		batteryRegisters[vCellName(n)] = RegisterDefinition{
			Registers: []Register{reg},
			postConv:  func(v interface{}) interface{} { return postMilli(int(v.([]uint16)[0])) },
		}
	}
}

// identity is a postConv that converts the sole backing register to a
// plain int, used by HHMM-valued and small scalar attributes above.
func identity(v interface{}) interface{} {
	regs := v.([]uint16)
	return int(regs[0])
}
