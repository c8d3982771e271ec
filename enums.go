package givenergy

// The enum types below mirror the Python original's DefaultUnknownIntEnum
// pattern (spec §9, "Enum unknown fallback"): each is a plain uint16-backed
// type with named constants and a designated Unknown sentinel, so that an
// unrecognised raw register value decodes to something inspectable rather
// than failing the read.

// MeterType identifies the kind of CT meter attached to a given channel.
type MeterType uint16

const (
	MeterTypeEM418         MeterType = 0
	MeterTypeEM115         MeterType = 1
	MeterTypeUnknownMeter  MeterType = 0xffff
)

func (m MeterType) String() string {
	switch m {
	case MeterTypeEM418:
		return "EM418"
	case MeterTypeEM115:
		return "EM115"
	default:
		return "UNKNOWN"
	}
}

func newMeterType(v uint16) MeterType {
	switch v {
	case 0, 1:
		return MeterType(v)
	default:
		return MeterTypeUnknownMeter
	}
}

// BatteryCalibrationStage tracks where a battery is in its SOC
// recalibration cycle.
type BatteryCalibrationStage uint16

const (
	CalibrationOff                  BatteryCalibrationStage = 0
	CalibrationDischarge            BatteryCalibrationStage = 1
	CalibrationRest                 BatteryCalibrationStage = 2
	CalibrationCharge               BatteryCalibrationStage = 3
	CalibrationFinish               BatteryCalibrationStage = 4
	CalibrationUnknownStage BatteryCalibrationStage = 0xffff
)

func (s BatteryCalibrationStage) String() string {
	switch s {
	case CalibrationOff:
		return "OFF"
	case CalibrationDischarge:
		return "DISCHARGE"
	case CalibrationRest:
		return "REST"
	case CalibrationCharge:
		return "CHARGE"
	case CalibrationFinish:
		return "FINISH"
	default:
		return "UNKNOWN"
	}
}

func newBatteryCalibrationStage(v uint16) BatteryCalibrationStage {
	if v <= 4 {
		return BatteryCalibrationStage(v)
	}
	return CalibrationUnknownStage
}

// BatteryPauseMode controls whether a battery is paused for charge,
// discharge, both or neither.
type BatteryPauseMode uint16

const (
	BatteryPauseNone              BatteryPauseMode = 0
	BatteryPauseDischarge         BatteryPauseMode = 1
	BatteryPauseCharge            BatteryPauseMode = 2
	BatteryPauseBoth              BatteryPauseMode = 3
	BatteryPauseUnknownMode BatteryPauseMode = 0xffff
)

func (m BatteryPauseMode) String() string {
	switch m {
	case BatteryPauseNone:
		return "NONE"
	case BatteryPauseDischarge:
		return "DISCHARGE"
	case BatteryPauseCharge:
		return "CHARGE"
	case BatteryPauseBoth:
		return "BOTH"
	default:
		return "UNKNOWN"
	}
}

func newBatteryPauseMode(v uint16) BatteryPauseMode {
	if v <= 3 {
		return BatteryPauseMode(v)
	}
	return BatteryPauseUnknownMode
}

// DischargeMode selects the battery's discharging strategy: either
// unconditional max power (exporting any surplus to the grid) or "match
// demand" which avoids exporting.
type DischargeMode uint16

const (
	DischargeModeMaxPower     DischargeMode = 0
	DischargeModeMatchDemand  DischargeMode = 1
	DischargeModeUnknownMode  DischargeMode = 0xffff
)

func (m DischargeMode) String() string {
	switch m {
	case DischargeModeMaxPower:
		return "MAX_POWER"
	case DischargeModeMatchDemand:
		return "MATCH_DEMAND"
	default:
		return "UNKNOWN"
	}
}

func newDischargeMode(v uint16) DischargeMode {
	if v <= 1 {
		return DischargeMode(v)
	}
	return DischargeModeUnknownMode
}

// InverterStatus reports the inverter's current operating state.
type InverterStatus uint16

const (
	InverterStatusWaiting          InverterStatus = 0
	InverterStatusNormal           InverterStatus = 1
	InverterStatusWarning          InverterStatus = 2
	InverterStatusFault            InverterStatus = 3
	InverterStatusFlash            InverterStatus = 4
	InverterStatusUnknownStatus InverterStatus = 0xffff
)

func (s InverterStatus) String() string {
	switch s {
	case InverterStatusWaiting:
		return "WAITING"
	case InverterStatusNormal:
		return "NORMAL"
	case InverterStatusWarning:
		return "WARNING"
	case InverterStatusFault:
		return "FAULT"
	case InverterStatusFlash:
		return "FLASH"
	default:
		return "UNKNOWN"
	}
}

func newInverterStatus(v uint16) InverterStatus {
	if v <= 4 {
		return InverterStatus(v)
	}
	return InverterStatusUnknownStatus
}

// USBDevice identifies what, if anything, is plugged into the inverter's
// USB port.
type USBDevice uint16

const (
	USBDeviceNone          USBDevice = 0
	USBDeviceDisk          USBDevice = 1
	USBDeviceWifi          USBDevice = 2
	USBDeviceUnknownDevice USBDevice = 0xffff
)

func (d USBDevice) String() string {
	switch d {
	case USBDeviceNone:
		return "NONE"
	case USBDeviceDisk:
		return "DISK"
	case USBDeviceWifi:
		return "WIFI"
	default:
		return "UNKNOWN"
	}
}

func newUSBDevice(v uint16) USBDevice {
	if v <= 2 {
		return USBDevice(v)
	}
	return USBDeviceUnknownDevice
}
