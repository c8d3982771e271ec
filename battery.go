package givenergy

// Battery is a read-only typed view over one battery's register cache,
// resolving named attributes via batteryRegisters. Battery i lives at
// slave address InverterAddress+1+i (0x33, 0x34, ...), per spec §6 -
// see DESIGN.md for why this, rather than §3's "0x32+i, battery 0
// shares the inverter's cache" prose, is the indexing this package
// implements.
type Battery struct {
	cache *RegisterCache
}

// Get resolves name against the battery register table. ok is false for a
// name not present in the table.
func (b *Battery) Get(name string) (interface{}, bool) {
	return batteryRegisters.Resolve(b.cache, name)
}

func (b *Battery) SerialNumber() string {
	v, _ := b.Get("serial_number")
	s, _ := v.(string)
	return s
}

func (b *Battery) CalibrationStage() BatteryCalibrationStage {
	v, _ := b.Get("calibration_stage")
	s, _ := v.(BatteryCalibrationStage)
	return s
}

func (b *Battery) DesignCapacity() float64 {
	v, _ := b.Get("design_capacity")
	f, _ := v.(float64)
	return f
}

func (b *Battery) USBDevice() USBDevice {
	v, _ := b.Get("usb_device")
	d, _ := v.(USBDevice)
	return d
}

// VCell returns the voltage of cell n (1-based, 1..16).
func (b *Battery) VCell(n int) float64 {
	v, _ := b.Get(vCellName(n))
	f, _ := v.(float64)
	return f
}
