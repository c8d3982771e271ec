package givenergy

import "time"

// Inverter is a read-only typed view over the inverter's register cache,
// resolving named attributes on demand via inverterRegisters (spec §4.3's
// "plant exposes read-only typed views ... that resolve named attributes on
// demand"). It holds a reference to the live cache and must not be
// retained across an update cycle if the embedding application wants
// snapshot semantics - see spec §5.
type Inverter struct {
	cache *RegisterCache
}

// Get resolves name against the inverter's register table, exactly like
// Commands.WriteNamedRegister resolves names on the write side. ok is
// false for a name not present in the table.
func (i *Inverter) Get(name string) (interface{}, bool) {
	return inverterRegisters.Resolve(i.cache, name)
}

func (i *Inverter) SerialNumber() string {
	v, _ := i.Get("serial_number")
	s, _ := v.(string)
	return s
}

func (i *Inverter) DataAdapterSerialNumber() string {
	v, _ := i.Get("data_adapter_serial_number")
	s, _ := v.(string)
	return s
}

func (i *Inverter) FirmwareVersion() string {
	v, _ := i.Get("firmware_version")
	s, _ := v.(string)
	return s
}

func (i *Inverter) EnableAmmeter() bool {
	v, _ := i.Get("enable_ammeter")
	b, _ := v.(bool)
	return b
}

func (i *Inverter) Status() InverterStatus {
	v, _ := i.Get("inverter_status")
	s, _ := v.(InverterStatus)
	return s
}

func (i *Inverter) MeterType() MeterType {
	v, _ := i.Get("meter_type")
	m, _ := v.(MeterType)
	return m
}

func (i *Inverter) ChargeTargetSOC() uint16 {
	v, _ := i.Get("charge_target_soc")
	n, _ := v.(uint16)
	return n
}

func (i *Inverter) BatterySOCReserve() uint16 {
	v, _ := i.Get("battery_soc_reserve")
	n, _ := v.(uint16)
	return n
}

func (i *Inverter) BatteryPowerMode() DischargeMode {
	v, _ := i.Get("battery_power_mode")
	m, _ := v.(DischargeMode)
	return m
}

func (i *Inverter) ChargeSlot1() TimeSlot {
	v, _ := i.Get("charge_slot_1")
	s, _ := v.(TimeSlot)
	return s
}

func (i *Inverter) DischargeSlot1() TimeSlot {
	v, _ := i.Get("discharge_slot_1")
	s, _ := v.(TimeSlot)
	return s
}

func (i *Inverter) SystemTime() time.Time {
	v, _ := i.Get("system_time")
	t, _ := v.(time.Time)
	return t
}
