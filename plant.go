package givenergy

// Observers holds the callbacks the plant update engine invokes
// synchronously, on its own goroutine, as it applies each incoming PDU
// (spec §4.3, §5). Any of the three may be nil, in which case that
// notification is simply skipped. A panicking observer is recovered and
// logged; it never aborts the update of the PDU that triggered it, nor any
// other PDU in the same batch (spec §7's ObserverError policy).
type Observers struct {
	RegistersUpdated func(slaveAddress uint8, base Register, values []uint16)
	RegisterWritten  func(slaveAddress uint8, reg Register, value uint16)
	BatteryUpdated   func(index int, values []uint16)
}

// Plant is the aggregate state of one installation: one inverter plus zero
// or more batteries (spec §3). It is not safe for concurrent mutation -
// callers must confine update()/refresh() to a single owner goroutine, per
// spec §5.
type Plant struct {
	caches                  map[uint8]*RegisterCache
	inverterSerialNumber    string
	dataAdapterSerialNumber string
	numberBatteries         int
	knownRegisters          map[Register]struct{}

	Observers Observers
	logger    LeveledLogger
}

// NewPlant returns an empty plant with a single register cache seeded at
// InverterAddress.
func NewPlant(logger LeveledLogger) *Plant {
	if logger == nil {
		logger = defaultLogger("plant")
	}
	return &Plant{
		caches:         map[uint8]*RegisterCache{InverterAddress: NewRegisterCache()},
		knownRegisters: make(map[Register]struct{}),
		logger:         logger,
	}
}

// cache returns the register cache for slaveAddress, creating it if this is
// the first time the plant has seen that address (new battery discovery).
func (p *Plant) cache(slaveAddress uint8) *RegisterCache {
	c, ok := p.caches[slaveAddress]
	if !ok {
		c = NewRegisterCache()
		p.caches[slaveAddress] = c
	}
	return c
}

// InverterSerialNumber is the latest value observed in any response
// envelope.
func (p *Plant) InverterSerialNumber() string { return p.inverterSerialNumber }

// DataAdapterSerialNumber is the latest value observed in any response
// envelope.
func (p *Plant) DataAdapterSerialNumber() string { return p.dataAdapterSerialNumber }

// NumberBatteries reports how many batteries have been discovered so far.
// It is monotonic: update() never decreases it.
func (p *Plant) NumberBatteries() int { return p.numberBatteries }

// Inverter returns a read-only typed view over the inverter's cache.
func (p *Plant) Inverter() *Inverter {
	return &Inverter{cache: p.cache(InverterAddress)}
}

// Battery indexing: battery i lives at slave address InverterAddress+1+i
// (0x33, 0x34, ...), per the literal numbers in spec §8 scenario 2 and the
// slave-address convention in spec §6 ("0x33...0x37 = batteries 0...5").
// This deliberately departs from the "0x32+i, battery 0 shares the
// inverter's cache" prose in spec §3 - see DESIGN.md.

// Battery returns a read-only typed view over battery i's cache (0-indexed;
// battery 0 lives at slave address InverterAddress+1, per spec §6's
// "0x33...0x37 = batteries 0...5" - see DESIGN.md for why this, rather than
// §3's "0x32+i" prose, is the indexing this package implements).
// ok is false if i >= NumberBatteries().
func (p *Plant) Battery(i int) (*Battery, bool) {
	if i < 0 || i >= p.numberBatteries {
		return nil, false
	}
	return &Battery{cache: p.cache(InverterAddress + 1 + uint8(i))}, true
}

// Apply is the public entry point external callers (a session loop, the
// replay tool) use to feed one decoded PDU into the plant.
func (p *Plant) Apply(pdu PDU) { p.update(pdu) }

// update applies one decoded PDU to the plant, per the dispatch table in
// spec §4.3. It never returns an error: malformed/irrelevant PDUs are
// logged and dropped, never propagated, matching the framer's per-frame
// recovery policy.
func (p *Plant) update(pdu PDU) {
	env := pdu.Envelope()
	if env.Error {
		p.logger.Debugf("dropping response with transparency error flag set")
		return
	}
	if env.InverterSerialNumber != "" {
		p.inverterSerialNumber = env.InverterSerialNumber
	}
	if env.DataAdapterSerialNumber != "" {
		p.dataAdapterSerialNumber = env.DataAdapterSerialNumber
	}

	switch v := pdu.(type) {
	case *NullResponse:
		p.logger.Debugf("dropping null response")
	case *ReadHoldingRegistersResponse:
		p.applyReadRegisters(env.SlaveAddress, HoldingRegister, FnReadHoldingRegisters, v.BaseRegister, v.Values)
	case *ReadInputRegistersResponse:
		p.applyReadRegisters(env.SlaveAddress, InputRegister, FnReadInputRegisters, v.BaseRegister, v.Values)
	case *WriteHoldingRegisterResponse:
		p.applyWriteHoldingRegister(env.SlaveAddress, v.Register, v.Value)
	default:
		// Requests, heartbeats and exception responses never touch a
		// register cache (only the serial numbers above): they carry no
		// register data (spec §4.3's "non-
		// TransparentResponse: dropped silently" rule, generalised).
	}
}

// applyReadRegisters handles the remap-then-upsert path shared by holding
// and input register reads.
func (p *Plant) applyReadRegisters(addr uint8, kind RegisterKind, fn uint8, base uint16, values []uint16) {
	mapped, drop := remapAddress(addr, fn, base)
	if drop {
		p.logger.Debugf("dropping read-registers response from slave 0x%02x base %d", addr, base)
		return
	}

	cache := p.cache(mapped)
	baseReg := Register{Kind: kind, Index: int(base)}
	cache.Update(baseReg, values)
	p.knownRegisters[baseReg] = struct{}{}

	if p.Observers.RegistersUpdated != nil {
		p.safeObserve(func() { p.Observers.RegistersUpdated(mapped, baseReg, values) })
	}

	if kind == InputRegister && base == 60 && mapped > InverterAddress {
		batteryIndex := int(mapped) - int(InverterAddress) - 1
		if batteryIndex >= p.numberBatteries && batteryIsValid(cache) {
			p.numberBatteries = batteryIndex + 1
			if p.Observers.BatteryUpdated != nil {
				p.safeObserve(func() { p.Observers.BatteryUpdated(batteryIndex, values) })
			}
		}
	}
}

// applyWriteHoldingRegister handles a write-echo response, dropping the
// known corrupt-write case (register 0).
func (p *Plant) applyWriteHoldingRegister(addr uint8, register, value uint16) {
	if register == 0 {
		p.logger.Debugf("dropping write-holding-register response naming register 0 (likely corrupt)")
		return
	}

	mapped, drop := remapAddress(addr, FnWriteHoldingRegister, register)
	if drop {
		p.logger.Debugf("dropping write-holding-register response from slave 0x%02x", addr)
		return
	}

	reg := HR(int(register))
	p.cache(mapped).Set(reg, value)

	if p.Observers.RegisterWritten != nil {
		p.safeObserve(func() { p.Observers.RegisterWritten(mapped, reg, value) })
	}
}

// safeObserve runs an observer callback, recovering and logging any panic
// so it can never interrupt the update of other PDUs (spec §7's
// ObserverError policy).
func (p *Plant) safeObserve(f func()) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Errorf("observer callback panicked: %v", r)
		}
	}()
	f()
}

// remapAddress implements spec §4.3's address remapping table. fn/base are
// only consulted for the "battery range from non-battery alias" rule,
// which applies to ReadInputRegisters(base=60) regardless of whether addr
// is a recognised alias or an arbitrary unmapped address below 0x32.
func remapAddress(addr uint8, fn uint8, base uint16) (mapped uint8, drop bool) {
	if addr >= InverterAddress {
		return addr, false
	}
	if fn == FnReadInputRegisters && base == 60 {
		return 0, true
	}
	switch addr {
	case aliasAddrA, aliasAddrB, aliasAddrC:
		return InverterAddress, false
	default:
		return 0, true
	}
}

// batteryIsValid is the battery-discovery probe (spec §4.3): the battery's
// serial-number registers IR(110)..IR(114) must each look like packed
// ASCII (>= 0x30), which an all-zero response from a nonexistent address
// fails.
func batteryIsValid(cache *RegisterCache) bool {
	for i := 110; i <= 114; i++ {
		if cache.Get(IR(i)) < 0x30 {
			return false
		}
	}
	return true
}

// RefreshPlan is one (slave_address, base_register) pair a full or partial
// refresh should read (spec §4.3's refresh planning).
type RefreshPlan struct {
	SlaveAddress uint8
	Base         Register
}

// refresh yields the read plan for the current plant state. When
// fullRefresh is true, every known holding-register base at the inverter's
// address is included alongside the input-register bases; otherwise only
// input-register bases are planned. This uses the explicit known-registers
// set rather than a "max register seen" heuristic (spec §9 open question c).
func (p *Plant) refresh(fullRefresh bool) []RefreshPlan {
	var plan []RefreshPlan
	for reg := range p.knownRegisters {
		switch reg.Kind {
		case InputRegister:
			plan = append(plan, RefreshPlan{SlaveAddress: InverterAddress, Base: reg})
		case HoldingRegister:
			if fullRefresh {
				plan = append(plan, RefreshPlan{SlaveAddress: InverterAddress, Base: reg})
			}
		}
	}
	for i := 0; i < p.numberBatteries; i++ {
		plan = append(plan, RefreshPlan{
			SlaveAddress: InverterAddress + 1 + uint8(i),
			Base:         IR(60),
		})
	}
	return plan
}
