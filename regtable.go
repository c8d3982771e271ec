package givenergy

// RegisterDefinition specifies how to derive one named attribute's value
// from one or more raw registers, and (for writable attributes) the range
// of values that may be written back. This is the single source of truth
// for register writability referred to in spec §9 open question (a): no
// other code may special-case whether an attribute is writable.
type RegisterDefinition struct {
	// Registers is the ordered tuple of backing registers: length 1 for
	// scalars, 2+ for composed values (32-bit pairs, timeslots, strings,
	// datetimes).
	Registers []Register

	// preConv turns the raw register words into an intermediate value.
	// nil means "pass the raw words through unconverted" (as a
	// []uint16), so that postConv consumes the raw words directly (e.g.
	// strings, timeslots, the firmware version).
	preConv func([]uint16) interface{}

	// postConv turns the pre-converted intermediate into the final
	// typed value. nil means "return the intermediate unchanged".
	postConv func(interface{}) interface{}

	// Valid is the inclusive [Min, Max] range accepted on write. A nil
	// Valid means the attribute is read-only.
	Valid *ValidRange
}

// ValidRange is an inclusive range of integers accepted by a writable
// named attribute.
type ValidRange struct {
	Min, Max int
}

func (v ValidRange) contains(val int) bool {
	return val >= v.Min && val <= v.Max
}

// RegisterTable is a named lookup of RegisterDefinition, shared by every
// Inverter/Battery view.
type RegisterTable map[string]RegisterDefinition

// Resolve reads the cache and runs name's pre/post conversion pipeline,
// returning the final typed value. ok is false if name is not in the
// table. Spec §4.2's default-zero policy applies: any backing register
// that has never been observed contributes a zero word to the
// computation (rather than failing the read).
func (t RegisterTable) Resolve(cache *RegisterCache, name string) (value interface{}, ok bool) {
	def, found := t[name]
	if !found {
		return nil, false
	}

	regs := make([]uint16, len(def.Registers))
	for i, r := range def.Registers {
		regs[i] = cache.Get(r)
	}

	var intermediate interface{} = regs
	if def.preConv != nil {
		intermediate = def.preConv(regs)
	}

	if def.postConv != nil {
		return def.postConv(intermediate), true
	}
	return intermediate, true
}

// LookupWritable resolves name to its backing holding register and valid
// range. It returns ErrUnknownRegisterName if name isn't in the table, or
// ErrNotWritable if the attribute has no Valid range (either because it's
// an input-register-backed read-only attribute, or a holding register the
// table declares read-only).
func (t RegisterTable) LookupWritable(name string) (reg Register, valid ValidRange, err error) {
	def, found := t[name]
	if !found {
		return Register{}, ValidRange{}, ErrUnknownRegisterName
	}
	if def.Valid == nil {
		return Register{}, ValidRange{}, ErrNotWritable
	}
	return def.Registers[0], *def.Valid, nil
}

// CheckWrite validates that value may be written to the named attribute,
// without constructing any PDU. It is the single gate every command
// constructor funnels through (spec §4.2, §4.4).
func (t RegisterTable) CheckWrite(name string, value int) (Register, error) {
	reg, valid, err := t.LookupWritable(name)
	if err != nil {
		return Register{}, &ValidationError{Name: name, Value: value, Err: err}
	}
	if !valid.contains(value) {
		return Register{}, &ValidationError{Name: name, Value: value, Err: ErrOutOfRange}
	}
	return reg, nil
}
