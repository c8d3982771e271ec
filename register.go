package givenergy

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// RegisterKind distinguishes read/write holding registers from read-only
// input registers.
type RegisterKind uint8

const (
	HoldingRegister RegisterKind = iota
	InputRegister
)

func (k RegisterKind) String() string {
	switch k {
	case HoldingRegister:
		return "HR"
	case InputRegister:
		return "IR"
	default:
		return "??"
	}
}

// Register identifies a single 16-bit register on a device: its kind
// (holding or input) and its index. Register values are comparable and
// usable as map keys.
type Register struct {
	Kind  RegisterKind
	Index int
}

// HR constructs a holding register reference.
func HR(index int) Register { return Register{Kind: HoldingRegister, Index: index} }

// IR constructs an input register reference.
func IR(index int) Register { return Register{Kind: InputRegister, Index: index} }

func (r Register) String() string {
	return fmt.Sprintf("%s_%d", r.Kind, r.Index)
}

// parseRegister parses the "HR_<idx>"/"IR_<idx>" textual form back into a
// Register. ok is false for anything else, including unknown kinds.
func parseRegister(s string) (r Register, ok bool) {
	parts := strings.SplitN(s, "_", 2)
	if len(parts) != 2 {
		return Register{}, false
	}
	idx, err := strconv.Atoi(parts[1])
	if err != nil || idx < 0 {
		return Register{}, false
	}
	switch parts[0] {
	case "HR":
		return HR(idx), true
	case "IR":
		return IR(idx), true
	default:
		return Register{}, false
	}
}

// RegisterCache is the authoritative local mirror of one device's (one
// slave address's) register state: a mapping from Register to its most
// recently observed 16-bit value. Reads of a register that has never been
// observed yield 0 - callers that need to distinguish "never observed"
// from "observed as zero" must check Has explicitly.
//
// A RegisterCache is mutated only by the plant update engine (or by
// explicit construction-time seeding); it is not safe for concurrent
// mutation, per spec §5.
type RegisterCache struct {
	values map[Register]uint16
}

// NewRegisterCache returns an empty cache.
func NewRegisterCache() *RegisterCache {
	return &RegisterCache{values: make(map[Register]uint16)}
}

// Get returns the register's cached value, defaulting to 0 for an
// unobserved register.
func (c *RegisterCache) Get(r Register) uint16 {
	return c.values[r]
}

// Has reports whether r has ever been written into the cache.
func (c *RegisterCache) Has(r Register) bool {
	_, ok := c.values[r]
	return ok
}

// Set stores value for r.
func (c *RegisterCache) Set(r Register, value uint16) {
	c.values[r] = value
}

// Update bulk-applies a base register plus a contiguous run of values,
// i.e. registers base, base+1, ..., base+len(values)-1.
func (c *RegisterCache) Update(base Register, values []uint16) {
	for i, v := range values {
		c.values[Register{Kind: base.Kind, Index: base.Index + i}] = v
	}
}

// Len reports how many distinct registers have been observed.
func (c *RegisterCache) Len() int { return len(c.values) }

// Equal reports whether two caches hold identical register sets and values.
func (c *RegisterCache) Equal(other *RegisterCache) bool {
	if other == nil || len(c.values) != len(other.values) {
		return false
	}
	for r, v := range c.values {
		if ov, ok := other.values[r]; !ok || ov != v {
			return false
		}
	}
	return true
}

// MarshalJSON renders the cache as an object keyed by the register's
// "HR_<idx>"/"IR_<idx>" textual form, per spec §6.
func (c *RegisterCache) MarshalJSON() ([]byte, error) {
	out := make(map[string]uint16, len(c.values))
	for r, v := range c.values {
		out[r.String()] = v
	}
	return json.Marshal(out)
}

// UnmarshalJSON parses the "HR_<idx>"/"IR_<idx>"-keyed object form,
// silently discarding any key that doesn't parse as a Register - this
// mirrors the Python original's from_json, which drops unrecognised keys
// rather than failing the whole decode.
func (c *RegisterCache) UnmarshalJSON(data []byte) error {
	var raw map[string]uint16
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.values = make(map[Register]uint16, len(raw))
	for k, v := range raw {
		if r, ok := parseRegister(k); ok {
			c.values[r] = v
		}
	}
	return nil
}
