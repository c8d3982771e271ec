package givenergy

import "fmt"

// TimeOfDay is a wall-clock hour:minute pair, as decoded from a register's
// HHMM decimal encoding.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) hhmm() int { return t.Hour*100 + t.Minute }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// before reports whether t sorts strictly earlier than other within the
// same day, ignoring midnight wraparound.
func (t TimeOfDay) before(other TimeOfDay) bool {
	return t.hhmm() < other.hhmm()
}

func (t TimeOfDay) equal(other TimeOfDay) bool {
	return t.hhmm() == other.hhmm()
}

// TimeSlot is an ordered pair of times of day, decoded from two registers
// each holding an HHMM-encoded value. A slot with Start == End is closed
// (nothing is ever "in" it). A slot with End < Start spans midnight.
type TimeSlot struct {
	Start TimeOfDay
	End   TimeOfDay
}

// timeSlotFromHHMM decodes two HHMM-encoded register values into a
// TimeSlot, as the `timeslot` pre-conversion in spec §4.2 describes.
func timeSlotFromHHMM(start, end uint16) TimeSlot {
	return TimeSlot{
		Start: TimeOfDay{Hour: int(start) / 100, Minute: int(start) % 100},
		End:   TimeOfDay{Hour: int(end) / 100, Minute: int(end) % 100},
	}
}

// hhmm encodes Start/End back into the HHMM register representation used
// on the wire.
func (s TimeSlot) hhmm() (start, end uint16) {
	return uint16(s.Start.hhmm()), uint16(s.End.hhmm())
}

// Contains reports whether t falls within the slot, per spec §8's boundary
// rules: a closed slot (Start == End) never contains anything; a slot
// spanning midnight (End < Start) contains t unless End <= t < Start.
func (s TimeSlot) Contains(t TimeOfDay) bool {
	if s.Start.equal(s.End) {
		return false
	}
	if s.Start.before(s.End) {
		return !t.before(s.Start) && t.before(s.End)
	}
	return !(!t.before(s.End) && t.before(s.Start))
}

func (s TimeSlot) String() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}
