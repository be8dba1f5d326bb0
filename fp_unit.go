// fp_unit.go - Multi-cycle floating point add/multiply units with request/busy/done handshake

package main

import "math"

// FPUnit operation kinds.
const (
	FP_UNIT_ADD = 0
	FP_UNIT_MUL = 1
)

// FPUnit models one shared, multi-cycle arithmetic unit behind the standard
// request/busy/done handshake:
//
//   - The client drives the request line and the two operand registers.
//   - The unit acknowledges acceptance by raising busy; operands are latched
//     in that same cycle and the request line may then be dropped.
//   - When the operation completes, busy falls and done rises. Done is a
//     sticky level: it stays asserted until the next request is accepted,
//     signalling that the result register holds a stable, valid encoding.
//
// The unit advances only via Tick; all signal reads between ticks observe a
// consistent cycle boundary. A unit that is busy ignores the request line
// entirely, so a client must never reuse an in-flight slot.
type FPUnit struct {
	kind    int
	latency int

	// Client-driven signals.
	req bool
	opA uint32
	opB uint32

	// Unit-driven signals.
	busy   bool
	done   bool
	result uint32

	latchA    uint32
	latchB    uint32
	countdown int
}

// NewFPAddUnit returns an add unit with the given completion latency in
// cycles (minimum 1).
func NewFPAddUnit(latency int) *FPUnit {
	return newFPUnit(FP_UNIT_ADD, latency)
}

// NewFPMulUnit returns a multiply unit with the given completion latency in
// cycles (minimum 1).
func NewFPMulUnit(latency int) *FPUnit {
	return newFPUnit(FP_UNIT_MUL, latency)
}

func newFPUnit(kind, latency int) *FPUnit {
	if latency < 1 {
		latency = 1
	}
	return &FPUnit{kind: kind, latency: latency}
}

// SetOperands stages the two request operand registers.
func (u *FPUnit) SetOperands(a, b uint32) {
	u.opA = a
	u.opB = b
}

// SetRequest drives the request line.
func (u *FPUnit) SetRequest(level bool) {
	u.req = level
}

// Busy reports whether an operation is in progress. The low-to-high edge
// acknowledges acceptance of a pending request.
func (u *FPUnit) Busy() bool { return u.busy }

// Done reports the sticky completion level.
func (u *FPUnit) Done() bool { return u.done }

// Result returns the result register. Only meaningful while Done is high.
func (u *FPUnit) Result() uint32 { return u.result }

// Tick advances the unit by one clock cycle.
func (u *FPUnit) Tick() {
	if u.busy {
		u.countdown--
		if u.countdown <= 0 {
			u.result = u.compute(u.latchA, u.latchB)
			u.busy = false
			u.done = true
		}
		return
	}
	if u.req {
		u.latchA = u.opA
		u.latchB = u.opB
		u.busy = true
		u.done = false
		u.countdown = u.latency
	}
}

// Reset returns the unit to power-on state: no request accepted, no result.
func (u *FPUnit) Reset() {
	u.req = false
	u.opA = 0
	u.opB = 0
	u.busy = false
	u.done = false
	u.result = 0
	u.latchA = 0
	u.latchB = 0
	u.countdown = 0
}

func (u *FPUnit) compute(aBits, bBits uint32) uint32 {
	a := math.Float32frombits(aBits)
	b := math.Float32frombits(bBits)
	if u.kind == FP_UNIT_MUL {
		return math.Float32bits(a * b)
	}
	return math.Float32bits(a + b)
}
