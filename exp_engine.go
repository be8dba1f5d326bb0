// exp_engine.go - Cycle-synchronous exponential sequencer for shared FP add/multiply units

package main

import "fmt"

// Sequencer states. The original control chain is one named state per
// issue/wait pair; here the chain is collapsed into a step program indexed
// by pc, with one generic issue state and one generic wait state. Operation
// ordering is identical.
const (
	EXP_ST_IDLE = iota
	EXP_ST_ISSUE
	EXP_ST_WAIT
	EXP_ST_DONE
)

// Operand selectors for the step program. Register selectors read the
// engine's working registers; ROM selectors read the coefficient table.
const (
	oprX = iota // input value
	oprT        // t = x * log2(e)
	oprF        // f = t - n
	oprU        // u = f * ln(2)
	oprH        // Horner accumulator
	oprScale    // 2^n encoding
	oprNegN     // -float(n) encoding
	oprRomLog2E
	oprRomLn2
	oprRomC4
	oprRomC3
	oprRomC2
	oprRomOne
)

// Destination selectors.
const (
	dstT = iota
	dstF
	dstU
	dstH
	dstResult
)

// expStep is one arithmetic operation of the exponential microprogram: which
// unit to use, the two operand selectors, and the destination register.
type expStep struct {
	mul bool
	a   int
	b   int
	dst int
}

// expProgram is the fixed operation sequence computing
// exp(x) = 2^n * (1 + u*(1/2 + u*(1/6 + u*(1/24 + u/120)))) where
// n = floor(x*log2(e)), f = x*log2(e) - n, u = f*ln(2). The Horner
// accumulator is seeded with 1/120 when an evaluation is accepted.
var expProgram = [12]expStep{
	{mul: true, a: oprX, b: oprRomLog2E, dst: dstT}, // t = x*log2(e); n, 2^n derived on capture
	{mul: false, a: oprT, b: oprNegN, dst: dstF},    // f = t - n
	{mul: true, a: oprF, b: oprRomLn2, dst: dstU},   // u = f*ln(2)
	{mul: true, a: oprH, b: oprU, dst: dstH},
	{mul: false, a: oprH, b: oprRomC4, dst: dstH},
	{mul: true, a: oprH, b: oprU, dst: dstH},
	{mul: false, a: oprH, b: oprRomC3, dst: dstH},
	{mul: true, a: oprH, b: oprU, dst: dstH},
	{mul: false, a: oprH, b: oprRomC2, dst: dstH},
	{mul: true, a: oprH, b: oprU, dst: dstH},
	{mul: false, a: oprH, b: oprRomOne, dst: dstH},    // h now holds the e-term
	{mul: true, a: oprScale, b: oprH, dst: dstResult}, // result = 2^n * e-term
}

// ExpEngine sequences one exponential evaluation at a time across a shared
// add unit and a shared multiply unit. It is strictly synchronous: all state
// changes happen inside Tick, and at most one request is in flight across
// both units at any time.
type ExpEngine struct {
	addUnit *FPUnit
	mulUnit *FPUnit

	state int
	pc    int

	// Input sampling lines. The start line is examined exactly once per
	// tick and always cleared: a start asserted while not idle is ignored,
	// never queued.
	operandLine uint32
	startLine   bool

	// Working registers. Meaningless between evaluations.
	x     uint32
	t     uint32
	f     uint32
	u     uint32
	h     uint32
	n     int32
	negN  uint32
	scale uint32

	result      uint32
	resultValid bool // one-cycle pulse, unlike the units' sticky done

	cycles uint64

	// Trace, when non-nil, receives one line per handshake event. Used by
	// the CLI -trace flag and the monitor; nil on the hot path.
	Trace func(line string)
}

// NewExpEngine wires the sequencer to its two arithmetic unit slots.
func NewExpEngine(addUnit, mulUnit *FPUnit) *ExpEngine {
	return &ExpEngine{addUnit: addUnit, mulUnit: mulUnit}
}

// SetOperand stages the x encoding for the next accepted start.
func (e *ExpEngine) SetOperand(xBits uint32) {
	e.operandLine = xBits
}

// Start asserts the start line for the next tick. Sampled only while idle.
func (e *ExpEngine) Start() {
	e.startLine = true
}

// Busy reports whether an evaluation is in flight.
func (e *ExpEngine) Busy() bool { return e.state != EXP_ST_IDLE }

// ResultValid reports the one-cycle completion pulse. The result encoding is
// guaranteed stable only in the cycle this returns true.
func (e *ExpEngine) ResultValid() bool { return e.resultValid }

// Result returns the result register.
func (e *ExpEngine) Result() uint32 { return e.result }

// Cycles returns the number of ticks since reset.
func (e *ExpEngine) Cycles() uint64 { return e.cycles }

// Tick advances the whole engine by one clock cycle: both arithmetic units
// first, then the sequencer, which observes the units' post-tick signals.
func (e *ExpEngine) Tick() {
	e.cycles++
	e.resultValid = false

	e.addUnit.Tick()
	e.mulUnit.Tick()

	start := e.startLine
	e.startLine = false

	switch e.state {
	case EXP_ST_IDLE:
		if start {
			e.x = e.operandLine
			e.h = expCoeffROMTable[EXP_ROM_C5]
			e.pc = 0
			e.state = EXP_ST_ISSUE
			e.tracef("accept x=%08X", e.x)
		}

	case EXP_ST_ISSUE:
		unit := e.stepUnit()
		if unit.Busy() {
			// Acceptance edge observed: drop the request so the unit
			// cannot be re-triggered once it completes.
			unit.SetRequest(false)
			e.state = EXP_ST_WAIT
			break
		}
		step := &expProgram[e.pc]
		unit.SetOperands(e.readOperand(step.a), e.readOperand(step.b))
		unit.SetRequest(true)

	case EXP_ST_WAIT:
		unit := e.stepUnit()
		if !unit.Done() {
			break
		}
		e.capture(unit.Result())
		e.pc++
		if e.pc == len(expProgram) {
			e.state = EXP_ST_DONE
		} else {
			e.state = EXP_ST_ISSUE
		}

	case EXP_ST_DONE:
		e.resultValid = true
		e.state = EXP_ST_IDLE
		e.tracef("done result=%08X", e.result)
	}
}

// Compute runs one full evaluation to completion and returns the result
// encoding. Blocking convenience over the cycle-level interface.
func (e *ExpEngine) Compute(xBits uint32) uint32 {
	e.SetOperand(xBits)
	e.Start()
	for {
		e.Tick()
		if e.resultValid {
			return e.result
		}
	}
}

// Reset returns the sequencer to power-on idle state. The arithmetic units
// are reset by their own Reset methods (see component_reset.go ordering).
func (e *ExpEngine) Reset() {
	e.state = EXP_ST_IDLE
	e.pc = 0
	e.operandLine = 0
	e.startLine = false
	e.x = 0
	e.t = 0
	e.f = 0
	e.u = 0
	e.h = 0
	e.n = 0
	e.negN = 0
	e.scale = 0
	e.result = 0
	e.resultValid = false
	e.cycles = 0
}

func (e *ExpEngine) stepUnit() *FPUnit {
	if expProgram[e.pc].mul {
		return e.mulUnit
	}
	return e.addUnit
}

func (e *ExpEngine) readOperand(sel int) uint32 {
	switch sel {
	case oprX:
		return e.x
	case oprT:
		return e.t
	case oprF:
		return e.f
	case oprU:
		return e.u
	case oprH:
		return e.h
	case oprScale:
		return e.scale
	case oprNegN:
		return e.negN
	case oprRomLog2E:
		return expCoeffROMTable[EXP_ROM_LOG2E]
	case oprRomLn2:
		return expCoeffROMTable[EXP_ROM_LN2]
	case oprRomC4:
		return expCoeffROMTable[EXP_ROM_C4]
	case oprRomC3:
		return expCoeffROMTable[EXP_ROM_C3]
	case oprRomC2:
		return expCoeffROMTable[EXP_ROM_C2]
	case oprRomOne:
		return expCoeffROMTable[EXP_ROM_ONE]
	}
	return 0
}

func (e *ExpEngine) capture(resBits uint32) {
	step := &expProgram[e.pc]
	switch step.dst {
	case dstT:
		e.t = resBits
		// n, the scale 2^n and -float(n) depend only on t, so all three
		// are derived eagerly here, before f exists.
		e.n = floorToInt32(e.t)
		e.negN = negateBits(int32ToBits(e.n))
		e.scale = pow2Bits(e.n)
		e.tracef("t=%08X n=%d scale=%08X", e.t, e.n, e.scale)
	case dstF:
		e.f = resBits
	case dstU:
		e.u = resBits
	case dstH:
		e.h = resBits
	case dstResult:
		e.result = resBits
	}
}

func (e *ExpEngine) tracef(format string, args ...any) {
	if e.Trace != nil {
		e.Trace(fmt.Sprintf("[%d] %s", e.cycles, fmt.Sprintf(format, args...)))
	}
}
