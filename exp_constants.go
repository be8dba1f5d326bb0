// exp_constants.go - Exponential engine register addresses, ROM table and bit masks

package main

import "math"

// Exponential engine register addresses (memory-mapped at 0xF0C00-0xF0C0F)
const (
	EXP_BASE    = 0xF0C00
	EXP_OPERAND = 0xF0C00 // W: x operand, IEEE-754 single encoding
	EXP_CTRL    = 0xF0C04 // W: bit 0 = start (sampled only while idle)
	EXP_STATUS  = 0xF0C08 // R: bit 0 = busy, bit 1 = result ready
	EXP_RESULT  = 0xF0C0C // R: exp(x) encoding of the last completed run
	EXP_END     = 0xF0C0F
)

// EXP_CTRL bit masks
const (
	EXP_CTRL_START = 0x01 // Begin a new evaluation
)

// EXP_STATUS bit masks
const (
	EXP_STATUS_BUSY  = 0x01 // Evaluation in progress
	EXP_STATUS_READY = 0x02 // Result register holds a completed value (sticky)
)

// Default arithmetic unit latencies in clock cycles. Real multi-cycle
// add/multiply pipelines land in this range; any latency >= 1 produces
// bit-identical results.
const (
	DEFAULT_FPADD_LATENCY = 4
	DEFAULT_FPMUL_LATENCY = 5
)

// Coefficient ROM indices for the exponential microprogram.
const (
	EXP_ROM_LOG2E   = 0 // log2(e), range-reduction scale
	EXP_ROM_LN2     = 1 // ln(2), fraction rescale
	EXP_ROM_C5      = 2 // 1/120, Horner seed
	EXP_ROM_C4      = 3 // 1/24
	EXP_ROM_C3      = 4 // 1/6
	EXP_ROM_C2      = 5 // 1/2
	EXP_ROM_ONE     = 6 // 1.0, final Horner term
	EXP_ROM_ENTRIES = 7
)

// expCoeffROMTable holds the FP32 bit patterns consumed by the sequencer's
// microprogram. Indexed by the EXP_ROM_* constants above.
var expCoeffROMTable = [EXP_ROM_ENTRIES]uint32{
	math.Float32bits(float32(math.Log2E)),  // log2(e)
	math.Float32bits(float32(math.Ln2)),    // ln(2)
	math.Float32bits(float32(1.0 / 120.0)), // 1/5!
	math.Float32bits(float32(1.0 / 24.0)),  // 1/4!
	math.Float32bits(float32(1.0 / 6.0)),   // 1/3!
	math.Float32bits(0.5),                  // 1/2!
	math.Float32bits(1.0),                  // 1
}

// Well-known FP32 encodings used across the engine and its tests.
const (
	FP32_POS_ZERO = uint32(0x00000000)
	FP32_ONE      = uint32(0x3F800000)
	FP32_POS_INF  = uint32(0x7F800000)
	FP32_SIGN_BIT = uint32(0x80000000)
	FP32_EXP_MASK = uint32(0x7F800000)
	FP32_FRA_MASK = uint32(0x007FFFFF)
)
