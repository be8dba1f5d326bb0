// fp_convert.go - Pure bit-level conversions between FP32 encodings and signed integers

package main

import (
	"math"
	"math/bits"
)

// =============================================================================
// IEEE-754 Bit Helpers
// =============================================================================

func isNaN32(b uint32) bool  { return (b&FP32_EXP_MASK == FP32_EXP_MASK) && (b&FP32_FRA_MASK != 0) }
func isInf32(b uint32) bool  { return (b &^ FP32_SIGN_BIT) == FP32_POS_INF }
func isZero32(b uint32) bool { return (b &^ FP32_SIGN_BIT) == 0 }

// =============================================================================
// FP32 <-> Integer Conversions
// =============================================================================

// floorToInt32 converts an FP32 encoding to a signed integer with floor
// (round toward minus infinity) semantics, operating directly on the bit
// pattern. An all-ones exponent field saturates to the int32 range bound by
// sign; NaN payloads are not distinguished from infinities here.
func floorToInt32(b uint32) int32 {
	neg := b&FP32_SIGN_BIT != 0
	expField := (b >> 23) & 0xFF
	frac := b & FP32_FRA_MASK

	if expField == 0 {
		// Zero or denormal: magnitude < 1, so floor is 0 or -1.
		if neg && frac != 0 {
			return -1
		}
		return 0
	}
	if expField == 0xFF {
		if neg {
			return math.MinInt32
		}
		return math.MaxInt32
	}

	e := int32(expField) - 127
	if e < 0 {
		// Magnitude in (0, 1).
		if neg {
			return -1
		}
		return 0
	}
	if e > 30 {
		if neg {
			return math.MinInt32
		}
		return math.MaxInt32
	}

	mant := frac | 0x00800000 // implicit leading one, value = mant * 2^(e-23)
	shift := e - 23
	if shift >= 0 {
		mag := int32(mant << uint(shift))
		if neg {
			return -mag
		}
		return mag
	}

	sh := uint(-shift)
	mag := int32(mant >> sh)
	if neg {
		// Flooring correction: any bits shifted out mean the true value
		// lies below -mag.
		if mant&((1<<sh)-1) != 0 {
			return -mag - 1
		}
		return -mag
	}
	return mag
}

// pow2Bits builds the FP32 encoding of 2^n directly from the exponent field.
// Underflow collapses to +0 (no denormal support), overflow to +Inf.
func pow2Bits(n int32) uint32 {
	biased := n + 127
	if biased <= 0 {
		return FP32_POS_ZERO
	}
	if biased >= 255 {
		return FP32_POS_INF
	}
	return uint32(biased) << 23
}

// int32ToBits converts a signed integer to its FP32 encoding. Magnitudes
// wider than 24 significant bits are truncated, never rounded, so the
// result is biased toward zero for such inputs.
func int32ToBits(v int32) uint32 {
	if v == 0 {
		return FP32_POS_ZERO
	}

	var sign uint32
	mag := uint32(v)
	if v < 0 {
		sign = FP32_SIGN_BIT
		mag = uint32(-int64(v)) // -MinInt32 survives the widening
	}

	p := int32(31 - bits.LeadingZeros32(mag))
	biased := p + 127
	if biased <= 0 {
		return FP32_POS_ZERO
	}
	if biased >= 255 {
		return sign | FP32_POS_INF
	}

	// Normalize to exactly 24 significant bits.
	if p > 23 {
		mag >>= uint(p - 23)
	} else {
		mag <<= uint(23 - p)
	}
	return sign | uint32(biased)<<23 | (mag & FP32_FRA_MASK)
}

// negateBits flips the sign bit only. Subtraction is issued to the add unit
// as an addition of a negated operand.
func negateBits(b uint32) uint32 {
	return b ^ FP32_SIGN_BIT
}
