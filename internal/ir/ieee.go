package ir

import (
	"math"
	"math/big"

	"symex/internal/types"
)

// IEEE-754 constant folding. Only the two common parameter pairs (F32,
// F64) are folded to concrete values; other exponent/mantissa pairs are
// represented (their bit pattern round-trips through Equal/String/hashing
// correctly) but arithmetic on them is left unsupported — spec's
// testable properties only require folding totality for integer opcodes
// (spec §8), and no IEEE-754-for-arbitrary-formats library exists in the
// retrieved pack to lean on for the general case.

func float64Bits(v float64) *big.Int {
	return new(big.Int).SetUint64(math.Float64bits(v))
}

func float32Bits(v float32) *big.Int {
	return new(big.Int).SetUint64(uint64(math.Float32bits(v)))
}

// floatBitsToFloat64 decodes bits as a float64 if t is F32 or F64; ok is
// false otherwise.
func floatBitsToFloat64(bits *big.Int, t types.FloatType) (float64, bool) {
	switch {
	case t.Equal(types.F64):
		return math.Float64frombits(bits.Uint64()), true
	case t.Equal(types.F32):
		return float64(math.Float32frombits(uint32(bits.Uint64()))), true
	default:
		return 0, false
	}
}

// floatFromFloat64 encodes v as the bit pattern for t (F32 or F64).
func floatFromFloat64(v float64, t types.FloatType) (*big.Int, bool) {
	switch {
	case t.Equal(types.F64):
		return float64Bits(v), true
	case t.Equal(types.F32):
		return float32Bits(float32(v)), true
	default:
		return nil, false
	}
}

// foldBinFloat evaluates an IEEE binary float op; ok is false if t is
// neither F32 nor F64 (unsupported format for arithmetic).
func foldBinFloat(op FloatBinOp, a, b *big.Int, t types.FloatType) (*big.Int, bool) {
	af, ok1 := floatBitsToFloat64(a, t)
	bf, ok2 := floatBitsToFloat64(b, t)
	if !ok1 || !ok2 {
		return nil, false
	}
	var r float64
	switch op {
	case FBinAdd:
		r = af + bf
	case FBinSub:
		r = af - bf
	case FBinMul:
		r = af * bf
	case FBinDiv:
		r = af / bf
	case FBinRem:
		r = math.Mod(af, bf)
	default:
		return nil, false
	}
	return floatFromFloat64(r, t)
}

// fcmpFold evaluates an IEEE float comparison predicate; ok is false if t
// is neither F32 nor F64.
func fcmpFold(p FCmpPredicate, a, b *big.Int, t types.FloatType) (result bool, ok bool) {
	af, ok1 := floatBitsToFloat64(a, t)
	bf, ok2 := floatBitsToFloat64(b, t)
	if !ok1 || !ok2 {
		return false, false
	}
	nan := math.IsNaN(af) || math.IsNaN(bf)
	ordered := !nan
	switch p {
	case FCmpORD:
		return ordered, true
	case FCmpUNO:
		return nan, true
	case FCmpOEQ:
		return ordered && af == bf, true
	case FCmpOGT:
		return ordered && af > bf, true
	case FCmpOGE:
		return ordered && af >= bf, true
	case FCmpOLT:
		return ordered && af < bf, true
	case FCmpOLE:
		return ordered && af <= bf, true
	case FCmpONE:
		return ordered && af != bf, true
	case FCmpUEQ:
		return nan || af == bf, true
	case FCmpUGT:
		return nan || af > bf, true
	case FCmpUGE:
		return nan || af >= bf, true
	case FCmpULT:
		return nan || af < bf, true
	case FCmpULE:
		return nan || af <= bf, true
	case FCmpUNE:
		return nan || af != bf, true
	}
	return false, false
}
