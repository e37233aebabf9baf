package ir

import "math/big"

// Arbitrary-precision integer semantics for constant folding (spec §4.1c).
// No big-integer/bitvector library appears anywhere in the retrieved
// example pack, so this is built directly on math/big — the only route
// available, and an intrinsic numeric-semantics concern rather than an
// integration point for a fetched dependency (see DESIGN.md).

// mask returns 2^width - 1.
func mask(width uint8) *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), uint(width))
	return m.Sub(m, big.NewInt(1))
}

// wrapUnsigned normalizes v into [0, 2^width) by masking.
func wrapUnsigned(v *big.Int, width uint8) *big.Int {
	return new(big.Int).And(v, mask(width))
}

// toSigned reinterprets an unsigned value in [0, 2^width) as a two's
// complement signed integer of that width.
func toSigned(v *big.Int, width uint8) *big.Int {
	u := wrapUnsigned(v, width)
	half := new(big.Int).Lsh(big.NewInt(1), uint(width-1))
	if u.Cmp(half) >= 0 {
		full := new(big.Int).Lsh(big.NewInt(1), uint(width))
		return new(big.Int).Sub(u, full)
	}
	return u
}

// foldBinInt evaluates BinOp b on two width-bit constants using the exact
// arbitrary-precision semantics of the corresponding opcode, per spec
// §4.1c/§8's "constant folding totality" property. Returns (result, ok);
// ok is false for undefined results (division/remainder by zero), which
// callers must not fold away.
func foldBinInt(b BinOp, a, c *big.Int, width uint8) (*big.Int, bool) {
	au, cu := wrapUnsigned(a, width), wrapUnsigned(c, width)
	switch b {
	case BinAdd:
		return wrapUnsigned(new(big.Int).Add(au, cu), width), true
	case BinSub:
		return wrapUnsigned(new(big.Int).Sub(au, cu), width), true
	case BinMul:
		return wrapUnsigned(new(big.Int).Mul(au, cu), width), true
	case BinUDiv:
		if cu.Sign() == 0 {
			return nil, false
		}
		return wrapUnsigned(new(big.Int).Quo(au, cu), width), true
	case BinURem:
		if cu.Sign() == 0 {
			return nil, false
		}
		return wrapUnsigned(new(big.Int).Rem(au, cu), width), true
	case BinSDiv:
		as, cs := toSigned(au, width), toSigned(cu, width)
		if cs.Sign() == 0 {
			return nil, false
		}
		return wrapUnsigned(new(big.Int).Quo(as, cs), width), true
	case BinSRem:
		as, cs := toSigned(au, width), toSigned(cu, width)
		if cs.Sign() == 0 {
			return nil, false
		}
		return wrapUnsigned(new(big.Int).Rem(as, cs), width), true
	case BinShl:
		shift := shiftAmount(cu, width)
		return wrapUnsigned(new(big.Int).Lsh(au, shift), width), true
	case BinLShr:
		shift := shiftAmount(cu, width)
		return wrapUnsigned(new(big.Int).Rsh(au, shift), width), true
	case BinAShr:
		as := toSigned(au, width)
		shift := shiftAmount(cu, width)
		return wrapUnsigned(new(big.Int).Rsh(as, shift), width), true
	case BinAnd:
		return wrapUnsigned(new(big.Int).And(au, cu), width), true
	case BinOr:
		return wrapUnsigned(new(big.Int).Or(au, cu), width), true
	case BinXor:
		return wrapUnsigned(new(big.Int).Xor(au, cu), width), true
	}
	return nil, false
}

// shiftAmount clamps an out-of-range shift count to the bitwidth, matching
// the common "shift count masked to the type width" IR convention; shifts
// by >= width collapse to a full shift (all bits gone / sign-filled).
func shiftAmount(amount *big.Int, width uint8) uint {
	if !amount.IsUint64() {
		return uint(width)
	}
	n := amount.Uint64()
	if n > uint64(width) {
		return uint(width)
	}
	return uint(n)
}

// signExtend reinterprets an unsigned value of fromWidth bits as signed,
// then re-masks it to toWidth bits (toWidth >= fromWidth).
func signExtend(v *big.Int, fromWidth, toWidth uint8) *big.Int {
	return wrapUnsigned(toSigned(v, fromWidth), toWidth)
}

// truncate masks an unsigned value down to the low toWidth bits.
func truncate(v *big.Int, toWidth uint8) *big.Int {
	return wrapUnsigned(v, toWidth)
}

// icmpFold evaluates an integer comparison predicate over two width-bit
// constants using the exact semantics of spec §4.1.
func icmpFold(p ICmpPredicate, a, c *big.Int, width uint8) bool {
	au, cu := wrapUnsigned(a, width), wrapUnsigned(c, width)
	switch p {
	case ICmpEQ:
		return au.Cmp(cu) == 0
	case ICmpNE:
		return au.Cmp(cu) != 0
	case ICmpUGT:
		return au.Cmp(cu) > 0
	case ICmpUGE:
		return au.Cmp(cu) >= 0
	case ICmpULT:
		return au.Cmp(cu) < 0
	case ICmpULE:
		return au.Cmp(cu) <= 0
	case ICmpSGT:
		return toSigned(au, width).Cmp(toSigned(cu, width)) > 0
	case ICmpSGE:
		return toSigned(au, width).Cmp(toSigned(cu, width)) >= 0
	case ICmpSLT:
		return toSigned(au, width).Cmp(toSigned(cu, width)) < 0
	case ICmpSLE:
		return toSigned(au, width).Cmp(toSigned(cu, width)) <= 0
	}
	return false
}
