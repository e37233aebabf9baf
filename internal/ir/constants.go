package ir

import (
	"math/big"

	"symex/internal/errors"
	"symex/internal/types"
)

// NewConstInt builds an integer constant of type t, wrapping value into
// t's bit width the way the rest of the IR treats out-of-range literals.
func NewConstInt(t types.IntType, value *big.Int) *Operation {
	return &Operation{
		Op:       constantOpcode(ConstInt),
		Type:     t,
		IntValue: wrapUnsigned(value, t.Width),
	}
}

// NewConstIntU64 is a convenience wrapper for the common small-literal case.
func NewConstIntU64(t types.IntType, value uint64) *Operation {
	return NewConstInt(t, new(big.Int).SetUint64(value))
}

// NewConstFloatBits builds a float constant from a raw IEEE bit pattern,
// compared and hashed bitwise per spec §3 ("floats compare by bitwise
// equality").
func NewConstFloatBits(t types.FloatType, bits *big.Int) *Operation {
	return &Operation{
		Op:        constantOpcode(ConstFloat),
		Type:      t,
		FloatBits: new(big.Int).Set(bits),
	}
}

// NewConstFloat builds a float constant from a float64 value; only F32 and
// F64 are supported (see ieee.go).
func NewConstFloat(t types.FloatType, value float64) *Operation {
	bits, ok := floatFromFloat64(value, t)
	errors.RequireStructural(ok, errors.ErrTypeMismatch, "unsupported float format for value construction")
	return NewConstFloatBits(t, bits)
}

// NewNamedConstant builds a named symbolic constant: a free variable
// identified by name, whose value is discovered by the solver.
func NewNamedConstant(t types.Type, name string) *Operation {
	return &Operation{
		Op:   constantOpcode(ConstNamed),
		Type: t,
		Name: name,
	}
}

// NewNumberedConstant builds a numbered symbolic constant, used when the
// interpreter needs a fresh unnamed free variable (e.g. one per branch
// fork).
func NewNumberedConstant(t types.Type, id uint64) *Operation {
	return &Operation{
		Op:       constantOpcode(ConstNumbered),
		Type:     t,
		Numbered: id,
	}
}

// NewConstArray builds a concrete byte-array constant.
func NewConstArray(indexBits uint8, data []byte) *Operation {
	b := make([]byte, len(data))
	copy(b, data)
	return &Operation{
		Op:    constantOpcode(ConstArray),
		Type:  types.ArrayType{IndexBits: indexBits},
		Bytes: b,
	}
}

// NewUndef builds the Undef sentinel of type t.
func NewUndef(t types.Type) *Operation {
	return &Operation{Op: opUndef, Type: t}
}

// asConstInt returns (value, true) if o is an integer constant.
func asConstInt(o *Operation) (*big.Int, bool) {
	if o.Op.Category() == CategoryConstant && o.Op.Aux() == uint8(ConstInt) {
		return o.IntValue, true
	}
	return nil, false
}

// asConstFloat returns (bits, true) if o is a float constant.
func asConstFloat(o *Operation) (*big.Int, bool) {
	if o.Op.Category() == CategoryConstant && o.Op.Aux() == uint8(ConstFloat) {
		return o.FloatBits, true
	}
	return nil, false
}

// isZeroInt reports whether o is the integer constant 0.
func isZeroInt(o *Operation) bool {
	v, ok := asConstInt(o)
	return ok && v.Sign() == 0
}

// isOneInt reports whether o is the integer constant 1.
func isOneInt(o *Operation) bool {
	v, ok := asConstInt(o)
	return ok && v.Cmp(big.NewInt(1)) == 0
}

// boolConstValue returns (bit, true) if o is an Int(1) constant 0 or 1.
func boolConstValue(o *Operation) (bool, bool) {
	v, ok := asConstInt(o)
	if !ok {
		return false, false
	}
	return v.Sign() != 0, true
}
