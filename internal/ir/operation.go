package ir

import (
	"math/big"

	"symex/internal/errors"
	"symex/internal/types"
)

// Operation is an immutable, shared expression node (spec §3). Ownership
// is handled by the Go garbage collector rather than a manual atomic
// refcount — see DESIGN.md for why this departs from the literal "refcount
// field" language of spec §3 (spec §9 explicitly asks for this).
//
// Exactly one of the payload fields below is populated, chosen by Op's
// category:
//
//	Operands    populated for Binary/FloatBinary/Unary/Select/Memory opcodes
//	IntValue    populated for ConstInt
//	FloatBits   populated for ConstFloat (raw IEEE bit pattern)
//	Name        populated for ConstNamed
//	Numbered    populated for ConstNumbered
//	Bytes       populated for ConstArray
//
// Constant opcodes never populate Operands (spec §3 invariant).
type Operation struct {
	Op       Opcode
	Type     types.Type
	Operands []*Operation

	IntValue  *big.Int
	FloatBits *big.Int // raw sign|exponent|mantissa bit pattern, MSB first
	Name      string
	Numbered  uint64
	Bytes     []byte
}

// NumOperands returns the opcode's declared arity, which must match
// len(Operands) by spec §3's invariant.
func (o *Operation) NumOperands() int { return o.Op.NumOperands() }

// IsConstant reports whether this node is any flavour of constant.
func (o *Operation) IsConstant() bool { return o.Op.IsConstant() }

// IsUndef reports whether this node is the Undef sentinel of its type.
func (o *Operation) IsUndef() bool { return o.Op.Category() == CategoryUndef }

// checkInvariants enforces spec §3's structural invariants that every
// Operation must satisfy regardless of how it was built: the opcode's
// arity matches len(Operands), and constants carry no operands. No
// constructor in this package calls it.
func checkInvariants(o *Operation) {
	errors.RequireStructural(o.Op.NumOperands() == len(o.Operands), errors.ErrArityMismatch,
		"operand count does not match opcode arity")
	if o.IsConstant() {
		errors.RequireStructural(len(o.Operands) == 0, errors.ErrArityMismatch,
			"constant opcodes must not carry operands")
	}
}

// Equal implements spec §3's structural equality: same opcode, same type,
// operand-wise structural equality, with float constants compared
// bitwise (so +0 != -0 and NaN == NaN given identical bit patterns).
func (o *Operation) Equal(other *Operation) bool {
	if o == other {
		return true
	}
	if o == nil || other == nil {
		return false
	}
	if o.Op != other.Op || !o.Type.Equal(other.Type) {
		return false
	}
	switch {
	case o.IntValue != nil:
		return other.IntValue != nil && o.IntValue.Cmp(other.IntValue) == 0
	case o.FloatBits != nil:
		return other.FloatBits != nil && o.FloatBits.Cmp(other.FloatBits) == 0
	case o.Name != "":
		return o.Name == other.Name
	case o.Numbered != 0 || o.Op.Category() == CategoryConstant && o.Op.Aux() == uint8(ConstNumbered):
		return o.Numbered == other.Numbered
	case o.Bytes != nil:
		if len(o.Bytes) != len(other.Bytes) {
			return false
		}
		for i := range o.Bytes {
			if o.Bytes[i] != other.Bytes[i] {
				return false
			}
		}
		return true
	}
	if len(o.Operands) != len(other.Operands) {
		return false
	}
	for i := range o.Operands {
		if !o.Operands[i].Equal(other.Operands[i]) {
			return false
		}
	}
	return true
}

// Hash computes a hash consistent with Equal (spec §8: "a == b => hash(a)
// == hash(b)"), used by the e-graph's hash-cons map.
func (o *Operation) Hash() uint64 {
	h := fnvOffset
	h = fnvMix(h, uint64(o.Op))
	h = fnvMixString(h, o.Type.String())
	switch {
	case o.IntValue != nil:
		h = fnvMixString(h, o.IntValue.String())
	case o.FloatBits != nil:
		h = fnvMixString(h, o.FloatBits.String())
	case o.Name != "":
		h = fnvMixString(h, o.Name)
	case o.Bytes != nil:
		h = fnvMixBytes(h, o.Bytes)
	default:
		if o.Op.Category() == CategoryConstant && o.Op.Aux() == uint8(ConstNumbered) {
			h = fnvMix(h, o.Numbered)
		}
	}
	for _, operand := range o.Operands {
		h = fnvMix(h, operand.Hash())
	}
	return h
}

// String renders the S-expression form of spec §6.
func (o *Operation) String() string { return Print(o) }

const (
	fnvOffset = uint64(14695981039346656037)
	fnvPrime  = uint64(1099511628211)
)

func fnvMix(h uint64, v uint64) uint64 {
	for i := 0; i < 8; i++ {
		h ^= v & 0xff
		h *= fnvPrime
		v >>= 8
	}
	return h
}

func fnvMixString(h uint64, s string) uint64 {
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= fnvPrime
	}
	return h
}

func fnvMixBytes(h uint64, b []byte) uint64 {
	for _, c := range b {
		h ^= uint64(c)
		h *= fnvPrime
	}
	return h
}
