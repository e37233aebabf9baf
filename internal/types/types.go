// Package types implements the Type value of spec §3: integer width,
// float format, and array-index width. Grounded on the teacher's
// internal/types package (a registry of named scalar types), generalized
// from contract-language primitive names (U8..U256, Bool, Address) to the
// symbolic-IR primitives of the spec.
package types

import (
	"fmt"

	"symex/internal/errors"
)

// Type is a tagged value describing the result type of an expression.
// Every concrete implementation is comparable (==), so Type values can be
// used directly as map keys and compared with ==.
type Type interface {
	isType()
	String() string
	Equal(other Type) bool
}

// VoidType is the type of expressions with no result value.
type VoidType struct{}

func (VoidType) isType()             {}
func (VoidType) String() string      { return "void" }
func (v VoidType) Equal(o Type) bool { _, ok := o.(VoidType); return ok }

// IntType is an integer type of the given bit width, 1..=128.
type IntType struct {
	Width uint8
}

func (IntType) isType() {}

func (t IntType) String() string { return fmt.Sprintf("i%d", t.Width) }

func (t IntType) Equal(o Type) bool {
	other, ok := o.(IntType)
	return ok && other.Width == t.Width
}

// NewIntType validates the bitwidth invariant of spec §3 ("integer types
// carry non-zero bitwidth") and the stated upper bound.
func NewIntType(width uint8) IntType {
	errors.RequireStructural(width >= 1 && width <= 128, errors.ErrTypeMismatch,
		fmt.Sprintf("integer width %d out of range [1,128]", width))
	return IntType{Width: width}
}

// FloatType maps to an IEEE-754 parameter pair: exponent bits and mantissa
// bits (not counting the implicit leading mantissa bit).
type FloatType struct {
	ExponentBits uint8
	MantissaBits uint8
}

func (FloatType) isType() {}

func (t FloatType) String() string {
	switch {
	case t.ExponentBits == 8 && t.MantissaBits == 23:
		return "f32"
	case t.ExponentBits == 11 && t.MantissaBits == 52:
		return "f64"
	default:
		return fmt.Sprintf("f<%d,%d>", t.ExponentBits, t.MantissaBits)
	}
}

func (t FloatType) Equal(o Type) bool {
	other, ok := o.(FloatType)
	return ok && other.ExponentBits == t.ExponentBits && other.MantissaBits == t.MantissaBits
}

// Bits returns the total IEEE-754 storage width: sign + exponent + mantissa.
func (t FloatType) Bits() int {
	return 1 + int(t.ExponentBits) + int(t.MantissaBits)
}

// ArrayType is an array whose index (address) is IndexBits wide; the
// element type is implicitly the 8-bit byte (spec §3).
type ArrayType struct {
	IndexBits uint8
}

func (ArrayType) isType() {}

func (t ArrayType) String() string { return fmt.Sprintf("array<i%d>", t.IndexBits) }

func (t ArrayType) Equal(o Type) bool {
	other, ok := o.(ArrayType)
	return ok && other.IndexBits == t.IndexBits
}

// ElementType returns the implicit 8-bit byte element type of any array.
func ElementType() IntType { return IntType{Width: 8} }
