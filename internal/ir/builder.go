package ir

import (
	"math/big"

	"symex/internal/errors"
	"symex/internal/types"
)

// This file implements the Create* smart constructors of spec §4.1. Each
// enforces its opcode's typing preconditions and then applies, in order:
// undef propagation, identity folds, constant folding, and finally
// allocation of a fresh node. Grounded on the teacher's
// internal/ir/builder.go smart-constructor style and its
// getConstEvalIntrinsics const-eval table, and on
// internal/ir/optimizations.go's ConstantFolding/peephole passes — both
// generalized from one-shot IR-building-time passes run after the fact to
// identities applied at construction time, per spec §4.1.

func requireIntType(t types.Type, code, msg string) types.IntType {
	it, ok := t.(types.IntType)
	errors.RequireStructural(ok, code, msg)
	return it
}

func requireFloatType(t types.Type, code, msg string) types.FloatType {
	ft, ok := t.(types.FloatType)
	errors.RequireStructural(ok, code, msg)
	return ft
}

// CreateBinOp builds an integer binary operation (spec §4.1).
func CreateBinOp(op BinOp, a, b *Operation) *Operation {
	errors.RequireStructural(a != nil && b != nil, errors.ErrNilOperand, "binary operand is nil")
	it := requireIntType(a.Type, errors.ErrTypeMismatch, "binary op requires integer operands")
	errors.RequireStructural(a.Type.Equal(b.Type), errors.ErrTypeMismatch,
		"binary operands must share a type")

	// (a) undef propagation: only for opcodes spec §4.1 names (add, sub, xor).
	if propagatesUndef(op) && (a.IsUndef() || b.IsUndef()) {
		return NewUndef(a.Type)
	}

	// (b) identity folds
	if result, ok := binIdentity(op, a, b, it); ok {
		return result
	}

	// (c) constant folding
	av, aIsConst := asConstInt(a)
	bv, bIsConst := asConstInt(b)
	if aIsConst && bIsConst {
		if r, ok := foldBinInt(op, av, bv, it.Width); ok {
			return NewConstInt(it, r)
		}
	}

	// (d) allocate
	return &Operation{Op: binaryOpcode(op), Type: a.Type, Operands: []*Operation{a, b}}
}

func propagatesUndef(op BinOp) bool {
	switch op {
	case BinAdd, BinSub, BinXor:
		return true
	default:
		return false
	}
}

// binIdentity applies the peephole identities of spec §4.1b/§8.
func binIdentity(op BinOp, a, b *Operation, it types.IntType) (*Operation, bool) {
	switch op {
	case BinAdd:
		if isZeroInt(a) {
			return b, true
		}
		if isZeroInt(b) {
			return a, true
		}
	case BinSub:
		if isZeroInt(b) {
			return a, true
		}
	case BinMul:
		if isZeroInt(a) {
			return a, true
		}
		if isZeroInt(b) {
			return b, true
		}
	case BinXor:
		if isZeroInt(a) {
			return b, true
		}
		if isZeroInt(b) {
			return a, true
		}
	case BinAnd:
		if isZeroInt(a) {
			return a, true
		}
		if isZeroInt(b) {
			return b, true
		}
	case BinOr:
		if isZeroInt(a) {
			return b, true
		}
		if isZeroInt(b) {
			return a, true
		}
	case BinShl, BinLShr, BinAShr:
		if isZeroInt(b) {
			return a, true
		}
	case BinUDiv:
		if isOneInt(b) {
			return a, true
		}
	case BinURem:
		if isOneInt(b) {
			return NewConstIntU64(it, 0), true
		}
	case BinSDiv:
		// Open question (spec §9): skip the fold at bitwidth 1, where the
		// "divide by 1 is identity" argument does not obviously extend
		// (see DESIGN.md).
		if isOneInt(b) && it.Width > 1 {
			return a, true
		}
	}
	return nil, false
}

// CreateFloatBinOp builds an IEEE float binary operation.
func CreateFloatBinOp(op FloatBinOp, a, b *Operation) *Operation {
	errors.RequireStructural(a != nil && b != nil, errors.ErrNilOperand, "binary operand is nil")
	ft := requireFloatType(a.Type, errors.ErrTypeMismatch, "float binary op requires float operands")
	errors.RequireStructural(a.Type.Equal(b.Type), errors.ErrTypeMismatch,
		"float binary operands must share a type")

	if a.IsUndef() || b.IsUndef() {
		return NewUndef(a.Type)
	}

	av, aIsConst := asConstFloat(a)
	bv, bIsConst := asConstFloat(b)
	if aIsConst && bIsConst {
		if r, ok := foldBinFloat(op, av, bv, ft); ok {
			return NewConstFloatBits(ft, r)
		}
	}

	return &Operation{Op: floatBinaryOpcode(op), Type: a.Type, Operands: []*Operation{a, b}}
}

// CreateICmp builds an integer comparison. A mismatched-width literal
// operand is sign-extended to the other operand's width before the
// comparison is built (spec §4.1: "ICmp literal variants widen/truncate
// the literal to the other operand's width via sign-extension"); two
// differently-sized symbolic operands, where there is no literal to
// widen, remain a structural mismatch.
func CreateICmp(p ICmpPredicate, a, b *Operation) *Operation {
	errors.RequireStructural(a != nil && b != nil, errors.ErrNilOperand, "icmp operand is nil")
	at := requireIntType(a.Type, errors.ErrTypeMismatch, "icmp requires integer operands")
	bt := requireIntType(b.Type, errors.ErrTypeMismatch, "icmp requires integer operands")

	if at.Width != bt.Width {
		aLit, aIsConst := asConstInt(a)
		bLit, bIsConst := asConstInt(b)
		switch {
		case aIsConst && at.Width < bt.Width:
			a = NewConstInt(bt, signExtend(aLit, at.Width, bt.Width))
		case bIsConst && bt.Width < at.Width:
			b = NewConstInt(at, signExtend(bLit, bt.Width, at.Width))
		default:
			errors.RequireStructural(false, errors.ErrTypeMismatch, "icmp operands must share a type")
		}
	}

	resultType := types.Bool()
	if a.IsUndef() || b.IsUndef() {
		return NewUndef(resultType)
	}

	it := a.Type.(types.IntType)
	av, aIsConst := asConstInt(a)
	bv, bIsConst := asConstInt(b)
	if aIsConst && bIsConst {
		r := icmpFold(p, av, bv, it.Width)
		return NewConstIntU64(resultType, boolToU64(r))
	}

	return &Operation{Op: icmpOpcode(p), Type: resultType, Operands: []*Operation{a, b}}
}

// CreateFCmp builds an IEEE float comparison.
func CreateFCmp(p FCmpPredicate, a, b *Operation) *Operation {
	errors.RequireStructural(a != nil && b != nil, errors.ErrNilOperand, "fcmp operand is nil")
	ft := requireFloatType(a.Type, errors.ErrTypeMismatch, "fcmp requires float operands")
	errors.RequireStructural(a.Type.Equal(b.Type), errors.ErrTypeMismatch,
		"fcmp operands must share a type")

	resultType := types.Bool()
	av, aIsConst := asConstFloat(a)
	bv, bIsConst := asConstFloat(b)
	if aIsConst && bIsConst {
		if r, ok := fcmpFold(p, av, bv, ft); ok {
			return NewConstIntU64(resultType, boolToU64(r))
		}
	}

	return &Operation{Op: fcmpOpcode(p), Type: resultType, Operands: []*Operation{a, b}}
}

func boolToU64(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// CreateSelect builds a select(cond, t, f); constant-condition collapses
// to the chosen branch (spec §4.1b, §8 scenario 6).
func CreateSelect(cond, t, f *Operation) *Operation {
	errors.RequireStructural(cond != nil && t != nil && f != nil, errors.ErrNilOperand,
		"select operand is nil")
	requireIntType(cond.Type, errors.ErrTypeMismatch, "select condition must be Int(1)")
	errors.RequireStructural(cond.Type.(types.IntType).Width == 1, errors.ErrTypeMismatch,
		"select condition must be Int(1)")
	errors.RequireStructural(t.Type.Equal(f.Type), errors.ErrTypeMismatch,
		"select branches must share a type")

	if bit, ok := boolConstValue(cond); ok {
		if bit {
			return t
		}
		return f
	}
	if cond.IsUndef() {
		return NewUndef(t.Type)
	}

	return &Operation{Op: opSelect, Type: t.Type, Operands: []*Operation{cond, t, f}}
}

// CreateNot builds a bitwise complement.
func CreateNot(x *Operation) *Operation {
	errors.RequireStructural(x != nil, errors.ErrNilOperand, "not operand is nil")
	it := requireIntType(x.Type, errors.ErrTypeMismatch, "not requires an integer operand")
	if v, ok := asConstInt(x); ok {
		return NewConstInt(it, new(big.Int).Not(v))
	}
	return &Operation{Op: unaryOpcode(UnaryNot), Type: x.Type, Operands: []*Operation{x}}
}

// CreateNeg builds an arithmetic negation.
func CreateNeg(x *Operation) *Operation {
	errors.RequireStructural(x != nil, errors.ErrNilOperand, "neg operand is nil")
	it := requireIntType(x.Type, errors.ErrTypeMismatch, "neg requires an integer operand")
	if v, ok := asConstInt(x); ok {
		return NewConstInt(it, new(big.Int).Neg(v))
	}
	return &Operation{Op: unaryOpcode(UnaryNeg), Type: x.Type, Operands: []*Operation{x}}
}

// CreateSExt sign-extends x to a wider integer type.
func CreateSExt(x *Operation, to types.IntType) *Operation {
	errors.RequireStructural(x != nil, errors.ErrNilOperand, "sext operand is nil")
	from := requireIntType(x.Type, errors.ErrTypeMismatch, "sext requires an integer operand")
	errors.RequireStructural(to.Width >= from.Width, errors.ErrTypeMismatch,
		"sext target width must be >= source width")

	if x.IsUndef() {
		return NewUndef(to)
	}
	if v, ok := asConstInt(x); ok {
		return NewConstInt(to, signExtend(v, from.Width, to.Width))
	}
	return &Operation{Op: unaryOpcode(UnarySExt), Type: to, Operands: []*Operation{x}}
}

// CreateZExt zero-extends x to a wider integer type.
func CreateZExt(x *Operation, to types.IntType) *Operation {
	errors.RequireStructural(x != nil, errors.ErrNilOperand, "zext operand is nil")
	from := requireIntType(x.Type, errors.ErrTypeMismatch, "zext requires an integer operand")
	errors.RequireStructural(to.Width >= from.Width, errors.ErrTypeMismatch,
		"zext target width must be >= source width")

	if v, ok := asConstInt(x); ok {
		return NewConstInt(to, wrapUnsigned(v, to.Width))
	}
	return &Operation{Op: unaryOpcode(UnaryZExt), Type: to, Operands: []*Operation{x}}
}

// CreateTrunc truncates x to a narrower integer type.
func CreateTrunc(x *Operation, to types.IntType) *Operation {
	errors.RequireStructural(x != nil, errors.ErrNilOperand, "trunc operand is nil")
	from := requireIntType(x.Type, errors.ErrTypeMismatch, "trunc requires an integer operand")
	errors.RequireStructural(to.Width <= from.Width, errors.ErrTypeMismatch,
		"trunc target width must be <= source width")

	if x.IsUndef() {
		return NewUndef(to)
	}
	if v, ok := asConstInt(x); ok {
		return NewConstInt(to, truncate(v, to.Width))
	}
	return &Operation{Op: unaryOpcode(UnaryTrunc), Type: to, Operands: []*Operation{x}}
}

// CreateBitcast reinterprets x's bits as type `to`. Permitted without a
// size check at this layer, per spec §4.1: callers guarantee width
// compatibility.
func CreateBitcast(x *Operation, to types.Type) *Operation {
	errors.RequireStructural(x != nil, errors.ErrNilOperand, "bitcast operand is nil")
	return &Operation{Op: unaryOpcode(UnaryBitcast), Type: to, Operands: []*Operation{x}}
}

// CreateLoad builds a byte load from an array at a symbolic index; yields
// Int(8), per spec §3.
func CreateLoad(array, index *Operation) *Operation {
	errors.RequireStructural(array != nil && index != nil, errors.ErrNilOperand, "load operand is nil")
	_, ok := array.Type.(types.ArrayType)
	errors.RequireStructural(ok, errors.ErrTypeMismatch, "load requires an array operand")
	return &Operation{Op: opLoad, Type: types.I8, Operands: []*Operation{array, index}}
}

// CreateStore builds a functional byte store, yielding the updated array
// (preserving the array's type, per spec §3).
func CreateStore(array, index, value *Operation) *Operation {
	errors.RequireStructural(array != nil && index != nil && value != nil, errors.ErrNilOperand,
		"store operand is nil")
	arrTy, ok := array.Type.(types.ArrayType)
	errors.RequireStructural(ok, errors.ErrTypeMismatch, "store requires an array operand")
	return &Operation{Op: opStore, Type: arrTy, Operands: []*Operation{array, index, value}}
}

// CreateAlloca builds a fresh array allocation whose index width equals
// size's integer width, per spec §3 ("allocations yield Array(size.width)").
func CreateAlloca(size *Operation) *Operation {
	errors.RequireStructural(size != nil, errors.ErrNilOperand, "alloca operand is nil")
	it := requireIntType(size.Type, errors.ErrTypeMismatch, "alloca size must be an integer")
	return &Operation{Op: opAlloca, Type: types.ArrayType{IndexBits: it.Width}, Operands: []*Operation{size}}
}
