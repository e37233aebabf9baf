// Package ir implements the symbolic expression IR of spec §3/§4.1/§6: a
// typed, hash-consable expression language with constant folding and
// algebraic simplification at construction time.
//
// Grounded on the teacher's internal/ir package (SSA Value/Instruction
// shape in types.go, smart-constructor style and constant-eval table in
// builder.go, peephole/constant-folding passes in optimizations.go, and
// the indent/strings.Builder printer in printer.go), generalized from an
// EVM three-address-code IR to the spec's opcode-packed expression nodes.
package ir

// Opcode is the packed 16-bit wire/log contract of spec §6:
//
//	bits 0-1:  operand count (0..3)
//	bits 2-5:  auxiliary payload (predicate / cast kind / constant flavour)
//	bits 6-15: category (10 bits)
//
// The packing is a design contract, not an implementation detail: callers
// may rely on Category()/Aux()/NumOperands() being pure bit extraction, and
// on "is an ICmp"/"is an FCmp" being a contiguous range test on the raw
// uint16 value (spec §6).
type Opcode uint16

// Category occupies the top 10 bits of an Opcode and distinguishes the
// coarse opcode families named in spec §3: constants, binary ops, unary
// ops, select, memory ops, comparisons, undef, invalid.
type Category uint16

const (
	CategoryInvalid     Category = 0
	CategoryConstant     Category = 1 // (opcode >> 6) == 1, per spec §6
	CategoryBinary       Category = 2 // integer arithmetic/bitwise
	CategoryFloatBinary  Category = 3 // IEEE float arithmetic
	CategoryUnary        Category = 4 // not/neg/casts
	CategorySelect       Category = 5
	CategoryMemory       Category = 6 // load/store/alloca
	CategoryICmp         Category = 7
	CategoryFCmp         Category = 8
	CategoryUndef        Category = 9
)

const (
	auxBits  = 4
	opBits   = 2
	auxMask  = (1 << auxBits) - 1
	opMask   = (1 << opBits) - 1
	auxShift = opBits
	catShift = opBits + auxBits
)

// Pack builds an Opcode from its three subfields. It panics (structural
// violation) if any subfield overflows its bit width — this is a caller
// precondition, not a runtime failure.
func Pack(category Category, aux uint8, numOperands uint8) Opcode {
	if numOperands > opMask {
		panic("ir: operand count overflows 2-bit field")
	}
	if aux > auxMask {
		panic("ir: aux data overflows 4-bit field")
	}
	return Opcode(uint16(category)<<catShift | uint16(aux)<<auxShift | uint16(numOperands))
}

// Category extracts the opcode's category (top 10 bits).
func (op Opcode) Category() Category { return Category(uint16(op) >> catShift) }

// Aux extracts the 4-bit auxiliary payload.
func (op Opcode) Aux() uint8 { return uint8((uint16(op) >> auxShift) & auxMask) }

// NumOperands extracts the 2-bit operand count.
func (op Opcode) NumOperands() int { return int(uint16(op) & opMask) }

// IsConstant implements spec §6's literal range test: "Constant category
// satisfies (opcode >> 6) == 1".
func (op Opcode) IsConstant() bool { return uint16(op)>>catShift == uint16(CategoryConstant) }

// icmpBase/fcmpBase are the lowest full Opcode values whose category is
// ICmp/FCmp; every ICmp/FCmp opcode lies in [base, base+0x3F] regardless
// of its aux predicate or operand count, since category occupies the high
// bits above both of those fields.
const (
	icmpBase = Opcode(uint16(CategoryICmp) << catShift)
	fcmpBase = Opcode(uint16(CategoryFCmp) << catShift)
)

// IsICmp is a contiguous range test, per spec §6.
func (op Opcode) IsICmp() bool { return op >= icmpBase && op <= icmpBase+0x3F }

// IsFCmp is a contiguous range test, per spec §6.
func (op Opcode) IsFCmp() bool { return op >= fcmpBase && op <= fcmpBase+0x3F }

// --- Binary integer opcodes (CategoryBinary, aux = BinOp) ---

type BinOp uint8

const (
	BinAdd BinOp = iota
	BinSub
	BinMul
	BinUDiv
	BinSDiv
	BinURem
	BinSRem
	BinShl
	BinLShr
	BinAShr
	BinAnd
	BinOr
	BinXor
)

var binOpNames = map[BinOp]string{
	BinAdd: "add", BinSub: "sub", BinMul: "mul",
	BinUDiv: "udiv", BinSDiv: "sdiv", BinURem: "urem", BinSRem: "srem",
	BinShl: "shl", BinLShr: "lshr", BinAShr: "ashr",
	BinAnd: "and", BinOr: "or", BinXor: "xor",
}

func (b BinOp) String() string { return binOpNames[b] }

func binaryOpcode(b BinOp) Opcode { return Pack(CategoryBinary, uint8(b), 2) }

// --- Float binary opcodes (CategoryFloatBinary, aux = FloatBinOp) ---

type FloatBinOp uint8

const (
	FBinAdd FloatBinOp = iota
	FBinSub
	FBinMul
	FBinDiv
	FBinRem
)

var floatBinOpNames = map[FloatBinOp]string{
	FBinAdd: "fadd", FBinSub: "fsub", FBinMul: "fmul", FBinDiv: "fdiv", FBinRem: "frem",
}

func (b FloatBinOp) String() string { return floatBinOpNames[b] }

func floatBinaryOpcode(b FloatBinOp) Opcode { return Pack(CategoryFloatBinary, uint8(b), 2) }

// --- Unary opcodes (CategoryUnary, aux = UnaryOp) ---

type UnaryOp uint8

const (
	UnaryNot UnaryOp = iota
	UnaryNeg
	UnarySExt
	UnaryZExt
	UnaryTrunc
	UnaryBitcast
)

var unaryOpNames = map[UnaryOp]string{
	UnaryNot: "not", UnaryNeg: "neg",
	UnarySExt: "sext", UnaryZExt: "zext", UnaryTrunc: "trunc", UnaryBitcast: "bitcast",
}

func (u UnaryOp) String() string { return unaryOpNames[u] }

func unaryOpcode(u UnaryOp) Opcode { return Pack(CategoryUnary, uint8(u), 1) }

// --- Memory opcodes (CategoryMemory, aux = MemOp) ---

type MemOp uint8

const (
	MemLoad MemOp = iota
	MemStore
	MemAlloca
)

var memOpNames = map[MemOp]string{MemLoad: "load", MemStore: "store", MemAlloca: "alloca"}

func (m MemOp) String() string { return memOpNames[m] }

// --- Constant flavours (CategoryConstant, aux = ConstFlavor) ---

type ConstFlavor uint8

const (
	ConstInt ConstFlavor = iota
	ConstFloat
	ConstNamed    // named symbolic constant (byte-string name)
	ConstNumbered // numbered symbolic constant (uint64)
	ConstArray    // constant array (byte-string payload)
)

func constantOpcode(f ConstFlavor) Opcode { return Pack(CategoryConstant, uint8(f), 0) }

// Select and Undef are fixed single-instance opcode families.
var (
	opSelect = Pack(CategorySelect, 0, 3)
	opUndef  = Pack(CategoryUndef, 0, 0)
	opLoad   = Pack(CategoryMemory, uint8(MemLoad), 2)  // (array, index)
	opStore  = Pack(CategoryMemory, uint8(MemStore), 3) // (array, index, value)
	opAlloca = Pack(CategoryMemory, uint8(MemAlloca), 1) // (size)
)

// --- Integer comparison predicates (CategoryICmp, aux = ICmpPredicate) ---

type ICmpPredicate uint8

const (
	ICmpEQ ICmpPredicate = iota
	ICmpNE
	ICmpUGT
	ICmpUGE
	ICmpULT
	ICmpULE
	ICmpSGT
	ICmpSGE
	ICmpSLT
	ICmpSLE
)

var icmpNames = map[ICmpPredicate]string{
	ICmpEQ: "eq", ICmpNE: "ne",
	ICmpUGT: "ugt", ICmpUGE: "uge", ICmpULT: "ult", ICmpULE: "ule",
	ICmpSGT: "sgt", ICmpSGE: "sge", ICmpSLT: "slt", ICmpSLE: "sle",
}

func (p ICmpPredicate) String() string { return icmpNames[p] }

// IsSigned is a direct membership test against the signed predicates,
// resolving the ambiguity the source repo's bit-hacky derivation left open
// (spec §9's open question): the predicate code itself determines
// signedness, not a bit extracted from an otherwise-unrelated layout.
func (p ICmpPredicate) IsSigned() bool {
	switch p {
	case ICmpSGT, ICmpSGE, ICmpSLT, ICmpSLE:
		return true
	default:
		return false
	}
}

func icmpOpcode(p ICmpPredicate) Opcode { return Pack(CategoryICmp, uint8(p), 2) }

// --- Float comparison predicates (CategoryFCmp, aux = FCmpPredicate) ---

type FCmpPredicate uint8

const (
	FCmpOEQ FCmpPredicate = iota
	FCmpOGT
	FCmpOGE
	FCmpOLT
	FCmpOLE
	FCmpONE
	FCmpORD
	FCmpUNO
	FCmpUEQ
	FCmpUGT
	FCmpUGE
	FCmpULT
	FCmpULE
	FCmpUNE
)

var fcmpNames = map[FCmpPredicate]string{
	FCmpOEQ: "oeq", FCmpOGT: "ogt", FCmpOGE: "oge", FCmpOLT: "olt", FCmpOLE: "ole", FCmpONE: "one",
	FCmpORD: "ord", FCmpUNO: "uno",
	FCmpUEQ: "ueq", FCmpUGT: "ugt", FCmpUGE: "uge", FCmpULT: "ult", FCmpULE: "ule", FCmpUNE: "une",
}

func (p FCmpPredicate) String() string { return fcmpNames[p] }

// IsOrdered reports whether the predicate requires both operands to be
// non-NaN (the "ordered" family); ORD/UNO are the pure NaN tests.
func (p FCmpPredicate) IsOrdered() bool {
	switch p {
	case FCmpOEQ, FCmpOGT, FCmpOGE, FCmpOLT, FCmpOLE, FCmpONE, FCmpORD:
		return true
	default:
		return false
	}
}

func fcmpOpcode(p FCmpPredicate) Opcode { return Pack(CategoryFCmp, uint8(p), 2) }
