package sexpr

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"symex/internal/ir"
	"symex/internal/types"
)

// Reader interprets a parsed Node tree into an *ir.Operation tree (spec.md
// §6's wire contract). Named and numbered symbolic constants aren't
// self-describing in the printed form — "(const x)" carries no type — so
// the reader resolves them against an environment supplied by the caller,
// the way a real front-end resolves identifiers against a symbol table.
type Reader struct {
	// Env maps a named constant to its declared type.
	Env map[string]types.Type
	// DefaultIndexBits is used for "(array ...)" literals, whose printed
	// form doesn't carry the array's index width.
	DefaultIndexBits uint8
}

// NewReader returns a Reader with an empty environment and a 32-bit
// default array index width.
func NewReader() *Reader {
	return &Reader{Env: make(map[string]types.Type), DefaultIndexBits: 32}
}

// Declare records the type of a named constant the reader will encounter.
func (r *Reader) Declare(name string, t types.Type) { r.Env[name] = t }

// Read parses src and builds the Operation tree it denotes.
func (r *Reader) Read(src string) (*ir.Operation, error) {
	node, err := ParseString(src)
	if err != nil {
		return nil, err
	}
	return r.build(node)
}

func (r *Reader) build(n *Node) (*ir.Operation, error) {
	if n.IsAtom() {
		return nil, fmt.Errorf("sexpr: bare atom %q is not a complete expression", n.Sym)
	}
	if len(n.List) == 0 {
		return nil, fmt.Errorf("sexpr: empty list")
	}
	head := n.List[0]
	if !head.IsAtom() {
		return nil, fmt.Errorf("sexpr: expression head must be a symbol")
	}
	args := n.List[1:]

	if t, ok := types.Lookup(head.Sym); ok {
		return r.buildTypedConstant(t, args)
	}

	switch head.Sym {
	case "const":
		return r.buildConstRef(args)
	case "undef":
		return r.buildUndef(args)
	case "array":
		return r.buildArray(args)
	case "select":
		return r.buildSelect(args)
	case "not", "neg":
		return r.buildUnaryNoCast(head.Sym, args)
	case "sext", "zext", "trunc", "bitcast":
		return r.buildCast(head.Sym, args)
	case "load", "store", "alloca":
		return r.buildMemory(head.Sym, args)
	}
	if op, ok := binOpByName[head.Sym]; ok {
		return r.buildBinOp(op, args)
	}
	if op, ok := floatBinOpByName[head.Sym]; ok {
		return r.buildFloatBinOp(op, args)
	}
	if pred, ok := strings.CutPrefix(head.Sym, "icmp."); ok {
		return r.buildICmp(pred, args)
	}
	if pred, ok := strings.CutPrefix(head.Sym, "fcmp."); ok {
		return r.buildFCmp(pred, args)
	}
	return nil, fmt.Errorf("sexpr: unrecognized form %q", head.Sym)
}

func (r *Reader) buildOperands(args []*Node) ([]*ir.Operation, error) {
	out := make([]*ir.Operation, len(args))
	for i, a := range args {
		op, err := r.build(a)
		if err != nil {
			return nil, err
		}
		out[i] = op
	}
	return out, nil
}

func (r *Reader) buildTypedConstant(t types.Type, args []*Node) (*ir.Operation, error) {
	if len(args) != 1 || !args[0].IsAtom() {
		return nil, fmt.Errorf("sexpr: %q expects exactly one literal argument", t.String())
	}
	lit := args[0].Sym
	switch tt := t.(type) {
	case types.IntType:
		v, ok := new(big.Int).SetString(lit, 0)
		if !ok {
			return nil, fmt.Errorf("sexpr: invalid integer literal %q", lit)
		}
		return ir.NewConstInt(tt, v), nil
	case types.FloatType:
		v, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return nil, fmt.Errorf("sexpr: invalid float literal %q: %w", lit, err)
		}
		return ir.NewConstFloat(tt, v), nil
	default:
		return nil, fmt.Errorf("sexpr: %q is not a literal-bearing type", t.String())
	}
}

func (r *Reader) buildConstRef(args []*Node) (*ir.Operation, error) {
	if len(args) != 1 || !args[0].IsAtom() {
		return nil, fmt.Errorf("sexpr: const expects exactly one name or number")
	}
	name := args[0].Sym
	if id, err := strconv.ParseUint(name, 10, 64); err == nil {
		return ir.NewNumberedConstant(r.typeOf(name), id), nil
	}
	return ir.NewNamedConstant(r.typeOf(name), name), nil
}

func (r *Reader) typeOf(name string) types.Type {
	if t, ok := r.Env[name]; ok {
		return t
	}
	return types.I32
}

func (r *Reader) buildUndef(args []*Node) (*ir.Operation, error) {
	if len(args) != 1 || !args[0].IsAtom() {
		return nil, fmt.Errorf("sexpr: undef expects exactly one type name")
	}
	t, ok := types.Lookup(args[0].Sym)
	if !ok {
		return nil, fmt.Errorf("sexpr: unknown type %q", args[0].Sym)
	}
	return ir.NewUndef(t), nil
}

func (r *Reader) buildArray(args []*Node) (*ir.Operation, error) {
	if len(args) != 1 || !args[0].IsAtom() {
		return nil, fmt.Errorf("sexpr: array expects exactly one hex payload")
	}
	lit := strings.TrimPrefix(args[0].Sym, "0x")
	data := make([]byte, 0, len(lit)/2)
	for i := 0; i+1 < len(lit); i += 2 {
		var b byte
		if _, err := fmt.Sscanf(lit[i:i+2], "%02x", &b); err != nil {
			return nil, fmt.Errorf("sexpr: invalid hex payload %q", args[0].Sym)
		}
		data = append(data, b)
	}
	return ir.NewConstArray(r.DefaultIndexBits, data), nil
}

func (r *Reader) buildSelect(args []*Node) (*ir.Operation, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("sexpr: select expects 3 arguments")
	}
	operands, err := r.buildOperands(args)
	if err != nil {
		return nil, err
	}
	return ir.CreateSelect(operands[0], operands[1], operands[2]), nil
}

func (r *Reader) buildUnaryNoCast(name string, args []*Node) (*ir.Operation, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("sexpr: %q expects exactly one argument", name)
	}
	operands, err := r.buildOperands(args)
	if err != nil {
		return nil, err
	}
	if name == "not" {
		return ir.CreateNot(operands[0]), nil
	}
	return ir.CreateNeg(operands[0]), nil
}

func (r *Reader) buildCast(name string, args []*Node) (*ir.Operation, error) {
	if len(args) != 2 || !args[1].IsAtom() {
		return nil, fmt.Errorf("sexpr: %q expects an operand and a target type", name)
	}
	operand, err := r.build(args[0])
	if err != nil {
		return nil, err
	}
	target, ok := types.Lookup(args[1].Sym)
	if !ok {
		return nil, fmt.Errorf("sexpr: unknown type %q", args[1].Sym)
	}
	if name == "bitcast" {
		return ir.CreateBitcast(operand, target), nil
	}
	intTarget, ok := target.(types.IntType)
	if !ok {
		return nil, fmt.Errorf("sexpr: %q requires an integer target type, got %q", name, target.String())
	}
	switch name {
	case "sext":
		return ir.CreateSExt(operand, intTarget), nil
	case "zext":
		return ir.CreateZExt(operand, intTarget), nil
	default:
		return ir.CreateTrunc(operand, intTarget), nil
	}
}

func (r *Reader) buildMemory(name string, args []*Node) (*ir.Operation, error) {
	operands, err := r.buildOperands(args)
	if err != nil {
		return nil, err
	}
	switch name {
	case "load":
		if len(operands) != 2 {
			return nil, fmt.Errorf("sexpr: load expects (array index)")
		}
		return ir.CreateLoad(operands[0], operands[1]), nil
	case "store":
		if len(operands) != 3 {
			return nil, fmt.Errorf("sexpr: store expects (array index value)")
		}
		return ir.CreateStore(operands[0], operands[1], operands[2]), nil
	default:
		if len(operands) != 1 {
			return nil, fmt.Errorf("sexpr: alloca expects (size)")
		}
		return ir.CreateAlloca(operands[0]), nil
	}
}

func (r *Reader) buildBinOp(op ir.BinOp, args []*Node) (*ir.Operation, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("sexpr: %q expects exactly 2 arguments", op.String())
	}
	operands, err := r.buildOperands(args)
	if err != nil {
		return nil, err
	}
	return ir.CreateBinOp(op, operands[0], operands[1]), nil
}

func (r *Reader) buildFloatBinOp(op ir.FloatBinOp, args []*Node) (*ir.Operation, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("sexpr: %q expects exactly 2 arguments", op.String())
	}
	operands, err := r.buildOperands(args)
	if err != nil {
		return nil, err
	}
	return ir.CreateFloatBinOp(op, operands[0], operands[1]), nil
}

func (r *Reader) buildICmp(predName string, args []*Node) (*ir.Operation, error) {
	pred, ok := icmpByName[predName]
	if !ok {
		return nil, fmt.Errorf("sexpr: unknown icmp predicate %q", predName)
	}
	if len(args) != 2 {
		return nil, fmt.Errorf("sexpr: icmp expects exactly 2 arguments")
	}
	operands, err := r.buildOperands(args)
	if err != nil {
		return nil, err
	}
	return ir.CreateICmp(pred, operands[0], operands[1]), nil
}

func (r *Reader) buildFCmp(predName string, args []*Node) (*ir.Operation, error) {
	pred, ok := fcmpByName[predName]
	if !ok {
		return nil, fmt.Errorf("sexpr: unknown fcmp predicate %q", predName)
	}
	if len(args) != 2 {
		return nil, fmt.Errorf("sexpr: fcmp expects exactly 2 arguments")
	}
	operands, err := r.buildOperands(args)
	if err != nil {
		return nil, err
	}
	return ir.CreateFCmp(pred, operands[0], operands[1]), nil
}

var binOpByName = map[string]ir.BinOp{
	"add": ir.BinAdd, "sub": ir.BinSub, "mul": ir.BinMul,
	"udiv": ir.BinUDiv, "sdiv": ir.BinSDiv, "urem": ir.BinURem, "srem": ir.BinSRem,
	"shl": ir.BinShl, "lshr": ir.BinLShr, "ashr": ir.BinAShr,
	"and": ir.BinAnd, "or": ir.BinOr, "xor": ir.BinXor,
}

var floatBinOpByName = map[string]ir.FloatBinOp{
	"fadd": ir.FBinAdd, "fsub": ir.FBinSub, "fmul": ir.FBinMul, "fdiv": ir.FBinDiv, "frem": ir.FBinRem,
}

var icmpByName = map[string]ir.ICmpPredicate{
	"eq": ir.ICmpEQ, "ne": ir.ICmpNE,
	"ugt": ir.ICmpUGT, "uge": ir.ICmpUGE, "ult": ir.ICmpULT, "ule": ir.ICmpULE,
	"sgt": ir.ICmpSGT, "sge": ir.ICmpSGE, "slt": ir.ICmpSLT, "sle": ir.ICmpSLE,
}

var fcmpByName = map[string]ir.FCmpPredicate{
	"oeq": ir.FCmpOEQ, "ogt": ir.FCmpOGT, "oge": ir.FCmpOGE, "olt": ir.FCmpOLT, "ole": ir.FCmpOLE, "one": ir.FCmpONE,
	"ord": ir.FCmpORD, "uno": ir.FCmpUNO,
	"ueq": ir.FCmpUEQ, "ugt": ir.FCmpUGT, "uge": ir.FCmpUGE, "ult": ir.FCmpULT, "ule": ir.FCmpULE, "une": ir.FCmpUNE,
}
