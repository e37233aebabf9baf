package egraph

import (
	"fmt"
	"math/big"
	"strings"

	"symex/internal/ir"
	"symex/internal/types"
)

// ENode is the e-graph analogue of ir.Operation (spec §4.2): an opcode plus
// operands, except operands are e-class ids rather than pointers to other
// nodes. Constant payloads are carried directly, same as ir.Operation,
// since two constants with the same opcode but different values must never
// hash-cons together.
type ENode struct {
	Op       ir.Opcode
	Type     types.Type
	Operands []int

	IntValue  *big.Int
	FloatBits *big.Int
	Name      string
	Numbered  uint64
	Bytes     []byte
}

// key returns a canonical string encoding used for hash-consing. Operand
// ids must already be canonicalized (find'ed) by the caller before this is
// called — key does not perform the lookup itself.
func (n ENode) key() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d|%s|", n.Op, n.Type.String())
	for _, id := range n.Operands {
		fmt.Fprintf(&b, "%d,", id)
	}
	b.WriteByte('|')
	switch {
	case n.IntValue != nil:
		b.WriteString(n.IntValue.String())
	case n.FloatBits != nil:
		b.WriteString(n.FloatBits.String())
	case n.Name != "":
		b.WriteString(n.Name)
	case n.Bytes != nil:
		fmt.Fprintf(&b, "%x", n.Bytes)
	default:
		if n.Op.Category() == ir.CategoryConstant && ir.ConstFlavor(n.Op.Aux()) == ir.ConstNumbered {
			fmt.Fprintf(&b, "#%d", n.Numbered)
		}
	}
	return b.String()
}

func enodeFromOperation(op *ir.Operation, operandIDs []int) ENode {
	return ENode{
		Op:        op.Op,
		Type:      op.Type,
		Operands:  operandIDs,
		IntValue:  op.IntValue,
		FloatBits: op.FloatBits,
		Name:      op.Name,
		Numbered:  op.Numbered,
		Bytes:     op.Bytes,
	}
}
