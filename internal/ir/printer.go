package ir

import (
	"fmt"
	"strconv"
	"strings"

	"symex/internal/types"
)

// Printer renders Operations in the S-expression wire form of spec §6:
// constants print as "(const NAME)" or "(const N)"; integer constants as
// "(TYPE DECIMAL)"; comparisons as "icmp.eq", "fcmp.oeq", etc; other nodes
// as "(opname operand …)". This form is observable in failure logs and is
// part of the external contract (spec §6) — grounded on the teacher's
// internal/ir/printer.go Printer (indent + strings.Builder), shrunk to a
// flat recursive form since the wire contract here is a single inline
// expression rather than an indented program listing.
type Printer struct {
	b strings.Builder
}

// Print renders a single Operation to its S-expression form.
func Print(o *Operation) string {
	p := &Printer{}
	p.write(o)
	return p.b.String()
}

func (p *Printer) write(o *Operation) {
	if o == nil {
		p.b.WriteString("(nil)")
		return
	}
	switch o.Op.Category() {
	case CategoryConstant:
		p.writeConstant(o)
	case CategoryUndef:
		fmt.Fprintf(&p.b, "(undef %s)", o.Type.String())
	case CategoryICmp:
		p.writeOpForm(fmt.Sprintf("icmp.%s", ICmpPredicate(o.Op.Aux())), o.Operands)
	case CategoryFCmp:
		p.writeOpForm(fmt.Sprintf("fcmp.%s", FCmpPredicate(o.Op.Aux())), o.Operands)
	case CategoryBinary:
		p.writeOpForm(BinOp(o.Op.Aux()).String(), o.Operands)
	case CategoryFloatBinary:
		p.writeOpForm(FloatBinOp(o.Op.Aux()).String(), o.Operands)
	case CategoryUnary:
		p.writeUnary(o)
	case CategorySelect:
		p.writeOpForm("select", o.Operands)
	case CategoryMemory:
		p.writeOpForm(MemOp(o.Op.Aux()).String(), o.Operands)
	default:
		p.b.WriteString("(invalid)")
	}
}

func (p *Printer) writeConstant(o *Operation) {
	switch ConstFlavor(o.Op.Aux()) {
	case ConstInt:
		fmt.Fprintf(&p.b, "(%s %s)", o.Type.String(), o.IntValue.String())
	case ConstFloat:
		p.writeFloatConstant(o)
	case ConstNamed:
		fmt.Fprintf(&p.b, "(const %s)", o.Name)
	case ConstNumbered:
		fmt.Fprintf(&p.b, "(const %d)", o.Numbered)
	case ConstArray:
		fmt.Fprintf(&p.b, "(array %s)", hexBytes(o.Bytes))
	}
}

// writeUnary prints a unary node. Casts (sext/zext/trunc/bitcast) change
// the operand's width or representation, so their target type is printed
// as a trailing atom — otherwise the wire form would be ambiguous to
// parse back (the source width is only known from the operand's own
// printed form).
func (p *Printer) writeUnary(o *Operation) {
	op := UnaryOp(o.Op.Aux())
	p.b.WriteByte('(')
	p.b.WriteString(op.String())
	for _, operand := range o.Operands {
		p.b.WriteByte(' ')
		p.write(operand)
	}
	switch op {
	case UnarySExt, UnaryZExt, UnaryTrunc, UnaryBitcast:
		p.b.WriteByte(' ')
		p.b.WriteString(o.Type.String())
	}
	p.b.WriteByte(')')
}

func (p *Printer) writeFloatConstant(o *Operation) {
	ft := o.Type.(types.FloatType)
	if v, ok := floatBitsToFloat64(o.FloatBits, ft); ok {
		fmt.Fprintf(&p.b, "(%s %s)", ft.String(), strconv.FormatFloat(v, 'g', -1, 64))
		return
	}
	fmt.Fprintf(&p.b, "(%s 0x%s)", ft.String(), o.FloatBits.Text(16))
}

func (p *Printer) writeOpForm(name string, operands []*Operation) {
	p.b.WriteByte('(')
	p.b.WriteString(name)
	for _, op := range operands {
		p.b.WriteByte(' ')
		p.write(op)
	}
	p.b.WriteByte(')')
}

func hexBytes(b []byte) string {
	var sb strings.Builder
	sb.WriteString("0x")
	for _, c := range b {
		fmt.Fprintf(&sb, "%02x", c)
	}
	return sb.String()
}
